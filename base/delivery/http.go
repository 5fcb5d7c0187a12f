package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

// expected outcomes and the status they are reported with
var errStatus = []struct {
	err    error
	status int
}{
	{domain.ErrNotFound, http.StatusNotFound},
	{query.ErrNotFound, http.StatusNotFound},
	{domain.ErrBadParamInput, http.StatusBadRequest},
	{domain.ErrUnauthorized, http.StatusUnauthorized},
	{domain.ErrConflict, http.StatusConflict},
	{domain.ErrQuotaExceeded, http.StatusConflict},
	{domain.ErrInvalidItem, http.StatusUnprocessableEntity},
	{domain.ErrInsufficientFunds, http.StatusPaymentRequired},
	{domain.ErrListingGone, http.StatusGone},
}

// StatusOf returns the status of an expected error, 0 otherwise
func StatusOf(err error) int {
	for _, es := range errStatus {
		if errors.Is(err, es.err) {
			return es.status
		}
	}
	return 0
}

// MakeJsonResp writes data wrapped with its status. An error is reported by
// its message when it is expected, unexpected errors only show a generic
// message.
func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		if s := StatusOf(err); s != 0 {
			status = s
			data = err.Error()
		} else {
			if status < 500 {
				status = http.StatusInternalServerError
			}
			data = domain.ErrInternalServerError.Error()
		}
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
