package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/delivery"
	"github.com/x-xyz/gomarket/base/validator"
	"github.com/x-xyz/gomarket/domain"
)

// HeaderServerKey carries the shared secret of the game server
const HeaderServerKey = "X-Server-Key"

type authHandler struct {
	auth      domain.AuthUsecase
	serverKey string
}

// New registers the token endpoint. Only the game server, holding serverKey,
// may mint tokens for its players.
func New(e *echo.Echo, auth domain.AuthUsecase, serverKey string) {
	handler := &authHandler{
		auth:      auth,
		serverKey: serverKey,
	}
	g := e.Group("/auth")
	g.POST("/sign", handler.sign)
}

func (h *authHandler) sign(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	key := c.Request().Header.Get(HeaderServerKey)
	if h.serverKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(h.serverKey)) != 1 {
		return delivery.MakeJsonResp(c, http.StatusUnauthorized, domain.ErrUnauthorized)
	}

	type params struct {
		UserId string `json:"userId" validate:"required,max=64"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err := validator.Struct(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	if tkn, err := h.auth.SignToken(ctx, domain.UserId(p.UserId)); err != nil {
		ctx.WithField("err", err).Error("auth.SignToken failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, tkn)
	}
}
