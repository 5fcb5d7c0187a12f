package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/delivery"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/account"
)

type handler struct {
	au account.Usecase
}

func New(e *echo.Echo, au account.Usecase, auth ...echo.MiddlewareFunc) {
	h := &handler{
		au: au,
	}
	g := e.Group("/account", auth...)
	g.GET("/me", h.getAccount)
	g.PATCH("/me", h.updateAccount)
}

func (h *handler) getAccount(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	user := c.Get("user").(domain.UserId)
	info, err := h.au.Get(ctx, user)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, info)
}

func (h *handler) updateAccount(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	user := c.Get("user").(domain.UserId)

	p := &account.Updater{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	info, err := h.au.Update(ctx, user, p)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, info)
}
