package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/delivery"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/market"
	"github.com/x-xyz/gomarket/service/notifier"
)

// NoticeBoard lists the notifications a user has not dismissed yet
type NoticeBoard interface {
	Messages(user domain.UserId) []notifier.Message
}

type handler struct {
	command market.CommandUseCase
	browse  market.BrowseUseCase
	notices NoticeBoard
}

// New registers the market routes behind auth. notices may be nil when the
// notifier does not keep messages, /market/notices is not served then.
func New(e *echo.Echo, command market.CommandUseCase, browse market.BrowseUseCase, notices NoticeBoard, auth ...echo.MiddlewareFunc) {
	h := &handler{
		command: command,
		browse:  browse,
		notices: notices,
	}
	g := e.Group("/market", auth...)
	g.POST("/view", h.view)
	g.POST("/add", h.add)
	g.POST("/expired", h.expired)

	g.GET("/sessions/:id", h.getSession)
	g.POST("/sessions/:id/click", h.click)
	g.DELETE("/sessions/:id", h.closeSession)

	if notices != nil {
		g.GET("/notices", h.getNotices)
	}
}

func (h *handler) exec(c echo.Context, cmd market.Command) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	user := c.Get("user").(domain.UserId)

	res, err := h.command.Execute(ctx, user, cmd)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	status := http.StatusOK
	if cmd.Op == market.OpAdd {
		status = http.StatusCreated
	}
	return delivery.MakeJsonResp(c, status, res)
}

func (h *handler) view(c echo.Context) error {
	return h.exec(c, market.Command{Op: market.OpView})
}

func (h *handler) add(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Price  *decimal.Decimal `json:"price"`
		Amount *int             `json:"amount"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Warn("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	return h.exec(c, market.Command{Op: market.OpAdd, Price: p.Price, Amount: p.Amount})
}

func (h *handler) expired(c echo.Context) error {
	return h.exec(c, market.Command{Op: market.OpExpired})
}

func (h *handler) session(c echo.Context) (*market.Session, error) {
	ctx := c.Get("ctx").(ctx.Ctx)
	user := c.Get("user").(domain.UserId)
	return h.browse.Get(ctx, user, market.SessionId(c.Param("id")))
}

func (h *handler) getSession(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, s.View())
}

func (h *handler) click(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		X *int `json:"x"`
		Y *int `json:"y"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil || p.X == nil || p.Y == nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	s, err := h.session(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	if err := h.browse.Click(ctx, s, *p.X, *p.Y); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, s.View())
}

func (h *handler) closeSession(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	s, err := h.session(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	if err := h.browse.Close(ctx, s); err != nil {
		ctx.WithField("err", err).Error("browse.Close failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *handler) getNotices(c echo.Context) error {
	user := c.Get("user").(domain.UserId)
	return delivery.MakeJsonResp(c, http.StatusOK, h.notices.Messages(user))
}
