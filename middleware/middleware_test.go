package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/domain"
)

func TestContextAndPresence(t *testing.T) {
	m := InitMiddleware()
	e := echo.New()

	touched := []domain.UserId{}
	setUser := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("user", domain.UserId("alice"))
			return next(c)
		}
	}
	e.Use(m.AddContext(), m.ResponseLogger(), m.CORS)
	e.GET("/me", func(c echo.Context) error {
		_, ok := c.Get("ctx").(ctx.Ctx)
		assert.True(t, ok)
		return c.String(http.StatusOK, "ok")
	}, setUser, m.Presence(func(u domain.UserId) { touched = append(touched, u) }))
	e.GET("/anon", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, m.Presence(func(u domain.UserId) { touched = append(touched, u) }))

	for _, path := range []string{"/me", "/anon"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	}
	assert.Equal(t, []domain.UserId{"alice"}, touched)
}
