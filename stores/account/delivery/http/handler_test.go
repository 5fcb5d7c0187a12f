package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/account"
	"github.com/x-xyz/gomarket/stores/account/repository"
	"github.com/x-xyz/gomarket/stores/account/usecase"
)

func TestAccountHandler(t *testing.T) {
	mem := repository.NewMemory(time.Now)
	c := ctx.Background()
	require.NoError(t, mem.Upsert(c, &account.Player{Id: "alice", Name: "alice", Inventory: account.NewInventory(account.DefaultInventorySize)}))
	require.NoError(t, mem.Adjust(c, "alice", decimal.NewFromInt(15)))

	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ec echo.Context) error {
			ec.Set("ctx", c)
			return next(ec)
		}
	})
	user := domain.UserId("alice")
	New(e, usecase.New(&usecase.AccountUseCaseCfg{Players: mem, Balances: mem}), func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ec echo.Context) error {
			ec.Set("user", user)
			return next(ec)
		}
	})

	do := func(method, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/account/me", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	rec := do(http.MethodGet, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"balance":"15"`)

	rec = do(http.MethodPatch, `{"discordChannel":"42"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"discordChannel":"42"`)

	rec = do(http.MethodPatch, `{"discordChannel":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	user = "bob"
	rec = do(http.MethodGet, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
