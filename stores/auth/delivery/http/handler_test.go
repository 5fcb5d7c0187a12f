package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/domain"
	accountRepo "github.com/x-xyz/gomarket/stores/account/repository"
	authHttp "github.com/x-xyz/gomarket/stores/auth/delivery/http"
	authMiddleware "github.com/x-xyz/gomarket/stores/auth/delivery/http/middleware"
	"github.com/x-xyz/gomarket/stores/auth/usecase"
)

type authHandlerSuite struct {
	suite.Suite

	e    *echo.Echo
	auth domain.AuthUsecase
}

func (s *authHandlerSuite) SetupTest() {
	players := accountRepo.NewMemory(time.Now)
	s.auth = usecase.New(&usecase.AuthUseCaseCfg{JwtSecret: "secret", Players: players})

	s.e = echo.New()
	s.e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	authHttp.New(s.e, s.auth, "server-key")

	m := authMiddleware.New(s.auth)
	s.e.GET("/whoami", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("user").(domain.UserId).String())
	}, m.Auth())
}

func (s *authHandlerSuite) sign(key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/sign", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if key != "" {
		req.Header.Set(authHttp.HeaderServerKey, key)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *authHandlerSuite) TestSignAndUse() {
	rec := s.sign("server-key", `{"userId":"alice"}`)
	s.Require().Equal(http.StatusCreated, rec.Code)

	var res struct {
		Data string `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &res))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+res.Data)
	rec = httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("alice", rec.Body.String())
}

func (s *authHandlerSuite) TestSignRejectsWrongKey() {
	s.Equal(http.StatusUnauthorized, s.sign("", `{"userId":"alice"}`).Code)
	s.Equal(http.StatusUnauthorized, s.sign("other", `{"userId":"alice"}`).Code)
}

func (s *authHandlerSuite) TestSignRequiresUser() {
	s.Equal(http.StatusBadRequest, s.sign("server-key", `{}`).Code)
}

func (s *authHandlerSuite) TestRejectsBadToken() {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer garbage")
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	s.Equal(http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec = httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func TestAuthHandler(t *testing.T) {
	suite.Run(t, new(authHandlerSuite))
}
