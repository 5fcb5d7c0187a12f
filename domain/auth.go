package domain

import (
	"github.com/golang-jwt/jwt"

	"github.com/x-xyz/gomarket/base/ctx"
)

type JwtCustomClaims struct {
	UserId string `json:"data"`
	jwt.StandardClaims
}

type AuthUsecase interface {
	SignToken(ctx ctx.Ctx, user UserId) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (UserId, error)
}
