package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/account"
)

const tokenTTL = 24 * time.Hour

type impl struct {
	jwtSecret     []byte
	players       account.PlayerRepo
	inventorySize int
	now           domain.Clock
}

type AuthUseCaseCfg struct {
	JwtSecret     string
	Players       account.PlayerRepo
	InventorySize int
	Now           domain.Clock
}

func New(cfg *AuthUseCaseCfg) domain.AuthUsecase {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	size := cfg.InventorySize
	if size <= 0 {
		size = account.DefaultInventorySize
	}
	return &impl{
		jwtSecret:     []byte(cfg.JwtSecret),
		players:       cfg.Players,
		inventorySize: size,
		now:           now,
	}
}

// SignToken issues a token for user, registering the player on first sight
func (im *impl) SignToken(ctx ctx.Ctx, user domain.UserId) (string, error) {
	_, err := im.players.FindOne(ctx, user)
	if err != nil && err != domain.ErrNotFound {
		ctx.WithField("err", err).Error("players.FindOne failed")
		return "", err
	}

	if err == domain.ErrNotFound {
		p := &account.Player{
			Id:        user,
			Name:      user.String(),
			Inventory: account.NewInventory(im.inventorySize),
			UpdatedAt: im.now(),
		}
		if err := im.players.Upsert(ctx, p); err != nil {
			ctx.WithField("err", err).Error("players.Upsert failed")
			return "", err
		}
	}

	claims := domain.JwtCustomClaims{
		UserId: string(user),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: im.now().Add(tokenTTL).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	ss, err := token.SignedString(im.jwtSecret)
	if err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	}
	return ss, nil
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (domain.UserId, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid && claims.UserId != "" {
		return domain.UserId(claims.UserId), nil
	}
	return "", domain.ErrUnauthorized
}
