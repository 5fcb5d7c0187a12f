package usecase

import (
	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/base/validator"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/account"
)

type AccountUseCaseCfg struct {
	Players  account.PlayerRepo
	Balances account.BalanceRepo
}

type impl struct {
	players  account.PlayerRepo
	balances account.BalanceRepo
}

func New(cfg *AccountUseCaseCfg) account.Usecase {
	return &impl{
		players:  cfg.Players,
		balances: cfg.Balances,
	}
}

func (im *impl) Get(c ctx.Ctx, user domain.UserId) (*account.Profile, error) {
	p, err := im.players.FindOne(c, user)
	if err != nil {
		if err != domain.ErrNotFound {
			c.WithFields(log.Fields{"err": err, "user": user}).Error("players.FindOne failed")
		}
		return nil, err
	}

	balance, err := im.balances.Get(c, user)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "user": user}).Error("balances.Get failed")
		return nil, err
	}
	return &account.Profile{Player: p, Balance: balance}, nil
}

func (im *impl) Update(c ctx.Ctx, user domain.UserId, u *account.Updater) (*account.Profile, error) {
	if err := validator.Struct(u); err != nil {
		return nil, domain.NewUserError(domain.ErrBadParamInput, err.Error())
	}
	if err := im.players.Update(c, user, u); err != nil {
		if err != domain.ErrNotFound {
			c.WithFields(log.Fields{"err": err, "user": user}).Error("players.Update failed")
		}
		return nil, err
	}
	return im.Get(c, user)
}
