package usecase

import (
	"fmt"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/market"
)

type CommandUseCaseCfg struct {
	Market market.UseCase
	Browse market.BrowseUseCase
}

type commandImpl struct {
	market market.UseCase
	browse market.BrowseUseCase
}

func NewCommand(cfg *CommandUseCaseCfg) market.CommandUseCase {
	return &commandImpl{
		market: cfg.Market,
		browse: cfg.Browse,
	}
}

func (im *commandImpl) Execute(c ctx.Ctx, user domain.UserId, cmd market.Command) (*market.CommandResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	c = ctx.WithValues(c, map[string]interface{}{"user": user, "op": cmd.Op})

	res := &market.CommandResult{Op: cmd.Op}
	switch cmd.Op {
	case market.OpView:
		s, err := im.browse.Open(c, user)
		if err != nil {
			c.WithFields(log.Fields{"err": err}).Error("browse.Open failed")
			return nil, err
		}
		view := s.View()
		res.Session = &view
		res.Message = "Market opened"

	case market.OpAdd:
		l, err := im.market.Add(c, user, *cmd.Price, cmd.AmountOrDefault())
		if err != nil {
			return nil, err
		}
		res.Listing = l
		res.Message = fmt.Sprintf("Listed %dx %s for %s", l.Item.Count, l.Item.TranslationKey(), l.Price.String())

	case market.OpExpired:
		n, err := im.market.ReclaimExpired(c, user)
		if err != nil {
			return nil, err
		}
		res.Reclaimed = &n
		res.Message = fmt.Sprintf("Collected %d expired listings", n)

	default:
		return nil, domain.ErrBadParamInput
	}
	return res, nil
}
