package market

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/validator"
	"github.com/x-xyz/gomarket/domain"
)

// Op names a market sub command
type Op string

const (
	OpView    Op = "view"
	OpAdd     Op = "add"
	OpExpired Op = "expired"
)

// Command is one invocation of the market command. Only OpAdd carries
// arguments.
type Command struct {
	Op     Op               `json:"op" validate:"oneof=view add expired"`
	Price  *decimal.Decimal `json:"price,omitempty" validate:"-"`
	Amount *int             `json:"amount,omitempty" validate:"omitempty,gte=0,lte=64"`
}

func (cmd Command) Validate() error {
	if err := validator.Struct(cmd); err != nil {
		return domain.NewUserError(domain.ErrBadParamInput, err.Error())
	}
	switch cmd.Op {
	case OpAdd:
		if cmd.Price == nil {
			return domain.NewUserError(domain.ErrBadParamInput, "price is required")
		}
		if cmd.Price.IsNegative() {
			return domain.NewUserError(domain.ErrBadParamInput, "price must not be negative")
		}
	default:
		if cmd.Price != nil || cmd.Amount != nil {
			return domain.NewUserError(domain.ErrBadParamInput, fmt.Sprintf("%s takes no arguments", cmd.Op))
		}
	}
	return nil
}

// AmountOrDefault is the amount to list, one unit when omitted
func (cmd Command) AmountOrDefault() int {
	if cmd.Amount == nil {
		return 1
	}
	return *cmd.Amount
}

// CommandResult holds the outcome of the executed variant
type CommandResult struct {
	Op        Op           `json:"op"`
	Session   *SessionView `json:"session,omitempty"`
	Listing   *Listing     `json:"listing,omitempty"`
	Reclaimed *int         `json:"reclaimed,omitempty"`
	Message   string       `json:"message"`
}

type CommandUseCase interface {
	Execute(c ctx.Ctx, user domain.UserId, cmd Command) (*CommandResult, error)
}
