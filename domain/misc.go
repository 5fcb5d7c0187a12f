package domain

import (
	"time"

	"github.com/x-xyz/gomarket/base/ctx"
)

type SortDir int8

const (
	SortDirAsc  = 1
	SortDirDesc = -1
)

// UserId identifies a player
type UserId string

func (u UserId) String() string {
	return string(u)
}

type Table string

const (
	TableListings Table = "listings"
	TableBalances Table = "balances"
	TablePlayers  Table = "players"
	TableGround   Table = "ground"
)

// Transactor runs fn so that every write issued through the ctx it receives
// commits or aborts together.
type Transactor interface {
	RunWithTransaction(c ctx.Ctx, fn func(ctx.Ctx) error) error
}

// Clock is the time source of the market usecases
type Clock func() time.Time
