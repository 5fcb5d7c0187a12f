package account

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/item"
)

var (
	// ErrUnreachable is returned by a Notifier when the user can not be reached right now
	ErrUnreachable = errors.New("user unreachable")
	// ErrNotEnoughInHand is returned by TakeFromHand when the hand changed under us
	ErrNotEnoughInHand = errors.New("not enough items in hand")
)

// Location is a point in a world
type Location struct {
	World string  `json:"world" bson:"world"`
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`
	Z     float64 `json:"z" bson:"z"`
}

// Player is what the market knows about a user
type Player struct {
	Id        domain.UserId `json:"id" bson:"_id"`
	Name      string        `json:"name" bson:"name"`
	Hand      int           `json:"hand" bson:"hand"`
	Inventory Inventory     `json:"inventory" bson:"inventory"`
	Location  Location      `json:"location" bson:"location"`
	// DiscordChannel receives seller notifications when set
	DiscordChannel string    `json:"discordChannel,omitempty" bson:"discordChannel,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
	// Rev is bumped on every inventory write
	Rev int64 `json:"-" bson:"rev"`
}

// MainHand returns a copy of the selected slot
func (p *Player) MainHand() item.Item {
	if p.Hand < 0 || p.Hand >= len(p.Inventory) {
		return item.Empty()
	}
	return p.Inventory[p.Hand].Clone()
}

// Updater holds the fields a player may change, nil fields are kept
type Updater struct {
	Name           *string   `json:"name" bson:"name,omitempty" validate:"omitempty,min=1,max=32"`
	DiscordChannel *string   `json:"discordChannel" bson:"discordChannel,omitempty" validate:"omitempty,numeric,max=32"`
	UpdatedAt      time.Time `json:"-" bson:"updatedAt,omitempty"`
}

type PlayerRepo interface {
	// FindOne returns domain.ErrNotFound for an unknown player
	FindOne(c ctx.Ctx, id domain.UserId) (*Player, error)
	Upsert(c ctx.Ctx, p *Player) error
	// Update leaves the inventory alone, domain.ErrNotFound for an unknown player
	Update(c ctx.Ctx, id domain.UserId, u *Updater) error
}

// BalanceRepo holds the currency accounts
type BalanceRepo interface {
	// Get returns zero for a user without an account
	Get(c ctx.Ctx, user domain.UserId) (decimal.Decimal, error)
	Adjust(c ctx.Ctx, user domain.UserId, delta decimal.Decimal) error
}

type InventoryRepo interface {
	MainHand(c ctx.Ctx, user domain.UserId) (item.Item, error)
	// TakeFromHand removes amount units from the main hand and returns them
	// as one stack, ErrNotEnoughInHand if the hand holds fewer
	TakeFromHand(c ctx.Ctx, user domain.UserId, amount int) (item.Item, error)
	// Give stores the whole stack or nothing, it reports false when there
	// is no room
	Give(c ctx.Ctx, user domain.UserId, it item.Item) (bool, error)
}

// Dropped is an item left on the ground
type Dropped struct {
	Id        string        `json:"id" bson:"_id"`
	UserId    domain.UserId `json:"userId" bson:"userId"`
	Item      item.Item     `json:"item" bson:"item"`
	Location  Location      `json:"location" bson:"location"`
	DroppedAt time.Time     `json:"droppedAt" bson:"droppedAt"`
}

// WorldRepo places items in the world
type WorldRepo interface {
	// DropAt leaves it on the ground at the user's location
	DropAt(c ctx.Ctx, user domain.UserId, it item.Item) error
}

// Notice is a notification on display
type Notice interface {
	Dismiss(c ctx.Ctx) error
}

type Notifier interface {
	// Notify shows title and lines to user, ErrUnreachable if the user can
	// not be reached
	Notify(c ctx.Ctx, user domain.UserId, title string, lines []string) (Notice, error)
}

// Profile is what a player sees of its own account
type Profile struct {
	Player  *Player         `json:"player"`
	Balance decimal.Decimal `json:"balance"`
}

type Usecase interface {
	Get(c ctx.Ctx, user domain.UserId) (*Profile, error)
	Update(c ctx.Ctx, user domain.UserId, u *Updater) (*Profile, error)
}
