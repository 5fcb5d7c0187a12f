package usecase

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/account"
	"github.com/x-xyz/gomarket/domain/item"
	"github.com/x-xyz/gomarket/domain/market"
	"github.com/x-xyz/gomarket/service/lock"
	"github.com/x-xyz/gomarket/service/notifier"
	accountRepo "github.com/x-xyz/gomarket/stores/account/repository"
	marketRepo "github.com/x-xyz/gomarket/stores/market/repository"
)

var mockCTX = ctx.Background()

// clock is a settable time source
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2022, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// world wires a market usecase on in-process stores
type world struct {
	clock    *clock
	repo     market.Repo
	accounts *accountRepo.Memory
	board    *notifier.Board
	quota    int
	uc       market.UseCase
}

func newWorld() *world {
	w := &world{
		clock: newClock(),
		repo:  marketRepo.NewMemoryListingRepo(),
		quota: market.DefaultMaxListingsPerUser,
	}
	w.accounts = accountRepo.NewMemory(w.clock.Now)
	w.board = notifier.NewBoard(&notifier.BoardCfg{Now: w.clock.Now})
	w.uc = New(&MarketUseCaseCfg{
		Repo:               w.repo,
		Transactor:         marketRepo.NewMemoryTransactor(),
		Balances:           w.accounts,
		Inventory:          w.accounts,
		World:              w.accounts,
		Players:            w.accounts,
		Notifier:           w.board,
		Locker:             lock.NewLocal(),
		MaxListingsPerUser: func() int { return w.quota },
		NotificationTTL:    20 * time.Millisecond,
		Now:                w.clock.Now,
	})
	return w
}

// player registers user holding hand with balance
func (w *world) player(user domain.UserId, hand item.Item, balance int64) {
	inv := account.NewInventory(account.DefaultInventorySize)
	inv[0] = hand
	if err := w.accounts.Upsert(mockCTX, &account.Player{Id: user, Name: string(user), Inventory: inv}); err != nil {
		panic(err)
	}
	if balance != 0 {
		if err := w.accounts.Adjust(mockCTX, user, decimal.NewFromInt(balance)); err != nil {
			panic(err)
		}
	}
}

// fill occupies every slot of user's inventory
func (w *world) fill(user domain.UserId) {
	p, err := w.accounts.FindOne(mockCTX, user)
	if err != nil {
		panic(err)
	}
	for i := range p.Inventory {
		p.Inventory[i] = item.New("minecraft:cobblestone", item.MaxStack)
	}
	if err := w.accounts.Upsert(mockCTX, p); err != nil {
		panic(err)
	}
}

func (w *world) balance(user domain.UserId) decimal.Decimal {
	b, err := w.accounts.Get(mockCTX, user)
	if err != nil {
		panic(err)
	}
	return b
}

func (w *world) hand(user domain.UserId) item.Item {
	it, err := w.accounts.MainHand(mockCTX, user)
	if err != nil {
		panic(err)
	}
	return it
}

func (w *world) all() []*market.Listing {
	ls, err := w.repo.FindAll(mockCTX)
	if err != nil {
		panic(err)
	}
	return ls
}
