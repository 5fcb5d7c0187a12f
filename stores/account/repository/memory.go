package repository

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/account"
	"github.com/x-xyz/gomarket/domain/item"
)

// Memory keeps players, balances and the ground in process. It serves every
// account collaborator of the market.
type Memory struct {
	mu       sync.Mutex
	now      domain.Clock
	players  map[domain.UserId]*account.Player
	balances map[domain.UserId]decimal.Decimal
	ground   []*account.Dropped
}

func NewMemory(now domain.Clock) *Memory {
	if now == nil {
		now = time.Now
	}
	return &Memory{
		now:      now,
		players:  map[domain.UserId]*account.Player{},
		balances: map[domain.UserId]decimal.Decimal{},
	}
}

func clonePlayer(p *account.Player) *account.Player {
	res := *p
	res.Inventory = p.Inventory.Clone()
	return &res
}

func (m *Memory) FindOne(c ctx.Ctx, id domain.UserId) (*account.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.players[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clonePlayer(p), nil
}

func (m *Memory) Upsert(c ctx.Ctx, p *account.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.players[p.Id] = clonePlayer(p)
	return nil
}

func (m *Memory) Update(c ctx.Ctx, id domain.UserId, u *account.Updater) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.players[id]
	if !ok {
		return domain.ErrNotFound
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.DiscordChannel != nil {
		p.DiscordChannel = *u.DiscordChannel
	}
	p.UpdatedAt = m.now()
	return nil
}

func (m *Memory) Get(c ctx.Ctx, user domain.UserId) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.balances[user], nil
}

func (m *Memory) Adjust(c ctx.Ctx, user domain.UserId, delta decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.balances[user] = m.balances[user].Add(delta)
	return nil
}

func (m *Memory) MainHand(c ctx.Ctx, user domain.UserId) (item.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.players[user]
	if !ok {
		return item.Empty(), domain.ErrNotFound
	}
	return p.MainHand(), nil
}

func (m *Memory) TakeFromHand(c ctx.Ctx, user domain.UserId, amount int) (item.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.players[user]
	if !ok {
		return item.Empty(), domain.ErrNotFound
	}
	taken, err := takeFromHand(p, amount)
	if err != nil {
		return item.Empty(), err
	}
	p.Rev++
	p.UpdatedAt = m.now()
	return taken, nil
}

func (m *Memory) Give(c ctx.Ctx, user domain.UserId, it item.Item) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.players[user]
	if !ok {
		return false, domain.ErrNotFound
	}
	if !give(p, it) {
		return false, nil
	}
	p.Rev++
	p.UpdatedAt = m.now()
	return true, nil
}

func (m *Memory) DropAt(c ctx.Ctx, user domain.UserId, it item.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	loc := account.Location{}
	if p, ok := m.players[user]; ok {
		loc = p.Location
	}
	m.ground = append(m.ground, &account.Dropped{
		Id:        newDropId(),
		UserId:    user,
		Item:      it.Clone(),
		Location:  loc,
		DroppedAt: m.now(),
	})
	return nil
}

// Ground returns the items dropped for user, oldest first
func (m *Memory) Ground(user domain.UserId) []item.Item {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := []item.Item{}
	for _, d := range m.ground {
		if d.UserId == user {
			res = append(res, d.Item.Clone())
		}
	}
	return res
}
