package usecase

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/account"
	"github.com/x-xyz/gomarket/domain/item"
	"github.com/x-xyz/gomarket/domain/market"
	mMarket "github.com/x-xyz/gomarket/domain/market/mocks"
	"github.com/x-xyz/gomarket/service/annotation"
	"github.com/x-xyz/gomarket/service/cache"
	"github.com/x-xyz/gomarket/service/cache/provider/primitive"
	"github.com/x-xyz/gomarket/service/lock"
)

type marketSuite struct {
	suite.Suite

	w *world
}

func TestMarketSuite(t *testing.T) {
	suite.Run(t, new(marketSuite))
}

func (s *marketSuite) SetupTest() {
	s.w = newWorld()
}

func (s *marketSuite) add(seller domain.UserId, price int64, amount int) *market.Listing {
	l, err := s.w.uc.Add(mockCTX, seller, decimal.NewFromInt(price), amount)
	s.Require().NoError(err)
	return l
}

func (s *marketSuite) TestEndToEndPurchase() {
	s.w.player("alice", item.New("minecraft:diamond", 1), 0)
	s.w.player("bob", item.Empty(), 15)

	l := s.add("alice", 10, 1)
	s.True(annotation.IsAnnotated(l.Item))
	s.Equal(l.CreatedAt.Add(market.DefaultListingDuration), l.Expiry)

	receipt, err := s.w.uc.Purchase(mockCTX, "bob", l)
	s.Require().NoError(err)
	s.False(receipt.Dropped)
	s.Equal(l.Id, receipt.ListingId)

	s.True(decimal.NewFromInt(5).Equal(s.w.balance("bob")))
	s.True(decimal.NewFromInt(10).Equal(s.w.balance("alice")))
	s.Empty(s.w.all())
	s.Equal(item.New("minecraft:diamond", 1), s.w.hand("bob"))
}

func (s *marketSuite) TestAddWholeStackEmptiesHand() {
	s.w.player("alice", item.New("minecraft:stone", 64), 0)

	l := s.add("alice", 1, 64)
	s.Equal(64, l.Item.Count)
	s.True(s.w.hand("alice").IsNothing())
}

func (s *marketSuite) TestAddKeepsMetadata() {
	hand := item.New("minecraft:diamond_sword", 1)
	hand.Payload = []byte{1, 2, 3}
	hand.Meta = &item.Meta{
		Display:    &item.Display{Name: "Excalibur", Lore: []string{"old"}},
		Attributes: map[string]string{"sharpness": "5"},
	}
	s.w.player("alice", hand, 0)
	s.w.player("bob", item.Empty(), 100)

	l := s.add("alice", 50, 1)
	_, err := s.w.uc.Purchase(mockCTX, "bob", l)
	s.Require().NoError(err)
	s.Equal(hand, s.w.hand("bob"))
}

func (s *marketSuite) TestInsufficientFundsChangesNothing() {
	s.w.player("alice", item.New("minecraft:diamond", 1), 0)
	s.w.player("bob", item.Empty(), 5)
	l := s.add("alice", 10, 1)

	_, err := s.w.uc.Purchase(mockCTX, "bob", l)
	s.Equal(domain.ErrInsufficientFunds, err)

	s.Len(s.w.all(), 1)
	s.True(decimal.NewFromInt(5).Equal(s.w.balance("bob")))
	s.True(s.w.balance("alice").IsZero())
	s.True(s.w.hand("bob").IsNothing())
}

func (s *marketSuite) TestConcurrentPurchaseExactlyOnce() {
	s.w.player("alice", item.New("minecraft:diamond", 1), 0)
	l := s.add("alice", 10, 1)

	const buyers = 20
	ids := []domain.UserId{}
	for i := 0; i < buyers; i++ {
		id := domain.UserId(string(rune('a'+i)) + "-buyer")
		s.w.player(id, item.Empty(), 100)
		ids = append(ids, id)
	}

	wg := sync.WaitGroup{}
	mu := sync.Mutex{}
	wins, gone := 0, 0
	for _, id := range ids {
		wg.Add(1)
		go func(id domain.UserId) {
			defer wg.Done()
			_, err := s.w.uc.Purchase(mockCTX, id, l)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
			} else if errors.Is(err, domain.ErrListingGone) {
				gone++
			}
		}(id)
	}
	wg.Wait()

	s.Equal(1, wins)
	s.Equal(buyers-1, gone)

	total := s.w.balance("alice")
	for _, id := range ids {
		total = total.Add(s.w.balance(id))
	}
	s.True(decimal.NewFromInt(100*buyers).Equal(total), "currency is conserved")
	s.True(decimal.NewFromInt(10).Equal(s.w.balance("alice")))
}

func (s *marketSuite) TestConcurrentAddNeverExceedsQuota() {
	s.w.player("alice", item.New("minecraft:stone", 64), 0)

	wg := sync.WaitGroup{}
	mu := sync.Mutex{}
	created, rejected := 0, 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.w.uc.Add(mockCTX, "alice", decimal.NewFromInt(1), 1)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
			} else if errors.Is(err, domain.ErrQuotaExceeded) {
				rejected++
			}
		}()
	}
	wg.Wait()

	s.Equal(s.w.quota, created)
	s.Equal(10-s.w.quota, rejected)
	n, err := s.w.repo.Count(mockCTX, market.WithSeller("alice"))
	s.Require().NoError(err)
	s.Equal(s.w.quota, n)
	s.Equal(64-s.w.quota, s.w.hand("alice").Count)
}

func (s *marketSuite) TestQuotaIsReadOnEveryCheck() {
	s.w.player("alice", item.New("minecraft:stone", 64), 0)
	s.w.quota = 1
	s.add("alice", 1, 1)

	_, err := s.w.uc.Add(mockCTX, "alice", decimal.NewFromInt(1), 1)
	s.True(errors.Is(err, domain.ErrQuotaExceeded))
	s.EqualError(err, "You already have the maximum of 1 entries")

	s.w.quota = 2
	s.add("alice", 1, 1)
}

func (s *marketSuite) TestAddInvalidHand() {
	s.w.player("alice", item.Empty(), 0)
	s.w.player("bob", item.New("minecraft:stone", 2), 0)

	_, err := s.w.uc.Add(mockCTX, "alice", decimal.NewFromInt(1), 0)
	s.True(errors.Is(err, domain.ErrInvalidItem))
	s.EqualError(err, "You are not holding anything!")

	_, err = s.w.uc.Add(mockCTX, "alice", decimal.NewFromInt(1), 1)
	s.True(errors.Is(err, domain.ErrInvalidItem))

	_, err = s.w.uc.Add(mockCTX, "bob", decimal.NewFromInt(1), 3)
	s.True(errors.Is(err, domain.ErrInvalidItem))
	s.EqualError(err, "Your hand doesn't contain 3 items!")

	_, err = s.w.uc.Add(mockCTX, "bob", decimal.NewFromInt(1), 0)
	s.True(errors.Is(err, domain.ErrInvalidItem))

	_, err = s.w.uc.Add(mockCTX, "bob", decimal.NewFromInt(-1), 1)
	s.True(errors.Is(err, domain.ErrBadParamInput))

	s.Equal(2, s.w.hand("bob").Count)
	s.Empty(s.w.all())
}

func (s *marketSuite) TestCreateFailureGivesItemsBack() {
	s.w.player("alice", item.New("minecraft:stone", 10), 0)
	repo := &mMarket.Repo{}
	repo.On("Count", mockCTX, mock.Anything).Return(0, nil)
	repo.On("Create", mockCTX, mock.Anything).Return(errors.New("db down"))

	uc := New(&MarketUseCaseCfg{
		Repo:      repo,
		Inventory: s.w.accounts,
		World:     s.w.accounts,
		Locker:    lock.NewLocal(),
		Now:       s.w.clock.Now,
	})
	_, err := uc.Add(mockCTX, "alice", decimal.NewFromInt(1), 4)
	s.EqualError(err, "db down")
	s.Equal(item.New("minecraft:stone", 10), s.w.hand("alice"))
	repo.AssertExpectations(s.T())
}

func (s *marketSuite) TestExpiredListingIsGone() {
	s.w.player("alice", item.New("minecraft:diamond", 1), 0)
	s.w.player("bob", item.Empty(), 100)
	l := s.add("alice", 10, 1)

	s.w.clock.Advance(market.DefaultListingDuration)
	_, err := s.w.uc.Purchase(mockCTX, "bob", l)
	s.Equal(domain.ErrListingGone, err)
	s.True(decimal.NewFromInt(100).Equal(s.w.balance("bob")))
}

func (s *marketSuite) TestPurchaseDropsWhenInventoryFull() {
	s.w.player("alice", item.New("minecraft:diamond", 1), 0)
	s.w.player("bob", item.Empty(), 100)
	s.w.fill("bob")
	l := s.add("alice", 10, 1)

	receipt, err := s.w.uc.Purchase(mockCTX, "bob", l)
	s.Require().NoError(err)
	s.True(receipt.Dropped)
	s.Equal([]item.Item{item.New("minecraft:diamond", 1)}, s.w.accounts.Ground("bob"))
}

func (s *marketSuite) TestSellerNotifiedAndDismissed() {
	s.w.player("alice", item.New("minecraft:diamond", 2), 0)
	s.w.player("bob", item.Empty(), 100)
	s.w.board.Touch("alice")
	l := s.add("alice", 10, 2)

	_, err := s.w.uc.Purchase(mockCTX, "bob", l)
	s.Require().NoError(err)

	msgs := s.w.board.Messages("alice")
	s.Require().Len(msgs, 1)
	s.Equal("Item sold!", msgs[0].Title)
	s.Equal([]string{"One of your items was sold!", "", "Item: 2x minecraft:diamond", "Price: 10"}, msgs[0].Lines)

	s.Eventually(func() bool { return len(s.w.board.Messages("alice")) == 0 }, time.Second, 5*time.Millisecond)
}

func (s *marketSuite) TestUnreachableSellerDoesNotFailPurchase() {
	s.w.player("alice", item.New("minecraft:diamond", 1), 0)
	s.w.player("bob", item.Empty(), 100)
	l := s.add("alice", 10, 1)

	_, err := s.w.uc.Purchase(mockCTX, "bob", l)
	s.NoError(err)
	s.Empty(s.w.board.Messages("alice"))
}

func (s *marketSuite) TestReclaimScope() {
	s.w.quota = 5
	s.w.player("alice", item.New("minecraft:diamond", 3), 0)
	s.w.player("bob", item.New("minecraft:emerald", 1), 0)

	s.add("alice", 1, 1)
	s.add("bob", 1, 1)
	s.w.clock.Advance(market.DefaultListingDuration)
	fresh := s.add("alice", 1, 1)

	n, err := s.w.uc.ReclaimExpired(mockCTX, "alice")
	s.Require().NoError(err)
	s.Equal(1, n)
	s.Equal(2, s.w.hand("alice").Count)
	s.Nil(s.w.hand("alice").Meta)

	left := s.w.all()
	s.Require().Len(left, 2)
	s.Equal(domain.UserId("bob"), left[0].SellerId)
	s.Equal(fresh.Id, left[1].Id)

	n, err = s.w.uc.ReclaimExpired(mockCTX, "alice")
	s.Require().NoError(err)
	s.Equal(0, n)
}

func (s *marketSuite) TestReclaimDropsWhenInventoryFull() {
	s.w.player("alice", item.New("minecraft:diamond", 1), 0)
	s.add("alice", 1, 1)
	s.w.fill("alice")
	s.w.clock.Advance(market.DefaultListingDuration)

	n, err := s.w.uc.ReclaimExpired(mockCTX, "alice")
	s.Require().NoError(err)
	s.Equal(1, n)
	s.Equal([]item.Item{item.New("minecraft:diamond", 1)}, s.w.accounts.Ground("alice"))
}

func (s *marketSuite) TestActiveSnapshotIsInvalidated() {
	uc := New(&MarketUseCaseCfg{
		Repo:      s.w.repo,
		Balances:  s.w.accounts,
		Inventory: s.w.accounts,
		World:     s.w.accounts,
		Locker:    lock.NewLocal(),
		Snapshot: cache.New(cache.ServiceConfig{
			TTL:   time.Minute,
			Pfx:   "test",
			Cache: primitive.NewPrimitive("test", 1),
		}),
		Now: s.w.clock.Now,
	})
	s.w.player("alice", item.New("minecraft:diamond", 2), 0)

	active, err := uc.Active(mockCTX)
	s.Require().NoError(err)
	s.Empty(active)

	l, err := uc.Add(mockCTX, "alice", decimal.NewFromInt(3), 1)
	s.Require().NoError(err)
	active, err = uc.Active(mockCTX)
	s.Require().NoError(err)
	s.Require().Len(active, 1)
	s.Equal(l.Id, active[0].Id)
	s.True(l.Price.Equal(active[0].Price))

	// cached entries past their expiry are filtered out
	s.w.clock.Advance(market.DefaultListingDuration)
	active, err = uc.Active(mockCTX)
	s.Require().NoError(err)
	s.Empty(active)
}

func (s *marketSuite) TestNotEnoughInHandRace() {
	inv := &raceInventory{Memory: s.w.accounts}
	s.w.player("alice", item.New("minecraft:stone", 5), 0)
	uc := New(&MarketUseCaseCfg{
		Repo:      s.w.repo,
		Inventory: inv,
		World:     s.w.accounts,
		Locker:    lock.NewLocal(),
		Now:       s.w.clock.Now,
	})
	_, err := uc.Add(mockCTX, "alice", decimal.NewFromInt(1), 5)
	s.True(errors.Is(err, domain.ErrInvalidItem))
	s.Empty(s.w.all())
}

// raceInventory loses the hand between the check and the take
type raceInventory struct {
	Memory account.InventoryRepo
}

func (r *raceInventory) MainHand(c ctx.Ctx, user domain.UserId) (item.Item, error) {
	return r.Memory.MainHand(c, user)
}

func (r *raceInventory) TakeFromHand(c ctx.Ctx, user domain.UserId, amount int) (item.Item, error) {
	return item.Empty(), account.ErrNotEnoughInHand
}

func (r *raceInventory) Give(c ctx.Ctx, user domain.UserId, it item.Item) (bool, error) {
	return r.Memory.Give(c, user, it)
}
