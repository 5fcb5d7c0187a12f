package usecase

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/account"
	mAccount "github.com/x-xyz/gomarket/domain/account/mocks"
	"github.com/x-xyz/gomarket/domain/item"
	"github.com/x-xyz/gomarket/domain/market"
	"github.com/x-xyz/gomarket/service/annotation"
	"github.com/x-xyz/gomarket/service/lock"
	marketRepo "github.com/x-xyz/gomarket/stores/market/repository"
)

type purchaseSuite struct {
	suite.Suite

	w         *world
	inventory *mAccount.InventoryRepo
	ground    *mAccount.WorldRepo
	notifier  *mAccount.Notifier
	uc        market.UseCase
}

func TestPurchaseSuite(t *testing.T) {
	suite.Run(t, new(purchaseSuite))
}

func (s *purchaseSuite) SetupTest() {
	s.w = newWorld()
	s.inventory = &mAccount.InventoryRepo{}
	s.ground = &mAccount.WorldRepo{}
	s.notifier = &mAccount.Notifier{}
	s.uc = New(&MarketUseCaseCfg{
		Repo:            s.w.repo,
		Transactor:      marketRepo.NewMemoryTransactor(),
		Balances:        s.w.accounts,
		Inventory:       s.inventory,
		World:           s.ground,
		Notifier:        s.notifier,
		Locker:          lock.NewLocal(),
		NotificationTTL: 10 * time.Millisecond,
		Now:             s.w.clock.Now,
	})
	s.w.player("alice", item.Empty(), 0)
	s.w.player("bob", item.Empty(), 100)
}

func (s *purchaseSuite) TearDownTest() {
	s.inventory.AssertExpectations(s.T())
	s.ground.AssertExpectations(s.T())
	s.notifier.AssertExpectations(s.T())
}

// listed stores a diamond listing of alice priced price
func (s *purchaseSuite) listed(id string, price int64) *market.Listing {
	now := s.w.clock.Now()
	l := &market.Listing{
		Id:         market.ListingId(id),
		SellerId:   "alice",
		SellerName: "alice",
		Item:       annotation.Annotate(item.New("minecraft:diamond", 1), annotation.ListingLines(decimal.NewFromInt(price), "alice", time.Hour)),
		Price:      decimal.NewFromInt(price),
		Expiry:     now.Add(time.Hour),
		CreatedAt:  now,
	}
	s.Require().NoError(s.w.repo.Create(mockCTX, l))
	return l
}

var plainDiamond = mock.MatchedBy(func(it item.Item) bool {
	return it.Type == "minecraft:diamond" && it.Count == 1 && !annotation.IsAnnotated(it)
})

func (s *purchaseSuite) TestDropFailureIsReported() {
	l := s.listed("l1", 10)
	dropErr := errors.New("world unloaded")
	s.inventory.On("Give", mock.Anything, domain.UserId("bob"), plainDiamond).Return(false, nil).Once()
	s.ground.On("DropAt", mock.Anything, domain.UserId("bob"), plainDiamond).Return(dropErr).Once()

	receipt, err := s.uc.Purchase(mockCTX, "bob", l)
	s.Equal(dropErr, err)
	s.Nil(receipt)
	// the sale itself is committed
	s.Empty(s.w.all())
	s.True(decimal.NewFromInt(90).Equal(s.w.balance("bob")))
	s.True(decimal.NewFromInt(10).Equal(s.w.balance("alice")))
	s.notifier.AssertNotCalled(s.T(), "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *purchaseSuite) TestGiveErrorFallsBackToGround() {
	l := s.listed("l1", 10)
	s.inventory.On("Give", mock.Anything, domain.UserId("bob"), plainDiamond).Return(false, errors.New("db down")).Once()
	s.ground.On("DropAt", mock.Anything, domain.UserId("bob"), plainDiamond).Return(nil).Once()
	s.notifier.On("Notify", mock.Anything, domain.UserId("alice"), "Item sold!", mock.Anything).Return(nil, account.ErrUnreachable).Once()

	receipt, err := s.uc.Purchase(mockCTX, "bob", l)
	s.Require().NoError(err)
	s.True(receipt.Dropped)
}

func (s *purchaseSuite) TestDismissErrorIsIgnored() {
	l := s.listed("l1", 10)
	notice := &mAccount.Notice{}
	dismissed := make(chan struct{})
	notice.On("Dismiss", mock.Anything).Return(errors.New("message deleted")).Once().Run(func(mock.Arguments) {
		close(dismissed)
	})
	s.inventory.On("Give", mock.Anything, domain.UserId("bob"), plainDiamond).Return(true, nil).Once()
	s.notifier.On("Notify", mock.Anything, domain.UserId("alice"), "Item sold!", mock.Anything).Return(notice, nil).Once()

	receipt, err := s.uc.Purchase(mockCTX, "bob", l)
	s.Require().NoError(err)
	s.False(receipt.Dropped)

	select {
	case <-dismissed:
	case <-time.After(time.Second):
		s.Fail("notice never dismissed")
	}
}

func (s *purchaseSuite) TestNotifyErrorIsIgnored() {
	l := s.listed("l1", 10)
	s.inventory.On("Give", mock.Anything, domain.UserId("bob"), plainDiamond).Return(true, nil).Once()
	s.notifier.On("Notify", mock.Anything, domain.UserId("alice"), "Item sold!", mock.Anything).Return(nil, errors.New("discord down")).Once()

	_, err := s.uc.Purchase(mockCTX, "bob", l)
	s.NoError(err)
}

func (s *purchaseSuite) TestSameBuyerNeverOverdraws() {
	s.Require().NoError(s.w.accounts.Adjust(mockCTX, "bob", decimal.NewFromInt(-90)))
	const n = 8
	ls := make([]*market.Listing, n)
	for i := range ls {
		ls[i] = s.listed(string(rune('a'+i)), 10)
	}
	s.inventory.On("Give", mock.Anything, domain.UserId("bob"), plainDiamond).Return(true, nil)
	s.notifier.On("Notify", mock.Anything, domain.UserId("alice"), "Item sold!", mock.Anything).Return(nil, account.ErrUnreachable)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		wins   int
		broke  int
		others []error
	)
	for _, l := range ls {
		wg.Add(1)
		go func(l *market.Listing) {
			defer wg.Done()
			_, err := s.uc.Purchase(mockCTX, "bob", l)
			mu.Lock()
			defer mu.Unlock()
			switch err {
			case nil:
				wins++
			case domain.ErrInsufficientFunds:
				broke++
			default:
				others = append(others, err)
			}
		}(l)
	}
	wg.Wait()

	s.Empty(others)
	s.Equal(1, wins)
	s.Equal(n-1, broke)
	s.True(decimal.Zero.Equal(s.w.balance("bob")))
	s.True(decimal.NewFromInt(10).Equal(s.w.balance("alice")))
	s.Len(s.w.all(), n-1)
}
