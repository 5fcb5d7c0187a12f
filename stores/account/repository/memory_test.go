package repository

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/account"
	"github.com/x-xyz/gomarket/domain/item"
)

type memorySuite struct {
	suite.Suite

	im *Memory
}

func TestMemorySuite(t *testing.T) {
	suite.Run(t, new(memorySuite))
}

func (s *memorySuite) SetupTest() {
	s.im = NewMemory(nil)
	inv := account.NewInventory(2)
	inv[0] = item.New("minecraft:diamond", 64)
	s.Require().NoError(s.im.Upsert(mockCTX, &account.Player{Id: "alice", Inventory: inv}))
}

func (s *memorySuite) TestTakeWholeStackEmptiesHand() {
	taken, err := s.im.TakeFromHand(mockCTX, "alice", 64)
	s.Require().NoError(err)
	s.Equal(64, taken.Count)

	hand, err := s.im.MainHand(mockCTX, "alice")
	s.Require().NoError(err)
	s.True(hand.IsNothing())

	_, err = s.im.TakeFromHand(mockCTX, "alice", 1)
	s.Equal(account.ErrNotEnoughInHand, err)
}

func (s *memorySuite) TestGiveUntilFull() {
	ok, err := s.im.Give(mockCTX, "alice", item.New("minecraft:stone", 64))
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.im.Give(mockCTX, "alice", item.New("minecraft:stone", 1))
	s.Require().NoError(err)
	s.False(ok, "both slots are full stacks")

	_, err = s.im.Give(mockCTX, "nobody", item.New("minecraft:stone", 1))
	s.Equal(domain.ErrNotFound, err)
}

func (s *memorySuite) TestGround() {
	s.NoError(s.im.DropAt(mockCTX, "alice", item.New("minecraft:stone", 3)))
	s.Equal([]item.Item{item.New("minecraft:stone", 3)}, s.im.Ground("alice"))
	s.Empty(s.im.Ground("bob"))
}

func (s *memorySuite) TestBalances() {
	got, err := s.im.Get(mockCTX, "alice")
	s.Require().NoError(err)
	s.True(got.IsZero())

	s.NoError(s.im.Adjust(mockCTX, "alice", decimal.NewFromInt(15)))
	s.NoError(s.im.Adjust(mockCTX, "alice", decimal.NewFromInt(-10)))
	got, _ = s.im.Get(mockCTX, "alice")
	s.True(decimal.NewFromInt(5).Equal(got))
}

func (s *memorySuite) TestCopies() {
	p, err := s.im.FindOne(mockCTX, "alice")
	s.Require().NoError(err)
	p.Inventory[0].Count = 1

	hand, _ := s.im.MainHand(mockCTX, "alice")
	s.Equal(64, hand.Count)
}
