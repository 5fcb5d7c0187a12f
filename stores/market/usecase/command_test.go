package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/item"
	"github.com/x-xyz/gomarket/domain/market"
	"github.com/x-xyz/gomarket/service/grid"
)

type commandSuite struct {
	suite.Suite

	w     *world
	sched *grid.Scheduler
	im    market.CommandUseCase
}

func TestCommandSuite(t *testing.T) {
	suite.Run(t, new(commandSuite))
}

func (s *commandSuite) SetupTest() {
	s.w = newWorld()
	s.sched = grid.NewScheduler(&grid.SchedulerCfg{})
	s.im = NewCommand(&CommandUseCaseCfg{
		Market: s.w.uc,
		Browse: NewBrowse(&BrowseUseCaseCfg{
			Market:          s.w.uc,
			NewGrid:         s.sched.NewContainer,
			RefreshInterval: time.Hour,
			Now:             s.w.clock.Now,
		}),
	})
}

func (s *commandSuite) TearDownTest() {
	s.sched.Stop()
}

func (s *commandSuite) TestAddDefaultsToOneUnit() {
	s.w.player("alice", item.New("minecraft:diamond", 5), 0)
	price := decimal.NewFromInt(10)

	res, err := s.im.Execute(mockCTX, "alice", market.Command{Op: market.OpAdd, Price: &price})
	s.Require().NoError(err)
	s.Require().NotNil(res.Listing)
	s.Equal(1, res.Listing.Item.Count)
	s.Equal("Listed 1x minecraft:diamond for 10", res.Message)
	s.Equal(4, s.w.hand("alice").Count)
}

func (s *commandSuite) TestView() {
	res, err := s.im.Execute(mockCTX, "bob", market.Command{Op: market.OpView})
	s.Require().NoError(err)
	s.Require().NotNil(res.Session)
	s.Equal(market.SessionOpen, res.Session.State)
	s.Len(res.Session.Slots, market.GridWidth*market.GridHeight)
}

func (s *commandSuite) TestExpired() {
	s.w.player("alice", item.New("minecraft:diamond", 5), 0)
	price := decimal.NewFromInt(1)
	amount := 2
	_, err := s.im.Execute(mockCTX, "alice", market.Command{Op: market.OpAdd, Price: &price, Amount: &amount})
	s.Require().NoError(err)
	s.w.clock.Advance(market.DefaultListingDuration)

	res, err := s.im.Execute(mockCTX, "alice", market.Command{Op: market.OpExpired})
	s.Require().NoError(err)
	s.Require().NotNil(res.Reclaimed)
	s.Equal(1, *res.Reclaimed)
	s.Equal(5, s.w.hand("alice").Count)
}

func (s *commandSuite) TestInvalidCommands() {
	_, err := s.im.Execute(mockCTX, "alice", market.Command{Op: "sell"})
	s.True(errors.Is(err, domain.ErrBadParamInput))

	_, err = s.im.Execute(mockCTX, "alice", market.Command{Op: market.OpAdd})
	s.True(errors.Is(err, domain.ErrBadParamInput))

	price := decimal.NewFromInt(1)
	_, err = s.im.Execute(mockCTX, "alice", market.Command{Op: market.OpExpired, Price: &price})
	s.True(errors.Is(err, domain.ErrBadParamInput))
}

func (s *commandSuite) TestQuotaMessage() {
	s.w.quota = 0
	s.w.player("alice", item.New("minecraft:diamond", 5), 0)
	price := decimal.NewFromInt(1)

	_, err := s.im.Execute(mockCTX, "alice", market.Command{Op: market.OpAdd, Price: &price})
	s.True(errors.Is(err, domain.ErrQuotaExceeded))
	s.EqualError(err, "You already have the maximum of 0 entries")
}
