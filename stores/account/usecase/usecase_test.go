package usecase

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/ptr"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/account"
	mAccount "github.com/x-xyz/gomarket/domain/account/mocks"
)

type accountSuite struct {
	suite.Suite

	players  *mAccount.PlayerRepo
	balances *mAccount.BalanceRepo
	uc       account.Usecase
}

func (s *accountSuite) SetupTest() {
	s.players = &mAccount.PlayerRepo{}
	s.balances = &mAccount.BalanceRepo{}
	s.uc = New(&AccountUseCaseCfg{Players: s.players, Balances: s.balances})
}

func (s *accountSuite) TearDownTest() {
	s.players.AssertExpectations(s.T())
	s.balances.AssertExpectations(s.T())
}

func (s *accountSuite) TestGet() {
	s.players.On("FindOne", mock.Anything, domain.UserId("alice")).Return(&account.Player{Id: "alice", Name: "Alice"}, nil)
	s.balances.On("Get", mock.Anything, domain.UserId("alice")).Return(decimal.NewFromInt(15), nil)

	res, err := s.uc.Get(ctx.Background(), "alice")
	s.Require().NoError(err)
	s.Equal("Alice", res.Player.Name)
	s.True(res.Balance.Equal(decimal.NewFromInt(15)))
}

func (s *accountSuite) TestGetUnknown() {
	s.players.On("FindOne", mock.Anything, domain.UserId("bob")).Return(nil, domain.ErrNotFound)

	_, err := s.uc.Get(ctx.Background(), "bob")
	s.Equal(domain.ErrNotFound, err)
}

func (s *accountSuite) TestGetBalanceError() {
	errDB := errors.New("db down")
	s.players.On("FindOne", mock.Anything, domain.UserId("alice")).Return(&account.Player{Id: "alice"}, nil)
	s.balances.On("Get", mock.Anything, domain.UserId("alice")).Return(decimal.Zero, errDB)

	_, err := s.uc.Get(ctx.Background(), "alice")
	s.Equal(errDB, err)
}

func (s *accountSuite) TestUpdate() {
	channel := "123456789"
	u := &account.Updater{DiscordChannel: ptr.String(channel)}
	s.players.On("Update", mock.Anything, domain.UserId("alice"), u).Return(nil)
	s.players.On("FindOne", mock.Anything, domain.UserId("alice")).Return(&account.Player{Id: "alice", DiscordChannel: channel}, nil)
	s.balances.On("Get", mock.Anything, domain.UserId("alice")).Return(decimal.Zero, nil)

	res, err := s.uc.Update(ctx.Background(), "alice", u)
	s.Require().NoError(err)
	s.Equal(channel, res.Player.DiscordChannel)
}

func (s *accountSuite) TestUpdateRejectsBadChannel() {
	_, err := s.uc.Update(ctx.Background(), "alice", &account.Updater{DiscordChannel: ptr.String("general")})
	s.True(errors.Is(err, domain.ErrBadParamInput))
}

func TestAccountUseCase(t *testing.T) {
	suite.Run(t, new(accountSuite))
}
