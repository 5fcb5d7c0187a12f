package repository

import (
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/account"
	"github.com/x-xyz/gomarket/service/query"
)

type balance struct {
	Id     domain.UserId   `bson:"_id"`
	Amount decimal.Decimal `bson:"amount"`
}

type balanceRepoImpl struct {
	query query.Mongo
}

// NewBalanceRepo creates the mongo backed currency accounts, amounts are
// stored as Decimal128
func NewBalanceRepo(query query.Mongo) account.BalanceRepo {
	return &balanceRepoImpl{query: query}
}

func (im *balanceRepoImpl) Get(c ctx.Ctx, user domain.UserId) (decimal.Decimal, error) {
	res := &balance{}
	if err := im.query.FindOne(c, domain.TableBalances, bson.M{"_id": user}, res); err == query.ErrNotFound {
		return decimal.Zero, nil
	} else if err != nil {
		c.WithFields(log.Fields{
			"user": user,
			"err":  err,
		}).Error("query.FindOne failed")
		return decimal.Zero, err
	}
	return res.Amount, nil
}

func (im *balanceRepoImpl) Adjust(c ctx.Ctx, user domain.UserId, delta decimal.Decimal) error {
	res := &balance{}
	if err := im.query.Increment(c, domain.TableBalances, bson.M{"_id": user}, bson.M{"amount": delta}, res); err != nil {
		c.WithFields(log.Fields{
			"user":  user,
			"delta": delta,
			"err":   err,
		}).Error("query.Increment failed")
		return err
	}
	return nil
}
