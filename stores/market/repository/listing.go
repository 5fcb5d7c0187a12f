package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/database/mongoclient"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/market"
	"github.com/x-xyz/gomarket/service/query"
)

// creation order, _id breaks ties between listings created in the same instant
var listingSort = []string{"createdAt", "_id"}

// ListingIndexes are the indexes the listing queries rely on
var ListingIndexes = []mongoclient.Index{
	{Keys: bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}},
	{Keys: bson.D{{Key: "sellerId", Value: 1}, {Key: "expiry", Value: 1}}},
	{Keys: bson.D{{Key: "expiry", Value: 1}, {Key: "createdAt", Value: 1}}},
}

type listingRepoImpl struct {
	query query.Mongo
}

// NewListingRepo creates the mongo backed listing store
func NewListingRepo(query query.Mongo) market.Repo {
	return &listingRepoImpl{query: query}
}

func (im *listingRepoImpl) Create(c ctx.Ctx, l *market.Listing) error {
	if err := im.query.Insert(c, domain.TableListings, l); err != nil {
		c.WithFields(log.Fields{
			"id":  l.Id,
			"err": err,
		}).Error("query.Insert failed")
		return err
	}
	return nil
}

func (im *listingRepoImpl) FindAll(c ctx.Ctx, optFns ...market.FindAllOptionsFunc) ([]*market.Listing, error) {
	opts, err := market.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("market.GetFindAllOptions failed")
		return nil, err
	}

	offset, limit := 0, 0
	if opts.Offset != nil {
		offset = int(*opts.Offset)
	}
	if opts.Limit != nil {
		limit = int(*opts.Limit)
		if limit == 0 {
			return []*market.Listing{}, nil
		}
	}

	res := []*market.Listing{}
	if err := im.query.Search(c, domain.TableListings, offset, limit, listingSort, makeQuery(opts), &res); err != nil {
		c.WithFields(log.Fields{
			"opts": opts,
			"err":  err,
		}).Error("query.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *listingRepoImpl) FindOne(c ctx.Ctx, id market.ListingId) (*market.Listing, error) {
	res := &market.Listing{}
	if err := im.query.FindOne(c, domain.TableListings, bson.M{"_id": id}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("query.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *listingRepoImpl) Count(c ctx.Ctx, optFns ...market.FindAllOptionsFunc) (int, error) {
	opts, err := market.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("market.GetFindAllOptions failed")
		return 0, err
	}

	n, err := im.query.Count(c, domain.TableListings, makeQuery(opts))
	if err != nil {
		c.WithFields(log.Fields{
			"opts": opts,
			"err":  err,
		}).Error("query.Count failed")
		return 0, err
	}
	return n, nil
}

func (im *listingRepoImpl) Remove(c ctx.Ctx, id market.ListingId) (bool, error) {
	if err := im.query.Remove(c, domain.TableListings, bson.M{"_id": id}); err == query.ErrNotFound {
		return false, nil
	} else if err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("query.Remove failed")
		return false, err
	}
	return true, nil
}

func makeQuery(opts market.FindAllOptions) bson.M {
	res := bson.M{}
	if opts.SellerId != nil {
		res["sellerId"] = *opts.SellerId
	}
	expiry := bson.M{}
	if opts.ExpiryGT != nil {
		expiry["$gt"] = *opts.ExpiryGT
	}
	if opts.ExpiryLTE != nil {
		expiry["$lte"] = *opts.ExpiryLTE
	}
	if len(expiry) > 0 {
		res["expiry"] = expiry
	}
	return res
}
