package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/gomarket/base/backoff"
	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/database/mongoclient"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/account"
	"github.com/x-xyz/gomarket/domain/item"
	"github.com/x-xyz/gomarket/service/query"
)

const maxInventoryAttempts = 5

// GroundIndexes are the indexes of the ground collection
var GroundIndexes = []mongoclient.Index{
	{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "droppedAt", Value: 1}}},
}

type Players struct {
	query query.Mongo
	now   domain.Clock
}

// NewPlayers creates the mongo backed player store, it also serves the
// inventory and ground collaborators of the market
func NewPlayers(query query.Mongo, now domain.Clock) *Players {
	if now == nil {
		now = time.Now
	}
	return &Players{query: query, now: now}
}

func (im *Players) FindOne(c ctx.Ctx, id domain.UserId) (*account.Player, error) {
	res := &account.Player{}
	if err := im.query.FindOne(c, domain.TablePlayers, bson.M{"_id": id}, res); err == query.ErrNotFound {
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

func (im *Players) Upsert(c ctx.Ctx, p *account.Player) error {
	if err := im.query.Upsert(c, domain.TablePlayers, bson.M{"_id": p.Id}, p); err != nil {
		c.WithFields(log.Fields{
			"id":  p.Id,
			"err": err,
		}).Error("query.Upsert failed")
		return err
	}
	return nil
}

func (im *Players) Update(c ctx.Ctx, id domain.UserId, u *account.Updater) error {
	upd := *u
	upd.UpdatedAt = im.now()
	if err := im.query.Patch(c, domain.TablePlayers, bson.M{"_id": id}, &upd); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("query.Patch failed")
		return err
	}
	return nil
}

func (im *Players) MainHand(c ctx.Ctx, user domain.UserId) (item.Item, error) {
	p, err := im.FindOne(c, user)
	if err != nil {
		return item.Empty(), err
	}
	return p.MainHand(), nil
}

func (im *Players) TakeFromHand(c ctx.Ctx, user domain.UserId, amount int) (item.Item, error) {
	res := item.Empty()
	err := im.updateInventory(c, user, func(p *account.Player) (bool, error) {
		taken, err := takeFromHand(p, amount)
		if err != nil {
			return false, err
		}
		res = taken
		return true, nil
	})
	return res, err
}

func (im *Players) Give(c ctx.Ctx, user domain.UserId, it item.Item) (bool, error) {
	stored := false
	err := im.updateInventory(c, user, func(p *account.Player) (bool, error) {
		stored = give(p, it)
		return stored, nil
	})
	return stored, err
}

// updateInventory applies fn to a fresh copy of the player and writes it
// back only if nobody else wrote the player in between. fn returns false
// when nothing has to be written.
func (im *Players) updateInventory(c ctx.Ctx, user domain.UserId, fn func(*account.Player) (bool, error)) error {
	b := backoff.NewExponential(5*time.Millisecond, 100*time.Millisecond).WithJitter(0.5)
	for attempt := 0; attempt < maxInventoryAttempts; attempt++ {
		p, err := im.FindOne(c, user)
		if err != nil {
			return err
		}
		rev := p.Rev
		if write, err := fn(p); err != nil || !write {
			return err
		}

		err = im.query.CustomPatch(c, domain.TablePlayers,
			bson.M{"_id": user, "rev": rev},
			bson.M{
				"$set": bson.M{"inventory": p.Inventory, "updatedAt": im.now()},
				"$inc": bson.M{"rev": 1},
			}, false)
		if err == nil {
			return nil
		} else if err != query.ErrNotFound {
			c.WithFields(log.Fields{
				"user": user,
				"err":  err,
			}).Error("query.CustomPatch failed")
			return err
		}

		c.WithFields(log.Fields{"user": user, "attempt": attempt}).Debug("inventory changed concurrently")
		if err := b.Wait(c); err != nil {
			return err
		}
	}
	return domain.ErrConflict
}

func (im *Players) DropAt(c ctx.Ctx, user domain.UserId, it item.Item) error {
	loc := account.Location{}
	if p, err := im.FindOne(c, user); err == nil {
		loc = p.Location
	} else if err != domain.ErrNotFound {
		return err
	}

	d := &account.Dropped{
		Id:        newDropId(),
		UserId:    user,
		Item:      it,
		Location:  loc,
		DroppedAt: im.now(),
	}
	if err := im.query.Insert(c, domain.TableGround, d); err != nil {
		c.WithFields(log.Fields{
			"user": user,
			"err":  err,
		}).Error("query.Insert failed")
		return err
	}
	return nil
}
