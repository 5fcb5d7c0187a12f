package usecase

import (
	"errors"
	"fmt"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/goroutine"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/account"
	"github.com/x-xyz/gomarket/domain/item"
	"github.com/x-xyz/gomarket/domain/keys"
	"github.com/x-xyz/gomarket/domain/market"
	"github.com/x-xyz/gomarket/service/annotation"
)

func (im *impl) Purchase(c ctx.Ctx, buyer domain.UserId, listing *market.Listing) (*market.Receipt, error) {
	c = ctx.WithValues(c, map[string]interface{}{"buyer": buyer, "listing": listing.Id})

	cur, err := im.commit(c, buyer, listing)
	if err != nil {
		return nil, err
	}
	im.invalidate(c)

	delivered := plain(cur.Item)
	dropped, err := im.giveBack(c, buyer, delivered)
	if err != nil {
		return nil, err
	}

	im.notifySale(c, cur, delivered)

	met.BumpSum("purchase.success", 1)
	c.WithFields(log.Fields{"seller": cur.SellerId, "price": cur.Price, "dropped": dropped}).Info("listing purchased")
	return &market.Receipt{
		ListingId: cur.Id,
		Item:      delivered,
		Price:     cur.Price,
		Dropped:   dropped,
	}, nil
}

// commit moves the listing price from buyer to seller and removes the
// listing. Purchases of one buyer are serialized so the balance check holds
// until the debit.
func (im *impl) commit(c ctx.Ctx, buyer domain.UserId, listing *market.Listing) (*market.Listing, error) {
	unlock, err := im.locker.Lock(c, keys.RedisKey(keys.PfxMarket, keys.PfxBuyer, buyer.String()))
	if err != nil {
		c.WithFields(log.Fields{"err": err}).Error("locker.Lock failed")
		return nil, err
	}
	defer unlock()

	balance, err := im.balances.Get(c, buyer)
	if err != nil {
		c.WithFields(log.Fields{"err": err}).Error("balances.Get failed")
		return nil, err
	}
	if balance.LessThan(listing.Price) {
		met.BumpSum("purchase.insufficient", 1)
		return nil, domain.ErrInsufficientFunds
	}

	cur, err := im.repo.FindOne(c, listing.Id)
	if err == domain.ErrNotFound || (err == nil && !cur.IsActive(im.now())) {
		met.BumpSum("purchase.gone", 1)
		return nil, domain.ErrListingGone
	} else if err != nil {
		c.WithFields(log.Fields{"err": err}).Error("repo.FindOne failed")
		return nil, err
	}

	if err := im.transactor.RunWithTransaction(c, func(tc ctx.Ctx) error {
		// the delete decides the winner, currency only moves after it
		deleted, err := im.repo.Remove(tc, cur.Id)
		if err != nil {
			return err
		}
		if !deleted {
			return domain.ErrListingGone
		}
		if err := im.balances.Adjust(tc, buyer, cur.Price.Neg()); err != nil {
			return err
		}
		return im.balances.Adjust(tc, cur.SellerId, cur.Price)
	}); errors.Is(err, domain.ErrListingGone) {
		met.BumpSum("purchase.gone", 1)
		return nil, domain.ErrListingGone
	} else if err != nil {
		c.WithFields(log.Fields{"err": err}).Error("transactor.RunWithTransaction failed")
		return nil, err
	}
	return cur, nil
}

// plain removes the listing block from a stored item
func plain(it item.Item) item.Item {
	if !annotation.IsAnnotated(it) {
		return annotation.Canonical(it)
	}
	return annotation.Strip(it)
}

// notifySale tells the seller about the sale, failures never reach the buyer
func (im *impl) notifySale(c ctx.Ctx, l *market.Listing, sold item.Item) {
	if im.notifier == nil {
		return
	}
	lines := []string{
		"One of your items was sold!",
		"",
		fmt.Sprintf("Item: %dx %s", sold.Count, sold.TranslationKey()),
		"Price: " + l.Price.String(),
	}
	notice, err := im.notifier.Notify(c, l.SellerId, "Item sold!", lines)
	if err == account.ErrUnreachable {
		c.WithField("seller", l.SellerId).Debug("seller unreachable")
		return
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "seller": l.SellerId}).Warn("notifier.Notify failed")
		return
	}

	dc := ctx.Detach(c)
	goroutine.After(im.notificationTTL, func() {
		if err := notice.Dismiss(dc); err != nil {
			dc.WithFields(log.Fields{"err": err, "seller": l.SellerId}).Warn("notice.Dismiss failed")
		}
	})
}
