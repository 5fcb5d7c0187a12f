package usecase

import (
	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/market"
)

func (im *impl) ReclaimExpired(c ctx.Ctx, owner domain.UserId) (int, error) {
	expired, err := im.repo.FindAll(c, market.WithSeller(owner), market.WithExpiredAt(im.now()))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "owner": owner}).Error("repo.FindAll failed")
		return 0, err
	}

	n := 0
	defer func() {
		if n > 0 {
			im.invalidate(c)
			met.BumpSum("listing.reclaimed", float64(n))
		}
	}()

	for _, l := range expired {
		// a listing bought or reclaimed meanwhile is skipped
		deleted, err := im.repo.Remove(c, l.Id)
		if err != nil {
			c.WithFields(log.Fields{"err": err, "listing": l.Id}).Error("repo.Remove failed")
			return n, err
		}
		if !deleted {
			continue
		}
		n++
		if _, err := im.giveBack(c, owner, plain(l.Item)); err != nil {
			return n, err
		}
	}
	return n, nil
}
