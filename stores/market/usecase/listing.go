package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/base/metrics"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/account"
	"github.com/x-xyz/gomarket/domain/item"
	"github.com/x-xyz/gomarket/domain/keys"
	"github.com/x-xyz/gomarket/domain/market"
	"github.com/x-xyz/gomarket/service/annotation"
	"github.com/x-xyz/gomarket/service/cache"
	"github.com/x-xyz/gomarket/service/lock"
)

const (
	snapshotKey            = "active"
	defaultNotificationTTL = 5 * time.Second
)

var met = metrics.New("market")

type MarketUseCaseCfg struct {
	Repo       market.Repo
	Transactor domain.Transactor
	Balances   account.BalanceRepo
	Inventory  account.InventoryRepo
	World      account.WorldRepo
	Players    account.PlayerRepo
	Notifier   account.Notifier
	Locker     lock.Locker
	// Snapshot caches the active listings, optional
	Snapshot cache.Service
	// MaxListingsPerUser is read on every quota check
	MaxListingsPerUser func() int
	ListingDuration    time.Duration
	NotificationTTL    time.Duration
	Now                domain.Clock
}

type impl struct {
	repo            market.Repo
	transactor      domain.Transactor
	balances        account.BalanceRepo
	inventory       account.InventoryRepo
	world           account.WorldRepo
	players         account.PlayerRepo
	notifier        account.Notifier
	locker          lock.Locker
	snapshot        cache.Service
	maxListings     func() int
	listingDuration time.Duration
	notificationTTL time.Duration
	now             domain.Clock
}

func New(cfg *MarketUseCaseCfg) market.UseCase {
	im := &impl{
		repo:            cfg.Repo,
		transactor:      cfg.Transactor,
		balances:        cfg.Balances,
		inventory:       cfg.Inventory,
		world:           cfg.World,
		players:         cfg.Players,
		notifier:        cfg.Notifier,
		locker:          cfg.Locker,
		snapshot:        cfg.Snapshot,
		maxListings:     cfg.MaxListingsPerUser,
		listingDuration: cfg.ListingDuration,
		notificationTTL: cfg.NotificationTTL,
		now:             cfg.Now,
	}
	if im.maxListings == nil {
		im.maxListings = func() int { return market.DefaultMaxListingsPerUser }
	}
	if im.listingDuration <= 0 {
		im.listingDuration = market.DefaultListingDuration
	}
	if im.notificationTTL <= 0 {
		im.notificationTTL = defaultNotificationTTL
	}
	if im.now == nil {
		im.now = time.Now
	}
	return im
}

func (im *impl) Add(c ctx.Ctx, seller domain.UserId, price decimal.Decimal, amount int) (*market.Listing, error) {
	if price.IsNegative() {
		return nil, domain.NewUserError(domain.ErrBadParamInput, "price must not be negative")
	}
	if amount < 0 || amount > market.MaxAmount {
		return nil, domain.NewUserError(domain.ErrInvalidItem, fmt.Sprintf("You can list between 1 and %d items!", market.MaxAmount))
	}

	unlock, err := im.locker.Lock(c, keys.RedisKey(keys.PfxMarket, keys.PfxQuota, seller.String()))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "seller": seller}).Error("locker.Lock failed")
		return nil, err
	}
	defer unlock()

	max := im.maxListings()
	n, err := im.repo.Count(c, market.WithSeller(seller))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "seller": seller}).Error("repo.Count failed")
		return nil, err
	}
	if n >= max {
		return nil, domain.NewUserError(domain.ErrQuotaExceeded, fmt.Sprintf("You already have the maximum of %d entries", max))
	}

	hand, err := im.inventory.MainHand(c, seller)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "seller": seller}).Error("inventory.MainHand failed")
		return nil, err
	}
	if hand.Count < amount {
		return nil, domain.NewUserError(domain.ErrInvalidItem, fmt.Sprintf("Your hand doesn't contain %d items!", amount))
	}
	if hand.IsNothing() {
		return nil, domain.NewUserError(domain.ErrInvalidItem, "You are not holding anything!")
	}
	if amount == 0 {
		return nil, domain.NewUserError(domain.ErrInvalidItem, "You must list at least one item!")
	}

	taken, err := im.inventory.TakeFromHand(c, seller, amount)
	if err == account.ErrNotEnoughInHand {
		return nil, domain.NewUserError(domain.ErrInvalidItem, fmt.Sprintf("Your hand doesn't contain %d items!", amount))
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "seller": seller}).Error("inventory.TakeFromHand failed")
		return nil, err
	}

	now := im.now()
	name := im.displayName(c, seller)
	l := &market.Listing{
		Id:         market.ListingId(uuid.New().String()),
		SellerId:   seller,
		SellerName: name,
		Item:       annotation.Annotate(taken, annotation.ListingLines(price, name, im.listingDuration)),
		Price:      price,
		Expiry:     now.Add(im.listingDuration),
		CreatedAt:  now,
	}
	if err := im.repo.Create(c, l); err != nil {
		c.WithFields(log.Fields{"err": err, "seller": seller}).Error("repo.Create failed")
		if _, err := im.giveBack(c, seller, taken); err != nil {
			c.WithFields(log.Fields{"err": err, "seller": seller, "item": taken}).Error("giveBack failed")
		}
		return nil, err
	}

	im.invalidate(c)
	met.BumpSum("listing.created", 1)
	c.WithFields(log.Fields{"listing": l.Id, "seller": seller}).Info("listing created")
	return l, nil
}

func (im *impl) Active(c ctx.Ctx) ([]*market.Listing, error) {
	now := im.now()
	res := []*market.Listing{}
	getter := func() (interface{}, error) {
		ls, err := im.repo.FindAll(c, market.WithActiveAt(now))
		if err != nil {
			return nil, err
		}
		return &ls, nil
	}

	if im.snapshot == nil {
		ls, err := getter()
		if err != nil {
			c.WithFields(log.Fields{"err": err}).Error("repo.FindAll failed")
			return nil, err
		}
		return *ls.(*[]*market.Listing), nil
	}

	if err := im.snapshot.GetByFunc(c, snapshotKey, &res, getter); err != nil {
		c.WithFields(log.Fields{"err": err}).Error("snapshot.GetByFunc failed")
		return nil, err
	}
	// the snapshot may be older than now
	active := make([]*market.Listing, 0, len(res))
	for _, l := range res {
		if l.IsActive(now) {
			active = append(active, l)
		}
	}
	return active, nil
}

func (im *impl) invalidate(c ctx.Ctx) {
	if im.snapshot == nil {
		return
	}
	if err := im.snapshot.Del(c, snapshotKey); err != nil {
		c.WithFields(log.Fields{"err": err}).Warn("snapshot.Del failed")
	}
}

func (im *impl) displayName(c ctx.Ctx, user domain.UserId) string {
	if im.players == nil {
		return user.String()
	}
	p, err := im.players.FindOne(c, user)
	if err != nil || p.Name == "" {
		return user.String()
	}
	return p.Name
}

// giveBack stores it in the user's inventory, or on the ground when there is
// no room. It reports whether the item was dropped.
func (im *impl) giveBack(c ctx.Ctx, user domain.UserId, it item.Item) (bool, error) {
	ok, err := im.inventory.Give(c, user, it)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "user": user}).Warn("inventory.Give failed, dropping the item")
	} else if ok {
		return false, nil
	}

	if err := im.world.DropAt(c, user, it); err != nil {
		c.WithFields(log.Fields{"err": err, "user": user, "item": it}).Error("world.DropAt failed")
		return true, err
	}
	return true, nil
}
