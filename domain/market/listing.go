package market

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/item"
)

const (
	// MaxAmount is the largest amount a single listing can take from the hand
	MaxAmount = item.MaxStack
	// DefaultListingDuration is how long a listing stays sellable
	DefaultListingDuration = 7 * 24 * time.Hour
	// DefaultMaxListingsPerUser is the quota used when none is configured
	DefaultMaxListingsPerUser = 3
)

type ListingId string

func (id ListingId) String() string {
	return string(id)
}

type Listing struct {
	Id       ListingId     `json:"id" bson:"_id"`
	SellerId domain.UserId `json:"sellerId" bson:"sellerId"`
	// SellerName is the display name at creation time
	SellerName string `json:"sellerName" bson:"sellerName"`
	// Item is stored with its annotation block
	Item      item.Item       `json:"item" bson:"item"`
	Price     decimal.Decimal `json:"price" bson:"price"`
	Expiry    time.Time       `json:"expiry" bson:"expiry"`
	CreatedAt time.Time       `json:"createdAt" bson:"createdAt"`
}

// IsActive reports whether the listing can still be bought at now
func (l *Listing) IsActive(now time.Time) bool {
	return now.Before(l.Expiry)
}

// Remaining is the time left before expiry, negative once expired
func (l *Listing) Remaining(now time.Time) time.Duration {
	return l.Expiry.Sub(now)
}

// Clone deep copies the listing
func (l *Listing) Clone() *Listing {
	res := *l
	res.Item = l.Item.Clone()
	return &res
}

type FindAllOptions struct {
	SellerId *domain.UserId
	// ExpiryGT keeps listings with Expiry > t
	ExpiryGT *time.Time
	// ExpiryLTE keeps listings with Expiry <= t
	ExpiryLTE *time.Time
	Offset    *int32
	Limit     *int32
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithSeller(seller domain.UserId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.SellerId = &seller
		return nil
	}
}

// WithActiveAt keeps listings still sellable at t
func WithActiveAt(t time.Time) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ExpiryGT = &t
		return nil
	}
}

// WithExpiredAt keeps listings no longer sellable at t
func WithExpiredAt(t time.Time) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ExpiryLTE = &t
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		if offset < 0 || limit < 0 {
			return domain.ErrBadParamInput
		}
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

// Match reports whether l satisfies every filter of o, pagination aside
func (o FindAllOptions) Match(l *Listing) bool {
	if o.SellerId != nil && l.SellerId != *o.SellerId {
		return false
	}
	if o.ExpiryGT != nil && !l.Expiry.After(*o.ExpiryGT) {
		return false
	}
	if o.ExpiryLTE != nil && l.Expiry.After(*o.ExpiryLTE) {
		return false
	}
	return true
}

// Repo is the listing store. Results are always ordered by creation.
type Repo interface {
	Create(c ctx.Ctx, l *Listing) error
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
	// FindOne returns domain.ErrNotFound if the listing does not exist
	FindOne(c ctx.Ctx, id ListingId) (*Listing, error)
	Count(c ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
	// Remove deletes the listing and reports whether this call deleted it.
	// It is the commit point of a purchase.
	Remove(c ctx.Ctx, id ListingId) (bool, error)
}

// Receipt describes a completed purchase
type Receipt struct {
	ListingId ListingId       `json:"listingId"`
	Item      item.Item       `json:"item"`
	Price     decimal.Decimal `json:"price"`
	// Dropped is set when the buyer's inventory was full and the item was
	// placed on the ground instead
	Dropped bool `json:"dropped"`
}

type UseCase interface {
	// Add creates a listing out of the seller's main hand
	Add(c ctx.Ctx, seller domain.UserId, price decimal.Decimal, amount int) (*Listing, error)
	// Purchase buys listing for buyer, exactly one concurrent buyer wins
	Purchase(c ctx.Ctx, buyer domain.UserId, listing *Listing) (*Receipt, error)
	// ReclaimExpired gives the owner's expired listings back to the owner and
	// reports how many this call reclaimed
	ReclaimExpired(c ctx.Ctx, owner domain.UserId) (int, error)
	// Active returns the listings sellable now, in creation order
	Active(c ctx.Ctx) ([]*Listing, error)
}
