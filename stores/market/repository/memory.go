package repository

import (
	"sync"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/market"
)

type memoryRepoImpl struct {
	mu sync.RWMutex
	// ids in insertion order
	order   []market.ListingId
	entries map[market.ListingId]*market.Listing
}

// NewMemoryListingRepo creates an in-process listing store. Listings are
// returned in insertion order, which is creation order.
func NewMemoryListingRepo() market.Repo {
	return &memoryRepoImpl{
		entries: map[market.ListingId]*market.Listing{},
	}
}

func (im *memoryRepoImpl) Create(c ctx.Ctx, l *market.Listing) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	if _, ok := im.entries[l.Id]; ok {
		return domain.ErrConflict
	}
	im.entries[l.Id] = l.Clone()
	im.order = append(im.order, l.Id)
	return nil
}

func (im *memoryRepoImpl) FindAll(c ctx.Ctx, optFns ...market.FindAllOptionsFunc) ([]*market.Listing, error) {
	opts, err := market.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	res := []*market.Listing{}
	skip := 0
	if opts.Offset != nil {
		skip = int(*opts.Offset)
	}
	for _, id := range im.order {
		l := im.entries[id]
		if !opts.Match(l) {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		if opts.Limit != nil && len(res) >= int(*opts.Limit) {
			break
		}
		res = append(res, l.Clone())
	}
	return res, nil
}

func (im *memoryRepoImpl) FindOne(c ctx.Ctx, id market.ListingId) (*market.Listing, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()

	l, ok := im.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return l.Clone(), nil
}

func (im *memoryRepoImpl) Count(c ctx.Ctx, optFns ...market.FindAllOptionsFunc) (int, error) {
	opts, err := market.GetFindAllOptions(optFns...)
	if err != nil {
		return 0, err
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	n := 0
	for _, id := range im.order {
		if opts.Match(im.entries[id]) {
			n++
		}
	}
	return n, nil
}

func (im *memoryRepoImpl) Remove(c ctx.Ctx, id market.ListingId) (bool, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if _, ok := im.entries[id]; !ok {
		return false, nil
	}
	delete(im.entries, id)
	for i, o := range im.order {
		if o == id {
			im.order = append(im.order[:i], im.order[i+1:]...)
			break
		}
	}
	return true, nil
}

type memoryTransactor struct{}

// NewMemoryTransactor runs the function directly, the in-process stores
// apply every call atomically on their own
func NewMemoryTransactor() domain.Transactor {
	return memoryTransactor{}
}

func (memoryTransactor) RunWithTransaction(c ctx.Ctx, fn func(ctx.Ctx) error) error {
	return fn(c)
}
