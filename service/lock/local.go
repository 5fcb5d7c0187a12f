package lock

import (
	"sync"

	"github.com/x-xyz/gomarket/base/ctx"
)

type entry struct {
	ch   chan struct{}
	refs int
}

type localImpl struct {
	mu    sync.Mutex
	locks map[string]*entry
}

// NewLocal returns a Locker for a single process. Entries are dropped once
// nobody holds or waits for them.
func NewLocal() Locker {
	return &localImpl{locks: map[string]*entry{}}
}

func (im *localImpl) acquire(key string) *entry {
	im.mu.Lock()
	defer im.mu.Unlock()
	e, ok := im.locks[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		im.locks[key] = e
	}
	e.refs++
	return e
}

func (im *localImpl) release(key string, e *entry) {
	im.mu.Lock()
	defer im.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(im.locks, key)
	}
}

func (im *localImpl) Lock(c ctx.Ctx, key string) (Unlock, error) {
	e := im.acquire(key)
	select {
	case e.ch <- struct{}{}:
	case <-c.Done():
		im.release(key, e)
		return nil, ErrTimeout
	}

	once := sync.Once{}
	return func() {
		once.Do(func() {
			<-e.ch
			im.release(key, e)
		})
	}, nil
}
