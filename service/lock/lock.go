// Package lock serializes critical sections that share a key, either inside
// one process or across processes through redis.
package lock

import (
	"errors"

	"github.com/x-xyz/gomarket/base/ctx"
)

var (
	// ErrTimeout is returned when the lock could not be taken before ctx ended
	ErrTimeout = errors.New("lock timeout")
)

// Unlock releases a held lock, calling it more than once is a no-op
type Unlock func()

// Locker hands out exclusive locks by key
type Locker interface {
	Lock(c ctx.Ctx, key string) (Unlock, error)
}
