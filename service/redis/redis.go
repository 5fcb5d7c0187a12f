package redis

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/domain/keys"
)

// Forever is the expire value of keys without ttl
const Forever = time.Duration(-1)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = redis.ErrNil
	// ErrNotSet is returned by SetNX when the key already exists
	ErrNotSet = errors.New("key already exists")
)

// Service is the subset of redis commands the market relies on
type Service interface {
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	// SetNX sets the key only if it does not exist yet, ErrNotSet otherwise
	SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(context ctx.Ctx, ks ...string) (int, error)
	Exists(context ctx.Ctx, key string) (bool, error)
	ScriptDo(context ctx.Ctx, hdl *ScriptHdl, keysAndArgs ...interface{}) (interface{}, error)
	Ping(context ctx.Ctx) error
	Name() string
}

// ScriptHdl is a lua script loaded lazily through EVALSHA
type ScriptHdl struct {
	*redis.Script
	keyCount int
}

// NewScript returns a handle for src taking keyCount keys
func NewScript(keyCount int, src string) *ScriptHdl {
	return &ScriptHdl{
		Script:   redis.NewScript(keyCount, src),
		keyCount: keyCount,
	}
}

func (h *ScriptHdl) prefix(keysAndArgs ...interface{}) string {
	if h.keyCount == 0 || len(keysAndArgs) == 0 {
		return "na"
	}
	if k, ok := keysAndArgs[0].(string); ok {
		return keys.GetPrefix(k)
	}
	return "na"
}
