package lock

import (
	"sync"
	"time"

	redigo "github.com/gomodule/redigo/redis"
	"github.com/google/uuid"

	"github.com/x-xyz/gomarket/base/backoff"
	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/domain/keys"
	"github.com/x-xyz/gomarket/service/redis"
)

const (
	retryStart = 10 * time.Millisecond
	retryLimit = 200 * time.Millisecond
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock taken over by somebody else is left alone.
var releaseScript = redis.NewScript(1, `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisCfg configures NewRedis
type RedisCfg struct {
	Redis redis.Service
	// TTL bounds how long a crashed holder keeps the lock
	TTL time.Duration
}

type redisImpl struct {
	redis redis.Service
	ttl   time.Duration
}

// NewRedis returns a Locker shared by every process using the same redis
func NewRedis(cfg *RedisCfg) Locker {
	return &redisImpl{
		redis: cfg.Redis,
		ttl:   cfg.TTL,
	}
}

func (im *redisImpl) Lock(c ctx.Ctx, key string) (Unlock, error) {
	k := keys.RedisKey(keys.PfxLock, key)
	token := []byte(uuid.NewString())
	b := backoff.NewExponential(retryStart, retryLimit).WithJitter(0.5)

	for {
		err := im.redis.SetNX(c, k, token, im.ttl)
		if err == nil {
			break
		}
		if err != redis.ErrNotSet {
			c.WithFields(log.Fields{"err": err, "key": k}).Error("redis.SetNX failed")
			return nil, err
		}
		if err := b.Wait(c); err != nil {
			return nil, ErrTimeout
		}
	}

	once := sync.Once{}
	return func() {
		once.Do(func() {
			// release even if the caller's ctx is already over
			rc := ctx.Detach(c)
			if _, err := redigo.Int(im.redis.ScriptDo(rc, releaseScript, k, token)); err != nil {
				rc.WithFields(log.Fields{"err": err, "key": k}).Warn("release lock failed")
			}
		})
	}, nil
}
