package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/database/mongoclient"
	hcdomain "github.com/x-xyz/gomarket/domain/healthcheck"
	"github.com/x-xyz/gomarket/domain/keys"
	"github.com/x-xyz/gomarket/service/redis"
)

const pingTimeout = 2 * time.Second

type mongoImpl struct {
	mgoClient *mongoclient.Client
}

// NewMongo checks the primary of the listing database
func NewMongo(mgoClient *mongoclient.Client) hcdomain.HealthCheckRepo {
	return &mongoImpl{
		mgoClient: mgoClient,
	}
}

func (im *mongoImpl) Name() string {
	return "mongo"
}

func (im *mongoImpl) Ping(context ctx.Ctx) error {
	ctx, cancel := ctx.WithTimeout(context, pingTimeout)
	defer cancel()
	if err := im.mgoClient.Ping(ctx, readpref.Primary()); err != nil {
		context.WithField("err", err).Error("ping mongo error")
		return err
	}
	return nil
}

type redisImpl struct {
	redis redis.Service
}

// NewRedis checks that the lock cluster accepts writes
func NewRedis(r redis.Service) hcdomain.HealthCheckRepo {
	return &redisImpl{
		redis: r,
	}
}

func (im *redisImpl) Name() string {
	return "redis:" + im.redis.Name()
}

func (im *redisImpl) Ping(context ctx.Ctx) error {
	ctx, cancel := ctx.WithTimeout(context, pingTimeout)
	defer cancel()
	if err := im.redis.Set(ctx, keys.RedisKey(keys.PfxHealthCheck, "testset"), []byte("1"), 30*time.Second); err != nil {
		context.WithField("err", err).Error("test redis set failed")
		return err
	}
	return nil
}
