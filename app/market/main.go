package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/database/mongoclient"
	"github.com/x-xyz/gomarket/base/database/redisclient"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/base/metrics"
	bValidator "github.com/x-xyz/gomarket/base/validator"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/account"
	hcdomain "github.com/x-xyz/gomarket/domain/healthcheck"
	"github.com/x-xyz/gomarket/domain/market"
	mmiddleware "github.com/x-xyz/gomarket/middleware"
	"github.com/x-xyz/gomarket/service/cache"
	"github.com/x-xyz/gomarket/service/cache/provider/primitive"
	"github.com/x-xyz/gomarket/service/grid"
	"github.com/x-xyz/gomarket/service/lock"
	"github.com/x-xyz/gomarket/service/notifier"
	"github.com/x-xyz/gomarket/service/query"
	"github.com/x-xyz/gomarket/service/redis"
	account_delivery "github.com/x-xyz/gomarket/stores/account/delivery/http"
	account_repository "github.com/x-xyz/gomarket/stores/account/repository"
	account_usecase "github.com/x-xyz/gomarket/stores/account/usecase"
	auth_delivery "github.com/x-xyz/gomarket/stores/auth/delivery/http"
	auth_middleware "github.com/x-xyz/gomarket/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/x-xyz/gomarket/stores/auth/usecase"
	hc_delivery "github.com/x-xyz/gomarket/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/gomarket/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/gomarket/stores/healthcheck/usecase"
	market_delivery "github.com/x-xyz/gomarket/stores/market/delivery/http"
	market_repository "github.com/x-xyz/gomarket/stores/market/repository"
	market_usecase "github.com/x-xyz/gomarket/stores/market/usecase"
)

const snapshotCacheMB = 32

// stores bundles the persistence picked by storage.driver
type stores struct {
	listings   market.Repo
	transactor domain.Transactor
	players    account.PlayerRepo
	balances   account.BalanceRepo
	inventory  account.InventoryRepo
	world      account.WorldRepo
	health     []hcdomain.HealthCheckRepo
}

func mustInitStores(context ctx.Ctx) *stores {
	if viper.GetString("storage.driver") == "memory" {
		context.Info("init in-process storage")
		mem := account_repository.NewMemory(time.Now)
		return &stores{
			listings:   market_repository.NewMemoryListingRepo(),
			transactor: market_repository.NewMemoryTransactor(),
			players:    mem,
			balances:   mem,
			inventory:  mem,
			world:      mem,
		}
	}

	context.Info("init mongo")
	mongoClient := mongoclient.MustConnectMongoClient(mongoclient.Config{
		URI:                viper.GetString("mongo.uri"),
		AuthDBName:         viper.GetString("mongo.authDBName"),
		DBName:             viper.GetString("mongo.dbName"),
		SSL:                viper.GetBool("mongo.enableSSL"),
		SetSafe:            true,
		PoolSizeMultiplier: 2,
	})
	for table, indexes := range map[domain.Table][]mongoclient.Index{
		domain.TableListings: market_repository.ListingIndexes,
		domain.TableGround:   account_repository.GroundIndexes,
	} {
		if err := mongoClient.EnsureIndexes(context, string(table), indexes...); err != nil {
			context.WithFields(log.Fields{"err": err, "table": table}).Panic("mongoClient.EnsureIndexes failed")
		}
	}
	q := query.New(mongoClient, viper.GetBool("mongo.checkIndex"))
	players := account_repository.NewPlayers(q, time.Now)
	return &stores{
		listings:   market_repository.NewListingRepo(q),
		transactor: q,
		players:    players,
		balances:   account_repository.NewBalanceRepo(q),
		inventory:  players,
		world:      players,
		health:     []hcdomain.HealthCheckRepo{hc_repo.NewMongo(mongoClient)},
	}
}

func main() {
	live, err := loadConfig(os.Args[1:])
	if err != nil {
		log.Log().WithField("err", err).Panic("loadConfig failed")
	}
	metrics.Init()
	defer log.Sync()

	// init echo
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.AddContext())
	e.Use(middL.ResponseLogger())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()
	st := mustInitStores(context)

	// init lock
	var locker lock.Locker
	if viper.GetString("lock.driver") == "redis" {
		context.Info("init redis lock")
		redisName := viper.GetString("redis.name")
		redisPool := redisclient.MustConnectRedis(viper.GetString("redis.uri"), viper.GetString("redis.password"), redisclient.RedisParam{
			PoolMultiplier: viper.GetFloat64("redis.poolMultiplier"),
			Retry:          true,
		})
		redisService := redis.New(redisName, metrics.New(redisName), redisPool)
		locker = lock.NewRedis(&lock.RedisCfg{Redis: redisService, TTL: viper.GetDuration("lock.ttl")})
		st.health = append(st.health, hc_repo.NewRedis(redisService))
	} else {
		locker = lock.NewLocal()
	}

	// init notifier, the board also tracks who is online
	board := notifier.NewBoard(&notifier.BoardCfg{})
	var (
		notify  account.Notifier            = board
		notices market_delivery.NoticeBoard = board
	)
	if viper.GetString("notifier.driver") == "discord" {
		context.Info("init discord notifier")
		session, err := discordgo.New("Bot " + viper.GetString("discord.botToken"))
		if err != nil {
			context.WithField("err", err).Panic("discordgo.New failed")
		}
		notify = notifier.NewDiscord(&notifier.DiscordCfg{Session: session, Players: st.players})
		notices = nil
	}

	scheduler := grid.NewScheduler(&grid.SchedulerCfg{Workers: viper.GetInt("grid.workers")})
	defer scheduler.Stop()

	snapshot := cache.New(cache.ServiceConfig{
		TTL:   viper.GetDuration("market.snapshotTTL"),
		Pfx:   "market",
		Cache: primitive.NewPrimitive("market", snapshotCacheMB),
	})

	auth := auth_usecase.New(&auth_usecase.AuthUseCaseCfg{
		JwtSecret:     viper.GetString("auth.jwtSecret"),
		Players:       st.players,
		InventorySize: viper.GetInt("market.inventorySize"),
	})
	accountUC := account_usecase.New(&account_usecase.AccountUseCaseCfg{
		Players:  st.players,
		Balances: st.balances,
	})
	marketUC := market_usecase.New(&market_usecase.MarketUseCaseCfg{
		Repo:               st.listings,
		Transactor:         st.transactor,
		Balances:           st.balances,
		Inventory:          st.inventory,
		World:              st.world,
		Players:            st.players,
		Notifier:           notify,
		Locker:             locker,
		Snapshot:           snapshot,
		MaxListingsPerUser: live.MaxListingsPerUser,
		ListingDuration:    viper.GetDuration("market.listingDuration"),
		NotificationTTL:    viper.GetDuration("market.notificationTTL"),
	})
	browseUC := market_usecase.NewBrowse(&market_usecase.BrowseUseCaseCfg{
		Market:          marketUC,
		NewGrid:         scheduler.NewContainer,
		RefreshInterval: viper.GetDuration("market.refreshInterval"),
	})
	commandUC := market_usecase.NewCommand(&market_usecase.CommandUseCaseCfg{
		Market: marketUC,
		Browse: browseUC,
	})
	hc := hc_usecase.New(st.health...)

	authM := auth_middleware.New(auth)
	authed := []echo.MiddlewareFunc{authM.Auth(), middL.Presence(board.Touch)}

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth, viper.GetString("auth.serverKey"))
	account_delivery.New(e, accountUC, authed...)
	market_delivery.New(e, commandUC, browseUC, notices, authed...)

	addr := viper.GetString("server.address")
	live.watch()

	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
