package main

import (
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"

	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/domain/market"
)

const envPrefix = "MARKET"

func setDefaults() {
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("storage.driver", "memory")
	viper.SetDefault("lock.driver", "local")
	viper.SetDefault("lock.ttl", "10s")
	viper.SetDefault("notifier.driver", "board")
	viper.SetDefault("redis.name", "market")
	viper.SetDefault("redis.poolMultiplier", 1)
	viper.SetDefault("market.maxMarketsPerUser", market.DefaultMaxListingsPerUser)
	viper.SetDefault("market.listingDuration", market.DefaultListingDuration.String())
	viper.SetDefault("market.refreshInterval", "1s")
	viper.SetDefault("market.snapshotTTL", "1s")
	viper.SetDefault("market.notificationTTL", "5s")
	viper.SetDefault("market.inventorySize", 36)
	viper.SetDefault("grid.workers", 16)
}

// liveConfig holds the settings that follow the config file while the
// service runs. Request goroutines read it instead of viper.
type liveConfig struct {
	maxListings int64
}

func (lc *liveConfig) MaxListingsPerUser() int {
	return int(atomic.LoadInt64(&lc.maxListings))
}

// apply copies the current viper values, it runs on the goroutine that
// loaded them
func (lc *liveConfig) apply() {
	if n := viper.GetInt("market.maxMarketsPerUser"); n >= 0 {
		atomic.StoreInt64(&lc.maxListings, int64(n))
	} else {
		log.Log().WithField("maxMarketsPerUser", n).Warn("negative quota ignored")
	}
	log.SetDebug(viper.GetBool("debug"))
}

// loadConfig reads the yaml file named by --config, MARKET_ prefixed env
// variables override it. The file is watched so the quota can change at
// runtime.
func loadConfig(args []string) (*liveConfig, error) {
	flags := pflag.NewFlagSet("market", pflag.ContinueOnError)
	path := flags.String("config", "infra/configs/config.yaml", "path of the config file")
	if err := flags.Parse(args); err != nil {
		return nil, xerrors.Errorf("parse flags: %w", err)
	}

	setDefaults()
	viper.SetConfigType("yaml")
	viper.SetConfigFile(*path)
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, xerrors.Errorf("read config %s: %w", *path, err)
	}

	if err := validateConfig(); err != nil {
		return nil, err
	}

	lc := &liveConfig{}
	lc.apply()
	if viper.GetBool("debug") {
		log.Log().Info("Service RUN on DEBUG mode")
	}
	return lc, nil
}

// watch reloads lc whenever the config file changes
func (lc *liveConfig) watch() {
	viper.OnConfigChange(func(e fsnotify.Event) {
		log.Log().WithField("file", e.Name).Info("config reloaded")
		lc.apply()
	})
	viper.WatchConfig()
}

func validateConfig() error {
	oneOf := func(key string, vals ...string) error {
		v := viper.GetString(key)
		for _, ok := range vals {
			if v == ok {
				return nil
			}
		}
		return xerrors.Errorf("%s: unknown value %q, want one of %v", key, v, vals)
	}

	if err := oneOf("storage.driver", "mongo", "memory"); err != nil {
		return err
	}
	if err := oneOf("lock.driver", "local", "redis"); err != nil {
		return err
	}
	if err := oneOf("notifier.driver", "board", "discord"); err != nil {
		return err
	}
	if viper.GetString("auth.jwtSecret") == "" {
		return xerrors.New("auth.jwtSecret is required")
	}
	if viper.GetString("notifier.driver") == "discord" && viper.GetString("discord.botToken") == "" {
		return xerrors.New("discord.botToken is required by the discord notifier")
	}
	if viper.GetInt("market.maxMarketsPerUser") < 0 {
		return xerrors.New("market.maxMarketsPerUser must not be negative")
	}
	return nil
}
