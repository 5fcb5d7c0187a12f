package main

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	defer viper.Reset()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auth:\n  jwtSecret: s\nmarket:\n  maxMarketsPerUser: 5\n"), 0o600))

	os.Setenv("MARKET_LOCK_TTL", "3s")
	defer os.Unsetenv("MARKET_LOCK_TTL")

	live, err := loadConfig([]string{"--config", path})
	require.NoError(t, err)
	assert.Equal(t, 5, live.MaxListingsPerUser())
	assert.Equal(t, 3*time.Second, viper.GetDuration("lock.ttl"))
	assert.Equal(t, "memory", viper.GetString("storage.driver"))
	assert.Equal(t, 7*24*time.Hour, viper.GetDuration("market.listingDuration"))
}

func TestLiveConfigApply(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	setDefaults()

	live := &liveConfig{}
	live.apply()
	assert.Equal(t, 3, live.MaxListingsPerUser())

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					_ = live.MaxListingsPerUser()
				}
			}
		}()
	}

	viper.Set("market.maxMarketsPerUser", 7)
	live.apply()
	close(stop)
	wg.Wait()
	assert.Equal(t, 7, live.MaxListingsPerUser())

	viper.Set("market.maxMarketsPerUser", -1)
	live.apply()
	assert.Equal(t, 7, live.MaxListingsPerUser())
}

func TestValidateConfig(t *testing.T) {
	for _, tc := range []struct {
		name string
		set  map[string]interface{}
		ok   bool
	}{
		{"defaults", map[string]interface{}{}, true},
		{"unknown storage", map[string]interface{}{"storage.driver": "sqlite"}, false},
		{"unknown lock", map[string]interface{}{"lock.driver": "etcd"}, false},
		{"discord without token", map[string]interface{}{"notifier.driver": "discord"}, false},
		{"discord", map[string]interface{}{"notifier.driver": "discord", "discord.botToken": "t"}, true},
		{"no secret", map[string]interface{}{"auth.jwtSecret": ""}, false},
		{"negative quota", map[string]interface{}{"market.maxMarketsPerUser": -1}, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			viper.Reset()
			defer viper.Reset()
			setDefaults()
			viper.Set("auth.jwtSecret", "s")
			for k, v := range tc.set {
				viper.Set(k, v)
			}
			err := validateConfig()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
