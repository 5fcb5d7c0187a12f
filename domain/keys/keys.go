package keys

import (
	"strings"
)

const (
	// PfxHealthCheck is used for prefixing health check redis key
	PfxHealthCheck = "healthcheck"
	// PfxLock is used for prefixing distributed lock keys
	PfxLock = "lock"
	// PfxQuota is used for per seller quota locks
	PfxQuota = "quota"
	// PfxBuyer is used for per buyer purchase locks
	PfxBuyer = "buyer"
	// PfxMarket is used for prefixing market cache keys
	PfxMarket = "market"
)

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// GetPrefix returns the first component of a redis key, used as metric tag
func GetPrefix(key string) string {
	if idx := strings.Index(key, ":"); idx >= 0 {
		return key[:idx]
	}
	return key
}
