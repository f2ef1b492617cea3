// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"skinfolio_backend/internal/feature/lists/usecase"
	"skinfolio_backend/internal/feature/lists/valuation"
	"skinfolio_backend/internal/platform/cache"
)

// CacheConfig configures the valuation cache.
type CacheConfig struct {
	TTL            time.Duration
	RefreshHourUTC int
}

// NewValuator wraps the engine with the Redis cache when Redis is available.
// The returned notifier evicts cached valuations; without Redis it does nothing.
func NewValuator(engine *valuation.Engine, rdb *redis.Client, cfg CacheConfig) (usecase.Valuator, usecase.ChangeNotifier) {
	if rdb != nil {
		c := cache.NewCachingValuation(rdb, cfg.TTL, engine, "lists", cfg.RefreshHourUTC)
		return c, c
	}
	return engine, usecase.NopNotifier{}
}
