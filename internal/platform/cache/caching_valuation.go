// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"skinfolio_backend/internal/feature/lists/domain/entity"
	"skinfolio_backend/internal/feature/lists/usecase"
)

// CachingValuation decorates a Valuator with Redis caching keyed by list url.
// It also implements usecase.ChangeNotifier so that writes and price refreshes
// evict the affected entries.
type CachingValuation struct {
	inner       usecase.Valuator
	rdb         *redis.Client
	ttl         time.Duration
	namespace   string
	refreshHour int
	now         func() time.Time
}

var (
	_ usecase.Valuator       = (*CachingValuation)(nil)
	_ usecase.ChangeNotifier = (*CachingValuation)(nil)
)

// NewCachingValuation decorates a Valuator with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "lists".
// Entries never outlive the next daily price refresh at refreshHourUTC.
func NewCachingValuation(rdb *redis.Client, ttl time.Duration, inner usecase.Valuator, namespace string, refreshHourUTC int) *CachingValuation {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "lists"
	}
	return &CachingValuation{
		inner:       inner,
		rdb:         rdb,
		ttl:         ttl,
		namespace:   namespace,
		refreshHour: refreshHourUTC,
		now:         time.Now,
	}
}

// ValuationByURL returns the cached valuation or computes and stores it.
func (c *CachingValuation) ValuationByURL(ctx context.Context, url string, windowDays int) (*entity.ListValuation, error) {
	if c.rdb == nil {
		return c.inner.ValuationByURL(ctx, url, windowDays)
	}

	key := c.cacheKey(url, windowDays)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.ListValuation
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Compute
	out, err := c.inner.ValuationByURL(ctx, url, windowDays)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.expiry()).Err()
	}
	return out, nil
}

// ListChanged evicts every cached window of one list.
func (c *CachingValuation) ListChanged(ctx context.Context, url string) {
	if c.rdb == nil {
		return
	}
	if err := c.deleteByPattern(ctx, c.cacheKeyPrefix(url)+"*"); err != nil {
		slog.Warn("failed to invalidate list cache", "url", url, "error", err)
	}
}

// AllListsChanged evicts every cached list.
func (c *CachingValuation) AllListsChanged(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := c.deleteByPattern(ctx, c.namespace+":*"); err != nil {
		slog.Warn("failed to invalidate list cache", "error", err)
	}
}

// expiry caps the ttl at the next price refresh and at the next UTC
// midnight, when the snapshot window moves by one day.
func (c *CachingValuation) expiry() time.Duration {
	now := c.now()
	return min(c.ttl, TimeUntilNextRefresh(now, c.refreshHour), TimeUntilNextRefresh(now, 0))
}

func (c *CachingValuation) cacheKey(url string, windowDays int) string {
	return fmt.Sprintf("%s%d", c.cacheKeyPrefix(url), windowDays)
}

func (c *CachingValuation) cacheKeyPrefix(url string) string {
	return fmt.Sprintf("%s:%s:", c.namespace, safe(url))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingValuation) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	s = strings.ReplaceAll(s, "*", "_")
	return s
}
