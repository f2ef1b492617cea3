// Package ratelimiter はキーごとのトークンバケット方式のレート制限を提供します。
package ratelimiter

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter は、キー（クライアントIPなど）ごとに操作の頻度を制限します。
// キーごとにlimit個のバーストを持つトークンバケットで、intervalで満杯に戻ります。
// 複数のgoroutineから同時に利用できます。
type RateLimiter struct {
	limit    int           // interval あたりの上限
	interval time.Duration // バケットが空から満杯に戻るまでの時間

	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		buckets:  make(map[string]*bucket),
		now:      time.Now,
	}
}

// Allow はkeyの呼び出しを1回数え、上限内であればtrueを返します。
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.buckets[key]
	if !ok {
		rl.sweep(now)
		every := rl.interval / time.Duration(max(rl.limit, 1))
		w = &bucket{limiter: rate.NewLimiter(rate.Every(every), rl.limit)}
		rl.buckets[key] = w
	}
	w.lastSeen = now
	return w.limiter.AllowN(now, 1)
}

// sweep drops keys idle for a full interval; their bucket is full again anyway.
func (rl *RateLimiter) sweep(now time.Time) {
	for k, w := range rl.buckets {
		if now.Sub(w.lastSeen) >= rl.interval {
			delete(rl.buckets, k)
		}
	}
}

// Middleware rejects requests over the limit with 429, keyed by client IP.
// A limit <= 0 disables throttling.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limit <= 0 || rl.Allow(c.ClientIP()) {
			c.Next()
			return
		}
		slog.Warn("rate limit hit", "client_ip", c.ClientIP(), "path", c.FullPath(), "limit", rl.limit)
		c.Header("Retry-After", "60")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
	}
}
