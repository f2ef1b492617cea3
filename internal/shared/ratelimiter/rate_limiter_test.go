package ratelimiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"), "third call before a token refills")
	assert.True(t, rl.Allow("b"), "keys are independent")

	now = now.Add(30 * time.Second)
	assert.True(t, rl.Allow("a"), "one token refilled")
	assert.False(t, rl.Allow("a"))

	now = now.Add(time.Minute)
	assert.True(t, rl.Allow("c"))
	assert.Len(t, rl.buckets, 1, "idle keys swept")
	assert.True(t, rl.Allow("a"))
}

func TestRateLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		limit    int
		expected []int
	}{
		{name: "throttled", limit: 1, expected: []int{http.StatusOK, http.StatusTooManyRequests}},
		{name: "disabled", limit: 0, expected: []int{http.StatusOK, http.StatusOK}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/login", NewRateLimiter(tt.limit, time.Minute).Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

			for i, want := range tt.expected {
				w := httptest.NewRecorder()
				r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
				assert.Equal(t, want, w.Code, "request %d", i)
			}
		})
	}
}
