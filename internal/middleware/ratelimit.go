package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/gatherly-dev/gatherly/internal/config"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterStore struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	perMin   int
	burst    int
}

func newLimiterStore(perMinute, burst int) *limiterStore {
	return &limiterStore{
		limiters: make(map[string]*limiterEntry),
		perMin:   perMinute,
		burst:    burst,
	}
}

func (s *limiterStore) limiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if entry, ok := s.limiters[key]; ok {
		entry.lastSeen = now
		return entry.limiter
	}

	// Drop entries idle for over an hour so the map cannot grow unbounded.
	if len(s.limiters) > 10000 {
		for k, entry := range s.limiters {
			if now.Sub(entry.lastSeen) > time.Hour {
				delete(s.limiters, k)
			}
		}
	}

	limiter := rate.NewLimiter(rate.Limit(float64(s.perMin)/60.0), s.burst)
	s.limiters[key] = &limiterEntry{limiter: limiter, lastSeen: now}
	return limiter
}

// RateLimit applies a per-client-IP token bucket. Use a separate instance
// with a lower rate for login endpoints.
func RateLimit(cfg config.RateLimitConfig, perMinute int) gin.HandlerFunc {
	store := newLimiterStore(perMinute, cfg.Burst)
	return func(ctx *gin.Context) {
		if !store.limiter(ctx.ClientIP()).Allow() {
			ctx.Header("Retry-After", "60")
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}
		ctx.Next()
	}
}
