package server

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/GitDDAN/padel-palms-proposal/internal/config"
	"github.com/GitDDAN/padel-palms-proposal/pkg/apperror"
)

// RateLimiter keeps one token bucket per client IP for the AI endpoints.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*entry
	limit    rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter from the AI rate limit settings.
func NewRateLimiter(cfg *config.Config) *RateLimiter {
	return newRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)
}

func newRateLimiter(perMinute float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*entry),
		limit:    rate.Limit(perMinute / 60),
		burst:    burst,
		idle:     10 * time.Minute,
		now:      time.Now,
	}
}

// Allow reports whether key may make another call now.
func (r *RateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	e, ok := r.limiters[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// Sweep forgets clients idle for longer than the idle window.
func (r *RateLimiter) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idle)
	removed := 0
	for k, e := range r.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(r.limiters, k)
			removed++
		}
	}
	return removed
}

// Middleware rejects calls over the limit with 429.
func (r *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !r.Allow(c.RealIP()) {
				return apperror.ErrRateLimited
			}
			return next(c)
		}
	}
}
