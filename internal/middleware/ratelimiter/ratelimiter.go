package ratelimiter

import (
	"context"
	"sync"
	"time"
)

// RateLimiter is a token bucket for one identity.
type RateLimiter struct {
	mu         sync.Mutex
	tokens     float64
	capacity   float64
	rate       float64 // tokens per second
	lastRefill time.Time
}

func (rl *RateLimiter) allow(now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	elapsed := now.Sub(rl.lastRefill).Seconds()
	rl.tokens += elapsed * rl.rate
	if rl.tokens > rl.capacity {
		rl.tokens = rl.capacity
	}
	rl.lastRefill = now

	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}
	return false
}

func (rl *RateLimiter) idleSince() time.Time {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.lastRefill
}

// UserRateLimiter keeps one bucket per identity (user id, IP).
type UserRateLimiter struct {
	mu             sync.RWMutex
	limiters       map[string]*RateLimiter
	rate           float64
	capacity       float64
	expirationTime time.Duration
	now            func() time.Time
}

// NewUserRateLimiter allows rate requests per second with bursts of capacity.
// Buckets unused for expirationTime are dropped by the cleanup loop.
func NewUserRateLimiter(rate float64, capacity float64, expirationTime time.Duration) *UserRateLimiter {
	return &UserRateLimiter{
		limiters:       make(map[string]*RateLimiter),
		rate:           rate,
		capacity:       capacity,
		expirationTime: expirationTime,
		now:            time.Now,
	}
}

// PerMinute is a convenience for configs expressed in requests per minute.
func PerMinute(n, burst float64, expirationTime time.Duration) *UserRateLimiter {
	return NewUserRateLimiter(n/60, burst, expirationTime)
}

func (url *UserRateLimiter) getLimiter(id string) *RateLimiter {
	url.mu.RLock()
	limiter, exists := url.limiters[id]
	url.mu.RUnlock()
	if exists {
		return limiter
	}

	url.mu.Lock()
	defer url.mu.Unlock()
	// double-check after acquiring write lock
	if limiter, exists = url.limiters[id]; exists {
		return limiter
	}
	limiter = &RateLimiter{
		tokens:     url.capacity,
		capacity:   url.capacity,
		rate:       url.rate,
		lastRefill: url.now(),
	}
	url.limiters[id] = limiter
	return limiter
}

// Allow reports whether a request for id may proceed and takes a token if so.
func (url *UserRateLimiter) Allow(id string) bool {
	return url.getLimiter(id).allow(url.now())
}

func (url *UserRateLimiter) Len() int {
	url.mu.RLock()
	defer url.mu.RUnlock()
	return len(url.limiters)
}

func (url *UserRateLimiter) cleanup() int {
	cutoff := url.now().Add(-url.expirationTime)
	url.mu.Lock()
	defer url.mu.Unlock()

	removed := 0
	for id, limiter := range url.limiters {
		if limiter.idleSince().Before(cutoff) {
			delete(url.limiters, id)
			removed++
		}
	}
	return removed
}

// StartCleanup drops idle buckets every interval until ctx is done.
func (url *UserRateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				url.cleanup()
			}
		}
	}()
}
