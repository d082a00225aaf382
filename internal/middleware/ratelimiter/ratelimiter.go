// Package ratelimiter implements a per-identity token bucket with idle
// expiration. Buckets are created lazily and dropped after expirationTime
// without activity, which keeps the limiter map bounded.
package ratelimiter

import (
	"sync"
	"time"
)

type bucket struct {
	tokens     float64
	capacity   float64
	rate       float64
	lastRefill time.Time
	mu         sync.Mutex
	timer      *time.Timer
	identity   string
	parent     *UserRateLimiter
}

// UserRateLimiter manages one token bucket per identity (IP, user id, ...).
type UserRateLimiter struct {
	limiters       map[string]*bucket
	mu             sync.RWMutex
	rate           float64
	capacity       float64
	expirationTime time.Duration
}

// New creates a limiter refilling rate tokens per second up to capacity.
func New(rate float64, capacity float64, expirationTime time.Duration) *UserRateLimiter {
	return &UserRateLimiter{
		limiters:       make(map[string]*bucket),
		rate:           rate,
		capacity:       capacity,
		expirationTime: expirationTime,
	}
}

func (rl *UserRateLimiter) cleanup(identity string) {
	rl.mu.Lock()
	delete(rl.limiters, identity)
	rl.mu.Unlock()
}

func (b *bucket) resetTimer() {
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.parent.expirationTime, func() {
		b.parent.cleanup(b.identity)
	})
}

func (rl *UserRateLimiter) getBucket(identity string) *bucket {
	rl.mu.RLock()
	b, exists := rl.limiters[identity]
	rl.mu.RUnlock()

	if exists {
		b.resetTimer()
		return b
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Double-check after acquiring write lock
	b, exists = rl.limiters[identity]
	if exists {
		b.resetTimer()
		return b
	}

	b = &bucket{
		tokens:     rl.capacity,
		capacity:   rl.capacity,
		rate:       rl.rate,
		lastRefill: time.Now(),
		identity:   identity,
		parent:     rl,
	}
	rl.limiters[identity] = b
	b.resetTimer()

	return b
}

func (b *bucket) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(b.lastRefill).Seconds()

	b.tokens += elapsed * b.rate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Allow reports whether a request from identity should proceed.
func (rl *UserRateLimiter) Allow(identity string) bool {
	return rl.getBucket(identity).allow()
}

// Stop cancels all expiration timers.
func (rl *UserRateLimiter) Stop() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for _, b := range rl.limiters {
		if b.timer != nil {
			b.timer.Stop()
		}
	}
}

// Common presets used by the router.

func Rps10() *UserRateLimiter {
	return New(10, 10, 1*time.Hour)
}

func Rps100() *UserRateLimiter {
	return New(100, 100, 1*time.Hour)
}

func OnceInSecond() *UserRateLimiter {
	return New(1, 1, 1*time.Hour)
}
