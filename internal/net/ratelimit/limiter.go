package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// DefaultIdleTTL is how long a client bucket survives without requests.
const DefaultIdleTTL = 10 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// Limiter provides per-client rate limiting using a token bucket per key
type Limiter struct {
	mu       sync.RWMutex
	limiters map[string]*bucket
	rps      float64 // Requests per second
	burst    int     // Burst capacity
	now      func() time.Time
}

// NewLimiter creates a new rate limiter with the specified RPS and burst capacity.
// A non-positive rps disables limiting.
func NewLimiter(rps float64, burst int) *Limiter {
	return &Limiter{
		limiters: make(map[string]*bucket),
		rps:      rps,
		burst:    burst,
		now:      time.Now,
	}
}

// getLimiter returns or creates the bucket for key
func (l *Limiter) getLimiter(key string) *bucket {
	l.mu.RLock()
	b, exists := l.limiters[key]
	l.mu.RUnlock()

	if exists {
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if b, exists := l.limiters[key]; exists {
		return b
	}

	b = &bucket{limiter: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
	l.limiters[key] = b
	return b
}

// Allow returns true if a request for key is allowed now
func (l *Limiter) Allow(key string) bool {
	if l.rps <= 0 {
		return true
	}
	b := l.getLimiter(key)
	b.lastSeen.Store(l.now().UnixNano())
	return b.limiter.Allow()
}

// Prune drops buckets idle for longer than ttl and returns how many went.
// An evicted client starts again with a full bucket.
func (l *Limiter) Prune(ttl time.Duration) int {
	cutoff := l.now().Add(-ttl).UnixNano()

	l.mu.Lock()
	defer l.mu.Unlock()

	pruned := 0
	for key, b := range l.limiters {
		if b.lastSeen.Load() < cutoff {
			delete(l.limiters, key)
			pruned++
		}
	}
	return pruned
}

// Run prunes idle buckets every interval until ctx is done.
func (l *Limiter) Run(ctx context.Context, interval, ttl time.Duration) {
	if l.rps <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Prune(ttl)
		}
	}
}

// RPS returns the configured refill rate
func (l *Limiter) RPS() float64 { return l.rps }

// Burst returns the configured bucket size
func (l *Limiter) Burst() int { return l.burst }

// Clients returns the number of keys currently tracked
func (l *Limiter) Clients() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.limiters)
}

// Reset clears all buckets
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.limiters = make(map[string]*bucket)
}
