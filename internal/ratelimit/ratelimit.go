// Package ratelimit provides a keyed token-bucket limiter used to throttle
// outbound requests per remote host and inbound API requests per client.
package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrStopped is returned by Wait after Stop has been called.
var ErrStopped = errors.New("ratelimit: limiter stopped")

// KeyedRateLimiter manages per-key rate limiting.
// Each unique key gets its own independent bucket.
type KeyedRateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a keyed limiter allowing rps requests per second with the given burst.
func New(rps float64, burst int) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(rps),
		burst:    burst,
		done:     make(chan struct{}),
	}
}

// Every creates a keyed limiter releasing one token per interval, burst 1.
// A zero interval means unlimited.
func Every(interval time.Duration) *KeyedRateLimiter {
	if interval <= 0 {
		return &KeyedRateLimiter{
			limiters: make(map[string]*rate.Limiter),
			limit:    rate.Inf,
			burst:    1,
			done:     make(chan struct{}),
		}
	}
	return &KeyedRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(interval),
		burst:    1,
		done:     make(chan struct{}),
	}
}

// Allow reports whether a request for key may proceed now. Never blocks.
func (krl *KeyedRateLimiter) Allow(key string) bool {
	return krl.getLimiter(key).Allow()
}

// Wait blocks until a request for key is allowed, ctx is canceled, or the
// limiter is stopped. Waiters on the same key are served in call order.
func (krl *KeyedRateLimiter) Wait(ctx context.Context, key string) error {
	select {
	case <-krl.done:
		return ErrStopped
	default:
	}

	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-krl.done:
			cancel()
		case <-waitCtx.Done():
		}
	}()

	if err := krl.getLimiter(key).Wait(waitCtx); err != nil {
		if ctx.Err() == nil {
			return ErrStopped
		}
		return err
	}
	return nil
}

// Keys returns the number of keys seen so far.
func (krl *KeyedRateLimiter) Keys() int {
	krl.mu.RLock()
	defer krl.mu.RUnlock()
	return len(krl.limiters)
}

func (krl *KeyedRateLimiter) getLimiter(key string) *rate.Limiter {
	krl.mu.RLock()
	limiter, exists := krl.limiters[key]
	krl.mu.RUnlock()

	if exists {
		return limiter
	}

	krl.mu.Lock()
	defer krl.mu.Unlock()

	if limiter, exists = krl.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(krl.limit, krl.burst)
	krl.limiters[key] = limiter
	return limiter
}

// Stop releases blocked waiters. Safe to call more than once.
func (krl *KeyedRateLimiter) Stop() {
	krl.stopOnce.Do(func() {
		close(krl.done)
	})
}
