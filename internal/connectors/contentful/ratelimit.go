package contentful

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBackoff applies when a 429 response carries no usable reset header.
const DefaultBackoff = time.Second

// RateLimiter provides rate limiting for Content Delivery API requests.
// It uses a token bucket with a backoff period set by 429 responses.
type RateLimiter struct {
	mu             sync.Mutex
	limiter        *rate.Limiter
	retryAt        time.Time
	defaultBackoff time.Duration
}

// NewRateLimiter creates a rate limiter allowing rps sustained requests per
// second with the given burst.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if rps <= 0 {
		rps = 10
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limiter:        rate.NewLimiter(rate.Limit(rps), burst),
		defaultBackoff: DefaultBackoff,
	}
}

// Wait blocks until a request can be made without exceeding the rate limit.
// It also respects any backoff period set by RecordRateLimitError.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(retryAt)):
		}
	}

	return r.limiter.Wait(ctx)
}

// RecordRateLimitError sets a backoff period after a 429 response.
func (r *RateLimiter) RecordRateLimitError(resetSeconds int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	backoff := r.defaultBackoff
	if resetSeconds > 0 {
		backoff = time.Duration(resetSeconds) * time.Second
	}
	r.retryAt = time.Now().Add(backoff)
}

// RetryAt returns the end of the current backoff period.
func (r *RateLimiter) RetryAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.retryAt
}
