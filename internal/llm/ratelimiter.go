package llm

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultRateLimitWait bounds how long a rate-limited call waits for a token.
const DefaultRateLimitWait = 5 * time.Second

const rateLimitPoll = 100 * time.Millisecond

// RateLimitedProvider wraps a Provider with a token bucket of rpm requests
// per minute. A call that cannot get a token within maxWait fails with
// ErrRateLimit so the backend chain moves on instead of stalling.
type RateLimitedProvider struct {
	provider Provider
	rpm      int
	maxWait  time.Duration
	now      func() time.Time

	mu       sync.Mutex
	tokens   int
	lastFill time.Time
}

// NewRateLimitedProvider creates a rate-limited wrapper around a provider.
// rpm must be positive; a maxWait of zero or less uses DefaultRateLimitWait.
func NewRateLimitedProvider(provider Provider, rpm int, maxWait time.Duration) *RateLimitedProvider {
	if maxWait <= 0 {
		maxWait = DefaultRateLimitWait
	}
	return &RateLimitedProvider{
		provider: provider,
		rpm:      rpm,
		maxWait:  maxWait,
		now:      time.Now,
		tokens:   rpm,
		lastFill: time.Now(),
	}
}

func (r *RateLimitedProvider) Name() string {
	return r.provider.Name()
}

func (r *RateLimitedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	return r.provider.Complete(ctx, req)
}

func (r *RateLimitedProvider) wait(ctx context.Context) error {
	deadline := time.NewTimer(r.maxWait)
	defer deadline.Stop()
	for {
		if r.take() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return fmt.Errorf("%s: no request slot within %s (%d rpm): %w", r.provider.Name(), r.maxWait, r.rpm, ErrRateLimit)
		case <-time.After(rateLimitPoll):
		}
	}
}

// take refills the bucket for the elapsed time and consumes one token if
// one is available.
func (r *RateLimitedProvider) take() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	interval := time.Minute / time.Duration(r.rpm)
	if refill := int(now.Sub(r.lastFill) / interval); refill > 0 {
		r.tokens = min(r.rpm, r.tokens+refill)
		r.lastFill = r.lastFill.Add(time.Duration(refill) * interval)
		if r.tokens == r.rpm {
			r.lastFill = now
		}
	}
	if r.tokens > 0 {
		r.tokens--
		return true
	}
	return false
}
