package fetch

import (
	"context"
	"sync"
	"time"
)

// RateLimiter implements sliding-window rate limiting over an in-process
// timestamp ledger. It is shared, mutably, by every concurrent fetch in a
// batch; the ledger is only touched under the mutex, so cancellation during
// a wait can never corrupt it.
type RateLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	stamps []time.Time

	now func() time.Time // injectable for tests
}

// NewRateLimiter creates a limiter allowing at most limit requests per
// rolling window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		window: window,
		stamps: make([]time.Time, 0, limit),
		now:    time.Now,
	}
}

// Wait blocks until a request slot is available inside the rolling window,
// then records the attempt timestamp. Every admitted caller leaves exactly
// one stamp in the ledger.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		wait, ok := r.tryReserve()
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// tryReserve prunes expired stamps and either records a new one or returns
// how long until the oldest stamp exits the window.
func (r *RateLimiter) tryReserve() (time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	cutoff := now.Add(-r.window)

	kept := r.stamps[:0]
	for _, s := range r.stamps {
		if s.After(cutoff) {
			kept = append(kept, s)
		}
	}
	r.stamps = kept

	if len(r.stamps) < r.limit {
		r.stamps = append(r.stamps, now)
		return 0, true
	}

	return r.stamps[0].Sub(cutoff), false
}

// Pending returns the number of timestamps currently inside the window.
func (r *RateLimiter) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.window)
	n := 0
	for _, s := range r.stamps {
		if s.After(cutoff) {
			n++
		}
	}
	return n
}
