package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/logger"
)

// RetryConfig holds retry configuration for one logical network operation.
type RetryConfig struct {
	MaxRetries     int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	AttemptTimeout time.Duration
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     3,
		BaseDelay:      500 * time.Millisecond,
		MaxDelay:       8 * time.Second,
		AttemptTimeout: 10 * time.Second,
	}
}

// Executor performs one logical network operation under the shared rate
// limiter and concurrency cap, with bounded retries and exponential
// backoff. The limiter and semaphore are passed in explicitly; there is no
// ambient shared state.
type Executor struct {
	limiter *RateLimiter
	slots   *Semaphore
	retry   RetryConfig
	logger  *logger.Logger
}

// NewExecutor creates an executor bound to one limiter and semaphore pair.
func NewExecutor(limiter *RateLimiter, slots *Semaphore, retry RetryConfig, log *logger.Logger) *Executor {
	return &Executor{
		limiter: limiter,
		slots:   slots,
		retry:   retry,
		logger:  log,
	}
}

// Do runs op as one logical operation: a concurrency slot is held for its
// whole lifetime and released on every exit path; each attempt waits on the
// rate limiter (recording a timestamp) and is individually time-bounded.
// Retryable failures back off base*2^attempt capped at MaxDelay, making
// exactly MaxRetries+1 attempts before the error becomes permanent.
func (e *Executor) Do(ctx context.Context, name string, op func(ctx context.Context) error) error {
	if err := e.slots.Acquire(ctx); err != nil {
		return fmt.Errorf("%s: acquire slot: %w", name, err)
	}
	defer e.slots.Release()

	delay := e.retry.BaseDelay
	var lastErr error

	for attempt := 0; attempt <= e.retry.MaxRetries; attempt++ {
		if err := e.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%s: rate limit wait: %w", name, err)
		}

		err := e.runAttempt(ctx, op)
		if err == nil {
			return nil
		}

		if !IsRetryable(err) {
			return fmt.Errorf("%s: %w", name, err)
		}
		lastErr = err

		if attempt == e.retry.MaxRetries {
			break
		}

		e.logger.WithFields(map[string]interface{}{
			"operation": name,
			"attempt":   attempt + 1,
			"backoff":   delay,
			"error":     err.Error(),
		}).Warn("Retrying request")

		if err := sleepCtx(ctx, delay); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		delay = nextBackoff(delay, e.retry.MaxDelay)
	}

	return fmt.Errorf("%s: retries exhausted after %d attempts: %w", name, e.retry.MaxRetries+1, lastErr)
}

// nextBackoff doubles the delay, capped at max.
func nextBackoff(delay, max time.Duration) time.Duration {
	delay *= 2
	if delay > max {
		delay = max
	}
	return delay
}

// runAttempt bounds a single attempt with its own timeout.
func (e *Executor) runAttempt(ctx context.Context, op func(ctx context.Context) error) error {
	if e.retry.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.retry.AttemptTimeout)
		defer cancel()
	}
	return op(ctx)
}

// sleepCtx sleeps for d or returns early on cancellation.
func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
