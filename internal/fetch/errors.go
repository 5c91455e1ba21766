package fetch

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// transientError marks a failure as retryable regardless of its cause.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return "transient: " + e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Transient wraps err so the executor treats it as retryable.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsRetryable classifies an attempt failure. Timeouts and transient
// connection errors are retried with backoff; caller errors and explicit
// cancellation fail immediately.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	// Per-attempt timeout counts as a transient failure.
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var te *transientError
	if errors.As(err, &te) {
		return true
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}

	return false
}
