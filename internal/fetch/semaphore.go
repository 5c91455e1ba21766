package fetch

import "context"

// Semaphore caps simultaneous in-flight network operations. It is shared
// across every fetch in a batch alongside the rate limiter.
type Semaphore struct {
	slots chan struct{}
}

// NewSemaphore creates a semaphore with the given number of slots.
func NewSemaphore(size int) *Semaphore {
	if size < 1 {
		size = 1
	}
	return &Semaphore{slots: make(chan struct{}, size)}
}

// Acquire takes a slot, suspending the caller until one frees. A failed
// acquire (cancellation) takes nothing, so the slot count stays balanced.
func (s *Semaphore) Acquire(ctx context.Context) error {
	select {
	case s.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a slot. Callers pair it with Acquire via defer so release
// happens on every exit path.
func (s *Semaphore) Release() {
	<-s.slots
}

// InFlight returns the number of currently held slots.
func (s *Semaphore) InFlight() int {
	return len(s.slots)
}
