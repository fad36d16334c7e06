package sync

import "context"

// Semaphore represents a simple semaphore to control concurrency.
// A nil semaphore never blocks.
type Semaphore struct {
	sem chan struct{} // Channel used to track taken permits.
}

// NewSemaphore creates a new Semaphore with the specified limit.
func NewSemaphore(limit uint) *Semaphore {
	return &Semaphore{sem: make(chan struct{}, limit)}
}

// Acquire acquires a permit, blocking until one is available or ctx is done.
func (s *Semaphore) Acquire(ctx context.Context) error {
	if s == nil || s.sem == nil {
		return nil
	}

	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release releases a permit, allowing another goroutine to acquire it.
func (s *Semaphore) Release() {
	if s == nil || s.sem == nil {
		return
	}

	<-s.sem
}

// InUse returns the number of taken permits.
func (s *Semaphore) InUse() int {
	if s == nil {
		return 0
	}

	return len(s.sem)
}
