package sync

import (
	"context"
	"sync"
)

// Future - holds a value produced asynchronously by exactly one writer.
type Future[T any] struct {
	result chan T
	once   sync.Once
}

// NewFuture creates an unresolved future.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{result: make(chan T, 1)}
}

// Set resolves the future without blocking. Only the first call has an effect.
func (f *Future[T]) Set(value T) {
	f.once.Do(func() {
		f.result <- value
		close(f.result)
	})
}

// Get blocks until the future is resolved.
func (f *Future[T]) Get() T {
	return <-f.result
}

// GetContext - waits for the value or for ctx to be done.
func (f *Future[T]) GetContext(ctx context.Context) (T, error) {
	select {
	case value := <-f.result:
		return value, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
