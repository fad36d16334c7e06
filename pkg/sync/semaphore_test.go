package sync_test

import (
	"context"
	"sync"
	"testing"
	"time"

	pkgsync "github.com/neekrasov/idgen/pkg/sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemaphore_AcquireRelease(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sem := pkgsync.NewSemaphore(2)

	require.NoError(t, sem.Acquire(ctx))
	require.NoError(t, sem.Acquire(ctx))
	assert.Equal(t, 2, sem.InUse())

	done := make(chan struct{})
	go func() {
		_ = sem.Acquire(ctx)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("expected semaphore to block, but it acquired more permits")
	case <-time.After(100 * time.Millisecond):
	}

	sem.Release()
	<-done
	sem.Release()
	sem.Release()
	assert.Equal(t, 0, sem.InUse())
}

func TestSemaphore_AcquireCanceled(t *testing.T) {
	t.Parallel()

	sem := pkgsync.NewSemaphore(1)
	require.NoError(t, sem.Acquire(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, sem.Acquire(ctx), context.DeadlineExceeded)
	assert.Equal(t, 1, sem.InUse())
}

func TestSemaphore_Concurrency(t *testing.T) {
	t.Parallel()

	sem := pkgsync.NewSemaphore(3)
	var wg sync.WaitGroup
	var mu sync.Mutex
	counter := 0
	totalGoroutines := 10
	wg.Add(totalGoroutines)

	for i := 0; i < totalGoroutines; i++ {
		go func() {
			defer wg.Done()
			_ = sem.Acquire(context.Background())
			mu.Lock()
			counter++
			mu.Unlock()
			sem.Release()
		}()
	}

	wg.Wait()

	if counter != totalGoroutines {
		t.Fatalf("expected counter to be %d, got %d", totalGoroutines, counter)
	}
}

func TestSemaphore_NilSafety(t *testing.T) {
	t.Parallel()

	var sem *pkgsync.Semaphore
	assert.NoError(t, sem.Acquire(context.Background()))
	sem.Release()
	assert.Equal(t, 0, sem.InUse())
}
