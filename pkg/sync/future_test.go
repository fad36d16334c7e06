package sync_test

import (
	"context"
	"testing"
	"time"

	pkgsync "github.com/neekrasov/idgen/pkg/sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuture_SetGet(t *testing.T) {
	t.Parallel()

	future := pkgsync.NewFuture[int]()
	go future.Set(7)

	assert.Equal(t, 7, future.Get())
}

func TestFuture_SetOnce(t *testing.T) {
	t.Parallel()

	future := pkgsync.NewFuture[string]()
	future.Set("first")
	future.Set("second")

	assert.Equal(t, "first", future.Get())
}

func TestFuture_SetWithoutReader(t *testing.T) {
	t.Parallel()

	future := pkgsync.NewFuture[error]()

	done := make(chan struct{})
	go func() {
		future.Set(nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Set blocked without a reader")
	}
}

func TestFuture_GetContext(t *testing.T) {
	t.Parallel()

	future := pkgsync.NewFuture[int]()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	value, err := future.GetContext(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, value)

	future.Set(3)
	value, err = future.GetContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, value)
}
