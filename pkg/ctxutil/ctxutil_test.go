package ctxutil_test

import (
	"context"
	"testing"

	"github.com/neekrasov/idgen/pkg/ctxutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjectAndExtractSessionID(t *testing.T) {
	ctx := ctxutil.InjectSessionID(context.Background(), "abc123")
	assert.Equal(t, "abc123", ctxutil.ExtractSessionID(ctx))
}

func TestExtractSessionID_NotFound(t *testing.T) {
	assert.Equal(t, "", ctxutil.ExtractSessionID(context.Background()))
}

func TestInjectAndExtractRemoteAddr(t *testing.T) {
	ctx := ctxutil.InjectRemoteAddr(context.Background(), "127.0.0.1:50000")
	assert.Equal(t, "127.0.0.1:50000", ctxutil.ExtractRemoteAddr(ctx))
	assert.Equal(t, "", ctxutil.ExtractRemoteAddr(context.Background()))
}

func TestContextChaining(t *testing.T) {
	ctx := context.Background()
	ctx = ctxutil.InjectSessionID(ctx, "xyz789")
	ctx = ctxutil.InjectRemoteAddr(ctx, "10.0.0.1:1")

	require.Equal(t, "xyz789", ctxutil.ExtractSessionID(ctx))
	require.Equal(t, "10.0.0.1:1", ctxutil.ExtractRemoteAddr(ctx))
}
