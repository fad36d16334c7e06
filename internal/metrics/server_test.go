package metrics_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/neekrasov/idgen/internal/metrics"
	"github.com/neekrasov/idgen/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, url string) (int, string) {
	t.Helper()

	client := &http.Client{
		Timeout:   time.Second,
		Transport: &http.Transport{DisableKeepAlives: true},
	}

	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func TestServer(t *testing.T) {
	logger.MockLogger()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	server := metrics.NewServer(newStubSource())

	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, listener) }()

	base := "http://" + listener.Addr().String()

	status, body := get(t, base+"/healthz")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body)

	status, body = get(t, base+"/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "idgen_ids_generated_total 42")
	assert.Contains(t, body, `idgen_node_info{datacenter="4",machine="9"} 1`)
	assert.Contains(t, body, "go_goroutines")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("metrics server did not stop")
	}
}

func TestServer_StartInvalidAddress(t *testing.T) {
	logger.MockLogger()

	err := metrics.NewServer(newStubSource()).Start(context.Background(), "invalid-address")
	assert.Error(t, err)
}
