package application

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/neekrasov/idgen/internal/config"
	"github.com/neekrasov/idgen/pkg/client"
	"github.com/neekrasov/idgen/pkg/logger"
	"github.com/neekrasov/idgen/pkg/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeAddress(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	address := l.Addr().String()
	require.NoError(t, l.Close())

	return address
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Generator: &config.GeneratorConfig{
			DatacenterID: 3,
			MachineID:    5,
			Timeout:      time.Second,
			MaxBatchSize: 10,
		},
		Network: &config.NetworkConfig{
			Address:        freeAddress(t),
			MaxConnections: 4,
			MaxMessageSize: "4KB",
			IdleTimeout:    time.Minute,
		},
		Logging: &config.LoggingConfig{Level: "error"},
		Metrics: &config.MetricsConfig{},
		Root:    &config.RootConfig{Username: "root", Password: "root"},
	}
}

func TestInitServerOptions(t *testing.T) {
	logger.MockLogger()

	opts, err := initServerOptions(&config.NetworkConfig{
		MaxConnections: 10,
		MaxMessageSize: "1KB",
		IdleTimeout:    time.Second,
	})
	require.NoError(t, err)
	assert.Len(t, opts, 3)

	opts, err = initServerOptions(&config.NetworkConfig{})
	require.NoError(t, err)
	assert.Empty(t, opts)

	_, err = initServerOptions(&config.NetworkConfig{MaxMessageSize: "lots"})
	assert.Error(t, err)
}

func TestInitService(t *testing.T) {
	logger.MockLogger()

	svc, err := initService(&config.GeneratorConfig{DatacenterID: 31, MachineID: 31, MaxBatchSize: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(31), svc.Identity().DatacenterID)
	assert.Equal(t, 7, svc.MaxBatchSize())

	_, err = initService(&config.GeneratorConfig{DatacenterID: 32})
	assert.ErrorIs(t, err, snowflake.ErrOutOfRange)
}

func TestApplication_InvalidIdentity(t *testing.T) {
	cfg := testConfig(t)
	cfg.Generator.MachineID = 32

	err := New(cfg).Start(context.Background())
	assert.ErrorIs(t, err, snowflake.ErrOutOfRange)
}

func TestApplication_ServesClients(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.Address = freeAddress(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(cfg).Start(ctx) }()

	var cli *client.IDGenClient
	require.Eventually(t, func() bool {
		var err error
		cli, err = client.New(&client.Config{
			Username:    "root",
			Password:    "root",
			Address:     cfg.Network.Address,
			IdleTimeout: time.Second,
		}, client.TCPClientFactory{})
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	id, err := cli.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), id.DatacenterID())
	assert.Equal(t, int64(5), id.MachineID())

	ids, err := cli.NextBatch(ctx, 10)
	require.NoError(t, err)
	require.Len(t, ids, 10)
	assert.Less(t, uint64(id), uint64(ids[0]))

	_, err = cli.NextBatch(ctx, 11)
	assert.ErrorIs(t, err, client.ErrServer)

	require.NoError(t, cli.Close())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("application did not stop")
	}
}
