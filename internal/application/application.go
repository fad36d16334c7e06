package application

import (
	"context"
	"fmt"

	"github.com/neekrasov/idgen/internal/compute"
	"github.com/neekrasov/idgen/internal/config"
	"github.com/neekrasov/idgen/internal/delivery/tcp"
	"github.com/neekrasov/idgen/internal/metrics"
	"github.com/neekrasov/idgen/internal/node"
	"github.com/neekrasov/idgen/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Application - represents the main application that starts the servers and stops them on context cancellation.
type Application struct {
	cfg *config.Config
}

// New - creates and returns a new instance of Application.
func New(cfg *config.Config) *Application {
	return &Application{
		cfg: cfg,
	}
}

// Start - initializes logger, generator and node, then serves TCP (and metrics, when configured) until ctx is done.
func (a *Application) Start(ctx context.Context) error {
	if err := logger.InitLogger(a.cfg.Logging.Level, a.cfg.Logging.Output); err != nil {
		return fmt.Errorf("initialize logger failed: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	svc, err := initService(a.cfg.Generator)
	if err != nil {
		return fmt.Errorf("initialize generator failed: %w", err)
	}

	credentials, err := node.NewCredentials(a.cfg.Root.Username, a.cfg.Root.Password)
	if err != nil {
		return fmt.Errorf("initialize root credentials failed: %w", err)
	}

	if credentials == nil {
		logger.Warn("root user is not configured, authentication disabled")
	}

	tcpServerOpts, err := initServerOptions(a.cfg.Network)
	if err != nil {
		return fmt.Errorf("initialize tcp server failed: %w", err)
	}

	server := tcp.NewServer(node.New(compute.NewParser(), svc, credentials), tcpServerOpts...)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return server.Start(ctx, a.cfg.Network.Address)
	})

	if address := a.cfg.Metrics.Address; address != "" {
		logger.Debug("enable metrics server", zap.String("address", address))
		group.Go(func() error {
			return metrics.NewServer(svc).Start(ctx, address)
		})
	}

	return group.Wait()
}
