package application

import (
	"fmt"

	"github.com/neekrasov/idgen/internal/config"
	"github.com/neekrasov/idgen/internal/delivery/tcp"
	"github.com/neekrasov/idgen/pkg/logger"
	"github.com/neekrasov/idgen/pkg/sizeutil"
	"go.uber.org/zap"
)

func initServerOptions(cfg *config.NetworkConfig) ([]tcp.ServerOption, error) {
	tcpServerOpts := make([]tcp.ServerOption, 0)
	if timeout := cfg.IdleTimeout; timeout != 0 {
		logger.Debug("set tcp idle timeout", zap.Stringer("idle_timeout", timeout))
		tcpServerOpts = append(tcpServerOpts, tcp.WithServerIdleTimeout(timeout))
	}

	if mcons := cfg.MaxConnections; mcons != 0 {
		logger.Debug("set tcp max connections", zap.Uint("max_connections", mcons))
		tcpServerOpts = append(tcpServerOpts, tcp.WithServerMaxConnectionsNumber(mcons))
	}

	if msize := cfg.MaxMessageSize; msize != "" {
		size, err := sizeutil.ParseSize(msize)
		if err != nil {
			return nil, fmt.Errorf("parse max message size failed: %w", err)
		}

		logger.Debug("set max_message_size bytes", zap.Int("max_message_size", size))
		tcpServerOpts = append(tcpServerOpts, tcp.WithServerBufferSize(uint(size)))
	}

	return tcpServerOpts, nil
}
