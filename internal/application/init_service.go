package application

import (
	"github.com/neekrasov/idgen/internal/config"
	"github.com/neekrasov/idgen/internal/service"
	"github.com/neekrasov/idgen/pkg/logger"
	"github.com/neekrasov/idgen/pkg/snowflake"
	"go.uber.org/zap"
)

func initService(cfg *config.GeneratorConfig) (*service.Service, error) {
	gen, err := snowflake.New(cfg.DatacenterID, cfg.MachineID)
	if err != nil {
		return nil, err
	}

	logger.Info("generator initialized",
		zap.Int64("datacenter_id", cfg.DatacenterID),
		zap.Int64("machine_id", cfg.MachineID),
		zap.Int64("epoch", snowflake.Epoch),
	)

	opts := make([]service.Option, 0)
	if timeout := cfg.Timeout; timeout != 0 {
		logger.Debug("set generate timeout", zap.Stringer("timeout", timeout))
		opts = append(opts, service.WithTimeout(timeout))
	}

	if size := cfg.MaxBatchSize; size != 0 {
		logger.Debug("set max batch size", zap.Int("max_batch_size", size))
		opts = append(opts, service.WithMaxBatchSize(size))
	}

	return service.New(gen, opts...), nil
}
