package config

import (
	"io"
	"os"
	"strings"
)

const (
	defaultAddress      = "127.0.0.1:3224"
	defaultLogLevel     = "info"
	defaultMaxBatchSize = 100
)

const defaultConfigYaml = `generator:
  datacenter_id: 0
  machine_id: 0
  timeout: 50ms
  max_batch_size: 100
network:
  address: "127.0.0.1:3224"
  max_connections: 100
  max_message_size: "4KB"
  idle_timeout: 5m
logging:
  level: "info"
  output: "./log"
`

// GetConfigReader - opens the config file, or returns the default config when it does not exist.
func GetConfigReader(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err == nil {
		return f, nil
	}

	if !os.IsNotExist(err) {
		return nil, err
	}

	return io.NopCloser(strings.NewReader(defaultConfigYaml)), nil
}
