package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type (
	Config struct {
		Generator *GeneratorConfig `yaml:"generator" json:"generator" xml:"generator"`
		Network   *NetworkConfig   `yaml:"network" json:"network" xml:"network"`
		Logging   *LoggingConfig   `yaml:"logging" json:"logging" xml:"logging"`
		Metrics   *MetricsConfig   `yaml:"metrics" json:"metrics" xml:"metrics"`
		Root      *RootConfig      `yaml:"root" json:"root" xml:"root"`
	}

	// GeneratorConfig - node identity and caller-facing limits.
	GeneratorConfig struct {
		DatacenterID int64         `yaml:"datacenter_id" json:"datacenter_id" xml:"datacenter_id"`
		MachineID    int64         `yaml:"machine_id" json:"machine_id" xml:"machine_id"`
		Timeout      time.Duration `yaml:"timeout" json:"timeout" xml:"timeout"`
		MaxBatchSize int           `yaml:"max_batch_size" json:"max_batch_size" xml:"max_batch_size"`
	}

	NetworkConfig struct {
		Address        string        `yaml:"address" json:"address" xml:"address"`
		MaxConnections uint          `yaml:"max_connections" json:"max_connections" xml:"max_connections"`
		MaxMessageSize string        `yaml:"max_message_size" json:"max_message_size" xml:"max_message_size"`
		IdleTimeout    time.Duration `yaml:"idle_timeout" json:"idle_timeout" xml:"idle_timeout"`
	}

	LoggingConfig struct {
		Level  string `yaml:"level" json:"level" xml:"level"`
		Output string `yaml:"output" json:"output" xml:"output"`
	}

	// MetricsConfig - prometheus exposition; empty address disables it.
	MetricsConfig struct {
		Address string `yaml:"address" json:"address" xml:"address"`
	}

	// RootConfig - credentials required from clients; empty username disables authentication.
	RootConfig struct {
		Username string `yaml:"username" json:"username" xml:"username"`
		Password string `yaml:"password" json:"password" xml:"password"`
	}
)

// duration - accepts Go duration strings in JSON ("50ms", "5m").
type duration time.Duration

func (d *duration) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		var nanos int64
		if err := json.Unmarshal(b, &nanos); err != nil {
			return fmt.Errorf("invalid duration %s", string(b))
		}
		*d = duration(nanos)
		return nil
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}

	*d = duration(parsed)
	return nil
}

func (c *GeneratorConfig) UnmarshalJSON(b []byte) error {
	type plain GeneratorConfig
	aux := struct {
		*plain
		Timeout duration `json:"timeout"`
	}{plain: (*plain)(c)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	c.Timeout = time.Duration(aux.Timeout)
	return nil
}

func (c *NetworkConfig) UnmarshalJSON(b []byte) error {
	type plain NetworkConfig
	aux := struct {
		*plain
		IdleTimeout duration `json:"idle_timeout"`
	}{plain: (*plain)(c)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	c.IdleTimeout = time.Duration(aux.IdleTimeout)
	return nil
}

// GetConfig - reads the config at path, falling back to the built-in defaults when the file is missing.
func GetConfig(path string) (Config, error) {
	configContent, err := GetConfigReader(path)
	if err != nil {
		return Config{}, err
	}

	return ParseConfig(configContent)
}

// ParseConfig - decodes YAML, then JSON, and fills absent sections with defaults.
func ParseConfig(input io.ReadCloser) (Config, error) {
	defer input.Close()

	content, err := io.ReadAll(input)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var parseErr strings.Builder
	for _, parser := range []func([]byte, *Config) error{yamlParser, jsonParser} {
		var cfg Config
		if err := parser(content, &cfg); err != nil {
			_, _ = parseErr.WriteString(fmt.Sprintf("Error parsing config: %s\n", err.Error()))
			continue
		}

		cfg.setDefaults()
		return cfg, nil
	}

	return Config{}, errors.New(parseErr.String())
}

func (c *Config) setDefaults() {
	if c.Generator == nil {
		c.Generator = &GeneratorConfig{}
	}
	if c.Generator.MaxBatchSize == 0 {
		c.Generator.MaxBatchSize = defaultMaxBatchSize
	}

	if c.Network == nil {
		c.Network = &NetworkConfig{}
	}
	if c.Network.Address == "" {
		c.Network.Address = defaultAddress
	}

	if c.Logging == nil {
		c.Logging = &LoggingConfig{}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}

	if c.Metrics == nil {
		c.Metrics = &MetricsConfig{}
	}

	if c.Root == nil {
		c.Root = &RootConfig{}
	}
}

func yamlParser(input []byte, config *Config) error {
	decoder := yaml.NewDecoder(strings.NewReader(string(input)))
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil {
		return fmt.Errorf("cant decode yaml config: %w", err)
	}

	return nil
}

func jsonParser(input []byte, config *Config) error {
	decoder := json.NewDecoder(strings.NewReader(string(input)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(config); err != nil {
		return fmt.Errorf("cant decode json config: %w", err)
	}

	return nil
}
