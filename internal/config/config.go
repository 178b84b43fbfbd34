package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all server configuration.
type Config struct {
	Port          int    `yaml:"port"`
	MetricsAddr   string `yaml:"metrics_addr"`
	BufferSize    int    `yaml:"buffer_size"`
	MaxPathLen    int    `yaml:"max_path_len"`
	ReadTimeoutMs int    `yaml:"read_timeout_ms"`
}

func defaults() Config {
	return Config{
		Port:          8080,
		BufferSize:    1024,
		MaxPathLen:    256,
		ReadTimeoutMs: 10000,
	}
}

// Load reads configuration from a YAML file (if path is non-empty), then
// applies environment variable overrides. An empty path returns defaults +
// env overrides. The result is validated before being returned.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PATHECHO_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid PATHECHO_PORT %q: %w", v, err)
		}
		cfg.Port = p
	}
	if v := os.Getenv("PATHECHO_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("PATHECHO_BUFFER_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid PATHECHO_BUFFER_SIZE %q: %w", v, err)
		}
		cfg.BufferSize = n
	}
	if v := os.Getenv("PATHECHO_MAX_PATH_LEN"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid PATHECHO_MAX_PATH_LEN %q: %w", v, err)
		}
		cfg.MaxPathLen = n
	}
	if v := os.Getenv("PATHECHO_READ_TIMEOUT_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid PATHECHO_READ_TIMEOUT_MS %q: %w", v, err)
		}
		cfg.ReadTimeoutMs = n
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	if c.BufferSize < 1024 {
		return fmt.Errorf("config: buffer_size %d below minimum 1024", c.BufferSize)
	}
	if c.MaxPathLen < 16 || c.MaxPathLen > c.BufferSize {
		return fmt.Errorf("config: max_path_len %d must be in [16, buffer_size]", c.MaxPathLen)
	}
	if c.ReadTimeoutMs < 0 {
		return fmt.Errorf("config: read_timeout_ms %d must be >= 0", c.ReadTimeoutMs)
	}
	return nil
}
