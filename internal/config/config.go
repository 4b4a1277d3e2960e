// Package config loads polygen settings from YAML with environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all polygen configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Solver  SolverConfig  `yaml:"solver"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Addr              string `yaml:"addr"`
	ReadHeaderTimeout string `yaml:"read_header_timeout"`
	ShutdownTimeout   string `yaml:"shutdown_timeout"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"` // fs, sqlite
	Path    string `yaml:"path"`
}

type SolverConfig struct {
	Kind       string `yaml:"kind"` // dlx, backtrack
	CountLimit int    `yaml:"count_limit"`
	Timeout    string `yaml:"timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: "5s",
			ShutdownTimeout:   "10s",
		},
		Storage: StorageConfig{
			Backend: "fs",
			Path:    "data",
		},
		Solver: SolverConfig{
			Kind:       "dlx",
			CountLimit: 200,
			Timeout:    "10s",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
// Environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("POLYGEN_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("POLYGEN_STORAGE"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("POLYGEN_DATA"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("POLYGEN_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

var (
	validBackends = []string{"fs", "sqlite"}
	validSolvers  = []string{"dlx", "backtrack"}
)

// Validate checks enumerated fields and durations.
func (c *Config) Validate() error {
	if !slices.Contains(validBackends, c.Storage.Backend) {
		return fmt.Errorf("invalid storage backend: %s (valid: %v)", c.Storage.Backend, validBackends)
	}
	if !slices.Contains(validSolvers, c.Solver.Kind) {
		return fmt.Errorf("invalid solver kind: %s (valid: %v)", c.Solver.Kind, validSolvers)
	}
	for name, v := range map[string]string{
		"server.read_header_timeout": c.Server.ReadHeaderTimeout,
		"server.shutdown_timeout":    c.Server.ShutdownTimeout,
		"solver.timeout":             c.Solver.Timeout,
	} {
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	return nil
}

func duration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func (c *Config) GetReadHeaderTimeout() time.Duration {
	return duration(c.Server.ReadHeaderTimeout, 5*time.Second)
}

func (c *Config) GetShutdownTimeout() time.Duration {
	return duration(c.Server.ShutdownTimeout, 10*time.Second)
}

func (c *Config) GetSolverTimeout() time.Duration {
	return duration(c.Solver.Timeout, 10*time.Second)
}
