// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/mmynk/tripsplit/pkg/logging"
)

// Config is the server configuration.
type Config struct {
	// Address the HTTP server listens on.
	Addr string `env:"TRIPSPLIT_ADDR" envDefault:":8080"`

	// DBPath is the SQLite database file.
	DBPath string `env:"TRIPSPLIT_DB_PATH" envDefault:"./data/trips.db"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CORSOrigins lists the origins allowed to call the API from a browser.
	CORSOrigins []string `env:"TRIPSPLIT_CORS_ORIGINS" envDefault:"*" envSeparator:","`

	// MetricsEnabled exposes Prometheus metrics on /metrics.
	MetricsEnabled bool `env:"TRIPSPLIT_METRICS_ENABLED" envDefault:"true"`
}

// Load reads an optional .env file, then parses the environment.
func Load() (*Config, error) {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required settings are present and well-formed.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("TRIPSPLIT_ADDR is required")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("TRIPSPLIT_DB_PATH is required")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return nil
}
