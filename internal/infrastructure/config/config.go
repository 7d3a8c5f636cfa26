package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	// Account list cache
	AccountCacheTTL time.Duration `env:"ACCOUNT_CACHE_TTL" envDefault:"30s"`

	// Snapshot locations
	SnapshotDir  string `env:"SNAPSHOT_DIR"  envDefault:"data"`
	SnapshotFile string `env:"SNAPSHOT_FILE" envDefault:"data/ledger.json"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
