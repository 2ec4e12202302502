package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	logFileName     = "historiography.log"
	metricsFileName = "session.prom"
)

type Config struct {
	Env     string `env:"HISTORIOGRAPHY_ENV, default=development"`
	DataDir string `env:"DATA_DIR, default=data"`

	// AdminKey overrides domain.DefaultAdminKey when set.
	AdminKey     string        `env:"ADMIN_KEY"`
	SuccessDelay time.Duration `env:"SUCCESS_DELAY, default=1500ms"`
	MetricsFile  string        `env:"METRICS_FILE"`

	Log LogConfig
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL, default=info"`
	File   string `env:"LOG_FILE"`
	Pretty bool   `env:"LOG_PRETTY, default=false"`
}

// LogPath is LOG_FILE, or historiography.log inside the data directory.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.DataDir, logFileName)
}

// MetricsPath is METRICS_FILE, or session.prom inside the data directory.
func (c *Config) MetricsPath() string {
	if c.MetricsFile != "" {
		return c.MetricsFile
	}
	return filepath.Join(c.DataDir, metricsFileName)
}

// Load reads an optional .env from the working directory, then the process
// environment. Variables already set in the environment win over .env.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Sprintf("config: failed to read .env: %v", err))
	}
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith processes configuration from an arbitrary lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if cfg.SuccessDelay < 0 {
		return nil, fmt.Errorf("SUCCESS_DELAY must not be negative, got %s", cfg.SuccessDelay)
	}
	return &cfg, nil
}
