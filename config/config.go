package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT" envDefault:"8080" validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	DatabaseURL   string `env:"DATABASE_URL,required" validate:"required"`
	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"migrations" validate:"required"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	// RedisAddr switches the view cache to the shared Redis store when
	// set; empty means the in-process store.
	RedisAddr    string        `env:"REDIS_ADDR"`
	ViewCacheTTL time.Duration `env:"VIEW_CACHE_TTL" envDefault:"5m"`

	SessionSecret string        `env:"SESSION_SECRET,required" validate:"required,min=32"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
