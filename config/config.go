package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/bookpace/bookpace/model"
)

type Config struct {
	// Application
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	// Storage (driver switch via ENV, default: bolt)
	DBDriver string `env:"DB_DRIVER" envDefault:"bolt"`
	DBPath   string `env:"DB_PATH" envDefault:"./data/bookpace.db"`

	// Logging (LOG_FILE empty: stdout only)
	LogFile string `env:"LOG_FILE"`

	// Scheduler
	TickInterval time.Duration `env:"TICK_INTERVAL" envDefault:"1m"`

	// Debug: fix "today" to a YYYY-MM-DD date instead of the wall clock.
	// Every pacing computation observes the override.
	DateOverride string `env:"DATE_OVERRIDE"`
}

func Load() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// OverrideDate returns the parsed debug date override, if set.
func (c *Config) OverrideDate() (model.Date, bool, error) {
	if c.DateOverride == "" {
		return model.Date{}, false, nil
	}

	date, err := model.ParseDate(c.DateOverride)
	if err != nil {
		return model.Date{}, false, fmt.Errorf("invalid DATE_OVERRIDE: %w", err)
	}

	return date, true, nil
}
