package config

import (
	"testing"
	"time"

	"github.com/bookpace/bookpace/model"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"APP_ENV", "DB_DRIVER", "DB_PATH", "LOG_FILE", "TICK_INTERVAL", "DATE_OVERRIDE"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if !cfg.IsDevelopment() {
		t.Fatalf("expected development default, got %q", cfg.AppEnv)
	}
	if cfg.DBDriver != "bolt" {
		t.Fatalf("expected bolt driver default, got %q", cfg.DBDriver)
	}
	if cfg.TickInterval != time.Minute {
		t.Fatalf("expected 1m tick default, got %v", cfg.TickInterval)
	}
	if _, ok, err := cfg.OverrideDate(); err != nil || ok {
		t.Fatalf("expected no date override, got ok=%v err=%v", ok, err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("TICK_INTERVAL", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if !cfg.IsProduction() {
		t.Fatalf("expected production, got %q", cfg.AppEnv)
	}
	if cfg.DBDriver != "sqlite" {
		t.Fatalf("expected sqlite driver, got %q", cfg.DBDriver)
	}
	if cfg.TickInterval != 30*time.Second {
		t.Fatalf("expected 30s tick, got %v", cfg.TickInterval)
	}
}

func TestOverrideDate(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATE_OVERRIDE", "2026-09-01")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	date, ok, err := cfg.OverrideDate()
	if err != nil {
		t.Fatalf("parse override: %v", err)
	}
	if !ok {
		t.Fatal("expected override to be set")
	}
	if !date.Equal(model.NewDate(2026, 9, 1)) {
		t.Fatalf("expected 2026-09-01, got %v", date)
	}
}

func TestOverrideDateInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATE_OVERRIDE", "tomorrow")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if _, _, err := cfg.OverrideDate(); err == nil {
		t.Fatal("expected error")
	}
}
