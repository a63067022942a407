package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"LOG_LEVEL", "LOG_FORMAT", "LIBRARY_SEED_FILE", "LIBRARY_DEMO_DATA", "LIBRARY_METRICS_DUMP"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if !cfg.Seed.Demo || cfg.Seed.File != "" {
		t.Fatalf("unexpected seed defaults: %+v", cfg.Seed)
	}
	if cfg.Metrics.Dump {
		t.Fatalf("metrics dump should default to false")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("LIBRARY_SEED_FILE", " seeds/catalogue.json ")
	t.Setenv("LIBRARY_DEMO_DATA", "true")
	t.Setenv("LIBRARY_METRICS_DUMP", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
	if cfg.Seed.File != "seeds/catalogue.json" {
		t.Fatalf("seed file = %q", cfg.Seed.File)
	}
	if !cfg.Metrics.Dump {
		t.Fatalf("expected metrics dump enabled")
	}
}

func TestLoadRejectsBadBool(t *testing.T) {
	t.Setenv("LIBRARY_DEMO_DATA", "sometimes")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "LIBRARY_DEMO_DATA") {
		t.Fatalf("expected LIBRARY_DEMO_DATA error, got %v", err)
	}
}

func TestValidateAggregatesErrors(t *testing.T) {
	cfg := &Config{
		Logging: LoggingConfig{Level: "verbose", Format: "xml"},
		Seed:    SeedConfig{File: "seed.json", Demo: false},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"LOG_LEVEL", "LOG_FORMAT", "LIBRARY_SEED_FILE"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %s in %q", want, err.Error())
		}
	}
}

func TestIsDevelopment(t *testing.T) {
	t.Setenv("ENV", "")
	cfg := &Config{}
	if !cfg.IsDevelopment() {
		t.Fatalf("empty ENV should be development")
	}

	t.Setenv("ENV", "Production")
	if cfg.IsDevelopment() {
		t.Fatalf("production should not be development")
	}
}
