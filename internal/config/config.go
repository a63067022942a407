package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Logging configuration
	Logging LoggingConfig

	// Seed catalogue configuration
	Seed SeedConfig

	// Metrics configuration
	Metrics MetricsConfig
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// SeedConfig controls the catalogue loaded at startup.
type SeedConfig struct {
	// File is a JSON seed catalogue. Empty means the embedded demo catalogue.
	File string
	// Demo disables seeding entirely when false.
	Demo bool
}

// MetricsConfig holds metrics settings
type MetricsConfig struct {
	// Dump writes the collected metrics in text format to stderr on exit.
	Dump bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.loadLogging()

	if err := cfg.loadSeed(); err != nil {
		return nil, fmt.Errorf("load seed config: %w", err)
	}

	if err := cfg.loadMetrics(); err != nil {
		return nil, fmt.Errorf("load metrics config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadLogging() {
	c.Logging.Level = strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info"))
	c.Logging.Format = strings.ToLower(getEnvOrDefault("LOG_FORMAT", "json"))
}

func (c *Config) loadSeed() error {
	c.Seed.File = strings.TrimSpace(os.Getenv("LIBRARY_SEED_FILE"))

	demo, err := strconv.ParseBool(getEnvOrDefault("LIBRARY_DEMO_DATA", "true"))
	if err != nil {
		return fmt.Errorf("invalid LIBRARY_DEMO_DATA: %w", err)
	}
	c.Seed.Demo = demo
	return nil
}

func (c *Config) loadMetrics() error {
	dump, err := strconv.ParseBool(getEnvOrDefault("LIBRARY_METRICS_DUMP", "false"))
	if err != nil {
		return fmt.Errorf("invalid LIBRARY_METRICS_DUMP: %w", err)
	}
	c.Metrics.Dump = dump
	return nil
}

// Validate checks that all required configuration is present and valid
func (c *Config) Validate() error {
	var errors []string

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		errors = append(errors, "LOG_LEVEL must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		errors = append(errors, "LOG_FORMAT must be one of: json, text")
	}

	if c.Seed.File != "" && !c.Seed.Demo {
		errors = append(errors, "LIBRARY_SEED_FILE is set but LIBRARY_DEMO_DATA disables seeding")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(os.Getenv("ENV"))
	return env == "" || env == "development"
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
