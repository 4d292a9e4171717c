// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultDataPath is the sqlite snapshot file used when DATA_PATH is unset.
const DefaultDataPath = "data/ledger.db"

// Config holds all configuration for the application.
type Config struct {
	// DataPath is the sqlite snapshot database file. Ignored when
	// DatabaseURL is set.
	DataPath string
	// DatabaseURL selects the Postgres snapshot backend when non-empty.
	DatabaseURL string
	// GeminiAPIKey enables receipt scanning. Optional: without it the
	// ledger still works for manual entry.
	GeminiAPIKey string
	// GoogleOAuthClientID enables ID-token verification. Optional.
	GoogleOAuthClientID string
	LogLevel            string
	LogFormat           string
	ChartOutputPath     string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DataPath:            os.Getenv("DATA_PATH"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		GoogleOAuthClientID: os.Getenv("GOOGLE_OAUTH_CLIENT_ID"),
		LogLevel:            os.Getenv("LOG_LEVEL"),
		LogFormat:           os.Getenv("LOG_FORMAT"),
		ChartOutputPath:     os.Getenv("CHART_OUTPUT_PATH"),
	}

	if cfg.DataPath == "" {
		cfg.DataPath = DefaultDataPath
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that the configuration is coherent.
func (c *Config) validate() error {
	var errs []string

	if c.LogFormat != "" && c.LogFormat != "console" && c.LogFormat != "json" {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be \"console\" or \"json\", got %q", c.LogFormat))
	}

	if c.DatabaseURL != "" && !strings.HasPrefix(c.DatabaseURL, "postgres://") && !strings.HasPrefix(c.DatabaseURL, "postgresql://") {
		errs = append(errs, fmt.Sprintf("DATABASE_URL must be a postgres:// URL, got %q", c.DatabaseURL))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// UsePostgres reports whether the Postgres snapshot backend is selected.
func (c *Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}

// ScanningEnabled reports whether receipt OCR is configured.
func (c *Config) ScanningEnabled() bool {
	return c.GeminiAPIKey != ""
}

// AuthEnabled reports whether ID-token verification is configured.
func (c *Config) AuthEnabled() bool {
	return c.GoogleOAuthClientID != ""
}
