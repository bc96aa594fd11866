// Package config loads the dashboard settings from the environment, with a
// .env file honored when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every tunable of the dashboard client.
type Config struct {
	APIBaseURL        string
	LowStockThreshold int
	AlertCap          int
	AlertTTL          time.Duration
	ExportPath        string
}

// Load reads the environment. INVENTORY_API_URL is required; everything
// else has a default. Malformed numeric values are errors, not silent
// fallbacks.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:        os.Getenv("INVENTORY_API_URL"),
		LowStockThreshold: 5,
		AlertCap:          5,
		AlertTTL:          5 * time.Second,
		ExportPath:        "inventory-report.xlsx",
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("INVENTORY_API_URL is required")
	}

	if raw := os.Getenv("LOW_STOCK_THRESHOLD"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("LOW_STOCK_THRESHOLD must be a positive integer, got %q", raw)
		}
		cfg.LowStockThreshold = parsed
	}

	if raw := os.Getenv("ALERT_CAP"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("ALERT_CAP must be a positive integer, got %q", raw)
		}
		cfg.AlertCap = parsed
	}

	if raw := os.Getenv("ALERT_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("ALERT_TTL must be a positive duration, got %q", raw)
		}
		cfg.AlertTTL = parsed
	}

	if raw := os.Getenv("EXPORT_PATH"); raw != "" {
		cfg.ExportPath = raw
	}

	return cfg, nil
}
