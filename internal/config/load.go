package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a YAML file at the specified path, applies
// defaults and environment overrides, and validates the result.
//
// An empty path skips the file and starts from defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg, os.Getenv)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides applies RATELIMITD_SECTION_FIELD environment variables.
// Malformed numeric values are ignored.
func applyEnvOverrides(cfg *Config, getenv func(string) string) {
	if val := getenv("RATELIMITD_SERVER_LISTEN"); val != "" {
		cfg.Server.Listen = val
	}
	if val := getenv("RATELIMITD_LOG_LEVEL"); val != "" {
		cfg.Log.Level = val
	}
	if val := getenv("RATELIMITD_LIMITER_ALGORITHM"); val != "" {
		cfg.Limiter.Algorithm = val
	}
	if val := getenv("RATELIMITD_LIMITER_LIMIT"); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Limiter.Limit = n
		}
	}
	if val := getenv("RATELIMITD_LIMITER_CAPACITY"); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Limiter.Capacity = n
		}
	}
	if val := getenv("RATELIMITD_LIMITER_REFILL_RATE"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Limiter.RefillRate = f
		}
	}
	if val := getenv("RATELIMITD_LIMITER_KEY_HEADER"); val != "" {
		cfg.Limiter.KeyHeader = val
	}
}
