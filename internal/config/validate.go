package config

import (
	"errors"
	"fmt"
	"strings"

	ratelimiter "github.com/rkalyankumar77/rate-limiter"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the configuration and returns every problem found, joined.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.Listen == "" {
		errs = append(errs, errors.New("server.listen must not be empty"))
	}
	if cfg.Server.ReadHeaderTimeout < 0 {
		errs = append(errs, fmt.Errorf("server.read_header_timeout must not be negative, got %s", cfg.Server.ReadHeaderTimeout))
	}
	if cfg.Server.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("server.shutdown_timeout must not be negative, got %s", cfg.Server.ShutdownTimeout))
	}

	if !validLogLevel(cfg.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of %s, got %q", strings.Join(logLevels, ", "), cfg.Log.Level))
	}

	errs = append(errs, validateLimiter(cfg.Limiter)...)

	return errors.Join(errs...)
}

func validateLimiter(c LimiterConfig) []error {
	var errs []error

	lc, err := c.ToLimiterConfig()
	if err != nil {
		return append(errs, fmt.Errorf("limiter.algorithm: %w", err))
	}
	if !lc.Algorithm.Implemented() {
		return append(errs, fmt.Errorf("limiter.algorithm: %q is not implemented, use %s or %s",
			lc.Algorithm, ratelimiter.FixedWindow, ratelimiter.TokenBucket))
	}

	switch lc.Algorithm {
	case ratelimiter.FixedWindow:
		if c.Limit < 0 {
			errs = append(errs, fmt.Errorf("limiter.limit must not be negative, got %d", c.Limit))
		}
		if c.Window <= 0 {
			errs = append(errs, fmt.Errorf("limiter.window must be positive, got %s", c.Window))
		}
	case ratelimiter.TokenBucket:
		if c.Capacity < 0 {
			errs = append(errs, fmt.Errorf("limiter.capacity must not be negative, got %d", c.Capacity))
		}
		if !(c.RefillRate > 0) {
			errs = append(errs, fmt.Errorf("limiter.refill_rate must be positive, got %v", c.RefillRate))
		}
	}

	if c.CleanupInterval < 0 {
		errs = append(errs, fmt.Errorf("limiter.cleanup_interval must not be negative, got %s", c.CleanupInterval))
	}
	if c.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("limiter.idle_timeout must not be negative, got %s", c.IdleTimeout))
	}

	return errs
}

func validLogLevel(level string) bool {
	for _, l := range logLevels {
		if l == level {
			return true
		}
	}
	return false
}
