// Package config loads the ratelimitd configuration file.
//
// Configuration is read from YAML, completed with defaults, overridden from
// RATELIMITD_* environment variables and validated, in that order.
package config

import (
	"time"

	ratelimiter "github.com/rkalyankumar77/rate-limiter"
)

// Config is the root of the ratelimitd configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Limiter LimiterConfig `yaml:"limiter"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Listen is the address to listen on, e.g. ":8080".
	Listen string `yaml:"listen"`
	// ReadHeaderTimeout bounds how long a client may take to send headers.
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Development switches to human-friendly console output.
	Development bool `yaml:"development"`
}

// LimiterConfig selects and parameterizes the rate limiter.
type LimiterConfig struct {
	// Algorithm is fixed_window or token_bucket.
	Algorithm string `yaml:"algorithm"`

	// Limit and Window apply to fixed_window.
	Limit  int64         `yaml:"limit"`
	Window time.Duration `yaml:"window"`

	// Capacity and RefillRate apply to token_bucket.
	Capacity   int64   `yaml:"capacity"`
	RefillRate float64 `yaml:"refill_rate"`

	// KeyHeader keys clients by this request header instead of remote IP.
	KeyHeader string `yaml:"key_header"`

	// CleanupInterval and IdleTimeout control eviction of idle keys.
	// A zero CleanupInterval keeps keys forever.
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
}

// ToLimiterConfig converts the section into a ratelimiter.Config. The
// algorithm name must already be valid; Validate checks that.
func (c LimiterConfig) ToLimiterConfig() (ratelimiter.Config, error) {
	algorithm, err := ratelimiter.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return ratelimiter.Config{}, err
	}
	return ratelimiter.Config{
		Algorithm:  algorithm,
		Limit:      c.Limit,
		Window:     c.Window,
		Capacity:   c.Capacity,
		RefillRate: c.RefillRate,
	}, nil
}
