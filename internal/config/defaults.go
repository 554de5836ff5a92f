package config

import "time"

// Default values applied to unset fields.
const (
	DefaultListen            = ":8080"
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 30 * time.Second
	DefaultLogLevel          = "info"
	DefaultAlgorithm         = "token_bucket"
	DefaultLimit             = 100
	DefaultWindow            = time.Minute
	DefaultCapacity          = 20
	DefaultRefillRate        = 5.0
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in zero-valued fields.
//
// Limit and Capacity are only defaulted together with the algorithm so that
// an explicit zero (reject everything) in a file is preserved.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = DefaultListen
	}
	if cfg.Server.ReadHeaderTimeout == 0 {
		cfg.Server.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}

	if cfg.Limiter.Algorithm == "" {
		cfg.Limiter.Algorithm = DefaultAlgorithm
		if cfg.Limiter.Limit == 0 {
			cfg.Limiter.Limit = DefaultLimit
		}
		if cfg.Limiter.Capacity == 0 {
			cfg.Limiter.Capacity = DefaultCapacity
		}
	}
	if cfg.Limiter.Window == 0 {
		cfg.Limiter.Window = DefaultWindow
	}
	if cfg.Limiter.RefillRate == 0 {
		cfg.Limiter.RefillRate = DefaultRefillRate
	}
}
