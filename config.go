package ratelimiter

import (
	"strings"
	"time"
)

// Algorithm names a rate-limiting algorithm.
type Algorithm string

// Known algorithms. Only FixedWindow and TokenBucket are implemented; the
// others are reserved names that New rejects.
const (
	FixedWindow      Algorithm = "fixed_window"
	SlidingWindow    Algorithm = "sliding_window"
	SlidingWindowLog Algorithm = "sliding_window_log"
	TokenBucket      Algorithm = "token_bucket"
	LeakyBucket      Algorithm = "leaky_bucket"
	Adaptive         Algorithm = "adaptive"
)

var algorithms = []Algorithm{FixedWindow, SlidingWindow, SlidingWindowLog, TokenBucket, LeakyBucket, Adaptive}

// ParseAlgorithm maps a name such as "token_bucket", "token-bucket" or
// "TOKEN_BUCKET" to its Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	normalized := Algorithm(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_"))
	for _, a := range algorithms {
		if a == normalized {
			return a, nil
		}
	}
	return "", ConfigError.New("unknown algorithm %q", name)
}

// Implemented reports whether New can build a limiter for a.
func (a Algorithm) Implemented() bool {
	return a == FixedWindow || a == TokenBucket
}

func (a Algorithm) String() string { return string(a) }

// Config describes a limiter so that the algorithm can be chosen at runtime,
// for example from a configuration file.
type Config struct {
	Algorithm Algorithm

	// Limit and Window apply to FixedWindow.
	Limit  int64
	Window time.Duration

	// Capacity and RefillRate apply to TokenBucket.
	Capacity   int64
	RefillRate float64
}

// New builds the limiter described by cfg.
//
// Callers that know their algorithm up front should prefer NewFixedWindow or
// NewTokenBucket, which return the concrete type.
func New[K comparable](cfg Config, opts ...Option) (RateLimiter[K], error) {
	switch cfg.Algorithm {
	case FixedWindow:
		l, err := NewFixedWindow[K](cfg.Limit, cfg.Window, opts...)
		if err != nil {
			return nil, err
		}
		return l, nil
	case TokenBucket:
		l, err := NewTokenBucket[K](cfg.Capacity, cfg.RefillRate, opts...)
		if err != nil {
			return nil, err
		}
		return l, nil
	case SlidingWindow, SlidingWindowLog, LeakyBucket, Adaptive:
		return nil, ConfigError.New("algorithm %q is not implemented", cfg.Algorithm)
	default:
		return nil, ConfigError.New("unknown algorithm %q", cfg.Algorithm)
	}
}
