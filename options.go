package ratelimiter

import (
	"context"
	"time"

	"github.com/rkalyankumar77/rate-limiter/store"
)

// Logger is the interface used for logging inside the rate limiter.
//
// Implement this interface to provide your own logging backend, or use one of
// the adapters for zap, zerolog, logrus or the standard log package.
// keysAndValues alternate between string keys and arbitrary values.
//
// Example:
//
//	type MyLogger struct{}
//	func (l *MyLogger) Debug(msg string, keysAndValues ...any) { ... }
//	func (l *MyLogger) Error(msg string, keysAndValues ...any) { ... }
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger { return noopLogger{} }

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Error(string, ...any) {}

// Clock returns the current time. The default, time.Now, carries a monotonic
// clock reading so elapsed time is immune to wall-clock jumps.
type Clock func() time.Time

// Option configures a limiter.
//
// Example:
//
//	limiter, err := ratelimiter.NewTokenBucket[string](5, 1.0,
//	    ratelimiter.WithLogger(myLogger),
//	    ratelimiter.WithCleanup(ctx, time.Minute, 10*time.Minute),
//	)
type Option func(*options)

type options struct {
	clock           Clock
	logger          Logger
	cleanupCtx      context.Context
	cleanupInterval time.Duration
	idleTimeout     time.Duration
}

func newOptions(opts []Option) *options {
	o := &options{
		clock:      time.Now,
		logger:     noopLogger{},
		cleanupCtx: context.Background(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithClock returns an Option that sets the time source used for windows and
// refills. Useful for deterministic tests.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger returns an Option to set a custom Logger.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCleanup returns an Option that evicts keys which have been idle for
// longer than idle, checking every interval until ctx is done.
//
// Each limiter raises idle to the shortest period after which a forgotten key
// is indistinguishable from a fresh one, so eviction never admits extra
// requests: one window for FixedWindowLimiter, a full refill for
// TokenBucketLimiter.
func WithCleanup(ctx context.Context, interval, idle time.Duration) Option {
	return func(o *options) {
		if ctx != nil {
			o.cleanupCtx = ctx
		}
		o.cleanupInterval = interval
		o.idleTimeout = idle
	}
}

// storeConfig builds the keyed store settings, never letting the idle timeout
// drop below floor.
func (o *options) storeConfig(floor time.Duration) store.Config {
	idle := o.idleTimeout
	if idle <= 0 {
		idle = o.cleanupInterval * 10
	}
	return store.Config{
		CleanupInterval: o.cleanupInterval,
		IdleTimeout:     max(idle, floor),
		Clock:           o.clock,
	}
}
