// Package zapadapter lets a zap logger receive rate limiter log messages.
package zapadapter

import (
	"go.uber.org/zap"
)

// Logger is an adapter that implements the ratelimiter.Logger interface
// using a zap.SugaredLogger internally.
type Logger struct {
	logger *zap.SugaredLogger
}

// New creates a new Logger from a zap.Logger.
//
// If a nil logger is provided, it uses zap.NewNop() internally, which
// is a no-op logger that discards all messages.
//
// Example:
//
//	limiter, err := ratelimiter.NewFixedWindow[string](100, time.Minute,
//	    ratelimiter.WithLogger(zapadapter.New(logger)),
//	)
func New(l *zap.Logger) *Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return &Logger{logger: l.Sugar()}
}

// Debug logs a debug-level message with loosely typed key/value pairs.
func (z *Logger) Debug(msg string, keysAndValues ...any) {
	z.logger.Debugw(msg, keysAndValues...)
}

// Error logs an error-level message with loosely typed key/value pairs.
func (z *Logger) Error(msg string, keysAndValues ...any) {
	z.logger.Errorw(msg, keysAndValues...)
}
