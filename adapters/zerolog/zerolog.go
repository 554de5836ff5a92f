// Package zerologadapter lets a zerolog logger receive rate limiter log messages.
package zerologadapter

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger implements ratelimiter.Logger using zerolog.
type Logger struct {
	logger zerolog.Logger
}

// New creates a new Logger. If nil is passed, uses zerolog's global logger.
func New(l *zerolog.Logger) *Logger {
	if l == nil {
		l = &log.Logger
	}
	return &Logger{
		logger: *l,
	}
}

// Debug logs a debug-level message with key/value fields.
func (z *Logger) Debug(msg string, keysAndValues ...any) {
	z.logger.Debug().Fields(keysAndValues).Msg(msg)
}

// Error logs an error-level message with key/value fields.
func (z *Logger) Error(msg string, keysAndValues ...any) {
	z.logger.Error().Fields(keysAndValues).Msg(msg)
}
