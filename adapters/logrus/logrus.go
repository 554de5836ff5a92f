// Package logrusadapter lets a logrus logger receive rate limiter log messages.
package logrusadapter

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Logger implements ratelimiter.Logger using logrus.
type Logger struct {
	logger *logrus.Entry
}

// New creates a new Logger. If nil is passed, uses a fresh logrus logger.
func New(l *logrus.Logger) *Logger {
	if l == nil {
		l = logrus.New()
	}
	return &Logger{
		logger: logrus.NewEntry(l),
	}
}

// Debug logs a debug-level message with key/value fields.
func (l *Logger) Debug(msg string, keysAndValues ...any) {
	l.logger.WithFields(fields(keysAndValues)).Debug(msg)
}

// Error logs an error-level message with key/value fields.
func (l *Logger) Error(msg string, keysAndValues ...any) {
	l.logger.WithFields(fields(keysAndValues)).Error(msg)
}

// fields pairs up keysAndValues. A dangling key is kept with a nil value.
func fields(keysAndValues []any) logrus.Fields {
	f := make(logrus.Fields, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		if i+1 < len(keysAndValues) {
			f[key] = keysAndValues[i+1]
		} else {
			f[key] = nil
		}
	}
	return f
}
