// Package stdlogadapter lets a standard library logger receive rate limiter
// log messages.
package stdlogadapter

import (
	"fmt"
	"log"
	"strings"
)

// Logger implements ratelimiter.Logger using Go standard library log.
type Logger struct {
	logger *log.Logger
}

// New creates a new Logger. If nil is passed, uses the default logger.
func New(l *log.Logger) *Logger {
	if l == nil {
		l = log.Default()
	}
	return &Logger{
		logger: l,
	}
}

// Debug logs a debug-level message followed by key=value pairs.
func (s *Logger) Debug(msg string, keysAndValues ...any) {
	s.logger.Print(format("[DEBUG] ", msg, keysAndValues))
}

// Error logs an error-level message followed by key=value pairs.
func (s *Logger) Error(msg string, keysAndValues ...any) {
	s.logger.Print(format("[ERROR] ", msg, keysAndValues))
}

func format(level, msg string, keysAndValues []any) string {
	var b strings.Builder
	b.WriteString(level)
	b.WriteString(msg)
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fmt.Fprintf(&b, " %v=%v", keysAndValues[i], keysAndValues[i+1])
		} else {
			fmt.Fprintf(&b, " %v=", keysAndValues[i])
		}
	}
	return b.String()
}
