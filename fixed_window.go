package ratelimiter

import (
	"time"

	"github.com/rkalyankumar77/rate-limiter/store"
)

// Window is the per-key state of a FixedWindowLimiter.
type Window struct {
	// Start is when the current window opened for the key.
	Start time.Time
	// Count is the number of admissions recorded since Start.
	Count int64
}

// FixedWindowLimiter implements the "Fixed Window" rate-limiting algorithm.
//
// The Fixed Window algorithm admits up to Limit requests per key within a
// window of fixed duration. Windows are anchored to each key's first request
// (or first request after an expiry), not to a global clock epoch, so two keys
// generally have different window boundaries. It is simple and
// memory-efficient but may allow bursts of traffic at the edges of windows.
//
// Example usage:
//
//	limiter, err := ratelimiter.NewFixedWindow[string](100, time.Minute)
//	if err != nil {
//	    return err
//	}
//	if limiter.TryAcquire("user:123") {
//	    // process request
//	} else {
//	    // reject request
//	}
type FixedWindowLimiter[K comparable] struct {
	limit   int64
	window  time.Duration
	windows *store.Memory[K, Window]
	clock   Clock
	logger  Logger
}

// NewFixedWindow creates a new FixedWindowLimiter instance.
//
// Parameters:
//   - limit: maximum number of admissions per window; zero rejects everything
//   - window: duration of each fixed window, must be positive
//
// A ConfigError is returned for a negative limit or a non-positive window.
func NewFixedWindow[K comparable](limit int64, window time.Duration, opts ...Option) (*FixedWindowLimiter[K], error) {
	if limit < 0 {
		return nil, ConfigError.New("fixed window limit must not be negative, got %d", limit)
	}
	if window <= 0 {
		return nil, ConfigError.New("fixed window size must be positive, got %s", window)
	}

	o := newOptions(opts)
	return &FixedWindowLimiter[K]{
		limit:   limit,
		window:  window,
		windows: store.NewMemory[K, Window](o.cleanupCtx, o.storeConfig(window)),
		clock:   o.clock,
		logger:  o.logger,
	}, nil
}

// TryAcquire checks whether a request with the given key fits in the key's
// current window and records it when it does.
//
// An expired window is replaced by a fresh one starting now before the check.
// The comparison and the increment happen in a single critical section, so at
// most Limit calls per window return true even under heavy concurrency.
func (l *FixedWindowLimiter[K]) TryAcquire(key K) bool {
	if l.limit == 0 {
		return false
	}

	allowed := l.windows.Update(key, l.newWindow, func(w *Window) bool {
		now := l.clock()
		if !now.Before(w.Start.Add(l.window)) {
			*w = Window{Start: now}
		}

		if w.Count < l.limit {
			w.Count++
			return true
		}
		return false
	})

	if !allowed {
		l.logger.Debug("request rejected by fixed window", "key", key, "limit", l.limit, "window", l.window)
	}
	return allowed
}

// Reset forgets the window tracked for key.
func (l *FixedWindowLimiter[K]) Reset(key K) {
	l.windows.Delete(key)
}

// Len returns the number of keys currently tracked.
func (l *FixedWindowLimiter[K]) Len() int {
	return l.windows.Len()
}

func (l *FixedWindowLimiter[K]) newWindow() Window {
	return Window{Start: l.clock()}
}
