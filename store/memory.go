// Package store provides the keyed state container behind the limiters in
// github.com/rkalyankumar77/rate-limiter.
//
// A Memory store maps each key to exactly one Entry. Entries carry their own
// mutex, so updates for one key are serialized while unrelated keys never
// contend with each other. The key map itself is a sync.Map, which makes the
// first access to a brand-new key safe under concurrent callers.
//
// Example usage:
//
//	ctx := context.Background()
//	counters := store.NewMemory[string, int](ctx, store.Config{})
//	counters.Update("user:123", func() int { return 0 }, func(n *int) bool {
//	    *n++
//	    return true
//	})
package store

import (
	"context"
	"sync"
	"time"
)

// Config controls the optional background cleanup of idle entries.
type Config struct {
	// CleanupInterval is how often idle entries are swept.
	// Zero disables the background sweeper and keys are kept forever.
	CleanupInterval time.Duration
	// IdleTimeout is how long an entry may go untouched before a sweep
	// removes it. Defaults to 10 times CleanupInterval.
	IdleTimeout time.Duration
	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

// Entry holds the state for a single key.
type Entry[S any] struct {
	mu       sync.Mutex
	state    S
	lastSeen time.Time
	evicted  bool
}

// Do runs fn against the entry's state while holding the entry lock and
// returns fn's result.
//
// live is false when the entry was removed from its store before the lock was
// acquired. In that case fn is not called and the caller must resolve the key
// again through GetOrCreate.
func (e *Entry[S]) Do(now time.Time, fn func(state *S) bool) (result, live bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.evicted {
		return false, false
	}
	e.lastSeen = now
	return fn(&e.state), true
}

// Memory is an in-memory keyed store with per-key synchronization.
//
// Note: Memory is suitable for single-instance applications.
type Memory[K comparable, S any] struct {
	entries sync.Map // K -> *Entry[S]
	clock   func() time.Time
	idle    time.Duration
}

// NewMemory creates a new Memory store.
//
// ctx bounds the lifetime of the background cleanup goroutine, which only runs
// when cfg.CleanupInterval is positive.
func NewMemory[K comparable, S any](ctx context.Context, cfg Config) *Memory[K, S] {
	m := &Memory[K, S]{
		clock: cfg.Clock,
		idle:  cfg.IdleTimeout,
	}
	if m.clock == nil {
		m.clock = time.Now
	}
	if m.idle <= 0 {
		m.idle = cfg.CleanupInterval * 10
	}

	if cfg.CleanupInterval > 0 {
		go m.runCleanup(ctx, cfg.CleanupInterval)
	}

	return m
}

// GetOrCreate returns the entry for key, creating it from init on first
// access.
//
// Under concurrent first access init may be called more than once, but only
// one of the results is ever stored and returned to every caller.
func (m *Memory[K, S]) GetOrCreate(key K, init func() S) *Entry[S] {
	if v, ok := m.entries.Load(key); ok {
		return v.(*Entry[S])
	}

	fresh := &Entry[S]{state: init(), lastSeen: m.clock()}
	v, _ := m.entries.LoadOrStore(key, fresh)
	return v.(*Entry[S])
}

// Update atomically applies fn to the state stored under key and returns its
// result. A missing state is created with init first.
func (m *Memory[K, S]) Update(key K, init func() S, fn func(state *S) bool) bool {
	for {
		result, live := m.GetOrCreate(key, init).Do(m.clock(), fn)
		if live {
			return result
		}
	}
}

// Delete forgets the state stored under key. The next access starts afresh.
func (m *Memory[K, S]) Delete(key K) {
	v, ok := m.entries.Load(key)
	if !ok {
		return
	}

	e := v.(*Entry[S])
	e.mu.Lock()
	e.evicted = true
	m.entries.CompareAndDelete(key, e)
	e.mu.Unlock()
}

// Len returns the number of keys currently tracked.
func (m *Memory[K, S]) Len() int {
	n := 0
	m.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Sweep removes every entry that has been idle for longer than the configured
// idle timeout and returns how many were removed.
func (m *Memory[K, S]) Sweep() int {
	now := m.clock()
	removed := 0

	m.entries.Range(func(key, v any) bool {
		e := v.(*Entry[S])
		e.mu.Lock()
		if !e.evicted && now.Sub(e.lastSeen) > m.idle {
			e.evicted = true
			m.entries.CompareAndDelete(key, e)
			removed++
		}
		e.mu.Unlock()
		return true
	})

	return removed
}

// runCleanup periodically sweeps idle entries until ctx is done.
func (m *Memory[K, S]) runCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Sweep()
		case <-ctx.Done():
			return
		}
	}
}
