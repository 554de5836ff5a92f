// Package ratelimiter provides in-process, per-key rate-limiting algorithms.
//
// It includes a Fixed Window counter and a continuous Token Bucket. Each key
// (a client id, an IP address, an API token) is limited independently, and
// every admission decision is atomic with respect to concurrent callers using
// the same key.
//
// The package defines three core abstractions:
//   - RateLimiter: the admission contract (FixedWindowLimiter, TokenBucketLimiter)
//   - Option: functional options shared by every limiter (clock, logger, cleanup)
//   - Config: a serializable description used to select an algorithm at runtime
//
// HTTP integration lives in the middleware packages, logging backends in the
// adapters packages, and Prometheus instrumentation in the metrics package.
package ratelimiter

// RateLimiter defines the admission contract implemented by every algorithm.
//
// Middleware and users depend only on this interface.
type RateLimiter[K comparable] interface {
	// TryAcquire reports whether a request for key may proceed, recording the
	// admission when it does. A denial is final for that call; retrying is up
	// to the caller.
	TryAcquire(key K) bool
}
