package ratelimiter

import (
	"math"
	"time"

	"github.com/rkalyankumar77/rate-limiter/store"
)

// Bucket is the per-key state of a TokenBucketLimiter.
type Bucket struct {
	// Tokens is the fractional number of tokens available, 0 <= Tokens <= capacity.
	Tokens float64
	// LastRefill is when Tokens was last brought up to date.
	LastRefill time.Time
}

// TokenBucketLimiter implements the "Token Bucket" rate-limiting algorithm.
//
// Each key owns a bucket holding up to capacity tokens, refilled continuously
// at refillRate tokens per second. Every admission spends one token. Buckets
// start full, allowing a burst of capacity requests, after which the steady
// rate is refillRate requests per second.
//
// Example usage:
//
//	limiter, err := ratelimiter.NewTokenBucket[string](5, 1.0) // burst of 5, 1 token/sec
//	if err != nil {
//	    return err
//	}
//	if limiter.TryAcquire("user:123") {
//	    // process request
//	}
type TokenBucketLimiter[K comparable] struct {
	capacity   int64
	refillRate float64 // Tokens generated per second
	buckets    *store.Memory[K, Bucket]
	clock      Clock
	logger     Logger
}

// NewTokenBucket creates a new TokenBucketLimiter instance.
//
// Parameters:
//   - capacity: maximum number of tokens in a bucket; zero rejects everything
//   - refillRate: number of tokens added to a bucket per second, must be positive
//
// A ConfigError is returned for a negative capacity or a refill rate that is
// not a positive finite number.
func NewTokenBucket[K comparable](capacity int64, refillRate float64, opts ...Option) (*TokenBucketLimiter[K], error) {
	if capacity < 0 {
		return nil, ConfigError.New("token bucket capacity must not be negative, got %d", capacity)
	}
	if !(refillRate > 0) || math.IsInf(refillRate, 1) {
		return nil, ConfigError.New("token bucket refill rate must be a positive number, got %v", refillRate)
	}

	o := newOptions(opts)
	return &TokenBucketLimiter[K]{
		capacity:   capacity,
		refillRate: refillRate,
		buckets:    store.NewMemory[K, Bucket](o.cleanupCtx, o.storeConfig(refillTime(capacity, refillRate))),
		clock:      o.clock,
		logger:     o.logger,
	}, nil
}

// TryAcquire refills the key's bucket for the time elapsed since the last
// call and spends one token if at least one is available.
//
// The refill anchor moves to now on every call, admitted or not, and the
// fractional remainder is carried over so partial refills accumulate.
func (l *TokenBucketLimiter[K]) TryAcquire(key K) bool {
	if l.capacity == 0 {
		return false
	}

	allowed := l.buckets.Update(key, l.newBucket, func(b *Bucket) bool {
		return l.take(b, l.clock())
	})

	if !allowed {
		l.logger.Debug("request rejected by token bucket", "key", key, "capacity", l.capacity, "refill_rate", l.refillRate)
	}
	return allowed
}

// Reset forgets the bucket tracked for key, so its next request sees a full bucket.
func (l *TokenBucketLimiter[K]) Reset(key K) {
	l.buckets.Delete(key)
}

// Len returns the number of keys currently tracked.
func (l *TokenBucketLimiter[K]) Len() int {
	return l.buckets.Len()
}

func (l *TokenBucketLimiter[K]) newBucket() Bucket {
	return Bucket{Tokens: float64(l.capacity), LastRefill: l.clock()}
}

// take applies one refill-then-consume step to b. Caller must hold the key's lock.
func (l *TokenBucketLimiter[K]) take(b *Bucket, now time.Time) bool {
	elapsed := now.Sub(b.LastRefill)
	if elapsed < 0 {
		elapsed = 0
	}

	tokens := math.Min(float64(l.capacity), b.Tokens+elapsed.Seconds()*l.refillRate)
	b.LastRefill = now

	if tokens >= 1 {
		b.Tokens = tokens - 1
		return true
	}

	b.Tokens = tokens
	return false
}

// refillTime is how long an empty bucket takes to fill up, saturating at the
// largest representable duration.
func refillTime(capacity int64, refillRate float64) time.Duration {
	seconds := float64(capacity) / refillRate
	if seconds >= float64(math.MaxInt64)/float64(time.Second) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(seconds * float64(time.Second))
}
