// Package metrics instruments rate limiters with Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	ratelimiter "github.com/rkalyankumar77/rate-limiter"
)

const (
	resultAdmitted = "admitted"
	resultRejected = "rejected"
)

// Limiter is a ratelimiter.RateLimiter that counts the decisions of the
// limiter it wraps.
type Limiter[K comparable] struct {
	next     ratelimiter.RateLimiter[K]
	admitted prometheus.Counter
	rejected prometheus.Counter
}

// Instrument wraps next so that every decision is counted in
// ratelimiter_decisions_total{limiter=name, result=admitted|rejected}.
//
// If next reports how many keys it tracks (as FixedWindowLimiter and
// TokenBucketLimiter do), a ratelimiter_tracked_keys{limiter=name} gauge is
// registered as well. Keys themselves are never used as labels.
//
// Collectors are registered with reg, or with the default registerer when reg
// is nil. Like promauto, Instrument panics if name is already registered.
func Instrument[K comparable](next ratelimiter.RateLimiter[K], name string, reg prometheus.Registerer) *Limiter[K] {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	decisions := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "ratelimiter_decisions_total",
			Help:        "Total number of rate limit decisions by result",
			ConstLabels: prometheus.Labels{"limiter": name},
		},
		[]string{"result"},
	)

	if sized, ok := next.(interface{ Len() int }); ok {
		factory.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name:        "ratelimiter_tracked_keys",
				Help:        "Number of keys currently tracked by the limiter",
				ConstLabels: prometheus.Labels{"limiter": name},
			},
			func() float64 { return float64(sized.Len()) },
		)
	}

	return &Limiter[K]{
		next:     next,
		admitted: decisions.WithLabelValues(resultAdmitted),
		rejected: decisions.WithLabelValues(resultRejected),
	}
}

// TryAcquire delegates to the wrapped limiter and records the outcome.
func (l *Limiter[K]) TryAcquire(key K) bool {
	if l.next.TryAcquire(key) {
		l.admitted.Inc()
		return true
	}
	l.rejected.Inc()
	return false
}
