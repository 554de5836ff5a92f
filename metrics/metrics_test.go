package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ratelimiter "github.com/rkalyankumar77/rate-limiter"
)

type alwaysAllow struct{}

func (alwaysAllow) TryAcquire(string) bool { return true }

func TestInstrument(t *testing.T) {
	reg := prometheus.NewRegistry()
	inner, err := ratelimiter.NewFixedWindow[string](2, time.Minute)
	require.NoError(t, err)

	limiter := Instrument[string](inner, "api", reg)

	assert.True(t, limiter.TryAcquire("a"))
	assert.True(t, limiter.TryAcquire("a"))
	assert.False(t, limiter.TryAcquire("a"))
	assert.True(t, limiter.TryAcquire("b"))

	assert.Equal(t, 3.0, testutil.ToFloat64(limiter.admitted))
	assert.Equal(t, 1.0, testutil.ToFloat64(limiter.rejected))

	expected := `
# HELP ratelimiter_tracked_keys Number of keys currently tracked by the limiter
# TYPE ratelimiter_tracked_keys gauge
ratelimiter_tracked_keys{limiter="api"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "ratelimiter_tracked_keys"))
}

func TestInstrumentWithoutLen(t *testing.T) {
	reg := prometheus.NewRegistry()
	limiter := Instrument[string](alwaysAllow{}, "open", reg)

	assert.True(t, limiter.TryAcquire("a"))

	count, err := testutil.GatherAndCount(reg, "ratelimiter_tracked_keys")
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = testutil.GatherAndCount(reg, "ratelimiter_decisions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "both result series are pre-created")
}

func TestInstrumentIsARateLimiter(t *testing.T) {
	var _ ratelimiter.RateLimiter[string] = Instrument[string](alwaysAllow{}, "x", prometheus.NewRegistry())
}

func TestInstrumentSeparateLimiters(t *testing.T) {
	reg := prometheus.NewRegistry()

	Instrument[string](alwaysAllow{}, "first", reg)
	assert.NotPanics(t, func() { Instrument[string](alwaysAllow{}, "second", reg) })
	assert.Panics(t, func() { Instrument[string](alwaysAllow{}, "first", reg) })
}
