package zerologadapter_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ratelimiter "github.com/rkalyankumar77/rate-limiter"
	zerologadapter "github.com/rkalyankumar77/rate-limiter/adapters/zerolog"
)

var _ ratelimiter.Logger = (*zerologadapter.Logger)(nil)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var lines []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var fields map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &fields))
		lines = append(lines, fields)
	}
	return lines
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).Level(zerolog.DebugLevel)
	logger := zerologadapter.New(&zl)

	logger.Debug("request rejected", "key", "user:1", "limit", 5)
	logger.Error("key extraction failed", "error", "boom")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)

	assert.Equal(t, "debug", lines[0]["level"])
	assert.Equal(t, "request rejected", lines[0]["message"])
	assert.Equal(t, "user:1", lines[0]["key"])
	assert.EqualValues(t, 5, lines[0]["limit"])

	assert.Equal(t, "error", lines[1]["level"])
	assert.Equal(t, "boom", lines[1]["error"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).Level(zerolog.InfoLevel)
	logger := zerologadapter.New(&zl)

	logger.Debug("hidden")
	logger.Error("shown")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown", lines[0]["message"])
}

func TestNewNil(t *testing.T) {
	assert.NotNil(t, zerologadapter.New(nil))
}
