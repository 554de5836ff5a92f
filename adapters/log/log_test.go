package stdlogadapter_test

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	ratelimiter "github.com/rkalyankumar77/rate-limiter"
	stdlogadapter "github.com/rkalyankumar77/rate-limiter/adapters/log"
)

var _ ratelimiter.Logger = (*stdlogadapter.Logger)(nil)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := stdlogadapter.New(log.New(&buf, "", 0))

	logger.Debug("request rejected", "key", "user:1", "limit", 5)
	logger.Error("key extraction failed", "error", "boom", "dangling")

	assert.Equal(t,
		"[DEBUG] request rejected key=user:1 limit=5\n"+
			"[ERROR] key extraction failed error=boom dangling=\n",
		buf.String(),
	)
}

func TestNewNil(t *testing.T) {
	assert.NotNil(t, stdlogadapter.New(nil))
}
