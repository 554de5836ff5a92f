package gin_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ratelimiter "github.com/rkalyankumar77/rate-limiter"
	"github.com/rkalyankumar77/rate-limiter/middleware"
	ginmw "github.com/rkalyankumar77/rate-limiter/middleware/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(limiter ratelimiter.RateLimiter[string], opts ...middleware.Option) (*gin.Engine, *int) {
	handled := 0
	router := gin.New()
	router.Use(ginmw.RateLimiter(limiter, opts...))
	router.GET("/ping", func(c *gin.Context) {
		handled++
		c.String(http.StatusOK, "pong")
	})
	return router, &handled
}

func get(router http.Handler, remoteAddr string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type recordingLogger struct {
	debug, errors []string
}

func (l *recordingLogger) Debug(msg string, _ ...any) { l.debug = append(l.debug, msg) }
func (l *recordingLogger) Error(msg string, _ ...any) { l.errors = append(l.errors, msg) }

func TestRateLimiter(t *testing.T) {
	t.Run("allows requests under limit and aborts over it", func(t *testing.T) {
		limiter, err := ratelimiter.NewTokenBucket[string](2, 0.01)
		require.NoError(t, err)
		logger := &recordingLogger{}
		router, handled := newRouter(limiter, middleware.WithLogger(logger))

		assert.Equal(t, http.StatusOK, get(router, "198.51.100.7:5000", nil).Code)
		assert.Equal(t, http.StatusOK, get(router, "198.51.100.7:5001", nil).Code)

		rec := get(router, "198.51.100.7:5002", nil)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, 2, *handled, "denied request must not reach the handler")
		assert.Equal(t, []string{"request denied"}, logger.debug)
	})

	t.Run("tracks clients independently", func(t *testing.T) {
		limiter, err := ratelimiter.NewFixedWindow[string](1, time.Minute)
		require.NoError(t, err)
		router, _ := newRouter(limiter)

		assert.Equal(t, http.StatusOK, get(router, "198.51.100.7:5000", nil).Code)
		assert.Equal(t, http.StatusTooManyRequests, get(router, "198.51.100.7:5000", nil).Code)
		assert.Equal(t, http.StatusOK, get(router, "198.51.100.8:5000", nil).Code)
	})

	t.Run("rejects requests missing the key header", func(t *testing.T) {
		limiter, err := ratelimiter.NewFixedWindow[string](1, time.Minute)
		require.NoError(t, err)
		logger := &recordingLogger{}
		router, handled := newRouter(limiter, middleware.WithHeaderKey("X-API-Key"), middleware.WithLogger(logger))

		assert.Equal(t, http.StatusBadRequest, get(router, "198.51.100.7:5000", nil).Code)
		assert.Equal(t, http.StatusOK, get(router, "198.51.100.7:5000", http.Header{"X-Api-Key": {"k1"}}).Code)
		assert.Equal(t, 1, *handled)
		assert.Len(t, logger.errors, 1)
	})

	t.Run("fails closed when key extraction errors", func(t *testing.T) {
		limiter, err := ratelimiter.NewFixedWindow[string](10, time.Minute)
		require.NoError(t, err)
		router, handled := newRouter(limiter, middleware.WithKeyFunc(func(*http.Request) (string, error) {
			return "", errors.New("boom")
		}))

		assert.Equal(t, http.StatusInternalServerError, get(router, "198.51.100.7:5000", nil).Code)
		assert.Zero(t, *handled)
	})

	t.Run("uses custom error handler", func(t *testing.T) {
		limiter, err := ratelimiter.NewFixedWindow[string](0, time.Minute)
		require.NoError(t, err)
		router, _ := newRouter(limiter, middleware.WithErrorHandler(func(w http.ResponseWriter, _ *http.Request, err error) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"` + err.Error() + `"}`))
		}))

		rec := get(router, "198.51.100.7:5000", nil)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())
	})
}
