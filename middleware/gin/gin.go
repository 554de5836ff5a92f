// Package gin adapts a rate limiter to the Gin web framework.
package gin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	ratelimiter "github.com/rkalyankumar77/rate-limiter"
	"github.com/rkalyankumar77/rate-limiter/middleware"
)

// RateLimiter creates a new Gin middleware handler.
//
// It uses the provided limiter to check if a request should be allowed or
// denied. The behavior of the middleware can be customized by passing
// functional options, such as changing how a client is identified
// (WithKeyFunc) or how denied requests are answered (WithErrorHandler).
//
// Example:
//
//	limiter, _ := ratelimiter.NewFixedWindow[string](100, time.Minute)
//	router := gin.Default()
//	// Apply middleware globally
//	router.Use(ginmw.RateLimiter(limiter))
func RateLimiter(limiter ratelimiter.RateLimiter[string], options ...middleware.Option) gin.HandlerFunc {
	cfg := middleware.NewConfig(options...)

	return func(c *gin.Context) {
		key, err := cfg.KeyFunc(c.Request)
		if err != nil {
			cfg.Logger.Error("failed to extract rate limit key", "error", err, "path", c.FullPath())
			if errors.Is(err, middleware.ErrMissingKey) {
				c.AbortWithStatus(http.StatusBadRequest)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		if !limiter.TryAcquire(key) {
			cfg.Logger.Debug("request denied", "key", key, "path", c.FullPath())
			cfg.ErrorHandler(c.Writer, c.Request, ratelimiter.ErrorExceeded)
			c.Abort()
			return
		}

		c.Next()
	}
}
