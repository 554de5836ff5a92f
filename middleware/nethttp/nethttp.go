// Package nethttp adapts a rate limiter to the standard net/http library.
package nethttp

import (
	"errors"
	"net/http"

	ratelimiter "github.com/rkalyankumar77/rate-limiter"
	"github.com/rkalyankumar77/rate-limiter/middleware"
)

// Middleware creates a new middleware handler for the standard `net/http` library.
//
// It wraps an existing `http.Handler` and checks incoming requests against the
// provided limiter before passing them on. The behavior can be customized
// using functional options.
//
// Example:
//
//	limiter, _ := ratelimiter.NewFixedWindow[string](100, time.Minute)
//	mux := http.NewServeMux()
//	mux.HandleFunc("/", myHandler)
//
//	rateLimitMiddleware := nethttp.Middleware(limiter)
//	http.ListenAndServe(":8080", rateLimitMiddleware(mux))
func Middleware(limiter ratelimiter.RateLimiter[string], options ...middleware.Option) func(http.Handler) http.Handler {
	cfg := middleware.NewConfig(options...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, err := cfg.KeyFunc(r)
			if err != nil {
				cfg.Logger.Error("failed to extract rate limit key", "error", err, "path", r.URL.Path)
				if errors.Is(err, middleware.ErrMissingKey) {
					http.Error(w, "Bad Request", http.StatusBadRequest)
					return
				}
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			if !limiter.TryAcquire(key) {
				cfg.Logger.Debug("request denied", "key", key, "path", r.URL.Path)
				cfg.ErrorHandler(w, r, ratelimiter.ErrorExceeded)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
