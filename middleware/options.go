// Package middleware holds the configuration shared by the HTTP middlewares in
// the nethttp and gin subpackages.
//
// Users can configure the middleware via functional options, supplying
// custom key extraction, error handling, and logging.
package middleware

import (
	"errors"
	"net"
	"net/http"

	ratelimiter "github.com/rkalyankumar77/rate-limiter"
)

// ErrMissingKey is returned by a KeyFunc when the request carries nothing to
// identify the client by.
var ErrMissingKey = errors.New("rate limit key missing from request")

// KeyFunc defines a function type that extracts a unique identifier
// from an HTTP request.
//
// The identifier is used to track individual clients for rate limiting.
//
// Example: use the client's IP address or an API key header.
type KeyFunc func(r *http.Request) (string, error)

// ErrorHandler defines a function type that responds to a request the limiter
// denied. err is ratelimiter.ErrorExceeded.
//
// This allows custom responses, e.g., JSON bodies or extra headers.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Config holds all configurable options for the rate limiter middleware.
//
// Users typically create a Config via NewConfig and provide functional options.
type Config struct {
	KeyFunc      KeyFunc
	ErrorHandler ErrorHandler
	Logger       ratelimiter.Logger
}

// Option defines a functional option type for configuring the middleware.
//
// Example:
//
//	cfg := NewConfig(
//	    WithLogger(myLogger),
//	    WithKeyFunc(myKeyFunc),
//	)
type Option func(*Config)

// NewConfig creates a Config with default settings, then applies
// any provided functional options.
//
// By default clients are keyed by remote IP, denials get a plain
// 429 Too Many Requests, and nothing is logged.
func NewConfig(opts ...Option) *Config {
	cfg := &Config{
		KeyFunc:      RemoteIP,
		ErrorHandler: TooManyRequests,
		Logger:       ratelimiter.NopLogger(),
	}

	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// RemoteIP keys requests by the host part of r.RemoteAddr, so one client is
// tracked as a single key across its connections.
func RemoteIP(r *http.Request) (string, error) {
	if r.RemoteAddr == "" {
		return "", ErrMissingKey
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr, nil
	}
	return host, nil
}

// HeaderKey returns a KeyFunc that keys requests by the value of header, such
// as an API token. Requests without the header fail with ErrMissingKey.
func HeaderKey(header string) KeyFunc {
	return func(r *http.Request) (string, error) {
		v := r.Header.Get(header)
		if v == "" {
			return "", ErrMissingKey
		}
		return v, nil
	}
}

// TooManyRequests is the default ErrorHandler.
func TooManyRequests(w http.ResponseWriter, _ *http.Request, _ error) {
	http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
}

// WithKeyFunc returns an Option to set a custom KeyFunc.
func WithKeyFunc(f KeyFunc) Option {
	return func(c *Config) {
		if f != nil {
			c.KeyFunc = f
		}
	}
}

// WithHeaderKey returns an Option that keys requests by the given header.
// An empty name keeps the current KeyFunc.
func WithHeaderKey(header string) Option {
	return func(c *Config) {
		if header != "" {
			c.KeyFunc = HeaderKey(header)
		}
	}
}

// WithErrorHandler returns an Option to set a custom ErrorHandler.
func WithErrorHandler(f ErrorHandler) Option {
	return func(c *Config) {
		if f != nil {
			c.ErrorHandler = f
		}
	}
}

// WithLogger returns an Option to set a custom Logger.
func WithLogger(l ratelimiter.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}
