package ratelimiter

import (
	"errors"

	"github.com/zeebo/errs"
)

// ConfigError is the class of errors returned when a limiter is constructed
// with invalid parameters. Such errors are permanent and must not be retried.
//
// Use ConfigError.Has(err) to detect them.
var ConfigError = errs.Class("ratelimiter config")

// ErrorExceeded is the sentinel handed to HTTP error handlers when a request
// is denied by a limiter.
var ErrorExceeded = errors.New("rate limit exceeded")
