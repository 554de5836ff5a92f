// Ratelimitd serves a rate-limited HTTP endpoint and exercises the limiters
// from the command line.
//
// Usage:
//
//	# Serve with defaults (token bucket, 20 burst, 5 req/s per client IP)
//	ratelimitd serve
//
//	# Serve with a configuration file
//	ratelimitd serve --config /etc/ratelimitd.yaml
//
//	# Drive the configured limiter from 8 goroutines
//	ratelimitd simulate --workers 8 --requests 100
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
