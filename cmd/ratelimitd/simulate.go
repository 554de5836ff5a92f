package main

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	ratelimiter "github.com/rkalyankumar77/rate-limiter"
	"github.com/rkalyankumar77/rate-limiter/internal/config"
)

var simulateFlags struct {
	workers  int
	requests int
	key      string
	pause    time.Duration
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Drive the configured limiter from concurrent workers",
	Long: `Issue requests against the configured limiter from several goroutines
and report how many were admitted.

Examples:
  # 10 workers sending 20 requests each for one key
  ratelimitd simulate --workers 10 --requests 20

  # Pace each worker at one request every 50ms
  ratelimitd simulate --pause 50ms`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().IntVarP(&simulateFlags.workers, "workers", "w", 10, "number of concurrent workers")
	simulateCmd.Flags().IntVarP(&simulateFlags.requests, "requests", "n", 20, "requests per worker")
	simulateCmd.Flags().StringVarP(&simulateFlags.key, "key", "k", "simulated-client", "key every request is made for")
	simulateCmd.Flags().DurationVar(&simulateFlags.pause, "pause", 0, "pause between requests of a worker")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if simulateFlags.workers <= 0 || simulateFlags.requests < 0 {
		return errors.New("--workers must be positive and --requests must not be negative")
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log, verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	limiter, err := buildLimiter(cmd.Context(), cfg.Limiter, logger, prometheus.NewRegistry())
	if err != nil {
		return err
	}

	start := time.Now()
	admitted, rejected, err := simulate(cmd.Context(), limiter, simulateFlags.key,
		simulateFlags.workers, simulateFlags.requests, simulateFlags.pause)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "algorithm=%s workers=%d requests=%d admitted=%d rejected=%d elapsed=%s\n",
		cfg.Limiter.Algorithm, simulateFlags.workers, simulateFlags.workers*simulateFlags.requests,
		admitted, rejected, time.Since(start).Round(time.Millisecond))
	return nil
}

// simulate runs workers goroutines that each call TryAcquire(key) requests
// times, and returns the admitted and rejected totals. It stops early when ctx
// is done.
func simulate(ctx context.Context, limiter ratelimiter.RateLimiter[string], key string, workers, requests int, pause time.Duration) (admitted, rejected int64, err error) {
	var ok, denied atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	for range workers {
		g.Go(func() error {
			for range requests {
				if err := ctx.Err(); err != nil {
					return err
				}
				if limiter.TryAcquire(key) {
					ok.Add(1)
				} else {
					denied.Add(1)
				}
				if pause > 0 {
					select {
					case <-ctx.Done():
						return ctx.Err()
					case <-time.After(pause):
					}
				}
			}
			return nil
		})
	}

	err = g.Wait()
	return ok.Load(), denied.Load(), err
}
