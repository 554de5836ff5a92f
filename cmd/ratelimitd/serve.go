package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	ratelimiter "github.com/rkalyankumar77/rate-limiter"
	zapadapter "github.com/rkalyankumar77/rate-limiter/adapters/zap"
	"github.com/rkalyankumar77/rate-limiter/internal/config"
	"github.com/rkalyankumar77/rate-limiter/metrics"
	"github.com/rkalyankumar77/rate-limiter/middleware"
	ginmw "github.com/rkalyankumar77/rate-limiter/middleware/gin"
)

var serveFlags struct {
	listen string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a rate-limited HTTP endpoint",
	Long: `Serve GET /ping behind the configured rate limiter.

GET /metrics exposes Prometheus metrics and GET /healthz reports liveness;
neither is rate limited.

Examples:
  # Start with defaults
  ratelimitd serve

  # Start with a config file and a different address
  ratelimitd serve --config ratelimitd.yaml --listen :9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listen, "listen", "l", "", "override listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if serveFlags.listen != "" {
		cfg.Server.Listen = serveFlags.listen
	}

	logger, err := newLogger(cfg.Log, verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	limiter, err := buildLimiter(ctx, cfg.Limiter, logger, reg)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           newRouter(limiter, cfg.Limiter, logger, reg),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server",
			zap.String("address", cfg.Server.Listen),
			zap.String("algorithm", cfg.Limiter.Algorithm),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}

// buildLimiter creates the configured limiter, evicting idle keys until ctx is
// done, and counts its decisions in reg.
func buildLimiter(ctx context.Context, lc config.LimiterConfig, logger *zap.Logger, reg prometheus.Registerer) (ratelimiter.RateLimiter[string], error) {
	limiterCfg, err := lc.ToLimiterConfig()
	if err != nil {
		return nil, err
	}

	limiter, err := ratelimiter.New[string](limiterCfg,
		ratelimiter.WithLogger(zapadapter.New(logger.Named("limiter"))),
		ratelimiter.WithCleanup(ctx, lc.CleanupInterval, lc.IdleTimeout),
	)
	if err != nil {
		return nil, err
	}

	return metrics.Instrument(limiter, limiterCfg.Algorithm.String(), reg), nil
}

func newRouter(limiter ratelimiter.RateLimiter[string], lc config.LimiterConfig, logger *zap.Logger, gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	opts := []middleware.Option{middleware.WithLogger(zapadapter.New(logger.Named("middleware")))}
	if lc.KeyHeader != "" {
		opts = append(opts, middleware.WithHeaderKey(lc.KeyHeader))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	router.GET("/ping", ginmw.RateLimiter(limiter, opts...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	return router
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
