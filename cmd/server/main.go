package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/readaloud/narrator/internal/article"
	"github.com/readaloud/narrator/internal/cache"
	"github.com/readaloud/narrator/internal/config"
	"github.com/readaloud/narrator/internal/narrator"
	"github.com/readaloud/narrator/internal/observability"
	"github.com/readaloud/narrator/internal/resilience"
	"github.com/readaloud/narrator/internal/server"
	"github.com/readaloud/narrator/internal/tts"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Use fmt for fatal errors before logger is initialized
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	observability.InitLogger(cfg.LogLevel, cfg.LogPretty)
	logger := observability.GetLogger()

	logger.Info().
		Str("port", cfg.Port).
		Str("tts_api_url", cfg.TTSAPIURL).
		Str("redis_addr", cfg.RedisAddr()).
		Str("log_level", cfg.LogLevel).
		Bool("metrics_enabled", cfg.MetricsEnabled).
		Msg("Narration service starting")

	// Shared cache store, constructed once and injected into the pipeline
	store := cache.NewRedisStore(cfg.RedisAddr())
	defer store.Close()

	breaker := resilience.NewCircuitBreaker("tts", cfg.CircuitBreakerMaxFailures,
		time.Duration(cfg.CircuitBreakerResetTimeout)*time.Second)

	n := narrator.New(narrator.Options{
		Fetcher:     article.NewFetcher(cfg.FetchTimeout()),
		Splitter:    article.NewSplitter(),
		Store:       store,
		Synthesizer: tts.NewClient(cfg.TTSAPIURL, cfg.TTSTimeout()),
		Silence:     cfg.SilenceGap(),
		Retry: &resilience.RetryConfig{
			MaxAttempts:       cfg.RetryMaxAttempts,
			InitialBackoff:    time.Duration(cfg.RetryInitialBackoff) * time.Millisecond,
			MaxBackoff:        5 * time.Second,
			BackoffMultiplier: 2.0,
		},
		Breaker: breaker,
		Logger:  logger,
	})

	mux := http.NewServeMux()

	// Narration endpoint
	handler := server.NewHandler(n)
	mux.HandleFunc("/", handler.Narrate)

	// Health check endpoint
	mux.HandleFunc("/health", observability.HealthCheckHandler())

	// Readiness endpoint: probe the cache store and the TTS backend config
	redisCheck := func(ctx context.Context) (bool, error) {
		if err := store.Ping(ctx); err != nil {
			return false, err
		}
		return true, nil
	}

	ttsCheck := func(ctx context.Context) (bool, error) {
		if client := tts.NewClient(cfg.TTSAPIURL, cfg.TTSTimeout()); client == nil {
			return false, fmt.Errorf("failed to create TTS client")
		}
		// No probe synthesis: a real call would cost backend compute
		return true, nil
	}

	mux.HandleFunc("/ready", observability.ReadinessHandler(map[string]observability.HealthCheckFunc{
		"redis": redisCheck,
		"tts":   ttsCheck,
	}))

	// Metrics endpoint (Prometheus)
	if cfg.MetricsEnabled {
		mux.Handle("/metrics", promhttp.Handler())
		logger.Info().Msg("Prometheus metrics enabled at /metrics")
	}

	// Narrations of long articles take a while; keep the write timeout
	// generous relative to the per-sentence synthesis timeout.
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("endpoint", fmt.Sprintf("http://localhost:%s/?url=...", cfg.Port)).
			Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited gracefully")
}
