package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kharel/fintrack-bff-go/internal/config"
	"github.com/kharel/fintrack-bff-go/internal/domain"
	"github.com/kharel/fintrack-bff-go/internal/handler"
	"github.com/kharel/fintrack-bff-go/internal/infra/cache"
	"github.com/kharel/fintrack-bff-go/internal/infra/client"
	"github.com/kharel/fintrack-bff-go/internal/infra/observability"
	"github.com/kharel/fintrack-bff-go/internal/infra/resilience"
	"github.com/kharel/fintrack-bff-go/internal/infra/supabase"
	"github.com/kharel/fintrack-bff-go/internal/service"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Duration("rate_cache_ttl", cfg.RateCacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.String("default_currency", cfg.DefaultCurrency),
		zap.Bool("jwt_enabled", cfg.JWTSecret != ""),
	)

	if cfg.SupabaseURL == "" {
		logger.Fatal("SUPABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		logger.Warn("JWT verification disabled, all requests pass unauthenticated")
	}

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "fintrack-bff")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Caches ---
	derivedCache := cache.New[*domain.Dashboard](cfg.CacheTTL)
	rateCache := cache.New[float64](cfg.RateCacheTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}

	// --- Clients ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	store := supabase.NewClient(
		httpClient,
		cfg.SupabaseURL,
		cfg.SupabaseAnonKey,
		cfg.SupabaseServiceKey,
		resilience.NewCircuitBreaker("supabase"),
		resilienceCfg,
		logger,
	)
	rates := client.NewRatesClient(
		httpClient,
		cfg.RatesAPIURL,
		resilience.NewCircuitBreaker("rates"),
		resilienceCfg,
	)

	// --- Services ---
	svcs := handler.Services{
		Transactions: service.NewTransactionService(store, derivedCache, metrics, logger, cfg.DefaultCurrency),
		Categories:   service.NewCategoryService(store, logger),
		Loans:        service.NewLoanService(store, derivedCache, metrics, logger, cfg.DefaultCurrency),
		Investments:  service.NewInvestmentService(store, derivedCache, metrics, logger, cfg.DefaultCurrency),
		Dashboard:    service.NewDashboardService(store, derivedCache, metrics, logger, cfg.DefaultCurrency),
		Rates:        service.NewRateService(rates, rateCache, metrics, logger),
	}

	// --- Router ---
	router := handler.NewRouter(svcs, metrics, cfg.JWTSecret, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
