package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/karbiaO9/BlockMind-sub000/internal/adapter/http"
	"github.com/karbiaO9/BlockMind-sub000/internal/adapter/http/handler"
	"github.com/karbiaO9/BlockMind-sub000/internal/adapter/http/middleware"
	postgresRepo "github.com/karbiaO9/BlockMind-sub000/internal/adapter/repository/postgres"
	redisRepo "github.com/karbiaO9/BlockMind-sub000/internal/adapter/repository/redis"
	"github.com/karbiaO9/BlockMind-sub000/internal/adapter/upstream"
	"github.com/karbiaO9/BlockMind-sub000/internal/infrastructure/config"
	"github.com/karbiaO9/BlockMind-sub000/internal/infrastructure/logger"
	"github.com/karbiaO9/BlockMind-sub000/internal/infrastructure/postgres"
	"github.com/karbiaO9/BlockMind-sub000/internal/infrastructure/redis"
	"github.com/karbiaO9/BlockMind-sub000/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	rootLogger := logger.New(cfg.LogLevel, cfg.LogFormat)
	log.Logger = rootLogger

	ctx := context.Background()

	// Connect to PostgreSQL and apply migrations
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		rootLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, rootLogger); err != nil {
		rootLogger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Redis is optional; without it stats are recomputed on every read.
	var (
		statsCache  usecase.Cache
		redisClient *goredis.Client
	)
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			rootLogger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		statsCache = redisRepo.NewStatsCache(redisClient)
	}

	client := upstream.NewClient(upstream.ClientConfig{
		BaseURL: cfg.UpstreamBaseURL,
		APIKey:  cfg.UpstreamAPIKey,
		Timeout: cfg.UpstreamTimeout,
	}, rootLogger)

	// Decorate the raw client: every attempt passes through the shared
	// in-flight gate, and the retrier sits outside it.
	var source usecase.LedgerSource = upstream.NewRetrier(
		upstream.NewGate(client, cfg.UpstreamMaxInflight),
		upstream.RetrierConfig{
			MaxAttempts:     cfg.UpstreamRetryAttempts,
			InitialInterval: cfg.UpstreamRetryInitial,
			MaxInterval:     cfg.UpstreamRetryMax,
		},
		rootLogger,
	)

	// Initialize use cases
	aggregator := usecase.NewStatsAggregator(source, statsCache, usecase.StatsAggregatorConfig{
		PageSize:   cfg.AggregatePageSize,
		MaxEntries: cfg.AggregateMaxEntries,
		CacheTTL:   cfg.StatsCacheTTL,
	}, rootLogger)
	pager := usecase.NewFilteredPager(source, usecase.FilteredPagerConfig{
		MaxScan: cfg.PagerMaxScan,
	}, rootLogger)
	walletService := usecase.NewWalletSnapshotService(source, aggregator, pager, rootLogger)

	poller := usecase.NewTrackedWalletPoller(source, usecase.PollerConfig{
		Interval:     cfg.PollInterval,
		CycleTimeout: cfg.PollCycleTimeout,
	}, rootLogger)

	trackedRepo := postgresRepo.NewTrackedWalletRepository(pool)
	trackedUC := usecase.NewTrackedWalletUseCase(trackedRepo, poller, postgresRepo.NewULIDGenerator(), rootLogger)

	if err := trackedUC.LoadAndStart(ctx); err != nil {
		rootLogger.Fatal().Err(err).Msg("failed to start tracked wallet poller")
	}

	// Initialize handlers and router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		WalletHandler:  handler.NewWalletHandler(walletService, pager, aggregator),
		TrackedHandler: handler.NewTrackedHandler(trackedUC),
		HealthHandler:  handler.NewHealthHandler(pool, redisClient),
		Logger:         rootLogger,
		RateLimiter:    middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	go func() {
		rootLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			rootLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	rootLogger.Info().Msg("shutting down...")

	if err := trackedUC.Stop(); err != nil {
		rootLogger.Warn().Err(err).Msg("poller stop failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		rootLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	rootLogger.Info().Msg("server stopped")
}
