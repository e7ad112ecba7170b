package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/walletledger/internal/adapter/http"
	"github.com/iho/walletledger/internal/adapter/http/handler"
	"github.com/iho/walletledger/internal/adapter/http/middleware"
	"github.com/iho/walletledger/internal/adapter/provider/tcmb"
	postgresRepo "github.com/iho/walletledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/walletledger/internal/adapter/repository/redis"
	"github.com/iho/walletledger/internal/infrastructure/config"
	"github.com/iho/walletledger/internal/infrastructure/eventpublisher"
	"github.com/iho/walletledger/internal/infrastructure/logger"
	"github.com/iho/walletledger/internal/infrastructure/metrics"
	"github.com/iho/walletledger/internal/infrastructure/postgres"
	"github.com/iho/walletledger/internal/infrastructure/redis"
	"github.com/iho/walletledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "walletledger",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}

	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	loc, err := cfg.RateLocation()
	if err != nil {
		return err
	}

	if cfg.RunMigrations {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
			return err
		}
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()
	settings := catalogSettings(cfg, loc)

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	currencyRepo := redisRepo.NewCurrencyCache(postgresRepo.NewCurrencyRepository(pool), redisClient, cfg.CurrencyCacheTTL, m, log)
	rateTypeRepo := postgresRepo.NewRateTypeRepository(pool)
	rateRepo := postgresRepo.NewExchangeRateRepository(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	cashflowRepo := postgresRepo.NewCashflowRepository(pool)
	categoryRepo := postgresRepo.NewIncomeExpenseRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	docNumbers := postgresRepo.NewDocumentNumberGenerator("CF")
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	provider := tcmb.NewClient(tcmb.Config{
		URL:        cfg.RateProviderURL,
		Timeout:    cfg.RateProviderTimeout,
		MaxRetries: cfg.RateProviderRetries,
		Location:   loc,
	}, log)

	// Initialize use cases
	rateUC := usecase.NewRateUseCase(txManager, currencyRepo, rateTypeRepo, rateRepo, outboxRepo, provider, idGen, settings, m, log)
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, currencyRepo, outboxRepo, idGen, m)
	categoryUC := usecase.NewIncomeExpenseUseCase(txManager, categoryRepo, outboxRepo, idGen, m)
	cashflowUC := usecase.NewCashflowUseCase(
		txManager, accountRepo, currencyRepo, rateTypeRepo, rateRepo, cashflowRepo, outboxRepo,
		idGen, docNumbers, settings, m,
	)

	// A provider outage must not keep the API down; seeding is retried by
	// POST /api/v1/rates/seed or the next rate update.
	if err := rateUC.EnsureSeedData(ctx); err != nil {
		log.Warn().Err(err).Msg("initial catalog seed failed")
	}

	rateLimiter := newRateLimiter(cfg)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   handler.NewAccountHandler(accountUC),
		CashflowHandler:  handler.NewCashflowHandler(cashflowUC),
		CategoryHandler:  handler.NewCategoryHandler(categoryUC),
		RateHandler:      handler.NewRateHandler(rateUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisPinger(redisClient)),
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      rateLimiter,
		Logger:           log,
	})

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(log),
		Metrics:    m,
		Logger:     log,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
		Retention:  cfg.OutboxRetention,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	go func() {
		if err := publisher.Start(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	if rateLimiter != nil {
		go rateLimiter.RunCleanup(workerCtx, rateLimitCleanupInterval(cfg.RateLimitIdle), cfg.RateLimitIdle)
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

func catalogSettings(cfg *config.Config, loc *time.Location) usecase.CatalogSettings {
	return usecase.CatalogSettings{
		LocalCurrencyCode: cfg.LocalCurrencyCode,
		LocalCurrencyName: cfg.LocalCurrencyName,
		RateLocation:      loc,
	}
}

// newRateLimiter returns nil when rate limiting is disabled.
func newRateLimiter(cfg *config.Config) *middleware.RateLimiter {
	if cfg.RateLimitRPS <= 0 {
		return nil
	}
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = 1
	}
	return middleware.NewRateLimiter(cfg.RateLimitRPS, burst)
}

// rateLimitCleanupInterval sweeps idle limiters twice per idle window, at
// most once a minute.
func rateLimitCleanupInterval(idle time.Duration) time.Duration {
	if idle <= 0 {
		return time.Minute
	}
	return min(idle/2, time.Minute)
}

func redisPinger(client *goredis.Client) handler.Pinger {
	return handler.PingFunc(func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
}
