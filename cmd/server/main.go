package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/resellerdesk/creditledger/internal/adapter/http"
	"github.com/resellerdesk/creditledger/internal/adapter/http/handler"
	postgresRepo "github.com/resellerdesk/creditledger/internal/adapter/repository/postgres"
	redisRepo "github.com/resellerdesk/creditledger/internal/adapter/repository/redis"
	"github.com/resellerdesk/creditledger/internal/infrastructure/config"
	"github.com/resellerdesk/creditledger/internal/infrastructure/logger"
	"github.com/resellerdesk/creditledger/internal/infrastructure/metrics"
	"github.com/resellerdesk/creditledger/internal/infrastructure/postgres"
	redisInfra "github.com/resellerdesk/creditledger/internal/infrastructure/redis"
	"github.com/resellerdesk/creditledger/internal/jobs"
	"github.com/resellerdesk/creditledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Run migrations if requested
	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(appLogger, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redisInfra.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	supplierRepo := postgresRepo.NewSupplierRepository(pool)
	recordRepo := postgresRepo.NewTransactionRepository(pool)
	saleRepo := postgresRepo.NewSaleRepository(pool)
	paymentRepo := postgresRepo.NewPaymentRepository(pool)
	retrier := postgresRepo.NewRetrier(appLogger)
	idGen := postgresRepo.NewULIDGenerator()

	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	locker := redisRepo.NewLocker(redisClient)

	// Initialize use cases
	appMetrics := metrics.New()
	ledgerUC := usecase.NewLedgerUseCase(txManager, supplierRepo, recordRepo, idGen, retrier, cache, appMetrics)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, idGen, cache)
	saleUC := usecase.NewSaleUseCase(txManager, saleRepo, supplierRepo, ledgerUC, idGen, appLogger)
	paymentUC := usecase.NewPaymentUseCase(txManager, paymentRepo, supplierRepo, ledgerUC, idGen, appLogger)
	recalcUC := usecase.NewRecalcUseCase(txManager, supplierRepo, recordRepo, saleRepo, paymentRepo, idGen, locker, cache, cfg.RecalcLockTTL, appLogger, appMetrics)
	recordUC := usecase.NewRecordUseCase(recordRepo)

	// Job queue client
	jobsClient := jobs.NewClient(redisInfra.AsynqOpts(redisClient))
	defer jobsClient.Close()

	// Initialize handlers
	supplierHandler := handler.NewSupplierHandler(supplierUC, ledgerUC, recalcUC, enqueuer{client: jobsClient})
	saleHandler := handler.NewSaleHandler(saleUC)
	paymentHandler := handler.NewPaymentHandler(paymentUC)
	recordHandler := handler.NewRecordHandler(recordUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		SupplierHandler:  supplierHandler,
		SaleHandler:      saleHandler,
		PaymentHandler:   paymentHandler,
		RecordHandler:    recordHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		Logger:           appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// enqueuer adapts the jobs client to the handler's interface.
type enqueuer struct {
	client *jobs.Client
}

func (e enqueuer) EnqueueRecalc(ctx context.Context, payload jobs.RecalcPayload) (string, error) {
	info, err := e.client.EnqueueRecalc(ctx, payload)
	if err != nil {
		return "", err
	}
	return info.ID, nil
}

func (e enqueuer) EnqueueBackfill(ctx context.Context, payload jobs.BackfillPayload) (string, error) {
	info, err := e.client.EnqueueBackfill(ctx, payload)
	if err != nil {
		return "", err
	}
	return info.ID, nil
}
