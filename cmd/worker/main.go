package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	postgresRepo "github.com/resellerdesk/creditledger/internal/adapter/repository/postgres"
	redisRepo "github.com/resellerdesk/creditledger/internal/adapter/repository/redis"
	"github.com/resellerdesk/creditledger/internal/infrastructure/config"
	"github.com/resellerdesk/creditledger/internal/infrastructure/logger"
	"github.com/resellerdesk/creditledger/internal/infrastructure/postgres"
	redisInfra "github.com/resellerdesk/creditledger/internal/infrastructure/redis"
	"github.com/resellerdesk/creditledger/internal/jobs"
	"github.com/resellerdesk/creditledger/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()

	redisClient, err := redisInfra.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()

	txManager := postgresRepo.NewTxManager(pool)
	supplierRepo := postgresRepo.NewSupplierRepository(pool)
	recordRepo := postgresRepo.NewTransactionRepository(pool)
	saleRepo := postgresRepo.NewSaleRepository(pool)
	paymentRepo := postgresRepo.NewPaymentRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	cache := redisRepo.NewCache(redisClient)
	locker := redisRepo.NewLocker(redisClient)

	recalcUC := usecase.NewRecalcUseCase(txManager, supplierRepo, recordRepo, saleRepo, paymentRepo, idGen, locker, cache, cfg.RecalcLockTTL, appLogger, nil)

	worker := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:   redisInfra.AsynqOpts(redisClient),
		Concurrency: cfg.WorkerConcurrency,
		Handlers:    jobs.NewTaskHandlers(recalcUC, appLogger),
		Logger:      appLogger,
	})

	log.Info().Int("concurrency", cfg.WorkerConcurrency).Msg("starting worker")

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("worker failed")
	}

	log.Info().Msg("worker stopped")
}
