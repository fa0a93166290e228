package jobs

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Worker wraps the Asynq server and task mux.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// WorkerConfig collects dependencies required to bootstrap the worker.
type WorkerConfig struct {
	RedisOpts   asynq.RedisClientOpt
	Concurrency int
	Handlers    *TaskHandlers
	Logger      zerolog.Logger
}

// NewWorker constructs a Worker instance.
func NewWorker(cfg WorkerConfig) *Worker {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	srv := asynq.NewServer(cfg.RedisOpts, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			QueueDefault: 1,
		},
		Logger: asynqLogger{logger: cfg.Logger},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypeRecalcSupplier, cfg.Handlers.HandleRecalc)
	mux.HandleFunc(TaskTypeBackfillSupplier, cfg.Handlers.HandleBackfill)

	return &Worker{server: srv, mux: mux}
}

// Run starts processing jobs until context cancellation.
func (w *Worker) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Run(w.mux)
	}()

	select {
	case <-ctx.Done():
		w.server.Shutdown()
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// asynqLogger adapts zerolog to asynq's logger interface.
type asynqLogger struct {
	logger zerolog.Logger
}

func (l asynqLogger) Debug(args ...any) { l.logger.Debug().Msgf("%v", args) }
func (l asynqLogger) Info(args ...any)  { l.logger.Info().Msgf("%v", args) }
func (l asynqLogger) Warn(args ...any)  { l.logger.Warn().Msgf("%v", args) }
func (l asynqLogger) Error(args ...any) { l.logger.Error().Msgf("%v", args) }
func (l asynqLogger) Fatal(args ...any) { l.logger.Fatal().Msgf("%v", args) }
