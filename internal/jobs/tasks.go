package jobs

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/resellerdesk/creditledger/internal/domain"
	"github.com/resellerdesk/creditledger/internal/usecase"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"

	// TaskTypeRecalcSupplier replays a supplier's transaction history and
	// repairs balance snapshots.
	TaskTypeRecalcSupplier = "ledger:recalc"

	// TaskTypeBackfillSupplier synthesizes a transaction history for a
	// supplier that predates the ledger.
	TaskTypeBackfillSupplier = "ledger:backfill"
)

// RecalcPayload identifies the supplier to recalculate.
type RecalcPayload struct {
	SupplierID string `json:"supplier_id"`
	ActorID    string `json:"actor_id"`
}

// BackfillPayload identifies the supplier to backfill.
type BackfillPayload struct {
	SupplierID string `json:"supplier_id"`
	ActorID    string `json:"actor_id"`
}

// NewRecalcTask constructs an Asynq task for a supplier recalculation.
func NewRecalcTask(payload RecalcPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeRecalcSupplier, data), nil
}

// NewBackfillTask constructs an Asynq task for a supplier backfill.
func NewBackfillTask(payload BackfillPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeBackfillSupplier, data), nil
}

// Recalculator is the slice of the recalculation usecase the worker needs.
type Recalculator interface {
	Recalculate(ctx context.Context, supplierID string, actor domain.Actor) (*usecase.RecalcReport, error)
	Backfill(ctx context.Context, supplierID string, actor domain.Actor) (*usecase.RecalcReport, error)
}

// TaskHandlers processes ledger background tasks.
type TaskHandlers struct {
	recalc Recalculator
	logger zerolog.Logger
}

// NewTaskHandlers creates TaskHandlers.
func NewTaskHandlers(recalc Recalculator, logger zerolog.Logger) *TaskHandlers {
	return &TaskHandlers{recalc: recalc, logger: logger}
}

// HandleRecalc processes TaskTypeRecalcSupplier tasks.
func (h *TaskHandlers) HandleRecalc(ctx context.Context, t *asynq.Task) error {
	var payload RecalcPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	report, err := h.recalc.Recalculate(ctx, payload.SupplierID, domain.Actor{ID: payload.ActorID})
	if err != nil {
		if errors.Is(err, domain.ErrSupplierNotFound) {
			h.logger.Warn().Str("supplier_id", payload.SupplierID).Msg("recalc task: supplier not found, dropping")
			return asynq.SkipRetry
		}
		// ErrRecalculationInProgress and transient failures retry with
		// asynq's default backoff.
		return err
	}

	h.logger.Info().
		Str("supplier_id", report.SupplierID).
		Int("scanned", report.RecordsScanned).
		Int("repaired", report.RecordsRepaired).
		Str("final_balance", report.FinalBalance.String()).
		Msg("recalc task completed")

	return nil
}

// HandleBackfill processes TaskTypeBackfillSupplier tasks.
func (h *TaskHandlers) HandleBackfill(ctx context.Context, t *asynq.Task) error {
	var payload BackfillPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	report, err := h.recalc.Backfill(ctx, payload.SupplierID, domain.Actor{ID: payload.ActorID})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSupplierNotFound):
			h.logger.Warn().Str("supplier_id", payload.SupplierID).Msg("backfill task: supplier not found, dropping")
			return asynq.SkipRetry
		case errors.Is(err, domain.ErrHistoryExists):
			// Already backfilled, nothing to do.
			h.logger.Info().Str("supplier_id", payload.SupplierID).Msg("backfill task: history already exists")
			return nil
		}
		return err
	}

	h.logger.Info().
		Str("supplier_id", report.SupplierID).
		Int("synthesized", report.RecordsScanned).
		Str("final_balance", report.FinalBalance.String()).
		Msg("backfill task completed")

	return nil
}
