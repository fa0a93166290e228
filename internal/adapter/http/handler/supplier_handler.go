package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/resellerdesk/creditledger/internal/adapter/http/dto"
	"github.com/resellerdesk/creditledger/internal/adapter/http/middleware"
	"github.com/resellerdesk/creditledger/internal/domain"
	"github.com/resellerdesk/creditledger/internal/jobs"
	"github.com/resellerdesk/creditledger/internal/usecase"
)

// SupplierService defines the behavior needed by SupplierHandler.
type SupplierService interface {
	CreateSupplier(ctx context.Context, input usecase.CreateSupplierInput) (*domain.Supplier, error)
	GetSupplier(ctx context.Context, id string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, input usecase.ListSuppliersInput) ([]*domain.Supplier, error)
}

// LedgerService defines the ledger behavior needed by SupplierHandler.
type LedgerService interface {
	ManualAdjust(ctx context.Context, input usecase.ManualAdjustInput) (*domain.TransactionRecord, error)
}

// ConsistencyService defines the consistency check behavior needed by
// SupplierHandler.
type ConsistencyService interface {
	CheckConsistency(ctx context.Context, supplierID string) (*usecase.ConsistencyResult, error)
}

// JobEnqueuer submits batch jobs for asynchronous execution.
type JobEnqueuer interface {
	EnqueueRecalc(ctx context.Context, payload jobs.RecalcPayload) (taskID string, err error)
	EnqueueBackfill(ctx context.Context, payload jobs.BackfillPayload) (taskID string, err error)
}

// SupplierHandler handles supplier-related HTTP requests.
type SupplierHandler struct {
	supplierUC  SupplierService
	ledgerUC    LedgerService
	consistency ConsistencyService
	enqueuer    JobEnqueuer
}

// NewSupplierHandler creates a new SupplierHandler.
func NewSupplierHandler(supplierUC SupplierService, ledgerUC LedgerService, consistency ConsistencyService, enqueuer JobEnqueuer) *SupplierHandler {
	return &SupplierHandler{
		supplierUC:  supplierUC,
		ledgerUC:    ledgerUC,
		consistency: consistency,
		enqueuer:    enqueuer,
	}
}

// Create creates a new supplier.
func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	supplier, err := h.supplierUC.CreateSupplier(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create supplier", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.SupplierFromDomain(supplier))
}

// Get retrieves a supplier by ID.
func (h *SupplierHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing supplier ID", "")
		return
	}

	supplier, err := h.supplierUC.GetSupplier(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get supplier", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SupplierFromDomain(supplier))
}

// List lists suppliers.
func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	suppliers, err := h.supplierUC.ListSuppliers(r.Context(), usecase.ListSuppliersInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list suppliers", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListSuppliersResponse{
		Suppliers: dto.SuppliersFromDomain(suppliers),
		Total:     int64(len(suppliers)),
	})
}

// Adjust applies a signed manual correction to a supplier's balance.
func (h *SupplierHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing supplier ID", "")
		return
	}

	var req dto.ManualAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	actor := middleware.ActorFromContext(r.Context())

	record, err := h.ledgerUC.ManualAdjust(r.Context(), req.ToUseCaseInput(id, actor))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to apply adjustment", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.RecordFromDomain(record))
}

// Consistency reports whether a supplier's balance matches its history.
func (h *SupplierHandler) Consistency(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing supplier ID", "")
		return
	}

	result, err := h.consistency.CheckConsistency(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to check consistency", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyFromUseCase(result))
}

// Recalculate enqueues a background recalculation for a supplier.
func (h *SupplierHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing supplier ID", "")
		return
	}

	// Existence check up front so a bad ID fails the request, not the job.
	if _, err := h.supplierUC.GetSupplier(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to enqueue recalculation", err.Error())
		return
	}

	actor := middleware.ActorFromContext(r.Context())

	taskID, err := h.enqueuer.EnqueueRecalc(r.Context(), jobs.RecalcPayload{
		SupplierID: id,
		ActorID:    actor.ID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to enqueue recalculation", err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, dto.JobEnqueuedResponse{
		SupplierID: id,
		Task:       jobs.TaskTypeRecalcSupplier,
		TaskID:     taskID,
		Queue:      jobs.QueueDefault,
	})
}

// Backfill enqueues a background history backfill for a supplier.
func (h *SupplierHandler) Backfill(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing supplier ID", "")
		return
	}

	if _, err := h.supplierUC.GetSupplier(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to enqueue backfill", err.Error())
		return
	}

	actor := middleware.ActorFromContext(r.Context())

	taskID, err := h.enqueuer.EnqueueBackfill(r.Context(), jobs.BackfillPayload{
		SupplierID: id,
		ActorID:    actor.ID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to enqueue backfill", err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, dto.JobEnqueuedResponse{
		SupplierID: id,
		Task:       jobs.TaskTypeBackfillSupplier,
		TaskID:     taskID,
		Queue:      jobs.QueueDefault,
	})
}
