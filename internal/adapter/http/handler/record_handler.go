package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/resellerdesk/creditledger/internal/adapter/http/dto"
	"github.com/resellerdesk/creditledger/internal/domain"
	"github.com/resellerdesk/creditledger/internal/usecase"
)

// RecordService defines the behavior needed by RecordHandler.
type RecordService interface {
	ListBySupplier(ctx context.Context, input usecase.ListBySupplierInput) ([]*domain.TransactionRecord, error)
	GetRecord(ctx context.Context, id string) (*domain.TransactionRecord, error)
}

// RecordHandler serves the read-only audit trail.
type RecordHandler struct {
	recordUC RecordService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(recordUC RecordService) *RecordHandler {
	return &RecordHandler{recordUC: recordUC}
}

// ListBySupplier lists a supplier's transaction records, newest first.
func (h *RecordHandler) ListBySupplier(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing supplier ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	records, err := h.recordUC.ListBySupplier(r.Context(), usecase.ListBySupplierInput{
		SupplierID: id,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListRecordsResponse{
		Records: dto.RecordsFromDomain(records),
		Total:   int64(len(records)),
	})
}

// Get retrieves a single transaction record by ID.
func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing record ID", "")
		return
	}

	record, err := h.recordUC.GetRecord(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction record", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RecordFromDomain(record))
}
