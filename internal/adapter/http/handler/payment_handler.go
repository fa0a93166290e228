package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/resellerdesk/creditledger/internal/adapter/http/dto"
	"github.com/resellerdesk/creditledger/internal/adapter/http/middleware"
	"github.com/resellerdesk/creditledger/internal/domain"
	"github.com/resellerdesk/creditledger/internal/usecase"
)

// PaymentService defines the behavior needed by PaymentHandler.
type PaymentService interface {
	RecordPayment(ctx context.Context, input usecase.RecordPaymentInput) (*domain.Payment, error)
	UpdatePayment(ctx context.Context, id string, input usecase.UpdatePaymentInput) (*domain.Payment, error)
	DeletePayment(ctx context.Context, id string, actor domain.Actor) error
	GetPayment(ctx context.Context, id string) (*domain.Payment, error)
}

// PaymentHandler handles payment-related HTTP requests.
type PaymentHandler struct {
	paymentUC PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentUC PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentUC: paymentUC}
}

// Create records a supplier payment and credits the balance.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	actor := middleware.ActorFromContext(r.Context())

	payment, err := h.paymentUC.RecordPayment(r.Context(), req.ToUseCaseInput(actor))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record payment", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.PaymentFromDomain(payment))
}

// Get retrieves a payment by ID.
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	payment, err := h.paymentUC.GetPayment(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get payment", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentFromDomain(payment))
}

// Update edits a payment's credits; the balance moves by the difference.
func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	var req dto.UpdatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	actor := middleware.ActorFromContext(r.Context())

	payment, err := h.paymentUC.UpdatePayment(r.Context(), id, req.ToUseCaseInput(actor))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update payment", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentFromDomain(payment))
}

// Delete removes a payment and debits back the credits it granted.
func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	actor := middleware.ActorFromContext(r.Context())

	if err := h.paymentUC.DeletePayment(r.Context(), id, actor); err != nil {
		writeError(w, mapDomainError(err), "failed to delete payment", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
