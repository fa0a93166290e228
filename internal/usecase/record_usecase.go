package usecase

import (
	"context"

	"github.com/resellerdesk/creditledger/internal/domain"
)

// RecordUseCase handles the read side of the audit trail.
type RecordUseCase struct {
	recordRepo TransactionRepository
}

// NewRecordUseCase creates a new RecordUseCase.
func NewRecordUseCase(recordRepo TransactionRepository) *RecordUseCase {
	return &RecordUseCase{recordRepo: recordRepo}
}

// ListBySupplierInput represents input for listing transaction records.
type ListBySupplierInput struct {
	SupplierID string
	Limit      int
	Offset     int
}

// ListBySupplier lists a supplier's transaction records, newest first.
func (uc *RecordUseCase) ListBySupplier(ctx context.Context, input ListBySupplierInput) ([]*domain.TransactionRecord, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.recordRepo.ListBySupplier(ctx, input.SupplierID, input.Limit, input.Offset)
}

// GetRecord retrieves a single transaction record.
func (uc *RecordUseCase) GetRecord(ctx context.Context, id string) (*domain.TransactionRecord, error) {
	return uc.recordRepo.GetByID(ctx, id)
}
