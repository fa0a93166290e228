package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/resellerdesk/creditledger/internal/domain"
)

// PaymentUseCase translates payment create/update/delete events into ledger
// credits and compensating debits. The payment row and its ledger mutation
// always share one transaction.
type PaymentUseCase struct {
	txManager    TransactionManager
	paymentRepo  PaymentRepository
	supplierRepo SupplierRepository
	ledger       *LedgerUseCase
	idGen        IDGenerator
	logger       zerolog.Logger
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(
	txManager TransactionManager,
	paymentRepo PaymentRepository,
	supplierRepo SupplierRepository,
	ledger *LedgerUseCase,
	idGen IDGenerator,
	logger zerolog.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		txManager:    txManager,
		paymentRepo:  paymentRepo,
		supplierRepo: supplierRepo,
		ledger:       ledger,
		idGen:        idGen,
		logger:       logger,
	}
}

// RecordPaymentInput represents input for recording a supplier payment.
type RecordPaymentInput struct {
	SupplierID      string
	CreditsReceived decimal.Decimal
	Description     string
	Actor           domain.Actor
}

// RecordPayment inserts a payment and credits the supplier by its
// credits_received value. Non-positive credits skip the ledger with a
// warning; the payment row is still created.
func (uc *PaymentUseCase) RecordPayment(ctx context.Context, input RecordPaymentInput) (*domain.Payment, error) {
	now := time.Now().UTC()

	payment := &domain.Payment{
		ID:              uc.idGen.Generate(),
		SupplierID:      input.SupplierID,
		CreditsReceived: input.CreditsReceived,
		Description:     input.Description,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if input.CreditsReceived.LessThanOrEqual(decimal.Zero) {
		uc.logger.Warn().
			Str("payment_id", payment.ID).
			Str("supplier_id", payment.SupplierID).
			Str("credits_received", input.CreditsReceived.String()).
			Msg("payment has no positive credits, skipping ledger credit")

		if err := uc.paymentRepo.Create(ctx, tx, payment); err != nil {
			return nil, err
		}

		return payment, tx.Commit(ctx)
	}

	supplier, err := uc.supplierRepo.GetByIDForUpdate(ctx, tx, payment.SupplierID)
	if err != nil {
		return nil, err
	}

	if err := uc.paymentRepo.Create(ctx, tx, payment); err != nil {
		return nil, err
	}

	_, err = uc.ledger.creditLocked(ctx, tx, supplier, payment.CreditsReceived, domain.TypePayment, payment.LedgerDescription(), domain.ExpenseReference(payment.ID), input.Actor, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.ledger.invalidateSupplier(ctx, payment.SupplierID)

	return payment, nil
}

// UpdatePaymentInput represents input for editing a payment.
type UpdatePaymentInput struct {
	CreditsReceived decimal.Decimal
	Description     string
	Actor           domain.Actor
}

// UpdatePayment edits a payment's credits_received. The supplier balance is
// adjusted by the difference: increases credit, decreases debit, unchanged
// values touch only the row.
func (uc *PaymentUseCase) UpdatePayment(ctx context.Context, id string, input UpdatePaymentInput) (*domain.Payment, error) {
	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	payment, err := uc.paymentRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	difference := input.CreditsReceived.Sub(payment.CreditsReceived)

	if err := uc.paymentRepo.UpdateCredits(ctx, tx, id, input.CreditsReceived, input.Description, now); err != nil {
		return nil, err
	}

	if !difference.IsZero() {
		supplier, err := uc.supplierRepo.GetByIDForUpdate(ctx, tx, payment.SupplierID)
		if err != nil {
			return nil, err
		}

		if difference.GreaterThan(decimal.Zero) {
			_, err = uc.ledger.creditLocked(ctx, tx, supplier, difference, domain.TypePayment, payment.LedgerDescription(), domain.ExpenseReference(payment.ID), input.Actor, now)
		} else {
			_, err = uc.ledger.debitLocked(ctx, tx, supplier, difference.Abs(), domain.TypePayment, payment.LedgerDescription(), domain.ExpenseReference(payment.ID), input.Actor, now)
		}

		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.ledger.invalidateSupplier(ctx, payment.SupplierID)

	payment.CreditsReceived = input.CreditsReceived
	payment.Description = input.Description
	payment.UpdatedAt = now

	return payment, nil
}

// DeletePayment removes a payment and reverses its original credit. Payments
// that never granted credit are just deleted.
func (uc *PaymentUseCase) DeletePayment(ctx context.Context, id string, actor domain.Actor) error {
	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	payment, err := uc.paymentRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}

	if err := uc.paymentRepo.Delete(ctx, tx, id); err != nil {
		return err
	}

	if payment.CreditsReceived.GreaterThan(decimal.Zero) {
		supplier, err := uc.supplierRepo.GetByIDForUpdate(ctx, tx, payment.SupplierID)
		if err != nil {
			return err
		}

		_, err = uc.ledger.debitLocked(ctx, tx, supplier, payment.CreditsReceived, domain.TypePayment, payment.LedgerDescription(), domain.ExpenseReference(payment.ID), actor, now)
		if err != nil {
			return err
		}
	} else {
		uc.logger.Warn().
			Str("payment_id", payment.ID).
			Str("supplier_id", payment.SupplierID).
			Msg("deleted payment never granted credit, skipping ledger debit")
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	uc.ledger.invalidateSupplier(ctx, payment.SupplierID)

	return nil
}

// GetPayment retrieves a payment by ID.
func (uc *PaymentUseCase) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	return uc.paymentRepo.GetByID(ctx, id)
}
