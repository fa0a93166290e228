package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/resellerdesk/creditledger/internal/domain"
	"github.com/resellerdesk/creditledger/internal/infrastructure/metrics"
)

// LedgerUseCase is the only authorized path to change a supplier's balance.
// Every mutation pairs the balance update with exactly one appended
// transaction record, atomically, under a row-level lock on the supplier.
type LedgerUseCase struct {
	txManager    TransactionManager
	supplierRepo SupplierRepository
	recordRepo   TransactionRepository
	idGen        IDGenerator
	retrier      Retrier
	cache        Cache
	metrics      *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase. retrier, cache and metrics
// may be nil.
func NewLedgerUseCase(
	txManager TransactionManager,
	supplierRepo SupplierRepository,
	recordRepo TransactionRepository,
	idGen IDGenerator,
	retrier Retrier,
	cache Cache,
	metrics *metrics.Metrics,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:    txManager,
		supplierRepo: supplierRepo,
		recordRepo:   recordRepo,
		idGen:        idGen,
		retrier:      retrier,
		cache:        cache,
		metrics:      metrics,
	}
}

// MutationInput represents input for a credit or debit operation. Amount is
// a positive magnitude; Debit negates it internally.
type MutationInput struct {
	SupplierID  string
	Amount      decimal.Decimal
	Type        domain.TransactionType
	Description string
	Reference   domain.Reference
	Actor       domain.Actor
}

// Credit increases the supplier's balance by input.Amount.
func (uc *LedgerUseCase) Credit(ctx context.Context, input MutationInput) (*domain.TransactionRecord, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	return uc.apply(ctx, input, input.Amount)
}

// Debit decreases the supplier's balance by input.Amount. The ledger does
// not enforce a non-negative balance; sufficiency is the caller's rule.
func (uc *LedgerUseCase) Debit(ctx context.Context, input MutationInput) (*domain.TransactionRecord, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	return uc.apply(ctx, input, input.Amount.Neg())
}

// ManualAdjustInput represents an operator-initiated correction. Amount is
// signed: positive credits, negative debits.
type ManualAdjustInput struct {
	SupplierID  string
	Amount      decimal.Decimal
	Description string
	Actor       domain.Actor
}

// ManualAdjust applies a signed correction not tied to a sale or payment.
func (uc *LedgerUseCase) ManualAdjust(ctx context.Context, input ManualAdjustInput) (*domain.TransactionRecord, error) {
	if input.Amount.IsZero() {
		return nil, domain.ErrInvalidAmount
	}

	return uc.apply(ctx, MutationInput{
		SupplierID:  input.SupplierID,
		Type:        domain.TypeManualAdjustment,
		Description: input.Description,
		Actor:       input.Actor,
	}, input.Amount)
}

// apply runs a single balance change in its own transaction.
func (uc *LedgerUseCase) apply(ctx context.Context, input MutationInput, signed decimal.Decimal) (*domain.TransactionRecord, error) {
	var record *domain.TransactionRecord

	start := time.Now()

	operation := func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		supplier, err := uc.supplierRepo.GetByIDForUpdate(ctx, tx, input.SupplierID)
		if err != nil {
			return err
		}

		record, err = uc.applyLocked(ctx, tx, supplier, signed, input.Type, input.Description, input.Reference, input.Actor, time.Now().UTC())
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, operation)
	} else {
		err = operation()
	}

	if err != nil {
		if uc.metrics != nil {
			uc.metrics.MutationErrors.WithLabelValues(string(input.Type)).Inc()
		}

		return nil, err
	}

	uc.invalidateSupplier(ctx, input.SupplierID)

	if uc.metrics != nil {
		uc.metrics.MutationsApplied.WithLabelValues(string(record.Type)).Inc()
		uc.metrics.MutationDuration.Observe(time.Since(start).Seconds())
		balance, _ := record.BalanceAfter.Float64()
		uc.metrics.SupplierBalance.WithLabelValues(record.SupplierID).Set(balance)
	}

	return record, nil
}

// applyLocked mutates an already-locked supplier and appends the audit
// record inside the caller's transaction. The lifecycle hook use cases call
// this to combine a business write with its ledger mutation atomically.
func (uc *LedgerUseCase) applyLocked(
	ctx context.Context,
	tx Transaction,
	supplier *domain.Supplier,
	signed decimal.Decimal,
	recordType domain.TransactionType,
	description string,
	reference domain.Reference,
	actor domain.Actor,
	now time.Time,
) (*domain.TransactionRecord, error) {
	before := supplier.Balance
	after := before.Add(signed)

	if err := uc.supplierRepo.UpdateBalance(ctx, tx, supplier.ID, after, now); err != nil {
		return nil, err
	}

	record := &domain.TransactionRecord{
		ID:            uc.idGen.Generate(),
		SupplierID:    supplier.ID,
		Type:          recordType,
		Amount:        signed,
		BalanceBefore: before,
		BalanceAfter:  after,
		Reference:     reference,
		Description:   description,
		ActorID:       actor.OrSystem().ID,
		CreatedAt:     now,
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	if err := uc.recordRepo.Create(ctx, tx, record); err != nil {
		return nil, err
	}

	supplier.Balance = after

	return record, nil
}

// creditLocked credits an already-locked supplier inside the caller's transaction.
func (uc *LedgerUseCase) creditLocked(ctx context.Context, tx Transaction, supplier *domain.Supplier, amount decimal.Decimal, recordType domain.TransactionType, description string, reference domain.Reference, actor domain.Actor, now time.Time) (*domain.TransactionRecord, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	return uc.applyLocked(ctx, tx, supplier, amount, recordType, description, reference, actor, now)
}

// debitLocked debits an already-locked supplier inside the caller's transaction.
func (uc *LedgerUseCase) debitLocked(ctx context.Context, tx Transaction, supplier *domain.Supplier, amount decimal.Decimal, recordType domain.TransactionType, description string, reference domain.Reference, actor domain.Actor, now time.Time) (*domain.TransactionRecord, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	return uc.applyLocked(ctx, tx, supplier, amount.Neg(), recordType, description, reference, actor, now)
}

// invalidateSupplier drops the cached supplier read after a mutation.
func (uc *LedgerUseCase) invalidateSupplier(ctx context.Context, supplierID string) {
	if uc.cache == nil {
		return
	}

	_ = uc.cache.Delete(ctx, supplierCacheKey(supplierID))
}

func supplierCacheKey(id string) string {
	return "supplier:" + id
}
