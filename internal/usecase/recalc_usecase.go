package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/resellerdesk/creditledger/internal/domain"
	"github.com/resellerdesk/creditledger/internal/infrastructure/metrics"
)

// RecalcUseCase is the batch repair tool for historical ledger data. It
// replays a supplier's full transaction history in chronological order and
// rewrites the balance snapshots to make them consistent again. It is the
// only code allowed to touch records after creation, and only their
// balance_before/balance_after fields.
type RecalcUseCase struct {
	txManager    TransactionManager
	supplierRepo SupplierRepository
	recordRepo   TransactionRepository
	saleRepo     SaleRepository
	paymentRepo  PaymentRepository
	idGen        IDGenerator
	locker       Locker
	cache        Cache
	lockTTL      time.Duration
	logger       zerolog.Logger
	metrics      *metrics.Metrics
}

// NewRecalcUseCase creates a new RecalcUseCase. locker, cache and metrics
// may be nil.
func NewRecalcUseCase(
	txManager TransactionManager,
	supplierRepo SupplierRepository,
	recordRepo TransactionRepository,
	saleRepo SaleRepository,
	paymentRepo PaymentRepository,
	idGen IDGenerator,
	locker Locker,
	cache Cache,
	lockTTL time.Duration,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *RecalcUseCase {
	if lockTTL <= 0 {
		lockTTL = DefaultRecalcLockTTL
	}

	return &RecalcUseCase{
		txManager:    txManager,
		supplierRepo: supplierRepo,
		recordRepo:   recordRepo,
		saleRepo:     saleRepo,
		paymentRepo:  paymentRepo,
		idGen:        idGen,
		locker:       locker,
		cache:        cache,
		lockTTL:      lockTTL,
		logger:       logger,
		metrics:      m,
	}
}

// RecalcReport summarizes one recalculation run.
type RecalcReport struct {
	SupplierID      string
	RecordsScanned  int
	RecordsRepaired int
	FinalBalance    decimal.Decimal
	CompletedAt     time.Time
}

// Recalculate replays the supplier's history from a zero balance and
// repairs any snapshot that disagrees with the replay. Running it twice in
// a row produces identical results.
func (uc *RecalcUseCase) Recalculate(ctx context.Context, supplierID string, actor domain.Actor) (*RecalcReport, error) {
	start := time.Now()

	unlock, err := uc.lockSupplier(ctx, supplierID)
	if err != nil {
		uc.countRecalc("locked")
		return nil, err
	}
	defer unlock()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	supplier, err := uc.supplierRepo.GetByIDForUpdate(ctx, tx, supplierID)
	if err != nil {
		return nil, err
	}

	report, err := uc.replayLocked(ctx, tx, supplier)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.invalidateSupplier(ctx, supplierID)

	uc.countRecalc("ok")
	if uc.metrics != nil {
		uc.metrics.RecalcRepairs.Add(float64(report.RecordsRepaired))
		uc.metrics.RecalcDuration.Observe(time.Since(start).Seconds())
	}

	uc.logger.Info().
		Str("supplier_id", supplierID).
		Str("actor_id", actor.OrSystem().ID).
		Int("scanned", report.RecordsScanned).
		Int("repaired", report.RecordsRepaired).
		Str("final_balance", report.FinalBalance.String()).
		Msg("supplier recalculation completed")

	return report, nil
}

// Backfill synthesizes transaction records for a supplier that predates the
// ledger, from its raw sales and payments, then replays them. Suppliers
// that already have history are rejected.
func (uc *RecalcUseCase) Backfill(ctx context.Context, supplierID string, actor domain.Actor) (*RecalcReport, error) {
	unlock, err := uc.lockSupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	count, err := uc.recordRepo.CountBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	if count > 0 {
		return nil, domain.ErrHistoryExists
	}

	sales, err := uc.saleRepo.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	payments, err := uc.paymentRepo.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	events := uc.synthesize(supplierID, sales, payments, actor)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	supplier, err := uc.supplierRepo.GetByIDForUpdate(ctx, tx, supplierID)
	if err != nil {
		return nil, err
	}

	for _, record := range events {
		if err := uc.recordRepo.Create(ctx, tx, record); err != nil {
			return nil, err
		}
	}

	report, err := uc.replayLocked(ctx, tx, supplier)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.invalidateSupplier(ctx, supplierID)

	if uc.metrics != nil {
		uc.metrics.BackfillsExecuted.Inc()
	}

	uc.logger.Info().
		Str("supplier_id", supplierID).
		Int("synthesized", len(events)).
		Str("final_balance", report.FinalBalance.String()).
		Msg("supplier backfill completed")

	return report, nil
}

// ConsistencyResult reports whether the supplier balance equals the sum of
// its transaction record amounts.
type ConsistencyResult struct {
	SupplierID string
	Balance    decimal.Decimal
	RecordSum  decimal.Decimal
	Difference decimal.Decimal
	Consistent bool
	CheckedAt  time.Time
}

// CheckConsistency verifies the core ledger invariant for one supplier.
func (uc *RecalcUseCase) CheckConsistency(ctx context.Context, supplierID string) (*ConsistencyResult, error) {
	supplier, err := uc.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	sum, err := uc.recordRepo.SumAmounts(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	return &ConsistencyResult{
		SupplierID: supplierID,
		Balance:    supplier.Balance,
		RecordSum:  sum,
		Difference: supplier.Balance.Sub(sum),
		Consistent: supplier.Balance.Equal(sum),
		CheckedAt:  time.Now().UTC(),
	}, nil
}

// replayLocked replays the full ordered history inside the caller's
// transaction. Backfill-marked credit-side records (payment, sale_refund)
// add their magnitude to the running balance; everything else adds its
// signed amount, so a replay over a consistent live history is a no-op.
// Only snapshots that differ from the replay are rewritten.
func (uc *RecalcUseCase) replayLocked(ctx context.Context, tx Transaction, supplier *domain.Supplier) (*RecalcReport, error) {
	records, err := uc.recordRepo.ListHistory(ctx, tx, supplier.ID)
	if err != nil {
		return nil, err
	}

	running := decimal.Zero
	repaired := 0

	for _, record := range records {
		before := running
		running = running.Add(record.ReplayDelta())

		if record.BalanceBefore.Equal(before) && record.BalanceAfter.Equal(running) {
			continue
		}

		if err := uc.recordRepo.UpdateSnapshots(ctx, tx, record.ID, before, running); err != nil {
			return nil, err
		}

		repaired++
	}

	if !supplier.Balance.Equal(running) {
		if err := uc.supplierRepo.UpdateBalance(ctx, tx, supplier.ID, running, time.Now().UTC()); err != nil {
			return nil, err
		}

		supplier.Balance = running
	}

	return &RecalcReport{
		SupplierID:      supplier.ID,
		RecordsScanned:  len(records),
		RecordsRepaired: repaired,
		FinalBalance:    running,
		CompletedAt:     time.Now().UTC(),
	}, nil
}

// synthesize builds the chronological backfill history from raw sales and
// payments. Snapshots are placeholders; replay assigns the real values.
func (uc *RecalcUseCase) synthesize(supplierID string, sales []*domain.Sale, payments []*domain.Payment, actor domain.Actor) []*domain.TransactionRecord {
	var records []*domain.TransactionRecord

	actorID := actor.OrSystem().ID

	add := func(recordType domain.TransactionType, amount decimal.Decimal, description string, reference domain.Reference, at time.Time) {
		records = append(records, &domain.TransactionRecord{
			ID:            uc.idGen.Generate(),
			SupplierID:    supplierID,
			Type:          recordType,
			Amount:        amount,
			BalanceBefore: decimal.Zero,
			BalanceAfter:  amount,
			Reference:     reference,
			Description:   fmt.Sprintf("%s %s", BackfillMarker, description),
			ActorID:       actorID,
			CreatedAt:     at,
		})
	}

	for _, sale := range sales {
		if !sale.CreditFunded() {
			continue
		}

		costBasis := sale.CostBasis()
		if costBasis.LessThanOrEqual(decimal.Zero) {
			continue
		}

		add(domain.TypeSaleDebit, costBasis.Neg(), sale.LedgerDescription(), domain.SaleReference(sale.ID), sale.CreatedAt)

		if sale.RefundedAt != nil {
			add(domain.TypeSaleRefund, costBasis, sale.LedgerDescription(), domain.SaleReference(sale.ID), *sale.RefundedAt)
		}
	}

	for _, payment := range payments {
		if payment.CreditsReceived.LessThanOrEqual(decimal.Zero) {
			continue
		}

		add(domain.TypePayment, payment.CreditsReceived, payment.LedgerDescription(), domain.ExpenseReference(payment.ID), payment.CreatedAt)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})

	return records
}

// lockSupplier serializes batch runs per supplier across processes.
func (uc *RecalcUseCase) lockSupplier(ctx context.Context, supplierID string) (func(), error) {
	if uc.locker == nil {
		return func() {}, nil
	}

	lock, err := uc.locker.Obtain(ctx, "recalc:"+supplierID, uc.lockTTL)
	if err != nil {
		return nil, err
	}

	return func() {
		if err := lock.Release(ctx); err != nil {
			uc.logger.Warn().Err(err).Str("supplier_id", supplierID).Msg("failed to release recalculation lock")
		}
	}, nil
}

func (uc *RecalcUseCase) countRecalc(status string) {
	if uc.metrics == nil {
		return
	}

	uc.metrics.RecalcRuns.WithLabelValues(status).Inc()
}

func (uc *RecalcUseCase) invalidateSupplier(ctx context.Context, supplierID string) {
	if uc.cache == nil {
		return
	}

	_ = uc.cache.Delete(ctx, supplierCacheKey(supplierID))
}
