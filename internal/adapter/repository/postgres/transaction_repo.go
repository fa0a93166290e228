package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/resellerdesk/creditledger/internal/domain"
	"github.com/resellerdesk/creditledger/internal/infrastructure/postgres/generated"
	"github.com/resellerdesk/creditledger/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create appends a transaction record inside the given transaction. Records
// are insert-only; nothing in the write path updates or deletes them.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, record *domain.TransactionRecord) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreateTransactionRecord(ctx, generated.CreateTransactionRecordParams{
		ID:            record.ID,
		SupplierID:    record.SupplierID,
		Type:          string(record.Type),
		Amount:        decimalToNumeric(record.Amount),
		BalanceBefore: decimalToNumeric(record.BalanceBefore),
		BalanceAfter:  decimalToNumeric(record.BalanceAfter),
		ReferenceKind: string(record.Reference.Kind),
		ReferenceID:   record.Reference.ID,
		Description:   record.Description,
		ActorID:       record.ActorID,
		CreatedAt:     timeToPgTimestamptz(record.CreatedAt),
	})

	return err
}

// GetByID retrieves a transaction record by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.TransactionRecord, error) {
	row, err := r.queries.GetTransactionRecordByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return rowToRecord(row), nil
}

// ListBySupplier lists records for a supplier, newest first.
func (r *TransactionRepository) ListBySupplier(ctx context.Context, supplierID string, limit, offset int) ([]*domain.TransactionRecord, error) {
	rows, err := r.queries.ListTransactionRecordsBySupplier(ctx, generated.ListTransactionRecordsBySupplierParams{
		SupplierID: supplierID,
		Limit:      int32(limit),
		Offset:     int32(offset),
	})
	if err != nil {
		return nil, err
	}

	records := make([]*domain.TransactionRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, rowToRecord(row))
	}

	return records, nil
}

// ListHistory lists all records for a supplier in chronological order,
// inside the given transaction. Replay depends on this ordering.
func (r *TransactionRepository) ListHistory(ctx context.Context, tx usecase.Transaction, supplierID string) ([]*domain.TransactionRecord, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	rows, err := queries.ListTransactionHistory(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	records := make([]*domain.TransactionRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, rowToRecord(row))
	}

	return records, nil
}

// UpdateSnapshots rewrites the balance snapshots of a record. This is the
// only mutation recalculation is allowed to make; amount, type, reference
// and description stay untouched.
func (r *TransactionRepository) UpdateSnapshots(ctx context.Context, tx usecase.Transaction, id string, before, after decimal.Decimal) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateTransactionSnapshots(ctx, generated.UpdateTransactionSnapshotsParams{
		ID:            id,
		BalanceBefore: decimalToNumeric(before),
		BalanceAfter:  decimalToNumeric(after),
	})
}

// CountBySupplier counts records for a supplier.
func (r *TransactionRepository) CountBySupplier(ctx context.Context, supplierID string) (int64, error) {
	return r.queries.CountTransactionRecordsBySupplier(ctx, supplierID)
}

// SumAmounts sums the signed amounts of all records for a supplier.
func (r *TransactionRepository) SumAmounts(ctx context.Context, supplierID string) (decimal.Decimal, error) {
	sum, err := r.queries.SumTransactionAmounts(ctx, supplierID)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

func rowToRecord(row generated.TransactionRecord) *domain.TransactionRecord {
	return &domain.TransactionRecord{
		ID:            row.ID,
		SupplierID:    row.SupplierID,
		Type:          domain.TransactionType(row.Type),
		Amount:        numericToDecimal(row.Amount),
		BalanceBefore: numericToDecimal(row.BalanceBefore),
		BalanceAfter:  numericToDecimal(row.BalanceAfter),
		Reference: domain.Reference{
			Kind: domain.ReferenceKind(row.ReferenceKind),
			ID:   row.ReferenceID,
		},
		Description: row.Description,
		ActorID:     row.ActorID,
		CreatedAt:   row.CreatedAt.Time,
	}
}
