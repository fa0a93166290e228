package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/resellerdesk/creditledger/internal/domain"
	"github.com/resellerdesk/creditledger/internal/infrastructure/postgres/generated"
	"github.com/resellerdesk/creditledger/internal/usecase"
)

// SupplierRepository implements usecase.SupplierRepository.
type SupplierRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewSupplierRepository creates a new SupplierRepository.
func NewSupplierRepository(pool *pgxpool.Pool) *SupplierRepository {
	return &SupplierRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new supplier.
func (r *SupplierRepository) Create(ctx context.Context, supplier *domain.Supplier) error {
	_, err := r.queries.CreateSupplier(ctx, generated.CreateSupplierParams{
		ID:              supplier.ID,
		Name:            supplier.Name,
		Website:         supplier.Website,
		Balance:         decimalToNumeric(supplier.Balance),
		PaymentCurrency: string(supplier.PaymentCurrency),
		CreatedAt:       timeToPgTimestamptz(supplier.CreatedAt),
		UpdatedAt:       timeToPgTimestamptz(supplier.UpdatedAt),
	})

	return err
}

// GetByID retrieves a supplier by ID.
func (r *SupplierRepository) GetByID(ctx context.Context, id string) (*domain.Supplier, error) {
	row, err := r.queries.GetSupplierByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSupplierNotFound
		}

		return nil, err
	}

	return rowToSupplier(row), nil
}

// GetByIDForUpdate retrieves a supplier by ID with a FOR UPDATE lock. All
// ledger mutations go through this path so balance changes serialize per
// supplier row.
func (r *SupplierRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Supplier, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.GetSupplierByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSupplierNotFound
		}

		return nil, err
	}

	return rowToSupplier(row), nil
}

// UpdateBalance updates the balance of a supplier.
func (r *SupplierRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateSupplierBalance(ctx, generated.UpdateSupplierBalanceParams{
		ID:        id,
		Balance:   decimalToNumeric(balance),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

// List lists suppliers with pagination.
func (r *SupplierRepository) List(ctx context.Context, limit, offset int) ([]*domain.Supplier, error) {
	rows, err := r.queries.ListSuppliers(ctx, generated.ListSuppliersParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	suppliers := make([]*domain.Supplier, 0, len(rows))
	for _, row := range rows {
		suppliers = append(suppliers, rowToSupplier(row))
	}

	return suppliers, nil
}

func rowToSupplier(row generated.Supplier) *domain.Supplier {
	return &domain.Supplier{
		ID:              row.ID,
		Name:            row.Name,
		Website:         row.Website,
		Balance:         numericToDecimal(row.Balance),
		PaymentCurrency: domain.PaymentCurrency(row.PaymentCurrency),
		CreatedAt:       row.CreatedAt.Time,
		UpdatedAt:       row.UpdatedAt.Time,
	}
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
