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
	"github.com/resellerdesk/creditledger/internal/usecase"
)

// PaymentRepository implements usecase.PaymentRepository.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

const insertPaymentQuery = `
INSERT INTO payments (id, supplier_id, credits_received, description, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
`

// Create inserts a payment inside the given transaction.
func (r *PaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, insertPaymentQuery,
		payment.ID,
		payment.SupplierID,
		decimalToNumeric(payment.CreditsReceived),
		payment.Description,
		timeToPgTimestamptz(payment.CreatedAt),
		timeToPgTimestamptz(payment.UpdatedAt),
	)

	return err
}

const getPaymentQuery = `
SELECT id, supplier_id, credits_received, description, created_at, updated_at
FROM payments
WHERE id = $1
`

const getPaymentForUpdateQuery = getPaymentQuery + `FOR UPDATE
`

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	return scanPayment(r.pool.QueryRow(ctx, getPaymentQuery, id))
}

// GetByIDForUpdate retrieves a payment with a FOR UPDATE lock inside the
// given transaction. Edits and deletes read the stored credits under this
// lock so the difference is computed against a stable value.
func (r *PaymentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Payment, error) {
	pgxTx := tx.(*Tx).PgxTx()

	return scanPayment(pgxTx.QueryRow(ctx, getPaymentForUpdateQuery, id))
}

const updatePaymentCreditsQuery = `
UPDATE payments
SET credits_received = $2, description = $3, updated_at = $4
WHERE id = $1
`

// UpdateCredits updates the credits and description of a payment.
func (r *PaymentRepository) UpdateCredits(ctx context.Context, tx usecase.Transaction, id string, credits decimal.Decimal, description string, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, updatePaymentCreditsQuery, id, decimalToNumeric(credits), description, timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentNotFound
	}

	return nil
}

const deletePaymentQuery = `
DELETE FROM payments
WHERE id = $1
`

// Delete removes a payment inside the given transaction.
func (r *PaymentRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, deletePaymentQuery, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentNotFound
	}

	return nil
}

const listPaymentsBySupplierQuery = `
SELECT id, supplier_id, credits_received, description, created_at, updated_at
FROM payments
WHERE supplier_id = $1
ORDER BY created_at DESC, id DESC
`

// ListBySupplier lists all payments for a supplier, newest first.
func (r *PaymentRepository) ListBySupplier(ctx context.Context, supplierID string) ([]*domain.Payment, error) {
	rows, err := r.pool.Query(ctx, listPaymentsBySupplierQuery, supplierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}

		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var (
		payment   domain.Payment
		credits   pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&payment.ID, &payment.SupplierID, &credits, &payment.Description, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}

		return nil, err
	}

	payment.CreditsReceived = numericToDecimal(credits)
	payment.CreatedAt = createdAt.Time
	payment.UpdatedAt = updatedAt.Time

	return &payment, nil
}
