package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/resellerdesk/creditledger/internal/domain"
	"github.com/resellerdesk/creditledger/internal/usecase"
)

// SaleRepository implements usecase.SaleRepository.
type SaleRepository struct {
	pool *pgxpool.Pool
}

// NewSaleRepository creates a new SaleRepository.
func NewSaleRepository(pool *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{pool: pool}
}

const insertSaleQuery = `
INSERT INTO sales (id, supplier_id, client, payment_method, amount_usd, refunded_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

const insertSaleItemQuery = `
INSERT INTO sale_items (id, sale_id, description, base_price, quantity)
VALUES ($1, $2, $3, $4, $5)
`

// Create inserts a sale and its items inside the given transaction. A sale
// without a supplier stores NULL in supplier_id.
func (r *SaleRepository) Create(ctx context.Context, tx usecase.Transaction, sale *domain.Sale) error {
	pgxTx := tx.(*Tx).PgxTx()

	var refundedAt pgtype.Timestamptz
	if sale.RefundedAt != nil {
		refundedAt = timeToPgTimestamptz(*sale.RefundedAt)
	}

	_, err := pgxTx.Exec(ctx, insertSaleQuery,
		sale.ID,
		supplierIDToPgText(sale.SupplierID),
		sale.Client,
		string(sale.PaymentMethod),
		decimalToNumeric(sale.AmountUSD),
		refundedAt,
		timeToPgTimestamptz(sale.CreatedAt),
	)
	if err != nil {
		return err
	}

	for _, item := range sale.Items {
		_, err := pgxTx.Exec(ctx, insertSaleItemQuery,
			item.ID,
			sale.ID,
			item.Description,
			decimalToNumeric(item.BasePrice),
			item.Quantity,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

const getSaleQuery = `
SELECT id, supplier_id, client, payment_method, amount_usd, refunded_at, created_at
FROM sales
WHERE id = $1
`

const getSaleForUpdateQuery = getSaleQuery + `FOR UPDATE
`

const listSaleItemsQuery = `
SELECT id, sale_id, description, base_price, quantity
FROM sale_items
WHERE sale_id = $1
ORDER BY id
`

// GetByID retrieves a sale and its items by ID.
func (r *SaleRepository) GetByID(ctx context.Context, id string) (*domain.Sale, error) {
	sale, err := scanSale(r.pool.QueryRow(ctx, getSaleQuery, id))
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, r.pool, sale); err != nil {
		return nil, err
	}

	return sale, nil
}

// GetByIDForUpdate retrieves a sale with a FOR UPDATE lock inside the given
// transaction. Refunds lock the sale row before touching the supplier.
func (r *SaleRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Sale, error) {
	pgxTx := tx.(*Tx).PgxTx()

	sale, err := scanSale(pgxTx.QueryRow(ctx, getSaleForUpdateQuery, id))
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, pgxTx, sale); err != nil {
		return nil, err
	}

	return sale, nil
}

const markSaleRefundedQuery = `
UPDATE sales
SET refunded_at = $2
WHERE id = $1
`

// MarkRefunded stamps the refund time on a sale.
func (r *SaleRepository) MarkRefunded(ctx context.Context, tx usecase.Transaction, id string, refundedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, markSaleRefundedQuery, id, timeToPgTimestamptz(refundedAt))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}

	return nil
}

const listSalesBySupplierQuery = `
SELECT id, supplier_id, client, payment_method, amount_usd, refunded_at, created_at
FROM sales
WHERE supplier_id = $1
ORDER BY created_at DESC, id DESC
`

// ListBySupplier lists all sales for a supplier, newest first.
func (r *SaleRepository) ListBySupplier(ctx context.Context, supplierID string) ([]*domain.Sale, error) {
	rows, err := r.pool.Query(ctx, listSalesBySupplierQuery, supplierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []*domain.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}

		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, sale := range sales {
		if err := r.loadItems(ctx, r.pool, sale); err != nil {
			return nil, err
		}
	}

	return sales, nil
}

type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *SaleRepository) loadItems(ctx context.Context, q queryer, sale *domain.Sale) error {
	rows, err := q.Query(ctx, listSaleItemsQuery, sale.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item      domain.SaleItem
			basePrice pgtype.Numeric
		)

		if err := rows.Scan(&item.ID, &item.SaleID, &item.Description, &basePrice, &item.Quantity); err != nil {
			return err
		}

		item.BasePrice = numericToDecimal(basePrice)
		sale.Items = append(sale.Items, item)
	}

	return rows.Err()
}

func scanSale(row pgx.Row) (*domain.Sale, error) {
	var (
		sale          domain.Sale
		supplierID    pgtype.Text
		paymentMethod string
		amountUSD     pgtype.Numeric
		refundedAt    pgtype.Timestamptz
		createdAt     pgtype.Timestamptz
	)

	err := row.Scan(&sale.ID, &supplierID, &sale.Client, &paymentMethod, &amountUSD, &refundedAt, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSaleNotFound
		}

		return nil, err
	}

	sale.SupplierID = supplierID.String
	sale.PaymentMethod = domain.PaymentMethod(paymentMethod)
	sale.AmountUSD = numericToDecimal(amountUSD)
	sale.CreatedAt = createdAt.Time

	if refundedAt.Valid {
		t := refundedAt.Time
		sale.RefundedAt = &t
	}

	return &sale, nil
}

// supplierIDToPgText maps an empty supplier reference to NULL.
func supplierIDToPgText(id string) pgtype.Text {
	return pgtype.Text{String: id, Valid: id != ""}
}
