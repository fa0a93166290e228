package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/resellerdesk/creditledger/internal/domain"
)

// SupplierRepository defines data access for suppliers.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *domain.Supplier) error
	GetByID(ctx context.Context, id string) (*domain.Supplier, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Supplier, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Supplier, error)
}

// TransactionRepository defines data access for transaction records.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, record *domain.TransactionRecord) error
	GetByID(ctx context.Context, id string) (*domain.TransactionRecord, error)
	ListBySupplier(ctx context.Context, supplierID string, limit, offset int) ([]*domain.TransactionRecord, error)
	// ListHistory returns the supplier's full history ordered by
	// (created_at, id) ascending, for chronological replay.
	ListHistory(ctx context.Context, tx Transaction, supplierID string) ([]*domain.TransactionRecord, error)
	// UpdateSnapshots rewrites balance_before/balance_after only. Amount and
	// type are immutable.
	UpdateSnapshots(ctx context.Context, tx Transaction, id string, before, after decimal.Decimal) error
	CountBySupplier(ctx context.Context, supplierID string) (int64, error)
	SumAmounts(ctx context.Context, supplierID string) (decimal.Decimal, error)
}

// SaleRepository defines data access for sales.
type SaleRepository interface {
	Create(ctx context.Context, tx Transaction, sale *domain.Sale) error
	GetByID(ctx context.Context, id string) (*domain.Sale, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Sale, error)
	MarkRefunded(ctx context.Context, tx Transaction, id string, refundedAt time.Time) error
	ListBySupplier(ctx context.Context, supplierID string) ([]*domain.Sale, error)
}

// PaymentRepository defines data access for supplier payments.
type PaymentRepository interface {
	Create(ctx context.Context, tx Transaction, payment *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Payment, error)
	UpdateCredits(ctx context.Context, tx Transaction, id string, credits decimal.Decimal, description string, updatedAt time.Time) error
	Delete(ctx context.Context, tx Transaction, id string) error
	ListBySupplier(ctx context.Context, supplierID string) ([]*domain.Payment, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient database failures
// (deadlocks, serialization conflicts).
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// DistributedLock is a held lock that must be released.
type DistributedLock interface {
	Release(ctx context.Context) error
}

// Locker obtains distributed locks, used to serialize batch jobs per
// supplier across processes.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (DistributedLock, error)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
