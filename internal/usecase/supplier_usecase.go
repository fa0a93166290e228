package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/resellerdesk/creditledger/internal/domain"
)

// SupplierUseCase handles supplier CRUD and reads.
type SupplierUseCase struct {
	supplierRepo SupplierRepository
	idGen        IDGenerator
	cache        Cache
}

// NewSupplierUseCase creates a new SupplierUseCase. cache may be nil.
func NewSupplierUseCase(supplierRepo SupplierRepository, idGen IDGenerator, cache Cache) *SupplierUseCase {
	return &SupplierUseCase{
		supplierRepo: supplierRepo,
		idGen:        idGen,
		cache:        cache,
	}
}

// CreateSupplierInput represents input for creating a supplier.
type CreateSupplierInput struct {
	Name            string
	Website         string
	PaymentCurrency domain.PaymentCurrency
}

// CreateSupplier creates a new supplier with a zero opening balance.
func (uc *SupplierUseCase) CreateSupplier(ctx context.Context, input CreateSupplierInput) (*domain.Supplier, error) {
	currency := input.PaymentCurrency
	if currency == "" {
		currency = domain.CurrencyUSDT
	}

	if !currency.Valid() {
		return nil, domain.ErrInvalidCurrency
	}

	now := time.Now().UTC()

	supplier := &domain.Supplier{
		ID:              uc.idGen.Generate(),
		Name:            input.Name,
		Website:         input.Website,
		Balance:         decimal.Zero,
		PaymentCurrency: currency,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

// GetSupplier retrieves a supplier by ID, serving from cache when possible.
// The database row stays authoritative: every ledger mutation invalidates
// the cached copy.
func (uc *SupplierUseCase) GetSupplier(ctx context.Context, id string) (*domain.Supplier, error) {
	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, supplierCacheKey(id)); err == nil {
			var supplier domain.Supplier
			if err := json.Unmarshal(data, &supplier); err == nil {
				return &supplier, nil
			}
		}
	}

	supplier, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(supplier); err == nil {
			_ = uc.cache.Set(ctx, supplierCacheKey(id), data, SupplierCacheTTL)
		}
	}

	return supplier, nil
}

// ListSuppliersInput represents input for listing suppliers.
type ListSuppliersInput struct {
	Limit  int
	Offset int
}

// ListSuppliers lists suppliers with pagination.
func (uc *SupplierUseCase) ListSuppliers(ctx context.Context, input ListSuppliersInput) ([]*domain.Supplier, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.supplierRepo.List(ctx, input.Limit, input.Offset)
}
