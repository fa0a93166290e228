package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/resellerdesk/creditledger/internal/domain"
)

// SaleUseCase translates the sale lifecycle (create, refund) into ledger
// operations. The sufficiency check and the debit run under the same
// supplier row lock, so concurrent sales cannot overspend a balance.
type SaleUseCase struct {
	txManager    TransactionManager
	saleRepo     SaleRepository
	supplierRepo SupplierRepository
	ledger       *LedgerUseCase
	idGen        IDGenerator
	logger       zerolog.Logger
}

// NewSaleUseCase creates a new SaleUseCase.
func NewSaleUseCase(
	txManager TransactionManager,
	saleRepo SaleRepository,
	supplierRepo SupplierRepository,
	ledger *LedgerUseCase,
	idGen IDGenerator,
	logger zerolog.Logger,
) *SaleUseCase {
	return &SaleUseCase{
		txManager:    txManager,
		saleRepo:     saleRepo,
		supplierRepo: supplierRepo,
		ledger:       ledger,
		idGen:        idGen,
		logger:       logger,
	}
}

// SaleItemInput represents one line of a new sale.
type SaleItemInput struct {
	Description string
	BasePrice   decimal.Decimal
	Quantity    int64
}

// CreateSaleInput represents input for creating a sale.
type CreateSaleInput struct {
	SupplierID    string
	Client        string
	PaymentMethod domain.PaymentMethod
	AmountUSD     decimal.Decimal
	Items         []SaleItemInput
	Actor         domain.Actor
}

// CreateSale records a sale. For credit-funded sales the cost basis is
// checked against the supplier balance and debited in the same transaction
// that inserts the sale; an insufficient balance rejects the whole creation.
func (uc *SaleUseCase) CreateSale(ctx context.Context, input CreateSaleInput) (*domain.Sale, error) {
	now := time.Now().UTC()

	sale := &domain.Sale{
		ID:            uc.idGen.Generate(),
		SupplierID:    input.SupplierID,
		Client:        input.Client,
		PaymentMethod: input.PaymentMethod,
		AmountUSD:     input.AmountUSD,
		CreatedAt:     now,
	}

	for _, item := range input.Items {
		sale.Items = append(sale.Items, domain.SaleItem{
			ID:          uc.idGen.Generate(),
			SaleID:      sale.ID,
			Description: item.Description,
			BasePrice:   item.BasePrice,
			Quantity:    item.Quantity,
		})
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if !sale.CreditFunded() {
		if err := uc.saleRepo.Create(ctx, tx, sale); err != nil {
			return nil, err
		}

		return sale, tx.Commit(ctx)
	}

	costBasis := sale.CostBasis()
	if costBasis.LessThanOrEqual(decimal.Zero) {
		// Soft failure: the sale still completes, the ledger is skipped.
		uc.logger.Warn().
			Str("sale_id", sale.ID).
			Str("supplier_id", sale.SupplierID).
			Str("cost_basis", costBasis.String()).
			Msg("sale has no positive cost basis, skipping ledger debit")

		if err := uc.saleRepo.Create(ctx, tx, sale); err != nil {
			return nil, err
		}

		return sale, tx.Commit(ctx)
	}

	supplier, err := uc.supplierRepo.GetByIDForUpdate(ctx, tx, sale.SupplierID)
	if err != nil {
		return nil, err
	}

	if err := supplier.ValidateSpend(costBasis); err != nil {
		return nil, err
	}

	if err := uc.saleRepo.Create(ctx, tx, sale); err != nil {
		return nil, err
	}

	_, err = uc.ledger.debitLocked(ctx, tx, supplier, costBasis, domain.TypeSaleDebit, sale.LedgerDescription(), domain.SaleReference(sale.ID), input.Actor, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.ledger.invalidateSupplier(ctx, sale.SupplierID)

	return sale, nil
}

// RefundSale transitions a credit-funded sale to refunded and credits the
// supplier back the same cost basis that was debited. Refunded is terminal:
// a second refund attempt is rejected without any ledger call.
func (uc *SaleUseCase) RefundSale(ctx context.Context, saleID string, actor domain.Actor) (*domain.Sale, error) {
	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock order: sale row first, then its supplier row.
	sale, err := uc.saleRepo.GetByIDForUpdate(ctx, tx, saleID)
	if err != nil {
		return nil, err
	}

	if err := sale.Refundable(); err != nil {
		return nil, err
	}

	supplier, err := uc.supplierRepo.GetByIDForUpdate(ctx, tx, sale.SupplierID)
	if err != nil {
		return nil, err
	}

	amount := sale.CostBasis()
	if amount.GreaterThan(decimal.Zero) {
		_, err = uc.ledger.creditLocked(ctx, tx, supplier, amount, domain.TypeSaleRefund, sale.LedgerDescription(), domain.SaleReference(sale.ID), actor, now)
		if err != nil {
			return nil, err
		}
	} else {
		uc.logger.Warn().
			Str("sale_id", sale.ID).
			Str("supplier_id", sale.SupplierID).
			Msg("refunded sale has no positive cost basis, skipping ledger credit")
	}

	if err := uc.saleRepo.MarkRefunded(ctx, tx, sale.ID, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.ledger.invalidateSupplier(ctx, sale.SupplierID)

	sale.RefundedAt = &now

	return sale, nil
}

// GetSale retrieves a sale by ID.
func (uc *SaleUseCase) GetSale(ctx context.Context, id string) (*domain.Sale, error) {
	return uc.saleRepo.GetByID(ctx, id)
}
