package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/resellerdesk/creditledger/internal/domain"
	"github.com/resellerdesk/creditledger/internal/usecase"
)

var validate = validator.New()

// Validate runs struct tag validation on a request.
func Validate(req any) error {
	return validate.Struct(req)
}

// CreateSupplierRequest represents a request to create a supplier.
type CreateSupplierRequest struct {
	Name            string `json:"name" validate:"required"`
	Website         string `json:"website" validate:"omitempty,url"`
	PaymentCurrency string `json:"payment_currency" validate:"omitempty,oneof=USDT LOCAL"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateSupplierRequest) ToUseCaseInput() usecase.CreateSupplierInput {
	return usecase.CreateSupplierInput{
		Name:            r.Name,
		Website:         r.Website,
		PaymentCurrency: domain.PaymentCurrency(r.PaymentCurrency),
	}
}

// ManualAdjustmentRequest represents a signed balance correction.
type ManualAdjustmentRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Description string          `json:"description" validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *ManualAdjustmentRequest) ToUseCaseInput(supplierID string, actor domain.Actor) usecase.ManualAdjustInput {
	return usecase.ManualAdjustInput{
		SupplierID:  supplierID,
		Amount:      r.Amount,
		Description: r.Description,
		Actor:       actor,
	}
}

// SaleItemRequest represents a single line of a sale.
type SaleItemRequest struct {
	Description string          `json:"description" validate:"required"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Quantity    int64           `json:"quantity" validate:"required,gt=0"`
}

// CreateSaleRequest represents a request to record a sale. SupplierID is
// optional: sales without a supplier are recorded but never touch the ledger.
type CreateSaleRequest struct {
	SupplierID    string            `json:"supplier_id"`
	Client        string            `json:"client" validate:"required"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=server_credit direct"`
	AmountUSD     decimal.Decimal   `json:"amount_usd"`
	Items         []SaleItemRequest `json:"items" validate:"dive"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateSaleRequest) ToUseCaseInput(actor domain.Actor) usecase.CreateSaleInput {
	items := make([]usecase.SaleItemInput, len(r.Items))
	for i, item := range r.Items {
		items[i] = usecase.SaleItemInput{
			Description: item.Description,
			BasePrice:   item.BasePrice,
			Quantity:    item.Quantity,
		}
	}

	return usecase.CreateSaleInput{
		SupplierID:    r.SupplierID,
		Client:        r.Client,
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
		AmountUSD:     r.AmountUSD,
		Items:         items,
		Actor:         actor,
	}
}

// RecordPaymentRequest represents a request to record a supplier payment.
type RecordPaymentRequest struct {
	SupplierID      string          `json:"supplier_id" validate:"required"`
	CreditsReceived decimal.Decimal `json:"credits_received"`
	Description     string          `json:"description"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordPaymentRequest) ToUseCaseInput(actor domain.Actor) usecase.RecordPaymentInput {
	return usecase.RecordPaymentInput{
		SupplierID:      r.SupplierID,
		CreditsReceived: r.CreditsReceived,
		Description:     r.Description,
		Actor:           actor,
	}
}

// UpdatePaymentRequest represents a request to edit a payment's credits.
type UpdatePaymentRequest struct {
	CreditsReceived decimal.Decimal `json:"credits_received"`
	Description     string          `json:"description"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdatePaymentRequest) ToUseCaseInput(actor domain.Actor) usecase.UpdatePaymentInput {
	return usecase.UpdatePaymentInput{
		CreditsReceived: r.CreditsReceived,
		Description:     r.Description,
		Actor:           actor,
	}
}
