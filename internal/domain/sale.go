package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod classifies how a sale was funded.
type PaymentMethod string

const (
	// PaymentMethodServerCredit marks a sale paid by drawing down the
	// linked supplier's credit balance.
	PaymentMethodServerCredit PaymentMethod = "server_credit"
	// PaymentMethodDirect marks a sale settled directly with the customer.
	PaymentMethodDirect PaymentMethod = "direct"
)

// SaleItem is a single line of a sale. BasePrice is the supplier-facing cost
// per unit, not the customer price.
type SaleItem struct {
	ID          string
	SaleID      string
	Description string
	BasePrice   decimal.Decimal
	Quantity    int64
}

// BaseCost returns the supplier-facing cost of the line.
func (i SaleItem) BaseCost() decimal.Decimal {
	return i.BasePrice.Mul(decimal.NewFromInt(i.Quantity))
}

// Sale represents a sale consumed by the ledger lifecycle hooks. SupplierID
// is empty for sales explicitly recorded without a supplier.
type Sale struct {
	ID            string
	SupplierID    string
	Client        string
	PaymentMethod PaymentMethod
	AmountUSD     decimal.Decimal
	Items         []SaleItem
	RefundedAt    *time.Time
	CreatedAt     time.Time
}

// CreditFunded reports whether the sale draws down a supplier balance.
func (s *Sale) CreditFunded() bool {
	return s.PaymentMethod == PaymentMethodServerCredit && s.SupplierID != ""
}

// CostBasis returns the supplier-facing cost of the sale: the sum of line
// item base costs, falling back to the recorded USD-equivalent total when no
// base costs were captured.
func (s *Sale) CostBasis() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.BaseCost())
	}

	if total.IsZero() {
		return s.AmountUSD
	}

	return total
}

// Refundable checks whether the sale can transition to refunded.
func (s *Sale) Refundable() error {
	if s.RefundedAt != nil {
		return ErrSaleAlreadyRefunded
	}

	if !s.CreditFunded() {
		return ErrSaleNotRefundable
	}

	return nil
}

// LedgerDescription is the free-text description recorded on ledger rows
// produced by this sale.
func (s *Sale) LedgerDescription() string {
	if s.Client == "" {
		return fmt.Sprintf("Sale %s", s.ID)
	}

	return fmt.Sprintf("Sale %s for %s", s.ID, s.Client)
}
