package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// Lookup errors
	ErrSupplierNotFound    = errors.New("supplier not found")
	ErrSaleNotFound        = errors.New("sale not found")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrTransactionNotFound = errors.New("transaction record not found")

	// Ledger errors
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInvalidTransactionType = errors.New("unknown transaction type")
	ErrSnapshotMismatch       = errors.New("balance snapshots do not match amount")

	// Sale lifecycle errors
	ErrSaleNotRefundable   = errors.New("sale is not refundable")
	ErrSaleAlreadyRefunded = errors.New("sale has already been refunded")

	// Supplier errors
	ErrInvalidCurrency = errors.New("unknown payment currency")

	// Recalculation errors
	ErrHistoryExists           = errors.New("supplier already has ledger history")
	ErrRecalculationInProgress = errors.New("recalculation already running for supplier")
)

// InsufficientBalanceError rejects a credit-funded sale whose cost basis
// exceeds the supplier's current balance.
type InsufficientBalanceError struct {
	SupplierID string
	Balance    decimal.Decimal
	Required   decimal.Decimal
}

// Shortfall returns how much credit is missing.
func (e *InsufficientBalanceError) Shortfall() decimal.Decimal {
	return e.Required.Sub(e.Balance)
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf(
		"insufficient balance for supplier %s: have %s, need %s, short %s",
		e.SupplierID,
		e.Balance.String(),
		e.Required.String(),
		e.Shortfall().String(),
	)
}
