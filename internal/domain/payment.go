package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a supplier payment (an expense row in the back office) that
// grants CreditsReceived to the supplier's balance. Unlike transaction
// records, payments are mutable: edits and deletions trigger compensating
// ledger adjustments.
type Payment struct {
	ID              string
	SupplierID      string
	CreditsReceived decimal.Decimal
	Description     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LedgerDescription is the free-text description recorded on ledger rows
// produced by this payment.
func (p *Payment) LedgerDescription() string {
	if p.Description == "" {
		return fmt.Sprintf("Payment %s", p.ID)
	}

	return fmt.Sprintf("Payment %s: %s", p.ID, p.Description)
}
