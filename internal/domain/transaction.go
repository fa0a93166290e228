package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BackfillMarker prefixes the description of transaction records synthesized
// from raw sales and payments, so repaired history stays distinguishable
// from live audit rows.
const BackfillMarker = "[backfill]"

// TransactionType classifies a balance change.
type TransactionType string

const (
	TypePayment          TransactionType = "payment"
	TypeSaleDebit        TransactionType = "sale_debit"
	TypeSaleRefund       TransactionType = "sale_refund"
	TypeManualAdjustment TransactionType = "manual_adjustment"
)

// Valid reports whether the type is a known value.
func (t TransactionType) Valid() bool {
	switch t {
	case TypePayment, TypeSaleDebit, TypeSaleRefund, TypeManualAdjustment:
		return true
	}

	return false
}

// DisplayName returns the human-readable name shown in transaction listings.
func (t TransactionType) DisplayName() string {
	switch t {
	case TypePayment:
		return "Payment received"
	case TypeSaleDebit:
		return "Sale"
	case TypeSaleRefund:
		return "Sale refund"
	case TypeManualAdjustment:
		return "Manual adjustment"
	default:
		return string(t)
	}
}

// ColorTag returns the UI badge color for the type.
func (t TransactionType) ColorTag() string {
	switch t {
	case TypePayment:
		return "success"
	case TypeSaleDebit:
		return "danger"
	case TypeSaleRefund:
		return "info"
	case TypeManualAdjustment:
		return "warning"
	default:
		return "gray"
	}
}

// TransactionRecord is an immutable audit row for a single balance change.
// A positive amount increases the supplier balance, a negative one decreases
// it. Records are never updated after creation, except for the balance
// snapshot repair performed by the recalculation job.
type TransactionRecord struct {
	ID            string
	SupplierID    string
	Type          TransactionType
	Amount        decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	Reference     Reference
	Description   string
	ActorID       string
	CreatedAt     time.Time
}

// Validate checks the record's internal invariants.
func (r *TransactionRecord) Validate() error {
	if r.SupplierID == "" {
		return ErrSupplierNotFound
	}

	if !r.Type.Valid() {
		return ErrInvalidTransactionType
	}

	if !r.BalanceAfter.Sub(r.BalanceBefore).Equal(r.Amount) {
		return ErrSnapshotMismatch
	}

	return nil
}

// Synthesized reports whether the record was produced by a history
// backfill rather than a live ledger operation.
func (r *TransactionRecord) Synthesized() bool {
	return strings.HasPrefix(r.Description, BackfillMarker)
}

// ReplayDelta returns the contribution of this record to a replayed running
// balance. Synthesized credit-side records (payment, sale_refund) add their
// magnitude, since backfilled source rows carry no reliable sign. Live
// records always replay their signed amount: a payment edited downward
// legitimately appends a negative payment record, and taking its magnitude
// would corrupt a consistent history.
func (r *TransactionRecord) ReplayDelta() decimal.Decimal {
	if r.Synthesized() {
		switch r.Type {
		case TypePayment, TypeSaleRefund:
			return r.Amount.Abs()
		}
	}

	return r.Amount
}
