package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentCurrency is the currency a supplier is settled in.
type PaymentCurrency string

const (
	CurrencyUSDT  PaymentCurrency = "USDT"
	CurrencyLocal PaymentCurrency = "LOCAL"
)

// Valid reports whether the currency is a known value.
func (c PaymentCurrency) Valid() bool {
	return c == CurrencyUSDT || c == CurrencyLocal
}

// Supplier represents a credit supplier with a running prepaid balance.
// The balance is mutated exclusively through ledger operations.
type Supplier struct {
	ID              string
	Name            string
	Website         string
	Balance         decimal.Decimal
	PaymentCurrency PaymentCurrency
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ValidateSpend checks that the balance covers a prospective debit of amount.
// This is the caller-side sufficiency rule; the ledger itself allows negative
// balances for corrective entries.
func (s *Supplier) ValidateSpend(amount decimal.Decimal) error {
	if amount.GreaterThan(s.Balance) {
		return &InsufficientBalanceError{
			SupplierID: s.ID,
			Balance:    s.Balance,
			Required:   amount,
		}
	}

	return nil
}

// ApplyCredit returns the balance after a credit.
func (s *Supplier) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return s.Balance.Add(amount)
}

// ApplyDebit returns the balance after a debit.
func (s *Supplier) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return s.Balance.Sub(amount)
}
