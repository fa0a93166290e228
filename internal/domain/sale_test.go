package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestSale_CostBasis(t *testing.T) {
	tests := []struct {
		name      string
		amountUSD decimal.Decimal
		items     []SaleItem
		want      decimal.Decimal
	}{
		{
			name:      "sums item base costs",
			amountUSD: decimal.NewFromInt(999),
			items: []SaleItem{
				{BasePrice: decimal.NewFromInt(10), Quantity: 3},
				{BasePrice: decimal.NewFromFloat(2.5), Quantity: 2},
			},
			want: decimal.NewFromInt(35),
		},
		{
			name:      "falls back to amount when no items",
			amountUSD: decimal.NewFromInt(40),
			want:      decimal.NewFromInt(40),
		},
		{
			name:      "falls back when base costs sum to zero",
			amountUSD: decimal.NewFromInt(40),
			items: []SaleItem{
				{BasePrice: decimal.Zero, Quantity: 5},
			},
			want: decimal.NewFromInt(40),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sale := &Sale{AmountUSD: tt.amountUSD, Items: tt.items}

			if got := sale.CostBasis(); !got.Equal(tt.want) {
				t.Errorf("CostBasis() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSale_Refundable(t *testing.T) {
	refundedAt := time.Now()

	tests := []struct {
		name        string
		sale        Sale
		expectError error
	}{
		{
			name: "credit funded sale",
			sale: Sale{
				SupplierID:    "sup-1",
				PaymentMethod: PaymentMethodServerCredit,
			},
		},
		{
			name: "already refunded",
			sale: Sale{
				SupplierID:    "sup-1",
				PaymentMethod: PaymentMethodServerCredit,
				RefundedAt:    &refundedAt,
			},
			expectError: ErrSaleAlreadyRefunded,
		},
		{
			name: "direct sale",
			sale: Sale{
				SupplierID:    "sup-1",
				PaymentMethod: PaymentMethodDirect,
			},
			expectError: ErrSaleNotRefundable,
		},
		{
			name: "credit sale without supplier",
			sale: Sale{
				PaymentMethod: PaymentMethodServerCredit,
			},
			expectError: ErrSaleNotRefundable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sale.Refundable()

			if tt.expectError == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, tt.expectError) {
				t.Errorf("expected %v, got %v", tt.expectError, err)
			}
		})
	}
}

func TestSale_CreditFunded(t *testing.T) {
	tests := []struct {
		name string
		sale Sale
		want bool
	}{
		{
			name: "server credit with supplier",
			sale: Sale{SupplierID: "sup-1", PaymentMethod: PaymentMethodServerCredit},
			want: true,
		},
		{
			name: "server credit without supplier",
			sale: Sale{PaymentMethod: PaymentMethodServerCredit},
			want: false,
		},
		{
			name: "direct with supplier",
			sale: Sale{SupplierID: "sup-1", PaymentMethod: PaymentMethodDirect},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sale.CreditFunded(); got != tt.want {
				t.Errorf("CreditFunded() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSale_LedgerDescription(t *testing.T) {
	sale := &Sale{ID: "sale-1", Client: "acme"}
	if got := sale.LedgerDescription(); got != "Sale sale-1 for acme" {
		t.Errorf("unexpected description: %q", got)
	}

	anonymous := &Sale{ID: "sale-2"}
	if got := anonymous.LedgerDescription(); got != "Sale sale-2" {
		t.Errorf("unexpected description: %q", got)
	}
}
