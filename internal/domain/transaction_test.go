package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestTransactionRecord_Validate(t *testing.T) {
	tests := []struct {
		name        string
		record      TransactionRecord
		expectError error
	}{
		{
			name: "valid credit record",
			record: TransactionRecord{
				SupplierID:    "sup-1",
				Type:          TypePayment,
				Amount:        decimal.NewFromInt(100),
				BalanceBefore: decimal.NewFromInt(50),
				BalanceAfter:  decimal.NewFromInt(150),
			},
		},
		{
			name: "valid debit record",
			record: TransactionRecord{
				SupplierID:    "sup-1",
				Type:          TypeSaleDebit,
				Amount:        decimal.NewFromInt(-30),
				BalanceBefore: decimal.NewFromInt(100),
				BalanceAfter:  decimal.NewFromInt(70),
			},
		},
		{
			name: "missing supplier",
			record: TransactionRecord{
				Type:   TypePayment,
				Amount: decimal.NewFromInt(10),
			},
			expectError: ErrSupplierNotFound,
		},
		{
			name: "unknown type",
			record: TransactionRecord{
				SupplierID: "sup-1",
				Type:       TransactionType("bonus"),
				Amount:     decimal.NewFromInt(10),
			},
			expectError: ErrInvalidTransactionType,
		},
		{
			name: "snapshots do not pair with amount",
			record: TransactionRecord{
				SupplierID:    "sup-1",
				Type:          TypePayment,
				Amount:        decimal.NewFromInt(100),
				BalanceBefore: decimal.NewFromInt(50),
				BalanceAfter:  decimal.NewFromInt(100),
			},
			expectError: ErrSnapshotMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()

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

func TestTransactionRecord_ReplayDelta(t *testing.T) {
	tests := []struct {
		name        string
		txType      TransactionType
		amount      decimal.Decimal
		description string
		want        decimal.Decimal
	}{
		{
			name:   "live payment stored positive",
			txType: TypePayment,
			amount: decimal.NewFromInt(100),
			want:   decimal.NewFromInt(100),
		},
		{
			name:   "live payment stored negative keeps its sign",
			txType: TypePayment,
			amount: decimal.NewFromInt(-30),
			want:   decimal.NewFromInt(-30),
		},
		{
			name:        "backfilled payment stored negative still credits",
			txType:      TypePayment,
			amount:      decimal.NewFromInt(-100),
			description: BackfillMarker + " Payment pay-1",
			want:        decimal.NewFromInt(100),
		},
		{
			name:        "backfilled refund stored negative still credits",
			txType:      TypeSaleRefund,
			amount:      decimal.NewFromInt(-30),
			description: BackfillMarker + " Sale sale-1",
			want:        decimal.NewFromInt(30),
		},
		{
			name:        "backfilled sale debit keeps its sign",
			txType:      TypeSaleDebit,
			amount:      decimal.NewFromInt(-30),
			description: BackfillMarker + " Sale sale-1",
			want:        decimal.NewFromInt(-30),
		},
		{
			name:   "manual adjustment keeps its sign",
			txType: TypeManualAdjustment,
			amount: decimal.NewFromInt(-15),
			want:   decimal.NewFromInt(-15),
		},
		{
			name:   "positive manual adjustment keeps its sign",
			txType: TypeManualAdjustment,
			amount: decimal.NewFromInt(15),
			want:   decimal.NewFromInt(15),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := TransactionRecord{Type: tt.txType, Amount: tt.amount, Description: tt.description}

			if got := rec.ReplayDelta(); !got.Equal(tt.want) {
				t.Errorf("ReplayDelta() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTransactionRecord_Synthesized(t *testing.T) {
	live := TransactionRecord{Description: "Payment pay-1"}
	if live.Synthesized() {
		t.Error("expected live record to not be synthesized")
	}

	backfilled := TransactionRecord{Description: BackfillMarker + " Payment pay-1"}
	if !backfilled.Synthesized() {
		t.Error("expected backfill-marked record to be synthesized")
	}
}

func TestTransactionType_DisplayName(t *testing.T) {
	tests := []struct {
		txType TransactionType
		want   string
	}{
		{TypePayment, "Payment received"},
		{TypeSaleDebit, "Sale"},
		{TypeSaleRefund, "Sale refund"},
		{TypeManualAdjustment, "Manual adjustment"},
		{TransactionType("other"), "other"},
	}

	for _, tt := range tests {
		if got := tt.txType.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.txType, got, tt.want)
		}
	}
}
