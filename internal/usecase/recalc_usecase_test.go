package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/resellerdesk/creditledger/internal/domain"
	"github.com/resellerdesk/creditledger/internal/usecase"
	"github.com/resellerdesk/creditledger/internal/usecase/mocks"
)

type recalcFixture struct {
	supplierRepo *mocks.MockSupplierRepository
	recordRepo   *mocks.MockTransactionRepository
	saleRepo     *mocks.MockSaleRepository
	paymentRepo  *mocks.MockPaymentRepository
	uc           *usecase.RecalcUseCase
}

func newRecalcFixture(locker usecase.Locker) *recalcFixture {
	supplierRepo := mocks.NewMockSupplierRepository()
	recordRepo := mocks.NewMockTransactionRepository()
	saleRepo := mocks.NewMockSaleRepository()
	paymentRepo := mocks.NewMockPaymentRepository()

	return &recalcFixture{
		supplierRepo: supplierRepo,
		recordRepo:   recordRepo,
		saleRepo:     saleRepo,
		paymentRepo:  paymentRepo,
		uc: usecase.NewRecalcUseCase(
			mocks.NewMockTransactionManager(),
			supplierRepo,
			recordRepo,
			saleRepo,
			paymentRepo,
			mocks.NewSequenceIDGenerator(),
			locker,
			nil,
			time.Minute,
			zerolog.Nop(),
			nil,
		),
	}
}

func seedRecord(f *recalcFixture, id string, txType domain.TransactionType, amount, before, after int64, at time.Time) {
	f.recordRepo.Seed(&domain.TransactionRecord{
		ID:            id,
		SupplierID:    "sup-1",
		Type:          txType,
		Amount:        decimal.NewFromInt(amount),
		BalanceBefore: decimal.NewFromInt(before),
		BalanceAfter:  decimal.NewFromInt(after),
		CreatedAt:     at,
	})
}

func seedBackfilledRecord(f *recalcFixture, id string, txType domain.TransactionType, amount int64, at time.Time) {
	f.recordRepo.Seed(&domain.TransactionRecord{
		ID:          id,
		SupplierID:  "sup-1",
		Type:        txType,
		Amount:      decimal.NewFromInt(amount),
		Description: usecase.BackfillMarker + " " + id,
		CreatedAt:   at,
	})
}

func TestRecalcUseCase_Recalculate_RepairsSnapshots(t *testing.T) {
	f := newRecalcFixture(nil)
	f.supplierRepo.Seed(&domain.Supplier{ID: "sup-1", Balance: decimal.NewFromInt(999)})

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	// Correct history: +100, -30, +30. The middle record carries corrupted
	// snapshots, the supplier balance disagrees with the replay.
	seedRecord(f, "rec-1", domain.TypePayment, 100, 0, 100, base)
	seedRecord(f, "rec-2", domain.TypeSaleDebit, -30, 50, 20, base.Add(time.Hour))
	seedRecord(f, "rec-3", domain.TypeSaleRefund, 30, 70, 100, base.Add(2*time.Hour))

	report, err := f.uc.Recalculate(context.Background(), "sup-1", domain.SystemActor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.RecordsScanned != 3 {
		t.Errorf("expected 3 scanned, got %d", report.RecordsScanned)
	}

	if report.RecordsRepaired != 1 {
		t.Errorf("expected 1 repaired, got %d", report.RecordsRepaired)
	}

	if report.FinalBalance.String() != "100" {
		t.Errorf("expected final balance 100, got %s", report.FinalBalance)
	}

	records := f.recordRepo.Records()
	if records[1].BalanceBefore.String() != "100" || records[1].BalanceAfter.String() != "70" {
		t.Errorf("expected repaired snapshots 100/70, got %s/%s",
			records[1].BalanceBefore, records[1].BalanceAfter)
	}

	// Amounts are immutable; only snapshots may change.
	if records[1].Amount.String() != "-30" {
		t.Errorf("amount must not change, got %s", records[1].Amount)
	}

	supplier, _ := f.supplierRepo.GetByID(context.Background(), "sup-1")
	if supplier.Balance.String() != "100" {
		t.Errorf("expected supplier balance 100, got %s", supplier.Balance)
	}
}

func TestRecalcUseCase_Recalculate_Idempotent(t *testing.T) {
	f := newRecalcFixture(nil)
	f.supplierRepo.Seed(&domain.Supplier{ID: "sup-1", Balance: decimal.NewFromInt(999)})

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seedRecord(f, "rec-1", domain.TypePayment, 100, 1, 2, base)
	seedRecord(f, "rec-2", domain.TypeSaleDebit, -30, 3, 4, base.Add(time.Hour))

	first, err := f.uc.Recalculate(context.Background(), "sup-1", domain.SystemActor)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}

	if first.RecordsRepaired != 2 {
		t.Errorf("expected 2 repaired on first run, got %d", first.RecordsRepaired)
	}

	second, err := f.uc.Recalculate(context.Background(), "sup-1", domain.SystemActor)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if second.RecordsRepaired != 0 {
		t.Errorf("expected 0 repaired on second run, got %d", second.RecordsRepaired)
	}

	if !second.FinalBalance.Equal(first.FinalBalance) {
		t.Errorf("runs disagree: %s vs %s", first.FinalBalance, second.FinalBalance)
	}
}

func TestRecalcUseCase_Recalculate_BackfilledCreditSideMagnitude(t *testing.T) {
	// Backfilled payments and refunds replay as their magnitude even when
	// synthesized with the wrong sign; debit-side types carry their own sign.
	f := newRecalcFixture(nil)
	f.supplierRepo.Seed(&domain.Supplier{ID: "sup-1", Balance: decimal.Zero})

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seedBackfilledRecord(f, "rec-1", domain.TypePayment, -100, base)
	seedBackfilledRecord(f, "rec-2", domain.TypeSaleRefund, -30, base.Add(time.Hour))
	seedBackfilledRecord(f, "rec-3", domain.TypeManualAdjustment, -10, base.Add(2*time.Hour))

	report, err := f.uc.Recalculate(context.Background(), "sup-1", domain.SystemActor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.FinalBalance.String() != "120" {
		t.Errorf("expected final balance 120, got %s", report.FinalBalance)
	}
}

func TestRecalcUseCase_Recalculate_LiveEditedPaymentIsNoOp(t *testing.T) {
	// A payment edited downward appends a negative payment record. That
	// history is consistent, and replaying it must not rewrite anything.
	f := newRecalcFixture(nil)
	f.supplierRepo.Seed(&domain.Supplier{ID: "sup-1", Balance: decimal.NewFromInt(20)})

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seedRecord(f, "rec-1", domain.TypePayment, 50, 0, 50, base)
	seedRecord(f, "rec-2", domain.TypePayment, -30, 50, 20, base.Add(time.Hour))

	report, err := f.uc.Recalculate(context.Background(), "sup-1", domain.SystemActor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.RecordsRepaired != 0 {
		t.Errorf("expected 0 repaired, got %d", report.RecordsRepaired)
	}

	if report.FinalBalance.String() != "20" {
		t.Errorf("expected final balance 20, got %s", report.FinalBalance)
	}

	supplier, _ := f.supplierRepo.GetByID(context.Background(), "sup-1")
	if supplier.Balance.String() != "20" {
		t.Errorf("expected supplier balance to stay 20, got %s", supplier.Balance)
	}
}

func TestRecalcUseCase_Recalculate_UnknownSupplier(t *testing.T) {
	f := newRecalcFixture(nil)

	_, err := f.uc.Recalculate(context.Background(), "missing", domain.SystemActor)
	if !errors.Is(err, domain.ErrSupplierNotFound) {
		t.Fatalf("expected ErrSupplierNotFound, got %v", err)
	}
}

func TestRecalcUseCase_Recalculate_LockContention(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	locker := mocks.NewMockLocker(ctrl)
	locker.EXPECT().
		Obtain(gomock.Any(), "recalc:sup-1", time.Minute).
		Return(nil, domain.ErrRecalculationInProgress)

	f := newRecalcFixture(locker)
	f.supplierRepo.Seed(&domain.Supplier{ID: "sup-1", Balance: decimal.Zero})

	_, err := f.uc.Recalculate(context.Background(), "sup-1", domain.SystemActor)
	if !errors.Is(err, domain.ErrRecalculationInProgress) {
		t.Fatalf("expected ErrRecalculationInProgress, got %v", err)
	}
}

func TestRecalcUseCase_Recalculate_ReleasesLock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lock := mocks.NewMockDistributedLock(ctrl)
	lock.EXPECT().Release(gomock.Any()).Return(nil)

	locker := mocks.NewMockLocker(ctrl)
	locker.EXPECT().
		Obtain(gomock.Any(), "recalc:sup-1", time.Minute).
		Return(lock, nil)

	f := newRecalcFixture(locker)
	f.supplierRepo.Seed(&domain.Supplier{ID: "sup-1", Balance: decimal.Zero})

	if _, err := f.uc.Recalculate(context.Background(), "sup-1", domain.SystemActor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecalcUseCase_Backfill(t *testing.T) {
	f := newRecalcFixture(nil)
	f.supplierRepo.Seed(&domain.Supplier{ID: "sup-1", Balance: decimal.Zero})

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	refundedAt := base.Add(72 * time.Hour)

	f.paymentRepo.Seed(&domain.Payment{
		ID:              "pay-1",
		SupplierID:      "sup-1",
		CreditsReceived: decimal.NewFromInt(200),
		CreatedAt:       base,
	})
	f.saleRepo.Seed(&domain.Sale{
		ID:            "sale-1",
		SupplierID:    "sup-1",
		PaymentMethod: domain.PaymentMethodServerCredit,
		AmountUSD:     decimal.NewFromInt(50),
		CreatedAt:     base.Add(24 * time.Hour),
	})
	f.saleRepo.Seed(&domain.Sale{
		ID:            "sale-2",
		SupplierID:    "sup-1",
		PaymentMethod: domain.PaymentMethodServerCredit,
		AmountUSD:     decimal.NewFromInt(30),
		RefundedAt:    &refundedAt,
		CreatedAt:     base.Add(48 * time.Hour),
	})
	// Direct sales and zero-credit payments leave no trace.
	f.saleRepo.Seed(&domain.Sale{
		ID:            "sale-3",
		SupplierID:    "sup-1",
		PaymentMethod: domain.PaymentMethodDirect,
		AmountUSD:     decimal.NewFromInt(500),
		CreatedAt:     base.Add(50 * time.Hour),
	})
	f.paymentRepo.Seed(&domain.Payment{
		ID:         "pay-2",
		SupplierID: "sup-1",
		CreatedAt:  base.Add(60 * time.Hour),
	})

	report, err := f.uc.Backfill(context.Background(), "sup-1", domain.Actor{ID: "op-9"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// payment +200, sale-1 -50, sale-2 -30, sale-2 refund +30.
	if report.RecordsScanned != 4 {
		t.Errorf("expected 4 synthesized records, got %d", report.RecordsScanned)
	}

	if report.FinalBalance.String() != "150" {
		t.Errorf("expected final balance 150, got %s", report.FinalBalance)
	}

	records, _ := f.recordRepo.ListHistory(context.Background(), nil, "sup-1")
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}

	// Chronological order: payment, sale-1 debit, sale-2 debit, refund.
	wantTypes := []domain.TransactionType{
		domain.TypePayment,
		domain.TypeSaleDebit,
		domain.TypeSaleDebit,
		domain.TypeSaleRefund,
	}
	for i, want := range wantTypes {
		if records[i].Type != want {
			t.Errorf("record %d: expected %s, got %s", i, want, records[i].Type)
		}
	}

	for _, record := range records {
		if !strings.Contains(record.Description, usecase.BackfillMarker) {
			t.Errorf("record %s is missing the backfill marker: %q", record.ID, record.Description)
		}
		if record.ActorID != "op-9" {
			t.Errorf("record %s: expected actor op-9, got %s", record.ID, record.ActorID)
		}
		if !record.BalanceAfter.Sub(record.BalanceBefore).Equal(record.Amount) {
			t.Errorf("record %s: snapshots do not pair with amount", record.ID)
		}
	}

	supplier, _ := f.supplierRepo.GetByID(context.Background(), "sup-1")
	if supplier.Balance.String() != "150" {
		t.Errorf("expected supplier balance 150, got %s", supplier.Balance)
	}
}

func TestRecalcUseCase_Backfill_RejectsExistingHistory(t *testing.T) {
	f := newRecalcFixture(nil)
	f.supplierRepo.Seed(&domain.Supplier{ID: "sup-1", Balance: decimal.NewFromInt(100)})
	seedRecord(f, "rec-1", domain.TypePayment, 100, 0, 100, time.Now())

	_, err := f.uc.Backfill(context.Background(), "sup-1", domain.SystemActor)
	if !errors.Is(err, domain.ErrHistoryExists) {
		t.Fatalf("expected ErrHistoryExists, got %v", err)
	}

	if len(f.recordRepo.Records()) != 1 {
		t.Error("rejected backfill must not add records")
	}
}

func TestRecalcUseCase_CheckConsistency(t *testing.T) {
	tests := []struct {
		name       string
		balance    decimal.Decimal
		amounts    []int64
		consistent bool
		difference string
	}{
		{
			name:       "balance matches record sum",
			balance:    decimal.NewFromInt(70),
			amounts:    []int64{100, -30},
			consistent: true,
			difference: "0",
		},
		{
			name:       "balance drifted",
			balance:    decimal.NewFromInt(80),
			amounts:    []int64{100, -30},
			consistent: false,
			difference: "10",
		},
		{
			name:       "no history",
			balance:    decimal.Zero,
			consistent: true,
			difference: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRecalcFixture(nil)
			f.supplierRepo.Seed(&domain.Supplier{ID: "sup-1", Balance: tt.balance})

			base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
			for i, amount := range tt.amounts {
				txType := domain.TypePayment
				if amount < 0 {
					txType = domain.TypeSaleDebit
				}
				seedRecord(f, "rec-"+string(rune('a'+i)), txType, amount, 0, amount, base.Add(time.Duration(i)*time.Hour))
			}

			result, err := f.uc.CheckConsistency(context.Background(), "sup-1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if result.Consistent != tt.consistent {
				t.Errorf("expected consistent=%v, got %v", tt.consistent, result.Consistent)
			}

			if result.Difference.String() != tt.difference {
				t.Errorf("expected difference %s, got %s", tt.difference, result.Difference)
			}
		})
	}
}
