package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/resellerdesk/creditledger/internal/domain"
	"github.com/resellerdesk/creditledger/internal/usecase"
	"github.com/resellerdesk/creditledger/internal/usecase/mocks"
)

// The full supplier lifecycle against one shared set of repositories:
// record a payment, sell against the credit, refund, then verify that the
// consistency check and a recalculation both agree with the live balance.
func TestSupplierLifecycle(t *testing.T) {
	ctx := context.Background()

	supplierRepo := mocks.NewMockSupplierRepository()
	saleRepo := mocks.NewMockSaleRepository()
	paymentRepo := mocks.NewMockPaymentRepository()
	recordRepo := mocks.NewMockTransactionRepository()
	txMgr := mocks.NewMockTransactionManager()
	idGen := mocks.NewSequenceIDGenerator()

	ledger := usecase.NewLedgerUseCase(txMgr, supplierRepo, recordRepo, idGen, nil, nil, nil)
	saleUC := usecase.NewSaleUseCase(txMgr, saleRepo, supplierRepo, ledger, idGen, zerolog.Nop())
	paymentUC := usecase.NewPaymentUseCase(txMgr, paymentRepo, supplierRepo, ledger, idGen, zerolog.Nop())
	recalcUC := usecase.NewRecalcUseCase(txMgr, supplierRepo, recordRepo, saleRepo, paymentRepo, idGen, nil, nil, time.Minute, zerolog.Nop(), nil)

	supplierRepo.Seed(&domain.Supplier{ID: "sup-1", Name: "Acme Hosting", Balance: decimal.Zero})

	balance := func() string {
		supplier, err := supplierRepo.GetByID(ctx, "sup-1")
		if err != nil {
			t.Fatalf("get supplier: %v", err)
		}
		return supplier.Balance.String()
	}

	// Payment of 100 credits.
	if _, err := paymentUC.RecordPayment(ctx, usecase.RecordPaymentInput{
		SupplierID:      "sup-1",
		CreditsReceived: decimal.NewFromInt(100),
		Description:     "initial top-up",
	}); err != nil {
		t.Fatalf("record payment: %v", err)
	}

	if got := balance(); got != "100" {
		t.Fatalf("after payment: expected 100, got %s", got)
	}

	// Credit-funded sale costing 30.
	sale, err := saleUC.CreateSale(ctx, usecase.CreateSaleInput{
		SupplierID:    "sup-1",
		Client:        "customer-a",
		PaymentMethod: domain.PaymentMethodServerCredit,
		Items: []usecase.SaleItemInput{
			{Description: "vps credits", BasePrice: decimal.NewFromInt(15), Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}

	if got := balance(); got != "70" {
		t.Fatalf("after sale: expected 70, got %s", got)
	}

	// Refund restores the debited cost basis.
	if _, err := saleUC.RefundSale(ctx, sale.ID, domain.Actor{ID: "op-1"}); err != nil {
		t.Fatalf("refund sale: %v", err)
	}

	if got := balance(); got != "100" {
		t.Fatalf("after refund: expected 100, got %s", got)
	}

	// Three ledger records, snapshots chained.
	records := recordRepo.Records()
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i := 1; i < len(records); i++ {
		if !records[i].BalanceBefore.Equal(records[i-1].BalanceAfter) {
			t.Errorf("record %d: snapshot chain broken (%s != %s)",
				i, records[i].BalanceBefore, records[i-1].BalanceAfter)
		}
	}

	// Live-written histories sum to the balance directly.
	consistency, err := recalcUC.CheckConsistency(ctx, "sup-1")
	if err != nil {
		t.Fatalf("check consistency: %v", err)
	}
	if !consistency.Consistent {
		t.Errorf("expected consistent ledger, difference %s", consistency.Difference)
	}

	// A recalculation over a healthy history is a no-op.
	report, err := recalcUC.Recalculate(ctx, "sup-1", domain.SystemActor)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if report.RecordsRepaired != 0 {
		t.Errorf("expected no repairs on healthy history, got %d", report.RecordsRepaired)
	}
	if report.FinalBalance.String() != "100" {
		t.Errorf("expected replayed balance 100, got %s", report.FinalBalance)
	}
}
