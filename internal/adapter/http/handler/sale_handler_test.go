package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/resellerdesk/creditledger/internal/adapter/http/dto"
	"github.com/resellerdesk/creditledger/internal/adapter/http/middleware"
	"github.com/resellerdesk/creditledger/internal/domain"
	"github.com/resellerdesk/creditledger/internal/usecase"
)

type saleServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateSaleInput) (*domain.Sale, error)
	refundFn func(ctx context.Context, saleID string, actor domain.Actor) (*domain.Sale, error)
	getFn    func(ctx context.Context, id string) (*domain.Sale, error)
}

func (s *saleServiceStub) CreateSale(ctx context.Context, input usecase.CreateSaleInput) (*domain.Sale, error) {
	return s.createFn(ctx, input)
}

func (s *saleServiceStub) RefundSale(ctx context.Context, saleID string, actor domain.Actor) (*domain.Sale, error) {
	return s.refundFn(ctx, saleID, actor)
}

func (s *saleServiceStub) GetSale(ctx context.Context, id string) (*domain.Sale, error) {
	return s.getFn(ctx, id)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestSaleHandler_Create_Success(t *testing.T) {
	sale := &domain.Sale{
		ID:            "sale-1",
		SupplierID:    "sup-1",
		Client:        "acme",
		PaymentMethod: domain.PaymentMethodServerCredit,
		AmountUSD:     decimal.NewFromInt(30),
	}

	var captured usecase.CreateSaleInput
	handler := NewSaleHandler(&saleServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateSaleInput) (*domain.Sale, error) {
			captured = input
			return sale, nil
		},
	})

	body, _ := json.Marshal(dto.CreateSaleRequest{
		SupplierID:    "sup-1",
		Client:        "acme",
		PaymentMethod: "server_credit",
		AmountUSD:     decimal.NewFromInt(30),
		Items: []dto.SaleItemRequest{
			{Description: "vps credits", BasePrice: decimal.NewFromInt(15), Quantity: 2},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewReader(body))
	req.Header.Set("X-Actor-Id", "op-1")
	rec := httptest.NewRecorder()

	middleware.Actor(http.HandlerFunc(handler.Create)).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.SupplierID != "sup-1" || captured.PaymentMethod != domain.PaymentMethodServerCredit {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	if captured.Actor.ID != "op-1" {
		t.Fatalf("expected actor from header, got %+v", captured.Actor)
	}

	if len(captured.Items) != 1 || captured.Items[0].Quantity != 2 {
		t.Fatalf("expected one item with quantity 2, got %+v", captured.Items)
	}

	var resp dto.SaleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "sale-1" {
		t.Fatalf("expected sale ID sale-1, got %s", resp.ID)
	}
}

func TestSaleHandler_Create_WithoutSupplier(t *testing.T) {
	var captured usecase.CreateSaleInput
	handler := NewSaleHandler(&saleServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateSaleInput) (*domain.Sale, error) {
			captured = input
			return &domain.Sale{
				ID:            "sale-9",
				Client:        input.Client,
				PaymentMethod: input.PaymentMethod,
				AmountUSD:     input.AmountUSD,
			}, nil
		},
	})

	body, _ := json.Marshal(dto.CreateSaleRequest{
		Client:        "walk-in",
		PaymentMethod: "direct",
		AmountUSD:     decimal.NewFromInt(45),
	})

	req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	middleware.Actor(http.HandlerFunc(handler.Create)).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.SupplierID != "" {
		t.Fatalf("expected empty supplier, got %q", captured.SupplierID)
	}

	var resp dto.SaleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.SupplierID != "" {
		t.Fatalf("expected empty supplier in response, got %q", resp.SupplierID)
	}
}

func TestSaleHandler_Create_InvalidJSON(t *testing.T) {
	handler := NewSaleHandler(&saleServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateSaleInput) (*domain.Sale, error) {
			t.Fatal("CreateSale should not be called for invalid payload")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewBufferString("{invalid json"))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSaleHandler_Create_ValidationFailure(t *testing.T) {
	handler := NewSaleHandler(&saleServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateSaleInput) (*domain.Sale, error) {
			t.Fatal("CreateSale should not be called for invalid payload")
			return nil, nil
		},
	})

	// Unknown payment method.
	body, _ := json.Marshal(dto.CreateSaleRequest{
		SupplierID:    "sup-1",
		Client:        "acme",
		PaymentMethod: "barter",
	})

	req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSaleHandler_Create_InsufficientBalance(t *testing.T) {
	handler := NewSaleHandler(&saleServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateSaleInput) (*domain.Sale, error) {
			return nil, fmt.Errorf("create sale: %w", &domain.InsufficientBalanceError{
				SupplierID: "sup-1",
				Balance:    decimal.NewFromInt(10),
				Required:   decimal.NewFromInt(30),
			})
		},
	})

	body, _ := json.Marshal(dto.CreateSaleRequest{
		SupplierID:    "sup-1",
		Client:        "acme",
		PaymentMethod: "server_credit",
		AmountUSD:     decimal.NewFromInt(30),
	})

	req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestSaleHandler_Refund_Success(t *testing.T) {
	var gotID string
	var gotActor domain.Actor

	handler := NewSaleHandler(&saleServiceStub{
		refundFn: func(ctx context.Context, saleID string, actor domain.Actor) (*domain.Sale, error) {
			gotID = saleID
			gotActor = actor
			return &domain.Sale{ID: saleID, SupplierID: "sup-1", PaymentMethod: domain.PaymentMethodServerCredit}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/sales/sale-1/refund", nil)
	req.Header.Set("X-Actor-Id", "op-2")
	req = withURLParam(req, "id", "sale-1")
	rec := httptest.NewRecorder()

	middleware.Actor(http.HandlerFunc(handler.Refund)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if gotID != "sale-1" {
		t.Fatalf("expected sale-1, got %s", gotID)
	}

	if gotActor.ID != "op-2" {
		t.Fatalf("expected actor op-2, got %+v", gotActor)
	}
}

func TestSaleHandler_Refund_AlreadyRefunded(t *testing.T) {
	handler := NewSaleHandler(&saleServiceStub{
		refundFn: func(ctx context.Context, saleID string, actor domain.Actor) (*domain.Sale, error) {
			return nil, domain.ErrSaleAlreadyRefunded
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/sales/sale-1/refund", nil)
	req = withURLParam(req, "id", "sale-1")
	rec := httptest.NewRecorder()

	handler.Refund(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestSaleHandler_Get_NotFound(t *testing.T) {
	handler := NewSaleHandler(&saleServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Sale, error) {
			return nil, domain.ErrSaleNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/sales/missing", nil)
	req = withURLParam(req, "id", "missing")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
