package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/resellerdesk/creditledger/internal/domain"
	"github.com/resellerdesk/creditledger/internal/usecase"
)

// SupplierResponse represents a supplier in API responses.
type SupplierResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Website         string          `json:"website,omitempty"`
	Balance         decimal.Decimal `json:"balance"`
	PaymentCurrency string          `json:"payment_currency"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// SupplierFromDomain converts a domain supplier to a response.
func SupplierFromDomain(s *domain.Supplier) *SupplierResponse {
	return &SupplierResponse{
		ID:              s.ID,
		Name:            s.Name,
		Website:         s.Website,
		Balance:         s.Balance,
		PaymentCurrency: string(s.PaymentCurrency),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// SuppliersFromDomain converts domain suppliers to responses.
func SuppliersFromDomain(suppliers []*domain.Supplier) []*SupplierResponse {
	result := make([]*SupplierResponse, len(suppliers))
	for i, s := range suppliers {
		result[i] = SupplierFromDomain(s)
	}
	return result
}

// ListSuppliersResponse wraps a supplier listing.
type ListSuppliersResponse struct {
	Suppliers []*SupplierResponse `json:"suppliers"`
	Total     int64               `json:"total"`
}

// TransactionRecordResponse represents an audit trail entry in API responses.
type TransactionRecordResponse struct {
	ID            string          `json:"id"`
	SupplierID    string          `json:"supplier_id"`
	Type          string          `json:"type"`
	TypeLabel     string          `json:"type_label"`
	TypeColor     string          `json:"type_color"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	ReferenceKind string          `json:"reference_kind,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	Description   string          `json:"description,omitempty"`
	ActorID       string          `json:"actor_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

// RecordFromDomain converts a domain transaction record to a response.
func RecordFromDomain(r *domain.TransactionRecord) *TransactionRecordResponse {
	return &TransactionRecordResponse{
		ID:            r.ID,
		SupplierID:    r.SupplierID,
		Type:          string(r.Type),
		TypeLabel:     r.Type.DisplayName(),
		TypeColor:     r.Type.ColorTag(),
		Amount:        r.Amount,
		BalanceBefore: r.BalanceBefore,
		BalanceAfter:  r.BalanceAfter,
		ReferenceKind: string(r.Reference.Kind),
		ReferenceID:   r.Reference.ID,
		Description:   r.Description,
		ActorID:       r.ActorID,
		CreatedAt:     r.CreatedAt,
	}
}

// RecordsFromDomain converts domain transaction records to responses.
func RecordsFromDomain(records []*domain.TransactionRecord) []*TransactionRecordResponse {
	result := make([]*TransactionRecordResponse, len(records))
	for i, r := range records {
		result[i] = RecordFromDomain(r)
	}
	return result
}

// ListRecordsResponse wraps an audit trail listing.
type ListRecordsResponse struct {
	Records []*TransactionRecordResponse `json:"records"`
	Total   int64                        `json:"total"`
}

// SaleItemResponse represents a sale line in API responses.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Quantity    int64           `json:"quantity"`
}

// SaleResponse represents a sale in API responses.
type SaleResponse struct {
	ID            string             `json:"id"`
	SupplierID    string             `json:"supplier_id"`
	Client        string             `json:"client"`
	PaymentMethod string             `json:"payment_method"`
	AmountUSD     decimal.Decimal    `json:"amount_usd"`
	CostBasis     decimal.Decimal    `json:"cost_basis"`
	Items         []SaleItemResponse `json:"items,omitempty"`
	RefundedAt    *time.Time         `json:"refunded_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// SaleFromDomain converts a domain sale to a response.
func SaleFromDomain(s *domain.Sale) *SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i, item := range s.Items {
		items[i] = SaleItemResponse{
			ID:          item.ID,
			Description: item.Description,
			BasePrice:   item.BasePrice,
			Quantity:    item.Quantity,
		}
	}

	return &SaleResponse{
		ID:            s.ID,
		SupplierID:    s.SupplierID,
		Client:        s.Client,
		PaymentMethod: string(s.PaymentMethod),
		AmountUSD:     s.AmountUSD,
		CostBasis:     s.CostBasis(),
		Items:         items,
		RefundedAt:    s.RefundedAt,
		CreatedAt:     s.CreatedAt,
	}
}

// PaymentResponse represents a supplier payment in API responses.
type PaymentResponse struct {
	ID              string          `json:"id"`
	SupplierID      string          `json:"supplier_id"`
	CreditsReceived decimal.Decimal `json:"credits_received"`
	Description     string          `json:"description,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// PaymentFromDomain converts a domain payment to a response.
func PaymentFromDomain(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:              p.ID,
		SupplierID:      p.SupplierID,
		CreditsReceived: p.CreditsReceived,
		Description:     p.Description,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ConsistencyResponse reports the balance-vs-history check for a supplier.
type ConsistencyResponse struct {
	SupplierID string          `json:"supplier_id"`
	Balance    decimal.Decimal `json:"balance"`
	RecordSum  decimal.Decimal `json:"record_sum"`
	Difference decimal.Decimal `json:"difference"`
	Consistent bool            `json:"consistent"`
	CheckedAt  time.Time       `json:"checked_at"`
}

// ConsistencyFromUseCase converts a consistency result to a response.
func ConsistencyFromUseCase(r *usecase.ConsistencyResult) *ConsistencyResponse {
	return &ConsistencyResponse{
		SupplierID: r.SupplierID,
		Balance:    r.Balance,
		RecordSum:  r.RecordSum,
		Difference: r.Difference,
		Consistent: r.Consistent,
		CheckedAt:  r.CheckedAt,
	}
}

// JobEnqueuedResponse acknowledges a queued background job.
type JobEnqueuedResponse struct {
	SupplierID string `json:"supplier_id"`
	Task       string `json:"task"`
	TaskID     string `json:"task_id"`
	Queue      string `json:"queue"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
