package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/resellerdesk/creditledger/internal/domain"
	"github.com/resellerdesk/creditledger/internal/usecase"
)

// MockSupplierRepository is a mock implementation of SupplierRepository.
type MockSupplierRepository struct {
	mu        sync.RWMutex
	suppliers map[string]*domain.Supplier

	CreateFunc           func(ctx context.Context, supplier *domain.Supplier) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Supplier, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Supplier, error)
	UpdateBalanceFunc    func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	ListFunc             func(ctx context.Context, limit, offset int) ([]*domain.Supplier, error)
}

func NewMockSupplierRepository() *MockSupplierRepository {
	return &MockSupplierRepository{
		suppliers: make(map[string]*domain.Supplier),
	}
}

// Seed stores a supplier directly, bypassing any CreateFunc override.
func (m *MockSupplierRepository) Seed(supplier *domain.Supplier) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suppliers[supplier.ID] = supplier
}

func (m *MockSupplierRepository) Create(ctx context.Context, supplier *domain.Supplier) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, supplier)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suppliers[supplier.ID] = supplier
	return nil
}

func (m *MockSupplierRepository) GetByID(ctx context.Context, id string) (*domain.Supplier, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.suppliers[id]; ok {
		return s, nil
	}
	return nil, domain.ErrSupplierNotFound
}

func (m *MockSupplierRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Supplier, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockSupplierRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.suppliers[id]
	if !ok {
		return domain.ErrSupplierNotFound
	}
	s.Balance = balance
	s.UpdatedAt = updatedAt
	return nil
}

func (m *MockSupplierRepository) List(ctx context.Context, limit, offset int) ([]*domain.Supplier, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var suppliers []*domain.Supplier
	for _, s := range m.suppliers {
		suppliers = append(suppliers, s)
	}
	sort.Slice(suppliers, func(i, j int) bool { return suppliers[i].ID < suppliers[j].ID })
	return suppliers, nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu      sync.RWMutex
	records []*domain.TransactionRecord

	CreateFunc          func(ctx context.Context, tx usecase.Transaction, record *domain.TransactionRecord) error
	GetByIDFunc         func(ctx context.Context, id string) (*domain.TransactionRecord, error)
	ListBySupplierFunc  func(ctx context.Context, supplierID string, limit, offset int) ([]*domain.TransactionRecord, error)
	ListHistoryFunc     func(ctx context.Context, tx usecase.Transaction, supplierID string) ([]*domain.TransactionRecord, error)
	UpdateSnapshotsFunc func(ctx context.Context, tx usecase.Transaction, id string, before, after decimal.Decimal) error
	CountBySupplierFunc func(ctx context.Context, supplierID string) (int64, error)
	SumAmountsFunc      func(ctx context.Context, supplierID string) (decimal.Decimal, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

// Records returns all stored records in insertion order.
func (m *MockTransactionRepository) Records() []*domain.TransactionRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.TransactionRecord, len(m.records))
	copy(out, m.records)
	return out
}

// Seed stores a record directly, bypassing any CreateFunc override.
func (m *MockTransactionRepository) Seed(record *domain.TransactionRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, record *domain.TransactionRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.TransactionRecord, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) ListBySupplier(ctx context.Context, supplierID string, limit, offset int) ([]*domain.TransactionRecord, error) {
	if m.ListBySupplierFunc != nil {
		return m.ListBySupplierFunc(ctx, supplierID, limit, offset)
	}
	history, _ := m.ListHistory(ctx, nil, supplierID)
	// Newest first.
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	if offset >= len(history) {
		return nil, nil
	}
	history = history[offset:]
	if limit > 0 && limit < len(history) {
		history = history[:limit]
	}
	return history, nil
}

func (m *MockTransactionRepository) ListHistory(ctx context.Context, tx usecase.Transaction, supplierID string) ([]*domain.TransactionRecord, error) {
	if m.ListHistoryFunc != nil {
		return m.ListHistoryFunc(ctx, tx, supplierID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var history []*domain.TransactionRecord
	for _, r := range m.records {
		if r.SupplierID == supplierID {
			history = append(history, r)
		}
	}
	// Chronological, insertion order breaking timestamp ties.
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].CreatedAt.Before(history[j].CreatedAt)
	})
	return history, nil
}

func (m *MockTransactionRepository) UpdateSnapshots(ctx context.Context, tx usecase.Transaction, id string, before, after decimal.Decimal) error {
	if m.UpdateSnapshotsFunc != nil {
		return m.UpdateSnapshotsFunc(ctx, tx, id, before, after)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.ID == id {
			r.BalanceBefore = before
			r.BalanceAfter = after
			return nil
		}
	}
	return domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) CountBySupplier(ctx context.Context, supplierID string) (int64, error) {
	if m.CountBySupplierFunc != nil {
		return m.CountBySupplierFunc(ctx, supplierID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, r := range m.records {
		if r.SupplierID == supplierID {
			count++
		}
	}
	return count, nil
}

func (m *MockTransactionRepository) SumAmounts(ctx context.Context, supplierID string) (decimal.Decimal, error) {
	if m.SumAmountsFunc != nil {
		return m.SumAmountsFunc(ctx, supplierID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, r := range m.records {
		if r.SupplierID == supplierID {
			sum = sum.Add(r.Amount)
		}
	}
	return sum, nil
}

// MockSaleRepository is a mock implementation of SaleRepository.
type MockSaleRepository struct {
	mu    sync.RWMutex
	sales map[string]*domain.Sale

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, sale *domain.Sale) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Sale, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Sale, error)
	MarkRefundedFunc     func(ctx context.Context, tx usecase.Transaction, id string, refundedAt time.Time) error
	ListBySupplierFunc   func(ctx context.Context, supplierID string) ([]*domain.Sale, error)
}

func NewMockSaleRepository() *MockSaleRepository {
	return &MockSaleRepository{
		sales: make(map[string]*domain.Sale),
	}
}

// Seed stores a sale directly.
func (m *MockSaleRepository) Seed(sale *domain.Sale) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sales[sale.ID] = sale
}

func (m *MockSaleRepository) Create(ctx context.Context, tx usecase.Transaction, sale *domain.Sale) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, sale)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sales[sale.ID] = sale
	return nil
}

func (m *MockSaleRepository) GetByID(ctx context.Context, id string) (*domain.Sale, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sales[id]; ok {
		return s, nil
	}
	return nil, domain.ErrSaleNotFound
}

func (m *MockSaleRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Sale, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockSaleRepository) MarkRefunded(ctx context.Context, tx usecase.Transaction, id string, refundedAt time.Time) error {
	if m.MarkRefundedFunc != nil {
		return m.MarkRefundedFunc(ctx, tx, id, refundedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sales[id]
	if !ok {
		return domain.ErrSaleNotFound
	}
	s.RefundedAt = &refundedAt
	return nil
}

func (m *MockSaleRepository) ListBySupplier(ctx context.Context, supplierID string) ([]*domain.Sale, error) {
	if m.ListBySupplierFunc != nil {
		return m.ListBySupplierFunc(ctx, supplierID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sales []*domain.Sale
	for _, s := range m.sales {
		if s.SupplierID == supplierID {
			sales = append(sales, s)
		}
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].CreatedAt.Before(sales[j].CreatedAt) })
	return sales, nil
}

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Payment, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Payment, error)
	UpdateCreditsFunc    func(ctx context.Context, tx usecase.Transaction, id string, credits decimal.Decimal, description string, updatedAt time.Time) error
	DeleteFunc           func(ctx context.Context, tx usecase.Transaction, id string) error
	ListBySupplierFunc   func(ctx context.Context, supplierID string) ([]*domain.Payment, error)
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		payments: make(map[string]*domain.Payment),
	}
}

// Seed stores a payment directly.
func (m *MockPaymentRepository) Seed(payment *domain.Payment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[payment.ID] = payment
}

func (m *MockPaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, payment)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[payment.ID] = payment
	return nil
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.payments[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPaymentNotFound
}

func (m *MockPaymentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Payment, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockPaymentRepository) UpdateCredits(ctx context.Context, tx usecase.Transaction, id string, credits decimal.Decimal, description string, updatedAt time.Time) error {
	if m.UpdateCreditsFunc != nil {
		return m.UpdateCreditsFunc(ctx, tx, id, credits, description, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok {
		return domain.ErrPaymentNotFound
	}
	p.CreditsReceived = credits
	p.Description = description
	p.UpdatedAt = updatedAt
	return nil
}

func (m *MockPaymentRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.payments[id]; !ok {
		return domain.ErrPaymentNotFound
	}
	delete(m.payments, id)
	return nil
}

func (m *MockPaymentRepository) ListBySupplier(ctx context.Context, supplierID string) ([]*domain.Payment, error) {
	if m.ListBySupplierFunc != nil {
		return m.ListBySupplierFunc(ctx, supplierID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var payments []*domain.Payment
	for _, p := range m.payments {
		if p.SupplierID == supplierID {
			payments = append(payments, p)
		}
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].CreatedAt.Before(payments[j].CreatedAt) })
	return payments, nil
}

// MockTransaction is a no-op transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	mu      sync.Mutex
	started []*MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	tx := &MockTransaction{}
	m.mu.Lock()
	m.started = append(m.started, tx)
	m.mu.Unlock()
	return tx, nil
}

// Started returns all transactions handed out so far.
func (m *MockTransactionManager) Started() []*MockTransaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*MockTransaction, len(m.started))
	copy(out, m.started)
	return out
}

// MockRetrier runs the operation once without retries.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// SequenceIDGenerator generates deterministic sequential IDs for tests.
type SequenceIDGenerator struct {
	mu   sync.Mutex
	next int
}

func NewSequenceIDGenerator() *SequenceIDGenerator {
	return &SequenceIDGenerator{}
}

func (g *SequenceIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return "id-" + pad(g.next)
}

func pad(n int) string {
	const digits = "0123456789"
	out := make([]byte, 4)
	for i := 3; i >= 0; i-- {
		out[i] = digits[n%10]
		n /= 10
	}
	return string(out)
}
