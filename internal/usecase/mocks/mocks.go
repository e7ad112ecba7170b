package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/usecase"
)

// stage defers fn until tx commits. Transactions that are not *MockTransaction
// apply fn immediately.
func stage(tx usecase.Transaction, fn func()) {
	if mt, ok := tx.(*MockTransaction); ok {
		mt.stage(fn)
		return
	}
	fn()
}

// claim reserves a unique key within tx so two staged rows cannot share it.
func claim(tx usecase.Transaction, key string) bool {
	if mt, ok := tx.(*MockTransaction); ok {
		return mt.claim(key)
	}
	return true
}

func rateKey(currencyID string, rateType domain.RateType, day time.Time) string {
	return currencyID + "|" + string(rateType) + "|" + day.Format(time.DateOnly)
}

// MockCurrencyRepository is a mock implementation of CurrencyRepository.
type MockCurrencyRepository struct {
	mu         sync.RWMutex
	currencies map[string]*domain.Currency

	CreateFunc    func(ctx context.Context, tx usecase.Transaction, currency *domain.Currency) error
	ExistsFunc    func(ctx context.Context) (bool, error)
	GetByIDFunc   func(ctx context.Context, id string) (*domain.Currency, error)
	GetByCodeFunc func(ctx context.Context, code string) (*domain.Currency, error)
	ListFunc      func(ctx context.Context) ([]*domain.Currency, error)
}

func NewMockCurrencyRepository() *MockCurrencyRepository {
	return &MockCurrencyRepository{
		currencies: make(map[string]*domain.Currency),
	}
}

// Add stores a committed currency directly.
func (m *MockCurrencyRepository) Add(currency *domain.Currency) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currencies[currency.ID] = currency
}

func (m *MockCurrencyRepository) Create(ctx context.Context, tx usecase.Transaction, currency *domain.Currency) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, currency)
	}
	m.mu.RLock()
	for _, c := range m.currencies {
		if c.Code == currency.Code && c.DeletedAt == nil {
			m.mu.RUnlock()
			return fmt.Errorf("duplicate currency code %s", currency.Code)
		}
	}
	m.mu.RUnlock()
	if !claim(tx, "currency:"+currency.Code) {
		return fmt.Errorf("duplicate currency code %s", currency.Code)
	}
	stage(tx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.currencies[currency.ID] = currency
	})
	return nil
}

func (m *MockCurrencyRepository) Exists(ctx context.Context) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.currencies) > 0, nil
}

func (m *MockCurrencyRepository) GetByID(ctx context.Context, id string) (*domain.Currency, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.currencies[id]; ok && c.DeletedAt == nil {
		return c, nil
	}
	return nil, domain.ErrCurrencyNotFound
}

func (m *MockCurrencyRepository) GetByCode(ctx context.Context, code string) (*domain.Currency, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.currencies {
		if c.Code == code && c.DeletedAt == nil {
			return c, nil
		}
	}
	return nil, domain.ErrCurrencyNotFound
}

func (m *MockCurrencyRepository) List(ctx context.Context) ([]*domain.Currency, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var currencies []*domain.Currency
	for _, c := range m.currencies {
		if c.DeletedAt == nil {
			currencies = append(currencies, c)
		}
	}
	sort.Slice(currencies, func(i, j int) bool { return currencies[i].Code < currencies[j].Code })
	return currencies, nil
}

// CountByCode returns how many stored currencies carry code.
func (m *MockCurrencyRepository) CountByCode(code string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, c := range m.currencies {
		if c.Code == code {
			n++
		}
	}
	return n
}

// Len returns the number of stored currencies.
func (m *MockCurrencyRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.currencies)
}

// MockRateTypeRepository is a mock implementation of RateTypeRepository.
// Inserting an existing type is ignored, matching ON CONFLICT DO NOTHING.
type MockRateTypeRepository struct {
	mu    sync.RWMutex
	types []domain.RateType

	CreateFunc func(ctx context.Context, tx usecase.Transaction, rateType domain.RateType) error
	ExistsFunc func(ctx context.Context) (bool, error)
	HasFunc    func(ctx context.Context, rateType domain.RateType) (bool, error)
}

func NewMockRateTypeRepository() *MockRateTypeRepository {
	return &MockRateTypeRepository{}
}

// Add stores a committed rate type directly.
func (m *MockRateTypeRepository) Add(rateType domain.RateType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.types = append(m.types, rateType)
}

func (m *MockRateTypeRepository) Create(ctx context.Context, tx usecase.Transaction, rateType domain.RateType) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, rateType)
	}
	if ok, _ := m.Has(ctx, rateType); ok || !claim(tx, "rate_type:"+string(rateType)) {
		return nil
	}
	stage(tx, func() { m.Add(rateType) })
	return nil
}

func (m *MockRateTypeRepository) Exists(ctx context.Context) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.types) > 0, nil
}

func (m *MockRateTypeRepository) Has(ctx context.Context, rateType domain.RateType) (bool, error) {
	if m.HasFunc != nil {
		return m.HasFunc(ctx, rateType)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.types {
		if t == rateType {
			return true, nil
		}
	}
	return false, nil
}

// Len returns the number of stored rate type rows.
func (m *MockRateTypeRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.types)
}

// MockExchangeRateRepository is a mock implementation of ExchangeRateRepository.
type MockExchangeRateRepository struct {
	mu    sync.RWMutex
	rates map[string]*domain.ExchangeRate

	CreateBatchFunc func(ctx context.Context, tx usecase.Transaction, rates []*domain.ExchangeRate) (int64, error)
	GetFunc         func(ctx context.Context, currencyID string, rateType domain.RateType, day time.Time) (*domain.ExchangeRate, error)
}

func NewMockExchangeRateRepository() *MockExchangeRateRepository {
	return &MockExchangeRateRepository{
		rates: make(map[string]*domain.ExchangeRate),
	}
}

// Add stores a committed rate directly.
func (m *MockExchangeRateRepository) Add(rate *domain.ExchangeRate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rates[rateKey(rate.CurrencyID, rate.RateType, rate.RateDate)] = rate
}

func (m *MockExchangeRateRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, rates []*domain.ExchangeRate) (int64, error) {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, tx, rates)
	}
	var inserted int64
	for _, rate := range rates {
		key := rateKey(rate.CurrencyID, rate.RateType, rate.RateDate)
		m.mu.RLock()
		_, exists := m.rates[key]
		m.mu.RUnlock()
		if exists || !claim(tx, "rate:"+key) {
			continue
		}
		inserted++
		stage(tx, func() { m.Add(rate) })
	}
	return inserted, nil
}

func (m *MockExchangeRateRepository) Get(ctx context.Context, currencyID string, rateType domain.RateType, day time.Time) (*domain.ExchangeRate, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, currencyID, rateType, day)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if rate, ok := m.rates[rateKey(currencyID, rateType, day)]; ok {
		return rate, nil
	}
	return nil, domain.ErrExchangeRateNotFound
}

// All returns every stored rate.
func (m *MockExchangeRateRepository) All() []*domain.ExchangeRate {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rates := make([]*domain.ExchangeRate, 0, len(m.rates))
	for _, r := range m.rates {
		rates = append(rates, r)
	}
	return rates
}

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc     func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.Account, error)
	ListByUserFunc func(ctx context.Context, userID string, limit, offset int) ([]*domain.Account, error)
	SoftDeleteFunc func(ctx context.Context, tx usecase.Transaction, id string, deletedAt time.Time) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Add stores a committed account directly.
func (m *MockAccountRepository) Add(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

func (m *MockAccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, account)
	}
	stage(tx, func() { m.Add(account) })
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Account, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		if acc.UserID == userID && acc.DeletedAt == nil {
			accounts = append(accounts, acc)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return page(accounts, limit, offset), nil
}

func (m *MockAccountRepository) SoftDelete(ctx context.Context, tx usecase.Transaction, id string, deletedAt time.Time) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, tx, id, deletedAt)
	}
	stage(tx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if acc, ok := m.accounts[id]; ok {
			acc.DeletedAt = &deletedAt
		}
	})
	return nil
}

// Len returns the number of stored accounts.
func (m *MockAccountRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.accounts)
}

// MockCashflowRepository is a mock implementation of CashflowRepository.
// Document numbers are unique across all stored documents.
type MockCashflowRepository struct {
	mu        sync.RWMutex
	cashflows map[string]*domain.Cashflow
	documents map[string]*domain.CashflowDocument

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, cashflow *domain.Cashflow) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.Cashflow, error)
	ListByAccountFunc func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Cashflow, error)
}

func NewMockCashflowRepository() *MockCashflowRepository {
	return &MockCashflowRepository{
		cashflows: make(map[string]*domain.Cashflow),
		documents: make(map[string]*domain.CashflowDocument),
	}
}

func (m *MockCashflowRepository) Create(ctx context.Context, tx usecase.Transaction, cashflow *domain.Cashflow) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, cashflow)
	}
	doc := cashflow.Document
	if doc == nil {
		return fmt.Errorf("cashflow %s has no document", cashflow.ID)
	}
	m.mu.RLock()
	for _, d := range m.documents {
		if d.DocumentNumber == doc.DocumentNumber {
			m.mu.RUnlock()
			return fmt.Errorf("duplicate document number %s", doc.DocumentNumber)
		}
	}
	m.mu.RUnlock()
	if !claim(tx, "document:"+doc.DocumentNumber) {
		return fmt.Errorf("duplicate document number %s", doc.DocumentNumber)
	}
	stage(tx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.cashflows[cashflow.ID] = cashflow
		m.documents[doc.ID] = doc
	})
	return nil
}

func (m *MockCashflowRepository) GetByID(ctx context.Context, id string) (*domain.Cashflow, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if cf, ok := m.cashflows[id]; ok && cf.DeletedAt == nil {
		return cf, nil
	}
	return nil, domain.ErrCashflowNotFound
}

func (m *MockCashflowRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Cashflow, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var cashflows []*domain.Cashflow
	for _, cf := range m.cashflows {
		if cf.AccountID == accountID && cf.DeletedAt == nil {
			cashflows = append(cashflows, cf)
		}
	}
	sort.Slice(cashflows, func(i, j int) bool { return cashflows[i].ID > cashflows[j].ID })
	return page(cashflows, limit, offset), nil
}

// Cashflows returns every stored cashflow.
func (m *MockCashflowRepository) Cashflows() []*domain.Cashflow {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cashflows := make([]*domain.Cashflow, 0, len(m.cashflows))
	for _, cf := range m.cashflows {
		cashflows = append(cashflows, cf)
	}
	return cashflows
}

// Documents returns every stored document.
func (m *MockCashflowRepository) Documents() []*domain.CashflowDocument {
	m.mu.RLock()
	defer m.mu.RUnlock()
	docs := make([]*domain.CashflowDocument, 0, len(m.documents))
	for _, d := range m.documents {
		docs = append(docs, d)
	}
	return docs
}

// MockIncomeExpenseRepository is a mock implementation of IncomeExpenseRepository.
type MockIncomeExpenseRepository struct {
	mu         sync.RWMutex
	categories map[string]*domain.IncomeExpense

	CreateFunc     func(ctx context.Context, tx usecase.Transaction, category *domain.IncomeExpense) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.IncomeExpense, error)
	ListByUserFunc func(ctx context.Context, userID string) ([]*domain.IncomeExpense, error)
}

func NewMockIncomeExpenseRepository() *MockIncomeExpenseRepository {
	return &MockIncomeExpenseRepository{
		categories: make(map[string]*domain.IncomeExpense),
	}
}

func (m *MockIncomeExpenseRepository) Create(ctx context.Context, tx usecase.Transaction, category *domain.IncomeExpense) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, category)
	}
	stage(tx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.categories[category.ID] = category
	})
	return nil
}

func (m *MockIncomeExpenseRepository) GetByID(ctx context.Context, id string) (*domain.IncomeExpense, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.categories[id]; ok && c.DeletedAt == nil {
		return c, nil
	}
	return nil, domain.ErrIncomeExpenseNotFound
}

func (m *MockIncomeExpenseRepository) ListByUser(ctx context.Context, userID string) ([]*domain.IncomeExpense, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var categories []*domain.IncomeExpense
	for _, c := range m.categories {
		if c.UserID == userID && c.DeletedAt == nil {
			categories = append(categories, c)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc          func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
	GetUnpublishedFunc  func(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublishedFunc   func(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublishedFunc func(ctx context.Context, before time.Time) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	stage(tx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.events = append(m.events, event)
	})
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var events []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			events = append(events, e)
		}
	}
	return page(events, limit, 0), nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	if m.DeletePublishedFunc != nil {
		return m.DeletePublishedFunc(ctx, before)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.events[:0]
	for _, e := range m.events {
		if e.Published && e.PublishedAt != nil && e.PublishedAt.Before(before) {
			continue
		}
		kept = append(kept, e)
	}
	m.events = kept
	return nil
}

// Events returns every stored event.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.OutboxEvent(nil), m.events...)
}

// EventsOfType returns the stored events of one type.
func (m *MockOutboxRepository) EventsOfType(eventType string) []*domain.OutboxEvent {
	var events []*domain.OutboxEvent
	for _, e := range m.Events() {
		if e.EventType == eventType {
			events = append(events, e)
		}
	}
	return events
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	mu           sync.Mutex
	transactions []*MockTransaction

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
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
	m.transactions = append(m.transactions, tx)
	m.mu.Unlock()
	return tx, nil
}

// Transactions returns every transaction begun through the manager.
func (m *MockTransactionManager) Transactions() []*MockTransaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*MockTransaction(nil), m.transactions...)
}

// MockTransaction is a mock implementation of Transaction.
// Writes staged through it become visible only after Commit.
type MockTransaction struct {
	mu         sync.Mutex
	staged     []func()
	claimed    map[string]bool
	committed  bool
	rolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) stage(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.staged = append(m.staged, fn)
}

func (m *MockTransaction) claim(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.claimed == nil {
		m.claimed = make(map[string]bool)
	}
	if m.claimed[key] {
		return false
	}
	m.claimed[key] = true
	return true
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		if err := m.CommitFunc(ctx); err != nil {
			return err
		}
	}
	m.mu.Lock()
	staged := m.staged
	m.staged = nil
	m.committed = true
	m.mu.Unlock()

	for _, fn := range staged {
		fn()
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.committed {
		return nil
	}
	m.staged = nil
	m.rolledBack = true
	return nil
}

// Committed reports whether Commit succeeded.
func (m *MockTransaction) Committed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.committed
}

// RolledBack reports whether the transaction was rolled back before commit.
func (m *MockTransaction) RolledBack() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rolledBack
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%04d", m.counter)
}

// MockDocumentNumberGenerator is a mock implementation of DocumentNumberGenerator.
type MockDocumentNumberGenerator struct {
	NextFunc func(at time.Time) string
	counter  int
	mu       sync.Mutex
}

func NewMockDocumentNumberGenerator() *MockDocumentNumberGenerator {
	return &MockDocumentNumberGenerator{}
}

func (m *MockDocumentNumberGenerator) Next(at time.Time) string {
	if m.NextFunc != nil {
		return m.NextFunc(at)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("CF-%s-%06d", at.Format("20060102"), m.counter)
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
	ReleaseFunc     func(ctx context.Context, key string) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Get returns the stored value for key.
func (m *MockIdempotencyStore) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
