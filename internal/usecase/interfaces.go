package usecase

import (
	"context"
	"time"

	"github.com/iho/walletledger/internal/domain"
)

// CurrencyRepository defines data access for the currency catalog.
type CurrencyRepository interface {
	Create(ctx context.Context, tx Transaction, currency *domain.Currency) error
	Exists(ctx context.Context) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.Currency, error)
	GetByCode(ctx context.Context, code string) (*domain.Currency, error)
	List(ctx context.Context) ([]*domain.Currency, error)
}

// RateTypeRepository defines data access for the seeded exchange rate types.
type RateTypeRepository interface {
	Create(ctx context.Context, tx Transaction, rateType domain.RateType) error
	Exists(ctx context.Context) (bool, error)
	Has(ctx context.Context, rateType domain.RateType) (bool, error)
}

// ExchangeRateRepository defines data access for daily exchange rates.
type ExchangeRateRepository interface {
	// CreateBatch stores rates in one round-trip. Rows that already exist for
	// the same (currency, rate type, date) are left untouched and not counted.
	CreateBatch(ctx context.Context, tx Transaction, rates []*domain.ExchangeRate) (int64, error)
	Get(ctx context.Context, currencyID string, rateType domain.RateType, day time.Time) (*domain.ExchangeRate, error)
}

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Account, error)
	SoftDelete(ctx context.Context, tx Transaction, id string, deletedAt time.Time) error
}

// CashflowRepository defines data access for cashflows and their documents.
type CashflowRepository interface {
	// Create stores the cashflow together with its attached document.
	Create(ctx context.Context, tx Transaction, cashflow *domain.Cashflow) error
	GetByID(ctx context.Context, id string) (*domain.Cashflow, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Cashflow, error)
}

// IncomeExpenseRepository defines data access for income/expense categories.
type IncomeExpenseRepository interface {
	Create(ctx context.Context, tx Transaction, category *domain.IncomeExpense) error
	GetByID(ctx context.Context, id string) (*domain.IncomeExpense, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.IncomeExpense, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// RateProvider fetches the daily rate snapshot from an external source.
type RateProvider interface {
	GetRates(ctx context.Context) (*domain.RateSnapshot, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// DocumentNumberGenerator generates system-wide unique document numbers.
type DocumentNumberGenerator interface {
	Next(at time.Time) string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release removes the key so the request can be retried.
	Release(ctx context.Context, key string) error
}
