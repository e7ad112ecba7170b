package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/infrastructure/postgres/generated"
	"github.com/iho/walletledger/internal/usecase"
)

// CurrencyRepository implements usecase.CurrencyRepository.
type CurrencyRepository struct {
	queries *generated.Queries
}

// NewCurrencyRepository creates a new CurrencyRepository.
func NewCurrencyRepository(db generated.DBTX) *CurrencyRepository {
	return &CurrencyRepository{
		queries: generated.New(db),
	}
}

// Create inserts a currency within a transaction.
func (r *CurrencyRepository) Create(ctx context.Context, tx usecase.Transaction, currency *domain.Currency) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.CreateCurrency(ctx, generated.CreateCurrencyParams{
		ID:        currency.ID,
		Code:      currency.Code,
		Name:      currency.Name,
		IsLocal:   currency.IsLocal,
		CreatedAt: timeToPgTimestamptz(currency.CreatedAt),
	})
}

// Exists reports whether any currency row exists, deleted or not.
func (r *CurrencyRepository) Exists(ctx context.Context) (bool, error) {
	count, err := r.queries.CountCurrencies(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetByID retrieves a non-deleted currency by ID.
func (r *CurrencyRepository) GetByID(ctx context.Context, id string) (*domain.Currency, error) {
	row, err := r.queries.GetCurrencyByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCurrencyNotFound
		}
		return nil, err
	}
	return rowToCurrency(row), nil
}

// GetByCode retrieves a non-deleted currency by its ISO code.
func (r *CurrencyRepository) GetByCode(ctx context.Context, code string) (*domain.Currency, error) {
	row, err := r.queries.GetCurrencyByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCurrencyNotFound
		}
		return nil, err
	}
	return rowToCurrency(row), nil
}

// List returns all non-deleted currencies ordered by code.
func (r *CurrencyRepository) List(ctx context.Context) ([]*domain.Currency, error) {
	rows, err := r.queries.ListCurrencies(ctx)
	if err != nil {
		return nil, err
	}

	currencies := make([]*domain.Currency, 0, len(rows))
	for _, row := range rows {
		currencies = append(currencies, rowToCurrency(row))
	}
	return currencies, nil
}

func rowToCurrency(row generated.Currency) *domain.Currency {
	return &domain.Currency{
		ID:        row.ID,
		Code:      row.Code,
		Name:      row.Name,
		IsLocal:   row.IsLocal,
		CreatedAt: row.CreatedAt.Time,
		DeletedAt: pgTimestamptzToTimePtr(row.DeletedAt),
	}
}

// RateTypeRepository implements usecase.RateTypeRepository.
type RateTypeRepository struct {
	queries *generated.Queries
}

// NewRateTypeRepository creates a new RateTypeRepository.
func NewRateTypeRepository(db generated.DBTX) *RateTypeRepository {
	return &RateTypeRepository{
		queries: generated.New(db),
	}
}

// Create inserts a rate type; an existing type is left untouched.
func (r *RateTypeRepository) Create(ctx context.Context, tx usecase.Transaction, rateType domain.RateType) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.CreateExchangeRateType(ctx, generated.CreateExchangeRateTypeParams{
		Name:      string(rateType),
		CreatedAt: timeToPgTimestamptz(timeNow().UTC()),
	})
}

// Exists reports whether any rate type has been seeded.
func (r *RateTypeRepository) Exists(ctx context.Context) (bool, error) {
	count, err := r.queries.CountExchangeRateTypes(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Has reports whether rateType has been seeded.
func (r *RateTypeRepository) Has(ctx context.Context, rateType domain.RateType) (bool, error) {
	return r.queries.ExchangeRateTypeExists(ctx, string(rateType))
}
