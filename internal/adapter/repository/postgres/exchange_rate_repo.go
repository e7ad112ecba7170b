package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/infrastructure/postgres/generated"
	"github.com/iho/walletledger/internal/usecase"
)

var timeNow = time.Now

const insertExchangeRate = `INSERT INTO exchange_rates (id, currency_id, rate_type, rate, rate_date, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (currency_id, rate_type, rate_date) DO NOTHING`

// ExchangeRateRepository implements usecase.ExchangeRateRepository.
type ExchangeRateRepository struct {
	queries *generated.Queries
}

// NewExchangeRateRepository creates a new ExchangeRateRepository.
func NewExchangeRateRepository(db generated.DBTX) *ExchangeRateRepository {
	return &ExchangeRateRepository{
		queries: generated.New(db),
	}
}

// CreateBatch sends all rates in a single pgx batch. Conflicting rows are
// skipped, so the returned count only includes newly inserted rates.
func (r *ExchangeRateRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, rates []*domain.ExchangeRate) (int64, error) {
	if len(rates) == 0 {
		return 0, nil
	}
	pgxTx := tx.(*Tx).PgxTx()

	batch := &pgx.Batch{}
	for _, rate := range rates {
		batch.Queue(insertExchangeRate,
			rate.ID,
			rate.CurrencyID,
			string(rate.RateType),
			decimalToNumeric(rate.Rate),
			dateToPgDate(rate.RateDate),
			timeToPgTimestamptz(rate.CreatedAt),
		)
	}

	results := pgxTx.SendBatch(ctx, batch)

	var inserted int64
	for _, rate := range rates {
		tag, err := results.Exec()
		if err != nil {
			_ = results.Close()
			return 0, fmt.Errorf("insert exchange rate for currency %s: %w", rate.CurrencyID, err)
		}
		inserted += tag.RowsAffected()
	}

	if err := results.Close(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// Get retrieves the rate of a currency for one calendar day.
func (r *ExchangeRateRepository) Get(ctx context.Context, currencyID string, rateType domain.RateType, day time.Time) (*domain.ExchangeRate, error) {
	row, err := r.queries.GetExchangeRate(ctx, generated.GetExchangeRateParams{
		CurrencyID: currencyID,
		RateType:   string(rateType),
		RateDate:   dateToPgDate(day),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExchangeRateNotFound
		}
		return nil, err
	}

	return &domain.ExchangeRate{
		ID:         row.ID,
		CurrencyID: row.CurrencyID,
		RateType:   domain.RateType(row.RateType),
		Rate:       numericToDecimal(row.Rate),
		RateDate:   row.RateDate.Time,
		CreatedAt:  row.CreatedAt.Time,
	}, nil
}
