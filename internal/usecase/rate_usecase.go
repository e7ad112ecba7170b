package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/infrastructure/metrics"
)

// CatalogSettings describes the local currency and the calendar used for rate dates.
type CatalogSettings struct {
	LocalCurrencyCode string
	LocalCurrencyName string
	RateLocation      *time.Location
}

func (s CatalogSettings) location() *time.Location {
	if s.RateLocation == nil {
		return time.UTC
	}
	return s.RateLocation
}

// RateUseCase keeps the currency catalog seeded and ingests daily rates.
type RateUseCase struct {
	txManager    TransactionManager
	currencyRepo CurrencyRepository
	rateTypeRepo RateTypeRepository
	rateRepo     ExchangeRateRepository
	outboxRepo   OutboxRepository
	provider     RateProvider
	idGen        IDGenerator
	settings     CatalogSettings
	metrics      *metrics.Metrics
	logger       zerolog.Logger
	now          func() time.Time
}

// NewRateUseCase creates a new RateUseCase.
func NewRateUseCase(
	txManager TransactionManager,
	currencyRepo CurrencyRepository,
	rateTypeRepo RateTypeRepository,
	rateRepo ExchangeRateRepository,
	outboxRepo OutboxRepository,
	provider RateProvider,
	idGen IDGenerator,
	settings CatalogSettings,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) *RateUseCase {
	settings.LocalCurrencyCode = domain.NormalizeCurrencyCode(settings.LocalCurrencyCode)
	return &RateUseCase{
		txManager:    txManager,
		currencyRepo: currencyRepo,
		rateTypeRepo: rateTypeRepo,
		rateRepo:     rateRepo,
		outboxRepo:   outboxRepo,
		provider:     provider,
		idGen:        idGen,
		settings:     settings,
		metrics:      metrics,
		logger:       logger,
		now:          time.Now,
	}
}

// WithClock replaces the time source.
func (uc *RateUseCase) WithClock(now func() time.Time) *RateUseCase {
	uc.now = now
	return uc
}

// EnsureSeedData inserts the rate types and the currency catalog if they are missing.
// The rate provider is only contacted when no currency exists yet.
func (uc *RateUseCase) EnsureSeedData(ctx context.Context) error {
	return uc.ensureSeed(ctx, nil)
}

func (uc *RateUseCase) ensureSeed(ctx context.Context, snapshot *domain.RateSnapshot) error {
	typesExist, err := uc.rateTypeRepo.Exists(ctx)
	if err != nil {
		return err
	}
	currenciesExist, err := uc.currencyRepo.Exists(ctx)
	if err != nil {
		return err
	}
	if typesExist && currenciesExist {
		return nil
	}

	if !currenciesExist && snapshot == nil {
		snapshot, err = uc.fetch(ctx)
		if err != nil {
			return err
		}
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if !typesExist {
		for _, rateType := range domain.RateTypes() {
			if err := uc.rateTypeRepo.Create(txCtx, tx, rateType); err != nil {
				return err
			}
		}
	}

	now := uc.now().UTC()
	var codes []string
	if !currenciesExist {
		codes, err = uc.seedCurrencies(txCtx, tx, snapshot, now)
		if err != nil {
			return err
		}
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   uc.settings.LocalCurrencyCode,
		AggregateType: domain.AggregateTypeCatalog,
		EventType:     domain.EventTypeCatalogSeeded,
		Payload: map[string]any{
			"rate_types_seeded": !typesExist,
			"currencies":        codes,
			"local_currency":    uc.settings.LocalCurrencyCode,
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return err
	}

	if err := tx.Commit(txCtx); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.CurrenciesSeeded.Add(float64(len(codes)))
	}

	uc.logger.Info().
		Bool("rate_types_seeded", !typesExist).
		Int("currencies_seeded", len(codes)).
		Msg("currency catalog seeded")

	return nil
}

// seedCurrencies creates one non-local currency per snapshot code and then the
// local currency. It returns the codes it created.
func (uc *RateUseCase) seedCurrencies(ctx context.Context, tx Transaction, snapshot *domain.RateSnapshot, now time.Time) ([]string, error) {
	if err := domain.ValidateCurrencyCode(uc.settings.LocalCurrencyCode); err != nil {
		return nil, fmt.Errorf("local currency: %w", err)
	}

	seen := make(map[string]bool, len(snapshot.Currencies)+1)
	codes := make([]string, 0, len(snapshot.Currencies)+1)

	for _, sc := range snapshot.Currencies {
		code := domain.NormalizeCurrencyCode(sc.Code)
		if code == uc.settings.LocalCurrencyCode || seen[code] {
			continue
		}
		if err := domain.ValidateCurrencyCode(code); err != nil {
			return nil, err
		}
		seen[code] = true

		currency := &domain.Currency{
			ID:        uc.idGen.Generate(),
			Code:      code,
			Name:      sc.Name,
			IsLocal:   false,
			CreatedAt: now,
		}
		if err := uc.currencyRepo.Create(ctx, tx, currency); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}

	local := &domain.Currency{
		ID:        uc.idGen.Generate(),
		Code:      uc.settings.LocalCurrencyCode,
		Name:      uc.settings.LocalCurrencyName,
		IsLocal:   true,
		CreatedAt: now,
	}
	if err := uc.currencyRepo.Create(ctx, tx, local); err != nil {
		return nil, err
	}
	codes = append(codes, local.Code)

	return codes, nil
}

// UpdateDailyRates fetches the provider snapshot and stores today's
// ForexBuying rate for every currency in it. All rows are written in a single
// transaction; any mismatch or unparsable rate aborts the whole run.
func (uc *RateUseCase) UpdateDailyRates(ctx context.Context) (bool, error) {
	start := time.Now()
	inserted, err := uc.updateDailyRates(ctx)

	if uc.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		uc.metrics.RateIngestionRuns.WithLabelValues(status).Inc()
		uc.metrics.RateIngestionSeconds.Observe(time.Since(start).Seconds())
		if err == nil {
			uc.metrics.RatesIngested.Add(float64(inserted))
		}
	}

	if err != nil {
		uc.logger.Error().Err(err).Msg("daily rate update failed")
		return false, err
	}
	return true, nil
}

func (uc *RateUseCase) updateDailyRates(ctx context.Context) (int64, error) {
	snapshot, err := uc.fetch(ctx)
	if err != nil {
		return 0, err
	}

	if err := uc.ensureSeed(ctx, snapshot); err != nil {
		return 0, err
	}

	now := uc.now().UTC()
	day := domain.RateDate(now, uc.settings.location())

	hasDefault, err := uc.rateTypeRepo.Has(ctx, domain.DefaultRateType)
	if err != nil {
		return 0, err
	}

	rates := make([]*domain.ExchangeRate, 0, len(snapshot.Currencies))
	for _, sc := range snapshot.Currencies {
		code := domain.NormalizeCurrencyCode(sc.Code)
		if code == uc.settings.LocalCurrencyCode {
			continue
		}

		currency, err := uc.currencyRepo.GetByCode(ctx, code)
		if err != nil {
			if errors.Is(err, domain.ErrCurrencyNotFound) {
				return 0, fmt.Errorf("%w: currency %s is not in the catalog", domain.ErrCatalogMismatch, code)
			}
			return 0, err
		}
		if !hasDefault {
			return 0, fmt.Errorf("%w: rate type %s missing for currency %s", domain.ErrCatalogMismatch, domain.DefaultRateType, code)
		}

		rate, err := domain.ParseRate(code, sc.ForexBuying)
		if err != nil {
			return 0, err
		}
		// Quotations such as JPY are published per 100 units. The per-unit
		// rate is rounded to the stored scale so postings convert with the
		// exact value that is persisted.
		if sc.Unit > 1 {
			rate = rate.Div(decimal.NewFromInt(int64(sc.Unit))).Round(domain.MaxAmountScale)
		}

		rates = append(rates, &domain.ExchangeRate{
			ID:         uc.idGen.Generate(),
			CurrencyID: currency.ID,
			RateType:   domain.DefaultRateType,
			Rate:       rate,
			RateDate:   day,
			CreatedAt:  now,
		})
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	inserted, err := uc.rateRepo.CreateBatch(txCtx, tx, rates)
	if err != nil {
		return 0, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   day.Format(time.DateOnly),
		AggregateType: domain.AggregateTypeCatalog,
		EventType:     domain.EventTypeRatesUpdated,
		Payload: map[string]any{
			"rate_date": day.Format(time.DateOnly),
			"rate_type": string(domain.DefaultRateType),
			"received":  len(rates),
			"inserted":  inserted,
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return 0, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return 0, err
	}

	uc.logger.Info().
		Str("rate_date", day.Format(time.DateOnly)).
		Int("received", len(rates)).
		Int64("inserted", inserted).
		Msg("daily rates updated")

	return inserted, nil
}

func (uc *RateUseCase) fetch(ctx context.Context) (*domain.RateSnapshot, error) {
	snapshot, err := uc.provider.GetRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRateProviderUnavailable, err)
	}
	if snapshot.IsEmpty() {
		return nil, domain.ErrNoRateData
	}
	return snapshot, nil
}

// ListCurrencies returns the non-deleted currency catalog.
func (uc *RateUseCase) ListCurrencies(ctx context.Context) ([]*domain.Currency, error) {
	return uc.currencyRepo.List(ctx)
}

// GetRateInput identifies a stored rate. A zero Day means today, an empty
// RateType means the default quotation.
type GetRateInput struct {
	Code     string
	RateType domain.RateType
	Day      time.Time
}

// GetRate returns the stored rate of a currency for one calendar day.
func (uc *RateUseCase) GetRate(ctx context.Context, input GetRateInput) (*domain.ExchangeRate, error) {
	code := domain.NormalizeCurrencyCode(input.Code)
	if err := domain.ValidateCurrencyCode(code); err != nil {
		return nil, err
	}

	rateType := input.RateType
	if rateType == "" {
		rateType = domain.DefaultRateType
	}
	if !rateType.IsValid() {
		return nil, domain.InvalidArgument("rateType", "unknown rate type "+string(rateType))
	}

	var day time.Time
	if input.Day.IsZero() {
		day = domain.RateDate(uc.now(), uc.settings.location())
	} else {
		day = domain.RateDate(input.Day, input.Day.Location())
	}

	currency, err := uc.currencyRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	rate, err := uc.rateRepo.Get(ctx, currency.ID, rateType, day)
	if err != nil {
		if errors.Is(err, domain.ErrExchangeRateNotFound) {
			return nil, fmt.Errorf("%w: %s on %s", domain.ErrExchangeRateNotFound, code, day.Format(time.DateOnly))
		}
		return nil, err
	}
	return rate, nil
}
