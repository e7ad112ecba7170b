package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/infrastructure/metrics"
)

// CashflowUseCase posts cashflows, converting foreign amounts into the local currency.
type CashflowUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	currencyRepo CurrencyRepository
	rateTypeRepo RateTypeRepository
	rateRepo     ExchangeRateRepository
	cashflowRepo CashflowRepository
	outboxRepo   OutboxRepository
	idGen        IDGenerator
	docNumbers   DocumentNumberGenerator
	settings     CatalogSettings
	metrics      *metrics.Metrics
	now          func() time.Time
}

// NewCashflowUseCase creates a new CashflowUseCase.
func NewCashflowUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	currencyRepo CurrencyRepository,
	rateTypeRepo RateTypeRepository,
	rateRepo ExchangeRateRepository,
	cashflowRepo CashflowRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	docNumbers DocumentNumberGenerator,
	settings CatalogSettings,
	metrics *metrics.Metrics,
) *CashflowUseCase {
	return &CashflowUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		currencyRepo: currencyRepo,
		rateTypeRepo: rateTypeRepo,
		rateRepo:     rateRepo,
		cashflowRepo: cashflowRepo,
		outboxRepo:   outboxRepo,
		idGen:        idGen,
		docNumbers:   docNumbers,
		settings:     settings,
		metrics:      metrics,
		now:          time.Now,
	}
}

// WithClock replaces the time source.
func (uc *CashflowUseCase) WithClock(now func() time.Time) *CashflowUseCase {
	uc.now = now
	return uc
}

// CashflowItem is one posting request. CurrencyID may be empty, in which case
// the account's currency is used.
type CashflowItem struct {
	Type          domain.CashflowType
	AccountID     string
	FromAccountID *string
	ToAccountID   *string
	CurrencyID    string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
	Description   string
}

// PostCashflowInput represents input for posting a single cashflow.
type PostCashflowInput struct {
	UserID string
	Item   CashflowItem
}

// DistributeCashflowInput represents a batch of postings committed together.
type DistributeCashflowInput struct {
	UserID string
	Items  []CashflowItem
}

// PostCashflow posts one cashflow in its own transaction.
func (uc *CashflowUseCase) PostCashflow(ctx context.Context, input PostCashflowInput) (*domain.Cashflow, error) {
	posted, err := uc.post(ctx, input.UserID, []CashflowItem{input.Item})
	if err != nil {
		return nil, err
	}
	return posted[0], nil
}

// DistributeCashflow stages every item in one transaction and commits once.
// The first failing item aborts the batch and nothing is persisted.
func (uc *CashflowUseCase) DistributeCashflow(ctx context.Context, input DistributeCashflowInput) ([]*domain.Cashflow, error) {
	if len(input.Items) == 0 {
		uc.recordError(domain.ErrEmptyDistribution)
		return nil, domain.ErrEmptyDistribution
	}
	if len(input.Items) > domain.MaxDistributionItems {
		err := domain.InvalidArgument("items", fmt.Sprintf("must not exceed %d entries", domain.MaxDistributionItems))
		uc.recordError(err)
		return nil, err
	}
	return uc.post(ctx, input.UserID, input.Items)
}

func (uc *CashflowUseCase) post(ctx context.Context, userID string, items []CashflowItem) ([]*domain.Cashflow, error) {
	start := time.Now()
	now := uc.now().UTC()
	today := domain.RateDate(now, uc.settings.location())

	// Add transaction timeout
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	posted := make([]*domain.Cashflow, 0, len(items))
	kinds := make([]string, 0, len(items))
	for i, item := range items {
		cashflow := &domain.Cashflow{
			ID:            uc.idGen.Generate(),
			Type:          item.Type,
			UserID:        userID,
			AccountID:     item.AccountID,
			FromAccountID: item.FromAccountID,
			ToAccountID:   item.ToAccountID,
			CurrencyID:    item.CurrencyID,
			Debit:         item.Debit,
			Credit:        item.Credit,
			Description:   item.Description,
			CreatedAt:     now,
		}

		local, err := uc.postCashflow(txCtx, tx, cashflow, today)
		if err != nil {
			uc.recordError(err)
			if len(items) > 1 {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			return nil, err
		}

		posted = append(posted, cashflow)
		kinds = append(kinds, currencyKind(local))
	}

	if err := tx.Commit(txCtx); err != nil {
		uc.recordError(err)
		return nil, err
	}

	if uc.metrics != nil {
		for i, cf := range posted {
			uc.metrics.CashflowsPosted.WithLabelValues(string(cf.Type), kinds[i]).Inc()
		}
		uc.metrics.DistributionSize.Observe(float64(len(posted)))
		uc.metrics.DistributionDuration.Observe(time.Since(start).Seconds())
	}

	return posted, nil
}

// postCashflow validates, converts and stages one cashflow with its document
// inside tx. It reports whether the posting was in the local currency.
func (uc *CashflowUseCase) postCashflow(ctx context.Context, tx Transaction, cashflow *domain.Cashflow, today time.Time) (bool, error) {
	if err := cashflow.Validate(); err != nil {
		return false, err
	}
	if err := domain.ValidateRequiredID("accountId", cashflow.AccountID); err != nil {
		return false, err
	}

	account, err := uc.accountRepo.GetByID(ctx, cashflow.AccountID)
	if err != nil {
		return false, err
	}
	if account.IsDeleted() || !account.OwnedBy(cashflow.UserID) {
		return false, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, cashflow.AccountID)
	}
	if cashflow.CurrencyID == "" {
		cashflow.CurrencyID = account.CurrencyID
	}

	cashflow.AttachDocument(&domain.CashflowDocument{
		ID:             uc.idGen.Generate(),
		DocumentNumber: uc.docNumbers.Next(cashflow.CreatedAt),
		CreatedAt:      cashflow.CreatedAt,
	})

	currency, err := uc.currencyRepo.GetByID(ctx, cashflow.CurrencyID)
	if err != nil {
		if errors.Is(err, domain.ErrCurrencyNotFound) {
			return false, fmt.Errorf("%w: %s", domain.ErrCurrencyInvalid, cashflow.CurrencyID)
		}
		return false, err
	}

	if currency.IsLocal {
		cashflow.ApplyRate(decimal.NewFromInt(1), true)
	} else {
		rate, err := uc.resolveRate(ctx, currency, today)
		if err != nil {
			return false, err
		}
		cashflow.ApplyRate(rate.Rate, false)
	}

	if err := uc.cashflowRepo.Create(ctx, tx, cashflow); err != nil {
		return false, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   cashflow.ID,
		AggregateType: domain.AggregateTypeCashflow,
		EventType:     domain.EventTypeCashflowPosted,
		Payload: map[string]any{
			"cashflow_id":     cashflow.ID,
			"document_number": cashflow.Document.DocumentNumber,
			"account_id":      cashflow.AccountID,
			"currency":        currency.Code,
			"type":            string(cashflow.Type),
			"debit":           cashflow.Debit.String(),
			"credit":          cashflow.Credit.String(),
			"debit_base":      cashflow.DebitBase.String(),
			"credit_base":     cashflow.CreditBase.String(),
			"currency_rate":   cashflow.CurrencyRate.String(),
		},
		CreatedAt: cashflow.CreatedAt,
		Published: false,
	}
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return false, err
	}

	return currency.IsLocal, nil
}

func (uc *CashflowUseCase) resolveRate(ctx context.Context, currency *domain.Currency, today time.Time) (*domain.ExchangeRate, error) {
	ok, err := uc.rateTypeRepo.Has(ctx, domain.DefaultRateType)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDefaultRateTypeNotFound, domain.DefaultRateType)
	}

	rate, err := uc.rateRepo.Get(ctx, currency.ID, domain.DefaultRateType, today)
	if err != nil {
		if errors.Is(err, domain.ErrExchangeRateNotFound) {
			return nil, fmt.Errorf("%w: %s on %s", domain.ErrExchangeRateNotFound, currency.Code, today.Format(time.DateOnly))
		}
		return nil, err
	}
	return rate, nil
}

// GetCashflow retrieves a cashflow posted by userID together with its document.
func (uc *CashflowUseCase) GetCashflow(ctx context.Context, id, userID string) (*domain.Cashflow, error) {
	if err := domain.ValidateRequiredID("userId", userID); err != nil {
		return nil, err
	}

	cashflow, err := uc.cashflowRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cashflow.UserID != userID {
		return nil, fmt.Errorf("%w: %s", domain.ErrCashflowNotFound, id)
	}
	return cashflow, nil
}

// ListCashflowsInput represents input for listing the cashflows of an account.
type ListCashflowsInput struct {
	UserID    string
	AccountID string
	Limit     int
	Offset    int
}

// ListCashflowsByAccount lists cashflows of an account owned by the caller,
// newest first.
func (uc *CashflowUseCase) ListCashflowsByAccount(ctx context.Context, input ListCashflowsInput) ([]*domain.Cashflow, error) {
	if err := domain.ValidateRequiredID("userId", input.UserID); err != nil {
		return nil, err
	}
	if err := domain.ValidateRequiredID("accountId", input.AccountID); err != nil {
		return nil, err
	}

	account, err := uc.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}
	if !account.OwnedBy(input.UserID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, input.AccountID)
	}
	if input.Offset < 0 {
		input.Offset = 0
	}
	return uc.cashflowRepo.ListByAccount(ctx, input.AccountID, clampLimit(input.Limit), input.Offset)
}

func (uc *CashflowUseCase) recordError(err error) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.PostingErrors.WithLabelValues(errorType(err)).Inc()
}

func currencyKind(local bool) string {
	if local {
		return "local"
	}
	return "foreign"
}

// errorType maps an error to a low-cardinality metric label.
func errorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrEmptyDistribution):
		return "invalid_argument"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrCurrencyInvalid):
		return "currency_invalid"
	case errors.Is(err, domain.ErrDefaultRateTypeNotFound):
		return "rate_type_not_found"
	case errors.Is(err, domain.ErrExchangeRateNotFound):
		return "rate_not_found"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "internal"
	}
}
