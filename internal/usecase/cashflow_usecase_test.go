package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/usecase"
	"github.com/iho/walletledger/internal/usecase/mocks"
)

type ledgerFixture struct {
	now        time.Time
	txMgr      *mocks.MockTransactionManager
	currencies *mocks.MockCurrencyRepository
	rateTypes  *mocks.MockRateTypeRepository
	rates      *mocks.MockExchangeRateRepository
	accounts   *mocks.MockAccountRepository
	cashflows  *mocks.MockCashflowRepository
	outbox     *mocks.MockOutboxRepository
	uc         *usecase.CashflowUseCase
}

// newLedgerFixture seeds TRY (local), USD with a 30.00 rate for today and EUR
// without any rate. user-1 owns one account per currency.
func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	f := &ledgerFixture{
		now:        time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC),
		txMgr:      mocks.NewMockTransactionManager(),
		currencies: mocks.NewMockCurrencyRepository(),
		rateTypes:  mocks.NewMockRateTypeRepository(),
		rates:      mocks.NewMockExchangeRateRepository(),
		accounts:   mocks.NewMockAccountRepository(),
		cashflows:  mocks.NewMockCashflowRepository(),
		outbox:     mocks.NewMockOutboxRepository(),
	}

	f.currencies.Add(&domain.Currency{ID: "cur-try", Code: "TRY", Name: "Turkish Lira", IsLocal: true})
	f.currencies.Add(&domain.Currency{ID: "cur-usd", Code: "USD", Name: "US Dollar"})
	f.currencies.Add(&domain.Currency{ID: "cur-eur", Code: "EUR", Name: "Euro"})
	f.rateTypes.Add(domain.RateTypeForexBuying)
	f.rates.Add(&domain.ExchangeRate{
		ID:         "rate-usd",
		CurrencyID: "cur-usd",
		RateType:   domain.RateTypeForexBuying,
		Rate:       decimal.RequireFromString("30.00"),
		RateDate:   domain.RateDate(f.now, time.UTC),
	})

	f.accounts.Add(&domain.Account{ID: "acc-try", UserID: "user-1", CurrencyID: "cur-try", Name: "Wallet"})
	f.accounts.Add(&domain.Account{ID: "acc-usd", UserID: "user-1", CurrencyID: "cur-usd", Name: "Dollars"})
	f.accounts.Add(&domain.Account{ID: "acc-eur", UserID: "user-1", CurrencyID: "cur-eur", Name: "Euros"})

	f.uc = usecase.NewCashflowUseCase(
		f.txMgr,
		f.accounts,
		f.currencies,
		f.rateTypes,
		f.rates,
		f.cashflows,
		f.outbox,
		mocks.NewMockIDGenerator(),
		mocks.NewMockDocumentNumberGenerator(),
		usecase.CatalogSettings{LocalCurrencyCode: "TRY", RateLocation: time.UTC},
		nil,
	).WithClock(func() time.Time { return f.now })

	return f
}

func (f *ledgerFixture) assertNothingPersisted(t *testing.T) {
	t.Helper()
	assert.Empty(t, f.cashflows.Cashflows(), "no cashflow may survive a failed posting")
	assert.Empty(t, f.cashflows.Documents(), "no document may survive a failed posting")
	assert.Empty(t, f.outbox.Events(), "no event may survive a failed posting")
}

func TestCashflowUseCase_Scenario_USDAndLocal(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	usd, err := f.uc.PostCashflow(ctx, usecase.PostCashflowInput{
		UserID: "user-1",
		Item: usecase.CashflowItem{
			Type:       domain.CashflowTypeExpense,
			AccountID:  "acc-usd",
			CurrencyID: "cur-usd",
			Debit:      decimal.NewFromInt(10),
			Credit:     decimal.Zero,
		},
	})
	require.NoError(t, err)
	assert.True(t, usd.DebitBase.Equal(decimal.RequireFromString("300.00")), "debitBase = %s", usd.DebitBase)
	assert.True(t, usd.CreditBase.IsZero(), "creditBase = %s", usd.CreditBase)
	assert.True(t, usd.CurrencyRate.Equal(decimal.RequireFromString("30.00")), "currencyRate = %s", usd.CurrencyRate)

	try, err := f.uc.PostCashflow(ctx, usecase.PostCashflowInput{
		UserID: "user-1",
		Item: usecase.CashflowItem{
			Type:       domain.CashflowTypeExpense,
			AccountID:  "acc-try",
			CurrencyID: "cur-try",
			Debit:      decimal.NewFromInt(10),
		},
	})
	require.NoError(t, err, "local currency postings need no rate")
	assert.True(t, try.DebitBase.IsZero(), "debitBase = %s", try.DebitBase)
	assert.True(t, try.CreditBase.IsZero())
	assert.True(t, try.Debit.Equal(decimal.NewFromInt(10)))

	assert.Len(t, f.cashflows.Cashflows(), 2)
	assert.Len(t, f.outbox.EventsOfType(domain.EventTypeCashflowPosted), 2)
}

func TestCashflowUseCase_ConversionIsExact(t *testing.T) {
	tests := []struct {
		name   string
		rate   string
		debit  string
		credit string
	}{
		{name: "integer amounts", rate: "30.00", debit: "10", credit: "0"},
		{name: "fractional rate", rate: "34.1234", debit: "12.345", credit: "0.5"},
		{name: "tiny amounts", rate: "0.0001", debit: "0.01", credit: "0.0003"},
		{name: "large amounts", rate: "41.987654", debit: "999999999.99", credit: "123456789.123456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLedgerFixture(t)
			rate := decimal.RequireFromString(tt.rate)
			f.rates.Add(&domain.ExchangeRate{
				ID:         "rate-eur",
				CurrencyID: "cur-eur",
				RateType:   domain.RateTypeForexBuying,
				Rate:       rate,
				RateDate:   domain.RateDate(f.now, time.UTC),
			})

			debit := decimal.RequireFromString(tt.debit)
			credit := decimal.RequireFromString(tt.credit)

			cf, err := f.uc.PostCashflow(context.Background(), usecase.PostCashflowInput{
				UserID: "user-1",
				Item: usecase.CashflowItem{
					Type:      domain.CashflowTypeIncome,
					AccountID: "acc-eur",
					Debit:     debit,
					Credit:    credit,
				},
			})
			require.NoError(t, err)

			assert.Equal(t, "cur-eur", cf.CurrencyID, "currency defaults to the account currency")
			assert.True(t, cf.DebitBase.Equal(debit.Mul(rate)), "debitBase = %s", cf.DebitBase)
			assert.True(t, cf.CreditBase.Equal(credit.Mul(rate)), "creditBase = %s", cf.CreditBase)
			assert.True(t, cf.CurrencyRate.Equal(rate))
		})
	}
}

func TestCashflowUseCase_MissingRateIsRejected(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.uc.PostCashflow(context.Background(), usecase.PostCashflowInput{
		UserID: "user-1",
		Item: usecase.CashflowItem{
			Type:      domain.CashflowTypeExpense,
			AccountID: "acc-eur",
			Debit:     decimal.NewFromInt(5),
		},
	})

	require.ErrorIs(t, err, domain.ErrExchangeRateNotFound)
	assert.Contains(t, err.Error(), "EUR")
	assert.Contains(t, err.Error(), "2026-10-16")
	f.assertNothingPersisted(t)
}

func TestCashflowUseCase_YesterdaysRateIsNotUsed(t *testing.T) {
	f := newLedgerFixture(t)
	f.now = f.now.AddDate(0, 0, 1)

	_, err := f.uc.PostCashflow(context.Background(), usecase.PostCashflowInput{
		UserID: "user-1",
		Item: usecase.CashflowItem{
			Type:      domain.CashflowTypeExpense,
			AccountID: "acc-usd",
			Debit:     decimal.NewFromInt(1),
		},
	})

	require.ErrorIs(t, err, domain.ErrExchangeRateNotFound)
	assert.Contains(t, err.Error(), "2026-10-17")
	f.assertNothingPersisted(t)
}

func TestCashflowUseCase_RateDayFollowsRateLocation(t *testing.T) {
	f := newLedgerFixture(t)
	istanbul := time.FixedZone("TRT", 3*60*60)
	// 22:30 UTC is already the next day in Istanbul.
	f.now = time.Date(2026, 10, 16, 22, 30, 0, 0, time.UTC)
	f.rates.Add(&domain.ExchangeRate{
		ID:         "rate-usd-next",
		CurrencyID: "cur-usd",
		RateType:   domain.RateTypeForexBuying,
		Rate:       decimal.RequireFromString("31.50"),
		RateDate:   time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
	})

	uc := usecase.NewCashflowUseCase(
		f.txMgr, f.accounts, f.currencies, f.rateTypes, f.rates, f.cashflows, f.outbox,
		mocks.NewMockIDGenerator(), mocks.NewMockDocumentNumberGenerator(),
		usecase.CatalogSettings{LocalCurrencyCode: "TRY", RateLocation: istanbul},
		nil,
	).WithClock(func() time.Time { return f.now })

	cf, err := uc.PostCashflow(context.Background(), usecase.PostCashflowInput{
		UserID: "user-1",
		Item: usecase.CashflowItem{
			Type:      domain.CashflowTypeExpense,
			AccountID: "acc-usd",
			Debit:     decimal.NewFromInt(2),
		},
	})
	require.NoError(t, err)
	assert.True(t, cf.CurrencyRate.Equal(decimal.RequireFromString("31.50")))
	assert.True(t, cf.DebitBase.Equal(decimal.RequireFromString("63")))
}

func TestCashflowUseCase_DefaultRateTypeMissing(t *testing.T) {
	f := newLedgerFixture(t)
	f.rateTypes.HasFunc = func(ctx context.Context, rateType domain.RateType) (bool, error) {
		return false, nil
	}

	_, err := f.uc.PostCashflow(context.Background(), usecase.PostCashflowInput{
		UserID: "user-1",
		Item: usecase.CashflowItem{
			Type:      domain.CashflowTypeExpense,
			AccountID: "acc-usd",
			Debit:     decimal.NewFromInt(1),
		},
	})
	require.ErrorIs(t, err, domain.ErrDefaultRateTypeNotFound)
	f.assertNothingPersisted(t)

	// Local postings do not consult the rate catalog at all.
	_, err = f.uc.PostCashflow(context.Background(), usecase.PostCashflowInput{
		UserID: "user-1",
		Item: usecase.CashflowItem{
			Type:      domain.CashflowTypeExpense,
			AccountID: "acc-try",
			Debit:     decimal.NewFromInt(1),
		},
	})
	require.NoError(t, err)
}

func TestCashflowUseCase_PostCashflowRejects(t *testing.T) {
	longDescription := strings.Repeat("x", domain.MaxCashflowDescLength+1)

	tests := []struct {
		name    string
		userID  string
		item    usecase.CashflowItem
		wantErr error
	}{
		{
			name:    "empty cashflow type",
			userID:  "user-1",
			item:    usecase.CashflowItem{AccountID: "acc-try", Debit: decimal.NewFromInt(1)},
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "unknown cashflow type",
			userID:  "user-1",
			item:    usecase.CashflowItem{Type: "Refund", AccountID: "acc-try"},
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "empty user",
			userID:  "",
			item:    usecase.CashflowItem{Type: domain.CashflowTypeIncome, AccountID: "acc-try"},
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "negative credit",
			userID:  "user-1",
			item:    usecase.CashflowItem{Type: domain.CashflowTypeIncome, AccountID: "acc-try", Credit: decimal.NewFromInt(-1)},
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "negative debit",
			userID:  "user-1",
			item:    usecase.CashflowItem{Type: domain.CashflowTypeExpense, AccountID: "acc-try", Debit: decimal.NewFromInt(-1)},
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "description too long",
			userID:  "user-1",
			item:    usecase.CashflowItem{Type: domain.CashflowTypeExpense, AccountID: "acc-try", Description: longDescription},
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "missing account",
			userID:  "user-1",
			item:    usecase.CashflowItem{Type: domain.CashflowTypeExpense},
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "unknown account",
			userID:  "user-1",
			item:    usecase.CashflowItem{Type: domain.CashflowTypeExpense, AccountID: "acc-nope"},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name:    "foreign account",
			userID:  "user-2",
			item:    usecase.CashflowItem{Type: domain.CashflowTypeExpense, AccountID: "acc-try"},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name:    "unknown currency",
			userID:  "user-1",
			item:    usecase.CashflowItem{Type: domain.CashflowTypeExpense, AccountID: "acc-try", CurrencyID: "cur-xyz"},
			wantErr: domain.ErrCurrencyInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLedgerFixture(t)

			_, err := f.uc.PostCashflow(context.Background(), usecase.PostCashflowInput{UserID: tt.userID, Item: tt.item})

			require.ErrorIs(t, err, tt.wantErr)
			f.assertNothingPersisted(t)
			for _, tx := range f.txMgr.Transactions() {
				assert.False(t, tx.Committed())
			}
		})
	}
}

func TestCashflowUseCase_DeletedAccountIsRejected(t *testing.T) {
	f := newLedgerFixture(t)
	deletedAt := f.now.Add(-time.Hour)
	f.accounts.Add(&domain.Account{ID: "acc-old", UserID: "user-1", CurrencyID: "cur-try", Name: "Old", DeletedAt: &deletedAt})

	_, err := f.uc.PostCashflow(context.Background(), usecase.PostCashflowInput{
		UserID: "user-1",
		Item:   usecase.CashflowItem{Type: domain.CashflowTypeExpense, AccountID: "acc-old", Debit: decimal.NewFromInt(1)},
	})
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	f.assertNothingPersisted(t)
}

func TestCashflowUseCase_DistributeCashflow_IsAtomic(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.uc.DistributeCashflow(context.Background(), usecase.DistributeCashflowInput{
		UserID: "user-1",
		Items: []usecase.CashflowItem{
			{Type: domain.CashflowTypeTransfer, AccountID: "acc-usd", Credit: decimal.NewFromInt(10)},
			{Type: domain.CashflowTypeTransfer, AccountID: "acc-try", CurrencyID: "cur-missing", Debit: decimal.NewFromInt(300)},
			{Type: domain.CashflowTypeTransfer, AccountID: "acc-try", Debit: decimal.NewFromInt(300)},
		},
	})

	require.ErrorIs(t, err, domain.ErrCurrencyInvalid)
	assert.Contains(t, err.Error(), "item 1")
	f.assertNothingPersisted(t)

	txs := f.txMgr.Transactions()
	require.Len(t, txs, 1, "a distribution uses exactly one transaction")
	assert.False(t, txs[0].Committed())
	assert.True(t, txs[0].RolledBack())
}

func TestCashflowUseCase_DistributeCashflow_CommitsOnce(t *testing.T) {
	f := newLedgerFixture(t)
	from := "acc-usd"
	to := "acc-try"

	posted, err := f.uc.DistributeCashflow(context.Background(), usecase.DistributeCashflowInput{
		UserID: "user-1",
		Items: []usecase.CashflowItem{
			{Type: domain.CashflowTypeTransfer, AccountID: "acc-usd", FromAccountID: &from, ToAccountID: &to, Credit: decimal.NewFromInt(10)},
			{Type: domain.CashflowTypeTransfer, AccountID: "acc-try", FromAccountID: &from, ToAccountID: &to, Debit: decimal.NewFromInt(300)},
			{Type: domain.CashflowTypeExpense, AccountID: "acc-try", Credit: decimal.RequireFromString("2.50"), Description: "fee"},
		},
	})
	require.NoError(t, err)
	require.Len(t, posted, 3)

	txs := f.txMgr.Transactions()
	require.Len(t, txs, 1)
	assert.True(t, txs[0].Committed())

	assert.True(t, posted[0].CreditBase.Equal(decimal.NewFromInt(300)))
	assert.True(t, posted[1].DebitBase.IsZero())
	assert.Equal(t, &from, posted[0].FromAccountID)

	stored := f.cashflows.Cashflows()
	docs := f.cashflows.Documents()
	require.Len(t, stored, 3)
	require.Len(t, docs, 3)

	numbers := make(map[string]bool)
	for _, cf := range posted {
		require.NotNil(t, cf.Document)
		assert.Equal(t, cf.ID, cf.Document.CashflowID)
		assert.Equal(t, cf.Document.ID, cf.DocumentID)
		assert.NotEmpty(t, cf.Document.DocumentNumber)
		numbers[cf.Document.DocumentNumber] = true
	}
	assert.Len(t, numbers, 3, "document numbers must be distinct")
	assert.Len(t, f.outbox.EventsOfType(domain.EventTypeCashflowPosted), 3)
}

func TestCashflowUseCase_DistributeCashflow_RejectsBadBatches(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.uc.DistributeCashflow(context.Background(), usecase.DistributeCashflowInput{UserID: "user-1"})
	require.ErrorIs(t, err, domain.ErrEmptyDistribution)

	items := make([]usecase.CashflowItem, domain.MaxDistributionItems+1)
	for i := range items {
		items[i] = usecase.CashflowItem{Type: domain.CashflowTypeExpense, AccountID: "acc-try", Debit: decimal.NewFromInt(1)}
	}
	_, err = f.uc.DistributeCashflow(context.Background(), usecase.DistributeCashflowInput{UserID: "user-1", Items: items})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	assert.Empty(t, f.txMgr.Transactions(), "rejected batches never open a transaction")
	f.assertNothingPersisted(t)
}

func TestCashflowUseCase_CommitFailureLeavesNothing(t *testing.T) {
	f := newLedgerFixture(t)
	commitErr := errors.New("connection reset")
	var tx *mocks.MockTransaction
	f.txMgr.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
		tx = &mocks.MockTransaction{CommitFunc: func(ctx context.Context) error { return commitErr }}
		return tx, nil
	}

	_, err := f.uc.PostCashflow(context.Background(), usecase.PostCashflowInput{
		UserID: "user-1",
		Item:   usecase.CashflowItem{Type: domain.CashflowTypeExpense, AccountID: "acc-usd", Debit: decimal.NewFromInt(1)},
	})

	require.ErrorIs(t, err, commitErr)
	require.NotNil(t, tx)
	assert.True(t, tx.RolledBack())
	f.assertNothingPersisted(t)
}

func TestCashflowUseCase_Reads(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	posted, err := f.uc.PostCashflow(ctx, usecase.PostCashflowInput{
		UserID: "user-1",
		Item:   usecase.CashflowItem{Type: domain.CashflowTypeIncome, AccountID: "acc-try", Credit: decimal.NewFromInt(50)},
	})
	require.NoError(t, err)

	got, err := f.uc.GetCashflow(ctx, posted.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, posted.Document.DocumentNumber, got.Document.DocumentNumber)

	_, err = f.uc.GetCashflow(ctx, "missing", "user-1")
	require.ErrorIs(t, err, domain.ErrCashflowNotFound)

	list, err := f.uc.ListCashflowsByAccount(ctx, usecase.ListCashflowsInput{UserID: "user-1", AccountID: "acc-try", Limit: 500})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, posted.ID, list[0].ID)

	_, err = f.uc.ListCashflowsByAccount(ctx, usecase.ListCashflowsInput{UserID: "user-1"})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestCashflowUseCase_ReadsAreScopedToOwner(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	posted, err := f.uc.PostCashflow(ctx, usecase.PostCashflowInput{
		UserID: "user-1",
		Item:   usecase.CashflowItem{Type: domain.CashflowTypeIncome, AccountID: "acc-try", Credit: decimal.NewFromInt(50)},
	})
	require.NoError(t, err)

	_, err = f.uc.GetCashflow(ctx, posted.ID, "user-2")
	require.ErrorIs(t, err, domain.ErrCashflowNotFound)

	_, err = f.uc.GetCashflow(ctx, posted.ID, "")
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	list, err := f.uc.ListCashflowsByAccount(ctx, usecase.ListCashflowsInput{UserID: "user-2", AccountID: "acc-try"})
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.Empty(t, list)

	_, err = f.uc.ListCashflowsByAccount(ctx, usecase.ListCashflowsInput{AccountID: "acc-try"})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = f.uc.ListCashflowsByAccount(ctx, usecase.ListCashflowsInput{UserID: "user-1", AccountID: "acc-missing"})
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}
