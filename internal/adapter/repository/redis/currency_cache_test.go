package redis

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/usecase/mocks"
)

func newTestCurrencyCache(t *testing.T) (*CurrencyCache, *mocks.MockCurrencyRepository) {
	t.Helper()
	client, _ := newTestRedisClient(t)

	repo := mocks.NewMockCurrencyRepository()
	repo.Add(&domain.Currency{ID: "cur-try", Code: "TRY", Name: "Turkish Lira", IsLocal: true})
	repo.Add(&domain.Currency{ID: "cur-usd", Code: "USD", Name: "US Dollar"})

	return NewCurrencyCache(repo, client, time.Minute, nil, zerolog.Nop()), repo
}

func TestCurrencyCache_GetByCodeReadsThrough(t *testing.T) {
	cache, repo := newTestCurrencyCache(t)
	ctx := context.Background()

	calls := 0
	repo.GetByCodeFunc = func(ctx context.Context, code string) (*domain.Currency, error) {
		calls++
		return &domain.Currency{ID: "cur-usd", Code: code, Name: "US Dollar"}, nil
	}

	for i := 0; i < 3; i++ {
		cur, err := cache.GetByCode(ctx, "USD")
		require.NoError(t, err)
		assert.Equal(t, "cur-usd", cur.ID)
		assert.Equal(t, "US Dollar", cur.Name)
	}
	assert.Equal(t, 1, calls, "subsequent lookups are served from redis")
}

func TestCurrencyCache_MissesAreNotCached(t *testing.T) {
	cache, repo := newTestCurrencyCache(t)
	ctx := context.Background()

	_, err := cache.GetByID(ctx, "cur-eur")
	require.ErrorIs(t, err, domain.ErrCurrencyNotFound)

	repo.Add(&domain.Currency{ID: "cur-eur", Code: "EUR", Name: "Euro"})

	cur, err := cache.GetByID(ctx, "cur-eur")
	require.NoError(t, err)
	assert.Equal(t, "EUR", cur.Code)
}

func TestCurrencyCache_CreateInvalidatesList(t *testing.T) {
	cache, _ := newTestCurrencyCache(t)
	ctx := context.Background()

	list, err := cache.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	tx := &mocks.MockTransaction{}
	require.NoError(t, cache.Create(ctx, tx, &domain.Currency{ID: "cur-eur", Code: "EUR", Name: "Euro"}))
	require.NoError(t, tx.Commit(ctx))

	list, err = cache.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestCurrencyCache_RedisDownFallsBack(t *testing.T) {
	client, mr := newTestRedisClient(t)

	repo := mocks.NewMockCurrencyRepository()
	repo.Add(&domain.Currency{ID: "cur-usd", Code: "USD", Name: "US Dollar"})
	cache := NewCurrencyCache(repo, client, time.Minute, nil, zerolog.Nop())

	mr.Close()

	cur, err := cache.GetByCode(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, "cur-usd", cur.ID)
}
