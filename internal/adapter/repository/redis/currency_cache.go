package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/infrastructure/metrics"
	"github.com/iho/walletledger/internal/usecase"
)

const (
	cacheHit   = "hit"
	cacheMiss  = "miss"
	cacheError = "error"
)

// CurrencyCache is a read-through cache in front of a usecase.CurrencyRepository.
// Only successful lookups are cached; misses always reach the store. Redis
// failures fall back to the store.
type CurrencyCache struct {
	next    usecase.CurrencyRepository
	client  *redis.Client
	prefix  string
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewCurrencyCache wraps next with a Redis cache.
func NewCurrencyCache(next usecase.CurrencyRepository, client *redis.Client, ttl time.Duration, m *metrics.Metrics, logger zerolog.Logger) *CurrencyCache {
	return &CurrencyCache{
		next:    next,
		client:  client,
		prefix:  "currency:",
		ttl:     ttl,
		metrics: m,
		logger:  logger,
	}
}

type cachedCurrency struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	IsLocal   bool       `json:"is_local"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

func toCached(c *domain.Currency) cachedCurrency {
	return cachedCurrency{
		ID:        c.ID,
		Code:      c.Code,
		Name:      c.Name,
		IsLocal:   c.IsLocal,
		CreatedAt: c.CreatedAt,
		DeletedAt: c.DeletedAt,
	}
}

func (c cachedCurrency) toDomain() *domain.Currency {
	return &domain.Currency{
		ID:        c.ID,
		Code:      c.Code,
		Name:      c.Name,
		IsLocal:   c.IsLocal,
		CreatedAt: c.CreatedAt,
		DeletedAt: c.DeletedAt,
	}
}

// Create writes through to the store and drops the cached list.
func (c *CurrencyCache) Create(ctx context.Context, tx usecase.Transaction, currency *domain.Currency) error {
	if err := c.next.Create(ctx, tx, currency); err != nil {
		return err
	}
	c.invalidate(ctx, c.listKey(), c.codeKey(currency.Code), c.idKey(currency.ID))
	return nil
}

// Exists is never cached so that seeding always sees the store.
func (c *CurrencyCache) Exists(ctx context.Context) (bool, error) {
	return c.next.Exists(ctx)
}

func (c *CurrencyCache) GetByID(ctx context.Context, id string) (*domain.Currency, error) {
	return c.getOne(ctx, c.idKey(id), func() (*domain.Currency, error) {
		return c.next.GetByID(ctx, id)
	})
}

func (c *CurrencyCache) GetByCode(ctx context.Context, code string) (*domain.Currency, error) {
	return c.getOne(ctx, c.codeKey(code), func() (*domain.Currency, error) {
		return c.next.GetByCode(ctx, code)
	})
}

func (c *CurrencyCache) List(ctx context.Context) ([]*domain.Currency, error) {
	var cached []cachedCurrency
	if c.load(ctx, c.listKey(), &cached) {
		currencies := make([]*domain.Currency, 0, len(cached))
		for _, item := range cached {
			currencies = append(currencies, item.toDomain())
		}
		return currencies, nil
	}

	currencies, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]cachedCurrency, 0, len(currencies))
	for _, cur := range currencies {
		items = append(items, toCached(cur))
	}
	c.store(ctx, c.listKey(), items)

	return currencies, nil
}

func (c *CurrencyCache) getOne(ctx context.Context, key string, fetch func() (*domain.Currency, error)) (*domain.Currency, error) {
	var cached cachedCurrency
	if c.load(ctx, key, &cached) {
		return cached.toDomain(), nil
	}

	currency, err := fetch()
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, toCached(currency))

	return currency, nil
}

func (c *CurrencyCache) load(ctx context.Context, key string, dest any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.record(cacheMiss)
		} else {
			c.record(cacheError)
			c.logger.Warn().Err(err).Str("key", key).Msg("currency cache read failed")
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.record(cacheError)
		c.logger.Warn().Err(err).Str("key", key).Msg("currency cache entry is corrupt")
		return false
	}

	c.record(cacheHit)
	return true
}

func (c *CurrencyCache) store(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("currency cache write failed")
	}
}

func (c *CurrencyCache) invalidate(ctx context.Context, keys ...string) {
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn().Err(err).Strs("keys", keys).Msg("currency cache invalidation failed")
	}
}

func (c *CurrencyCache) record(result string) {
	if c.metrics != nil {
		c.metrics.CurrencyCacheRequests.WithLabelValues(result).Inc()
	}
}

func (c *CurrencyCache) idKey(id string) string     { return c.prefix + "id:" + id }
func (c *CurrencyCache) codeKey(code string) string { return c.prefix + "code:" + code }
func (c *CurrencyCache) listKey() string            { return c.prefix + "list" }
