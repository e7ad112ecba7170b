package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/iho/walletledger/internal/adapter/http/handler"
	apimiddleware "github.com/iho/walletledger/internal/adapter/http/middleware"
	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "http_requests_in_flight") {
		t.Fatalf("expected HTTP metrics to be exported")
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"name":"Main","currency_id":"cur-usd"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	req.Header.Set(apimiddleware.UserIDHeader, "user-1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if store.updatedKey != "user-1:POST:/api/v1/accounts/:key-123" {
		t.Fatalf("unexpected idempotency key %q", store.updatedKey)
	}
}

func TestNewRouter_IdentityFromHeader(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/accounts/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/", nil)
	req.Header.Set(apimiddleware.UserIDHeader, "user-1")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with identity, got %d", rec.Code)
	}
}

func TestNewRouter_UserScopedReads(t *testing.T) {
	router := NewRouter(newRouterConfig())

	paths := []string{
		"/api/v1/accounts/acc-1",
		"/api/v1/accounts/acc-1/cashflows",
		"/api/v1/cashflows/cf-1",
		"/api/v1/categories/",
	}
	for _, path := range paths {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for anonymous %s, got %d", path, rec.Code)
		}
	}

	for _, path := range []string{"/api/v1/accounts/acc-1", "/api/v1/cashflows/cf-1"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(apimiddleware.UserIDHeader, "user-2")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 for another user's %s, got %d", path, rec.Code)
		}
	}

	// The currency catalog stays public.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/currencies", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected public catalog, got %d", rec.Code)
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/accounts/",
		"GET /api/v1/accounts/",
		"GET /api/v1/accounts/{id}",
		"DELETE /api/v1/accounts/{id}",
		"GET /api/v1/accounts/{id}/cashflows",
		"POST /api/v1/cashflows/",
		"POST /api/v1/cashflows/distribute",
		"GET /api/v1/cashflows/{id}",
		"POST /api/v1/categories/",
		"GET /api/v1/categories/",
		"GET /api/v1/currencies",
		"GET /api/v1/currencies/{code}/rates",
		"POST /api/v1/rates/seed",
		"POST /api/v1/rates/update",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	healthy := handler.PingFunc(func(ctx context.Context) error { return nil })

	cfg := RouterConfig{
		HealthHandler:   handler.NewHealthHandler(healthy, healthy),
		AccountHandler:  handler.NewAccountHandler(&stubAccountService{}),
		CashflowHandler: handler.NewCashflowHandler(&stubCashflowService{}),
		CategoryHandler: handler.NewCategoryHandler(&stubCategoryService{}),
		RateHandler:     handler.NewRateHandler(&stubRateService{}),
		Logger:          zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubAccountService struct{}

func (stubAccountService) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (string, error) {
	return "acc", nil
}

func (stubAccountService) GetAccount(ctx context.Context, id, userID string) (*domain.Account, error) {
	if userID != "user-1" {
		return nil, domain.ErrAccountNotFound
	}
	return &domain.Account{ID: id, UserID: userID}, nil
}

func (stubAccountService) ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
	return []*domain.Account{}, nil
}

func (stubAccountService) DeleteAccount(ctx context.Context, id, userID string) error {
	return nil
}

type stubCashflowService struct{}

func (stubCashflowService) PostCashflow(ctx context.Context, input usecase.PostCashflowInput) (*domain.Cashflow, error) {
	return &domain.Cashflow{ID: "cf"}, nil
}

func (stubCashflowService) DistributeCashflow(ctx context.Context, input usecase.DistributeCashflowInput) ([]*domain.Cashflow, error) {
	return []*domain.Cashflow{}, nil
}

func (stubCashflowService) GetCashflow(ctx context.Context, id, userID string) (*domain.Cashflow, error) {
	if userID != "user-1" {
		return nil, domain.ErrCashflowNotFound
	}
	return &domain.Cashflow{ID: id, UserID: userID}, nil
}

func (stubCashflowService) ListCashflowsByAccount(ctx context.Context, input usecase.ListCashflowsInput) ([]*domain.Cashflow, error) {
	return []*domain.Cashflow{}, nil
}

type stubCategoryService struct{}

func (stubCategoryService) CreateIncomeExpense(ctx context.Context, input usecase.CreateIncomeExpenseInput) (string, error) {
	return "cat", nil
}

func (stubCategoryService) ListIncomeExpenseTree(ctx context.Context, userID string) ([]*domain.IncomeExpenseNode, error) {
	return nil, nil
}

type stubRateService struct{}

func (stubRateService) EnsureSeedData(ctx context.Context) error { return nil }

func (stubRateService) UpdateDailyRates(ctx context.Context) (bool, error) { return true, nil }

func (stubRateService) ListCurrencies(ctx context.Context) ([]*domain.Currency, error) {
	return []*domain.Currency{}, nil
}

func (stubRateService) GetRate(ctx context.Context, input usecase.GetRateInput) (*domain.ExchangeRate, error) {
	return &domain.ExchangeRate{}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
	updatedKey  string
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	s.updatedKey = key
	return nil
}

func (s *stubIdempotencyStore) Release(ctx context.Context, key string) error {
	return nil
}
