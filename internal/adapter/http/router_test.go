package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/panelledger/internal/adapter/http/handler"
	"github.com/iho/panelledger/internal/adapter/http/handler/mocks"
	apimiddleware "github.com/iho/panelledger/internal/adapter/http/middleware"
	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/infrastructure/metrics"
	usecasemocks "github.com/iho/panelledger/internal/usecase/mocks"
)

type routerMocks struct {
	users        *mocks.MockUserService
	accounts     *mocks.MockAccountService
	categories   *mocks.MockCategoryService
	expenses     *mocks.MockEntryService
	incomes      *mocks.MockEntryService
	transactions *mocks.MockTransactionService
	ledger       *mocks.MockReconciliationService
}

func newRouterConfig(t *testing.T, opts ...func(*RouterConfig)) (RouterConfig, *routerMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := &routerMocks{
		users:        mocks.NewMockUserService(ctrl),
		accounts:     mocks.NewMockAccountService(ctrl),
		categories:   mocks.NewMockCategoryService(ctrl),
		expenses:     mocks.NewMockEntryService(ctrl),
		incomes:      mocks.NewMockEntryService(ctrl),
		transactions: mocks.NewMockTransactionService(ctrl),
		ledger:       mocks.NewMockReconciliationService(ctrl),
	}
	m.expenses.EXPECT().Kind().Return(domain.EntryKindExpense)
	m.incomes.EXPECT().Kind().Return(domain.EntryKindIncome)

	cfg := RouterConfig{
		Logger:             zerolog.Nop(),
		UserHandler:        handler.NewUserHandler(m.users),
		AccountHandler:     handler.NewAccountHandler(m.accounts, nil),
		CategoryHandler:    handler.NewCategoryHandler(m.categories),
		ExpenseHandler:     handler.NewEntryHandler(m.expenses, nil),
		IncomeHandler:      handler.NewEntryHandler(m.incomes, nil),
		TransactionHandler: handler.NewTransactionHandler(m.transactions, nil),
		OverviewHandler:    handler.NewOverviewHandler(m.expenses, m.incomes, m.transactions),
		LedgerHandler:      handler.NewLedgerHandler(m.ledger),
		HealthHandler:      handler.NewHealthHandler(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg, m
}

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	cfg, _ := newRouterConfig(t)
	router := NewRouter(cfg)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(apimiddleware.RequestIDHeader))
}

func TestNewRouter_RegistersRoutes(t *testing.T) {
	cfg, _ := newRouterConfig(t)
	router := NewRouter(cfg)

	chiRoutes, ok := router.(chi.Routes)
	require.True(t, ok, "router does not implement chi.Routes")

	seen := map[string]bool{}
	err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	})
	require.NoError(t, err)

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/users/",
		"GET /api/v1/users/{id}",
		"POST /api/v1/accounts/",
		"GET /api/v1/accounts/",
		"DELETE /api/v1/accounts/{id}",
		"POST /api/v1/accounts/{id}/adjustments",
		"GET /api/v1/accounts/{id}/reconciliation",
		"POST /api/v1/categories/",
		"DELETE /api/v1/subcategories/{id}",
		"POST /api/v1/expenses/",
		"PUT /api/v1/expenses/{id}",
		"DELETE /api/v1/incomes/{id}",
		"POST /api/v1/transactions/",
		"PUT /api/v1/transactions/{id}",
		"GET /api/v1/entries",
		"GET /api/v1/ledger/consistency",
	}

	for _, route := range expected {
		assert.True(t, seen[route], "expected route %s to be registered", route)
	}
}

func TestNewRouter_RoutesByKindAndCaller(t *testing.T) {
	cfg, m := newRouterConfig(t)
	router := NewRouter(cfg)

	m.incomes.EXPECT().ListByMaker(gomock.Any(), int64(3)).Return([]*domain.Entry{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/incomes", nil)
	req.Header.Set(apimiddleware.CallerHeader, "3")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestNewRouter_EntriesOverview(t *testing.T) {
	cfg, m := newRouterConfig(t)
	router := NewRouter(cfg)

	m.incomes.EXPECT().ListByMaker(gomock.Any(), int64(3)).Return([]*domain.Entry{}, nil)
	m.expenses.EXPECT().ListByMaker(gomock.Any(), int64(3)).Return([]*domain.Entry{}, nil)
	m.transactions.EXPECT().ListByMaker(gomock.Any(), int64(3)).Return([]*domain.Transaction{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil)
	req.Header.Set(apimiddleware.CallerHeader, "3")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"incomes":[],"expenses":[],"transactions":[]}`, rec.Body.String())
}

func TestNewRouter_IdempotencyReplaysCreate(t *testing.T) {
	store := usecasemocks.NewMockIdempotencyStore()
	cfg, m := newRouterConfig(t, func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	})
	router := NewRouter(cfg)

	m.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(&domain.User{ID: 1, Username: "alice"}, nil).Times(1)

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(`{"username":"alice"}`))
		req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	first := send()
	second := send()

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(apimiddleware.IdempotencyReplayHeader))
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	cfg, _ := newRouterConfig(t, func(cfg *RouterConfig) {
		cfg.RateLimiter = apimiddleware.NewRateLimiter(1, 1)
	})
	router := NewRouter(cfg)

	send := func() int {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "1.2.3.4:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}

func TestNewRouter_MetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	cfg, _ := newRouterConfig(t, func(cfg *RouterConfig) {
		cfg.Metrics = metrics.New(reg)
		cfg.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	})
	router := NewRouter(cfg)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `panelledger_http_requests_total{method="GET",path="/health",status="200"} 1`)
}
