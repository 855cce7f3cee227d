package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/panelledger/internal/adapter/http/handler"
	"github.com/iho/panelledger/internal/adapter/http/middleware"
	"github.com/iho/panelledger/internal/infrastructure/metrics"
	"github.com/iho/panelledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	Logger zerolog.Logger

	UserHandler        *handler.UserHandler
	AccountHandler     *handler.AccountHandler
	CategoryHandler    *handler.CategoryHandler
	ExpenseHandler     *handler.EntryHandler
	IncomeHandler      *handler.EntryHandler
	TransactionHandler *handler.TransactionHandler
	OverviewHandler    *handler.OverviewHandler
	LedgerHandler      *handler.LedgerHandler
	HealthHandler      *handler.HealthHandler

	// Optional
	Metrics          *metrics.Metrics
	MetricsHandler   http.Handler
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Caller)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL).Wrap)
		}

		r.Route("/users", func(r chi.Router) {
			r.Post("/", cfg.UserHandler.Create)
			r.Get("/", cfg.UserHandler.List)
			r.Get("/{id}", cfg.UserHandler.Get)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Delete("/{id}", cfg.AccountHandler.Delete)
			r.Post("/{id}/adjustments", cfg.AccountHandler.Adjust)
			r.Get("/{id}/reconciliation", cfg.LedgerHandler.ReconcileAccount)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", cfg.CategoryHandler.CreateCategory)
			r.Get("/", cfg.CategoryHandler.ListCategories)
			r.Get("/{id}", cfg.CategoryHandler.GetCategory)
			r.Delete("/{id}", cfg.CategoryHandler.DeleteCategory)
		})

		r.Route("/subcategories", func(r chi.Router) {
			r.Post("/", cfg.CategoryHandler.CreateSubcategory)
			r.Get("/", cfg.CategoryHandler.ListSubcategories)
			r.Get("/{id}", cfg.CategoryHandler.GetSubcategory)
			r.Delete("/{id}", cfg.CategoryHandler.DeleteSubcategory)
		})

		r.Route("/expenses", entryRoutes(cfg.ExpenseHandler))
		r.Route("/incomes", entryRoutes(cfg.IncomeHandler))

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Get("/", cfg.TransactionHandler.List)
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.Put("/{id}", cfg.TransactionHandler.Edit)
			r.Delete("/{id}", cfg.TransactionHandler.Delete)
		})

		r.Get("/entries", cfg.OverviewHandler.List)
		r.Get("/ledger/consistency", cfg.LedgerHandler.Consistency)
	})

	return r
}

func entryRoutes(h *handler.EntryHandler) func(chi.Router) {
	return func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Edit)
		r.Delete("/{id}", h.Delete)
	}
}
