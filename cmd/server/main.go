package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/iho/panelledger/internal/adapter/http"
	"github.com/iho/panelledger/internal/adapter/http/handler"
	"github.com/iho/panelledger/internal/adapter/http/middleware"
	"github.com/iho/panelledger/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/panelledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/panelledger/internal/adapter/repository/redis"
	"github.com/iho/panelledger/internal/infrastructure/config"
	appLogger "github.com/iho/panelledger/internal/infrastructure/logger"
	"github.com/iho/panelledger/internal/infrastructure/metrics"
	"github.com/iho/panelledger/internal/infrastructure/postgres"
	"github.com/iho/panelledger/internal/infrastructure/redis"
	"github.com/iho/panelledger/internal/usecase"
)

const rateLimiterCleanupInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := appLogger.New(appLogger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}

	logger.Info().Msg("server stopped")
}

// run serves until ctx is cancelled, then drains in-flight requests.
func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	b, err := openBackend(ctx, cfg, logger, m)
	if err != nil {
		return err
	}
	defer b.Close()

	var limiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	router := buildRouter(cfg, b, logger, m, promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}), limiter)
	server := newHTTPServer(cfg, router)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().
			Str("addr", server.Addr).
			Str("storage", cfg.StorageBackend).
			Bool("redis", cfg.RedisEnabled).
			Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if limiter != nil {
		g.Go(func() error {
			ticker := time.NewTicker(rateLimiterCleanupInterval)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					if n := limiter.Cleanup(); n > 0 {
						logger.Debug().Int("evicted", n).Int("tracked", limiter.Size()).Msg("rate limiter cleanup")
					}
				}
			}
		})
	}

	return g.Wait()
}

func newHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      h,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
}

// backend bundles the repositories of one storage backend together with
// the optional redis-backed cache and idempotency store.
type backend struct {
	txManager    usecase.TransactionManager
	accounts     usecase.AccountRepository
	expenses     usecase.EntryRepository
	incomes      usecase.EntryRepository
	transactions usecase.TransactionRepository
	categories   usecase.CategoryRepository
	users        usecase.UserRepository
	ledger       usecase.LedgerRepository

	// nil when the backend has no transient failures worth retrying
	retrier     usecase.Retrier
	cache       usecase.Cache
	idempotency usecase.IdempotencyStore
	checks      []handler.HealthCheck
	closers     []func()
}

// Close releases connections in reverse order of opening.
func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func openBackend(ctx context.Context, cfg *config.Config, logger zerolog.Logger, m *metrics.Metrics) (*backend, error) {
	var b *backend

	switch cfg.StorageBackend {
	case config.StorageMemory:
		b = newMemoryBackend()
		logger.Warn().Msg("using in-memory storage, data is lost on restart")
	case config.StoragePostgres:
		var err error
		b, err = newPostgresBackend(ctx, cfg, logger, m)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	if cfg.RedisEnabled {
		client, err := redis.NewClient(ctx, cfg.RedisURL, cfg.RedisPoolSize)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Info().Msg("connected to redis")

		b.cache = redisRepo.NewCache(client, m)
		b.idempotency = redisRepo.NewIdempotencyStore(client, m)
		b.checks = append(b.checks, handler.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redis.Ping(ctx, client) },
		})
		b.closers = append(b.closers, func() { _ = client.Close() })
	}

	return b, nil
}

func newMemoryBackend() *backend {
	store := memory.New()
	return &backend{
		txManager:    store.TxManager(),
		accounts:     store.Accounts(),
		expenses:     store.Expenses(),
		incomes:      store.Incomes(),
		transactions: store.Transactions(),
		categories:   store.Categories(),
		users:        store.Users(),
		ledger:       store.Ledger(),
	}
}

func newPostgresBackend(ctx context.Context, cfg *config.Config, logger zerolog.Logger, m *metrics.Metrics) (*backend, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.DatabaseTimeout)
	defer cancel()

	pool, err := postgres.NewPoolWithConfig(connectCtx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	logger.Info().Msg("connected to postgres")

	if cfg.MigrateOnStart {
		if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
			pool.Close()
			return nil, err
		}
	}

	return &backend{
		txManager:    postgresRepo.NewTxManager(pool),
		accounts:     postgresRepo.NewAccountRepository(pool),
		expenses:     postgresRepo.NewExpenseRepository(pool),
		incomes:      postgresRepo.NewIncomeRepository(pool),
		transactions: postgresRepo.NewTransactionRepository(pool),
		categories:   postgresRepo.NewCategoryRepository(pool),
		users:        postgresRepo.NewUserRepository(pool),
		ledger:       postgresRepo.NewLedgerRepository(pool),
		retrier:      postgresRepo.NewRetrier(logger, m),
		checks: []handler.HealthCheck{{
			Name:  "postgres",
			Check: func(ctx context.Context) error { return pool.Ping(ctx) },
		}},
		closers: []func(){pool.Close},
	}, nil
}

// buildRouter wires use cases and handlers over b. metricsHandler and
// limiter are optional.
func buildRouter(
	cfg *config.Config,
	b *backend,
	logger zerolog.Logger,
	m *metrics.Metrics,
	metricsHandler http.Handler,
	limiter *middleware.RateLimiter,
) http.Handler {
	userUC := usecase.NewUserUseCase(b.users)
	accountUC := usecase.NewAccountUseCase(b.txManager, b.accounts, logger, m)
	categoryUC := usecase.NewCategoryUseCase(b.categories, b.cache, cfg.CategoryCacheTTL, logger)
	expenseUC := usecase.NewExpenseUseCase(b.txManager, b.accounts, b.expenses, b.categories, logger, m)
	incomeUC := usecase.NewIncomeUseCase(b.txManager, b.accounts, b.incomes, b.categories, logger, m)
	transactionUC := usecase.NewTransactionUseCase(b.txManager, b.accounts, b.transactions, logger, m)
	reconciliationUC := usecase.NewReconciliationUseCase(b.accounts, b.ledger, cfg.ReconcileConcurrency, m)

	return httpAdapter.NewRouter(httpAdapter.RouterConfig{
		Logger:             logger,
		UserHandler:        handler.NewUserHandler(userUC),
		AccountHandler:     handler.NewAccountHandler(accountUC, b.retrier),
		CategoryHandler:    handler.NewCategoryHandler(categoryUC),
		ExpenseHandler:     handler.NewEntryHandler(expenseUC, b.retrier),
		IncomeHandler:      handler.NewEntryHandler(incomeUC, b.retrier),
		TransactionHandler: handler.NewTransactionHandler(transactionUC, b.retrier),
		OverviewHandler:    handler.NewOverviewHandler(expenseUC, incomeUC, transactionUC),
		LedgerHandler:      handler.NewLedgerHandler(reconciliationUC),
		HealthHandler:      handler.NewHealthHandler(b.checks...),
		Metrics:            m,
		MetricsHandler:     metricsHandler,
		IdempotencyStore:   b.idempotency,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		RateLimiter:        limiter,
	})
}
