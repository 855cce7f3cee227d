package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Mutation engine metrics
	Mutations        *prometheus.CounterVec
	MutationDuration *prometheus.HistogramVec
	MutationAmount   *prometheus.HistogramVec
	MutationErrors   *prometheus.CounterVec

	// Account metrics
	AccountsCreated   prometheus.Counter
	AccountOperations *prometheus.CounterVec

	// Reconciliation metrics
	ReconciliationRuns          prometheus.Counter
	ReconciliationDiscrepancies prometheus.Gauge

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBRetries *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec
}

// New creates all metrics and registers them with reg.
// A nil reg registers with the default Prometheus registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		// Mutation engine metrics
		Mutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panelledger_mutations_total",
				Help: "Total ledger mutations by entry kind and operation",
			},
			[]string{"kind", "operation"},
		),
		MutationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "panelledger_mutation_duration_seconds",
				Help:    "Duration of ledger mutations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind", "operation"},
		),
		MutationAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "panelledger_mutation_amount",
				Help:    "Amounts posted by ledger mutations",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"kind"},
		),
		MutationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panelledger_mutation_errors_total",
				Help: "Total failed ledger mutations by error type",
			},
			[]string{"kind", "error_type"},
		),

		// Account metrics
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "panelledger_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panelledger_account_operations_total",
				Help: "Total account balance operations by type",
			},
			[]string{"operation"},
		),

		// Reconciliation metrics
		ReconciliationRuns: factory.NewCounter(prometheus.CounterOpts{
			Name: "panelledger_reconciliation_runs_total",
			Help: "Total reconciliation reports generated",
		}),
		ReconciliationDiscrepancies: factory.NewGauge(prometheus.GaugeOpts{
			Name: "panelledger_reconciliation_discrepancies",
			Help: "Accounts whose balance disagreed with their entries in the last report",
		}),

		// API metrics
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panelledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "panelledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBRetries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panelledger_db_retries_total",
				Help: "Retried database transactions by postgres error code",
			},
			[]string{"code"},
		),

		// Redis metrics
		RedisOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panelledger_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panelledger_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),
	}
}
