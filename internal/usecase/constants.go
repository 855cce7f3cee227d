package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// DefaultCategoryCacheTTL is how long category lists stay cached
	DefaultCategoryCacheTTL = 5 * time.Minute

	// maxReconcileAccounts bounds a single reconciliation pass
	maxReconcileAccounts = 10000
)
