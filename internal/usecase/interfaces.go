package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/panelledger/internal/domain"
)

// AccountRepository defines data access for accounts.
// Credit and Debit are the only balance primitives the mutation engine uses.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []int64) ([]*domain.Account, error)
	Credit(ctx context.Context, tx Transaction, id int64, amount decimal.Decimal, at time.Time) (decimal.Decimal, error)
	Debit(ctx context.Context, tx Transaction, id int64, amount decimal.Decimal, at time.Time) (decimal.Decimal, error)
	Adjust(ctx context.Context, tx Transaction, id int64, delta decimal.Decimal, at time.Time) (*domain.Account, error)
	Delete(ctx context.Context, tx Transaction, id int64) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Account, error)
}

// EntryRepository defines data access for one entry kind (expenses or incomes).
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.Entry) error
	GetByID(ctx context.Context, id int64) (*domain.Entry, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id int64) (*domain.Entry, error)
	Update(ctx context.Context, tx Transaction, entry *domain.Entry) error
	Delete(ctx context.Context, tx Transaction, id int64) error
	ListByMaker(ctx context.Context, makerID int64) ([]*domain.Entry, error)
}

// TransactionRepository defines data access for transfers between accounts.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, t *domain.Transaction) error
	GetByID(ctx context.Context, id int64) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id int64) (*domain.Transaction, error)
	Update(ctx context.Context, tx Transaction, t *domain.Transaction) error
	Delete(ctx context.Context, tx Transaction, id int64) error
	ListByMaker(ctx context.Context, makerID int64) ([]*domain.Transaction, error)
}

// CategoryRepository defines data access for categories and subcategories.
// An empty relatedTo lists every row.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, c *domain.Category) error
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	ListCategories(ctx context.Context, relatedTo domain.RelatedTo) ([]*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateSubcategory(ctx context.Context, s *domain.Subcategory) error
	GetSubcategory(ctx context.Context, id int64) (*domain.Subcategory, error)
	ListSubcategories(ctx context.Context, relatedTo domain.RelatedTo) ([]*domain.Subcategory, error)
	DeleteSubcategory(ctx context.Context, id int64) error
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

// EntryTotals are the stored entry sums that make up one account balance.
type EntryTotals struct {
	Incomes  decimal.Decimal
	Expenses decimal.Decimal
	Incoming decimal.Decimal
	Outgoing decimal.Decimal
}

// Net returns the signed effect of the totals on the account.
func (t EntryTotals) Net() decimal.Decimal {
	return t.Incomes.Sub(t.Expenses).Add(t.Incoming).Sub(t.Outgoing)
}

// AccountSnapshot is an account's recorded balance read in the same
// snapshot as the entry sums that should explain it.
type AccountSnapshot struct {
	Balance     decimal.Decimal
	Adjustments decimal.Decimal
	Totals      EntryTotals
}

// Expected returns the balance implied by adjustments and entries.
func (s AccountSnapshot) Expected() decimal.Decimal {
	return s.Adjustments.Add(s.Totals.Net())
}

// LedgerRepository defines data access for ledger-wide operations.
type LedgerRepository interface {
	// AccountSnapshot reads the balance, adjustments and entry sums of one
	// account atomically with respect to concurrent postings.
	AccountSnapshot(ctx context.Context, accountID int64) (AccountSnapshot, error)
	// CheckConsistency returns the sum of all recorded balances and the sum
	// the stored entries and adjustments imply.
	CheckConsistency(ctx context.Context) (totalBalance, totalExpected decimal.Decimal, err error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation that failed with a transient storage error.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a key whose request failed so it can be retried.
	Release(ctx context.Context, key string) error
}
