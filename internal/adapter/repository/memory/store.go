// Package memory provides an in-memory storage backend used for development
// and tests. A transaction holds the store-wide lock for its whole life and
// writes straight into the shared tables, journaling the previous value of
// every row it touches. Rollback replays the journal backwards.
package memory

import (
	"context"
	"errors"

	"golang.org/x/sync/semaphore"

	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/usecase"
)

// ErrForeignTx is returned when a transaction from another backend or store
// is passed to a repository.
var ErrForeignTx = errors.New("memory: transaction does not belong to this store")

type state struct {
	seq           map[string]int64
	users         map[int64]domain.User
	accounts      map[int64]domain.Account
	categories    map[int64]domain.Category
	subcategories map[int64]domain.Subcategory
	expenses      map[int64]domain.Entry
	incomes       map[int64]domain.Entry
	transactions  map[int64]domain.Transaction

	// undo holds the inverse of every change made by the open transaction.
	undo []func()
}

func newState() *state {
	return &state{
		seq:           make(map[string]int64),
		users:         make(map[int64]domain.User),
		accounts:      make(map[int64]domain.Account),
		categories:    make(map[int64]domain.Category),
		subcategories: make(map[int64]domain.Subcategory),
		expenses:      make(map[int64]domain.Entry),
		incomes:       make(map[int64]domain.Entry),
		transactions:  make(map[int64]domain.Transaction),
	}
}

// put stores v under id in m and journals the row it replaces.
func put[V any](st *state, m map[int64]V, id int64, v V) {
	st.undo = append(st.undo, restore(m, id))
	m[id] = v
}

// drop removes id from m and journals the removed row.
func drop[V any](st *state, m map[int64]V, id int64) {
	st.undo = append(st.undo, restore(m, id))
	delete(m, id)
}

func restore[V any](m map[int64]V, id int64) func() {
	old, existed := m[id]
	return func() {
		if existed {
			m[id] = old
		} else {
			delete(m, id)
		}
	}
}

// rollback undoes the journaled changes newest first.
func (s *state) rollback() {
	for i := len(s.undo) - 1; i >= 0; i-- {
		s.undo[i]()
	}
	s.undo = nil
}

func (s *state) nextID(table string) int64 {
	prev := s.seq[table]
	s.undo = append(s.undo, func() { s.seq[table] = prev })
	s.seq[table] = prev + 1
	return prev + 1
}

func (s *state) entries(kind domain.EntryKind) map[int64]domain.Entry {
	if kind == domain.EntryKindIncome {
		return s.incomes
	}
	return s.expenses
}

// accountReferenced reports whether any entry or transaction points at the account.
func (s *state) accountReferenced(id int64) bool {
	for _, e := range s.expenses {
		if e.AccountID == id {
			return true
		}
	}
	for _, e := range s.incomes {
		if e.AccountID == id {
			return true
		}
	}
	for _, t := range s.transactions {
		if t.Account1ID == id || t.Account2ID == id {
			return true
		}
	}
	return false
}

// Store is an in-memory implementation of every repository.
type Store struct {
	lock *semaphore.Weighted
	st   *state
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{lock: semaphore.NewWeighted(1), st: newState()}
}

// Reset drops all data.
func (s *Store) Reset() {
	_ = s.lock.Acquire(context.Background(), 1)
	s.st = newState()
	s.lock.Release(1)
}

// read runs fn under the store lock against committed data.
func (s *Store) read(ctx context.Context, fn func(st *state) error) error {
	if err := s.lock.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.lock.Release(1)

	return fn(s.st)
}

// write runs fn as a single-statement transaction: changes are kept only
// when fn succeeds.
func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	if err := s.lock.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.lock.Release(1)

	if err := fn(s.st); err != nil {
		s.st.rollback()
		return err
	}
	s.st.undo = nil
	return nil
}

// inTx returns the state tx writes to.
func (s *Store) inTx(tx usecase.Transaction) (*state, error) {
	t, ok := tx.(*Tx)
	if !ok || t.store != s {
		return nil, ErrForeignTx
	}
	if t.done {
		return nil, errTxDone
	}
	return s.st, nil
}

// TxManager implements usecase.TransactionManager.
type TxManager struct {
	store *Store
}

// TxManager returns the transaction manager for the store.
func (s *Store) TxManager() *TxManager {
	return &TxManager{store: s}
}

// Begin waits for the store lock and starts a transaction. It gives up
// when ctx ends first.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if err := m.store.lock.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	return &Tx{store: m.store}, nil
}

var errTxDone = errors.New("memory: transaction already finished")

// Tx is an open in-memory transaction.
type Tx struct {
	store *Store
	done  bool
}

// Commit keeps the changes and releases the store lock.
func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return errTxDone
	}

	t.store.st.undo = nil
	t.done = true
	t.store.lock.Release(1)

	return nil
}

// Rollback undoes the changes. It is a no-op after Commit.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}

	t.store.st.rollback()
	t.done = true
	t.store.lock.Release(1)

	return nil
}
