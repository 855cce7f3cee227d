package memory

import (
	"context"
	"sort"

	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	store *Store
}

// Transactions returns the transaction repository.
func (s *Store) Transactions() *TransactionRepository {
	return &TransactionRepository{store: s}
}

// Create inserts a transaction and assigns its ID.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
	st, err := r.store.inTx(tx)
	if err != nil {
		return err
	}

	if err := checkTransactionRefs(st, t); err != nil {
		return err
	}

	t.ID = st.nextID("transactions")
	put(st, st.transactions, t.ID, *t)
	return nil
}

// GetByID retrieves a transaction.
func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	var out *domain.Transaction
	err := r.store.read(ctx, func(st *state) error {
		t, ok := st.transactions[id]
		if !ok {
			return domain.ErrTransactionNotFound
		}
		out = &t
		return nil
	})
	return out, err
}

// GetByIDForUpdate retrieves a transaction inside tx.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Transaction, error) {
	st, err := r.store.inTx(tx)
	if err != nil {
		return nil, err
	}

	t, ok := st.transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	return &t, nil
}

// Update overwrites a stored transaction.
func (r *TransactionRepository) Update(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
	st, err := r.store.inTx(tx)
	if err != nil {
		return err
	}

	if _, ok := st.transactions[t.ID]; !ok {
		return domain.ErrTransactionNotFound
	}
	if err := checkTransactionRefs(st, t); err != nil {
		return err
	}

	put(st, st.transactions, t.ID, *t)
	return nil
}

// Delete removes a transaction.
func (r *TransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, id int64) error {
	st, err := r.store.inTx(tx)
	if err != nil {
		return err
	}

	if _, ok := st.transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}

	drop(st, st.transactions, id)
	return nil
}

// ListByMaker lists a maker's transactions by date, then ID.
func (r *TransactionRepository) ListByMaker(ctx context.Context, makerID int64) ([]*domain.Transaction, error) {
	var out []*domain.Transaction
	err := r.store.read(ctx, func(st *state) error {
		for _, t := range st.transactions {
			if t.MakerID == makerID {
				out = append(out, &t)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func checkTransactionRefs(st *state, t *domain.Transaction) error {
	if _, ok := st.accounts[t.Account1ID]; !ok {
		return domain.ErrAccountNotFound
	}
	if _, ok := st.accounts[t.Account2ID]; !ok {
		return domain.ErrAccountNotFound
	}
	if _, ok := st.users[t.MakerID]; !ok {
		return domain.ErrUserNotFound
	}
	return nil
}
