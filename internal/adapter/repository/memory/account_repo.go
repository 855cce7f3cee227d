package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	store *Store
}

// Accounts returns the account repository.
func (s *Store) Accounts() *AccountRepository {
	return &AccountRepository{store: s}
}

// Create inserts an account and assigns its ID.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	return r.store.write(ctx, func(st *state) error {
		if _, ok := st.users[account.OwnerID]; !ok {
			return domain.ErrUserNotFound
		}
		for _, a := range st.accounts {
			if a.Name == account.Name {
				return domain.ErrAccountNameTaken
			}
		}

		account.ID = st.nextID("accounts")
		put(st, st.accounts, account.ID, *account)
		return nil
	})
}

// GetByID retrieves an account.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	var out *domain.Account
	err := r.store.read(ctx, func(st *state) error {
		a, ok := st.accounts[id]
		if !ok {
			return domain.ErrAccountNotFound
		}
		out = &a
		return nil
	})
	return out, err
}

// GetByIDsForUpdate returns the existing accounts among ids, ordered by ID.
// The whole store is already locked by tx.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []int64) ([]*domain.Account, error) {
	st, err := r.store.inTx(tx)
	if err != nil {
		return nil, err
	}

	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	out := make([]*domain.Account, 0, len(sorted))
	for _, id := range sorted {
		if a, ok := st.accounts[id]; ok {
			out = append(out, &a)
		}
	}
	return out, nil
}

// Credit increases the balance and returns the new one.
func (r *AccountRepository) Credit(ctx context.Context, tx usecase.Transaction, id int64, amount decimal.Decimal, at time.Time) (decimal.Decimal, error) {
	return r.apply(tx, id, amount, decimal.Zero, at)
}

// Debit decreases the balance and returns the new one.
func (r *AccountRepository) Debit(ctx context.Context, tx usecase.Transaction, id int64, amount decimal.Decimal, at time.Time) (decimal.Decimal, error) {
	return r.apply(tx, id, amount.Neg(), decimal.Zero, at)
}

// Adjust changes balance and adjustments together.
func (r *AccountRepository) Adjust(ctx context.Context, tx usecase.Transaction, id int64, delta decimal.Decimal, at time.Time) (*domain.Account, error) {
	if _, err := r.apply(tx, id, delta, delta, at); err != nil {
		return nil, err
	}

	st, _ := r.store.inTx(tx)
	a := st.accounts[id]
	return &a, nil
}

func (r *AccountRepository) apply(tx usecase.Transaction, id int64, delta, adjustment decimal.Decimal, at time.Time) (decimal.Decimal, error) {
	st, err := r.store.inTx(tx)
	if err != nil {
		return decimal.Zero, err
	}

	a, ok := st.accounts[id]
	if !ok {
		return decimal.Zero, domain.ErrAccountNotFound
	}

	a.Balance = a.Balance.Add(delta)
	a.Adjustments = a.Adjustments.Add(adjustment)
	a.Version++
	a.UpdatedAt = at
	put(st, st.accounts, id, a)

	return a.Balance, nil
}

// Delete removes an account no entry references.
func (r *AccountRepository) Delete(ctx context.Context, tx usecase.Transaction, id int64) error {
	st, err := r.store.inTx(tx)
	if err != nil {
		return err
	}

	if _, ok := st.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	if st.accountReferenced(id) {
		return domain.ErrReferencedEntityProtected
	}

	drop(st, st.accounts, id)
	return nil
}

// List lists accounts ordered by ID.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	return r.list(ctx, func(domain.Account) bool { return true }, limit, offset)
}

// ListByOwner lists the accounts of one owner ordered by ID.
func (r *AccountRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Account, error) {
	return r.list(ctx, func(a domain.Account) bool { return a.OwnerID == ownerID }, 0, 0)
}

func (r *AccountRepository) list(ctx context.Context, keep func(domain.Account) bool, limit, offset int) ([]*domain.Account, error) {
	var out []*domain.Account
	err := r.store.read(ctx, func(st *state) error {
		for _, a := range st.accounts {
			if keep(a) {
				out = append(out, &a)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return page(out, limit, offset), nil
}

// page applies limit and offset; a zero limit returns everything after offset.
func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
