package memory

import (
	"context"
	"sort"

	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository for one entry kind.
type EntryRepository struct {
	store *Store
	kind  domain.EntryKind
}

// Expenses returns the expense repository.
func (s *Store) Expenses() *EntryRepository {
	return &EntryRepository{store: s, kind: domain.EntryKindExpense}
}

// Incomes returns the income repository.
func (s *Store) Incomes() *EntryRepository {
	return &EntryRepository{store: s, kind: domain.EntryKindIncome}
}

// Create inserts an entry and assigns its ID.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	st, err := r.store.inTx(tx)
	if err != nil {
		return err
	}

	if err := checkEntryRefs(st, entry); err != nil {
		return err
	}

	entry.ID = st.nextID(string(r.kind))
	entry.Kind = r.kind
	put(st, st.entries(r.kind), entry.ID, *entry)
	return nil
}

// GetByID retrieves an entry.
func (r *EntryRepository) GetByID(ctx context.Context, id int64) (*domain.Entry, error) {
	var out *domain.Entry
	err := r.store.read(ctx, func(st *state) error {
		e, ok := st.entries(r.kind)[id]
		if !ok {
			return domain.ErrEntryNotFound
		}
		out = &e
		return nil
	})
	return out, err
}

// GetByIDForUpdate retrieves an entry inside tx.
func (r *EntryRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Entry, error) {
	st, err := r.store.inTx(tx)
	if err != nil {
		return nil, err
	}

	e, ok := st.entries(r.kind)[id]
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	return &e, nil
}

// Update overwrites a stored entry.
func (r *EntryRepository) Update(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	st, err := r.store.inTx(tx)
	if err != nil {
		return err
	}

	if _, ok := st.entries(r.kind)[entry.ID]; !ok {
		return domain.ErrEntryNotFound
	}
	if err := checkEntryRefs(st, entry); err != nil {
		return err
	}

	put(st, st.entries(r.kind), entry.ID, *entry)
	return nil
}

// Delete removes an entry.
func (r *EntryRepository) Delete(ctx context.Context, tx usecase.Transaction, id int64) error {
	st, err := r.store.inTx(tx)
	if err != nil {
		return err
	}

	if _, ok := st.entries(r.kind)[id]; !ok {
		return domain.ErrEntryNotFound
	}

	drop(st, st.entries(r.kind), id)
	return nil
}

// ListByMaker lists a maker's entries by date, then ID.
func (r *EntryRepository) ListByMaker(ctx context.Context, makerID int64) ([]*domain.Entry, error) {
	var out []*domain.Entry
	err := r.store.read(ctx, func(st *state) error {
		for _, e := range st.entries(r.kind) {
			if e.MakerID == makerID {
				out = append(out, &e)
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

// checkEntryRefs enforces the foreign keys of an entry row.
func checkEntryRefs(st *state, e *domain.Entry) error {
	if _, ok := st.accounts[e.AccountID]; !ok {
		return domain.ErrAccountNotFound
	}
	if _, ok := st.categories[e.CategoryID]; !ok {
		return domain.ErrCategoryNotFound
	}
	if _, ok := st.subcategories[e.SubcategoryID]; !ok {
		return domain.ErrCategoryNotFound
	}
	if _, ok := st.users[e.MakerID]; !ok {
		return domain.ErrUserNotFound
	}
	return nil
}
