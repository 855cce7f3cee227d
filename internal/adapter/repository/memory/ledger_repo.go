package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	store *Store
}

// Ledger returns the ledger repository.
func (s *Store) Ledger() *LedgerRepository {
	return &LedgerRepository{store: s}
}

// AccountSnapshot reads the account and sums its entries under one lock,
// so no posting can land between the two.
func (r *LedgerRepository) AccountSnapshot(ctx context.Context, accountID int64) (usecase.AccountSnapshot, error) {
	snap := usecase.AccountSnapshot{}

	err := r.store.read(ctx, func(st *state) error {
		a, ok := st.accounts[accountID]
		if !ok {
			return domain.ErrAccountNotFound
		}
		snap.Balance = a.Balance
		snap.Adjustments = a.Adjustments

		totals := &snap.Totals
		for _, e := range st.incomes {
			if e.AccountID == accountID {
				totals.Incomes = totals.Incomes.Add(e.Amount.Amount)
			}
		}
		for _, e := range st.expenses {
			if e.AccountID == accountID {
				totals.Expenses = totals.Expenses.Add(e.Amount.Amount)
			}
		}
		for _, t := range st.transactions {
			if t.Account2ID == accountID {
				totals.Incoming = totals.Incoming.Add(t.Amount.Amount)
			}
			if t.Account1ID == accountID {
				totals.Outgoing = totals.Outgoing.Add(t.Amount.Amount)
			}
		}
		return nil
	})

	return snap, err
}

// CheckConsistency returns the sum of balances and the sum implied by
// adjustments, incomes and expenses.
func (r *LedgerRepository) CheckConsistency(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	totalBalance := decimal.Zero
	totalExpected := decimal.Zero

	err := r.store.read(ctx, func(st *state) error {
		for _, a := range st.accounts {
			totalBalance = totalBalance.Add(a.Balance)
			totalExpected = totalExpected.Add(a.Adjustments)
		}
		for _, e := range st.incomes {
			totalExpected = totalExpected.Add(e.Amount.Amount)
		}
		for _, e := range st.expenses {
			totalExpected = totalExpected.Sub(e.Amount.Amount)
		}
		return nil
	})

	return totalBalance, totalExpected, err
}
