package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/infrastructure/postgres/generated"
	"github.com/iho/panelledger/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db generated.DBTX) *LedgerRepository {
	return &LedgerRepository{queries: generated.New(db)}
}

// AccountSnapshot reads the balance, adjustments and entry sums of an
// account in a single statement, so all of them come from one snapshot.
func (r *LedgerRepository) AccountSnapshot(ctx context.Context, accountID int64) (usecase.AccountSnapshot, error) {
	row, err := r.queries.GetAccountSnapshot(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return usecase.AccountSnapshot{}, domain.ErrAccountNotFound
		}
		return usecase.AccountSnapshot{}, err
	}

	return usecase.AccountSnapshot{
		Balance:     numericToDecimal(row.Balance),
		Adjustments: numericToDecimal(row.Adjustments),
		Totals: usecase.EntryTotals{
			Incomes:  numericToDecimal(row.Incomes),
			Expenses: numericToDecimal(row.Expenses),
			Incoming: numericToDecimal(row.Incoming),
			Outgoing: numericToDecimal(row.Outgoing),
		},
	}, nil
}

// CheckConsistency returns the sum of balances and the sum implied by
// adjustments, incomes and expenses.
func (r *LedgerRepository) CheckConsistency(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	row, err := r.queries.CheckLedgerConsistency(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(row.TotalBalance), numericToDecimal(row.TotalExpected), nil
}
