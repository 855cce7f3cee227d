package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/infrastructure/postgres/generated"
	"github.com/iho/panelledger/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	queries *generated.Queries
}

// NewAccountRepository creates a new AccountRepository. db is usually a
// *pgxpool.Pool.
func NewAccountRepository(db generated.DBTX) *AccountRepository {
	return &AccountRepository{queries: generated.New(db)}
}

// Create inserts an account and fills in the generated ID.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	row, err := r.queries.CreateAccount(ctx, generated.CreateAccountParams{
		Name:        account.Name,
		OwnerID:     account.OwnerID,
		Currency:    account.Currency,
		Balance:     decimalToNumeric(account.Balance),
		Adjustments: decimalToNumeric(account.Adjustments),
		Version:     account.Version,
		CreatedAt:   timeToPgTimestamptz(account.CreatedAt),
		UpdatedAt:   timeToPgTimestamptz(account.UpdatedAt),
	})
	if err != nil {
		return translateWriteError(err)
	}

	*account = *rowToAccount(row)
	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	row, err := r.queries.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// GetByIDsForUpdate locks the existing accounts among ids in ascending
// ID order.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []int64) ([]*domain.Account, error) {
	q, err := r.inTx(tx)
	if err != nil {
		return nil, err
	}

	rows, err := q.GetAccountsByIDsForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}

	return rowsToAccounts(rows), nil
}

// Credit adds amount to the balance and returns the new balance.
func (r *AccountRepository) Credit(ctx context.Context, tx usecase.Transaction, id int64, amount decimal.Decimal, at time.Time) (decimal.Decimal, error) {
	q, err := r.inTx(tx)
	if err != nil {
		return decimal.Zero, err
	}

	balance, err := q.CreditAccount(ctx, generated.CreditAccountParams{
		ID:        id,
		Amount:    decimalToNumeric(amount),
		UpdatedAt: timeToPgTimestamptz(at),
	})

	return balanceResult(balance, err)
}

// Debit subtracts amount from the balance and returns the new balance.
func (r *AccountRepository) Debit(ctx context.Context, tx usecase.Transaction, id int64, amount decimal.Decimal, at time.Time) (decimal.Decimal, error) {
	q, err := r.inTx(tx)
	if err != nil {
		return decimal.Zero, err
	}

	balance, err := q.DebitAccount(ctx, generated.DebitAccountParams{
		ID:        id,
		Amount:    decimalToNumeric(amount),
		UpdatedAt: timeToPgTimestamptz(at),
	})

	return balanceResult(balance, err)
}

// Adjust changes balance and adjustments by delta.
func (r *AccountRepository) Adjust(ctx context.Context, tx usecase.Transaction, id int64, delta decimal.Decimal, at time.Time) (*domain.Account, error) {
	q, err := r.inTx(tx)
	if err != nil {
		return nil, err
	}

	row, err := q.AdjustAccount(ctx, generated.AdjustAccountParams{
		ID:        id,
		Delta:     decimalToNumeric(delta),
		UpdatedAt: timeToPgTimestamptz(at),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, translateWriteError(err)
	}

	return rowToAccount(row), nil
}

// Delete removes an account. Referenced accounts are protected.
func (r *AccountRepository) Delete(ctx context.Context, tx usecase.Transaction, id int64) error {
	q, err := r.inTx(tx)
	if err != nil {
		return err
	}

	n, err := q.DeleteAccount(ctx, id)
	if err != nil {
		return translateDeleteError(err)
	}
	if n == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// List lists accounts with pagination.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.queries.ListAccounts(ctx, generated.ListAccountsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToAccounts(rows), nil
}

// ListByOwner lists the accounts of one owner.
func (r *AccountRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Account, error) {
	rows, err := r.queries.ListAccountsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return rowsToAccounts(rows), nil
}

func (r *AccountRepository) inTx(tx usecase.Transaction) (*generated.Queries, error) {
	ptx, err := pgxTx(tx)
	if err != nil {
		return nil, err
	}
	return r.queries.WithTx(ptx), nil
}

func balanceResult(balance pgtype.Numeric, err error) (decimal.Decimal, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrAccountNotFound
		}
		return decimal.Zero, translateWriteError(err)
	}
	return numericToDecimal(balance), nil
}

func rowToAccount(row generated.Account) *domain.Account {
	return &domain.Account{
		ID:          row.ID,
		Name:        row.Name,
		OwnerID:     row.OwnerID,
		Currency:    row.Currency,
		Balance:     numericToDecimal(row.Balance),
		Adjustments: numericToDecimal(row.Adjustments),
		Version:     row.Version,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}

func rowsToAccounts(rows []generated.Account) []*domain.Account {
	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}
	return accounts
}
