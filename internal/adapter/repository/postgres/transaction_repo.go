package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/infrastructure/postgres/generated"
	"github.com/iho/panelledger/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db generated.DBTX) *TransactionRepository {
	return &TransactionRepository{queries: generated.New(db)}
}

// Create inserts a transaction and fills in the generated ID.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
	q, err := r.inTx(tx)
	if err != nil {
		return err
	}

	id, err := q.CreateTransaction(ctx, generated.CreateTransactionParams{
		Account1ID: t.Account1ID,
		Account2ID: t.Account2ID,
		Amount:     decimalToNumeric(t.Amount.Amount),
		Currency:   t.Amount.Currency,
		Date:       timeToPgTimestamptz(t.Date),
		Comment:    t.Comment,
		MakerID:    t.MakerID,
	})
	if err != nil {
		return translateWriteError(err)
	}

	t.ID = id
	return nil
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	row, err := r.queries.GetTransactionByID(ctx, id)
	return transactionResult(row, err)
}

// GetByIDForUpdate retrieves and locks a transaction inside tx.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Transaction, error) {
	q, err := r.inTx(tx)
	if err != nil {
		return nil, err
	}

	row, err := q.GetTransactionByIDForUpdate(ctx, id)
	return transactionResult(row, err)
}

// Update overwrites every mutable column of a transaction.
func (r *TransactionRepository) Update(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
	q, err := r.inTx(tx)
	if err != nil {
		return err
	}

	n, err := q.UpdateTransaction(ctx, generated.UpdateTransactionParams{
		ID:         t.ID,
		Account1ID: t.Account1ID,
		Account2ID: t.Account2ID,
		Amount:     decimalToNumeric(t.Amount.Amount),
		Currency:   t.Amount.Currency,
		Date:       timeToPgTimestamptz(t.Date),
		Comment:    t.Comment,
	})
	if err != nil {
		return translateWriteError(err)
	}
	if n == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// Delete removes a transaction.
func (r *TransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, id int64) error {
	q, err := r.inTx(tx)
	if err != nil {
		return err
	}

	n, err := q.DeleteTransaction(ctx, id)
	if err != nil {
		return translateDeleteError(err)
	}
	if n == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// ListByMaker lists the transactions created by one user, oldest first.
func (r *TransactionRepository) ListByMaker(ctx context.Context, makerID int64) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListTransactionsByMaker(ctx, makerID)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToTransaction(row))
	}

	return out, nil
}

func (r *TransactionRepository) inTx(tx usecase.Transaction) (*generated.Queries, error) {
	ptx, err := pgxTx(tx)
	if err != nil {
		return nil, err
	}
	return r.queries.WithTx(ptx), nil
}

func transactionResult(row generated.Transaction, err error) (*domain.Transaction, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return rowToTransaction(row), nil
}

func rowToTransaction(row generated.Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:         row.ID,
		Account1ID: row.Account1ID,
		Account2ID: row.Account2ID,
		Amount:     domain.NewMoney(numericToDecimal(row.Amount), row.Currency),
		Date:       row.Date.Time.UTC(),
		Comment:    row.Comment,
		MakerID:    row.MakerID,
	}
}
