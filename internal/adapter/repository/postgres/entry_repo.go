package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/infrastructure/postgres/generated"
	"github.com/iho/panelledger/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository over the expenses or
// the incomes table. Both tables share one column layout.
type EntryRepository struct {
	db    generated.DBTX
	kind  domain.EntryKind
	table string
}

// NewExpenseRepository returns the repository for the expenses table.
func NewExpenseRepository(db generated.DBTX) *EntryRepository {
	return &EntryRepository{db: db, kind: domain.EntryKindExpense, table: "expenses"}
}

// NewIncomeRepository returns the repository for the incomes table.
func NewIncomeRepository(db generated.DBTX) *EntryRepository {
	return &EntryRepository{db: db, kind: domain.EntryKindIncome, table: "incomes"}
}

const entryColumns = "id, category_id, subcategory_id, account_id, amount, currency, date, comment, maker_id"

// Create inserts an entry and fills in the generated ID.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	ptx, err := pgxTx(tx)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (category_id, subcategory_id, account_id, amount, currency, date, comment, maker_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, r.table)

	err = ptx.QueryRow(ctx, query,
		entry.CategoryID,
		entry.SubcategoryID,
		entry.AccountID,
		decimalToNumeric(entry.Amount.Amount),
		entry.Amount.Currency,
		entry.Date,
		entry.Comment,
		entry.MakerID,
	).Scan(&entry.ID)
	if err != nil {
		return translateWriteError(err)
	}

	entry.Kind = r.kind
	return nil
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id int64) (*domain.Entry, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, entryColumns, r.table)
	return r.scan(r.db.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves and locks an entry inside tx.
func (r *EntryRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Entry, error) {
	ptx, err := pgxTx(tx)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 FOR UPDATE`, entryColumns, r.table)
	return r.scan(ptx.QueryRow(ctx, query, id))
}

// Update overwrites every mutable column of an entry.
func (r *EntryRepository) Update(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	ptx, err := pgxTx(tx)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET category_id = $2, subcategory_id = $3, account_id = $4, amount = $5, currency = $6, date = $7, comment = $8
		WHERE id = $1
	`, r.table)

	tag, err := ptx.Exec(ctx, query,
		entry.ID,
		entry.CategoryID,
		entry.SubcategoryID,
		entry.AccountID,
		decimalToNumeric(entry.Amount.Amount),
		entry.Amount.Currency,
		entry.Date,
		entry.Comment,
	)
	if err != nil {
		return translateWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// Delete removes an entry.
func (r *EntryRepository) Delete(ctx context.Context, tx usecase.Transaction, id int64) error {
	ptx, err := pgxTx(tx)
	if err != nil {
		return err
	}

	tag, err := ptx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table), id)
	if err != nil {
		return translateDeleteError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// ListByMaker lists the entries created by one user, oldest first.
func (r *EntryRepository) ListByMaker(ctx context.Context, makerID int64) ([]*domain.Entry, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE maker_id = $1 ORDER BY date, id`, entryColumns, r.table)

	rows, err := r.db.Query(ctx, query, makerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*domain.Entry{}
	for rows.Next() {
		entry, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (r *EntryRepository) scan(row pgx.Row) (*domain.Entry, error) {
	var (
		entry    domain.Entry
		amount   pgtype.Numeric
		currency string
	)

	err := row.Scan(
		&entry.ID,
		&entry.CategoryID,
		&entry.SubcategoryID,
		&entry.AccountID,
		&amount,
		&currency,
		&entry.Date,
		&entry.Comment,
		&entry.MakerID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}

	entry.Kind = r.kind
	entry.Amount = domain.NewMoney(numericToDecimal(amount), currency)
	entry.Date = entry.Date.UTC()

	return &entry, nil
}
