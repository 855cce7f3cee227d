package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"github.com/iho/panelledger/internal/domain"
)

var accountColumns = []string{"id", "name", "owner_id", "currency", "balance", "adjustments", "version", "created_at", "updated_at"}

func TestAccountRepositoryCreditReturnsBalance(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectBegin()
	mockPool.ExpectQuery("UPDATE accounts").
		WithArgs(int64(7), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(decimalToNumeric(decimal.RequireFromString("120.50"))))
	mockPool.ExpectRollback()

	repo := NewAccountRepository(mockPool)
	tx, err := newTxManagerWithPool(mockPool).Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	balance, err := repo.Credit(context.Background(), tx, 7, decimal.NewFromInt(20), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !balance.Equal(decimal.RequireFromString("120.5")) {
		t.Fatalf("expected balance 120.5, got %s", balance)
	}

	if err := tx.Rollback(context.Background()); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	assertExpectations(t, mockPool)
}

func TestAccountRepositoryDebitMissingAccount(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectBegin()
	mockPool.ExpectQuery("UPDATE accounts").
		WithArgs(int64(9), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	repo := NewAccountRepository(mockPool)
	tx, err := newTxManagerWithPool(mockPool).Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	if _, err := repo.Debit(context.Background(), tx, 9, decimal.NewFromInt(1), time.Now()); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountRepositoryRejectsForeignTx(t *testing.T) {
	repo := NewAccountRepository(newMockPool(t))

	if _, err := repo.Credit(context.Background(), foreignTx{}, 1, decimal.NewFromInt(1), time.Now()); !errors.Is(err, ErrForeignTx) {
		t.Fatalf("expected ErrForeignTx, got %v", err)
	}
}

func TestAccountRepositoryGetByID(t *testing.T) {
	mockPool := newMockPool(t)
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	mockPool.ExpectQuery("SELECT (.+) FROM accounts WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows(accountColumns).AddRow(
			int64(3), "cash", int64(1), "UZS",
			decimalToNumeric(decimal.NewFromInt(-15)),
			decimalToNumeric(decimal.NewFromInt(10)),
			int64(4),
			timeToPgTimestamptz(now),
			timeToPgTimestamptz(now),
		))
	mockPool.ExpectQuery("SELECT (.+) FROM accounts WHERE id").
		WithArgs(int64(4)).
		WillReturnError(pgx.ErrNoRows)

	repo := NewAccountRepository(mockPool)

	account, err := repo.GetByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.Name != "cash" || !account.Balance.Equal(decimal.NewFromInt(-15)) || account.Version != 4 {
		t.Fatalf("unexpected account %+v", account)
	}

	if _, err := repo.GetByID(context.Background(), 4); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestAccountRepositoryDelete(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectBegin()
	mockPool.ExpectExec("DELETE FROM accounts").
		WithArgs(int64(1)).
		WillReturnError(&pgconn.PgError{Code: pgErrForeignKeyViolation, TableName: "expenses"})
	mockPool.ExpectExec("DELETE FROM accounts").
		WithArgs(int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewAccountRepository(mockPool)
	tx, err := newTxManagerWithPool(mockPool).Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	if err := repo.Delete(context.Background(), tx, 1); !errors.Is(err, domain.ErrReferencedEntityProtected) {
		t.Fatalf("expected ErrReferencedEntityProtected, got %v", err)
	}
	if err := repo.Delete(context.Background(), tx, 2); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountRepositoryCreateDuplicateName(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectQuery("INSERT INTO accounts").
		WithArgs("cash", int64(1), "UZS", pgxmock.AnyArg(), pgxmock.AnyArg(), int64(0), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation, ConstraintName: "accounts_name_key"})

	repo := NewAccountRepository(mockPool)
	err := repo.Create(context.Background(), &domain.Account{Name: "cash", OwnerID: 1, Currency: "UZS"})
	if !errors.Is(err, domain.ErrAccountNameTaken) {
		t.Fatalf("expected ErrAccountNameTaken, got %v", err)
	}
}

func TestAccountRepositoryAdjustBindsDeltaBeforeID(t *testing.T) {
	mockPool := newMockPool(t)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	mockPool.ExpectBegin()
	mockPool.ExpectQuery("UPDATE accounts SET balance = balance \\+ \\$1, adjustments = adjustments \\+ \\$1").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), int64(5)).
		WillReturnRows(pgxmock.NewRows(accountColumns).AddRow(
			int64(5), "card", int64(1), "UZS",
			decimalToNumeric(decimal.NewFromInt(90)),
			decimalToNumeric(decimal.NewFromInt(-10)),
			int64(2),
			timeToPgTimestamptz(now),
			timeToPgTimestamptz(now),
		))
	mockPool.ExpectQuery("UPDATE accounts").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), int64(6)).
		WillReturnError(pgx.ErrNoRows)
	mockPool.ExpectRollback()

	repo := NewAccountRepository(mockPool)
	tx, err := newTxManagerWithPool(mockPool).Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	account, err := repo.Adjust(context.Background(), tx, 5, decimal.NewFromInt(-10), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !account.Adjustments.Equal(decimal.NewFromInt(-10)) || account.Version != 2 {
		t.Fatalf("unexpected account %+v", account)
	}

	if _, err := repo.Adjust(context.Background(), tx, 6, decimal.NewFromInt(1), now); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	if err := tx.Rollback(context.Background()); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	assertExpectations(t, mockPool)
}

type foreignTx struct{}

func (foreignTx) Commit(context.Context) error   { return nil }
func (foreignTx) Rollback(context.Context) error { return nil }
