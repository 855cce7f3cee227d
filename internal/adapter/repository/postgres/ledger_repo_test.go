package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"github.com/iho/panelledger/internal/domain"
)

func TestLedgerRepositoryAccountSnapshotReadsBalanceWithSums(t *testing.T) {
	mockPool := newMockPool(t)
	num := func(v int64) any { return decimalToNumeric(decimal.NewFromInt(v)) }
	mockPool.ExpectQuery("SELECT a.balance, a.adjustments, (.+) FROM accounts a WHERE a.id = \\$1").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"balance", "adjustments", "incomes", "expenses", "incoming", "outgoing"}).
			AddRow(num(65), num(100), num(20), num(30), num(5), num(30)))
	mockPool.ExpectQuery("FROM accounts a WHERE a.id").
		WithArgs(int64(2)).
		WillReturnError(pgx.ErrNoRows)

	repo := NewLedgerRepository(mockPool)

	snap, err := repo.AccountSnapshot(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !snap.Balance.Equal(decimal.NewFromInt(65)) || !snap.Adjustments.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if !snap.Expected().Equal(snap.Balance) {
		t.Fatalf("expected %s to explain balance %s", snap.Expected(), snap.Balance)
	}

	if _, err := repo.AccountSnapshot(context.Background(), 2); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestLedgerRepositoryCheckConsistency(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectQuery("SELECT (.+) AS total_balance").
		WillReturnRows(pgxmock.NewRows([]string{"total_balance", "total_expected"}).
			AddRow(decimalToNumeric(decimal.RequireFromString("10.50")), decimalToNumeric(decimal.RequireFromString("10.5"))))

	totalBalance, totalExpected, err := NewLedgerRepository(mockPool).CheckConsistency(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !totalBalance.Equal(totalExpected) {
		t.Fatalf("expected equal totals, got %s and %s", totalBalance, totalExpected)
	}

	assertExpectations(t, mockPool)
}
