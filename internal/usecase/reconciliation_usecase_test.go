package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/usecase"
	"github.com/iho/panelledger/internal/usecase/mocks"
)

func TestReconciliationUseCase_ReconcileAccount(t *testing.T) {
	accounts := mocks.NewMockAccountRepository(&domain.Account{ID: 1})
	ledger := &mocks.MockLedgerRepository{
		AccountSnapshotFunc: func(ctx context.Context, accountID int64) (usecase.AccountSnapshot, error) {
			return usecase.AccountSnapshot{
				Balance:     decimal.NewFromInt(65),
				Adjustments: decimal.NewFromInt(100),
				Totals: usecase.EntryTotals{
					Incomes:  decimal.NewFromInt(20),
					Expenses: decimal.NewFromInt(30),
					Incoming: decimal.NewFromInt(5),
					Outgoing: decimal.NewFromInt(30),
				},
			}, nil
		},
	}
	uc := usecase.NewReconciliationUseCase(accounts, ledger, 2, nil)

	result, err := uc.ReconcileAccount(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.CalculatedBalance.Equal(decimal.NewFromInt(65)) {
		t.Errorf("expected calculated 65, got %s", result.CalculatedBalance)
	}
	if !result.IsReconciled || !result.Difference.IsZero() {
		t.Errorf("expected reconciled result, got %+v", result)
	}
}

func TestReconciliationUseCase_ReportsDiscrepancy(t *testing.T) {
	accounts := mocks.NewMockAccountRepository(&domain.Account{ID: 1}, &domain.Account{ID: 2})
	balances := map[int64]int64{1: 10, 2: 12}
	ledger := &mocks.MockLedgerRepository{
		AccountSnapshotFunc: func(ctx context.Context, accountID int64) (usecase.AccountSnapshot, error) {
			return usecase.AccountSnapshot{
				Balance:     decimal.NewFromInt(balances[accountID]),
				Adjustments: decimal.NewFromInt(10),
			}, nil
		},
		CheckConsistencyFunc: func(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
			return decimal.NewFromInt(22), decimal.NewFromInt(20), nil
		},
	}
	uc := usecase.NewReconciliationUseCase(accounts, ledger, 2, nil)

	report, err := uc.GenerateReconciliationReport(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.TotalAccounts != 2 || report.ReconciledAccounts != 1 {
		t.Errorf("unexpected counts %+v", report)
	}
	if len(report.Discrepancies) != 1 || report.Discrepancies[0].AccountID != 2 {
		t.Fatalf("expected discrepancy on account 2, got %+v", report.Discrepancies)
	}
	if !report.Discrepancies[0].Difference.Equal(decimal.NewFromInt(2)) {
		t.Errorf("expected difference 2, got %s", report.Discrepancies[0].Difference)
	}
	if report.LedgerConsistent {
		t.Error("expected ledger to be inconsistent")
	}

	if err := uc.CheckLedgerConsistency(context.Background()); !errors.Is(err, usecase.ErrInconsistentLedger) {
		t.Errorf("expected ErrInconsistentLedger, got %v", err)
	}
}

func TestReconciliationUseCase_PropagatesErrors(t *testing.T) {
	accounts := mocks.NewMockAccountRepository(&domain.Account{ID: 1})
	ledgerErr := errors.New("query failed")
	ledger := &mocks.MockLedgerRepository{
		AccountSnapshotFunc: func(ctx context.Context, accountID int64) (usecase.AccountSnapshot, error) {
			if accountID == 2 {
				return usecase.AccountSnapshot{}, domain.ErrAccountNotFound
			}
			return usecase.AccountSnapshot{}, ledgerErr
		},
	}
	uc := usecase.NewReconciliationUseCase(accounts, ledger, 1, nil)

	if _, err := uc.ReconcileAllAccounts(context.Background()); !errors.Is(err, ledgerErr) {
		t.Fatalf("expected ledger error, got %v", err)
	}

	if _, err := uc.ReconcileAccount(context.Background(), 2); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestReconciliationUseCase_SkipsAccountsDeletedAfterListing(t *testing.T) {
	accounts := mocks.NewMockAccountRepository(&domain.Account{ID: 1}, &domain.Account{ID: 2})
	ledger := &mocks.MockLedgerRepository{
		AccountSnapshotFunc: func(ctx context.Context, accountID int64) (usecase.AccountSnapshot, error) {
			if accountID == 2 {
				return usecase.AccountSnapshot{}, domain.ErrAccountNotFound
			}
			return usecase.AccountSnapshot{}, nil
		},
	}
	uc := usecase.NewReconciliationUseCase(accounts, ledger, 2, nil)

	results, err := uc.ReconcileAllAccounts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].AccountID != 1 {
		t.Fatalf("expected only account 1, got %+v", results)
	}
}

func TestReconciliationUseCase_CheckLedgerConsistency(t *testing.T) {
	dbDown := errors.New("db down")

	tests := []struct {
		name          string
		totalBalance  decimal.Decimal
		totalExpected decimal.Decimal
		repoErr       error
		expectedErr   error
	}{
		{
			name:          "balanced ledger",
			totalBalance:  decimal.NewFromInt(140),
			totalExpected: decimal.NewFromInt(140),
		},
		{
			name:        "repo error surfaces",
			repoErr:     dbDown,
			expectedErr: dbDown,
		},
		{
			name:          "balances drifted",
			totalBalance:  decimal.NewFromInt(150),
			totalExpected: decimal.NewFromInt(140),
			expectedErr:   usecase.ErrInconsistentLedger,
		},
		{
			name:          "negative totals still compared",
			totalBalance:  decimal.RequireFromString("-10.50"),
			totalExpected: decimal.RequireFromString("-10.5"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := &mocks.MockLedgerRepository{
				CheckConsistencyFunc: func(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
					return tt.totalBalance, tt.totalExpected, tt.repoErr
				},
			}
			uc := usecase.NewReconciliationUseCase(mocks.NewMockAccountRepository(), ledger, 1, nil)

			err := uc.CheckLedgerConsistency(context.Background())

			if tt.expectedErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.expectedErr != nil && !errors.Is(err, tt.expectedErr) {
				t.Fatalf("expected %v, got %v", tt.expectedErr, err)
			}
		})
	}
}
