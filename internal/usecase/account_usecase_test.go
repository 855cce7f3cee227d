package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/infrastructure/metrics"
	"github.com/iho/panelledger/internal/usecase"
	"github.com/iho/panelledger/internal/usecase/mocks"
)

func TestAccountUseCase_CreateAccount(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateAccountInput
		setupMocks  func(*mocks.MockAccountRepository)
		expectError error
	}{
		{
			name: "successful account creation",
			input: usecase.CreateAccountInput{
				Name:           "wallet",
				Currency:       "usd",
				OwnerID:        1,
				OpeningBalance: decimal.NewFromInt(100),
			},
		},
		{
			name:  "default currency",
			input: usecase.CreateAccountInput{Name: "cash", OwnerID: 1},
		},
		{
			name: "create with repository error",
			input: usecase.CreateAccountInput{
				Name:    "wallet",
				OwnerID: 1,
			},
			setupMocks: func(repo *mocks.MockAccountRepository) {
				repo.CreateFunc = func(ctx context.Context, account *domain.Account) error {
					return domain.ErrAccountNameTaken
				}
			},
			expectError: domain.ErrAccountNameTaken,
		},
		{
			name:        "empty name",
			input:       usecase.CreateAccountInput{Name: "  ", OwnerID: 1},
			expectError: domain.ErrInvalidAccountName,
		},
		{
			name:        "unsupported currency",
			input:       usecase.CreateAccountInput{Name: "wallet", Currency: "GBP", OwnerID: 1},
			expectError: domain.ErrInvalidCurrency,
		},
		{
			name:        "missing owner",
			input:       usecase.CreateAccountInput{Name: "wallet"},
			expectError: domain.ErrInvalidInput,
		},
		{
			name:        "opening balance with too many decimals",
			input:       usecase.CreateAccountInput{Name: "wallet", OwnerID: 1, OpeningBalance: decimal.RequireFromString("0.001")},
			expectError: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockAccountRepository()
			if tt.setupMocks != nil {
				tt.setupMocks(repo)
			}

			uc := usecase.NewAccountUseCase(mocks.NewMockTransactionManager(), repo, zerolog.Nop(), nil)
			account, err := uc.CreateAccount(context.Background(), tt.input)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected %v, got %v", tt.expectError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if account.ID == 0 {
				t.Error("expected ID to be assigned")
			}
			if !account.Balance.Equal(tt.input.OpeningBalance) || !account.Adjustments.Equal(tt.input.OpeningBalance) {
				t.Errorf("opening balance must seed balance and adjustments, got %+v", account)
			}
			if !domain.IsSupportedCurrency(account.Currency) {
				t.Errorf("unexpected currency %q", account.Currency)
			}
		})
	}
}

func TestAccountUseCase_AdjustBalance(t *testing.T) {
	repo := mocks.NewMockAccountRepository(&domain.Account{ID: 1, Balance: decimal.NewFromInt(10), Adjustments: decimal.NewFromInt(10)})
	txm := mocks.NewMockTransactionManager()
	m := metrics.New(prometheus.NewRegistry())
	uc := usecase.NewAccountUseCase(txm, repo, zerolog.Nop(), m)

	account, err := uc.AdjustBalance(context.Background(), 1, decimal.NewFromInt(-25))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !account.Balance.Equal(decimal.NewFromInt(-15)) || !account.Adjustments.Equal(decimal.NewFromInt(-15)) {
		t.Errorf("unexpected account %+v", account)
	}
	if txm.Commits != 1 {
		t.Errorf("expected commit, got %d", txm.Commits)
	}
	if got := testutil.ToFloat64(m.AccountOperations.WithLabelValues("adjust")); got != 1 {
		t.Errorf("expected adjust counter 1, got %v", got)
	}

	if _, err := uc.AdjustBalance(context.Background(), 1, decimal.Zero); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount for zero delta, got %v", err)
	}

	if _, err := uc.AdjustBalance(context.Background(), 99, decimal.NewFromInt(1)); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountUseCase_DeleteAccount(t *testing.T) {
	repo := mocks.NewMockAccountRepository(&domain.Account{ID: 1})
	repo.DeleteFunc = func(ctx context.Context, tx usecase.Transaction, id int64) error {
		return domain.ErrReferencedEntityProtected
	}
	txm := mocks.NewMockTransactionManager()
	uc := usecase.NewAccountUseCase(txm, repo, zerolog.Nop(), nil)

	err := uc.DeleteAccount(context.Background(), 1)
	if !errors.Is(err, domain.ErrReferencedEntityProtected) {
		t.Fatalf("expected ErrReferencedEntityProtected, got %v", err)
	}
	if txm.Commits != 0 || txm.Rollbacks != 1 {
		t.Errorf("expected rollback only, got commits=%d rollbacks=%d", txm.Commits, txm.Rollbacks)
	}
}

func TestAccountUseCase_ListAccounts(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	var gotLimit, gotOffset int
	repo.ListFunc = func(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
		gotLimit, gotOffset = limit, offset
		return nil, nil
	}
	uc := usecase.NewAccountUseCase(mocks.NewMockTransactionManager(), repo, zerolog.Nop(), nil)

	if _, err := uc.ListAccounts(context.Background(), usecase.ListAccountsInput{Limit: 0, Offset: -1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 50 || gotOffset != 0 {
		t.Errorf("expected defaults 50/0, got %d/%d", gotLimit, gotOffset)
	}
}

func TestAccountUseCase_ListAccountsByOwner(t *testing.T) {
	repo := mocks.NewMockAccountRepository(
		&domain.Account{ID: 1, OwnerID: 5},
		&domain.Account{ID: 2, OwnerID: 6},
		&domain.Account{ID: 3, OwnerID: 5},
	)
	uc := usecase.NewAccountUseCase(mocks.NewMockTransactionManager(), repo, zerolog.Nop(), nil)

	accounts, err := uc.ListAccountsByOwner(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 2 || accounts[0].ID != 1 || accounts[1].ID != 3 {
		t.Errorf("unexpected accounts %+v", accounts)
	}
}
