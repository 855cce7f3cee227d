package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/infrastructure/metrics"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	logger      zerolog.Logger
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		logger:      logger.With().Str("component", "account_usecase").Logger(),
		metrics:     m,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Name           string
	Currency       string
	OwnerID        int64
	OpeningBalance decimal.Decimal
}

// CreateAccount creates a new account. The opening balance is recorded as
// the account's first adjustment.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	name := strings.TrimSpace(input.Name)
	if err := domain.ValidateAccountName(name); err != nil {
		return nil, err
	}

	currency := domain.NormalizeCurrency(input.Currency)
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	if err := domain.ValidateCurrency(currency); err != nil {
		return nil, err
	}

	if input.OwnerID <= 0 {
		return nil, fmt.Errorf("%w: owner is required", domain.ErrInvalidInput)
	}

	if err := validateDelta(input.OpeningBalance, true); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		Name:        name,
		OwnerID:     input.OwnerID,
		Currency:    currency,
		Balance:     input.OpeningBalance,
		Adjustments: input.OpeningBalance,
		Version:     0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Int64("account_id", account.ID).
		Str("name", account.Name).
		Str("opening_balance", account.BalanceMoney().String()).
		Msg("account created")

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.accountRepo.List(ctx, limit, offset)
}

// ListAccountsByOwner lists the accounts owned by a user.
func (uc *AccountUseCase) ListAccountsByOwner(ctx context.Context, ownerID int64) ([]*domain.Account, error) {
	return uc.accountRepo.ListByOwner(ctx, ownerID)
}

// AdjustBalance changes the balance outside of any entry. The delta is
// added to the account's adjustments so reconciliation still balances.
func (uc *AccountUseCase) AdjustBalance(ctx context.Context, id int64, delta decimal.Decimal) (*domain.Account, error) {
	if err := validateDelta(delta, false); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	locked, err := uc.accountRepo.GetByIDsForUpdate(txCtx, tx, []int64{id})
	if err != nil {
		return nil, err
	}
	if len(locked) != 1 {
		return nil, domain.ErrAccountNotFound
	}

	account, err := uc.accountRepo.Adjust(txCtx, tx, id, delta, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Int64("account_id", id).
		Str("delta", delta.StringFixed(domain.AmountScale)).
		Str("balance", account.BalanceMoney().String()).
		Msg("account balance adjusted")

	if uc.metrics != nil {
		uc.metrics.AccountOperations.WithLabelValues("adjust").Inc()
	}

	return account, nil
}

// DeleteAccount removes an account that no entry references.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id int64) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if err := uc.accountRepo.Delete(txCtx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(txCtx); err != nil {
		return err
	}

	uc.logger.Info().Int64("account_id", id).Msg("account deleted")

	if uc.metrics != nil {
		uc.metrics.AccountOperations.WithLabelValues("delete").Inc()
	}

	return nil
}

// validateDelta checks a signed balance change. Zero is only accepted
// when allowZero is set.
func validateDelta(delta decimal.Decimal, allowZero bool) error {
	if delta.IsZero() {
		if allowZero {
			return nil
		}
		return fmt.Errorf("%w: adjustment must not be zero", domain.ErrInvalidAmount)
	}

	return domain.ValidateAmount(delta.Abs())
}
