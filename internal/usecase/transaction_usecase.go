package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/infrastructure/metrics"
)

// TransactionUseCase handles transfers between two accounts.
type TransactionUseCase struct {
	txManager       TransactionManager
	transactionRepo TransactionRepository
	poster          *poster
	recorder        recorder
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:       txManager,
		transactionRepo: transactionRepo,
		poster:          &poster{accountRepo: accountRepo},
		recorder: recorder{
			kind:    "transaction",
			logger:  logger.With().Str("component", "transaction_usecase").Logger(),
			metrics: m,
		},
	}
}

// CreateTransactionInput represents input for creating a transaction.
type CreateTransactionInput struct {
	Account1ID int64
	Account2ID int64
	Amount     decimal.Decimal
	Currency   string
	Comment    string
	MakerID    int64
}

// EditTransactionInput represents input for editing a transaction.
// A zero Date keeps the stored date.
type EditTransactionInput struct {
	ID         int64
	Account1ID int64
	Account2ID int64
	Amount     decimal.Decimal
	Currency   string
	Date       time.Time
	Comment    string
}

// Create debits Account1, credits Account2 and stores the transaction.
func (uc *TransactionUseCase) Create(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	start := time.Now()

	t, err := uc.create(ctx, input)
	if err != nil {
		uc.recorder.record("create", 0, input.Amount, start, err)
		return nil, err
	}

	uc.recorder.record("create", t.ID, t.Amount.Amount, start, nil)

	return t, nil
}

func (uc *TransactionUseCase) create(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	if input.MakerID <= 0 {
		return nil, domain.ErrMissingCaller
	}

	currency, err := validateMoney(input.Amount, input.Currency)
	if err != nil {
		return nil, err
	}

	comment, err := domain.SanitizeComment(input.Comment)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t := &domain.Transaction{
		Account1ID: input.Account1ID,
		Account2ID: input.Account2ID,
		Amount:     domain.Money{Amount: input.Amount, Currency: currency},
		Date:       now,
		Comment:    comment,
		MakerID:    input.MakerID,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	accounts, err := uc.poster.replace(txCtx, tx, nil, t.Postings(), now)
	if err != nil {
		return nil, err
	}

	t.Amount = domain.NewMoney(t.Amount.Amount, currencyOr(t.Amount.Currency, accounts[t.Account1ID]))

	if err := uc.transactionRepo.Create(txCtx, tx, t); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return t, nil
}

// Edit replaces the stored transaction, reversing it on its old accounts
// before applying the new amount to the new accounts.
func (uc *TransactionUseCase) Edit(ctx context.Context, input EditTransactionInput) (*domain.Transaction, error) {
	start := time.Now()

	t, err := uc.edit(ctx, input)
	if err != nil {
		uc.recorder.record("edit", input.ID, input.Amount, start, err)
		return nil, err
	}

	uc.recorder.record("edit", t.ID, t.Amount.Amount, start, nil)

	return t, nil
}

func (uc *TransactionUseCase) edit(ctx context.Context, input EditTransactionInput) (*domain.Transaction, error) {
	currency, err := validateMoney(input.Amount, input.Currency)
	if err != nil {
		return nil, err
	}

	comment, err := domain.SanitizeComment(input.Comment)
	if err != nil {
		return nil, err
	}

	if input.Account1ID == input.Account2ID {
		return nil, domain.ErrSameAccount
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	current, err := uc.transactionRepo.GetByIDForUpdate(txCtx, tx, input.ID)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.Account1ID = input.Account1ID
	updated.Account2ID = input.Account2ID
	updated.Amount = domain.Money{Amount: input.Amount, Currency: currency}
	updated.Comment = comment
	if !input.Date.IsZero() {
		updated.Date = input.Date.UTC()
	}

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	accounts, err := uc.poster.replace(txCtx, tx, current.Postings(), updated.Postings(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	updated.Amount = domain.NewMoney(updated.Amount.Amount, currencyOr(updated.Amount.Currency, accounts[updated.Account1ID]))

	if err := uc.transactionRepo.Update(txCtx, tx, &updated); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete removes the transaction, crediting Account1 and debiting Account2.
func (uc *TransactionUseCase) Delete(ctx context.Context, id int64) error {
	start := time.Now()

	amount, err := uc.delete(ctx, id)
	uc.recorder.record("delete", id, amount, start, err)

	return err
}

func (uc *TransactionUseCase) delete(ctx context.Context, id int64) (decimal.Decimal, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return decimal.Zero, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	current, err := uc.transactionRepo.GetByIDForUpdate(txCtx, tx, id)
	if err != nil {
		return decimal.Zero, err
	}

	if _, err := uc.poster.replace(txCtx, tx, current.Postings(), nil, time.Now().UTC()); err != nil {
		return decimal.Zero, err
	}

	if err := uc.transactionRepo.Delete(txCtx, tx, id); err != nil {
		return decimal.Zero, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return decimal.Zero, err
	}

	return current.Amount.Amount, nil
}

// Get retrieves a transaction by ID.
func (uc *TransactionUseCase) Get(ctx context.Context, id int64) (*domain.Transaction, error) {
	return uc.transactionRepo.GetByID(ctx, id)
}

// ListByMaker lists the transactions made by a user, oldest first.
func (uc *TransactionUseCase) ListByMaker(ctx context.Context, makerID int64) ([]*domain.Transaction, error) {
	if makerID <= 0 {
		return nil, domain.ErrMissingCaller
	}

	return uc.transactionRepo.ListByMaker(ctx, makerID)
}
