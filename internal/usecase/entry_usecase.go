package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/infrastructure/metrics"
)

// EntryUseCase creates, edits and deletes single-account entries of one
// kind, keeping the account balance in step with the stored entries.
type EntryUseCase struct {
	kind         domain.EntryKind
	txManager    TransactionManager
	entryRepo    EntryRepository
	categoryRepo CategoryRepository
	poster       *poster
	recorder     recorder
}

// NewEntryUseCase creates a new EntryUseCase for the given kind.
func NewEntryUseCase(
	kind domain.EntryKind,
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	categoryRepo CategoryRepository,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *EntryUseCase {
	return &EntryUseCase{
		kind:         kind,
		txManager:    txManager,
		entryRepo:    entryRepo,
		categoryRepo: categoryRepo,
		poster:       &poster{accountRepo: accountRepo},
		recorder: recorder{
			kind:    string(kind),
			logger:  logger.With().Str("component", string(kind)+"_usecase").Logger(),
			metrics: m,
		},
	}
}

// NewExpenseUseCase creates the use case for expenses.
func NewExpenseUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	expenseRepo EntryRepository,
	categoryRepo CategoryRepository,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *EntryUseCase {
	return NewEntryUseCase(domain.EntryKindExpense, txManager, accountRepo, expenseRepo, categoryRepo, logger, m)
}

// NewIncomeUseCase creates the use case for incomes.
func NewIncomeUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	incomeRepo EntryRepository,
	categoryRepo CategoryRepository,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *EntryUseCase {
	return NewEntryUseCase(domain.EntryKindIncome, txManager, accountRepo, incomeRepo, categoryRepo, logger, m)
}

// Kind returns the entry kind handled by the use case.
func (uc *EntryUseCase) Kind() domain.EntryKind {
	return uc.kind
}

// CreateEntryInput represents input for creating an expense or income.
type CreateEntryInput struct {
	AccountID     int64
	CategoryID    int64
	SubcategoryID int64
	Amount        decimal.Decimal
	Currency      string
	Comment       string
	MakerID       int64
}

// EditEntryInput represents input for editing an expense or income.
// A zero Date keeps the stored date.
type EditEntryInput struct {
	ID            int64
	AccountID     int64
	CategoryID    int64
	SubcategoryID int64
	Amount        decimal.Decimal
	Currency      string
	Date          time.Time
	Comment       string
}

// Create stores a new entry and applies its effect to the account.
func (uc *EntryUseCase) Create(ctx context.Context, input CreateEntryInput) (*domain.Entry, error) {
	start := time.Now()

	entry, err := uc.create(ctx, input)
	if err != nil {
		uc.recorder.record("create", 0, input.Amount, start, err)
		return nil, err
	}

	uc.recorder.record("create", entry.ID, entry.Amount.Amount, start, nil)

	return entry, nil
}

func (uc *EntryUseCase) create(ctx context.Context, input CreateEntryInput) (*domain.Entry, error) {
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

	if err := uc.checkClassification(ctx, input.CategoryID, input.SubcategoryID); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	now := time.Now().UTC()
	entry := &domain.Entry{
		Kind:          uc.kind,
		CategoryID:    input.CategoryID,
		SubcategoryID: input.SubcategoryID,
		AccountID:     input.AccountID,
		Amount:        domain.Money{Amount: input.Amount, Currency: currency},
		Date:          now,
		Comment:       comment,
		MakerID:       input.MakerID,
	}

	accounts, err := uc.poster.replace(txCtx, tx, nil, entry.Postings(), now)
	if err != nil {
		return nil, err
	}

	entry.Amount = domain.NewMoney(entry.Amount.Amount, currencyOr(entry.Amount.Currency, accounts[entry.AccountID]))

	if err := uc.entryRepo.Create(txCtx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return entry, nil
}

// Edit replaces the stored entry. The recorded effect is reversed on the
// old account before the new effect is applied to the new account.
func (uc *EntryUseCase) Edit(ctx context.Context, input EditEntryInput) (*domain.Entry, error) {
	start := time.Now()

	entry, err := uc.edit(ctx, input)
	if err != nil {
		uc.recorder.record("edit", input.ID, input.Amount, start, err)
		return nil, err
	}

	uc.recorder.record("edit", entry.ID, entry.Amount.Amount, start, nil)

	return entry, nil
}

func (uc *EntryUseCase) edit(ctx context.Context, input EditEntryInput) (*domain.Entry, error) {
	currency, err := validateMoney(input.Amount, input.Currency)
	if err != nil {
		return nil, err
	}

	comment, err := domain.SanitizeComment(input.Comment)
	if err != nil {
		return nil, err
	}

	if err := uc.checkClassification(ctx, input.CategoryID, input.SubcategoryID); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	current, err := uc.entryRepo.GetByIDForUpdate(txCtx, tx, input.ID)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.AccountID = input.AccountID
	updated.CategoryID = input.CategoryID
	updated.SubcategoryID = input.SubcategoryID
	updated.Amount = domain.Money{Amount: input.Amount, Currency: currency}
	updated.Comment = comment
	if !input.Date.IsZero() {
		updated.Date = input.Date.UTC()
	}

	now := time.Now().UTC()

	accounts, err := uc.poster.replace(txCtx, tx, current.Postings(), updated.Postings(), now)
	if err != nil {
		return nil, err
	}

	updated.Amount = domain.NewMoney(updated.Amount.Amount, currencyOr(updated.Amount.Currency, accounts[updated.AccountID]))

	if err := uc.entryRepo.Update(txCtx, tx, &updated); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete removes the entry and reverses its effect on the account.
func (uc *EntryUseCase) Delete(ctx context.Context, id int64) error {
	start := time.Now()

	amount, err := uc.delete(ctx, id)
	uc.recorder.record("delete", id, amount, start, err)

	return err
}

func (uc *EntryUseCase) delete(ctx context.Context, id int64) (decimal.Decimal, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return decimal.Zero, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	current, err := uc.entryRepo.GetByIDForUpdate(txCtx, tx, id)
	if err != nil {
		return decimal.Zero, err
	}

	if _, err := uc.poster.replace(txCtx, tx, current.Postings(), nil, time.Now().UTC()); err != nil {
		return decimal.Zero, err
	}

	if err := uc.entryRepo.Delete(txCtx, tx, id); err != nil {
		return decimal.Zero, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return decimal.Zero, err
	}

	return current.Amount.Amount, nil
}

// Get retrieves an entry by ID.
func (uc *EntryUseCase) Get(ctx context.Context, id int64) (*domain.Entry, error) {
	return uc.entryRepo.GetByID(ctx, id)
}

// ListByMaker lists the entries made by a user, oldest first.
func (uc *EntryUseCase) ListByMaker(ctx context.Context, makerID int64) ([]*domain.Entry, error) {
	if makerID <= 0 {
		return nil, domain.ErrMissingCaller
	}

	return uc.entryRepo.ListByMaker(ctx, makerID)
}

// checkClassification requires both category and subcategory to exist and
// to be related to the use case's entry kind.
func (uc *EntryUseCase) checkClassification(ctx context.Context, categoryID, subcategoryID int64) error {
	want := uc.kind.RelatedTo()

	category, err := uc.categoryRepo.GetCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	if category.RelatedTo != want {
		return fmt.Errorf("category %d: %w", categoryID, domain.ErrCategoryKindMismatch)
	}

	subcategory, err := uc.categoryRepo.GetSubcategory(ctx, subcategoryID)
	if err != nil {
		return err
	}
	if subcategory.RelatedTo != want {
		return fmt.Errorf("subcategory %d: %w", subcategoryID, domain.ErrCategoryKindMismatch)
	}

	return nil
}

// currencyOr returns currency, or the account currency when it is empty.
func currencyOr(currency string, account *domain.Account) string {
	if currency != "" || account == nil {
		return currency
	}
	return account.Currency
}
