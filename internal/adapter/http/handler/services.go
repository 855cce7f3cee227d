package handler

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/usecase"
)

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

// UserService defines the behavior needed by UserHandler.
type UserService interface {
	CreateUser(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)
	ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
	ListAccountsByOwner(ctx context.Context, ownerID int64) ([]*domain.Account, error)
	AdjustBalance(ctx context.Context, id int64, delta decimal.Decimal) (*domain.Account, error)
	DeleteAccount(ctx context.Context, id int64) error
}

// CategoryService defines the behavior needed by CategoryHandler.
type CategoryService interface {
	CreateCategory(ctx context.Context, input usecase.CreateCategoryInput) (*domain.Category, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	ListCategories(ctx context.Context, relatedTo domain.RelatedTo) ([]*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	CreateSubcategory(ctx context.Context, input usecase.CreateCategoryInput) (*domain.Subcategory, error)
	GetSubcategory(ctx context.Context, id int64) (*domain.Subcategory, error)
	ListSubcategories(ctx context.Context, relatedTo domain.RelatedTo) ([]*domain.Subcategory, error)
	DeleteSubcategory(ctx context.Context, id int64) error
}

// EntryService defines the behavior needed by EntryHandler. One instance
// serves expenses and another serves incomes.
type EntryService interface {
	Kind() domain.EntryKind
	Create(ctx context.Context, input usecase.CreateEntryInput) (*domain.Entry, error)
	Edit(ctx context.Context, input usecase.EditEntryInput) (*domain.Entry, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Entry, error)
	ListByMaker(ctx context.Context, makerID int64) ([]*domain.Entry, error)
}

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	Create(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Transaction, error)
	Edit(ctx context.Context, input usecase.EditTransactionInput) (*domain.Transaction, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Transaction, error)
	ListByMaker(ctx context.Context, makerID int64) ([]*domain.Transaction, error)
}

// ReconciliationService defines the behavior needed by LedgerHandler.
type ReconciliationService interface {
	ReconcileAccount(ctx context.Context, accountID int64) (*usecase.ReconciliationResult, error)
	GenerateReconciliationReport(ctx context.Context) (*usecase.ReconciliationReport, error)
}
