package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/usecase"
)

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts domain user to response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

// UsersFromDomain converts domain users to responses.
func UsersFromDomain(users []*domain.User) []*UserResponse {
	return mapSlice(users, UserFromDomain)
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	OwnerID     int64           `json:"owner_id"`
	Currency    string          `json:"currency"`
	Balance     decimal.Decimal `json:"balance"`
	Adjustments decimal.Decimal `json:"adjustments"`
	Version     int64           `json:"version"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:          a.ID,
		Name:        a.Name,
		OwnerID:     a.OwnerID,
		Currency:    a.Currency,
		Balance:     a.Balance,
		Adjustments: a.Adjustments,
		Version:     a.Version,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	return mapSlice(accounts, AccountFromDomain)
}

// CategoryResponse represents a category or a subcategory.
type CategoryResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	RelatedTo string `json:"related_to"`
}

// CategoryFromDomain converts domain category to response.
func CategoryFromDomain(c *domain.Category) *CategoryResponse {
	return &CategoryResponse{ID: c.ID, Name: c.Name, RelatedTo: string(c.RelatedTo)}
}

// CategoriesFromDomain converts domain categories to responses.
func CategoriesFromDomain(categories []*domain.Category) []*CategoryResponse {
	return mapSlice(categories, CategoryFromDomain)
}

// SubcategoryFromDomain converts domain subcategory to response.
func SubcategoryFromDomain(s *domain.Subcategory) *CategoryResponse {
	return &CategoryResponse{ID: s.ID, Name: s.Name, RelatedTo: string(s.RelatedTo)}
}

// SubcategoriesFromDomain converts domain subcategories to responses.
func SubcategoriesFromDomain(subcategories []*domain.Subcategory) []*CategoryResponse {
	return mapSlice(subcategories, SubcategoryFromDomain)
}

// EntryResponse represents an expense or an income in API responses.
type EntryResponse struct {
	ID            int64           `json:"id"`
	Kind          string          `json:"kind"`
	AccountID     int64           `json:"account_id"`
	CategoryID    int64           `json:"category_id"`
	SubcategoryID int64           `json:"subcategory_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Date          time.Time       `json:"date"`
	Comment       string          `json:"comment"`
	MakerID       int64           `json:"maker_id"`
}

// EntryFromDomain converts domain entry to response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:            e.ID,
		Kind:          string(e.Kind),
		AccountID:     e.AccountID,
		CategoryID:    e.CategoryID,
		SubcategoryID: e.SubcategoryID,
		Amount:        e.Amount.Amount,
		Currency:      e.Amount.Currency,
		Date:          e.Date,
		Comment:       e.Comment,
		MakerID:       e.MakerID,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	return mapSlice(entries, EntryFromDomain)
}

// TransactionResponse represents a transfer between two accounts.
type TransactionResponse struct {
	ID         int64           `json:"id"`
	Account1ID int64           `json:"account1_id"`
	Account2ID int64           `json:"account2_id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Date       time.Time       `json:"date"`
	Comment    string          `json:"comment"`
	MakerID    int64           `json:"maker_id"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:         t.ID,
		Account1ID: t.Account1ID,
		Account2ID: t.Account2ID,
		Amount:     t.Amount.Amount,
		Currency:   t.Amount.Currency,
		Date:       t.Date,
		Comment:    t.Comment,
		MakerID:    t.MakerID,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	return mapSlice(transactions, TransactionFromDomain)
}

// EntriesOverviewResponse is everything one maker has recorded, each list
// ordered by date.
type EntriesOverviewResponse struct {
	Incomes      []*EntryResponse       `json:"incomes"`
	Expenses     []*EntryResponse       `json:"expenses"`
	Transactions []*TransactionResponse `json:"transactions"`
}

// ReconciliationResponse is the reconciliation of one account.
type ReconciliationResponse struct {
	AccountID         int64           `json:"account_id"`
	RecordedBalance   decimal.Decimal `json:"recorded_balance"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
	Difference        decimal.Decimal `json:"difference"`
	Incomes           decimal.Decimal `json:"incomes"`
	Expenses          decimal.Decimal `json:"expenses"`
	Incoming          decimal.Decimal `json:"incoming"`
	Outgoing          decimal.Decimal `json:"outgoing"`
	Adjustments       decimal.Decimal `json:"adjustments"`
	IsReconciled      bool            `json:"is_reconciled"`
	LastChecked       time.Time       `json:"last_checked"`
}

// ReconciliationFromResult converts a use case result to response.
func ReconciliationFromResult(r *usecase.ReconciliationResult) *ReconciliationResponse {
	return &ReconciliationResponse{
		AccountID:         r.AccountID,
		RecordedBalance:   r.RecordedBalance,
		CalculatedBalance: r.CalculatedBalance,
		Difference:        r.Difference,
		Incomes:           r.Totals.Incomes,
		Expenses:          r.Totals.Expenses,
		Incoming:          r.Totals.Incoming,
		Outgoing:          r.Totals.Outgoing,
		Adjustments:       r.Adjustments,
		IsReconciled:      r.IsReconciled,
		LastChecked:       r.LastChecked,
	}
}

// ReconciliationReportResponse is the ledger-wide consistency report.
type ReconciliationReportResponse struct {
	TotalAccounts      int                       `json:"total_accounts"`
	ReconciledAccounts int                       `json:"reconciled_accounts"`
	Discrepancies      []*ReconciliationResponse `json:"discrepancies"`
	LedgerConsistent   bool                      `json:"ledger_consistent"`
	CheckedAt          time.Time                 `json:"checked_at"`
}

// ReportFromUseCase converts a use case report to response.
func ReportFromUseCase(r *usecase.ReconciliationReport) *ReconciliationReportResponse {
	return &ReconciliationReportResponse{
		TotalAccounts:      r.TotalAccounts,
		ReconciledAccounts: r.ReconciledAccounts,
		Discrepancies:      mapSlice(r.Discrepancies, ReconciliationFromResult),
		LedgerConsistent:   r.LedgerConsistent,
		CheckedAt:          r.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func mapSlice[T, R any](in []T, f func(T) R) []R {
	out := make([]R, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}
