package dto

import (
	"strings"

	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/usecase"
)

// Request bodies carry raw strings. ToUseCaseInput runs them through the
// domain parsers so handlers only ever pass typed values to use cases.

// CreateUserRequest represents a request to create a user.
type CreateUserRequest struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateUserRequest) ToUseCaseInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Username: r.Username,
		IsAdmin:  r.IsAdmin,
	}
}

// CreateAccountRequest represents a request to create an account.
// OwnerID defaults to the caller when empty.
type CreateAccountRequest struct {
	Name           string `json:"name"`
	Currency       string `json:"currency"`
	OwnerID        string `json:"owner_id,omitempty"`
	OpeningBalance string `json:"opening_balance,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput(callerID int64) (usecase.CreateAccountInput, error) {
	ownerID := callerID
	if strings.TrimSpace(r.OwnerID) != "" {
		id, err := domain.ParseID(r.OwnerID)
		if err != nil {
			return usecase.CreateAccountInput{}, err
		}
		ownerID = id
	}

	opening, err := domain.ParseSignedAmount(r.OpeningBalance)
	if err != nil {
		return usecase.CreateAccountInput{}, err
	}

	return usecase.CreateAccountInput{
		Name:           r.Name,
		Currency:       r.Currency,
		OwnerID:        ownerID,
		OpeningBalance: opening,
	}, nil
}

// AdjustBalanceRequest represents an admin balance adjustment.
type AdjustBalanceRequest struct {
	Delta string `json:"delta"`
}

// CreateCategoryRequest creates a category or a subcategory.
type CreateCategoryRequest struct {
	Name      string `json:"name"`
	RelatedTo string `json:"related_to"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCategoryRequest) ToUseCaseInput() (usecase.CreateCategoryInput, error) {
	relatedTo, err := domain.ParseRelatedTo(r.RelatedTo)
	if err != nil {
		return usecase.CreateCategoryInput{}, err
	}

	return usecase.CreateCategoryInput{
		Name:      r.Name,
		RelatedTo: relatedTo,
	}, nil
}

// EntryRequest is the body of an expense or income create or edit.
// Date is ignored on create.
type EntryRequest struct {
	AccountID     string `json:"account_id"`
	CategoryID    string `json:"category_id"`
	SubcategoryID string `json:"subcategory_id"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency,omitempty"`
	Date          string `json:"date,omitempty"`
	Comment       string `json:"comment,omitempty"`
}

type entryFields struct {
	accountID     int64
	categoryID    int64
	subcategoryID int64
}

func (r *EntryRequest) parseIDs() (entryFields, error) {
	var (
		f   entryFields
		err error
	)

	if f.accountID, err = domain.ParseID(r.AccountID); err != nil {
		return f, err
	}
	if f.categoryID, err = domain.ParseID(r.CategoryID); err != nil {
		return f, err
	}
	if f.subcategoryID, err = domain.ParseID(r.SubcategoryID); err != nil {
		return f, err
	}

	return f, nil
}

// ToCreateInput converts to the create input of an entry made by makerID.
func (r *EntryRequest) ToCreateInput(makerID int64) (usecase.CreateEntryInput, error) {
	ids, err := r.parseIDs()
	if err != nil {
		return usecase.CreateEntryInput{}, err
	}

	amount, err := domain.ParseAmount(r.Amount)
	if err != nil {
		return usecase.CreateEntryInput{}, err
	}

	comment, err := domain.SanitizeComment(r.Comment)
	if err != nil {
		return usecase.CreateEntryInput{}, err
	}

	return usecase.CreateEntryInput{
		AccountID:     ids.accountID,
		CategoryID:    ids.categoryID,
		SubcategoryID: ids.subcategoryID,
		Amount:        amount,
		Currency:      r.Currency,
		Comment:       comment,
		MakerID:       makerID,
	}, nil
}

// ToEditInput converts to the edit input of entry id.
func (r *EntryRequest) ToEditInput(id int64) (usecase.EditEntryInput, error) {
	ids, err := r.parseIDs()
	if err != nil {
		return usecase.EditEntryInput{}, err
	}

	amount, err := domain.ParseAmount(r.Amount)
	if err != nil {
		return usecase.EditEntryInput{}, err
	}

	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return usecase.EditEntryInput{}, err
	}

	comment, err := domain.SanitizeComment(r.Comment)
	if err != nil {
		return usecase.EditEntryInput{}, err
	}

	return usecase.EditEntryInput{
		ID:            id,
		AccountID:     ids.accountID,
		CategoryID:    ids.categoryID,
		SubcategoryID: ids.subcategoryID,
		Amount:        amount,
		Currency:      r.Currency,
		Date:          date,
		Comment:       comment,
	}, nil
}

// TransactionRequest is the body of a transaction create or edit.
// Date is ignored on create.
type TransactionRequest struct {
	Account1ID string `json:"account1_id"`
	Account2ID string `json:"account2_id"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency,omitempty"`
	Date       string `json:"date,omitempty"`
	Comment    string `json:"comment,omitempty"`
}

func (r *TransactionRequest) parse() (from, to int64, err error) {
	if from, err = domain.ParseID(r.Account1ID); err != nil {
		return 0, 0, err
	}
	if to, err = domain.ParseID(r.Account2ID); err != nil {
		return 0, 0, err
	}
	return from, to, nil
}

// ToCreateInput converts to the create input of a transaction made by makerID.
func (r *TransactionRequest) ToCreateInput(makerID int64) (usecase.CreateTransactionInput, error) {
	from, to, err := r.parse()
	if err != nil {
		return usecase.CreateTransactionInput{}, err
	}

	amount, err := domain.ParseAmount(r.Amount)
	if err != nil {
		return usecase.CreateTransactionInput{}, err
	}

	comment, err := domain.SanitizeComment(r.Comment)
	if err != nil {
		return usecase.CreateTransactionInput{}, err
	}

	return usecase.CreateTransactionInput{
		Account1ID: from,
		Account2ID: to,
		Amount:     amount,
		Currency:   r.Currency,
		Comment:    comment,
		MakerID:    makerID,
	}, nil
}

// ToEditInput converts to the edit input of transaction id.
func (r *TransactionRequest) ToEditInput(id int64) (usecase.EditTransactionInput, error) {
	from, to, err := r.parse()
	if err != nil {
		return usecase.EditTransactionInput{}, err
	}

	amount, err := domain.ParseAmount(r.Amount)
	if err != nil {
		return usecase.EditTransactionInput{}, err
	}

	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return usecase.EditTransactionInput{}, err
	}

	comment, err := domain.SanitizeComment(r.Comment)
	if err != nil {
		return usecase.EditTransactionInput{}, err
	}

	return usecase.EditTransactionInput{
		ID:         id,
		Account1ID: from,
		Account2ID: to,
		Amount:     amount,
		Currency:   r.Currency,
		Date:       date,
		Comment:    comment,
	}, nil
}
