package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind distinguishes the two single-account entry kinds.
type EntryKind string

const (
	EntryKindExpense EntryKind = "expense"
	EntryKindIncome  EntryKind = "income"
)

// RelatedTo returns the category classification matching the kind.
func (k EntryKind) RelatedTo() RelatedTo {
	if k == EntryKindIncome {
		return RelatedToIncome
	}
	return RelatedToExpense
}

// Entry is an expense or an income recorded against one account.
type Entry struct {
	ID            int64
	Kind          EntryKind
	CategoryID    int64
	SubcategoryID int64
	AccountID     int64
	Amount        Money
	Date          time.Time
	Comment       string
	MakerID       int64
}

// Postings returns the effect the entry has on its account: an expense
// debits it, an income credits it.
func (e *Entry) Postings() []Posting {
	amount := e.Amount.Amount
	if e.Kind == EntryKindExpense {
		amount = amount.Neg()
	}
	return []Posting{{AccountID: e.AccountID, Amount: amount}}
}

// Transaction moves an amount from Account1 to Account2.
type Transaction struct {
	ID         int64
	Account1ID int64
	Account2ID int64
	Amount     Money
	Date       time.Time
	Comment    string
	MakerID    int64
}

// Validate checks the transfer shape.
func (t *Transaction) Validate() error {
	if t.Account1ID == t.Account2ID {
		return ErrSameAccount
	}

	if t.Amount.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}

// Postings debits Account1 then credits Account2.
func (t *Transaction) Postings() []Posting {
	return []Posting{
		{AccountID: t.Account1ID, Amount: t.Amount.Amount.Neg()},
		{AccountID: t.Account2ID, Amount: t.Amount.Amount},
	}
}
