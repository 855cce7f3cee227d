package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a named money account owned by a user.
type Account struct {
	ID       int64
	Name     string
	OwnerID  int64
	Currency string
	Balance  decimal.Decimal
	// Adjustments is the running total of out-of-band admin changes,
	// opening balance included.
	Adjustments decimal.Decimal
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BalanceMoney returns the balance with the account currency attached.
func (a *Account) BalanceMoney() Money {
	return NewMoney(a.Balance, a.Currency)
}

// ApplyDebit returns new balance after debit. Balances may go negative.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns new balance after credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}

// Apply returns the balance after the signed posting amount.
func (a *Account) Apply(p Posting) decimal.Decimal {
	if p.Amount.IsNegative() {
		return a.ApplyDebit(p.Amount.Neg())
	}
	return a.ApplyCredit(p.Amount)
}
