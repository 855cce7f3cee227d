package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccount_ApplyDebit(t *testing.T) {
	acc := &Account{Balance: decimal.NewFromInt(100)}
	newBalance := acc.ApplyDebit(decimal.NewFromInt(30))

	expected := decimal.NewFromInt(70)
	if !newBalance.Equal(expected) {
		t.Errorf("expected balance %s, got %s", expected, newBalance)
	}
}

func TestAccount_ApplyDebit_GoesNegative(t *testing.T) {
	acc := &Account{Balance: decimal.NewFromInt(10)}
	newBalance := acc.ApplyDebit(decimal.NewFromInt(25))

	expected := decimal.NewFromInt(-15)
	if !newBalance.Equal(expected) {
		t.Errorf("expected balance %s, got %s", expected, newBalance)
	}
}

func TestAccount_ApplyCredit(t *testing.T) {
	acc := &Account{Balance: decimal.NewFromInt(100)}
	newBalance := acc.ApplyCredit(decimal.NewFromInt(30))

	expected := decimal.NewFromInt(130)
	if !newBalance.Equal(expected) {
		t.Errorf("expected balance %s, got %s", expected, newBalance)
	}
}

func TestAccount_Apply(t *testing.T) {
	tests := []struct {
		name     string
		balance  int64
		posting  int64
		expected int64
	}{
		{"credit", 100, 40, 140},
		{"debit", 100, -40, 60},
		{"debit below zero", 10, -40, -30},
		{"zero", 100, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{Balance: decimal.NewFromInt(tt.balance)}
			got := acc.Apply(Posting{AccountID: 1, Amount: decimal.NewFromInt(tt.posting)})
			if !got.Equal(decimal.NewFromInt(tt.expected)) {
				t.Errorf("expected %d, got %s", tt.expected, got)
			}
		})
	}
}

func TestAccount_BalanceMoney(t *testing.T) {
	acc := &Account{Balance: decimal.RequireFromString("12.5")}
	m := acc.BalanceMoney()

	if m.Currency != DefaultCurrency {
		t.Errorf("expected default currency %s, got %s", DefaultCurrency, m.Currency)
	}
	if m.String() != "12.50 UZS" {
		t.Errorf("unexpected string %q", m.String())
	}
}
