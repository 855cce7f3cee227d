package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/usecase"
)

func TestAccountFromDomain(t *testing.T) {
	now := time.Now()
	account := &domain.Account{
		ID:          1,
		Name:        "Main",
		OwnerID:     2,
		Currency:    "USD",
		Balance:     decimal.RequireFromString("123.45"),
		Adjustments: decimal.RequireFromString("100"),
		Version:     2,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	resp := AccountFromDomain(account)
	if resp.ID != 1 || resp.OwnerID != 2 || resp.Balance.String() != "123.45" || resp.Version != 2 {
		t.Fatalf("unexpected account response: %+v", resp)
	}

	list := AccountsFromDomain([]*domain.Account{account})
	if len(list) != 1 || list[0].ID != account.ID {
		t.Fatalf("AccountsFromDomain returned %+v", list)
	}
}

func TestEntryFromDomain(t *testing.T) {
	entry := &domain.Entry{
		ID:         3,
		Kind:       domain.EntryKindIncome,
		AccountID:  1,
		CategoryID: 4,
		Amount:     domain.NewMoney(decimal.RequireFromString("9.99"), ""),
		Comment:    "salary",
		MakerID:    2,
	}

	resp := EntryFromDomain(entry)
	if resp.Kind != "income" || resp.Currency != domain.DefaultCurrency || resp.Amount.String() != "9.99" {
		t.Fatalf("unexpected entry response: %+v", resp)
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["amount"] != "9.99" {
		t.Fatalf("amount should be encoded as a string, got %#v", decoded["amount"])
	}
}

func TestTransactionFromDomain(t *testing.T) {
	tx := &domain.Transaction{
		ID:         5,
		Account1ID: 1,
		Account2ID: 2,
		Amount:     domain.NewMoney(decimal.NewFromInt(30), "USD"),
	}

	list := TransactionsFromDomain([]*domain.Transaction{tx})
	if len(list) != 1 || list[0].Account1ID != 1 || list[0].Account2ID != 2 || list[0].Currency != "USD" {
		t.Fatalf("unexpected transaction responses: %+v", list)
	}
}

func TestReportFromUseCase(t *testing.T) {
	report := &usecase.ReconciliationReport{
		TotalAccounts:      2,
		ReconciledAccounts: 1,
		Discrepancies: []*usecase.ReconciliationResult{{
			AccountID:  2,
			Difference: decimal.NewFromInt(2),
			Totals:     usecase.EntryTotals{Incomes: decimal.NewFromInt(10)},
		}},
	}

	resp := ReportFromUseCase(report)
	if resp.TotalAccounts != 2 || len(resp.Discrepancies) != 1 {
		t.Fatalf("unexpected report: %+v", resp)
	}

	d := resp.Discrepancies[0]
	if d.AccountID != 2 || !d.Incomes.Equal(decimal.NewFromInt(10)) || !d.Difference.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("unexpected discrepancy: %+v", d)
	}
}
