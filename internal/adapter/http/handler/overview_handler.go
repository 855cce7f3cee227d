package handler

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/iho/panelledger/internal/adapter/http/dto"
	"github.com/iho/panelledger/internal/domain"
)

// OverviewHandler lists everything the caller has recorded in one response.
type OverviewHandler struct {
	expenseUC     EntryService
	incomeUC      EntryService
	transactionUC TransactionService
}

// NewOverviewHandler creates a new OverviewHandler.
func NewOverviewHandler(expenseUC, incomeUC EntryService, transactionUC TransactionService) *OverviewHandler {
	return &OverviewHandler{
		expenseUC:     expenseUC,
		incomeUC:      incomeUC,
		transactionUC: transactionUC,
	}
}

// List returns the caller's incomes, expenses and transactions.
func (h *OverviewHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeDomainError(w, r, "failed to list entries", err)
		return
	}

	var (
		incomes      []*domain.Entry
		expenses     []*domain.Entry
		transactions []*domain.Transaction
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		incomes, err = h.incomeUC.ListByMaker(ctx, caller)
		return err
	})
	g.Go(func() (err error) {
		expenses, err = h.expenseUC.ListByMaker(ctx, caller)
		return err
	})
	g.Go(func() (err error) {
		transactions, err = h.transactionUC.ListByMaker(ctx, caller)
		return err
	})
	if err := g.Wait(); err != nil {
		writeDomainError(w, r, "failed to list entries", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesOverviewResponse{
		Incomes:      dto.EntriesFromDomain(incomes),
		Expenses:     dto.EntriesFromDomain(expenses),
		Transactions: dto.TransactionsFromDomain(transactions),
	})
}
