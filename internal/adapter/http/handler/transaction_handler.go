package handler

import (
	"net/http"

	"github.com/iho/panelledger/internal/adapter/http/dto"
	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/usecase"
)

// TransactionHandler handles transfers between two accounts.
type TransactionHandler struct {
	transactionUC TransactionService
	retrier       usecase.Retrier
}

// NewTransactionHandler creates a new TransactionHandler. retrier may be nil.
func NewTransactionHandler(transactionUC TransactionService, retrier usecase.Retrier) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC, retrier: retrier}
}

// Create records a transfer made by the caller.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeDomainError(w, r, "failed to create transaction", err)
		return
	}

	var req dto.TransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToCreateInput(caller)
	if err != nil {
		writeDomainError(w, r, "invalid transaction", err)
		return
	}

	var transaction *domain.Transaction
	err = retry(r.Context(), h.retrier, func() error {
		var opErr error
		transaction, opErr = h.transactionUC.Create(r.Context(), input)
		return opErr
	})
	if err != nil {
		writeDomainError(w, r, "failed to create transaction", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(transaction))
}

// Get retrieves a transaction by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, "invalid transaction ID", err)
		return
	}

	transaction, err := h.transactionUC.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "failed to get transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(transaction))
}

// List lists the caller's transactions.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeDomainError(w, r, "failed to list transactions", err)
		return
	}

	transactions, err := h.transactionUC.ListByMaker(r.Context(), caller)
	if err != nil {
		writeDomainError(w, r, "failed to list transactions", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(transactions))
}

// Edit replaces a transaction.
func (h *TransactionHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, "invalid transaction ID", err)
		return
	}

	var req dto.TransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToEditInput(id)
	if err != nil {
		writeDomainError(w, r, "invalid transaction", err)
		return
	}

	var transaction *domain.Transaction
	err = retry(r.Context(), h.retrier, func() error {
		var opErr error
		transaction, opErr = h.transactionUC.Edit(r.Context(), input)
		return opErr
	})
	if err != nil {
		writeDomainError(w, r, "failed to edit transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(transaction))
}

// Delete removes a transaction and reverses both of its postings.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, "invalid transaction ID", err)
		return
	}

	err = retry(r.Context(), h.retrier, func() error {
		return h.transactionUC.Delete(r.Context(), id)
	})
	if err != nil {
		writeDomainError(w, r, "failed to delete transaction", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
