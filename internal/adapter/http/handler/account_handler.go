package handler

import (
	"net/http"

	"github.com/iho/panelledger/internal/adapter/http/dto"
	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/usecase"
)

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
	retrier   usecase.Retrier
}

// NewAccountHandler creates a new AccountHandler. retrier may be nil.
func NewAccountHandler(accountUC AccountService, retrier usecase.Retrier) *AccountHandler {
	return &AccountHandler{accountUC: accountUC, retrier: retrier}
}

// Create creates a new account owned by the caller or by owner_id.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeDomainError(w, r, "failed to create account", err)
		return
	}

	var req dto.CreateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(caller)
	if err != nil {
		writeDomainError(w, r, "invalid account", err)
		return
	}

	account, err := h.accountUC.CreateAccount(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, "failed to create account", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, "invalid account ID", err)
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "failed to get account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists accounts, or the accounts of one owner when owner_id is set.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		accounts []*domain.Account
		err      error
	)

	if raw := r.URL.Query().Get("owner_id"); raw != "" {
		ownerID, perr := domain.ParseID(raw)
		if perr != nil {
			writeDomainError(w, r, "invalid owner ID", perr)
			return
		}
		accounts, err = h.accountUC.ListAccountsByOwner(r.Context(), ownerID)
	} else {
		accounts, err = h.accountUC.ListAccounts(r.Context(), usecase.ListAccountsInput{
			Limit:  parseIntQuery(r, "limit", 50),
			Offset: parseIntQuery(r, "offset", 0),
		})
	}
	if err != nil {
		writeDomainError(w, r, "failed to list accounts", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}

// Adjust applies an admin balance adjustment.
func (h *AccountHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, "invalid account ID", err)
		return
	}

	var req dto.AdjustBalanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	delta, err := domain.ParseSignedAmount(req.Delta)
	if err != nil {
		writeDomainError(w, r, "invalid delta", err)
		return
	}

	var account *domain.Account
	err = retry(r.Context(), h.retrier, func() error {
		var opErr error
		account, opErr = h.accountUC.AdjustBalance(r.Context(), id, delta)
		return opErr
	})
	if err != nil {
		writeDomainError(w, r, "failed to adjust balance", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Delete removes an account that no entry references.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, "invalid account ID", err)
		return
	}

	err = retry(r.Context(), h.retrier, func() error {
		return h.accountUC.DeleteAccount(r.Context(), id)
	})
	if err != nil {
		writeDomainError(w, r, "failed to delete account", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
