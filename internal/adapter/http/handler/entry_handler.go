package handler

import (
	"net/http"

	"github.com/iho/panelledger/internal/adapter/http/dto"
	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/usecase"
)

// EntryHandler serves one entry kind: mounted once for /expenses and once
// for /incomes.
type EntryHandler struct {
	entryUC EntryService
	retrier usecase.Retrier
	noun    string
}

// NewEntryHandler creates a new EntryHandler. retrier may be nil.
func NewEntryHandler(entryUC EntryService, retrier usecase.Retrier) *EntryHandler {
	return &EntryHandler{
		entryUC: entryUC,
		retrier: retrier,
		noun:    string(entryUC.Kind()),
	}
}

// Create records a new entry made by the caller.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeDomainError(w, r, "failed to create "+h.noun, err)
		return
	}

	var req dto.EntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToCreateInput(caller)
	if err != nil {
		writeDomainError(w, r, "invalid "+h.noun, err)
		return
	}

	var entry *domain.Entry
	err = retry(r.Context(), h.retrier, func() error {
		var opErr error
		entry, opErr = h.entryUC.Create(r.Context(), input)
		return opErr
	})
	if err != nil {
		writeDomainError(w, r, "failed to create "+h.noun, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Get retrieves an entry by ID.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, "invalid "+h.noun+" ID", err)
		return
	}

	entry, err := h.entryUC.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "failed to get "+h.noun, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// List lists the caller's entries.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeDomainError(w, r, "failed to list "+h.noun+"s", err)
		return
	}

	entries, err := h.entryUC.ListByMaker(r.Context(), caller)
	if err != nil {
		writeDomainError(w, r, "failed to list "+h.noun+"s", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// Edit replaces an entry, moving its effect between accounts if needed.
func (h *EntryHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, "invalid "+h.noun+" ID", err)
		return
	}

	var req dto.EntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToEditInput(id)
	if err != nil {
		writeDomainError(w, r, "invalid "+h.noun, err)
		return
	}

	var entry *domain.Entry
	err = retry(r.Context(), h.retrier, func() error {
		var opErr error
		entry, opErr = h.entryUC.Edit(r.Context(), input)
		return opErr
	})
	if err != nil {
		writeDomainError(w, r, "failed to edit "+h.noun, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Delete removes an entry and reverses its effect.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, "invalid "+h.noun+" ID", err)
		return
	}

	err = retry(r.Context(), h.retrier, func() error {
		return h.entryUC.Delete(r.Context(), id)
	})
	if err != nil {
		writeDomainError(w, r, "failed to delete "+h.noun, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
