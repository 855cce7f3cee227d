package handler

import (
	"net/http"

	"github.com/iho/panelledger/internal/adapter/http/dto"
	"github.com/iho/panelledger/internal/domain"
)

// CategoryHandler serves categories and subcategories.
type CategoryHandler struct {
	categoryUC CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryUC CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryUC: categoryUC}
}

// relatedToQuery reads ?related_to=. Empty means no filter.
func relatedToQuery(r *http.Request) (domain.RelatedTo, error) {
	raw := r.URL.Query().Get("related_to")
	if raw == "" {
		return "", nil
	}
	return domain.ParseRelatedTo(raw)
}

// CreateCategory creates a category.
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, r, "invalid category", err)
		return
	}

	category, err := h.categoryUC.CreateCategory(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, "failed to create category", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CategoryFromDomain(category))
}

// GetCategory retrieves a category by ID.
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, "invalid category ID", err)
		return
	}

	category, err := h.categoryUC.GetCategory(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "failed to get category", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryFromDomain(category))
}

// ListCategories lists categories, optionally filtered by related_to.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	relatedTo, err := relatedToQuery(r)
	if err != nil {
		writeDomainError(w, r, "invalid related_to", err)
		return
	}

	categories, err := h.categoryUC.ListCategories(r.Context(), relatedTo)
	if err != nil {
		writeDomainError(w, r, "failed to list categories", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoriesFromDomain(categories))
}

// DeleteCategory deletes a category no entry references.
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, "invalid category ID", err)
		return
	}

	if err := h.categoryUC.DeleteCategory(r.Context(), id); err != nil {
		writeDomainError(w, r, "failed to delete category", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateSubcategory creates a subcategory.
func (h *CategoryHandler) CreateSubcategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, r, "invalid subcategory", err)
		return
	}

	subcategory, err := h.categoryUC.CreateSubcategory(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, "failed to create subcategory", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.SubcategoryFromDomain(subcategory))
}

// GetSubcategory retrieves a subcategory by ID.
func (h *CategoryHandler) GetSubcategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, "invalid subcategory ID", err)
		return
	}

	subcategory, err := h.categoryUC.GetSubcategory(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "failed to get subcategory", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SubcategoryFromDomain(subcategory))
}

// ListSubcategories lists subcategories, optionally filtered by related_to.
func (h *CategoryHandler) ListSubcategories(w http.ResponseWriter, r *http.Request) {
	relatedTo, err := relatedToQuery(r)
	if err != nil {
		writeDomainError(w, r, "invalid related_to", err)
		return
	}

	subcategories, err := h.categoryUC.ListSubcategories(r.Context(), relatedTo)
	if err != nil {
		writeDomainError(w, r, "failed to list subcategories", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SubcategoriesFromDomain(subcategories))
}

// DeleteSubcategory deletes a subcategory no entry references.
func (h *CategoryHandler) DeleteSubcategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, "invalid subcategory ID", err)
		return
	}

	if err := h.categoryUC.DeleteSubcategory(r.Context(), id); err != nil {
		writeDomainError(w, r, "failed to delete subcategory", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
