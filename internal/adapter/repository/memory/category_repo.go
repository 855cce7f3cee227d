package memory

import (
	"context"
	"sort"

	"github.com/iho/panelledger/internal/domain"
)

// CategoryRepository implements usecase.CategoryRepository.
type CategoryRepository struct {
	store *Store
}

// Categories returns the category repository.
func (s *Store) Categories() *CategoryRepository {
	return &CategoryRepository{store: s}
}

// CreateCategory inserts a category and assigns its ID.
func (r *CategoryRepository) CreateCategory(ctx context.Context, c *domain.Category) error {
	return r.store.write(ctx, func(st *state) error {
		c.ID = st.nextID("categories")
		put(st, st.categories, c.ID, *c)
		return nil
	})
}

// GetCategory retrieves a category.
func (r *CategoryRepository) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	var out *domain.Category
	err := r.store.read(ctx, func(st *state) error {
		c, ok := st.categories[id]
		if !ok {
			return domain.ErrCategoryNotFound
		}
		out = &c
		return nil
	})
	return out, err
}

// ListCategories lists categories ordered by ID.
func (r *CategoryRepository) ListCategories(ctx context.Context, relatedTo domain.RelatedTo) ([]*domain.Category, error) {
	out := []*domain.Category{}
	err := r.store.read(ctx, func(st *state) error {
		for _, c := range st.categories {
			if relatedTo == "" || c.RelatedTo == relatedTo {
				out = append(out, &c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// DeleteCategory removes a category no entry references.
func (r *CategoryRepository) DeleteCategory(ctx context.Context, id int64) error {
	return r.store.write(ctx, func(st *state) error {
		if _, ok := st.categories[id]; !ok {
			return domain.ErrCategoryNotFound
		}
		for _, entries := range []map[int64]domain.Entry{st.expenses, st.incomes} {
			for _, e := range entries {
				if e.CategoryID == id {
					return domain.ErrReferencedEntityProtected
				}
			}
		}
		drop(st, st.categories, id)
		return nil
	})
}

// CreateSubcategory inserts a subcategory and assigns its ID.
func (r *CategoryRepository) CreateSubcategory(ctx context.Context, s *domain.Subcategory) error {
	return r.store.write(ctx, func(st *state) error {
		s.ID = st.nextID("subcategories")
		put(st, st.subcategories, s.ID, *s)
		return nil
	})
}

// GetSubcategory retrieves a subcategory.
func (r *CategoryRepository) GetSubcategory(ctx context.Context, id int64) (*domain.Subcategory, error) {
	var out *domain.Subcategory
	err := r.store.read(ctx, func(st *state) error {
		s, ok := st.subcategories[id]
		if !ok {
			return domain.ErrCategoryNotFound
		}
		out = &s
		return nil
	})
	return out, err
}

// ListSubcategories lists subcategories ordered by ID.
func (r *CategoryRepository) ListSubcategories(ctx context.Context, relatedTo domain.RelatedTo) ([]*domain.Subcategory, error) {
	out := []*domain.Subcategory{}
	err := r.store.read(ctx, func(st *state) error {
		for _, s := range st.subcategories {
			if relatedTo == "" || s.RelatedTo == relatedTo {
				out = append(out, &s)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// DeleteSubcategory removes a subcategory no entry references.
func (r *CategoryRepository) DeleteSubcategory(ctx context.Context, id int64) error {
	return r.store.write(ctx, func(st *state) error {
		if _, ok := st.subcategories[id]; !ok {
			return domain.ErrCategoryNotFound
		}
		for _, entries := range []map[int64]domain.Entry{st.expenses, st.incomes} {
			for _, e := range entries {
				if e.SubcategoryID == id {
					return domain.ErrReferencedEntityProtected
				}
			}
		}
		drop(st, st.subcategories, id)
		return nil
	})
}
