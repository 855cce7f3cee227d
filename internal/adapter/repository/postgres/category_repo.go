package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/infrastructure/postgres/generated"
)

// CategoryRepository implements usecase.CategoryRepository over the
// categories and subcategories tables.
type CategoryRepository struct {
	db generated.DBTX
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db generated.DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// CreateCategory inserts a category.
func (r *CategoryRepository) CreateCategory(ctx context.Context, c *domain.Category) error {
	id, err := r.insert(ctx, "categories", c.Name, c.RelatedTo)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// GetCategory retrieves a category by ID.
func (r *CategoryRepository) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	var c domain.Category
	if err := r.get(ctx, "categories", id, &c.ID, &c.Name, &c.RelatedTo); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCategories lists categories, all of them when relatedTo is empty.
func (r *CategoryRepository) ListCategories(ctx context.Context, relatedTo domain.RelatedTo) ([]*domain.Category, error) {
	out := []*domain.Category{}
	err := r.list(ctx, "categories", relatedTo, func(row pgx.Rows) error {
		var c domain.Category
		if err := row.Scan(&c.ID, &c.Name, &c.RelatedTo); err != nil {
			return err
		}
		out = append(out, &c)
		return nil
	})
	return out, err
}

// DeleteCategory removes a category. Referenced categories are protected.
func (r *CategoryRepository) DeleteCategory(ctx context.Context, id int64) error {
	return r.delete(ctx, "categories", id)
}

// CreateSubcategory inserts a subcategory.
func (r *CategoryRepository) CreateSubcategory(ctx context.Context, s *domain.Subcategory) error {
	id, err := r.insert(ctx, "subcategories", s.Name, s.RelatedTo)
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

// GetSubcategory retrieves a subcategory by ID.
func (r *CategoryRepository) GetSubcategory(ctx context.Context, id int64) (*domain.Subcategory, error) {
	var s domain.Subcategory
	if err := r.get(ctx, "subcategories", id, &s.ID, &s.Name, &s.RelatedTo); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListSubcategories lists subcategories, all of them when relatedTo is empty.
func (r *CategoryRepository) ListSubcategories(ctx context.Context, relatedTo domain.RelatedTo) ([]*domain.Subcategory, error) {
	out := []*domain.Subcategory{}
	err := r.list(ctx, "subcategories", relatedTo, func(row pgx.Rows) error {
		var s domain.Subcategory
		if err := row.Scan(&s.ID, &s.Name, &s.RelatedTo); err != nil {
			return err
		}
		out = append(out, &s)
		return nil
	})
	return out, err
}

// DeleteSubcategory removes a subcategory. Referenced subcategories are protected.
func (r *CategoryRepository) DeleteSubcategory(ctx context.Context, id int64) error {
	return r.delete(ctx, "subcategories", id)
}

func (r *CategoryRepository) insert(ctx context.Context, table, name string, relatedTo domain.RelatedTo) (int64, error) {
	query := fmt.Sprintf(`INSERT INTO %s (name, related_to) VALUES ($1, $2) RETURNING id`, table)

	var id int64
	if err := r.db.QueryRow(ctx, query, name, string(relatedTo)).Scan(&id); err != nil {
		return 0, translateWriteError(err)
	}
	return id, nil
}

func (r *CategoryRepository) get(ctx context.Context, table string, id int64, dest ...any) error {
	query := fmt.Sprintf(`SELECT id, name, related_to FROM %s WHERE id = $1`, table)

	err := r.db.QueryRow(ctx, query, id).Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrCategoryNotFound
	}
	return err
}

func (r *CategoryRepository) list(ctx context.Context, table string, relatedTo domain.RelatedTo, scan func(pgx.Rows) error) error {
	query := fmt.Sprintf(`SELECT id, name, related_to FROM %s WHERE ($1 = '' OR related_to = $1) ORDER BY id`, table)

	rows, err := r.db.Query(ctx, query, string(relatedTo))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}

	return rows.Err()
}

func (r *CategoryRepository) delete(ctx context.Context, table string, id int64) error {
	tag, err := r.db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return translateDeleteError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}
