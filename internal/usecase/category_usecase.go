package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/panelledger/internal/domain"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

const (
	categoriesCacheKey    = "categories:"
	subcategoriesCacheKey = "subcategories:"
)

// CategoryUseCase manages categories and subcategories. List results are
// cached when a Cache is configured.
type CategoryUseCase struct {
	categoryRepo CategoryRepository
	cache        Cache
	cacheTTL     time.Duration
	logger       zerolog.Logger
}

// NewCategoryUseCase creates a new CategoryUseCase. cache may be nil.
func NewCategoryUseCase(categoryRepo CategoryRepository, cache Cache, cacheTTL time.Duration, logger zerolog.Logger) *CategoryUseCase {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCategoryCacheTTL
	}

	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
		logger:       logger.With().Str("component", "category_usecase").Logger(),
	}
}

// CreateCategoryInput represents input for creating a category or subcategory.
type CreateCategoryInput struct {
	Name      string
	RelatedTo domain.RelatedTo
}

func (in CreateCategoryInput) validate() (string, error) {
	name := strings.TrimSpace(in.Name)
	if err := domain.ValidateName(name, domain.MaxCategoryNameLength); err != nil {
		return "", err
	}

	if in.RelatedTo != domain.RelatedToExpense && in.RelatedTo != domain.RelatedToIncome {
		return "", domain.ErrInvalidInput
	}

	return name, nil
}

// CreateCategory creates a category.
func (uc *CategoryUseCase) CreateCategory(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	name, err := input.validate()
	if err != nil {
		return nil, err
	}

	c := &domain.Category{Name: name, RelatedTo: input.RelatedTo}
	if err := uc.categoryRepo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, categoriesCacheKey)

	return c, nil
}

// GetCategory retrieves a category by ID.
func (uc *CategoryUseCase) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return uc.categoryRepo.GetCategory(ctx, id)
}

// ListCategories lists categories, optionally filtered by relatedTo.
func (uc *CategoryUseCase) ListCategories(ctx context.Context, relatedTo domain.RelatedTo) ([]*domain.Category, error) {
	key := categoriesCacheKey + string(relatedTo)

	var cached []*domain.Category
	if uc.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	categories, err := uc.categoryRepo.ListCategories(ctx, relatedTo)
	if err != nil {
		return nil, err
	}

	uc.toCache(ctx, key, categories)

	return categories, nil
}

// DeleteCategory deletes a category no entry references.
func (uc *CategoryUseCase) DeleteCategory(ctx context.Context, id int64) error {
	if err := uc.categoryRepo.DeleteCategory(ctx, id); err != nil {
		return err
	}

	uc.invalidate(ctx, categoriesCacheKey)

	return nil
}

// CreateSubcategory creates a subcategory.
func (uc *CategoryUseCase) CreateSubcategory(ctx context.Context, input CreateCategoryInput) (*domain.Subcategory, error) {
	name, err := input.validate()
	if err != nil {
		return nil, err
	}

	s := &domain.Subcategory{Name: name, RelatedTo: input.RelatedTo}
	if err := uc.categoryRepo.CreateSubcategory(ctx, s); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, subcategoriesCacheKey)

	return s, nil
}

// GetSubcategory retrieves a subcategory by ID.
func (uc *CategoryUseCase) GetSubcategory(ctx context.Context, id int64) (*domain.Subcategory, error) {
	return uc.categoryRepo.GetSubcategory(ctx, id)
}

// ListSubcategories lists subcategories, optionally filtered by relatedTo.
func (uc *CategoryUseCase) ListSubcategories(ctx context.Context, relatedTo domain.RelatedTo) ([]*domain.Subcategory, error) {
	key := subcategoriesCacheKey + string(relatedTo)

	var cached []*domain.Subcategory
	if uc.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	subcategories, err := uc.categoryRepo.ListSubcategories(ctx, relatedTo)
	if err != nil {
		return nil, err
	}

	uc.toCache(ctx, key, subcategories)

	return subcategories, nil
}

// DeleteSubcategory deletes a subcategory no entry references.
func (uc *CategoryUseCase) DeleteSubcategory(ctx context.Context, id int64) error {
	if err := uc.categoryRepo.DeleteSubcategory(ctx, id); err != nil {
		return err
	}

	uc.invalidate(ctx, subcategoriesCacheKey)

	return nil
}

func (uc *CategoryUseCase) fromCache(ctx context.Context, key string, dst any) bool {
	if uc.cache == nil {
		return false
	}

	data, err := uc.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			uc.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("cache entry is corrupt")
		return false
	}

	return true
}

func (uc *CategoryUseCase) toCache(ctx context.Context, key string, v any) {
	if uc.cache == nil {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		return
	}

	if err := uc.cache.Set(ctx, key, data, uc.cacheTTL); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// invalidate drops every cached list under prefix.
func (uc *CategoryUseCase) invalidate(ctx context.Context, prefix string) {
	if uc.cache == nil {
		return
	}

	for _, suffix := range []domain.RelatedTo{"", domain.RelatedToExpense, domain.RelatedToIncome} {
		if err := uc.cache.Delete(ctx, prefix+string(suffix)); err != nil {
			uc.logger.Warn().Err(err).Str("key", prefix+string(suffix)).Msg("cache invalidation failed")
		}
	}
}
