package repository

import (
	"context"

	"magazine-backoffice/internal/domain/entity"
	"magazine-backoffice/internal/store"
)

// CategoryRepository stores magazine rubrics.
type CategoryRepository struct {
	*Repository[entity.Category]
}

// NewCategoryRepository builds the category repository.
func NewCategoryRepository(reg *Registry, st store.Store) (*CategoryRepository, error) {
	base, err := New[entity.Category](reg, st, categoryType)
	if err != nil {
		return nil, err
	}
	return &CategoryRepository{Repository: base}, nil
}

// CreateNamed creates a category with the given name.
func (r *CategoryRepository) CreateNamed(ctx context.Context, name string) (*entity.Category, error) {
	return r.Create(ctx, store.Record{"name": name})
}
