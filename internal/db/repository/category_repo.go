package repository

import (
	"context"
)

type categoryStore interface {
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id int64) (Category, error)
}

// CategoryRepository exposes the read-only category table.
type CategoryRepository struct {
	store categoryStore
}

func NewCategoryRepository(store categoryStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// List returns all categories ordered by id.
func (r *CategoryRepository) List(ctx context.Context) ([]Category, error) {
	return r.store.ListCategories(ctx)
}

// Get fetches a category by id; ErrNotFound when absent.
func (r *CategoryRepository) Get(ctx context.Context, id int64) (Category, error) {
	return r.store.GetCategory(ctx, id)
}
