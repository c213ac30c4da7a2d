package repository

import (
	"context"

	"github.com/gokatarajesh/trivia-api/internal/db"
)

type categoryStore interface {
	ListCategories(ctx context.Context) ([]db.Category, error)
}

// CategoryRepository exposes read access to categories.
type CategoryRepository struct {
	store categoryStore
}

func NewCategoryRepository(store categoryStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// List returns all categories ordered by their display label.
func (r *CategoryRepository) List(ctx context.Context) ([]db.Category, error) {
	return r.store.ListCategories(ctx)
}
