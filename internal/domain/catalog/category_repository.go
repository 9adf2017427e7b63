package catalog

import (
	"context"

	"github.com/erp/catalog/internal/domain/shared"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// Create inserts a new category.
	// Returns *shared.DuplicateKeyError when the name is taken.
	Create(ctx context.Context, category *Category) error

	// FindAll returns every category; an empty store yields an empty slice
	FindAll(ctx context.Context) ([]Category, error)

	// FindOne finds a category by identifier or name
	FindOne(ctx context.Context, key LookupKey) (*Category, error)

	// UpdateByID writes the updatable fields of category to the document
	// with the given id (nil fields are cleared) and returns the stored result
	UpdateByID(ctx context.Context, id shared.ID, category *Category) (*Category, error)
}
