package catalog

import (
	"context"

	"github.com/erp/catalog/internal/domain/shared"
)

// SubcategoryRepository defines the interface for subcategory persistence
type SubcategoryRepository interface {
	// Create inserts a new subcategory
	Create(ctx context.Context, subcategory *Subcategory) error

	// FindAll returns every subcategory
	FindAll(ctx context.Context) ([]Subcategory, error)

	// FindByCategory returns the subcategories referencing categoryID
	FindByCategory(ctx context.Context, categoryID shared.ID) ([]Subcategory, error)

	// FindOne finds a subcategory by identifier or name
	FindOne(ctx context.Context, key LookupKey) (*Subcategory, error)

	// UpdateByID writes the updatable fields of subcategory to the document
	// with the given id and returns the stored result
	UpdateByID(ctx context.Context, id shared.ID, subcategory *Subcategory) (*Subcategory, error)
}
