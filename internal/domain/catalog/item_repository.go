package catalog

import (
	"context"

	"github.com/erp/catalog/internal/domain/shared"
)

// ItemRepository defines the interface for item persistence
type ItemRepository interface {
	// Create inserts a new item
	Create(ctx context.Context, item *Item) error

	// FindAll returns every item
	FindAll(ctx context.Context) ([]Item, error)

	// FindByParent returns the items attached to the referenced parent
	FindByParent(ctx context.Context, parent ParentRef) ([]Item, error)

	// SearchByName returns items whose name contains term, case-insensitively.
	// term is matched literally.
	SearchByName(ctx context.Context, term string) ([]Item, error)

	// FindOne finds an item by identifier or name
	FindOne(ctx context.Context, key LookupKey) (*Item, error)

	// UpdateByID writes the updatable fields of item to the document with
	// the given id and returns the stored result
	UpdateByID(ctx context.Context, id shared.ID, item *Item) (*Item, error)
}
