package catalog

import (
	"errors"

	"github.com/erp/catalog/internal/domain/shared"
)

// Entity-specific not-found errors. All of them satisfy
// errors.Is(err, shared.ErrNotFound).
var (
	ErrCategoryNotFound    = shared.NewNotFoundError("Category not found.")
	ErrSubcategoryNotFound = shared.NewNotFoundError("Subcategory not found.")
	ErrItemNotFound        = shared.NewNotFoundError("Item not found.")
)

// notFoundAs replaces a repository not-found error with the entity message
func notFoundAs(err, entityErr error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return entityErr
	}
	return err
}

func missingReference(field string, kind string) error {
	return shared.NewValidationError(field, "referenced "+kind+" does not exist")
}
