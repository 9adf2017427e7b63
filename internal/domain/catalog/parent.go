package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/catalog/internal/domain/shared"
)

// ParentKind selects which collection an item's modelId points into
type ParentKind string

const (
	ParentKindCategory    ParentKind = "Category"
	ParentKindSubcategory ParentKind = "Subcategory"
)

// IsValid reports whether k is a known kind
func (k ParentKind) IsValid() bool {
	return k == ParentKindCategory || k == ParentKindSubcategory
}

// ParentRef is a reference to either a Category or a Subcategory
type ParentRef struct {
	Kind ParentKind
	ID   shared.ID
}

// CategoryRef references a category
func CategoryRef(id shared.ID) ParentRef {
	return ParentRef{Kind: ParentKindCategory, ID: id}
}

// SubcategoryRef references a subcategory
func SubcategoryRef(id shared.ID) ParentRef {
	return ParentRef{Kind: ParentKindSubcategory, ID: id}
}

// Parent is a resolved ParentRef. Exactly one of Category or Subcategory is set.
type Parent struct {
	Kind        ParentKind
	Category    *Category
	Subcategory *Subcategory
}

// ParentResolver loads the entity a ParentRef points to
type ParentResolver struct {
	categories    CategoryRepository
	subcategories SubcategoryRepository
}

// NewParentResolver creates a new ParentResolver
func NewParentResolver(categories CategoryRepository, subcategories SubcategoryRepository) *ParentResolver {
	return &ParentResolver{
		categories:    categories,
		subcategories: subcategories,
	}
}

// Resolve dispatches to the repository selected by ref.Kind.
// Returns shared.ErrNotFound if the referenced entity does not exist.
func (r *ParentResolver) Resolve(ctx context.Context, ref ParentRef) (*Parent, error) {
	switch ref.Kind {
	case ParentKindCategory:
		c, err := r.categories.FindOne(ctx, LookupByID(ref.ID))
		if err != nil {
			return nil, err
		}
		return &Parent{Kind: ref.Kind, Category: c}, nil
	case ParentKindSubcategory:
		s, err := r.subcategories.FindOne(ctx, LookupByID(ref.ID))
		if err != nil {
			return nil, err
		}
		return &Parent{Kind: ref.Kind, Subcategory: s}, nil
	default:
		return nil, fmt.Errorf("unknown parent kind %q", ref.Kind)
	}
}

// Exists reports whether the referenced entity exists
func (r *ParentResolver) Exists(ctx context.Context, ref ParentRef) (bool, error) {
	_, err := r.Resolve(ctx, ref)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, shared.ErrNotFound) {
		return false, nil
	}
	return false, err
}
