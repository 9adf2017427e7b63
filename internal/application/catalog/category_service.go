package catalog

import (
	"context"

	"github.com/erp/catalog/internal/domain/catalog"
	"github.com/erp/catalog/internal/domain/shared"
	"github.com/erp/catalog/internal/infrastructure/telemetry"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	opts         Options
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository, opts Options) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		opts:         opts.normalized(),
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "category", "create")
	defer span.End()

	category := catalog.NewCategory(req.Fields())
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrEntityID, category.ID.Hex())
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// List retrieves all categories
func (s *CategoryService) List(ctx context.Context) ([]CategoryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "category", "list")
	defer span.End()

	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrCount, len(categories))
	return ToCategoryResponses(categories), nil
}

// Get retrieves a category by identifier, falling back to name
func (s *CategoryService) Get(ctx context.Context, idOrName string) (*CategoryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "category", "get")
	defer span.End()

	key := catalog.ParseLookupKey(idOrName)
	telemetry.SetAttributes(span, telemetry.SpanAttrLookupKey, key)

	category, err := s.categoryRepo.FindOne(ctx, key)
	if err != nil {
		err = notFoundAs(err, ErrCategoryNotFound)
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Update updates the category with the given identifier.
// A malformed identifier matches nothing.
func (s *CategoryService) Update(ctx context.Context, id string, req UpdateCategoryRequest) (*CategoryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "category", "update")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrEntityID, id)

	categoryID, err := shared.ParseID(id)
	if err != nil {
		return nil, ErrCategoryNotFound
	}

	var category *catalog.Category
	if s.opts.UpdateMode == catalog.UpdateModeMerge {
		category, err = s.categoryRepo.FindOne(ctx, catalog.LookupByID(categoryID))
		if err != nil {
			err = notFoundAs(err, ErrCategoryNotFound)
			telemetry.RecordError(span, err)
			return nil, err
		}
	} else {
		category = &catalog.Category{BaseEntity: shared.BaseEntity{ID: categoryID}}
	}
	category.Apply(req.Fields(), s.opts.UpdateMode)

	updated, err := s.categoryRepo.UpdateByID(ctx, categoryID, category)
	if err != nil {
		err = notFoundAs(err, ErrCategoryNotFound)
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToCategoryResponse(updated)
	return &resp, nil
}
