package catalog

import (
	"context"

	"github.com/erp/catalog/internal/domain/catalog"
	"github.com/erp/catalog/internal/domain/shared"
	"github.com/erp/catalog/internal/infrastructure/telemetry"
)

// SubcategoryService handles subcategory-related business operations
type SubcategoryService struct {
	subcategoryRepo catalog.SubcategoryRepository
	resolver        *catalog.ParentResolver
	opts            Options
}

// NewSubcategoryService creates a new SubcategoryService
func NewSubcategoryService(
	subcategoryRepo catalog.SubcategoryRepository,
	resolver *catalog.ParentResolver,
	opts Options,
) *SubcategoryService {
	return &SubcategoryService{
		subcategoryRepo: subcategoryRepo,
		resolver:        resolver,
		opts:            opts.normalized(),
	}
}

// Create creates a new subcategory under the referenced category
func (s *SubcategoryService) Create(ctx context.Context, req CreateSubcategoryRequest) (*SubcategoryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "subcategory", "create")
	defer span.End()

	var raw string
	if req.CategoryID != nil {
		raw = *req.CategoryID
	}
	categoryID, err := shared.ParseID(raw)
	if err != nil {
		return nil, shared.NewValidationError("categoryId", "must be a valid identifier")
	}

	if s.opts.VerifyReferences && s.resolver != nil {
		ok, err := s.resolver.Exists(ctx, catalog.CategoryRef(categoryID))
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		if !ok {
			return nil, missingReference("categoryId", string(catalog.ParentKindCategory))
		}
	}

	subcategory := catalog.NewSubcategory(categoryID, req.Fields())
	if err := s.subcategoryRepo.Create(ctx, subcategory); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrEntityID, subcategory.ID.Hex())
	resp := ToSubcategoryResponse(subcategory)
	return &resp, nil
}

// List retrieves all subcategories
func (s *SubcategoryService) List(ctx context.Context) ([]SubcategoryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "subcategory", "list")
	defer span.End()

	subcategories, err := s.subcategoryRepo.FindAll(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrCount, len(subcategories))
	return ToSubcategoryResponses(subcategories), nil
}

// ListByCategory retrieves the subcategories of a category.
// A malformed category identifier yields an empty list.
func (s *SubcategoryService) ListByCategory(ctx context.Context, categoryID string) ([]SubcategoryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "subcategory", "list_by_category")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrParent, categoryID)

	id, err := shared.ParseID(categoryID)
	if err != nil {
		return []SubcategoryResponse{}, nil
	}

	subcategories, err := s.subcategoryRepo.FindByCategory(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrCount, len(subcategories))
	return ToSubcategoryResponses(subcategories), nil
}

// Get retrieves a subcategory by identifier, falling back to name
func (s *SubcategoryService) Get(ctx context.Context, idOrName string) (*SubcategoryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "subcategory", "get")
	defer span.End()

	key := catalog.ParseLookupKey(idOrName)
	telemetry.SetAttributes(span, telemetry.SpanAttrLookupKey, key)

	subcategory, err := s.subcategoryRepo.FindOne(ctx, key)
	if err != nil {
		err = notFoundAs(err, ErrSubcategoryNotFound)
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToSubcategoryResponse(subcategory)
	return &resp, nil
}

// Update updates the subcategory with the given identifier
func (s *SubcategoryService) Update(ctx context.Context, id string, req UpdateSubcategoryRequest) (*SubcategoryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "subcategory", "update")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrEntityID, id)

	subcategoryID, err := shared.ParseID(id)
	if err != nil {
		return nil, ErrSubcategoryNotFound
	}

	var subcategory *catalog.Subcategory
	if s.opts.UpdateMode == catalog.UpdateModeMerge {
		subcategory, err = s.subcategoryRepo.FindOne(ctx, catalog.LookupByID(subcategoryID))
		if err != nil {
			err = notFoundAs(err, ErrSubcategoryNotFound)
			telemetry.RecordError(span, err)
			return nil, err
		}
	} else {
		subcategory = &catalog.Subcategory{BaseEntity: shared.BaseEntity{ID: subcategoryID}}
	}
	subcategory.Apply(req.Fields(), s.opts.UpdateMode)

	updated, err := s.subcategoryRepo.UpdateByID(ctx, subcategoryID, subcategory)
	if err != nil {
		err = notFoundAs(err, ErrSubcategoryNotFound)
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToSubcategoryResponse(updated)
	return &resp, nil
}
