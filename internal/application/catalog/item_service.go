package catalog

import (
	"context"

	"github.com/erp/catalog/internal/domain/catalog"
	"github.com/erp/catalog/internal/domain/shared"
	"github.com/erp/catalog/internal/infrastructure/telemetry"
)

// ItemService handles item-related business operations
type ItemService struct {
	itemRepo catalog.ItemRepository
	resolver *catalog.ParentResolver
	opts     Options
}

// NewItemService creates a new ItemService
func NewItemService(
	itemRepo catalog.ItemRepository,
	resolver *catalog.ParentResolver,
	opts Options,
) *ItemService {
	return &ItemService{
		itemRepo: itemRepo,
		resolver: resolver,
		opts:     opts.normalized(),
	}
}

// Create creates a new item attached to a category or subcategory.
// totalAmount is computed from baseAmount and discount.
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "item", "create")
	defer span.End()

	parent, err := parentFromRequest(req.OnModel, req.ModelID)
	if err != nil {
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrParent, string(parent.Kind)+":"+parent.ID.Hex())

	if s.opts.VerifyReferences && s.resolver != nil {
		ok, err := s.resolver.Exists(ctx, parent)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		if !ok {
			return nil, missingReference("modelId", string(parent.Kind))
		}
	}

	item := catalog.NewItem(parent, req.Fields())
	if err := s.itemRepo.Create(ctx, item); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrEntityID, item.ID.Hex())
	resp := ToItemResponse(item)
	return &resp, nil
}

// List retrieves all items
func (s *ItemService) List(ctx context.Context) ([]ItemResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "item", "list")
	defer span.End()

	items, err := s.itemRepo.FindAll(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrCount, len(items))
	return ToItemResponses(items), nil
}

// ListByCategory retrieves items attached directly to a category
func (s *ItemService) ListByCategory(ctx context.Context, categoryID string) ([]ItemResponse, error) {
	return s.listByParent(ctx, catalog.ParentKindCategory, categoryID)
}

// ListBySubcategory retrieves items attached to a subcategory
func (s *ItemService) ListBySubcategory(ctx context.Context, subcategoryID string) ([]ItemResponse, error) {
	return s.listByParent(ctx, catalog.ParentKindSubcategory, subcategoryID)
}

func (s *ItemService) listByParent(ctx context.Context, kind catalog.ParentKind, rawID string) ([]ItemResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "item", "list_by_parent")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrParent, string(kind)+":"+rawID)

	id, err := shared.ParseID(rawID)
	if err != nil {
		return []ItemResponse{}, nil
	}

	items, err := s.itemRepo.FindByParent(ctx, catalog.ParentRef{Kind: kind, ID: id})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrCount, len(items))
	return ToItemResponses(items), nil
}

// Search returns items whose name contains term, ignoring case.
// An empty term matches every item.
func (s *ItemService) Search(ctx context.Context, term string) ([]ItemResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "item", "search")
	defer span.End()

	items, err := s.itemRepo.SearchByName(ctx, term)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrCount, len(items))
	return ToItemResponses(items), nil
}

// Get retrieves an item by identifier, falling back to name
func (s *ItemService) Get(ctx context.Context, idOrName string) (*ItemResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "item", "get")
	defer span.End()

	key := catalog.ParseLookupKey(idOrName)
	telemetry.SetAttributes(span, telemetry.SpanAttrLookupKey, key)

	item, err := s.itemRepo.FindOne(ctx, key)
	if err != nil {
		err = notFoundAs(err, ErrItemNotFound)
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToItemResponse(item)
	return &resp, nil
}

// Update updates the item with the given identifier and recomputes its total
func (s *ItemService) Update(ctx context.Context, id string, req UpdateItemRequest) (*ItemResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "item", "update")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrEntityID, id)

	itemID, err := shared.ParseID(id)
	if err != nil {
		return nil, ErrItemNotFound
	}

	var item *catalog.Item
	if s.opts.UpdateMode == catalog.UpdateModeMerge {
		item, err = s.itemRepo.FindOne(ctx, catalog.LookupByID(itemID))
		if err != nil {
			err = notFoundAs(err, ErrItemNotFound)
			telemetry.RecordError(span, err)
			return nil, err
		}
	} else {
		item = &catalog.Item{BaseEntity: shared.BaseEntity{ID: itemID}}
	}
	item.Apply(req.Fields(), s.opts.UpdateMode)

	updated, err := s.itemRepo.UpdateByID(ctx, itemID, item)
	if err != nil {
		err = notFoundAs(err, ErrItemNotFound)
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToItemResponse(updated)
	return &resp, nil
}

func parentFromRequest(onModel, modelID *string) (catalog.ParentRef, error) {
	if onModel == nil || !catalog.ParentKind(*onModel).IsValid() {
		return catalog.ParentRef{}, shared.NewValidationError("onModel", "must be one of [Category Subcategory]")
	}
	if modelID == nil {
		return catalog.ParentRef{}, shared.NewValidationError("modelId", "is required")
	}
	id, err := shared.ParseID(*modelID)
	if err != nil {
		return catalog.ParentRef{}, shared.NewValidationError("modelId", "must be a valid identifier")
	}
	return catalog.ParentRef{Kind: catalog.ParentKind(*onModel), ID: id}, nil
}
