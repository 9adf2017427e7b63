package mongodb

import (
	"context"
	"regexp"

	"github.com/erp/catalog/internal/domain/catalog"
	"github.com/erp/catalog/internal/domain/shared"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// lookupFilter builds the filter for an identifier or exact-name lookup
func lookupFilter(key catalog.LookupKey) bson.D {
	if id, ok := key.ID(); ok {
		return bson.D{{Key: "_id", Value: id}}
	}
	return bson.D{{Key: "name", Value: key.Name()}}
}

// findAll decodes every document matching filter in insertion order
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.D) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, key catalog.LookupKey) (*T, error) {
	var out T
	if err := coll.FindOne(ctx, lookupFilter(key)).Decode(&out); err != nil {
		return nil, translateError(err, nil)
	}
	return &out, nil
}

// updateByID applies u to the document with id and decodes the post-update document
func updateByID[T any](ctx context.Context, coll *mongo.Collection, id shared.ID, u *update, name *string) (*T, error) {
	var out T
	err := coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		u.document(),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return nil, translateError(err, name)
	}
	return &out, nil
}

// CategoryRepository implements catalog.CategoryRepository on MongoDB
type CategoryRepository struct {
	coll *mongo.Collection
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{coll: db.Collection(CategoriesCollection)}
}

// Create inserts a category
func (r *CategoryRepository) Create(ctx context.Context, category *catalog.Category) error {
	_, err := r.coll.InsertOne(ctx, category)
	return translateError(err, category.Name)
}

// FindAll returns every category
func (r *CategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	return findAll[catalog.Category](ctx, r.coll, bson.D{})
}

// FindOne finds a category by identifier or name
func (r *CategoryRepository) FindOne(ctx context.Context, key catalog.LookupKey) (*catalog.Category, error) {
	return findOne[catalog.Category](ctx, r.coll, key)
}

// UpdateByID writes the updatable fields, unsetting nil ones
func (r *CategoryRepository) UpdateByID(ctx context.Context, id shared.ID, category *catalog.Category) (*catalog.Category, error) {
	u := categoryUpdate(category.Name, category.Image, category.Description,
		category.TaxApplicability, category.Tax, category.TaxType)
	u.field("updatedAt", category.UpdatedAt, false)
	return updateByID[catalog.Category](ctx, r.coll, id, u, category.Name)
}

func categoryUpdate(name, image, description *string, taxApplicability *bool, tax *float64, taxType *string) *update {
	u := &update{}
	setString(u, "name", name)
	setString(u, "image", image)
	setString(u, "description", description)
	setBool(u, "taxApplicability", taxApplicability)
	setFloat(u, "tax", tax)
	setString(u, "taxType", taxType)
	return u
}

// SubcategoryRepository implements catalog.SubcategoryRepository on MongoDB
type SubcategoryRepository struct {
	coll *mongo.Collection
}

// NewSubcategoryRepository creates a new SubcategoryRepository
func NewSubcategoryRepository(db *mongo.Database) *SubcategoryRepository {
	return &SubcategoryRepository{coll: db.Collection(SubcategoriesCollection)}
}

// Create inserts a subcategory
func (r *SubcategoryRepository) Create(ctx context.Context, subcategory *catalog.Subcategory) error {
	_, err := r.coll.InsertOne(ctx, subcategory)
	return translateError(err, subcategory.Name)
}

// FindAll returns every subcategory
func (r *SubcategoryRepository) FindAll(ctx context.Context) ([]catalog.Subcategory, error) {
	return findAll[catalog.Subcategory](ctx, r.coll, bson.D{})
}

// FindByCategory returns the subcategories of a category
func (r *SubcategoryRepository) FindByCategory(ctx context.Context, categoryID shared.ID) ([]catalog.Subcategory, error) {
	return findAll[catalog.Subcategory](ctx, r.coll, bson.D{{Key: "categoryId", Value: categoryID}})
}

// FindOne finds a subcategory by identifier or name
func (r *SubcategoryRepository) FindOne(ctx context.Context, key catalog.LookupKey) (*catalog.Subcategory, error) {
	return findOne[catalog.Subcategory](ctx, r.coll, key)
}

// UpdateByID writes the updatable fields. categoryId is never written.
func (r *SubcategoryRepository) UpdateByID(ctx context.Context, id shared.ID, subcategory *catalog.Subcategory) (*catalog.Subcategory, error) {
	u := categoryUpdate(subcategory.Name, subcategory.Image, subcategory.Description,
		subcategory.TaxApplicability, subcategory.Tax, subcategory.TaxType)
	u.field("updatedAt", subcategory.UpdatedAt, false)
	return updateByID[catalog.Subcategory](ctx, r.coll, id, u, subcategory.Name)
}

// ItemRepository implements catalog.ItemRepository on MongoDB
type ItemRepository struct {
	coll *mongo.Collection
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *mongo.Database) *ItemRepository {
	return &ItemRepository{coll: db.Collection(ItemsCollection)}
}

// Create inserts an item
func (r *ItemRepository) Create(ctx context.Context, item *catalog.Item) error {
	_, err := r.coll.InsertOne(ctx, item)
	return translateError(err, item.Name)
}

// FindAll returns every item
func (r *ItemRepository) FindAll(ctx context.Context) ([]catalog.Item, error) {
	return findAll[catalog.Item](ctx, r.coll, bson.D{})
}

// FindByParent returns the items attached to parent
func (r *ItemRepository) FindByParent(ctx context.Context, parent catalog.ParentRef) ([]catalog.Item, error) {
	return findAll[catalog.Item](ctx, r.coll, parentFilter(parent))
}

// SearchByName matches term literally and case-insensitively inside item names
func (r *ItemRepository) SearchByName(ctx context.Context, term string) ([]catalog.Item, error) {
	return findAll[catalog.Item](ctx, r.coll, searchFilter(term))
}

// FindOne finds an item by identifier or name
func (r *ItemRepository) FindOne(ctx context.Context, key catalog.LookupKey) (*catalog.Item, error) {
	return findOne[catalog.Item](ctx, r.coll, key)
}

// UpdateByID writes the updatable fields and the recomputed total.
// onModel and modelId are never written.
func (r *ItemRepository) UpdateByID(ctx context.Context, id shared.ID, item *catalog.Item) (*catalog.Item, error) {
	u := &update{}
	setString(u, "name", item.Name)
	setString(u, "image", item.Image)
	setString(u, "description", item.Description)
	setBool(u, "taxApplicability", item.TaxApplicability)
	setFloat(u, "tax", item.Tax)
	setFloat(u, "baseAmount", item.BaseAmount)
	setFloat(u, "discount", item.Discount)
	u.field("totalAmount", item.TotalAmount, false)
	u.field("updatedAt", item.UpdatedAt, false)
	return updateByID[catalog.Item](ctx, r.coll, id, u, item.Name)
}

func parentFilter(parent catalog.ParentRef) bson.D {
	return bson.D{
		{Key: "onModel", Value: parent.Kind},
		{Key: "modelId", Value: parent.ID},
	}
}

func searchFilter(term string) bson.D {
	if term == "" {
		return bson.D{}
	}
	return bson.D{{Key: "name", Value: primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}}}
}
