package persistence

import (
	"context"

	"github.com/erp/catalog/internal/domain/catalog"
	"github.com/erp/catalog/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// Create inserts a category
func (r *GormCategoryRepository) Create(ctx context.Context, category *catalog.Category) error {
	return translateError(r.db.WithContext(ctx).Create(category).Error, category.Name)
}

// FindAll returns every category in insertion order
func (r *GormCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	categories := []catalog.Category{}
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindOne finds a category by identifier or exact name
func (r *GormCategoryRepository) FindOne(ctx context.Context, key catalog.LookupKey) (*catalog.Category, error) {
	var category catalog.Category
	if err := lookup(r.db.WithContext(ctx), key).First(&category).Error; err != nil {
		return nil, translateError(err, nil)
	}
	return &category, nil
}

// UpdateByID overwrites the updatable columns and returns the stored row
func (r *GormCategoryRepository) UpdateByID(ctx context.Context, id shared.ID, category *catalog.Category) (*catalog.Category, error) {
	db := r.db.WithContext(ctx)
	res := db.Model(&catalog.Category{}).Where("id = ?", id).Updates(map[string]any{
		"name":              category.Name,
		"image":             category.Image,
		"description":       category.Description,
		"tax_applicability": category.TaxApplicability,
		"tax":               category.Tax,
		"tax_type":          category.TaxType,
		"updated_at":        category.UpdatedAt,
	})
	if res.Error != nil {
		return nil, translateError(res.Error, category.Name)
	}
	if res.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}

	var updated catalog.Category
	if err := db.First(&updated, "id = ?", id).Error; err != nil {
		return nil, translateError(err, nil)
	}
	return &updated, nil
}

// lookup narrows q to the row addressed by key
func lookup(q *gorm.DB, key catalog.LookupKey) *gorm.DB {
	if id, ok := key.ID(); ok {
		return q.Where("id = ?", id)
	}
	return q.Where("name = ?", key.Name())
}
