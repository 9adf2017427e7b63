package persistence

import (
	"context"

	"github.com/erp/catalog/internal/domain/catalog"
	"github.com/erp/catalog/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSubcategoryRepository implements SubcategoryRepository using GORM
type GormSubcategoryRepository struct {
	db *gorm.DB
}

// NewGormSubcategoryRepository creates a new GormSubcategoryRepository
func NewGormSubcategoryRepository(db *gorm.DB) *GormSubcategoryRepository {
	return &GormSubcategoryRepository{db: db}
}

// Create inserts a subcategory
func (r *GormSubcategoryRepository) Create(ctx context.Context, subcategory *catalog.Subcategory) error {
	return translateError(r.db.WithContext(ctx).Create(subcategory).Error, subcategory.Name)
}

// FindAll returns every subcategory in insertion order
func (r *GormSubcategoryRepository) FindAll(ctx context.Context) ([]catalog.Subcategory, error) {
	subcategories := []catalog.Subcategory{}
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&subcategories).Error; err != nil {
		return nil, err
	}
	return subcategories, nil
}

// FindByCategory returns the subcategories of a category
func (r *GormSubcategoryRepository) FindByCategory(ctx context.Context, categoryID shared.ID) ([]catalog.Subcategory, error) {
	subcategories := []catalog.Subcategory{}
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("created_at ASC, id ASC").
		Find(&subcategories).Error; err != nil {
		return nil, err
	}
	return subcategories, nil
}

// FindOne finds a subcategory by identifier or exact name
func (r *GormSubcategoryRepository) FindOne(ctx context.Context, key catalog.LookupKey) (*catalog.Subcategory, error) {
	var subcategory catalog.Subcategory
	if err := lookup(r.db.WithContext(ctx), key).First(&subcategory).Error; err != nil {
		return nil, translateError(err, nil)
	}
	return &subcategory, nil
}

// UpdateByID overwrites the updatable columns and returns the stored row.
// category_id is never written.
func (r *GormSubcategoryRepository) UpdateByID(ctx context.Context, id shared.ID, subcategory *catalog.Subcategory) (*catalog.Subcategory, error) {
	db := r.db.WithContext(ctx)
	res := db.Model(&catalog.Subcategory{}).Where("id = ?", id).Updates(map[string]any{
		"name":              subcategory.Name,
		"image":             subcategory.Image,
		"description":       subcategory.Description,
		"tax_applicability": subcategory.TaxApplicability,
		"tax":               subcategory.Tax,
		"tax_type":          subcategory.TaxType,
		"updated_at":        subcategory.UpdatedAt,
	})
	if res.Error != nil {
		return nil, translateError(res.Error, subcategory.Name)
	}
	if res.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}

	var updated catalog.Subcategory
	if err := db.First(&updated, "id = ?", id).Error; err != nil {
		return nil, translateError(err, nil)
	}
	return &updated, nil
}
