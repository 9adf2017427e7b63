package persistence

import (
	"context"

	"github.com/erp/catalog/internal/domain/catalog"
	"github.com/erp/catalog/internal/domain/shared"
	"gorm.io/gorm"
)

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// Create inserts an item
func (r *GormItemRepository) Create(ctx context.Context, item *catalog.Item) error {
	return translateError(r.db.WithContext(ctx).Create(item).Error, item.Name)
}

// FindAll returns every item in insertion order
func (r *GormItemRepository) FindAll(ctx context.Context) ([]catalog.Item, error) {
	return r.find(r.db.WithContext(ctx))
}

// FindByParent returns the items attached to parent
func (r *GormItemRepository) FindByParent(ctx context.Context, parent catalog.ParentRef) ([]catalog.Item, error) {
	return r.find(r.db.WithContext(ctx).Where("on_model = ? AND model_id = ?", parent.Kind, parent.ID))
}

// SearchByName matches term literally and case-insensitively inside item names
func (r *GormItemRepository) SearchByName(ctx context.Context, term string) ([]catalog.Item, error) {
	q := r.db.WithContext(ctx)
	if term != "" {
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, containsPattern(term))
	}
	return r.find(q)
}

func (r *GormItemRepository) find(q *gorm.DB) ([]catalog.Item, error) {
	items := []catalog.Item{}
	if err := q.Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindOne finds an item by identifier or exact name
func (r *GormItemRepository) FindOne(ctx context.Context, key catalog.LookupKey) (*catalog.Item, error) {
	var item catalog.Item
	if err := lookup(r.db.WithContext(ctx), key).First(&item).Error; err != nil {
		return nil, translateError(err, nil)
	}
	return &item, nil
}

// UpdateByID overwrites the updatable columns and returns the stored row.
// The parent reference is never written.
func (r *GormItemRepository) UpdateByID(ctx context.Context, id shared.ID, item *catalog.Item) (*catalog.Item, error) {
	db := r.db.WithContext(ctx)
	res := db.Model(&catalog.Item{}).Where("id = ?", id).Updates(map[string]any{
		"name":              item.Name,
		"image":             item.Image,
		"description":       item.Description,
		"tax_applicability": item.TaxApplicability,
		"tax":               item.Tax,
		"base_amount":       item.BaseAmount,
		"discount":          item.Discount,
		"total_amount":      item.TotalAmount,
		"updated_at":        item.UpdatedAt,
	})
	if res.Error != nil {
		return nil, translateError(res.Error, item.Name)
	}
	if res.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}

	var updated catalog.Item
	if err := db.First(&updated, "id = ?", id).Error; err != nil {
		return nil, translateError(err, nil)
	}
	return &updated, nil
}
