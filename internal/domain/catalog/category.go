package catalog

import (
	"github.com/erp/catalog/internal/domain/shared"
)

// Category is a top-level grouping of the catalog.
// Name is globally unique.
type Category struct {
	shared.BaseEntity `bson:",inline"`
	Name              *string  `bson:"name,omitempty" gorm:"type:varchar(50);uniqueIndex:idx_category_name"`
	Image             *string  `bson:"image,omitempty" gorm:"type:text"`
	Description       *string  `bson:"description,omitempty" gorm:"type:text"`
	TaxApplicability  *bool    `bson:"taxApplicability,omitempty"`
	Tax               *float64 `bson:"tax,omitempty"`
	TaxType           *string  `bson:"taxType,omitempty" gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// CategoryFields holds the client-settable attributes of a category.
// A nil field was not supplied by the client.
type CategoryFields struct {
	Name             *string
	Image            *string
	Description      *string
	TaxApplicability *bool
	Tax              *float64
	TaxType          *string
}

// NewCategory creates a category from validated fields
func NewCategory(f CategoryFields) *Category {
	c := &Category{BaseEntity: shared.NewBaseEntity()}
	c.assign(f)
	return c
}

// Apply updates the category with the supplied fields.
// In replace mode every field absent from f is cleared.
func (c *Category) Apply(f CategoryFields, mode UpdateMode) {
	if mode == UpdateModeReplace {
		c.assign(f)
	} else {
		c.assign(mergeCategoryFields(c.Fields(), f))
	}
	c.Touch()
}

// Fields returns the current client-settable attributes
func (c *Category) Fields() CategoryFields {
	return CategoryFields{
		Name:             c.Name,
		Image:            c.Image,
		Description:      c.Description,
		TaxApplicability: c.TaxApplicability,
		Tax:              c.Tax,
		TaxType:          c.TaxType,
	}
}

// DisplayName returns the name or an empty string if unset
func (c *Category) DisplayName() string {
	return deref(c.Name)
}

func (c *Category) assign(f CategoryFields) {
	c.Name = f.Name
	c.Image = f.Image
	c.Description = f.Description
	c.TaxApplicability = f.TaxApplicability
	c.Tax = f.Tax
	c.TaxType = f.TaxType
}

func mergeCategoryFields(cur, patch CategoryFields) CategoryFields {
	return CategoryFields{
		Name:             pick(patch.Name, cur.Name),
		Image:            pick(patch.Image, cur.Image),
		Description:      pick(patch.Description, cur.Description),
		TaxApplicability: pick(patch.TaxApplicability, cur.TaxApplicability),
		Tax:              pick(patch.Tax, cur.Tax),
		TaxType:          pick(patch.TaxType, cur.TaxType),
	}
}

// pick returns patch when supplied, otherwise cur
func pick[T any](patch, cur *T) *T {
	if patch != nil {
		return patch
	}
	return cur
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
