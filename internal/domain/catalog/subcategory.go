package catalog

import (
	"github.com/erp/catalog/internal/domain/shared"
)

// Subcategory groups items under a Category.
// CategoryID is not checked for existence unless reference verification is on.
type Subcategory struct {
	shared.BaseEntity `bson:",inline"`
	Name              *string   `bson:"name,omitempty" gorm:"type:varchar(50);index"`
	Image             *string   `bson:"image,omitempty" gorm:"type:text"`
	Description       *string   `bson:"description,omitempty" gorm:"type:text"`
	TaxApplicability  *bool     `bson:"taxApplicability,omitempty"`
	Tax               *float64  `bson:"tax,omitempty"`
	TaxType           *string   `bson:"taxType,omitempty" gorm:"type:varchar(50)"`
	CategoryID        shared.ID `bson:"categoryId" gorm:"type:varchar(24);not null;index"`
}

// TableName returns the table name for GORM
func (Subcategory) TableName() string {
	return "subcategories"
}

// NewSubcategory creates a subcategory under the given category
func NewSubcategory(categoryID shared.ID, f CategoryFields) *Subcategory {
	s := &Subcategory{
		BaseEntity: shared.NewBaseEntity(),
		CategoryID: categoryID,
	}
	s.assign(f)
	return s
}

// Apply updates the subcategory with the supplied fields.
// CategoryID is never changed by an update.
func (s *Subcategory) Apply(f CategoryFields, mode UpdateMode) {
	if mode == UpdateModeReplace {
		s.assign(f)
	} else {
		s.assign(mergeCategoryFields(s.Fields(), f))
	}
	s.Touch()
}

// Fields returns the current client-settable attributes
func (s *Subcategory) Fields() CategoryFields {
	return CategoryFields{
		Name:             s.Name,
		Image:            s.Image,
		Description:      s.Description,
		TaxApplicability: s.TaxApplicability,
		Tax:              s.Tax,
		TaxType:          s.TaxType,
	}
}

// DisplayName returns the name or an empty string if unset
func (s *Subcategory) DisplayName() string {
	return deref(s.Name)
}

func (s *Subcategory) assign(f CategoryFields) {
	s.Name = f.Name
	s.Image = f.Image
	s.Description = f.Description
	s.TaxApplicability = f.TaxApplicability
	s.Tax = f.Tax
	s.TaxType = f.TaxType
}
