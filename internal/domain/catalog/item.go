package catalog

import (
	"github.com/erp/catalog/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Item is a sellable catalog entry attached to either a Category or a
// Subcategory. TotalAmount is always BaseAmount - Discount.
type Item struct {
	shared.BaseEntity `bson:",inline"`
	Name              *string    `bson:"name,omitempty" gorm:"type:varchar(255);index"`
	Image             *string    `bson:"image,omitempty" gorm:"type:text"`
	Description       *string    `bson:"description,omitempty" gorm:"type:text"`
	TaxApplicability  *bool      `bson:"taxApplicability,omitempty"`
	Tax               *float64   `bson:"tax,omitempty"`
	BaseAmount        *float64   `bson:"baseAmount,omitempty"`
	Discount          *float64   `bson:"discount,omitempty"`
	TotalAmount       float64    `bson:"totalAmount"`
	OnModel           ParentKind `bson:"onModel" gorm:"type:varchar(20);not null;index:idx_item_parent,priority:1"`
	ModelID           shared.ID  `bson:"modelId" gorm:"type:varchar(24);not null;index:idx_item_parent,priority:2"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// ItemFields holds the client-settable attributes of an item.
// A nil field was not supplied by the client.
type ItemFields struct {
	Name             *string
	Image            *string
	Description      *string
	TaxApplicability *bool
	Tax              *float64
	BaseAmount       *float64
	Discount         *float64
}

// NewItem creates an item attached to parent
func NewItem(parent ParentRef, f ItemFields) *Item {
	i := &Item{
		BaseEntity: shared.NewBaseEntity(),
		OnModel:    parent.Kind,
		ModelID:    parent.ID,
	}
	i.assign(f)
	return i
}

// Apply updates the item with the supplied fields and recomputes the total.
// The parent reference is never changed by an update.
func (i *Item) Apply(f ItemFields, mode UpdateMode) {
	if mode == UpdateModeReplace {
		i.assign(f)
	} else {
		i.assign(ItemFields{
			Name:             pick(f.Name, i.Name),
			Image:            pick(f.Image, i.Image),
			Description:      pick(f.Description, i.Description),
			TaxApplicability: pick(f.TaxApplicability, i.TaxApplicability),
			Tax:              pick(f.Tax, i.Tax),
			BaseAmount:       pick(f.BaseAmount, i.BaseAmount),
			Discount:         pick(f.Discount, i.Discount),
		})
	}
	i.Touch()
}

// Parent returns the reference to the owning category or subcategory
func (i *Item) Parent() ParentRef {
	return ParentRef{Kind: i.OnModel, ID: i.ModelID}
}

// DisplayName returns the name or an empty string if unset
func (i *Item) DisplayName() string {
	return deref(i.Name)
}

func (i *Item) assign(f ItemFields) {
	i.Name = f.Name
	i.Image = f.Image
	i.Description = f.Description
	i.TaxApplicability = f.TaxApplicability
	i.Tax = f.Tax
	i.BaseAmount = f.BaseAmount
	i.Discount = f.Discount
	i.TotalAmount = TotalAmount(f.BaseAmount, f.Discount)
}

// TotalAmount computes baseAmount - discount, treating missing values as zero.
// Decimal arithmetic keeps 100 - 10.1 at 89.9.
func TotalAmount(baseAmount, discount *float64) float64 {
	base := decimal.Zero
	if baseAmount != nil {
		base = decimal.NewFromFloat(*baseAmount)
	}
	off := decimal.Zero
	if discount != nil {
		off = decimal.NewFromFloat(*discount)
	}
	return base.Sub(off).InexactFloat64()
}
