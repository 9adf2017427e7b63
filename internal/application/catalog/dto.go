package catalog

import (
	"time"

	"github.com/erp/catalog/internal/domain/catalog"
)

// CreateCategoryRequest represents a request to create a new category
type CreateCategoryRequest struct {
	Name             *string  `json:"name" binding:"required,min=3,max=50" example:"Bakery"`
	Image            *string  `json:"image" binding:"required" example:"https://img.example.com/bakery.png"`
	Description      *string  `json:"description" binding:"required,min=10" example:"Fresh bread and pastries"`
	TaxApplicability *bool    `json:"taxApplicability" binding:"required" example:"true"`
	Tax              *float64 `json:"tax" binding:"required" example:"5"`
	TaxType          *string  `json:"taxType" example:"GST"`
}

// UpdateCategoryRequest represents a request to update a category.
// Every field is optional.
type UpdateCategoryRequest struct {
	Name             *string  `json:"name" binding:"omitempty,min=3,max=50" example:"Bakery"`
	Image            *string  `json:"image" example:"https://img.example.com/bakery.png"`
	Description      *string  `json:"description" binding:"omitempty,min=10" example:"Fresh bread and pastries"`
	TaxApplicability *bool    `json:"taxApplicability" example:"true"`
	Tax              *float64 `json:"tax" example:"5"`
	TaxType          *string  `json:"taxType" example:"GST"`
}

// CreateSubcategoryRequest represents a request to create a new subcategory
type CreateSubcategoryRequest struct {
	Name             *string  `json:"name" binding:"required,min=3,max=50" example:"Cakes"`
	Image            *string  `json:"image" binding:"required" example:"https://img.example.com/cakes.png"`
	Description      *string  `json:"description" binding:"required,min=10" example:"Layered and sponge cakes"`
	TaxApplicability *bool    `json:"taxApplicability" binding:"required" example:"true"`
	Tax              *float64 `json:"tax" binding:"required" example:"5"`
	TaxType          *string  `json:"taxType" example:"GST"`
	CategoryID       *string  `json:"categoryId" binding:"required,objectid" example:"64b7f2c1e4b0a1a2b3c4d5e6"`
}

// UpdateSubcategoryRequest represents a request to update a subcategory.
// The owning category cannot be changed.
type UpdateSubcategoryRequest struct {
	Name             *string  `json:"name" binding:"omitempty,min=3,max=50" example:"Cakes"`
	Image            *string  `json:"image" example:"https://img.example.com/cakes.png"`
	Description      *string  `json:"description" binding:"omitempty,min=10" example:"Layered and sponge cakes"`
	TaxApplicability *bool    `json:"taxApplicability" example:"true"`
	Tax              *float64 `json:"tax" example:"5"`
	TaxType          *string  `json:"taxType" example:"GST"`
}

// CreateItemRequest represents a request to create a new item.
// totalAmount is derived and therefore not accepted.
type CreateItemRequest struct {
	Name             *string  `json:"name" binding:"required" example:"Chocolate Cake"`
	Image            *string  `json:"image" binding:"required" example:"https://img.example.com/chocolate-cake.png"`
	Description      *string  `json:"description" binding:"required" example:"Dark chocolate sponge with ganache"`
	TaxApplicability *bool    `json:"taxApplicability" binding:"required" example:"true"`
	Tax              *float64 `json:"tax" binding:"required" example:"5"`
	BaseAmount       *float64 `json:"baseAmount" binding:"required" example:"100"`
	Discount         *float64 `json:"discount" binding:"required" example:"10"`
	OnModel          *string  `json:"onModel" binding:"required,oneof=Category Subcategory" example:"Subcategory"`
	ModelID          *string  `json:"modelId" binding:"required,objectid" example:"64b7f2c1e4b0a1a2b3c4d5e7"`
}

// UpdateItemRequest represents a request to update an item.
// The parent reference cannot be changed.
type UpdateItemRequest struct {
	Name             *string  `json:"name" example:"Chocolate Cake"`
	Image            *string  `json:"image" example:"https://img.example.com/chocolate-cake.png"`
	Description      *string  `json:"description" example:"Dark chocolate sponge with ganache"`
	TaxApplicability *bool    `json:"taxApplicability" example:"true"`
	Tax              *float64 `json:"tax" example:"5"`
	BaseAmount       *float64 `json:"baseAmount" example:"100"`
	Discount         *float64 `json:"discount" example:"10"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID               string    `json:"id" example:"64b7f2c1e4b0a1a2b3c4d5e6"`
	Name             *string   `json:"name,omitempty" example:"Bakery"`
	Image            *string   `json:"image,omitempty" example:"https://img.example.com/bakery.png"`
	Description      *string   `json:"description,omitempty" example:"Fresh bread and pastries"`
	TaxApplicability *bool     `json:"taxApplicability,omitempty" example:"true"`
	Tax              *float64  `json:"tax,omitempty" example:"5"`
	TaxType          *string   `json:"taxType,omitempty" example:"GST"`
	CreatedAt        time.Time `json:"createdAt" example:"2024-01-15T10:30:00Z"`
	UpdatedAt        time.Time `json:"updatedAt" example:"2024-01-15T10:30:00Z"`
}

// SubcategoryResponse represents a subcategory in API responses
type SubcategoryResponse struct {
	ID               string    `json:"id" example:"64b7f2c1e4b0a1a2b3c4d5e6"`
	Name             *string   `json:"name,omitempty" example:"Cakes"`
	Image            *string   `json:"image,omitempty" example:"https://img.example.com/cakes.png"`
	Description      *string   `json:"description,omitempty" example:"Layered and sponge cakes"`
	TaxApplicability *bool     `json:"taxApplicability,omitempty" example:"true"`
	Tax              *float64  `json:"tax,omitempty" example:"5"`
	TaxType          *string   `json:"taxType,omitempty" example:"GST"`
	CategoryID       string    `json:"categoryId" example:"64b7f2c1e4b0a1a2b3c4d5e6"`
	CreatedAt        time.Time `json:"createdAt" example:"2024-01-15T10:30:00Z"`
	UpdatedAt        time.Time `json:"updatedAt" example:"2024-01-15T10:30:00Z"`
}

// ItemResponse represents an item in API responses
type ItemResponse struct {
	ID               string    `json:"id" example:"64b7f2c1e4b0a1a2b3c4d5e6"`
	Name             *string   `json:"name,omitempty" example:"Chocolate Cake"`
	Image            *string   `json:"image,omitempty" example:"https://img.example.com/chocolate-cake.png"`
	Description      *string   `json:"description,omitempty" example:"Dark chocolate sponge with ganache"`
	TaxApplicability *bool     `json:"taxApplicability,omitempty" example:"true"`
	Tax              *float64  `json:"tax,omitempty" example:"5"`
	BaseAmount       *float64  `json:"baseAmount,omitempty" example:"100"`
	Discount         *float64  `json:"discount,omitempty" example:"10"`
	TotalAmount      float64   `json:"totalAmount" example:"90"`
	OnModel          string    `json:"onModel" example:"Subcategory"`
	ModelID          string    `json:"modelId" example:"64b7f2c1e4b0a1a2b3c4d5e7"`
	CreatedAt        time.Time `json:"createdAt" example:"2024-01-15T10:30:00Z"`
	UpdatedAt        time.Time `json:"updatedAt" example:"2024-01-15T10:30:00Z"`
}

// Fields converts the request into domain fields
func (r CreateCategoryRequest) Fields() catalog.CategoryFields {
	return catalog.CategoryFields{
		Name:             r.Name,
		Image:            r.Image,
		Description:      r.Description,
		TaxApplicability: r.TaxApplicability,
		Tax:              r.Tax,
		TaxType:          r.TaxType,
	}
}

// Fields converts the request into domain fields
func (r UpdateCategoryRequest) Fields() catalog.CategoryFields {
	return catalog.CategoryFields{
		Name:             r.Name,
		Image:            r.Image,
		Description:      r.Description,
		TaxApplicability: r.TaxApplicability,
		Tax:              r.Tax,
		TaxType:          r.TaxType,
	}
}

// Fields converts the request into domain fields
func (r CreateSubcategoryRequest) Fields() catalog.CategoryFields {
	return catalog.CategoryFields{
		Name:             r.Name,
		Image:            r.Image,
		Description:      r.Description,
		TaxApplicability: r.TaxApplicability,
		Tax:              r.Tax,
		TaxType:          r.TaxType,
	}
}

// Fields converts the request into domain fields
func (r UpdateSubcategoryRequest) Fields() catalog.CategoryFields {
	return catalog.CategoryFields{
		Name:             r.Name,
		Image:            r.Image,
		Description:      r.Description,
		TaxApplicability: r.TaxApplicability,
		Tax:              r.Tax,
		TaxType:          r.TaxType,
	}
}

// Fields converts the request into domain fields
func (r CreateItemRequest) Fields() catalog.ItemFields {
	return catalog.ItemFields{
		Name:             r.Name,
		Image:            r.Image,
		Description:      r.Description,
		TaxApplicability: r.TaxApplicability,
		Tax:              r.Tax,
		BaseAmount:       r.BaseAmount,
		Discount:         r.Discount,
	}
}

// Fields converts the request into domain fields
func (r UpdateItemRequest) Fields() catalog.ItemFields {
	return catalog.ItemFields{
		Name:             r.Name,
		Image:            r.Image,
		Description:      r.Description,
		TaxApplicability: r.TaxApplicability,
		Tax:              r.Tax,
		BaseAmount:       r.BaseAmount,
		Discount:         r.Discount,
	}
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:               c.ID.Hex(),
		Name:             c.Name,
		Image:            c.Image,
		Description:      c.Description,
		TaxApplicability: c.TaxApplicability,
		Tax:              c.Tax,
		TaxType:          c.TaxType,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// ToCategoryResponses converts a slice of domain Categories
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses
}

// ToSubcategoryResponse converts a domain Subcategory to SubcategoryResponse
func ToSubcategoryResponse(s *catalog.Subcategory) SubcategoryResponse {
	return SubcategoryResponse{
		ID:               s.ID.Hex(),
		Name:             s.Name,
		Image:            s.Image,
		Description:      s.Description,
		TaxApplicability: s.TaxApplicability,
		Tax:              s.Tax,
		TaxType:          s.TaxType,
		CategoryID:       s.CategoryID.Hex(),
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// ToSubcategoryResponses converts a slice of domain Subcategories
func ToSubcategoryResponses(subcategories []catalog.Subcategory) []SubcategoryResponse {
	responses := make([]SubcategoryResponse, len(subcategories))
	for i := range subcategories {
		responses[i] = ToSubcategoryResponse(&subcategories[i])
	}
	return responses
}

// ToItemResponse converts a domain Item to ItemResponse
func ToItemResponse(i *catalog.Item) ItemResponse {
	return ItemResponse{
		ID:               i.ID.Hex(),
		Name:             i.Name,
		Image:            i.Image,
		Description:      i.Description,
		TaxApplicability: i.TaxApplicability,
		Tax:              i.Tax,
		BaseAmount:       i.BaseAmount,
		Discount:         i.Discount,
		TotalAmount:      i.TotalAmount,
		OnModel:          string(i.OnModel),
		ModelID:          i.ModelID.Hex(),
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}

// ToItemResponses converts a slice of domain Items
func ToItemResponses(items []catalog.Item) []ItemResponse {
	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = ToItemResponse(&items[i])
	}
	return responses
}
