package catalog

import (
	"context"

	"github.com/erp/catalog/internal/domain/catalog"
	"github.com/erp/catalog/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindOne(ctx context.Context, key catalog.LookupKey) (*catalog.Category, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) UpdateByID(ctx context.Context, id shared.ID, category *catalog.Category) (*catalog.Category, error) {
	args := m.Called(ctx, id, category)
	if fn, ok := args.Get(0).(func(context.Context, shared.ID, *catalog.Category) *catalog.Category); ok {
		return fn(ctx, id, category), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

// MockSubcategoryRepository is a mock implementation of SubcategoryRepository
type MockSubcategoryRepository struct {
	mock.Mock
}

func (m *MockSubcategoryRepository) Create(ctx context.Context, subcategory *catalog.Subcategory) error {
	args := m.Called(ctx, subcategory)
	return args.Error(0)
}

func (m *MockSubcategoryRepository) FindAll(ctx context.Context) ([]catalog.Subcategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Subcategory), args.Error(1)
}

func (m *MockSubcategoryRepository) FindByCategory(ctx context.Context, categoryID shared.ID) ([]catalog.Subcategory, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Subcategory), args.Error(1)
}

func (m *MockSubcategoryRepository) FindOne(ctx context.Context, key catalog.LookupKey) (*catalog.Subcategory, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Subcategory), args.Error(1)
}

func (m *MockSubcategoryRepository) UpdateByID(ctx context.Context, id shared.ID, subcategory *catalog.Subcategory) (*catalog.Subcategory, error) {
	args := m.Called(ctx, id, subcategory)
	if fn, ok := args.Get(0).(func(context.Context, shared.ID, *catalog.Subcategory) *catalog.Subcategory); ok {
		return fn(ctx, id, subcategory), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Subcategory), args.Error(1)
}

// MockItemRepository is a mock implementation of ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *catalog.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) FindAll(ctx context.Context) ([]catalog.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindByParent(ctx context.Context, parent catalog.ParentRef) ([]catalog.Item, error) {
	args := m.Called(ctx, parent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *MockItemRepository) SearchByName(ctx context.Context, term string) ([]catalog.Item, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindOne(ctx context.Context, key catalog.LookupKey) (*catalog.Item, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) UpdateByID(ctx context.Context, id shared.ID, item *catalog.Item) (*catalog.Item, error) {
	args := m.Called(ctx, id, item)
	if fn, ok := args.Get(0).(func(context.Context, shared.ID, *catalog.Item) *catalog.Item); ok {
		return fn(ctx, id, item), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func ptr[T any](v T) *T {
	return &v
}
