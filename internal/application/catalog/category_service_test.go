package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/erp/catalog/internal/domain/catalog"
	"github.com/erp/catalog/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validCategoryRequest() CreateCategoryRequest {
	return CreateCategoryRequest{
		Name:             ptr("Bakery"),
		Image:            ptr("https://img.example.com/bakery.png"),
		Description:      ptr("Fresh bread and pastries"),
		TaxApplicability: ptr(true),
		Tax:              ptr(5.0),
	}
}

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates category without tax type", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo, DefaultOptions())
		repo.On("Create", mock.Anything, mock.AnythingOfType("*catalog.Category")).Return(nil)

		resp, err := svc.Create(ctx, validCategoryRequest())

		require.NoError(t, err)
		assert.Equal(t, "Bakery", *resp.Name)
		assert.Nil(t, resp.TaxType)
		assert.True(t, shared.IsValidID(resp.ID))
		repo.AssertExpectations(t)
	})

	t.Run("propagates duplicate key", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo, DefaultOptions())
		repo.On("Create", mock.Anything, mock.Anything).Return(shared.NewDuplicateKeyError("name", "Bakery"))

		_, err := svc.Create(ctx, validCategoryRequest())

		var dup *shared.DuplicateKeyError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "name already exists", dup.Error())
	})
}

func TestCategoryService_List_Empty(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	svc := NewCategoryService(repo, DefaultOptions())
	repo.On("FindAll", mock.Anything).Return([]catalog.Category{}, nil)

	resp, err := svc.List(ctx)

	require.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Empty(t, resp)
}

func TestCategoryService_Get(t *testing.T) {
	ctx := context.Background()
	existing := catalog.NewCategory(validCategoryRequest().Fields())

	t.Run("by identifier", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo, DefaultOptions())
		repo.On("FindOne", mock.Anything, catalog.LookupByID(existing.ID)).Return(existing, nil)

		resp, err := svc.Get(ctx, existing.ID.Hex())

		require.NoError(t, err)
		assert.Equal(t, existing.ID.Hex(), resp.ID)
	})

	t.Run("by name", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo, DefaultOptions())
		repo.On("FindOne", mock.Anything, catalog.LookupByName("Bakery")).Return(existing, nil)

		resp, err := svc.Get(ctx, "Bakery")

		require.NoError(t, err)
		assert.Equal(t, "Bakery", *resp.Name)
	})

	t.Run("missing", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo, DefaultOptions())
		repo.On("FindOne", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

		_, err := svc.Get(ctx, "Nope")

		assert.Equal(t, ErrCategoryNotFound, err)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestCategoryService_Update(t *testing.T) {
	ctx := context.Background()
	id := shared.NewID()

	t.Run("replace mode clears omitted fields", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo, DefaultOptions())
		repo.On("UpdateByID", mock.Anything, id, mock.MatchedBy(func(c *catalog.Category) bool {
			return *c.Name == "Breads" && c.Description == nil && c.Image == nil
		})).Return(func(_ context.Context, _ shared.ID, c *catalog.Category) *catalog.Category {
			return c
		}, nil)

		resp, err := svc.Update(ctx, id.Hex(), UpdateCategoryRequest{Name: ptr("Breads")})

		require.NoError(t, err)
		assert.Equal(t, "Breads", *resp.Name)
		assert.Nil(t, resp.Description)
		repo.AssertNotCalled(t, "FindOne", mock.Anything, mock.Anything)
	})

	t.Run("merge mode keeps omitted fields", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo, Options{UpdateMode: catalog.UpdateModeMerge})
		existing := catalog.NewCategory(validCategoryRequest().Fields())
		existing.ID = id
		repo.On("FindOne", mock.Anything, catalog.LookupByID(id)).Return(existing, nil)
		repo.On("UpdateByID", mock.Anything, id, mock.MatchedBy(func(c *catalog.Category) bool {
			return *c.Name == "Breads" && *c.Description == "Fresh bread and pastries"
		})).Return(existing, nil)

		_, err := svc.Update(ctx, id.Hex(), UpdateCategoryRequest{Name: ptr("Breads")})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo, DefaultOptions())

		_, err := svc.Update(ctx, "not-an-id", UpdateCategoryRequest{})

		assert.Equal(t, ErrCategoryNotFound, err)
		repo.AssertNotCalled(t, "UpdateByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing document", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo, DefaultOptions())
		repo.On("UpdateByID", mock.Anything, id, mock.Anything).Return(nil, shared.ErrNotFound)

		_, err := svc.Update(ctx, id.Hex(), UpdateCategoryRequest{Name: ptr("Breads")})

		assert.Equal(t, ErrCategoryNotFound, err)
	})
}
