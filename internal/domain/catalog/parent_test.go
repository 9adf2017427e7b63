package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/erp/catalog/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCategoryRepository struct {
	CategoryRepository
	byID map[shared.ID]*Category
	err  error
}

func (s *stubCategoryRepository) FindOne(_ context.Context, key LookupKey) (*Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	id, _ := key.ID()
	if c, ok := s.byID[id]; ok {
		return c, nil
	}
	return nil, shared.ErrNotFound
}

type stubSubcategoryRepository struct {
	SubcategoryRepository
	byID map[shared.ID]*Subcategory
}

func (s *stubSubcategoryRepository) FindOne(_ context.Context, key LookupKey) (*Subcategory, error) {
	id, _ := key.ID()
	if sc, ok := s.byID[id]; ok {
		return sc, nil
	}
	return nil, shared.ErrNotFound
}

func TestParentResolver_Resolve(t *testing.T) {
	category := NewCategory(bakeryFields())
	subcategory := NewSubcategory(category.ID, bakeryFields())

	resolver := NewParentResolver(
		&stubCategoryRepository{byID: map[shared.ID]*Category{category.ID: category}},
		&stubSubcategoryRepository{byID: map[shared.ID]*Subcategory{subcategory.ID: subcategory}},
	)
	ctx := context.Background()

	t.Run("dispatches to categories", func(t *testing.T) {
		p, err := resolver.Resolve(ctx, CategoryRef(category.ID))
		require.NoError(t, err)
		assert.Equal(t, ParentKindCategory, p.Kind)
		assert.Same(t, category, p.Category)
		assert.Nil(t, p.Subcategory)
	})

	t.Run("dispatches to subcategories", func(t *testing.T) {
		p, err := resolver.Resolve(ctx, SubcategoryRef(subcategory.ID))
		require.NoError(t, err)
		assert.Same(t, subcategory, p.Subcategory)
		assert.Nil(t, p.Category)
	})

	t.Run("does not cross collections", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, SubcategoryRef(category.ID))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects unknown kinds", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, ParentRef{Kind: "Brand", ID: category.ID})
		assert.Error(t, err)
	})
}

func TestParentResolver_Exists(t *testing.T) {
	category := NewCategory(bakeryFields())
	ctx := context.Background()

	resolver := NewParentResolver(
		&stubCategoryRepository{byID: map[shared.ID]*Category{category.ID: category}},
		&stubSubcategoryRepository{},
	)

	ok, err := resolver.Exists(ctx, CategoryRef(category.ID))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = resolver.Exists(ctx, CategoryRef(shared.NewID()))
	require.NoError(t, err)
	assert.False(t, ok)

	failing := NewParentResolver(&stubCategoryRepository{err: errors.New("connection reset")}, &stubSubcategoryRepository{})
	_, err = failing.Exists(ctx, CategoryRef(category.ID))
	assert.EqualError(t, err, "connection reset")
}
