package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erp/catalog/internal/domain/catalog"
	"github.com/erp/catalog/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type mockCategoryRepository struct {
	mock.Mock
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *catalog.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *mockCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *mockCategoryRepository) FindOne(ctx context.Context, key catalog.LookupKey) (*catalog.Category, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *mockCategoryRepository) UpdateByID(ctx context.Context, id shared.ID, category *catalog.Category) (*catalog.Category, error) {
	args := m.Called(ctx, id, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

type mockItemRepository struct {
	mock.Mock
}

func (m *mockItemRepository) Create(ctx context.Context, item *catalog.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockItemRepository) FindAll(ctx context.Context) ([]catalog.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *mockItemRepository) FindByParent(ctx context.Context, parent catalog.ParentRef) ([]catalog.Item, error) {
	args := m.Called(ctx, parent)
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *mockItemRepository) SearchByName(ctx context.Context, term string) ([]catalog.Item, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *mockItemRepository) FindOne(ctx context.Context, key catalog.LookupKey) (*catalog.Item, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *mockItemRepository) UpdateByID(ctx context.Context, id shared.ID, item *catalog.Item) (*catalog.Item, error) {
	args := m.Called(ctx, id, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

// brokenStore fails every operation
type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (brokenStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}

func (brokenStore) Delete(context.Context, ...string) error {
	return errors.New("connection refused")
}

func (brokenStore) Close() error { return nil }

func strPtr(s string) *string { return &s }

func newCategory(name string) *catalog.Category {
	return catalog.NewCategory(catalog.CategoryFields{Name: strPtr(name), Tax: new(float64)})
}

func TestCategoryRepository_FindOneByIDIsCached(t *testing.T) {
	store := NewInMemoryStore(time.Hour)
	defer store.Close()

	inner := new(mockCategoryRepository)
	repo := NewCategoryRepository(inner, store, Options{})

	cat := newCategory("Drinks")
	key := catalog.LookupByID(cat.ID)
	inner.On("FindOne", mock.Anything, key).Return(cat, nil).Once()

	ctx := context.Background()
	first, err := repo.FindOne(ctx, key)
	require.NoError(t, err)
	second, err := repo.FindOne(ctx, key)
	require.NoError(t, err)

	assert.Equal(t, cat.ID, second.ID)
	assert.Equal(t, "Drinks", second.DisplayName())
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
	inner.AssertNumberOfCalls(t, "FindOne", 1)
}

func TestCategoryRepository_NameLookupBypassesCache(t *testing.T) {
	store := NewInMemoryStore(time.Hour)
	defer store.Close()

	inner := new(mockCategoryRepository)
	repo := NewCategoryRepository(inner, store, Options{})

	cat := newCategory("Drinks")
	key := catalog.LookupByName("Drinks")
	inner.On("FindOne", mock.Anything, key).Return(cat, nil).Twice()

	ctx := context.Background()
	_, err := repo.FindOne(ctx, key)
	require.NoError(t, err)
	_, err = repo.FindOne(ctx, key)
	require.NoError(t, err)

	inner.AssertNumberOfCalls(t, "FindOne", 2)

	// the name lookup warmed the identifier entry
	_, err = store.Get(ctx, "catalog:category:"+cat.ID.Hex())
	assert.NoError(t, err)
}

func TestCategoryRepository_NotFoundIsNotCached(t *testing.T) {
	store := NewInMemoryStore(time.Hour)
	defer store.Close()

	inner := new(mockCategoryRepository)
	repo := NewCategoryRepository(inner, store, Options{})

	id := shared.NewID()
	key := catalog.LookupByID(id)
	inner.On("FindOne", mock.Anything, key).Return(nil, shared.ErrNotFound).Twice()

	for range 2 {
		_, err := repo.FindOne(context.Background(), key)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	}
	inner.AssertNumberOfCalls(t, "FindOne", 2)
	assert.Equal(t, 0, store.Len())
}

func TestCategoryRepository_UpdateEvicts(t *testing.T) {
	store := NewInMemoryStore(time.Hour)
	defer store.Close()

	inner := new(mockCategoryRepository)
	repo := NewCategoryRepository(inner, store, Options{KeyPrefix: "test"})

	cat := newCategory("Drinks")
	key := catalog.LookupByID(cat.ID)
	renamed := *cat
	renamed.Name = strPtr("Beverages")

	inner.On("FindOne", mock.Anything, key).Return(cat, nil).Once()
	inner.On("UpdateByID", mock.Anything, cat.ID, &renamed).Return(&renamed, nil).Once()
	inner.On("FindOne", mock.Anything, key).Return(&renamed, nil).Once()

	ctx := context.Background()
	_, err := repo.FindOne(ctx, key)
	require.NoError(t, err)

	_, err = store.Get(ctx, "test:category:"+cat.ID.Hex())
	require.NoError(t, err)

	_, err = repo.UpdateByID(ctx, cat.ID, &renamed)
	require.NoError(t, err)

	_, err = store.Get(ctx, "test:category:"+cat.ID.Hex())
	assert.ErrorIs(t, err, ErrMiss)

	got, err := repo.FindOne(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "Beverages", got.DisplayName())
	inner.AssertExpectations(t)
}

func TestCategoryRepository_StoreFailureFallsThrough(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	inner := new(mockCategoryRepository)
	repo := NewCategoryRepository(inner, brokenStore{}, Options{Logger: zap.New(core)})

	cat := newCategory("Drinks")
	key := catalog.LookupByID(cat.ID)
	inner.On("FindOne", mock.Anything, key).Return(cat, nil)

	got, err := repo.FindOne(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, cat.ID, got.ID)
	assert.Equal(t, 1, logs.FilterMessage("Cache read failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("Cache write failed").Len())
}

func TestCategoryRepository_CorruptEntryIsDiscarded(t *testing.T) {
	store := NewInMemoryStore(time.Hour)
	defer store.Close()

	inner := new(mockCategoryRepository)
	repo := NewCategoryRepository(inner, store, Options{})

	cat := newCategory("Drinks")
	key := catalog.LookupByID(cat.ID)
	require.NoError(t, store.Set(context.Background(), "catalog:category:"+cat.ID.Hex(), []byte("{not json"), time.Hour))
	inner.On("FindOne", mock.Anything, key).Return(cat, nil).Once()

	got, err := repo.FindOne(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "Drinks", got.DisplayName())
	inner.AssertExpectations(t)
}

func TestItemRepository_CachesAndDelegates(t *testing.T) {
	store := NewInMemoryStore(time.Hour)
	defer store.Close()

	inner := new(mockItemRepository)
	repo := NewItemRepository(inner, store, Options{})

	parent := catalog.CategoryRef(shared.NewID())
	item := &catalog.Item{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        strPtr("Latte"),
		TotalAmount: 4.5,
		OnModel:     parent.Kind,
		ModelID:     parent.ID,
	}
	key := catalog.LookupByID(item.ID)
	inner.On("FindOne", mock.Anything, key).Return(item, nil).Once()
	inner.On("SearchByName", mock.Anything, "lat").Return([]catalog.Item{*item}, nil).Twice()

	ctx := context.Background()
	for range 2 {
		got, err := repo.FindOne(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, parent, got.Parent())
		assert.Equal(t, 4.5, got.TotalAmount)
	}

	for range 2 {
		found, err := repo.SearchByName(ctx, "lat")
		require.NoError(t, err)
		assert.Len(t, found, 1)
	}
	inner.AssertExpectations(t)
}
