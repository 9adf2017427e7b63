package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/erp/catalog/internal/domain/catalog"
	"github.com/erp/catalog/internal/domain/shared"
	"go.uber.org/zap"
)

// Options configures the caching repositories
type Options struct {
	TTL       time.Duration
	KeyPrefix string
	Logger    *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.TTL <= 0 {
		o.TTL = 5 * time.Minute
	}
	if o.KeyPrefix == "" {
		o.KeyPrefix = "catalog"
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// entityCache stores JSON snapshots of one entity kind keyed by identifier.
// Store failures degrade to a miss; the repository stays authoritative.
type entityCache[T any] struct {
	store  Store
	kind   string
	ttl    time.Duration
	prefix string
	logger *zap.Logger
}

func newEntityCache[T any](store Store, kind string, opts Options) entityCache[T] {
	opts = opts.withDefaults()
	return entityCache[T]{
		store:  store,
		kind:   kind,
		ttl:    opts.TTL,
		prefix: opts.KeyPrefix,
		logger: opts.Logger,
	}
}

func (c entityCache[T]) key(id shared.ID) string {
	return c.prefix + ":" + c.kind + ":" + id.Hex()
}

func (c entityCache[T]) get(ctx context.Context, id shared.ID) (*T, bool) {
	data, err := c.store.Get(ctx, c.key(id))
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			c.logger.Warn("Cache read failed",
				zap.String("kind", c.kind),
				zap.String("id", id.Hex()),
				zap.Error(err))
		}
		return nil, false
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		c.logger.Warn("Discarding undecodable cache entry",
			zap.String("kind", c.kind),
			zap.String("id", id.Hex()),
			zap.Error(err))
		c.evict(ctx, id)
		return nil, false
	}
	return &v, true
}

func (c entityCache[T]) put(ctx context.Context, id shared.ID, v *T) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("Cache encode failed", zap.String("kind", c.kind), zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, c.key(id), data, c.ttl); err != nil {
		c.logger.Warn("Cache write failed",
			zap.String("kind", c.kind),
			zap.String("id", id.Hex()),
			zap.Error(err))
	}
}

func (c entityCache[T]) evict(ctx context.Context, id shared.ID) {
	if err := c.store.Delete(ctx, c.key(id)); err != nil {
		c.logger.Warn("Cache eviction failed",
			zap.String("kind", c.kind),
			zap.String("id", id.Hex()),
			zap.Error(err))
	}
}

// findOne serves identifier lookups from the cache and fills it from load
func findOne[T any](ctx context.Context, c entityCache[T], key catalog.LookupKey, idOf func(*T) shared.ID, load func() (*T, error)) (*T, error) {
	id, byID := key.ID()
	if byID {
		if v, ok := c.get(ctx, id); ok {
			return v, nil
		}
	}

	v, err := load()
	if err != nil {
		return nil, err
	}
	c.put(ctx, idOf(v), v)
	return v, nil
}

// CategoryRepository caches category lookups by identifier
type CategoryRepository struct {
	catalog.CategoryRepository
	cache entityCache[catalog.Category]
}

// NewCategoryRepository wraps inner with a read-through cache
func NewCategoryRepository(inner catalog.CategoryRepository, store Store, opts Options) *CategoryRepository {
	return &CategoryRepository{
		CategoryRepository: inner,
		cache:              newEntityCache[catalog.Category](store, "category", opts),
	}
}

// FindOne implements catalog.CategoryRepository
func (r *CategoryRepository) FindOne(ctx context.Context, key catalog.LookupKey) (*catalog.Category, error) {
	return findOne(ctx, r.cache, key,
		func(c *catalog.Category) shared.ID { return c.ID },
		func() (*catalog.Category, error) { return r.CategoryRepository.FindOne(ctx, key) })
}

// UpdateByID implements catalog.CategoryRepository and evicts the entry
func (r *CategoryRepository) UpdateByID(ctx context.Context, id shared.ID, category *catalog.Category) (*catalog.Category, error) {
	defer r.cache.evict(ctx, id)
	return r.CategoryRepository.UpdateByID(ctx, id, category)
}

// SubcategoryRepository caches subcategory lookups by identifier
type SubcategoryRepository struct {
	catalog.SubcategoryRepository
	cache entityCache[catalog.Subcategory]
}

// NewSubcategoryRepository wraps inner with a read-through cache
func NewSubcategoryRepository(inner catalog.SubcategoryRepository, store Store, opts Options) *SubcategoryRepository {
	return &SubcategoryRepository{
		SubcategoryRepository: inner,
		cache:                 newEntityCache[catalog.Subcategory](store, "subcategory", opts),
	}
}

// FindOne implements catalog.SubcategoryRepository
func (r *SubcategoryRepository) FindOne(ctx context.Context, key catalog.LookupKey) (*catalog.Subcategory, error) {
	return findOne(ctx, r.cache, key,
		func(s *catalog.Subcategory) shared.ID { return s.ID },
		func() (*catalog.Subcategory, error) { return r.SubcategoryRepository.FindOne(ctx, key) })
}

// UpdateByID implements catalog.SubcategoryRepository and evicts the entry
func (r *SubcategoryRepository) UpdateByID(ctx context.Context, id shared.ID, subcategory *catalog.Subcategory) (*catalog.Subcategory, error) {
	defer r.cache.evict(ctx, id)
	return r.SubcategoryRepository.UpdateByID(ctx, id, subcategory)
}

// ItemRepository caches item lookups by identifier
type ItemRepository struct {
	catalog.ItemRepository
	cache entityCache[catalog.Item]
}

// NewItemRepository wraps inner with a read-through cache
func NewItemRepository(inner catalog.ItemRepository, store Store, opts Options) *ItemRepository {
	return &ItemRepository{
		ItemRepository: inner,
		cache:          newEntityCache[catalog.Item](store, "item", opts),
	}
}

// FindOne implements catalog.ItemRepository
func (r *ItemRepository) FindOne(ctx context.Context, key catalog.LookupKey) (*catalog.Item, error) {
	return findOne(ctx, r.cache, key,
		func(i *catalog.Item) shared.ID { return i.ID },
		func() (*catalog.Item, error) { return r.ItemRepository.FindOne(ctx, key) })
}

// UpdateByID implements catalog.ItemRepository and evicts the entry
func (r *ItemRepository) UpdateByID(ctx context.Context, id shared.ID, item *catalog.Item) (*catalog.Item, error) {
	defer r.cache.evict(ctx, id)
	return r.ItemRepository.UpdateByID(ctx, id, item)
}

var (
	_ catalog.CategoryRepository    = (*CategoryRepository)(nil)
	_ catalog.SubcategoryRepository = (*SubcategoryRepository)(nil)
	_ catalog.ItemRepository        = (*ItemRepository)(nil)
)
