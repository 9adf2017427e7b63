// Package store opens the configured catalog backend and exposes its
// repositories behind the domain interfaces.
package store

import (
	"context"
	"fmt"

	"github.com/erp/catalog/internal/domain/catalog"
	"github.com/erp/catalog/internal/infrastructure/cache"
	"github.com/erp/catalog/internal/infrastructure/config"
	"github.com/erp/catalog/internal/infrastructure/persistence"
	"github.com/erp/catalog/internal/infrastructure/persistence/mongodb"
	"github.com/erp/catalog/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Backend is the connection owned by a Store
type Backend interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Store groups the repositories of one backend
type Store struct {
	Driver        string
	Categories    catalog.CategoryRepository
	Subcategories catalog.SubcategoryRepository
	Items         catalog.ItemRepository
	backend       Backend
	cache         cache.Store
	metrics       *telemetry.DBMetrics
}

// Options tunes the backend connection
type Options struct {
	Tracing     bool
	SQLLogLevel string
	// Meter receives the query metrics; nil disables them
	Meter       metric.Meter
}

// Open connects to the backend selected by cfg.Driver. Schema objects
// (tables, unique indexes) are created when missing.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger, opts Options) (*Store, error) {
	var metrics *telemetry.DBMetrics
	if opts.Meter != nil {
		m, err := telemetry.NewDBMetrics(opts.Meter, telemetry.DefaultDBMetricsConfig(), log)
		if err != nil {
			return nil, err
		}
		metrics = m
	}

	switch cfg.Driver {
	case config.DriverMongoDB:
		db, err := mongodb.Connect(ctx, cfg, log, mongodb.Options{Tracing: opts.Tracing, Metrics: metrics})
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:        cfg.Driver,
			Categories:    mongodb.NewCategoryRepository(db.DB),
			Subcategories: mongodb.NewSubcategoryRepository(db.DB),
			Items:         mongodb.NewItemRepository(db.DB),
			backend:       db,
			metrics:       metrics,
		}, nil

	case config.DriverPostgres, config.DriverSQLite:
		db, err := persistence.NewDatabase(cfg, log, persistence.Options{
			LogLevel: opts.SQLLogLevel,
			Tracing:  opts.Tracing,
			Metrics:  metrics,
		})
		if err != nil {
			if metrics != nil {
				metrics.Stop()
			}
			return nil, err
		}
		return &Store{
			Driver:        cfg.Driver,
			Categories:    persistence.NewGormCategoryRepository(db.DB),
			Subcategories: persistence.NewGormSubcategoryRepository(db.DB),
			Items:         persistence.NewGormItemRepository(db.DB),
			backend:       db,
			metrics:       metrics,
		}, nil
	}

	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// WithCache puts a read-through cache in front of the identifier lookups of
// every repository. The store takes ownership of c and closes it on Close.
func (s *Store) WithCache(c cache.Store, opts cache.Options) *Store {
	s.Categories = cache.NewCategoryRepository(s.Categories, c, opts)
	s.Subcategories = cache.NewSubcategoryRepository(s.Subcategories, c, opts)
	s.Items = cache.NewItemRepository(s.Items, c, opts)
	s.cache = c
	return s
}

// Resolver returns a ParentResolver over the store's repositories
func (s *Store) Resolver() *catalog.ParentResolver {
	return catalog.NewParentResolver(s.Categories, s.Subcategories)
}

// Ping checks that the backend is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

// Close releases the backend connection and the cache
func (s *Store) Close(ctx context.Context) error {
	if s.metrics != nil {
		s.metrics.Stop()
	}
	err := s.backend.Close(ctx)
	if s.cache != nil {
		if cerr := s.cache.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
