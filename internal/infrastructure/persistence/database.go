// Package persistence implements the catalog repositories on relational
// stores through GORM.
package persistence

import (
	"context"
	"fmt"

	"github.com/erp/catalog/internal/domain/catalog"
	"github.com/erp/catalog/internal/infrastructure/config"
	"github.com/erp/catalog/internal/infrastructure/logger"
	"github.com/erp/catalog/internal/infrastructure/telemetry"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Options configures NewDatabase
type Options struct {
	LogLevel string               // GORM log level: silent, error, warn, info
	Tracing  bool                 // register the otelgorm plugin
	Metrics  *telemetry.DBMetrics // register the query metrics plugin when set
}

// Database holds the database connection and provides methods for database operations
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens a postgres or sqlite database, registers tracing and
// query metrics and creates the catalog tables when missing.
func NewDatabase(cfg config.DatabaseConfig, zapLogger *zap.Logger, opts Options) (*Database, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.URI)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.URI)
	default:
		return nil, fmt.Errorf("unsupported relational driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.NewSQLLogger(zapLogger, logger.SQLLogConfig{Level: opts.LogLevel, Driver: cfg.Driver}),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if opts.Tracing {
		plugin := otelgorm.NewPlugin(
			otelgorm.WithDBName(cfg.Name),
			otelgorm.WithoutQueryVariables(),
		)
		if err := db.Use(plugin); err != nil {
			return nil, fmt.Errorf("failed to register otelgorm: %w", err)
		}
	}
	if opts.Metrics != nil {
		if err := db.Use(telemetry.NewDBMetricsPlugin(opts.Metrics)); err != nil {
			return nil, fmt.Errorf("failed to register db metrics: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	d := &Database{DB: db}
	if err := d.Migrate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Migrate creates the catalog tables and indexes
func (d *Database) Migrate() error {
	if err := d.DB.AutoMigrate(&catalog.Category{}, &catalog.Subcategory{}, &catalog.Item{}); err != nil {
		return fmt.Errorf("failed to create catalog tables: %w", err)
	}
	return nil
}

// Ping checks if the database connection is alive
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (d *Database) Close(_ context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}
