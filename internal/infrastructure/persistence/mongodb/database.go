// Package mongodb implements the catalog repositories on MongoDB.
package mongodb

import (
	"context"
	"fmt"

	"github.com/erp/catalog/internal/infrastructure/config"
	"github.com/erp/catalog/internal/infrastructure/telemetry"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
	"go.uber.org/zap"
)

// Collection names
const (
	CategoriesCollection    = "categories"
	SubcategoriesCollection = "subcategories"
	ItemsCollection         = "items"
)

// Database holds the MongoDB client and the catalog database handle
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
	logger *zap.Logger
}

// Options configures Connect
type Options struct {
	// Tracing turns every command into a span
	Tracing bool
	// Metrics records command counts and durations when set
	Metrics *telemetry.DBMetrics
}

// Connect opens a client, verifies the connection and ensures the catalog
// indexes exist.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger, o Options) (*Database, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout).
		SetMaxPoolSize(uint64(cfg.MaxOpenConns))
	var tracing *event.CommandMonitor
	if o.Tracing {
		tracing = otelmongo.NewMonitor()
	}
	if monitor := newCommandMonitor(tracing, o.Metrics); monitor != nil {
		opts.SetMonitor(monitor)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	d := &Database{
		Client: client,
		DB:     client.Database(cfg.Name),
		logger: logger.Named("mongodb"),
	}
	if err := d.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	d.logger.Info("Connected to MongoDB", zap.String("database", cfg.Name))
	return d, nil
}

// EnsureIndexes creates the unique category name index and the lookup
// indexes used by the filter queries.
func (d *Database) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		CategoriesCollection: {categoryNameIndex()},
		SubcategoriesCollection: {
			{Keys: bson.D{{Key: "categoryId", Value: 1}}},
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
		ItemsCollection: {
			{Keys: bson.D{{Key: "onModel", Value: 1}, {Key: "modelId", Value: 1}}},
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := d.DB.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
	}
	return nil
}

// categoryNameIndex enforces unique category names. Categories whose name
// was removed by a replace-mode update are left out of the index.
func categoryNameIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetName("name_1").
			SetPartialFilterExpression(bson.D{{Key: "name", Value: bson.D{{Key: "$exists", Value: true}}}}),
	}
}

// Ping checks if the primary is reachable
func (d *Database) Ping(ctx context.Context) error {
	return d.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client
func (d *Database) Close(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}
