package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DB metric attribute keys
const (
	AttrDBOperation = attribute.Key("db.operation")
	AttrDBTable     = attribute.Key("db.table")
	AttrDBFailed    = attribute.Key("db.failed")
	AttrPoolState   = attribute.Key("state")
)

// DBDurationBuckets are the histogram boundaries for query latency in seconds
var DBDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// DBMetricsConfig holds configuration for database metrics.
type DBMetricsConfig struct {
	SlowQueryThreshold time.Duration // Default: 200ms
}

// DefaultDBMetricsConfig returns the default database metrics configuration.
func DefaultDBMetricsConfig() DBMetricsConfig {
	return DBMetricsConfig{SlowQueryThreshold: 200 * time.Millisecond}
}

// DBMetrics records query counts, latency and slow queries for the catalog
// backends. For SQL backends it also reports connection pool gauges.
type DBMetrics struct {
	meter          metric.Meter
	queryTotal     metric.Int64Counter
	queryDuration  metric.Float64Histogram
	slowQueryTotal metric.Int64Counter

	config DBMetricsConfig
	logger *zap.Logger

	mu       sync.Mutex
	poolReg  metric.Registration
	stopOnce sync.Once
}

// NewDBMetrics creates the query instruments on meter.
func NewDBMetrics(meter metric.Meter, cfg DBMetricsConfig, logger *zap.Logger) (*DBMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SlowQueryThreshold <= 0 {
		cfg.SlowQueryThreshold = DefaultDBMetricsConfig().SlowQueryThreshold
	}

	queryTotal, err := meter.Int64Counter("db_query_total",
		metric.WithDescription("Total number of database queries by operation type"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create db_query_total: %w", err)
	}

	queryDuration, err := meter.Float64Histogram("db_query_duration_seconds",
		metric.WithDescription("Database query latency distribution in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DBDurationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create db_query_duration_seconds: %w", err)
	}

	slowQueryTotal, err := meter.Int64Counter("db_slow_query_total",
		metric.WithDescription("Total number of queries slower than the configured threshold"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create db_slow_query_total: %w", err)
	}

	return &DBMetrics{
		meter:          meter,
		queryTotal:     queryTotal,
		queryDuration:  queryDuration,
		slowQueryTotal: slowQueryTotal,
		config:         cfg,
		logger:         logger,
	}, nil
}

// ObservePool reports the idle, in-use and maximum connection counts of
// sqlDB on every collection cycle. Only the first call registers gauges.
func (m *DBMetrics) ObservePool(sqlDB *sql.DB) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.poolReg != nil {
		return nil
	}

	connections, err := m.meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Number of connections in the pool by state"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create db_pool_connections: %w", err)
	}
	maxConnections, err := m.meter.Int64ObservableGauge("db_pool_connections_max",
		metric.WithDescription("Maximum number of open connections allowed"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create db_pool_connections_max: %w", err)
	}

	reg, err := m.meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(connections, int64(stats.Idle), metric.WithAttributes(AttrPoolState.String("idle")))
		o.ObserveInt64(connections, int64(stats.InUse), metric.WithAttributes(AttrPoolState.String("in_use")))
		o.ObserveInt64(connections, int64(stats.OpenConnections), metric.WithAttributes(AttrPoolState.String("open")))
		o.ObserveInt64(maxConnections, int64(stats.MaxOpenConnections))
		return nil
	}, connections, maxConnections)
	if err != nil {
		return fmt.Errorf("failed to register pool callback: %w", err)
	}
	m.poolReg = reg
	return nil
}

// Stop unregisters the pool gauges. Safe to call multiple times.
func (m *DBMetrics) Stop() {
	m.stopOnce.Do(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.poolReg == nil {
			return
		}
		if err := m.poolReg.Unregister(); err != nil {
			m.logger.Warn("Failed to unregister pool metrics", zap.Error(err))
		}
		m.poolReg = nil
	})
}

// RecordQuery records one finished query. A slow query also adds a
// slow_query_warning event to the span carried by ctx.
func (m *DBMetrics) RecordQuery(ctx context.Context, operation, table string, duration time.Duration, err error) {
	operation = strings.ToUpper(operation)
	if operation == "" {
		operation = "UNKNOWN"
	}
	if table == "" {
		table = "unknown"
	}
	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)

	attrs := metric.WithAttributes(AttrDBOperation.String(operation), AttrDBFailed.Bool(failed))
	m.queryTotal.Add(ctx, 1, attrs)
	m.queryDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(AttrDBOperation.String(operation)))

	if duration > m.config.SlowQueryThreshold {
		m.slowQueryTotal.Add(ctx, 1, metric.WithAttributes(AttrDBTable.String(table)))
		trace.SpanFromContext(ctx).AddEvent("slow_query_warning", trace.WithAttributes(
			AttrDBOperation.String(operation),
			AttrDBTable.String(table),
			attribute.Int64("db.query_duration_ms", duration.Milliseconds()),
		))
	}
}

// DBMetricsPlugin is a GORM plugin feeding DBMetrics from the statement
// callbacks.
type DBMetricsPlugin struct {
	metrics *DBMetrics
}

// NewDBMetricsPlugin wraps metrics as a GORM plugin
func NewDBMetricsPlugin(metrics *DBMetrics) *DBMetricsPlugin {
	return &DBMetricsPlugin{metrics: metrics}
}

// Name implements gorm.Plugin
func (p *DBMetricsPlugin) Name() string {
	return "db_metrics"
}

type dbMetricsContextKey struct{}

// Initialize implements gorm.Plugin. It times every create, query, update,
// delete, row and raw statement and starts the pool gauges.
func (p *DBMetricsPlugin) Initialize(db *gorm.DB) error {
	before := func(tx *gorm.DB) {
		if tx.Statement.Context == nil {
			tx.Statement.Context = context.Background()
		}
		tx.Statement.Context = context.WithValue(tx.Statement.Context, dbMetricsContextKey{}, time.Now())
	}
	after := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) { p.record(tx, operation) }
	}
	fromSQL := func(tx *gorm.DB) { p.record(tx, detectOperationType(tx.Statement.SQL.String())) }

	cb := db.Callback()
	steps := []struct {
		name          string
		before, after callbackRegistrar
		record        func(*gorm.DB)
	}{
		{"create", cb.Create().Before("gorm:create"), cb.Create().After("gorm:create"), after("INSERT")},
		{"query", cb.Query().Before("gorm:query"), cb.Query().After("gorm:query"), after("SELECT")},
		{"update", cb.Update().Before("gorm:update"), cb.Update().After("gorm:update"), after("UPDATE")},
		{"delete", cb.Delete().Before("gorm:delete"), cb.Delete().After("gorm:delete"), after("DELETE")},
		{"row", cb.Row().Before("gorm:row"), cb.Row().After("gorm:row"), fromSQL},
		{"raw", cb.Raw().Before("gorm:raw"), cb.Raw().After("gorm:raw"), fromSQL},
	}
	for _, s := range steps {
		if err := s.before.Register("db_metrics:before_"+s.name, before); err != nil {
			return fmt.Errorf("failed to register %s callbacks: %w", s.name, err)
		}
		if err := s.after.Register("db_metrics:after_"+s.name, s.record); err != nil {
			return fmt.Errorf("failed to register %s callbacks: %w", s.name, err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return p.metrics.ObservePool(sqlDB)
}

type callbackRegistrar interface {
	Register(name string, fn func(*gorm.DB)) error
}

func (p *DBMetricsPlugin) record(tx *gorm.DB, operation string) {
	ctx := tx.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	var duration time.Duration
	if start, ok := ctx.Value(dbMetricsContextKey{}).(time.Time); ok {
		duration = time.Since(start)
	}
	p.metrics.RecordQuery(ctx, operation, tx.Statement.Table, duration, tx.Error)
}

// detectOperationType returns the leading SQL verb of a statement.
func detectOperationType(sql string) string {
	sql = strings.TrimSpace(strings.ToUpper(sql))
	for _, op := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(sql, op) {
			return op
		}
	}
	return "OTHER"
}
