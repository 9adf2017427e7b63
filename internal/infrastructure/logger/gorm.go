package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultSlowQuery = 200 * time.Millisecond
	maxLoggedSQL     = 2048
)

// SQLLogConfig configures the GORM statement logger
type SQLLogConfig struct {
	// Level is a log level name; see MapGormLogLevel
	Level string
	// SlowThreshold marks statements slower than this as slow; 0 uses 200ms
	SlowThreshold time.Duration
	// Driver is attached to every entry (postgres, sqlite)
	Driver string
}

// SQLLogger writes GORM statements to zap. Lookups that find nothing and
// writes rejected by a unique index are client outcomes, not failures, so
// they are logged at debug.
type SQLLogger struct {
	logger        *zap.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewSQLLogger creates a GORM logger backed by zap
func NewSQLLogger(zapLogger *zap.Logger, cfg SQLLogConfig) *SQLLogger {
	slow := cfg.SlowThreshold
	if slow == 0 {
		slow = defaultSlowQuery
	}
	l := zapLogger.Named("sql")
	if cfg.Driver != "" {
		l = l.With(zap.String("driver", cfg.Driver))
	}
	return &SQLLogger{
		logger:        l,
		level:         MapGormLogLevel(cfg.Level),
		slowThreshold: slow,
	}
}

// LogMode implements gormlogger.Interface
func (l *SQLLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	c := *l
	c.level = level
	return &c
}

// Info implements gormlogger.Interface
func (l *SQLLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		WithTraceContext(ctx, l.logger).Sugar().Infof(msg, data...)
	}
}

// Warn implements gormlogger.Interface
func (l *SQLLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		WithTraceContext(ctx, l.logger).Sugar().Warnf(msg, data...)
	}
}

// Error implements gormlogger.Interface
func (l *SQLLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		WithTraceContext(ctx, l.logger).Sugar().Errorf(msg, data...)
	}
}

// Trace implements gormlogger.Interface
func (l *SQLLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	msg, lvl, ok := l.classify(elapsed, err)
	if !ok {
		return
	}

	log := WithTraceContext(ctx, l.logger)
	if ce := log.Check(lvl, msg); ce != nil {
		sql, rows := fc()
		fields := []zap.Field{
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", rows),
			zap.String("sql", truncateSQL(sql)),
		}
		if requestID := GetRequestID(ctx); requestID != "" {
			fields = append(fields, zap.String("request_id", requestID))
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		ce.Write(fields...)
	}
}

// classify picks the message and level of a statement, or reports that it
// is below the configured level
func (l *SQLLogger) classify(elapsed time.Duration, err error) (string, zapcore.Level, bool) {
	switch {
	case err != nil && isExpectedSQLError(err):
		return "SQL rejected", zapcore.DebugLevel, l.level >= gormlogger.Info
	case err != nil:
		return "SQL error", zapcore.ErrorLevel, l.level >= gormlogger.Error
	case elapsed > l.slowThreshold:
		return "Slow SQL", zapcore.WarnLevel, l.level >= gormlogger.Warn
	default:
		return "SQL", zapcore.DebugLevel, l.level >= gormlogger.Info
	}
}

func isExpectedSQLError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, gorm.ErrDuplicatedKey)
}

func truncateSQL(sql string) string {
	if len(sql) <= maxLoggedSQL {
		return sql
	}
	return sql[:maxLoggedSQL] + "..."
}

// MapGormLogLevel maps a log level name to a GORM log level.
// debug and info log every statement; unknown names behave as warn.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
