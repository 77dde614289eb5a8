package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowThreshold = 200 * time.Millisecond

// GormLogger adapts zap to gormlogger.Interface so ORM traffic lands in
// the same structured stream as the rest of the service
type GormLogger struct {
	zap            *zap.Logger
	level          gormlogger.LogLevel
	slowThreshold  time.Duration
	silenceMissing bool
}

type GormLoggerOption func(*GormLogger)

// WithSlowThreshold overrides the duration past which queries log as slow
func WithSlowThreshold(d time.Duration) GormLoggerOption {
	return func(gl *GormLogger) {
		gl.slowThreshold = d
	}
}

// WithIgnoreRecordNotFoundError controls whether gorm.ErrRecordNotFound
// traces are suppressed. Lookups that miss are routine here, so they are
// suppressed by default.
func WithIgnoreRecordNotFoundError(ignore bool) GormLoggerOption {
	return func(gl *GormLogger) {
		gl.silenceMissing = ignore
	}
}

func NewGormLogger(base *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	gl := &GormLogger{
		zap:            base.Named("gorm"),
		level:          level,
		slowThreshold:  defaultSlowThreshold,
		silenceMissing: true,
	}
	for _, opt := range opts {
		opt(gl)
	}
	return gl
}

func (gl *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *gl
	clone.level = level
	return &clone
}

func (gl *GormLogger) Info(ctx context.Context, msg string, args ...any) {
	if gl.level >= gormlogger.Info {
		gl.zap.Sugar().Infof(msg, args...)
	}
}

func (gl *GormLogger) Warn(ctx context.Context, msg string, args ...any) {
	if gl.level >= gormlogger.Warn {
		gl.zap.Sugar().Warnf(msg, args...)
	}
}

func (gl *GormLogger) Error(ctx context.Context, msg string, args ...any) {
	if gl.level >= gormlogger.Error {
		gl.zap.Sugar().Errorf(msg, args...)
	}
}

// Trace logs a finished statement. Failed queries log at error, queries
// over the slow threshold at warn, everything else at debug.
func (gl *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if gl.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := gl.traceFields(ctx, elapsed, rows, sql)

	switch {
	case err != nil && gl.level >= gormlogger.Error:
		if gl.silenceMissing && errors.Is(err, gormlogger.ErrRecordNotFound) {
			return
		}
		gl.zap.Error("SQL Error", append(fields, zap.Error(err))...)

	case gl.slowThreshold != 0 && elapsed > gl.slowThreshold && gl.level >= gormlogger.Warn:
		gl.zap.Warn(fmt.Sprintf("SLOW SQL >= %v", gl.slowThreshold), fields...)

	case gl.level >= gormlogger.Info:
		gl.zap.Debug("SQL Query", fields...)
	}
}

func (gl *GormLogger) traceFields(ctx context.Context, elapsed time.Duration, rows int64, sql string) []zap.Field {
	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}
	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	return fields
}

// MapGormLogLevel translates the service's log level setting into the
// nearest GORM level. Unknown values land on warn rather than silencing
// the ORM entirely.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "warn":
		return gormlogger.Warn
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
