package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBConfig controls database instrumentation
type DBConfig struct {
	Tracing       bool
	SlowThreshold time.Duration
	// WithQueryVariables includes bound values in spans
	WithQueryVariables bool
}

// DBPlugins returns the GORM plugins for tracing and query metrics, ready to
// pass to persistence.WithPlugins.
func DBPlugins(cfg DBConfig, meter metric.Meter, logger *zap.Logger) ([]gorm.Plugin, error) {
	var plugins []gorm.Plugin
	if cfg.Tracing {
		opts := []otelgorm.Option{otelgorm.WithDBName("postgres")}
		if !cfg.WithQueryVariables {
			opts = append(opts, otelgorm.WithoutQueryVariables())
		}
		plugins = append(plugins, otelgorm.NewPlugin(opts...))
	}

	qm, err := newQueryMetrics(cfg.SlowThreshold, meter, logger)
	if err != nil {
		return nil, err
	}
	return append(plugins, qm), nil
}

type startKey struct{}

// queryMetrics records statement durations and flags slow statements on the
// active span.
type queryMetrics struct {
	slow     time.Duration
	duration metric.Float64Histogram
	errors   metric.Int64Counter
	logger   *zap.Logger
}

func newQueryMetrics(slow time.Duration, meter metric.Meter, logger *zap.Logger) (*queryMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	duration, err := meter.Float64Histogram("db.query.duration",
		metric.WithDescription("Database statement duration"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}
	errs, err := meter.Int64Counter("db.query.errors",
		metric.WithDescription("Failed database statements"),
	)
	if err != nil {
		return nil, err
	}
	return &queryMetrics{slow: slow, duration: duration, errors: errs, logger: logger.Named("db")}, nil
}

// Name implements gorm.Plugin
func (q *queryMetrics) Name() string { return "backoffice:query_metrics" }

// Initialize implements gorm.Plugin
func (q *queryMetrics) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	hooks := []struct {
		op       string
		before   func(string, func(*gorm.DB)) error
		after    func(string, func(*gorm.DB)) error
	}{
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}
	for _, h := range hooks {
		op := h.op
		if err := h.before("metrics:before_"+op, q.before); err != nil {
			return err
		}
		if err := h.after("metrics:after_"+op, func(tx *gorm.DB) { q.after(tx, op) }); err != nil {
			return err
		}
	}
	return nil
}

func (q *queryMetrics) before(tx *gorm.DB) {
	if tx.Statement.Context == nil {
		tx.Statement.Context = context.Background()
	}
	tx.Statement.Context = context.WithValue(tx.Statement.Context, startKey{}, time.Now())
}

func (q *queryMetrics) after(tx *gorm.DB, op string) {
	ctx := tx.Statement.Context
	start, ok := ctx.Value(startKey{}).(time.Time)
	if !ok {
		return
	}
	elapsed := time.Since(start)
	table := strings.Trim(tx.Statement.Table, `"`)
	attrs := metric.WithAttributes(
		attribute.String("db.operation", op),
		attribute.String("db.sql.table", table),
	)

	q.duration.Record(ctx, float64(elapsed.Microseconds())/1000, attrs)
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		q.errors.Add(ctx, 1, attrs)
	}

	if q.slow <= 0 || elapsed <= q.slow {
		return
	}
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(attribute.Bool("db.slow_query", true))
		span.AddEvent("slow_query", trace.WithAttributes(
			attribute.Int64("duration_ms", elapsed.Milliseconds()),
			attribute.Int64("threshold_ms", q.slow.Milliseconds()),
		))
	}
	q.logger.Warn("slow statement",
		zap.String("operation", op),
		zap.String("table", table),
		zap.Duration("elapsed", elapsed),
	)
}

// RegisterPoolMetrics exposes connection pool stats as observable gauges
func RegisterPoolMetrics(meter metric.Meter, db *sql.DB) error {
	open, err := meter.Int64ObservableGauge("db.pool.open_connections")
	if err != nil {
		return err
	}
	inUse, err := meter.Int64ObservableGauge("db.pool.in_use")
	if err != nil {
		return err
	}
	idle, err := meter.Int64ObservableGauge("db.pool.idle")
	if err != nil {
		return err
	}
	waits, err := meter.Int64ObservableCounter("db.pool.wait_count")
	if err != nil {
		return err
	}

	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		s := db.Stats()
		o.ObserveInt64(open, int64(s.OpenConnections))
		o.ObserveInt64(inUse, int64(s.InUse))
		o.ObserveInt64(idle, int64(s.Idle))
		o.ObserveInt64(waits, s.WaitCount)
		return nil
	}, open, inUse, idle, waits)
	return err
}
