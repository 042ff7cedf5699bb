package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func spanContext() context.Context {
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01, 0x02},
		SpanID:     trace.SpanID{0x03},
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc)
}

func TestFromContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	l := zap.NewExample()
	assert.Same(t, l, FromContext(WithContext(context.Background(), l)))
}

func TestContextValues(t *testing.T) {
	ctx := WithUserID(WithRequestID(context.Background(), "req-1"), "user-9")
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Equal(t, "user-9", UserID(ctx))
	assert.Empty(t, RequestID(context.Background()))
}

func TestTraceFields(t *testing.T) {
	assert.Nil(t, TraceFields(context.Background()))

	fields := TraceFields(spanContext())
	assert.Len(t, fields, 2)
	assert.Equal(t, "trace_id", fields[0].Key)
}

func TestL_AddsCorrelationFields(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	base := zap.New(core)

	ctx := WithUserID(WithRequestID(spanContext(), "req-7"), "user-1")
	L(ctx, base).Info("invoice created")

	entry := recorded.All()[0]
	fields := entry.ContextMap()
	assert.Equal(t, "req-7", fields["request_id"])
	assert.Equal(t, "user-1", fields["user_id"])
	assert.Contains(t, fields, "trace_id")
	assert.Contains(t, fields, "span_id")
}

func TestL_FallsBackToContextLogger(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	ctx := WithContext(context.Background(), zap.New(core))

	L(ctx, nil).Warn("from ctx")
	assert.Equal(t, 1, recorded.Len())
}
