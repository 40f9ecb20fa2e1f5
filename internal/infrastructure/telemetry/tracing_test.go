package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/spicebox/packing-summary/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// setupTestTracer installs an in-memory span recorder as the global provider.
func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	})

	return sr
}

func attrMap(attrs []attribute.KeyValue) map[string]attribute.Value {
	m := make(map[string]attribute.Value, len(attrs))
	for _, a := range attrs {
		m[string(a.Key)] = a.Value
	}
	return m
}

func TestStartSpan(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartSpan(context.Background(), "packing.summary")
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "packing.summary", spans[0].Name())
	assert.Equal(t, trace.SpanKindInternal, spans[0].SpanKind())
}

func TestStartSpan_WithOptions(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartSpan(context.Background(), "shopify.fetch_page",
		telemetry.WithAttribute(telemetry.SpanAttrPageCursor, "1001"),
		telemetry.WithAttribute(telemetry.SpanAttrPageSize, 250),
		telemetry.WithSpanKind(trace.SpanKindClient),
	)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, trace.SpanKindClient, spans[0].SpanKind())

	attrs := attrMap(spans[0].Attributes())
	assert.Equal(t, "1001", attrs[telemetry.SpanAttrPageCursor].AsString())
	assert.Equal(t, int64(250), attrs[telemetry.SpanAttrPageSize].AsInt64())
}

func TestStartServiceSpan(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartServiceSpan(context.Background(), "shopify", "fetch_orders")
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "shopify.fetch_orders", spans[0].Name())
}

func TestSetAttributes(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartSpan(context.Background(), "test")
	telemetry.SetAttributes(span,
		"orders", 540,
		"express", true,
		42, "skipped",
		"ratio", 0.5,
		"dangling",
	)
	span.End()

	attrs := attrMap(sr.Ended()[0].Attributes())
	assert.Len(t, attrs, 3)
	assert.Equal(t, int64(540), attrs["orders"].AsInt64())
	assert.True(t, attrs["express"].AsBool())
	assert.Equal(t, 0.5, attrs["ratio"].AsFloat64())
}

func TestRecordError(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartSpan(context.Background(), "test")
	telemetry.RecordError(span, errors.New("boom"))
	span.End()

	got := sr.Ended()[0]
	assert.Equal(t, codes.Error, got.Status().Code)
	assert.Equal(t, "boom", got.Status().Description)
	require.Len(t, got.Events(), 1)
	assert.Equal(t, "exception", got.Events()[0].Name)
}

func TestRecordError_NilArguments(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartSpan(context.Background(), "test")
	telemetry.RecordError(span, nil)
	telemetry.RecordError(nil, errors.New("ignored"))
	telemetry.SetAttributes(nil, "k", "v")
	telemetry.AddEvent(nil, "ignored")
	telemetry.SetOK(nil)
	span.End()

	got := sr.Ended()[0]
	assert.Equal(t, codes.Unset, got.Status().Code)
	assert.Empty(t, got.Events())
}

func TestSetOK(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartSpan(context.Background(), "test")
	telemetry.SetOK(span)
	span.End()

	assert.Equal(t, codes.Ok, sr.Ended()[0].Status().Code)
}

func TestAddEvent(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartSpan(context.Background(), "test")
	telemetry.AddEvent(span, "page_fetched", "orders", 250, "cursor", "")
	span.End()

	events := sr.Ended()[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "page_fetched", events[0].Name)
	assert.Equal(t, int64(250), attrMap(events[0].Attributes)["orders"].AsInt64())
}

func TestGetTraceID(t *testing.T) {
	setupTestTracer(t)

	assert.Empty(t, telemetry.GetTraceID(context.Background()))

	ctx, span := telemetry.StartSpan(context.Background(), "test")
	defer span.End()
	assert.Len(t, telemetry.GetTraceID(ctx), 32)
}

func TestNestedSpans(t *testing.T) {
	sr := setupTestTracer(t)

	ctx, parent := telemetry.StartSpan(context.Background(), "parent")
	_, child := telemetry.StartSpan(ctx, "child")
	child.End()
	parent.End()

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
	assert.Equal(t, spans[1].SpanContext().TraceID(), spans[0].SpanContext().TraceID())
}
