package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext(t *testing.T) {
	attachedCore, attached := observer.New(zapcore.InfoLevel)
	fallbackCore, fallback := observer.New(zapcore.InfoLevel)

	ctx := WithContext(context.Background(), zap.New(attachedCore))
	FromContext(ctx, zap.New(fallbackCore)).Info("attached")
	FromContext(context.Background(), zap.New(fallbackCore)).Info("fallback")

	assert.Equal(t, 1, attached.FilterMessage("attached").Len())
	assert.Equal(t, 1, fallback.FilterMessage("fallback").Len())
	assert.Equal(t, 0, fallback.FilterMessage("attached").Len())
}

func TestFromContext_NilFallback(t *testing.T) {
	assert.NotPanics(t, func() {
		FromContext(context.Background(), nil).Info("dropped")
	})
}

func TestFromContext_AddsTraceIDs(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	FromContext(ctx, zap.New(core)).Info("traced")

	entries := recorded.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", fields["span_id"])
}

func TestRequestID(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))

	ctx := WithRequestID(context.Background(), "req-42")
	assert.Equal(t, "req-42", GetRequestID(ctx))
}
