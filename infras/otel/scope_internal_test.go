package otel

import (
	"context"
	"errors"
	"hotel/shared/failure"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func record(t *testing.T, fn func(scope Scope)) sdktrace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "booking.Create")
	scope := NewScope(span)
	fn(scope)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	return spans[0]
}

func attributeValue(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}

	return attribute.Value{}, false
}

func TestScope_RejectionIsNotAnError(t *testing.T) {
	span := record(t, func(scope Scope) {
		scope.TraceIfError(failure.NoRoomAvailable("no standard room is free"))
	})

	assert.Equal(t, codes.Unset, span.Status().Code)

	kind, ok := attributeValue(span, attributeFailureKind)
	require.True(t, ok)
	assert.Equal(t, string(failure.KindNoRoomAvailable), kind.AsString())
}

func TestScope_InternalErrorMarksSpan(t *testing.T) {
	span := record(t, func(scope Scope) {
		scope.TraceIfError(errors.New("connection reset"))
	})

	assert.Equal(t, codes.Error, span.Status().Code)

	kind, ok := attributeValue(span, attributeFailureKind)
	require.True(t, ok)
	assert.Equal(t, string(failure.KindInternal), kind.AsString())
}

func TestScope_TypedAttributes(t *testing.T) {
	span := record(t, func(scope Scope) {
		scope.SetAttributes(map[string]any{
			"booking.total":   115.5,
			"booking.nights":  2,
			"booking.checkin": time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		})
	})

	total, _ := attributeValue(span, "booking.total")
	assert.Equal(t, attribute.FLOAT64, total.Type())

	nights, _ := attributeValue(span, "booking.nights")
	assert.Equal(t, int64(2), nights.AsInt64())

	checkIn, _ := attributeValue(span, "booking.checkin")
	assert.Equal(t, "2024-06-01", checkIn.AsString())
}
