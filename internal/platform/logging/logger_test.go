package logging

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zapcore"
)

func TestToFields(t *testing.T) {
	t.Run("pairs keys with values", func(t *testing.T) {
		boom := errors.New("boom")
		fields := toFields([]any{"season", 2025, "error", boom, 42, "answer"})

		if len(fields) != 3 {
			t.Fatalf("expected 3 fields, got %d", len(fields))
		}
		if fields[0].Key != "season" {
			t.Fatalf("unexpected first key: %q", fields[0].Key)
		}
		if fields[1].Key != "error" || fields[1].Type != zapcore.ErrorType {
			t.Fatalf("expected named error field, got key=%q type=%v", fields[1].Key, fields[1].Type)
		}
		if fields[2].Key != "arg" {
			t.Fatalf("expected fallback key for non-string key, got %q", fields[2].Key)
		}
	})

	t.Run("dangling key keeps its name", func(t *testing.T) {
		fields := toFields([]any{"orphan"})
		if len(fields) != 1 || fields[0].Key != "orphan" {
			t.Fatalf("unexpected fields: %+v", fields)
		}
	})

	t.Run("no args no fields", func(t *testing.T) {
		if fields := toFields(nil); fields != nil {
			t.Fatalf("expected nil, got %+v", fields)
		}
	})
}

func TestTraceFields(t *testing.T) {
	if got := traceFields(context.Background()); got != nil {
		t.Fatalf("expected no fields without a span, got %+v", got)
	}

	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{0x01},
		SpanID:  trace.SpanID{0x02},
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)

	fields := traceFields(ctx)
	if len(fields) != 2 {
		t.Fatalf("expected trace and span fields, got %d", len(fields))
	}
	if fields[0].Key != "trace_id" || fields[1].Key != "span_id" {
		t.Fatalf("unexpected keys: %q, %q", fields[0].Key, fields[1].Key)
	}
}
