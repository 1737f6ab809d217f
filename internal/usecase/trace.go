package usecase

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("season-compare/internal/usecase")

// startUsecaseSpan opens a child span when the caller already runs
// inside a trace. Service methods invoked from boot jobs or tests carry
// no span context and stay untraced rather than minting root spans.
func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if strings.TrimSpace(name) != "" && trace.SpanContextFromContext(ctx).IsValid() {
		return usecaseTracer.Start(ctx, name)
	}
	return ctx, trace.SpanFromContext(context.Background())
}
