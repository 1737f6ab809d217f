package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("season-compare/internal/interfaces/httpapi")

// startSpan opens a child span under the request's server span. Only
// handler entry points get spans of their own; DTO mapping and response
// helpers would bury each trace in noise. Filtered routes like /healthz
// reach handlers without a server span and must not mint roots. Either
// way the returned span is safe to End without touching a live parent.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if trace.SpanContextFromContext(ctx).IsValid() && shouldCreateHTTPAPISpan(name) {
		return apiTracer.Start(ctx, name)
	}
	return ctx, trace.SpanFromContext(context.Background())
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
}
