package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var (
	apiTracer = otel.Tracer("ft5-league/internal/interfaces/httpapi")
	noopSpan  = trace.SpanFromContext(context.Background())
)

// startSpan opens a span for handlers only. Middleware and helpers share the
// otelhttp server span, and untraced routes such as /healthz get no span at all.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() || !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}

	var opts []trace.SpanStartOption
	if requestID := requestIDFromContext(ctx); requestID != "" {
		opts = append(opts, trace.WithAttributes(attribute.String("http.request_id", requestID)))
	}
	return apiTracer.Start(ctx, name, opts...)
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
}
