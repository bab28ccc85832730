// Package tracing is the span helper used by the domain packages.
//
// Without a registered TracerProvider (tests, local dev) the global no-op
// provider is used and every call is inert.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "padel-palms"

// Start creates a span as a child of the span in ctx. The caller must End it.
//
//	ctx, span := tracing.Start(ctx, "relay.submit_form",
//	    attribute.String("relay.tool", tool),
//	)
//	defer span.End()
func Start(ctx context.Context, spanName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, spanName, trace.WithAttributes(attrs...))
}

// Fail records err on span and marks it as errored. A nil err is a no-op.
func Fail(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
