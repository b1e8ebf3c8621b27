package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// OtelTraceID is a TraceIDFn that reads the trace id of the active span so
// log lines can be correlated with traces. It returns the zero trace id
// when ctx carries no valid span context.
func OtelTraceID(ctx context.Context) string {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return trace.TraceID{}.String()
	}
	return sc.TraceID().String()
}
