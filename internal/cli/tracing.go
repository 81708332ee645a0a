package cli

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// spanLogger exports finished spans as debug log records
type spanLogger struct {
	logger *slog.Logger
}

func (e *spanLogger) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		attrs := []any{
			"span", span.Name(),
			"trace_id", span.SpanContext().TraceID().String(),
			"duration", span.EndTime().Sub(span.StartTime()),
			"status", span.Status().Code.String(),
		}
		if desc := span.Status().Description; desc != "" {
			attrs = append(attrs, "error", desc)
		}
		for _, kv := range span.Attributes() {
			attrs = append(attrs, string(kv.Key), kv.Value.Emit())
		}
		e.logger.DebugContext(ctx, "trace span", attrs...)
	}
	return nil
}

func (e *spanLogger) Shutdown(ctx context.Context) error {
	return nil
}

// tracerCloser shuts the provider down when the dependencies close
type tracerCloser struct {
	provider *sdktrace.TracerProvider
}

func (c tracerCloser) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.provider.Shutdown(ctx)
}

// installTracing registers a global tracer provider that logs every span
func installTracing(logger *slog.Logger) tracerCloser {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(&spanLogger{logger: logger}),
	)
	otel.SetTracerProvider(tp)
	return tracerCloser{provider: tp}
}
