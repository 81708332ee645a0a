package planning

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTestTracer(t *testing.T) (*sdktrace.TracerProvider, *tracetest.InMemoryExporter, func()) {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
	)
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	cleanup := func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("shutdown tracer provider: %v", err)
		}
		otel.SetTracerProvider(prev)
	}
	return tp, exporter, cleanup
}

func attributesToMap(attrs []attribute.KeyValue) map[string]any {
	out := make(map[string]any, len(attrs))
	for _, kv := range attrs {
		out[string(kv.Key)] = kv.Value.AsInterface()
	}
	return out
}

func TestGeneratePlan_Span(t *testing.T) {
	tp, exporter, restore := setupTestTracer(t)
	defer restore()

	client := &mockHTTPClient{responses: []*http.Response{statusResponse(503, "busy"), createMockAPIResponse(validPlan)}}
	g := newTestGateway(t, client)

	_, err := g.GeneratePlan(context.Background(), "Launch the product")
	require.NoError(t, err)
	require.NoError(t, tp.ForceFlush(context.Background()))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	span := spans[0]

	assert.Equal(t, "planning.generate_plan", span.Name)
	assert.Equal(t, codes.Ok, span.Status.Code)

	attrs := attributesToMap(span.Attributes)
	assert.Equal(t, "gemini-2.5-flash", attrs["ai.model"])
	assert.Equal(t, int64(3), attrs["planning.tasks"])
	assert.Equal(t, int64(2), attrs["planning.attempts"])
}

func TestGeneratePlan_ErrorSpan(t *testing.T) {
	tp, exporter, restore := setupTestTracer(t)
	defer restore()

	client := &mockHTTPClient{responses: []*http.Response{createMockAPIResponse(`[{"description": "no title", "priority": "LOW"}]`)}}
	g := newTestGateway(t, client)

	_, err := g.GeneratePlan(context.Background(), "Launch")
	require.Error(t, err)
	require.NoError(t, tp.ForceFlush(context.Background()))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Contains(t, spans[0].Status.Description, "missing title")
	require.NotEmpty(t, spans[0].Events, "error is recorded as a span event")
	assert.Equal(t, "exception", spans[0].Events[0].Name)
}

func TestEnhanceDescription_Span(t *testing.T) {
	tp, exporter, restore := setupTestTracer(t)
	defer restore()

	client := &mockHTTPClient{responses: []*http.Response{createMockAPIResponse("Polished")}}
	g := newTestGateway(t, client)

	_, err := g.EnhanceDescription(context.Background(), "Fix bug", "it's broken")
	require.NoError(t, err)
	require.NoError(t, tp.ForceFlush(context.Background()))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "planning.enhance_description", spans[0].Name)
	attrs := attributesToMap(spans[0].Attributes)
	assert.Equal(t, int64(len("it's broken")), attrs["planning.description_length"])
}
