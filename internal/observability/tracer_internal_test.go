package observability

import (
	"context"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/goleak"
	"testing"
)

func TestInitTracing_disabled(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := context.Background()

	tp, err := InitTracing(ctx, Config{ServiceName: "detectivequest", ServiceVersion: "test", Enabled: false})
	require.NoError(t, err)
	require.False(t, tp.Enabled())

	_, span := tp.Tracer("test").Start(ctx, "noop")
	require.False(t, span.SpanContext().IsValid(), "disabled tracing must hand out no-op spans")
	span.End()

	require.NoError(t, tp.Shutdown(ctx))
}

func TestTracerProvider_exportsSpans(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := context.Background()

	exporter := tracetest.NewInMemoryExporter()
	tp := newTracerProvider(Config{ServiceName: "detectivequest", ServiceVersion: "test", Enabled: true}, exporter)
	require.True(t, tp.Enabled())

	_, span := tp.Tracer("test").Start(ctx, "investigation.judge")
	require.True(t, span.SpanContext().IsValid())
	span.End()

	// The in-memory exporter forgets its spans on shutdown, so flush and inspect first.
	require.NoError(t, tp.provider.ForceFlush(ctx))
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Equal(t, "investigation.judge", spans[0].Name)

	// Shutdown stops the batcher goroutine.
	require.NoError(t, tp.Shutdown(ctx))
}
