// Package observability wires OpenTelemetry tracing for investigation sessions.
package observability

import (
	"context"
	"github.com/myrjola/detectivequest/internal/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"log/slog"
	"time"
)

// Config holds the configuration for OpenTelemetry tracing.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Enabled        bool
	// Endpoint is the OTLP/HTTP traces URL, e.g. http://localhost:4318/v1/traces.
	Endpoint string
}

// TracerProvider wraps the OpenTelemetry tracer provider with cleanup.
type TracerProvider struct {
	provider *sdktrace.TracerProvider
}

// InitTracing initializes tracing with an OTLP/HTTP exporter and installs it as the global provider.
// When tracing is disabled the returned provider hands out no-op tracers.
func InitTracing(ctx context.Context, cfg Config) (*TracerProvider, error) {
	if !cfg.Enabled {
		return &TracerProvider{provider: nil}, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(cfg.Endpoint),
		otlptracehttp.WithCompression(otlptracehttp.GzipCompression),
		otlptracehttp.WithTimeout(10*time.Second), //nolint:mnd // generous for a local collector
	)
	if err != nil {
		return nil, errors.Wrap(err, "create OTLP HTTP exporter", slog.String("endpoint", cfg.Endpoint))
	}

	tp := newTracerProvider(cfg, exporter)
	otel.SetTracerProvider(tp.provider)
	return tp, nil
}

func newTracerProvider(cfg Config, exporter sdktrace.SpanExporter) *TracerProvider {
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
	)
	return &TracerProvider{
		provider: sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)), //nolint:mnd // SDK default
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
		),
	}
}

// Tracer returns a tracer for the given instrumentation name.
func (tp *TracerProvider) Tracer(name string) trace.Tracer {
	if tp.provider == nil {
		return noop.NewTracerProvider().Tracer(name)
	}
	return tp.provider.Tracer(name)
}

// Enabled reports whether spans are exported.
func (tp *TracerProvider) Enabled() bool {
	return tp.provider != nil
}

// Shutdown flushes pending spans and stops the exporter.
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	if tp.provider == nil {
		return nil
	}
	if err := tp.provider.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "shutdown tracer provider")
	}
	return nil
}
