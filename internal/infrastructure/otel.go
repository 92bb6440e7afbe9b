package infrastructure

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	// ServiceName identifies this pipeline in trace output.
	ServiceName = "ecopanel-pipeline"
	// TracerName is the instrumentation scope for pipeline spans.
	TracerName = "ecopanel"
)

// TracerSetup holds the configured tracer and its shutdown hook.
type TracerSetup struct {
	Tracer   trace.Tracer
	provider *sdktrace.TracerProvider
}

// InitializeTracing configures a stdout-exporting tracer provider. When
// disabled it returns a no-op tracer so callers never branch on tracing
// being on or off.
func InitializeTracing(enabled bool) (*TracerSetup, error) {
	if !enabled {
		return &TracerSetup{Tracer: noop.NewTracerProvider().Tracer(TracerName)}, nil
	}

	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout trace exporter: %w", err)
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to build otel resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	return &TracerSetup{
		Tracer:   provider.Tracer(TracerName),
		provider: provider,
	}, nil
}

// Shutdown flushes and stops the tracer provider, if one was started.
func (t *TracerSetup) Shutdown(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
