package trace

import (
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "bitcoin-analyst"

var (
	tracer         trace.Tracer
	tracerProvider *sdktrace.TracerProvider
	enabled        bool
)

// Init sets up the OpenTelemetry tracer with a stdout exporter. Tracing is
// on unless LOG_TRACING_ENABLED=false; LOG_TRACING_QUIET drops span output
// entirely while keeping trace IDs in logs.
func Init() error {
	if os.Getenv("LOG_TRACING_ENABLED") == "false" {
		enabled = false
		return nil
	}
	enabled = true

	opts := []stdouttrace.Option{stdouttrace.WithPrettyPrint()}
	if os.Getenv("LOG_TRACING_QUIET") == "true" {
		opts = append(opts, stdouttrace.WithWriter(io.Discard))
	}
	exporter, err := stdouttrace.New(opts...)
	if err != nil {
		return err
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return err
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	tracer = otel.Tracer(serviceName)
	return nil
}

// Shutdown flushes pending spans.
func Shutdown(ctx context.Context) error {
	if tracerProvider == nil {
		return nil
	}
	return tracerProvider.Shutdown(ctx)
}

// StartSpan opens a span, or returns the current one untouched when tracing
// is off.
func StartSpan(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if !enabled || tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, spanName, opts...)
}

// StartStageSpan opens a span for one pipeline stage, tagged with the stage
// name so a run's five stages group under the pipeline trace.
func StartStageSpan(ctx context.Context, stage string) (context.Context, trace.Span) {
	return StartSpan(ctx, "pipeline.stage."+stage,
		trace.WithAttributes(attribute.String("stage", stage)))
}

func Enabled() bool {
	return enabled
}

// GetTraceFields returns the active trace and span IDs for log correlation.
func GetTraceFields(ctx context.Context) (traceID, spanID string, ok bool) {
	if !enabled {
		return "", "", false
	}
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return "", "", false
	}
	return sc.TraceID().String(), sc.SpanID().String(), true
}
