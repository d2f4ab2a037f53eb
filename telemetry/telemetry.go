// Package telemetry wires distributed tracing for the planning pipelines.
// Tracing is purely additive: it never affects pipeline control flow, and
// until Start is called with an endpoint every span is a no-op.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Transport protocols for the OTLP exporter.
const (
	ProtocolGRPC = "grpc"
	ProtocolHTTP = "http"
)

const instrumentationName = "github.com/tripweaver-ai/tripweaver"

// TracerProvider is the global tracer provider. No-op until Start succeeds.
var TracerProvider trace.TracerProvider = noop.NewTracerProvider()

// Tracer is the tracer the pipelines create spans from.
var Tracer trace.Tracer = TracerProvider.Tracer(instrumentationName)

type options struct {
	serviceName string
	endpoint    string
	protocol    string
}

// Option configures Start.
type Option func(*options)

// WithServiceName sets the service name reported on every span.
func WithServiceName(name string) Option {
	return func(o *options) { o.serviceName = name }
}

// WithEndpoint sets the OTLP collector endpoint. Without it tracing stays
// disabled.
func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.endpoint = endpoint }
}

// WithProtocol selects the OTLP transport: "grpc" (default) or "http".
func WithProtocol(protocol string) Option {
	return func(o *options) { o.protocol = protocol }
}

// Start initializes the global tracer provider. The returned clean function
// flushes and shuts the provider down.
func Start(ctx context.Context, opts ...Option) (clean func() error, err error) {
	o := &options{
		serviceName: "tripweaver",
		protocol:    ProtocolGRPC,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.endpoint == "" {
		return func() error { return nil }, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(o.serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("create telemetry resource: %w", err)
	}

	var exporter sdktrace.SpanExporter
	switch o.protocol {
	case ProtocolHTTP:
		exporter, err = otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(o.endpoint), otlptracehttp.WithInsecure())
	default:
		exporter, err = otlptracegrpc.New(ctx, otlptracegrpc.WithEndpoint(o.endpoint), otlptracegrpc.WithInsecure())
	}
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	TracerProvider = provider
	Tracer = provider.Tracer(instrumentationName)

	return func() error {
		return provider.Shutdown(context.Background())
	}, nil
}
