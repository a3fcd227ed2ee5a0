package telemetry

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Metrics contains all the metrics instruments for a mesh worker
type Metrics struct {
	provider *sdkmetric.MeterProvider
	meter    metric.Meter

	// Time spent bootstrapping the queue pair mesh
	bootstrapHistogram metric.Float64Histogram

	// Work request and completion counters
	postCounter       metric.Int64Counter
	completionCounter metric.Int64Counter
	failureCounter    metric.Int64Counter
}

// NewMetrics creates a new metrics instance
func NewMetrics(ctx context.Context, instanceID, collectorAddr string) (*Metrics, error) {
	// Parse the collector address
	parsedURL, err := url.Parse(collectorAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse otel-collector-addr '%s': %w", collectorAddr, err)
	}

	// Determine exporter endpoint (host and port)
	exporterEndpoint := parsedURL.Host
	if parsedURL.Host == "" { // If host is empty (e.g. schemeless addr like "localhost:4317")
		if parsedURL.Path != "" && !strings.Contains(parsedURL.Path, "/") { // Path might contain host:port
			exporterEndpoint = parsedURL.Path
		} else if parsedURL.Opaque != "" && !strings.Contains(parsedURL.Opaque, "/") { // Opaque might contain host:port for some schemeless URIs
			exporterEndpoint = parsedURL.Opaque
		} else if collectorAddr != "" && !strings.Contains(collectorAddr, "/") && strings.Contains(collectorAddr, ":") { // Original addr as last resort if it looks like host:port
			exporterEndpoint = collectorAddr
		} else {
			return nil, fmt.Errorf("otel-collector-addr '%s' is missing a host or is not a valid schemeless address (e.g. localhost:4317)", collectorAddr)
		}
	}

	// Default scheme to grpc if not specified and we derived a valid endpoint
	if parsedURL.Scheme == "" {
		parsedURL.Scheme = "grpc"
	}

	// Create a resource that identifies this worker
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName("ibmesh-worker"),
			semconv.ServiceVersion("0.1.0"),
			semconv.ServiceInstanceID(instanceID),
		),
	)
	if err != nil {
		return nil, err
	}

	// Create OTLP exporter based on configuration
	var exporter sdkmetric.Exporter
	switch strings.ToLower(parsedURL.Scheme) {
	case "grpc":
		exporter, err = otlpmetricgrpc.New(
			ctx,
			otlpmetricgrpc.WithEndpoint(exporterEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
	case "grpcs":
		exporter, err = otlpmetricgrpc.New(
			ctx,
			otlpmetricgrpc.WithEndpoint(exporterEndpoint),
		)
	case "http", "https":
		options := []otlpmetrichttp.Option{
			otlpmetrichttp.WithEndpoint(exporterEndpoint),
		}
		if parsedURL.Scheme == "http" {
			options = append(options, otlpmetrichttp.WithInsecure())
		} // For https, secure transport is default
		exporter, err = otlpmetrichttp.New(ctx, options...)
	default:
		return nil, fmt.Errorf("unsupported OTLP exporter protocol scheme: '%s' in %s. Use 'grpc', 'grpcs', 'http', or 'https'", parsedURL.Scheme, collectorAddr)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter (%s://%s): %w", parsedURL.Scheme, exporterEndpoint, err)
	}

	// Create meter provider with the exporter
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(
				exporter,
				sdkmetric.WithInterval(10*time.Second),
			),
		),
	)

	// Set the global meter provider
	otel.SetMeterProvider(provider)

	// Get a meter
	meter := provider.Meter("github.com/ibmesh/ibmesh/worker")

	bootstrapHistogram, err := meter.Float64Histogram(
		"ibmesh.bootstrap_duration",
		metric.WithDescription("Time to connect the full queue pair mesh in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	postCounter, err := meter.Int64Counter(
		"ibmesh.posts",
		metric.WithDescription("Number of posted work requests"),
		metric.WithUnit("{count}"),
	)
	if err != nil {
		return nil, err
	}

	completionCounter, err := meter.Int64Counter(
		"ibmesh.completions",
		metric.WithDescription("Number of drained work completions"),
		metric.WithUnit("{count}"),
	)
	if err != nil {
		return nil, err
	}

	failureCounter, err := meter.Int64Counter(
		"ibmesh.completion_failures",
		metric.WithDescription("Number of failed work completions"),
		metric.WithUnit("{count}"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		provider:           provider,
		meter:              meter,
		bootstrapHistogram: bootstrapHistogram,
		postCounter:        postCounter,
		completionCounter:  completionCounter,
		failureCounter:     failureCounter,
	}, nil
}

// RecordBootstrap records the duration of the mesh bootstrap
func (m *Metrics) RecordBootstrap(ctx context.Context, d time.Duration, attributes ...metric.RecordOption) {
	m.bootstrapHistogram.Record(ctx, float64(d.Nanoseconds())/1_000_000.0, attributes...)
}

// RecordPost records one posted work request
func (m *Metrics) RecordPost(ctx context.Context, attributes ...metric.AddOption) {
	m.postCounter.Add(ctx, 1, attributes...)
}

// RecordCompletions records drained work completions
func (m *Metrics) RecordCompletions(ctx context.Context, n int, attributes ...metric.AddOption) {
	m.completionCounter.Add(ctx, int64(n), attributes...)
}

// RecordFailure records a failed work completion
func (m *Metrics) RecordFailure(ctx context.Context, attributes ...metric.AddOption) {
	m.failureCounter.Add(ctx, 1, attributes...)
}

// Shutdown stops the metrics provider
func (m *Metrics) Shutdown(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}
