package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	prometheusexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const (
	meterScope       = "github.com/formbricks/explorer/internal/observability"
	cardinalityLimit = 2000
)

// durationHistogramBounds are second-based buckets. OTel default boundaries are millisecond-oriented.
var durationHistogramBounds = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// resultCountBounds bucket the number of results per page.
var resultCountBounds = []float64{0, 1, 5, 10, 20, 50, 100}

// MeterProviderConfig holds configuration for creating the MeterProvider.
type MeterProviderConfig struct {
	// ServiceName is used in the resource (default: interview-explorer).
	ServiceName string
	// OTLPExporter additionally pushes metrics over OTLP/HTTP when set to "otlp".
	OTLPExporter string
}

// MeterProvider bundles the SDK provider, the /metrics handler and the meter used for instruments.
type MeterProvider struct {
	Provider *sdkmetric.MeterProvider
	Handler  http.Handler
	Meter    metric.Meter
}

// NewMeterProvider creates a MeterProvider with a Prometheus exporter on its own registry.
// When cfg.OTLPExporter is "otlp" a periodic OTLP/HTTP reader is added; the SDK reads
// OTEL_EXPORTER_OTLP_ENDPOINT from the environment. Caller must call Shutdown on exit.
func NewMeterProvider(ctx context.Context, cfg MeterProviderConfig) (*MeterProvider, error) {
	res, err := newResource(cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()

	exporter, err := prometheusexporter.New(prometheusexporter.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	opts := []sdkmetric.Option{
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
		sdkmetric.WithCardinalityLimit(cardinalityLimit),
		sdkmetric.WithView(
			sdkmetric.NewView(
				sdkmetric.Instrument{Name: "explorer_*_duration_seconds"},
				sdkmetric.Stream{Aggregation: sdkmetric.AggregationExplicitBucketHistogram{Boundaries: durationHistogramBounds}},
			),
			sdkmetric.NewView(
				sdkmetric.Instrument{Name: MetricNameSearchResults},
				sdkmetric.Stream{Aggregation: sdkmetric.AggregationExplicitBucketHistogram{Boundaries: resultCountBounds}},
			),
		),
	}

	if cfg.OTLPExporter == "otlp" {
		exp, err := otlpmetrichttp.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("create OTLP metric exporter: %w", err)
		}

		const metricExportInterval = 60 * time.Second

		opts = append(opts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(metricExportInterval))))
	}

	mp := sdkmetric.NewMeterProvider(opts...)

	return &MeterProvider{
		Provider: mp,
		Handler:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Meter:    mp.Meter(meterScope),
	}, nil
}

// Shutdown flushes and shuts down the provider. Safe to call on nil.
func (p *MeterProvider) Shutdown(ctx context.Context) error {
	if p == nil || p.Provider == nil {
		return nil
	}

	if err := p.Provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("meter provider shutdown: %w", err)
	}

	return nil
}

// HTTPMetrics records request count and duration per route, and requests whose body hit the size cap.
type HTTPMetrics interface {
	RecordRequest(ctx context.Context, method, route, statusClass string, duration time.Duration)
	RecordRequestBodyTooLarge(ctx context.Context)
}

type httpMetrics struct {
	requests     metric.Int64Counter
	duration     metric.Float64Histogram
	bodyTooLarge metric.Int64Counter
}

// NewHTTPMetrics creates HTTPMetrics. Returns (nil, nil) when meter is nil (metrics disabled).
func NewHTTPMetrics(meter metric.Meter) (HTTPMetrics, error) {
	if meter == nil {
		//nolint:nilnil // intentional: callers use "if metrics != nil" when metrics disabled
		return nil, nil
	}

	requests, err := meter.Int64Counter(
		MetricNameHTTPRequests,
		metric.WithDescription("Total HTTP requests by method, route and status class"),
	)
	if err != nil {
		return nil, fmt.Errorf("create http requests counter: %w", err)
	}

	duration, err := meter.Float64Histogram(
		MetricNameHTTPDuration,
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create http duration histogram: %w", err)
	}

	bodyTooLarge, err := meter.Int64Counter(
		MetricNameRequestBodyTooLarge,
		metric.WithDescription("Requests answered with 413 because the body exceeded MAX_REQUEST_BODY_BYTES"),
	)
	if err != nil {
		return nil, fmt.Errorf("create request body too large counter: %w", err)
	}

	return &httpMetrics{requests: requests, duration: duration, bodyTooLarge: bodyTooLarge}, nil
}

func (m *httpMetrics) RecordRequestBodyTooLarge(ctx context.Context) {
	m.bodyTooLarge.Add(ctx, 1)
}

func (m *httpMetrics) RecordRequest(ctx context.Context, method, route, statusClass string, duration time.Duration) {
	attrs := attribute.NewSet(
		attribute.String(AttrMethod, normalizeMethod(method)),
		attribute.String(AttrRoute, route),
		attribute.String(AttrStatusClass, statusClass),
	)
	m.requests.Add(ctx, 1, metric.WithAttributeSet(attrs))

	durAttrs := attribute.NewSet(
		attribute.String(AttrMethod, normalizeMethod(method)),
		attribute.String(AttrRoute, route),
	)
	m.duration.Record(ctx, duration.Seconds(), metric.WithAttributeSet(durAttrs))
}

// normalizeMethod maps the request method to a bounded set.
func normalizeMethod(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions:
		return method
	default:
		return "other"
	}
}
