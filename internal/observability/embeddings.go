package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// EmbeddingMetrics records query embedding calls to the external provider.
type EmbeddingMetrics interface {
	RecordEmbedding(ctx context.Context, provider, status string, duration time.Duration)
	RecordProviderError(ctx context.Context, provider, reason string)
}

// embeddingMetrics implements EmbeddingMetrics.
type embeddingMetrics struct {
	requests       metric.Int64Counter
	duration       metric.Float64Histogram
	providerErrors metric.Int64Counter
}

// NewEmbeddingMetrics creates EmbeddingMetrics. Returns (nil, nil) when meter is nil (metrics disabled).
func NewEmbeddingMetrics(meter metric.Meter) (EmbeddingMetrics, error) {
	if meter == nil {
		//nolint:nilnil // intentional: callers use "if metrics != nil" when metrics disabled
		return nil, nil
	}

	requests, err := meter.Int64Counter(
		MetricNameEmbeddingRequests,
		metric.WithDescription("Total query embedding requests by provider and status"),
	)
	if err != nil {
		return nil, fmt.Errorf("create embedding requests counter: %w", err)
	}

	duration, err := meter.Float64Histogram(
		MetricNameEmbeddingDuration,
		metric.WithDescription("Query embedding provider latency (seconds)"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create embedding duration histogram: %w", err)
	}

	providerErrors, err := meter.Int64Counter(
		MetricNameEmbeddingProviderErrors,
		metric.WithDescription("Total query embedding failures by reason (timeout, rate_limited, provider_error, dimension_mismatch)"),
	)
	if err != nil {
		return nil, fmt.Errorf("create embedding provider errors counter: %w", err)
	}

	return &embeddingMetrics{
		requests:       requests,
		duration:       duration,
		providerErrors: providerErrors,
	}, nil
}

func (e *embeddingMetrics) RecordEmbedding(ctx context.Context, provider, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(AttrProvider, NormalizeReason(provider, AllowedEmbeddingProviders)),
		attribute.String(AttrStatus, NormalizeReason(status, AllowedEmbeddingStatuses)),
	)
	e.requests.Add(ctx, 1, attrs)
	e.duration.Record(ctx, duration.Seconds(), attrs)
}

func (e *embeddingMetrics) RecordProviderError(ctx context.Context, provider, reason string) {
	e.providerErrors.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrProvider, NormalizeReason(provider, AllowedEmbeddingProviders)),
		attribute.String(AttrReason, NormalizeReason(reason, AllowedEmbeddingProviderReasons)),
	))
}
