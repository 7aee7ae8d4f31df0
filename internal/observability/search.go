package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// SearchMetrics records semantic search outcomes.
type SearchMetrics interface {
	RecordSearch(ctx context.Context, operation, outcome string, duration time.Duration)
	RecordResults(ctx context.Context, operation string, count int)
}

type searchMetrics struct {
	searches metric.Int64Counter
	duration metric.Float64Histogram
	results  metric.Int64Histogram
}

// NewSearchMetrics creates SearchMetrics. Returns (nil, nil) when meter is nil (metrics disabled).
func NewSearchMetrics(meter metric.Meter) (SearchMetrics, error) {
	if meter == nil {
		//nolint:nilnil // intentional: callers use "if metrics != nil" when metrics disabled
		return nil, nil
	}

	searches, err := meter.Int64Counter(
		MetricNameSearches,
		metric.WithDescription("Total searches by operation (query, similar) and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("create searches counter: %w", err)
	}

	duration, err := meter.Float64Histogram(
		MetricNameSearchDuration,
		metric.WithDescription("End-to-end search duration including query embedding (seconds)"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create search duration histogram: %w", err)
	}

	results, err := meter.Int64Histogram(
		MetricNameSearchResults,
		metric.WithDescription("Number of results returned per search page"),
	)
	if err != nil {
		return nil, fmt.Errorf("create search results histogram: %w", err)
	}

	return &searchMetrics{searches: searches, duration: duration, results: results}, nil
}

func (s *searchMetrics) RecordSearch(ctx context.Context, operation, outcome string, duration time.Duration) {
	op := attribute.String(AttrOperation, NormalizeReason(operation, AllowedSearchOperations))
	s.searches.Add(ctx, 1, metric.WithAttributes(op,
		attribute.String(AttrOutcome, NormalizeReason(outcome, AllowedSearchOutcomes))))
	s.duration.Record(ctx, duration.Seconds(), metric.WithAttributes(op))
}

func (s *searchMetrics) RecordResults(ctx context.Context, operation string, count int) {
	s.results.Record(ctx, int64(count), metric.WithAttributes(
		attribute.String(AttrOperation, NormalizeReason(operation, AllowedSearchOperations))))
}
