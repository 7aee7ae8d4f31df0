package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/formbricks/explorer/pkg/cache"
)

// Cache lookup results.
const (
	CacheResultHit       = "hit"
	CacheResultMiss      = "miss"
	CacheResultCoalesced = "coalesced"
)

// CacheMetrics counts loader cache lookups by cache and result.
type CacheMetrics interface {
	RecordLookup(ctx context.Context, cacheName string, lookup cache.Lookup)
}

type cacheMetrics struct {
	lookups metric.Int64Counter
}

// NewCacheMetrics creates CacheMetrics. Returns (nil, nil) when meter is nil (metrics disabled).
func NewCacheMetrics(meter metric.Meter) (CacheMetrics, error) {
	if meter == nil {
		//nolint:nilnil // callers check for nil when metrics are disabled
		return nil, nil
	}

	lookups, err := meter.Int64Counter(
		MetricNameCacheLookups,
		metric.WithDescription("Loader cache lookups. result=coalesced marks a miss whose provider call "+
			"served more than one concurrent request."),
	)
	if err != nil {
		return nil, fmt.Errorf("create cache lookups counter: %w", err)
	}

	return &cacheMetrics{lookups: lookups}, nil
}

// CacheResult maps a lookup to its result label.
func CacheResult(lookup cache.Lookup) string {
	switch {
	case lookup.Hit:
		return CacheResultHit
	case lookup.Shared:
		return CacheResultCoalesced
	default:
		return CacheResultMiss
	}
}

func (c *cacheMetrics) RecordLookup(ctx context.Context, cacheName string, lookup cache.Lookup) {
	c.lookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrCache, NormalizeCacheName(cacheName)),
		attribute.String(AttrResult, CacheResult(lookup)),
	))
}
