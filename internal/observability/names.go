// Package observability provides structured logging context, OpenTelemetry metrics and tracing for the explorer API.
package observability

// Metric names (Prometheus / OpenTelemetry).
const (
	MetricNameHTTPRequests            = "explorer_http_requests_total"
	MetricNameHTTPDuration            = "explorer_http_request_duration_seconds"
	MetricNameSearches                = "explorer_searches_total"
	MetricNameSearchDuration          = "explorer_search_duration_seconds"
	MetricNameSearchResults           = "explorer_search_results"
	MetricNameEmbeddingRequests       = "explorer_embedding_requests_total"
	MetricNameEmbeddingDuration       = "explorer_embedding_duration_seconds"
	MetricNameEmbeddingProviderErrors = "explorer_embedding_provider_errors_total"
	MetricNameCacheLookups            = "explorer_cache_lookups_total"
	MetricNameRequestBodyTooLarge     = "explorer_request_body_too_large_total"
)

// Attribute keys.
const (
	AttrMethod      = "method"
	AttrRoute       = "route"
	AttrStatusClass = "status_class"
	AttrOperation   = "operation"
	AttrOutcome     = "outcome"
	AttrProvider    = "provider"
	AttrReason      = "reason"
	AttrStatus      = "status"
	AttrCache       = "cache"
	AttrResult      = "result"
)

// Search operations.
const (
	OperationQuery   = "query"
	OperationSimilar = "similar"
)

// Search outcomes.
const (
	OutcomeSuccess              = "success"
	OutcomeValidationError      = "validation_error"
	OutcomeNotFound             = "not_found"
	OutcomeEmbeddingUnavailable = "embedding_unavailable"
	OutcomeInternalError        = "internal_error"
)

// AllowedSearchOperations for explorer_searches_total and explorer_search_duration_seconds.
var AllowedSearchOperations = map[string]bool{
	OperationQuery:   true,
	OperationSimilar: true,
}

// AllowedSearchOutcomes for explorer_searches_total.
var AllowedSearchOutcomes = map[string]bool{
	OutcomeSuccess:              true,
	OutcomeValidationError:      true,
	OutcomeNotFound:             true,
	OutcomeEmbeddingUnavailable: true,
	OutcomeInternalError:        true,
}

// AllowedEmbeddingProviders for the provider label.
var AllowedEmbeddingProviders = map[string]bool{
	"voyage": true,
	"openai": true,
	"google": true,
	"mock":   true,
}

// AllowedEmbeddingProviderReasons for explorer_embedding_provider_errors_total.
var AllowedEmbeddingProviderReasons = map[string]bool{
	"timeout":            true,
	"canceled":           true,
	"rate_limited":       true,
	"provider_error":     true,
	"dimension_mismatch": true,
}

// AllowedEmbeddingStatuses for explorer_embedding_requests_total and explorer_embedding_duration_seconds.
var AllowedEmbeddingStatuses = map[string]bool{
	"success": true,
	"error":   true,
}

// AllowedCacheNames for the cache label.
var AllowedCacheNames = map[string]bool{
	"search_query_embedding": true,
}

// NormalizeReason returns reason if in allowed, otherwise "other".
func NormalizeReason(reason string, allowed map[string]bool) string {
	if allowed[reason] {
		return reason
	}

	return "other"
}

// NormalizeCacheName returns name if it is a known cache, otherwise "other".
func NormalizeCacheName(name string) string {
	return NormalizeReason(name, AllowedCacheNames)
}

// StatusClass maps an HTTP status code to 1xx, 2xx, 3xx, 4xx or 5xx.
func StatusClass(status int) string {
	switch {
	case status >= 600:
		return "unknown"
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	case status >= 100:
		return "1xx"
	default:
		return "unknown"
	}
}
