package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/formbricks/explorer/internal/explorererrors"
	"github.com/formbricks/explorer/internal/models"
	"github.com/formbricks/explorer/internal/observability"
	"github.com/formbricks/explorer/internal/ranking"
	"github.com/formbricks/explorer/pkg/cache"
)

const searchQueryEmbeddingCacheName = "search_query_embedding"

// DefaultEmbeddingTimeout bounds a query embedding when SearchServiceParams.Timeout is unset.
const DefaultEmbeddingTimeout = 10 * time.Second

// ErrEmptyQuery is returned for a query that is empty after trimming. It is a validation error.
var ErrEmptyQuery = explorererrors.NewValidationError("query", "query is required and must be non-empty")

// QueryCache caches query embeddings keyed by the trimmed query text.
type QueryCache = cache.LoaderCache[string, []float32]

// NewQueryCache creates a query embedding cache holding at most size entries.
func NewQueryCache(size int) (*QueryCache, error) {
	c, err := cache.NewLoaderCache[string, []float32](size, strings.TrimSpace)
	if err != nil {
		return nil, fmt.Errorf("create query cache: %w", err)
	}

	return c, nil
}

// SearchService runs semantic search over the corpus: embed the query, rank every embedded
// transcript, filter and paginate.
type SearchService struct {
	corpus          Corpus
	embeddingClient EmbeddingClient
	provider        string
	model           string
	timeout         time.Duration
	limiter         *rate.Limiter
	queryCache      *QueryCache
	cacheMetrics    observability.CacheMetrics
	embedMetrics    observability.EmbeddingMetrics
	searchMetrics   observability.SearchMetrics
	logger          *slog.Logger
}

// SearchServiceParams configures SearchService. Limiter, QueryCache and the metrics may be nil.
type SearchServiceParams struct {
	Corpus          Corpus
	EmbeddingClient EmbeddingClient
	// Provider and Model label logs and metrics.
	Provider string
	Model    string
	// Timeout bounds each provider call, including the wait for a rate limiter token.
	Timeout          time.Duration
	Limiter          *rate.Limiter
	QueryCache       *QueryCache
	CacheMetrics     observability.CacheMetrics
	EmbeddingMetrics observability.EmbeddingMetrics
	SearchMetrics    observability.SearchMetrics
	Logger           *slog.Logger
}

// NewSearchService creates a SearchService.
func NewSearchService(p SearchServiceParams) *SearchService {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultEmbeddingTimeout
	}

	return &SearchService{
		corpus:          p.Corpus,
		embeddingClient: p.EmbeddingClient,
		provider:        p.Provider,
		model:           p.Model,
		timeout:         timeout,
		limiter:         p.Limiter,
		queryCache:      p.QueryCache,
		cacheMetrics:    p.CacheMetrics,
		embedMetrics:    p.EmbeddingMetrics,
		searchMetrics:   p.SearchMetrics,
		logger:          logger,
	}
}

// Search embeds query and returns the requested window of the filtered ranking.
// Returns a ValidationError without calling the provider when the trimmed query is empty
// (ErrEmptyQuery) or the window is invalid, and an EmbeddingUnavailableError when the query cannot
// be embedded.
func (s *SearchService) Search(
	ctx context.Context, query string, filters models.SearchFilters, offset, limit int,
) (page ranking.Page, err error) {
	start := time.Now()
	defer func() { s.recordSearch(ctx, observability.OperationQuery, start, page, err) }()

	query = strings.TrimSpace(query)
	if query == "" {
		return ranking.Page{}, ErrEmptyQuery
	}

	if err := validateWindow(offset, limit); err != nil {
		return ranking.Page{}, err
	}

	embedding, err := s.embedQuery(ctx, query)
	if err != nil {
		s.logger.ErrorContext(ctx, "semantic search: create embedding failed",
			"error", err, "provider", s.provider, "model", s.model)

		return ranking.Page{}, err
	}

	ranked, err := ranking.Rank(embedding, s.corpus.Candidates())
	if err != nil {
		return ranking.Page{}, fmt.Errorf("rank corpus: %w", err)
	}

	page = ranking.Select(ranked, filters, offset, limit)

	s.logger.DebugContext(ctx, "semantic search completed",
		"query_len", len(query), "total", page.Total, "returned", len(page.Results),
		"offset", offset, "limit", limit, "duration", time.Since(start))

	return page, nil
}

// Similar ranks the corpus against the stored vector of transcript id, excluding the transcript itself.
// Returns a NotFoundError when the id is unknown or has no embedding. The provider is never called.
func (s *SearchService) Similar(
	ctx context.Context, id string, filters models.SearchFilters, offset, limit int,
) (page ranking.Page, err error) {
	start := time.Now()
	defer func() { s.recordSearch(ctx, observability.OperationSimilar, start, page, err) }()

	if err := validateWindow(offset, limit); err != nil {
		return ranking.Page{}, err
	}

	if _, err := s.corpus.Get(id); err != nil {
		//nolint:wrapcheck // return as-is so handler can map to 404
		return ranking.Page{}, err
	}

	embedding, ok := s.corpus.VectorFor(id)
	if !ok {
		s.logger.DebugContext(ctx, "similar transcripts: no embedding for transcript", "transcript_id", id)

		return ranking.Page{}, explorererrors.NewNotFoundError("embedding", "Transcript has no embedding")
	}

	ranked, err := ranking.Rank(embedding, s.corpus.Candidates())
	if err != nil {
		return ranking.Page{}, fmt.Errorf("rank corpus: %w", err)
	}

	ranked = slices.DeleteFunc(ranked, func(sc ranking.Scored) bool {
		return sc.Transcript.TranscriptID == id
	})

	return ranking.Select(ranked, filters, offset, limit), nil
}

// validateWindow rejects a non-positive limit or a negative offset.
func validateWindow(offset, limit int) error {
	if limit <= 0 {
		return explorererrors.NewValidationError("limit", "limit must be greater than 0")
	}

	if offset < 0 {
		return explorererrors.NewValidationError("offset", "offset must be 0 or greater")
	}

	return nil
}

// embedQuery returns the query embedding, through the cache when one is configured.
func (s *SearchService) embedQuery(ctx context.Context, query string) ([]float32, error) {
	if s.queryCache == nil {
		return s.loadEmbedding(ctx, query)
	}

	vec, lookup, err := s.queryCache.Get(ctx, query, s.loadEmbedding)
	if s.cacheMetrics != nil {
		s.cacheMetrics.RecordLookup(ctx, searchQueryEmbeddingCacheName, lookup)
	}

	if err != nil {
		// The caller's own context ended while it waited on a shared load.
		if !errors.Is(err, explorererrors.ErrEmbeddingUnavailable) {
			return nil, explorererrors.NewEmbeddingUnavailableError("query embedding failed", err)
		}

		return nil, err
	}

	return vec, nil
}

// loadEmbedding calls the provider once, bounded by the embedding timeout. Every failure is an
// EmbeddingUnavailableError; a vector of the wrong length is one too, and is never cached.
func (s *SearchService) loadEmbedding(ctx context.Context, query string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			s.recordProviderError(ctx, "rate_limited")

			return nil, explorererrors.NewEmbeddingUnavailableError("embedding provider rate limit", err)
		}
	}

	start := time.Now()
	vec, err := s.embeddingClient.CreateEmbedding(ctx, query)

	if s.embedMetrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}

		s.embedMetrics.RecordEmbedding(ctx, s.provider, status, time.Since(start))
	}

	if err != nil {
		reason := "provider_error"

		switch {
		case errors.Is(err, context.DeadlineExceeded):
			reason = "timeout"
		case errors.Is(err, context.Canceled):
			reason = "canceled"
		}

		s.recordProviderError(ctx, reason)

		return nil, explorererrors.NewEmbeddingUnavailableError("query embedding failed", err)
	}

	if want := s.corpus.Dimension(); len(vec) != want {
		s.recordProviderError(ctx, "dimension_mismatch")

		return nil, explorererrors.NewEmbeddingUnavailableError("query embedding failed",
			fmt.Errorf("%w: provider returned %d, corpus has %d", ranking.ErrDimensionMismatch, len(vec), want))
	}

	return vec, nil
}

func (s *SearchService) recordProviderError(ctx context.Context, reason string) {
	if s.embedMetrics != nil {
		s.embedMetrics.RecordProviderError(ctx, s.provider, reason)
	}
}

func (s *SearchService) recordSearch(ctx context.Context, operation string, start time.Time, page ranking.Page, err error) {
	if s.searchMetrics == nil {
		return
	}

	s.searchMetrics.RecordSearch(ctx, operation, searchOutcome(err), time.Since(start))

	if err == nil {
		s.searchMetrics.RecordResults(ctx, operation, len(page.Results))
	}
}

// searchOutcome maps a search error to its metric outcome label.
func searchOutcome(err error) string {
	switch {
	case err == nil:
		return observability.OutcomeSuccess
	case errors.Is(err, explorererrors.ErrValidation):
		return observability.OutcomeValidationError
	case errors.Is(err, explorererrors.ErrNotFound):
		return observability.OutcomeNotFound
	case errors.Is(err, explorererrors.ErrEmbeddingUnavailable):
		return observability.OutcomeEmbeddingUnavailable
	default:
		return observability.OutcomeInternalError
	}
}
