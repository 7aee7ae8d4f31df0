package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/formbricks/explorer/internal/api/response"
	"github.com/formbricks/explorer/internal/api/validation"
	"github.com/formbricks/explorer/internal/datatypes"
	"github.com/formbricks/explorer/internal/models"
	"github.com/formbricks/explorer/internal/ranking"
)

// Paging defaults applied when a request omits limit or asks for more than the maximum.
const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

// SearchService defines the interface for semantic search and similar transcripts.
type SearchService interface {
	Search(ctx context.Context, query string, filters models.SearchFilters, offset, limit int) (ranking.Page, error)
	Similar(ctx context.Context, id string, filters models.SearchFilters, offset, limit int) (ranking.Page, error)
}

// PageLimits bounds the result window of search requests.
type PageLimits struct {
	Default int
	Max     int
}

// SearchHandler handles HTTP requests for semantic search and similar transcripts.
type SearchHandler struct {
	service SearchService
	limits  PageLimits
}

// NewSearchHandler creates a new search handler. Non-positive limits fall back to the package defaults.
func NewSearchHandler(service SearchService, limits PageLimits) *SearchHandler {
	if limits.Max <= 0 {
		limits.Max = MaxSearchLimit
	}

	if limits.Default <= 0 {
		limits.Default = DefaultSearchLimit
	}

	limits.Default = min(limits.Default, limits.Max)

	return &SearchHandler{service: service, limits: limits}
}

// Search handles POST /api/search.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := validation.DecodeJSONBody(r, &req); err != nil {
		if errors.Is(err, validation.ErrBodyTooLarge) {
			response.RespondPayloadTooLarge(w, err.Error())

			return
		}

		response.RespondBadRequest(w, err.Error())

		return
	}

	req.Split, req.Sentiment, req.Industry = blankToNil(req.Split), blankToNil(req.Sentiment), blankToNil(req.Industry)

	if err := validation.ValidateStruct(&req); err != nil {
		validation.RespondValidationError(w, err)

		return
	}

	filters, err := buildFilters(req.Split, req.Sentiment, req.Industry, req.MinScore)
	if err != nil {
		response.RespondBadRequest(w, err.Error())

		return
	}

	offset, limit := h.window(req.Offset, req.Limit)

	page, err := h.service.Search(r.Context(), req.Query, filters, offset, limit)
	if err != nil {
		response.RespondServiceError(w, r, err)

		return
	}

	response.RespondJSON(w, http.StatusOK, toSearchResponse(page, offset, limit))
}

// Similar handles GET /api/transcript/{id}/similar.
func (h *SearchHandler) Similar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.RespondBadRequest(w, "Transcript ID is required")

		return
	}

	var params models.SimilarTranscriptsFilters
	if err := validation.DecodeQueryParams(r, &params); err != nil {
		response.RespondBadRequest(w, err.Error())

		return
	}

	params.Split, params.Sentiment, params.Industry =
		blankToNil(params.Split), blankToNil(params.Sentiment), blankToNil(params.Industry)

	if err := validation.ValidateStruct(&params); err != nil {
		validation.RespondValidationError(w, err)

		return
	}

	filters, err := buildFilters(params.Split, params.Sentiment, params.Industry, params.MinScore)
	if err != nil {
		response.RespondBadRequest(w, err.Error())

		return
	}

	offset, limit := h.window(params.Offset, params.Limit)

	page, err := h.service.Similar(r.Context(), id, filters, offset, limit)
	if err != nil {
		response.RespondServiceError(w, r, err)

		return
	}

	response.RespondJSON(w, http.StatusOK, toSearchResponse(page, offset, limit))
}

// window applies the paging defaults. Validation has already rejected non-positive limits
// and negative offsets.
func (h *SearchHandler) window(offset, limit *int) (int, int) {
	o := 0
	if offset != nil {
		o = *offset
	}

	l := h.limits.Default
	if limit != nil {
		l = min(*limit, h.limits.Max)
	}

	return o, l
}

// blankToNil treats an empty or whitespace-only filter value as absent.
func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}

	return s
}

func buildFilters(split, sentiment, industry *string, minScore *float64) (models.SearchFilters, error) {
	filters := models.SearchFilters{
		Sentiment: sentiment,
		Industry:  industry,
		MinScore:  minScore,
	}

	if split != nil {
		s, err := datatypes.ParseSplit(*split)
		if err != nil {
			return models.SearchFilters{}, err
		}

		filters.Split = &s
	}

	return filters, nil
}

func toSearchResponse(page ranking.Page, offset, limit int) models.SearchResponse {
	results := page.Results
	if results == nil {
		results = []models.ResultRecord{}
	}

	return models.SearchResponse{
		Results: results,
		Total:   page.Total,
		Offset:  offset,
		Limit:   limit,
	}
}
