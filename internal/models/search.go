package models

import "github.com/formbricks/explorer/internal/datatypes"

// SearchFilters are the categorical predicates applied to a ranking. Nil fields are no-ops.
type SearchFilters struct {
	Split     *datatypes.Split
	Sentiment *string
	Industry  *string
	// MinScore drops results scoring below it. Nil means no threshold; negative scores are kept.
	MinScore *float64
}

// ResultRecord is one result card of a semantic search.
type ResultRecord struct {
	TranscriptID string          `json:"transcript_id"`
	Score        float64         `json:"score"`
	Split        datatypes.Split `json:"split"`
	Industry     *string         `json:"industry"`
	Sentiment    *string         `json:"sentiment"`
	JobTitle     *string         `json:"job_title"`
	Snippet      string          `json:"snippet"`
}

// SearchRequest is the body of POST /api/search.
// Limit and Offset are pointers so an absent value can be told apart from an explicit zero.
type SearchRequest struct {
	Query     string   `json:"query"`
	Limit     *int     `json:"limit,omitempty"     validate:"omitnil,gt=0"`
	Offset    *int     `json:"offset,omitempty"    validate:"omitnil,gte=0"`
	Split     *string  `json:"split,omitempty"     validate:"omitempty,split"`
	Sentiment *string  `json:"sentiment,omitempty" validate:"omitempty,max=64,no_null_bytes"`
	Industry  *string  `json:"industry,omitempty"  validate:"omitempty,max=255,no_null_bytes"`
	MinScore  *float64 `json:"min_score,omitempty" validate:"omitnil,gte=-1,lte=1"`
}

// SimilarTranscriptsFilters are the query parameters of GET /api/transcript/{id}/similar.
type SimilarTranscriptsFilters struct {
	Limit     *int     `form:"limit"     validate:"omitnil,gt=0"`
	Offset    *int     `form:"offset"    validate:"omitnil,gte=0"`
	Split     *string  `form:"split"     validate:"omitempty,split"`
	Sentiment *string  `form:"sentiment" validate:"omitempty,max=64,no_null_bytes"`
	Industry  *string  `form:"industry"  validate:"omitempty,max=255,no_null_bytes"`
	MinScore  *float64 `form:"min_score" validate:"omitnil,gte=-1,lte=1"`
}

// SearchResponse is the response of POST /api/search and GET /api/transcript/{id}/similar.
type SearchResponse struct {
	Results []ResultRecord `json:"results"`
	Total   int            `json:"total"`
	Offset  int            `json:"offset"`
	Limit   int            `json:"limit"`
}
