// Package models defines the transcript corpus records and API payloads.
package models

import (
	"strings"

	"github.com/formbricks/explorer/internal/datatypes"
)

// UnknownValue is the sentinel the offline extraction writes when a field could not be determined.
const UnknownValue = "UNKNOWN"

// Message roles.
const (
	RoleAI   = "ai"
	RoleUser = "user"
)

// Message is one turn of an interview.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Transcript is one interview with its extracted and normalized metadata.
// Optional scalar fields are nil when absent from the dataset; "UNKNOWN" is kept as a present value.
type Transcript struct {
	TranscriptID string          `json:"transcript_id"`
	Split        datatypes.Split `json:"split"`
	Messages     []Message       `json:"messages"`

	// Extracted fields
	JobTitle           *string  `json:"job_title,omitempty"`
	ExperienceLevel    *string  `json:"experience_level,omitempty"`
	Sentiment          *string  `json:"sentiment,omitempty"`
	Industry           *string  `json:"industry,omitempty"`
	AIToolsMentioned   []string `json:"ai_tools_mentioned,omitempty"`
	PrimaryUseCases    []string `json:"primary_use_cases,omitempty"`
	KeyPainPoints      []string `json:"key_pain_points,omitempty"`
	LastProjectSummary *string  `json:"last_project_summary,omitempty"`

	// Normalized fields
	IndustryNormalized  *string  `json:"industry_normalized,omitempty"`
	JobCategory         *string  `json:"job_category,omitempty"`
	UseCaseCategories   []string `json:"use_case_categories,omitempty"`
	PainPointCategories []string `json:"pain_point_categories,omitempty"`
}

// TranscriptsFile is the on-disk envelope of the transcript dataset.
type TranscriptsFile struct {
	Transcripts []Transcript `json:"transcripts"`
}

// Known returns the trimmed value of an optional field and whether it carries information.
// Nil, blank, and the UNKNOWN sentinel are all reported as not known.
func Known(field *string) (string, bool) {
	if field == nil {
		return "", false
	}

	v := strings.TrimSpace(*field)
	if v == "" || v == UnknownValue {
		return "", false
	}

	return v, true
}

// TranscriptSummary is the list-view projection of a transcript.
type TranscriptSummary struct {
	TranscriptID string          `json:"transcript_id"`
	Split        datatypes.Split `json:"split"`
	MessageCount int             `json:"message_count"`
	JobTitle     *string         `json:"job_title"`
	Industry     *string         `json:"industry"`
	Sentiment    *string         `json:"sentiment"`
}

// NewTranscriptSummary builds the list-view projection of t.
func NewTranscriptSummary(t *Transcript) TranscriptSummary {
	return TranscriptSummary{
		TranscriptID: t.TranscriptID,
		Split:        t.Split,
		MessageCount: len(t.Messages),
		JobTitle:     t.JobTitle,
		Industry:     t.Industry,
		Sentiment:    t.Sentiment,
	}
}

// ListTranscriptsFilters are the query parameters of GET /api/transcripts.
type ListTranscriptsFilters struct {
	Split *string `form:"split" validate:"omitempty,split"`
}

// ListTranscriptsResponse is the response of GET /api/transcripts.
type ListTranscriptsResponse struct {
	Transcripts []TranscriptSummary `json:"transcripts"`
	Total       int                 `json:"total"`
}
