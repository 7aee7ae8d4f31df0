package service

import (
	"github.com/formbricks/explorer/internal/datatypes"
	"github.com/formbricks/explorer/internal/models"
)

// TranscriptsService serves transcript browsing: list by split and point lookup.
type TranscriptsService struct {
	corpus Corpus
}

// NewTranscriptsService creates a TranscriptsService.
func NewTranscriptsService(corpus Corpus) *TranscriptsService {
	return &TranscriptsService{corpus: corpus}
}

// ListTranscripts returns the list projection of every transcript in the split (all when split is nil),
// in ingestion order.
func (s *TranscriptsService) ListTranscripts(split *datatypes.Split) *models.ListTranscriptsResponse {
	transcripts := s.corpus.Filter(split)
	summaries := make([]models.TranscriptSummary, len(transcripts))

	for i, t := range transcripts {
		summaries[i] = models.NewTranscriptSummary(t)
	}

	return &models.ListTranscriptsResponse{
		Transcripts: summaries,
		Total:       len(summaries),
	}
}

// GetTranscript returns the full record, or a NotFoundError.
func (s *TranscriptsService) GetTranscript(id string) (*models.Transcript, error) {
	//nolint:wrapcheck // return as-is so handler can map to 404
	return s.corpus.Get(id)
}
