// Package corpus holds the immutable in-memory snapshot of the transcript and embedding datasets.
package corpus

import (
	"github.com/formbricks/explorer/internal/datatypes"
	"github.com/formbricks/explorer/internal/explorererrors"
	"github.com/formbricks/explorer/internal/models"
	"github.com/formbricks/explorer/internal/ranking"
)

// Store is the joined corpus. It has no mutation API: once Load returns, it is safe for
// concurrent readers without locking. Slices returned by its accessors must not be modified.
type Store struct {
	transcripts []*models.Transcript
	byID        map[string]*models.Transcript

	// candidates holds every transcript that has a vector, in ingestion order.
	candidates []ranking.Candidate
	vectorIdx  map[string]int

	dimension int
	model     string
	report    LoadReport
}

// LoadReport describes the drift tolerated while joining the datasets.
type LoadReport struct {
	TranscriptsFile   string `json:"transcripts_file"`
	EmbeddingsFile    string `json:"embeddings_file"`
	DeclaredDimension int    `json:"declared_dimension"`
	DeclaredCount     int    `json:"declared_count"`
	// MissingVectors lists transcripts with no embedding; they are excluded from search.
	MissingVectors []string `json:"missing_vectors"`
	// UnmatchedVectors lists embedding ids with no transcript.
	UnmatchedVectors []string `json:"unmatched_vectors"`
	// DimensionMismatches lists transcripts whose vector length differs from the corpus dimension.
	DimensionMismatches []string `json:"dimension_mismatches"`
}

// HasDrift reports whether any record was skipped during the join.
func (r LoadReport) HasDrift() bool {
	return len(r.MissingVectors) > 0 || len(r.UnmatchedVectors) > 0 || len(r.DimensionMismatches) > 0
}

// Get returns the transcript with the given id.
func (s *Store) Get(id string) (*models.Transcript, error) {
	t, ok := s.byID[id]
	if !ok {
		return nil, explorererrors.NewNotFoundError("transcript", "Transcript not found")
	}

	return t, nil
}

// All returns every transcript in ingestion order.
func (s *Store) All() []*models.Transcript {
	return s.transcripts
}

// Filter returns the transcripts of the given split in ingestion order. A nil split returns all.
func (s *Store) Filter(split *datatypes.Split) []*models.Transcript {
	if split == nil {
		return s.transcripts
	}

	out := make([]*models.Transcript, 0, len(s.transcripts))
	for _, t := range s.transcripts {
		if t.Split == *split {
			out = append(out, t)
		}
	}

	return out
}

// VectorFor returns the embedding joined to the transcript id.
func (s *Store) VectorFor(id string) ([]float32, bool) {
	i, ok := s.vectorIdx[id]
	if !ok {
		return nil, false
	}

	return s.candidates[i].Vector, true
}

// Candidates returns the searchable transcripts with their vectors and norms, in ingestion order.
func (s *Store) Candidates() []ranking.Candidate {
	return s.candidates
}

// Dimension is the vector length shared by every searchable transcript.
func (s *Store) Dimension() int {
	return s.dimension
}

// Model is the embedding model named in the embedding dataset, if any.
func (s *Store) Model() string {
	return s.model
}

// Len is the number of transcripts.
func (s *Store) Len() int {
	return len(s.transcripts)
}

// EmbeddedCount is the number of transcripts with a joined vector.
func (s *Store) EmbeddedCount() int {
	return len(s.candidates)
}

// Report returns the drift recorded while loading.
func (s *Store) Report() LoadReport {
	return s.report
}
