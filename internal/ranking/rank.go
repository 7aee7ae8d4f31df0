// Package ranking scores corpus vectors against a query vector and narrows the ranking into result pages.
//
// Ranking is an exhaustive O(n·d) scan with no index structure. That is fine for corpora of a few
// thousand transcripts; beyond the low tens of thousands an approximate nearest-neighbour index
// would be needed instead.
package ranking

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/formbricks/explorer/internal/models"
	"github.com/formbricks/explorer/pkg/embeddings"
)

// ErrDimensionMismatch is returned when the query vector and a corpus vector differ in length.
var ErrDimensionMismatch = errors.New("ranking: vector dimension mismatch")

// ErrEmptyQueryVector is returned when Rank is called with a zero-length query vector.
var ErrEmptyQueryVector = errors.New("ranking: query vector is empty")

// Candidate is a transcript with its embedding and the embedding's precomputed L2 norm.
type Candidate struct {
	Transcript *models.Transcript
	Vector     []float32
	Norm       float64
}

// NewCandidate builds a Candidate, computing the vector norm once.
func NewCandidate(t *models.Transcript, vector []float32) Candidate {
	return Candidate{Transcript: t, Vector: vector, Norm: embeddings.Norm(vector)}
}

// Scored is a transcript with its similarity to the query.
type Scored struct {
	Transcript *models.Transcript
	Score      float64
}

// cosineSimilarity returns dot(a, b) / (|a|·|b|). A zero vector on either side yields 0.
// Vectors of different lengths also yield 0; Rank rejects them before scoring.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	return cosine(a, embeddings.Norm(a), b, embeddings.Norm(b))
}

func cosine(a []float32, normA float64, b []float32, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}

	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}

	return dot / (normA * normB)
}

// Rank scores every candidate against query and returns them sorted by descending score.
// Equal scores keep candidate order, so identical queries always paginate identically.
// Scores are returned as computed: nothing is clamped to [0, 1].
func Rank(query []float32, candidates []Candidate) ([]Scored, error) {
	if len(query) == 0 {
		return nil, ErrEmptyQueryVector
	}

	queryNorm := embeddings.Norm(query)
	scored := make([]Scored, len(candidates))

	for i := range candidates {
		c := &candidates[i]
		if len(c.Vector) != len(query) {
			return nil, fmt.Errorf("%w: query has %d, transcript %s has %d",
				ErrDimensionMismatch, len(query), c.Transcript.TranscriptID, len(c.Vector))
		}

		scored[i] = Scored{
			Transcript: c.Transcript,
			Score:      cosine(query, queryNorm, c.Vector, c.Norm),
		}
	}

	slices.SortStableFunc(scored, func(a, b Scored) int {
		return cmp.Compare(b.Score, a.Score)
	})

	return scored, nil
}
