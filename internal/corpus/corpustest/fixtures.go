// Package corpustest writes small corpus datasets to disk for tests.
package corpustest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/formbricks/explorer/internal/corpus"
	"github.com/formbricks/explorer/internal/datatypes"
	"github.com/formbricks/explorer/internal/models"
)

// Ptr returns a pointer to s.
func Ptr(s string) *string { return &s }

// Transcript builds a minimal transcript with one interviewer and one participant message.
func Transcript(id string, split datatypes.Split, sentiment, industry string) models.Transcript {
	return models.Transcript{
		TranscriptID: id,
		Split:        split,
		Messages: []models.Message{
			{Role: models.RoleAI, Content: "Tell me about your work."},
			{Role: models.RoleUser, Content: "I am participant " + id + "."},
		},
		Sentiment: Ptr(sentiment),
		Industry:  Ptr(industry),
		JobTitle:  Ptr("Analyst"),
	}
}

// WriteJSON marshals v into a file under dir and returns its path.
func WriteJSON(t *testing.T, dir, name string, v any) string {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

// WriteFiles writes both datasets into a fresh temp dir and returns their paths.
func WriteFiles(t *testing.T, transcripts []models.Transcript, vectors map[string][]float32) (string, string) {
	t.Helper()

	dir := t.TempDir()
	dim := 0

	for _, v := range vectors {
		dim = len(v)

		break
	}

	tp := WriteJSON(t, dir, "transcripts.json", models.TranscriptsFile{Transcripts: transcripts})
	ep := WriteJSON(t, dir, "embeddings.json", models.EmbeddingsFile{
		Model:      "test-model",
		Dimension:  dim,
		Count:      len(vectors),
		Embeddings: vectors,
	})

	return tp, ep
}

// NewStore writes the datasets and loads them.
func NewStore(t *testing.T, transcripts []models.Transcript, vectors map[string][]float32) *corpus.Store {
	t.Helper()

	tp, ep := WriteFiles(t, transcripts, vectors)

	store, err := corpus.Load(tp, ep)
	require.NoError(t, err)

	return store
}

// SampleStore is a three-transcript corpus on orthogonal-ish 3-d vectors:
// w1 (workforce, positive, Technology) ≈ x, c1 (creatives, negative, Arts) ≈ y,
// s1 (scientists, mixed, Healthcare) ≈ x+z.
func SampleStore(t *testing.T) *corpus.Store {
	t.Helper()

	return NewStore(t, SampleTranscripts(), SampleVectors())
}

// SampleTranscripts returns the transcripts of SampleStore.
func SampleTranscripts() []models.Transcript {
	return []models.Transcript{
		Transcript("w1", datatypes.SplitWorkforce, "positive", "Technology"),
		Transcript("c1", datatypes.SplitCreatives, "negative", "Arts"),
		Transcript("s1", datatypes.SplitScientists, "mixed", "Healthcare"),
	}
}

// SampleVectors returns the vectors of SampleStore.
func SampleVectors() map[string][]float32 {
	return map[string][]float32{
		"w1": {1, 0, 0},
		"c1": {0, 1, 0},
		"s1": {1, 0, 1},
	}
}
