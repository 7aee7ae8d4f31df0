package corpus

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/formbricks/explorer/internal/datatypes"
	"github.com/formbricks/explorer/internal/explorererrors"
	"github.com/formbricks/explorer/internal/models"
	"github.com/formbricks/explorer/internal/ranking"
)

// driftSampleSize caps how many ids are logged per drift warning.
const driftSampleSize = 5

// LoadOption configures Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for drift warnings. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) LoadOption {
	return func(o *loadOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// transcriptsEnvelope keeps Transcripts as a pointer so a missing key can be told apart from an empty array.
type transcriptsEnvelope struct {
	Transcripts *[]models.Transcript `json:"transcripts"`
}

// Load reads both datasets and joins them into a Store. Any structural problem is returned as a
// CorpusLoadError; the caller must not serve with a partial corpus. Drift between the datasets
// (vectors without transcripts, transcripts without vectors, vectors of the wrong length) is
// skipped with a warning and recorded in the store's LoadReport.
func Load(transcriptsPath, embeddingsPath string, opts ...LoadOption) (*Store, error) {
	o := loadOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	transcripts, err := loadTranscripts(transcriptsPath)
	if err != nil {
		return nil, err
	}

	var embeddingsFile models.EmbeddingsFile
	if err := readJSON(embeddingsPath, &embeddingsFile); err != nil {
		return nil, err
	}

	store, err := join(transcripts, &embeddingsFile, embeddingsPath)
	if err != nil {
		return nil, err
	}

	store.report.TranscriptsFile = transcriptsPath
	logDrift(o.logger, store.report)

	o.logger.Info("corpus loaded",
		"transcripts", store.Len(),
		"embedded", store.EmbeddedCount(),
		"dimension", store.Dimension(),
		"model", store.Model(),
	)

	return store, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return explorererrors.NewCorpusLoadError(path, "read file", err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return explorererrors.NewCorpusLoadError(path, "invalid JSON", err)
	}

	return nil
}

func loadTranscripts(path string) ([]*models.Transcript, error) {
	var envelope transcriptsEnvelope
	if err := readJSON(path, &envelope); err != nil {
		return nil, err
	}

	if envelope.Transcripts == nil {
		return nil, explorererrors.NewCorpusLoadError(path, `missing "transcripts" array`, nil)
	}

	records := *envelope.Transcripts
	if len(records) == 0 {
		return nil, explorererrors.NewCorpusLoadError(path, "corpus has no transcripts", nil)
	}

	seen := make(map[string]int, len(records))
	out := make([]*models.Transcript, len(records))

	for i := range records {
		t := &records[i]

		if t.TranscriptID == "" {
			return nil, explorererrors.NewCorpusLoadError(path,
				fmt.Sprintf("transcript at index %d has an empty transcript_id", i), nil)
		}

		if prev, dup := seen[t.TranscriptID]; dup {
			return nil, explorererrors.NewCorpusLoadError(path,
				fmt.Sprintf("duplicate transcript_id %q at indexes %d and %d", t.TranscriptID, prev, i), nil)
		}

		if !t.Split.IsValid() {
			return nil, explorererrors.NewCorpusLoadError(path,
				fmt.Sprintf("transcript %q has invalid split %q", t.TranscriptID, t.Split),
				datatypes.ErrInvalidSplit)
		}

		seen[t.TranscriptID] = i
		out[i] = t
	}

	return out, nil
}

func join(transcripts []*models.Transcript, file *models.EmbeddingsFile, path string) (*Store, error) {
	store := &Store{
		transcripts: transcripts,
		byID:        make(map[string]*models.Transcript, len(transcripts)),
		vectorIdx:   make(map[string]int, len(file.Embeddings)),
		model:       file.Model,
		report: LoadReport{
			EmbeddingsFile:    path,
			DeclaredDimension: file.Dimension,
			DeclaredCount:     file.Count,
		},
	}

	for _, t := range transcripts {
		store.byID[t.TranscriptID] = t
	}

	store.dimension = file.Dimension
	if store.dimension <= 0 {
		for _, t := range transcripts {
			if vec, ok := file.Embeddings[t.TranscriptID]; ok {
				store.dimension = len(vec)

				break
			}
		}
	}

	if store.dimension <= 0 {
		return nil, explorererrors.NewCorpusLoadError(path, "embedding dimension could not be determined", nil)
	}

	for _, t := range transcripts {
		vec, ok := file.Embeddings[t.TranscriptID]
		if !ok {
			store.report.MissingVectors = append(store.report.MissingVectors, t.TranscriptID)

			continue
		}

		if len(vec) != store.dimension {
			store.report.DimensionMismatches = append(store.report.DimensionMismatches, t.TranscriptID)

			continue
		}

		store.vectorIdx[t.TranscriptID] = len(store.candidates)
		store.candidates = append(store.candidates, ranking.NewCandidate(t, vec))
	}

	for id := range file.Embeddings {
		if _, ok := store.byID[id]; !ok {
			store.report.UnmatchedVectors = append(store.report.UnmatchedVectors, id)
		}
	}

	slices.Sort(store.report.UnmatchedVectors)

	if len(store.candidates) == 0 {
		return nil, explorererrors.NewCorpusLoadError(path, "no embedding matches a transcript", nil)
	}

	return store, nil
}

func logDrift(logger *slog.Logger, r LoadReport) {
	if n := len(r.UnmatchedVectors); n > 0 {
		logger.Warn("corpus: skipping embeddings with no transcript",
			"count", n, "sample", sample(r.UnmatchedVectors))
	}

	if n := len(r.DimensionMismatches); n > 0 {
		logger.Warn("corpus: skipping embeddings with wrong dimension",
			"count", n, "sample", sample(r.DimensionMismatches))
	}

	if n := len(r.MissingVectors); n > 0 {
		logger.Warn("corpus: transcripts without embedding are excluded from search",
			"count", n, "sample", sample(r.MissingVectors))
	}
}

func sample(ids []string) []string {
	if len(ids) > driftSampleSize {
		return ids[:driftSampleSize]
	}

	return ids
}
