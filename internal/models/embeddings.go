package models

// EmbeddingsFile is the on-disk envelope of the embedding dataset produced by the offline embedding step.
// Dimension and Count are advisory; the loader re-derives both from the vectors it accepts.
type EmbeddingsFile struct {
	Model      string               `json:"model"`
	Dimension  int                  `json:"dimension"`
	Count      int                  `json:"count"`
	Embeddings map[string][]float32 `json:"embeddings"`
}
