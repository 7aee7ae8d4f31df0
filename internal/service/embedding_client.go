package service

import "context"

// EmbeddingClient turns query text into a vector in the corpus embedding space.
// Implemented by provider-specific clients (Voyage, OpenAI, Google Gemini, mock).
type EmbeddingClient interface {
	CreateEmbedding(ctx context.Context, input string) ([]float32, error)
}
