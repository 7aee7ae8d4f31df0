// Package voyage builds a query embedding client for Voyage AI, the provider the corpus
// embeddings were produced with. Voyage exposes an OpenAI-compatible embeddings endpoint,
// so the client is the openai package pointed at Voyage's base URL.
package voyage

import (
	"github.com/formbricks/explorer/internal/openai"
)

const (
	// DefaultBaseURL is Voyage's API root.
	DefaultBaseURL = "https://api.voyageai.com/v1/"
	// DefaultModel matches the model family of the offline corpus embeddings.
	DefaultModel = "voyage-3"
)

// InputTypeQuery asks Voyage for a query-side embedding; the corpus was embedded as documents.
const InputTypeQuery = "query"

// NewClient returns a client embedding search queries with the given model.
// Empty model or baseURL fall back to the defaults.
func NewClient(apiKey, model, baseURL string) *openai.Client {
	if model == "" {
		model = DefaultModel
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return openai.NewClient(apiKey,
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
		openai.WithBodyField("input_type", InputTypeQuery),
	)
}
