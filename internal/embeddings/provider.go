package embeddings

import (
	"context"
	"fmt"

	"github.com/formbricks/explorer/internal/config"
	"github.com/formbricks/explorer/internal/googleai"
	"github.com/formbricks/explorer/internal/openai"
	"github.com/formbricks/explorer/internal/voyage"
)

// Client turns query text into a vector.
type Client interface {
	CreateEmbedding(ctx context.Context, input string) ([]float32, error)
}

// NewClient builds the query embedding client for cfg.EmbeddingProvider. Providers that accept an
// output dimension are asked for vectors of the corpus dimension.
func NewClient(ctx context.Context, cfg *config.Config, dimension int) (Client, error) {
	switch cfg.EmbeddingProvider {
	case config.EmbeddingProviderVoyage:
		return voyage.NewClient(cfg.EmbeddingProviderAPIKey, cfg.EmbeddingModel, cfg.EmbeddingBaseURL), nil
	case config.EmbeddingProviderOpenAI:
		opts := []openai.ClientOption{
			openai.WithModel(cfg.EmbeddingModel),
			openai.WithDimensions(dimension),
		}
		if cfg.EmbeddingBaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.EmbeddingBaseURL))
		}

		return openai.NewClient(cfg.EmbeddingProviderAPIKey, opts...), nil
	case config.EmbeddingProviderGoogle:
		opts := []googleai.ClientOption{
			googleai.WithModel(cfg.EmbeddingModel),
			googleai.WithDimensions(dimension),
		}
		if cfg.EmbeddingBaseURL != "" {
			opts = append(opts, googleai.WithBaseURL(cfg.EmbeddingBaseURL))
		}

		client, err := googleai.NewClient(ctx, cfg.EmbeddingProviderAPIKey, opts...)
		if err != nil {
			return nil, fmt.Errorf("create google embedding client: %w", err)
		}

		return client, nil
	case config.EmbeddingProviderMock:
		return NewMockClientWithDimensions(dimension), nil
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnsupportedEmbeddingProvider, cfg.EmbeddingProvider)
	}
}
