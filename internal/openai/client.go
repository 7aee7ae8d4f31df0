// Package openai provides a thin wrapper around the official OpenAI Go SDK for query embeddings.
// It also serves OpenAI-compatible embedding endpoints (see the voyage package).
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/param"
)

var (
	// ErrEmptyInput is returned when CreateEmbedding is called with empty input.
	ErrEmptyInput = errors.New("openai: input text is empty")
	// ErrNoEmbeddingInResponse is returned when the API response contains no embedding data.
	ErrNoEmbeddingInResponse = errors.New("openai: no embedding in response")
	// ErrDimensionMismatch is returned when the response embedding length does not match configured dimensions.
	ErrDimensionMismatch = errors.New("openai: embedding dimension mismatch")
)

const defaultModel = openaisdk.EmbeddingModelTextEmbedding3Small

// Client calls an OpenAI-compatible embeddings API via the official SDK.
type Client struct {
	sdk     openaisdk.Client
	model   string
	baseURL string
	// dimensions is sent as the "dimensions" parameter and checked on the response; 0 leaves both to the model.
	dimensions int
	// extra holds provider-specific body fields set on every request.
	extra map[string]any
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithDimensions requests vectors of the given length (must match the corpus dimension).
func WithDimensions(dim int) ClientOption {
	return func(c *Client) {
		c.dimensions = dim
	}
}

// WithModel sets the embedding model name. Empty keeps the default (text-embedding-3-small).
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL points the client at an OpenAI-compatible endpoint. Empty keeps the SDK default.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithBodyField sets an extra JSON body field on every embeddings request (e.g. input_type).
func WithBodyField(key string, value any) ClientOption {
	return func(c *Client) {
		if c.extra == nil {
			c.extra = make(map[string]any)
		}

		c.extra[key] = value
	}
}

// NewClient creates an embeddings client using the official SDK.
// SDK retries are disabled: a failed query embedding surfaces to the caller immediately.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	client := &Client{model: defaultModel}

	for _, opt := range opts {
		opt(client)
	}

	sdkOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if client.baseURL != "" {
		sdkOpts = append(sdkOpts, option.WithBaseURL(client.baseURL))
	}

	client.sdk = openaisdk.NewClient(sdkOpts...)

	return client
}

// Model returns the embedding model name sent with each request.
func (c *Client) Model() string {
	return c.model
}

// CreateEmbedding returns the embedding vector for the given text.
// When dimensions are configured the returned slice has exactly that length.
func (c *Client) CreateEmbedding(ctx context.Context, input string) ([]float32, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyInput
	}

	params := openaisdk.EmbeddingNewParams{
		Input: openaisdk.EmbeddingNewParamsInputUnion{
			OfString: param.NewOpt(input),
		},
		Model: openaisdk.EmbeddingModel(c.model),
	}
	if c.dimensions > 0 {
		params.Dimensions = param.NewOpt(int64(c.dimensions))
	}

	reqOpts := make([]option.RequestOption, 0, len(c.extra))
	for k, v := range c.extra {
		reqOpts = append(reqOpts, option.WithJSONSet(k, v))
	}

	resp, err := c.sdk.Embeddings.New(ctx, params, reqOpts...)
	if err != nil {
		return nil, fmt.Errorf("openai embedding: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, ErrNoEmbeddingInResponse
	}

	emb := resp.Data[0].Embedding
	if c.dimensions > 0 && len(emb) != c.dimensions {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(emb), c.dimensions)
	}

	out := make([]float32, len(emb))
	for i := range emb {
		out[i] = float32(emb[i])
	}

	return out, nil
}
