// Package embeddings selects the query embedding client for the configured provider and provides a
// deterministic offline client for local runs and tests.
package embeddings

import (
	"context"
	"crypto/sha256"
	"errors"
	"strings"

	"github.com/formbricks/explorer/pkg/embeddings"
)

// ErrEmptyInput is returned when CreateEmbedding is called with empty input.
var ErrEmptyInput = errors.New("mock embeddings: input text is empty")

const defaultDimensions = 1024

// MockClient generates deterministic unit-length embeddings from the SHA-256 of the trimmed input.
// Identical text always yields the identical vector; different text yields an unrelated one.
type MockClient struct {
	dimensions int
}

// NewMockClient creates a mock client producing 1024-dimension vectors, the corpus default.
func NewMockClient() *MockClient {
	return &MockClient{dimensions: defaultDimensions}
}

// NewMockClientWithDimensions creates a mock client with custom dimensions (non-positive uses the default).
func NewMockClientWithDimensions(dimensions int) *MockClient {
	if dimensions <= 0 {
		dimensions = defaultDimensions
	}

	return &MockClient{dimensions: dimensions}
}

// Dimensions returns the length of generated vectors.
func (c *MockClient) Dimensions() int {
	return c.dimensions
}

// CreateEmbedding returns the deterministic embedding for input.
func (c *MockClient) CreateEmbedding(ctx context.Context, input string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyInput
	}

	return c.generate(input), nil
}

// generate spreads the hash bytes cyclically over the vector in [-1, 1], then normalizes to unit length.
// Each 32-byte block is re-hashed so vectors longer than the digest do not simply repeat.
func (c *MockClient) generate(text string) []float32 {
	vector := make([]float32, c.dimensions)
	hash := sha256.Sum256([]byte(text))

	for i := range c.dimensions {
		if i > 0 && i%len(hash) == 0 {
			hash = sha256.Sum256(hash[:])
		}

		vector[i] = (float32(hash[i%len(hash)]) / 127.5) - 1.0
	}

	embeddings.NormalizeL2(vector)

	return vector
}
