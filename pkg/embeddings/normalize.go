// Package embeddings provides utilities for embedding vectors (L2 norm and normalization).
package embeddings

import (
	"math"
)

// Norm returns the Euclidean (L2) length of vector, accumulated in float64.
func Norm(vector []float32) float64 {
	var sumSquares float64
	for _, v := range vector {
		sumSquares += float64(v) * float64(v)
	}

	return math.Sqrt(sumSquares)
}

// NormalizeL2 takes a raw embedding vector and normalizes it to a length of 1.
// It modifies the slice in-place. A zero vector is left unchanged.
func NormalizeL2(vector []float32) {
	magnitude := Norm(vector)
	if magnitude == 0 {
		return
	}

	for i := range vector {
		vector[i] = float32(float64(vector[i]) / magnitude)
	}
}
