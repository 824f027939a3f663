// Package embedding maps text to fixed-dimension vectors via a remote
// OpenAI-compatible embeddings endpoint.
//
// The Embedder interface is the seam between the ingestion/retrieval
// services and the provider: batch embedding for chunk sets, single
// embedding for queries. Both paths normalize input identically so stored
// and query vectors are comparable.
package embedding

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrEmptyInput indicates a text that is empty after normalization.
	ErrEmptyInput = errors.New("embedding input is empty")

	// ErrNoEmbedding indicates the provider returned no usable vectors.
	ErrNoEmbedding = errors.New("no embedding returned")

	// ErrDimensionMismatch indicates a returned vector of unexpected width.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

// Embedder converts text into dense vectors of a fixed dimension.
//
// EmbedBatch returns one vector per input text, positionally aligned.
// An empty input batch returns an empty result without any remote call.
// A remote failure fails the whole batch; no partial vectors are returned.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	EmbedOne(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// Normalize collapses literal "\n" escapes and whitespace runs to single
// spaces and trims the ends. Applied to every text before it is sent to
// the provider, on both the ingestion and query paths.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, `\n`, " ")
	return strings.Join(strings.Fields(s), " ")
}
