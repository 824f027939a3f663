package testutil

import (
	"context"
	"hash/fnv"
	"math"
	"strings"

	"github.com/ragbase/ragbase/internal/embedding"
)

// HashEmbedder is a deterministic in-process embedder for tests. Tokens are
// hashed into dimension buckets and the vector is L2-normalized, so texts
// sharing words produce similar vectors and cosine similarity behaves
// plausibly without any remote provider.
type HashEmbedder struct {
	Dim int
}

var _ embedding.Embedder = (*HashEmbedder)(nil)

// NewHashEmbedder creates a deterministic embedder producing dim-wide vectors.
func NewHashEmbedder(dim int) *HashEmbedder {
	return &HashEmbedder{Dim: dim}
}

func (e *HashEmbedder) Dimension() int { return e.Dim }

func (e *HashEmbedder) EmbedOne(_ context.Context, text string) ([]float32, error) {
	return e.embed(text), nil
}

func (e *HashEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = e.embed(text)
	}
	return vectors, nil
}

func (e *HashEmbedder) embed(text string) []float32 {
	v := make([]float32, e.Dim)
	for _, token := range strings.Fields(strings.ToLower(embedding.Normalize(text))) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(strings.Trim(token, ".,!?;:")))
		v[h.Sum32()%uint32(e.Dim)]++
	}

	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	if norm == 0 {
		v[0] = 1
		return v
	}
	scale := float32(1 / math.Sqrt(norm))
	for i := range v {
		v[i] *= scale
	}
	return v
}
