package knowledge

import "time"

// Resource is a stored unit of source text submitted to the knowledge base.
// Immutable after creation.
type Resource struct {
	ID        string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Chunk is a retrieval-sized text unit paired with its embedding vector.
// Many chunks reference one resource; deleting the resource cascades.
type Chunk struct {
	Content   string
	Embedding []float32
}

// SearchResult is a single search hit with its relevance score.
type SearchResult struct {
	Content    string
	Similarity float32 // 1 - cosine distance, in [0,1] for normalized embeddings
}

// SearchOption configures search behavior using functional options.
type SearchOption func(*searchConfig)

type searchConfig struct {
	limit   int32
	floor   float64
	timeout time.Duration
}

// WithLimit caps the number of results. Overrides the store default.
func WithLimit(limit int32) SearchOption {
	return func(c *searchConfig) {
		c.limit = limit
	}
}

// WithSimilarityFloor sets the minimum similarity a result must strictly
// exceed. Overrides the store default.
func WithSimilarityFloor(floor float64) SearchOption {
	return func(c *searchConfig) {
		c.floor = floor
	}
}

// WithTimeout bounds the search query. Default is 10 seconds.
func WithTimeout(d time.Duration) SearchOption {
	return func(c *searchConfig) {
		c.timeout = d
	}
}
