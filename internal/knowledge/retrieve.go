package knowledge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ragbase/ragbase/internal/embedding"
)

// Retriever answers free-text queries with the most similar stored chunks.
type Retriever struct {
	store    *Store
	embedder embedding.Embedder
	logger   *slog.Logger
}

// NewRetriever wires a retrieval pipeline over store and embedder.
func NewRetriever(store *Store, embedder embedding.Embedder, logger *slog.Logger) (*Retriever, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if embedder == nil {
		return nil, errors.New("embedder is required")
	}
	if got, want := embedder.Dimension(), store.Dimension(); got != want {
		return nil, fmt.Errorf("embedder dimension %d does not match store dimension %d", got, want)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Retriever{store: store, embedder: embedder, logger: logger}, nil
}

// FindRelevant embeds query and returns chunks above the similarity floor,
// most similar first. Unlike ingestion, an embedding failure here is a hard
// error: there is no vector to search with. An empty result means nothing
// relevant is stored, not failure.
func (r *Retriever) FindRelevant(ctx context.Context, query string, opts ...SearchOption) ([]SearchResult, error) {
	vector, err := r.embedder.EmbedOne(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := r.store.Search(ctx, vector, opts...)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("retrieval completed", "results", len(results))
	return results, nil
}
