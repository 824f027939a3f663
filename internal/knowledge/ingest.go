package knowledge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ragbase/ragbase/internal/chunker"
	"github.com/ragbase/ragbase/internal/embedding"
)

// MsgResourceCreated is the confirmation returned after an ingestion, even
// when embedding degraded. Callers surface it verbatim to users and tools.
const MsgResourceCreated = "Resource successfully created and embedded."

// IngestResult reports what an ingestion actually stored.
type IngestResult struct {
	ResourceID string

	// ChunkCount is the number of chunks persisted with vectors. Zero with
	// EmbeddingFailed false means the content produced no chunks.
	ChunkCount int

	// EmbeddingFailed is set when the resource was stored but its chunks
	// could not be embedded. The resource is searchable only after a
	// successful re-embed.
	EmbeddingFailed bool
}

// Ingestor runs the ingestion pipeline: persist the resource, chunk its
// content, embed the chunks, persist the vectors.
type Ingestor struct {
	store    *Store
	splitter chunker.Splitter
	embedder embedding.Embedder
	logger   *slog.Logger
}

// NewIngestor wires an ingestion pipeline. A nil splitter falls back to
// sentence splitting on ".".
func NewIngestor(store *Store, splitter chunker.Splitter, embedder embedding.Embedder, logger *slog.Logger) (*Ingestor, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if embedder == nil {
		return nil, errors.New("embedder is required")
	}
	if got, want := embedder.Dimension(), store.Dimension(); got != want {
		return nil, fmt.Errorf("embedder dimension %d does not match store dimension %d", got, want)
	}
	if splitter == nil {
		splitter = &chunker.SentenceSplitter{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Ingestor{
		store:    store,
		splitter: splitter,
		embedder: embedder,
		logger:   logger,
	}, nil
}

// Ingest stores content as a resource and persists its embedded chunks.
//
// The resource is written first so it exists even if embedding fails; in
// that case the result reports EmbeddingFailed and no error. If the chunk
// write itself fails, the orphaned resource is deleted again and the error
// is returned.
func (in *Ingestor) Ingest(ctx context.Context, content string) (IngestResult, error) {
	resource, err := in.store.CreateResource(ctx, content)
	if err != nil {
		return IngestResult{}, err
	}

	result := IngestResult{ResourceID: resource.ID}

	units := in.splitter.Split(content)
	if len(units) == 0 {
		in.logger.Info("resource produced no chunks", "resource_id", resource.ID)
		return result, nil
	}

	vectors, err := in.embedder.EmbedBatch(ctx, units)
	if err != nil {
		// The resource stays; the caller decides whether to re-embed.
		in.logger.Warn("embedding failed, resource stored without chunks",
			"resource_id", resource.ID,
			"chunks", len(units),
			"error", err)
		result.EmbeddingFailed = true
		return result, nil
	}

	chunks := make([]Chunk, len(units))
	for i, unit := range units {
		chunks[i] = Chunk{Content: unit, Embedding: vectors[i]}
	}

	if err := in.store.InsertChunks(ctx, resource.ID, chunks); err != nil {
		// Roll the resource back rather than leave it permanently
		// unsearchable with vectors already paid for.
		if delErr := in.store.DeleteResource(ctx, resource.ID); delErr != nil {
			in.logger.Error("rollback after chunk insert failure also failed",
				"resource_id", resource.ID, "error", delErr)
		}
		return IngestResult{}, fmt.Errorf("persisting chunks for resource %s: %w", resource.ID, err)
	}

	result.ChunkCount = len(chunks)
	in.logger.Info("resource ingested",
		"resource_id", resource.ID,
		"chunks", result.ChunkCount)
	return result, nil
}
