package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ragbase/ragbase/db"
	"github.com/ragbase/ragbase/internal/chunker"
	"github.com/ragbase/ragbase/internal/config"
	"github.com/ragbase/ragbase/internal/database"
	"github.com/ragbase/ragbase/internal/embedding"
	"github.com/ragbase/ragbase/internal/knowledge"
	"github.com/ragbase/ragbase/internal/log"
	"github.com/ragbase/ragbase/internal/sqlc"
)

const setupPingTimeout = 5 * time.Second

// Setup assembles the application: runs migrations, opens the connection
// pool, builds the embeddings client, and wires the knowledge pipeline.
// The returned App owns the pool; call Close to release it.
func Setup(ctx context.Context, cfg *config.Config, logger log.Logger) (_ *App, retErr error) {
	if cfg == nil {
		return nil, config.ErrConfigNil
	}

	a := &App{Config: cfg, Logger: logger}

	defer func() {
		if retErr != nil {
			if err := a.Close(); err != nil {
				logger.Warn("cleanup during setup failure", "error", err)
			}
		}
	}()

	if err := db.Migrate(cfg.PostgresURL()); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	poolCtx, cancel := context.WithTimeout(ctx, setupPingTimeout)
	defer cancel()
	pool, err := database.NewPool(poolCtx, cfg.PostgresConnectionString())
	if err != nil {
		return nil, err
	}
	a.Pool = pool

	embedder, err := embedding.NewClient(embedding.Config{
		BaseURL:   cfg.EmbeddingsBaseURL,
		APIKey:    cfg.EmbeddingsAPIKey,
		Model:     cfg.EmbedderModel,
		Dimension: cfg.VectorDimension,
		Logger:    logger.With("component", "embeddings"),
	})
	if err != nil {
		return nil, fmt.Errorf("creating embeddings client: %w", err)
	}
	a.Embedder = embedder

	store, err := knowledge.NewStore(sqlc.New(pool), knowledge.StoreConfig{
		Dimension:       cfg.VectorDimension,
		SearchLimit:     int32(cfg.SearchLimit),
		SimilarityFloor: cfg.SimilarityFloor,
	})
	if err != nil {
		return nil, fmt.Errorf("creating knowledge store: %w", err)
	}
	a.Store = store

	splitter := &chunker.SentenceSplitter{}

	ingestor, err := knowledge.NewIngestor(store, splitter, embedder,
		logger.With("component", "ingestor"))
	if err != nil {
		return nil, fmt.Errorf("creating ingestor: %w", err)
	}
	a.Ingestor = ingestor

	retriever, err := knowledge.NewRetriever(store, embedder,
		logger.With("component", "retriever"))
	if err != nil {
		return nil, fmt.Errorf("creating retriever: %w", err)
	}
	a.Retriever = retriever

	return a, nil
}
