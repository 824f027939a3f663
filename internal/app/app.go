// Package app wires the application: configuration, logging, database
// pool, embeddings client, and the knowledge pipeline. Commands call
// Setup once and work against the assembled App.
package app

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ragbase/ragbase/internal/config"
	"github.com/ragbase/ragbase/internal/embedding"
	"github.com/ragbase/ragbase/internal/knowledge"
	"github.com/ragbase/ragbase/internal/log"
)

// App is the assembled application container.
type App struct {
	Config *config.Config
	Logger log.Logger

	Pool     *pgxpool.Pool
	Embedder embedding.Embedder

	Store     *knowledge.Store
	Ingestor  *knowledge.Ingestor
	Retriever *knowledge.Retriever
}

// Close releases all resources. Safe to call after a failed Setup.
func (a *App) Close() error {
	if a.Pool != nil {
		a.Pool.Close()
	}
	return nil
}
