// Package mcp exposes the knowledge base as Model Context Protocol tools
// so agent runtimes can ingest and retrieve knowledge over stdio.
//
// Tools:
//
//	add_resource            ingest content into the knowledge base
//	find_relevant_content   similarity search over stored chunks
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ragbase/ragbase/internal/knowledge"
)

// Server wraps the MCP SDK server around the knowledge pipeline.
type Server struct {
	mcpServer *mcp.Server
	ingestor  *knowledge.Ingestor
	retriever *knowledge.Retriever
}

// Config holds MCP server configuration.
type Config struct {
	Name      string
	Version   string
	Ingestor  *knowledge.Ingestor
	Retriever *knowledge.Retriever
}

// NewServer creates an MCP server with the knowledge tools registered.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("server name is required")
	}
	if cfg.Version == "" {
		return nil, fmt.Errorf("server version is required")
	}
	if cfg.Ingestor == nil {
		return nil, fmt.Errorf("ingestor is required")
	}
	if cfg.Retriever == nil {
		return nil, fmt.Errorf("retriever is required")
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	s := &Server{
		mcpServer: mcpServer,
		ingestor:  cfg.Ingestor,
		retriever: cfg.Retriever,
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("registering tools: %w", err)
	}

	return s, nil
}

// Run starts the MCP server on the given transport. Blocks until the
// transport closes or ctx is canceled.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.mcpServer.Run(ctx, transport)
}
