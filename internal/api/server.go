package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ragbase/ragbase/internal/knowledge"
)

// ServerConfig contains configuration for creating the API server.
type ServerConfig struct {
	Logger     *slog.Logger
	Store      *knowledge.Store     // Required
	Ingestor   *knowledge.Ingestor  // Required
	Retriever  *knowledge.Retriever // Required
	Pool       *pgxpool.Pool        // Optional: nil disables database check in /ready
	TrustProxy bool                 // Trust X-Real-IP/X-Forwarded-For (behind reverse proxy)
	RateBurst  int                  // Rate limiter burst size per IP (0 = default 60)
}

// Server is the JSON API HTTP server.
type Server struct {
	mux *http.ServeMux
}

// NewServer creates an API server with all routes configured.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("knowledge store is required")
	}
	if cfg.Ingestor == nil {
		return nil, errors.New("ingestor is required")
	}
	if cfg.Retriever == nil {
		return nil, errors.New("retriever is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	rh := &resourceHandler{
		store:    cfg.Store,
		ingestor: cfg.Ingestor,
		logger:   logger,
	}
	sh := &searchHandler{retriever: cfg.Retriever, logger: logger}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/resources", rh.createResource)
	mux.HandleFunc("GET /api/v1/resources", rh.listResources)
	mux.HandleFunc("GET /api/v1/resources/{id}", rh.getResource)
	mux.HandleFunc("DELETE /api/v1/resources/{id}", rh.deleteResource)

	mux.HandleFunc("GET /api/v1/search", sh.search)

	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 60
	}
	rl := newRateLimiter(1.0, burst)

	// Middleware stack, outermost first:
	//   Recovery -> RequestID -> Logging -> RateLimit -> Routes
	// RequestID sits before Logging so request_id is available in log attributes.
	var handler http.Handler = mux
	handler = rateLimitMiddleware(rl, cfg.TrustProxy, logger)(handler)
	handler = loggingMiddleware(logger)(handler)
	handler = requestIDMiddleware()(handler)
	handler = recoveryMiddleware(logger)(handler)

	// Health probes bypass the middleware stack so orchestrator checks are
	// never rate limited.
	topMux := http.NewServeMux()
	topMux.HandleFunc("GET /health", health(logger))
	topMux.Handle("GET /ready", readiness(cfg.Pool, logger))
	topMux.Handle("/", handler)

	return &Server{mux: topMux}, nil
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}
