package knowledge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	"github.com/ragbase/ragbase/internal/sqlc"
)

const (
	// defaultSearchLimit caps search results when no override is given.
	defaultSearchLimit = 4

	// defaultSimilarityFloor is the minimum similarity a result must
	// strictly exceed when no override is given.
	defaultSimilarityFloor = 0.5

	// defaultSearchTimeout bounds a single similarity query.
	defaultSearchTimeout = 10 * time.Second

	// defaultListLimit caps ListResources.
	defaultListLimit = 100
)

var (
	// ErrEmptyContent indicates resource content that is empty or whitespace.
	ErrEmptyContent = errors.New("resource content is empty")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrDimensionMismatch indicates a chunk vector whose width differs
	// from the store's configured dimension.
	ErrDimensionMismatch = errors.New("chunk embedding dimension mismatch")

	// ErrInvalidLimit indicates a non-positive search limit.
	ErrInvalidLimit = errors.New("search limit must be positive")

	// ErrInvalidFloor indicates a similarity floor outside [0, 1].
	ErrInvalidFloor = errors.New("similarity floor must be within [0, 1]")
)

// Querier is the subset of generated query methods the store needs.
// *sqlc.Queries satisfies it; tests substitute a mock.
type Querier interface {
	CreateResource(ctx context.Context, arg sqlc.CreateResourceParams) (sqlc.Resource, error)
	GetResource(ctx context.Context, id string) (sqlc.Resource, error)
	ListResources(ctx context.Context, resultLimit int32) ([]sqlc.Resource, error)
	DeleteResource(ctx context.Context, id string) (int64, error)
	CountResources(ctx context.Context) (int64, error)
	InsertEmbeddings(ctx context.Context, arg []sqlc.InsertEmbeddingsParams) (int64, error)
	SearchEmbeddings(ctx context.Context, arg sqlc.SearchEmbeddingsParams) ([]sqlc.SearchEmbeddingsRow, error)
	CountEmbeddingsByResource(ctx context.Context, resourceID string) (int64, error)
}

// Store persists resources and chunk embeddings and runs similarity search.
type Store struct {
	queries   Querier
	dimension int
	limit     int32
	floor     float64
}

// StoreConfig configures a Store. Zero values fall back to package defaults.
type StoreConfig struct {
	Dimension       int
	SearchLimit     int32
	SimilarityFloor float64
}

// NewStore creates a Store over q expecting vectors of cfg.Dimension.
func NewStore(q Querier, cfg StoreConfig) (*Store, error) {
	if q == nil {
		return nil, errors.New("querier is required")
	}
	if cfg.Dimension < 1 {
		return nil, fmt.Errorf("vector dimension must be positive, got %d", cfg.Dimension)
	}

	limit := cfg.SearchLimit
	if limit == 0 {
		limit = defaultSearchLimit
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	floor := cfg.SimilarityFloor
	if floor < 0 || floor > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFloor, floor)
	}

	return &Store{
		queries:   q,
		dimension: cfg.Dimension,
		limit:     limit,
		floor:     floor,
	}, nil
}

// Dimension returns the vector width the store accepts.
func (s *Store) Dimension() int { return s.dimension }

// CreateResource persists content as a new resource with a generated ID.
func (s *Store) CreateResource(ctx context.Context, content string) (Resource, error) {
	if isBlank(content) {
		return Resource{}, ErrEmptyContent
	}

	row, err := s.queries.CreateResource(ctx, sqlc.CreateResourceParams{
		ID:      uuid.NewString(),
		Content: content,
	})
	if err != nil {
		return Resource{}, fmt.Errorf("creating resource: %w", err)
	}
	return toResource(row), nil
}

// InsertChunks persists chunks for the given resource as one batch.
// Every vector must match the store's dimension; a mismatch rejects the
// whole batch before anything is written. An empty batch is a no-op.
func (s *Store) InsertChunks(ctx context.Context, resourceID string, chunks []Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	for i, ch := range chunks {
		if len(ch.Embedding) != s.dimension {
			return fmt.Errorf("%w: chunk %d has %d, want %d",
				ErrDimensionMismatch, i, len(ch.Embedding), s.dimension)
		}
	}

	rows := make([]sqlc.InsertEmbeddingsParams, len(chunks))
	for i, ch := range chunks {
		v := pgvector.NewVector(ch.Embedding)
		rows[i] = sqlc.InsertEmbeddingsParams{
			ID:         uuid.NewString(),
			ResourceID: resourceID,
			Content:    ch.Content,
			Embedding:  &v,
		}
	}

	inserted, err := s.queries.InsertEmbeddings(ctx, rows)
	if err != nil {
		return fmt.Errorf("inserting chunk embeddings: %w", err)
	}
	if inserted != int64(len(rows)) {
		return fmt.Errorf("inserting chunk embeddings: inserted %d of %d", inserted, len(rows))
	}
	return nil
}

// Search returns chunks whose similarity to queryEmbedding strictly
// exceeds the floor, most similar first, capped at the limit. No match is
// an empty result, not an error.
func (s *Store) Search(ctx context.Context, queryEmbedding []float32, opts ...SearchOption) ([]SearchResult, error) {
	if len(queryEmbedding) != s.dimension {
		return nil, fmt.Errorf("%w: query has %d, want %d",
			ErrDimensionMismatch, len(queryEmbedding), s.dimension)
	}

	cfg := searchConfig{
		limit:   s.limit,
		floor:   s.floor,
		timeout: defaultSearchTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.limit < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, cfg.limit)
	}
	if cfg.floor < 0 || cfg.floor > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFloor, cfg.floor)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	v := pgvector.NewVector(queryEmbedding)
	rows, err := s.queries.SearchEmbeddings(ctx, sqlc.SearchEmbeddingsParams{
		QueryEmbedding:  &v,
		SimilarityFloor: cfg.floor,
		ResultLimit:     cfg.limit,
	})
	if err != nil {
		return nil, fmt.Errorf("searching embeddings: %w", err)
	}

	results := make([]SearchResult, len(rows))
	for i, row := range rows {
		results[i] = SearchResult{Content: row.Content, Similarity: row.Similarity}
	}
	return results, nil
}

// GetResource fetches a resource by ID.
func (s *Store) GetResource(ctx context.Context, id string) (Resource, error) {
	row, err := s.queries.GetResource(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Resource{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return Resource{}, fmt.Errorf("getting resource: %w", err)
	}
	return toResource(row), nil
}

// ListResources returns the most recent resources, newest first.
func (s *Store) ListResources(ctx context.Context, limit int32) ([]Resource, error) {
	if limit < 1 {
		limit = defaultListLimit
	}

	rows, err := s.queries.ListResources(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}

	resources := make([]Resource, len(rows))
	for i, row := range rows {
		resources[i] = toResource(row)
	}
	return resources, nil
}

// DeleteResource removes a resource; its chunks cascade in the database.
func (s *Store) DeleteResource(ctx context.Context, id string) error {
	affected, err := s.queries.DeleteResource(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting resource: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// CountResources returns the total number of stored resources.
func (s *Store) CountResources(ctx context.Context) (int64, error) {
	count, err := s.queries.CountResources(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting resources: %w", err)
	}
	return count, nil
}

// CountChunks returns the number of stored chunks for one resource.
func (s *Store) CountChunks(ctx context.Context, resourceID string) (int64, error) {
	count, err := s.queries.CountEmbeddingsByResource(ctx, resourceID)
	if err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return count, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func toResource(row sqlc.Resource) Resource {
	return Resource{
		ID:        row.ID,
		Content:   row.Content,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
