package knowledge

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/ragbase/ragbase/internal/sqlc"
)

const testDimension = 3

// mockQuerier implements Querier for testing.
type mockQuerier struct {
	// Error configuration
	createErr error
	getErr    error
	listErr   error
	deleteErr error
	insertErr error
	searchErr error

	// Return values
	createdResource sqlc.Resource
	gotResource     sqlc.Resource
	listRows        []sqlc.Resource
	deleteAffected  int64
	insertAffected  int64
	searchRows      []sqlc.SearchEmbeddingsRow
	resourceCount   int64
	chunkCount      int64

	// Call tracking
	createCalls int
	deleteCalls int
	insertCalls int
	searchCalls int

	lastCreateParams sqlc.CreateResourceParams
	lastInsertRows   []sqlc.InsertEmbeddingsParams
	lastSearchParams sqlc.SearchEmbeddingsParams
	lastDeletedID    string
}

func (m *mockQuerier) CreateResource(_ context.Context, arg sqlc.CreateResourceParams) (sqlc.Resource, error) {
	m.createCalls++
	m.lastCreateParams = arg
	if m.createErr != nil {
		return sqlc.Resource{}, m.createErr
	}
	if m.createdResource.ID != "" {
		return m.createdResource, nil
	}
	return sqlc.Resource{ID: arg.ID, Content: arg.Content}, nil
}

func (m *mockQuerier) GetResource(_ context.Context, _ string) (sqlc.Resource, error) {
	if m.getErr != nil {
		return sqlc.Resource{}, m.getErr
	}
	return m.gotResource, nil
}

func (m *mockQuerier) ListResources(_ context.Context, _ int32) ([]sqlc.Resource, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listRows, nil
}

func (m *mockQuerier) DeleteResource(_ context.Context, id string) (int64, error) {
	m.deleteCalls++
	m.lastDeletedID = id
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	return m.deleteAffected, nil
}

func (m *mockQuerier) CountResources(_ context.Context) (int64, error) {
	return m.resourceCount, nil
}

func (m *mockQuerier) InsertEmbeddings(_ context.Context, arg []sqlc.InsertEmbeddingsParams) (int64, error) {
	m.insertCalls++
	m.lastInsertRows = arg
	if m.insertErr != nil {
		return 0, m.insertErr
	}
	if m.insertAffected != 0 {
		return m.insertAffected, nil
	}
	return int64(len(arg)), nil
}

func (m *mockQuerier) SearchEmbeddings(_ context.Context, arg sqlc.SearchEmbeddingsParams) ([]sqlc.SearchEmbeddingsRow, error) {
	m.searchCalls++
	m.lastSearchParams = arg
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchRows, nil
}

func (m *mockQuerier) CountEmbeddingsByResource(_ context.Context, _ string) (int64, error) {
	return m.chunkCount, nil
}

func newTestStore(t *testing.T, q Querier) *Store {
	t.Helper()
	s, err := NewStore(q, StoreConfig{
		Dimension:       testDimension,
		SearchLimit:     defaultSearchLimit,
		SimilarityFloor: defaultSimilarityFloor,
	})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestNewStore_Validation(t *testing.T) {
	if _, err := NewStore(nil, StoreConfig{Dimension: testDimension}); err == nil {
		t.Error("expected error for nil querier")
	}
	if _, err := NewStore(&mockQuerier{}, StoreConfig{Dimension: 0}); err == nil {
		t.Error("expected error for zero dimension")
	}
	if _, err := NewStore(&mockQuerier{}, StoreConfig{Dimension: testDimension, SimilarityFloor: 1.5}); !errors.Is(err, ErrInvalidFloor) {
		t.Errorf("err = %v, want ErrInvalidFloor", err)
	}
}

func TestStore_CreateResource(t *testing.T) {
	q := &mockQuerier{}
	s := newTestStore(t, q)

	resource, err := s.CreateResource(context.Background(), "The sky is blue.")
	if err != nil {
		t.Fatalf("CreateResource: %v", err)
	}
	if resource.ID == "" {
		t.Error("resource ID not generated")
	}
	if resource.Content != "The sky is blue." {
		t.Errorf("content = %q", resource.Content)
	}
	if q.createCalls != 1 {
		t.Errorf("createCalls = %d, want 1", q.createCalls)
	}
}

func TestStore_CreateResource_EmptyContent(t *testing.T) {
	q := &mockQuerier{}
	s := newTestStore(t, q)

	for _, content := range []string{"", "   ", "\n\t"} {
		if _, err := s.CreateResource(context.Background(), content); !errors.Is(err, ErrEmptyContent) {
			t.Errorf("CreateResource(%q) err = %v, want ErrEmptyContent", content, err)
		}
	}
	if q.createCalls != 0 {
		t.Errorf("createCalls = %d, want 0", q.createCalls)
	}
}

func TestStore_InsertChunks(t *testing.T) {
	q := &mockQuerier{}
	s := newTestStore(t, q)

	chunks := []Chunk{
		{Content: "first", Embedding: []float32{1, 0, 0}},
		{Content: "second", Embedding: []float32{0, 1, 0}},
	}
	if err := s.InsertChunks(context.Background(), "res-1", chunks); err != nil {
		t.Fatalf("InsertChunks: %v", err)
	}

	if q.insertCalls != 1 {
		t.Fatalf("insertCalls = %d, want 1 (single batch)", q.insertCalls)
	}
	if len(q.lastInsertRows) != 2 {
		t.Fatalf("inserted %d rows, want 2", len(q.lastInsertRows))
	}
	for i, row := range q.lastInsertRows {
		if row.ResourceID != "res-1" {
			t.Errorf("row %d resource = %q, want res-1", i, row.ResourceID)
		}
		if row.ID == "" {
			t.Errorf("row %d missing generated ID", i)
		}
		if row.Content != chunks[i].Content {
			t.Errorf("row %d content = %q, want %q", i, row.Content, chunks[i].Content)
		}
	}
}

func TestStore_InsertChunks_DimensionMismatchRejectsBatch(t *testing.T) {
	q := &mockQuerier{}
	s := newTestStore(t, q)

	chunks := []Chunk{
		{Content: "ok", Embedding: []float32{1, 0, 0}},
		{Content: "bad", Embedding: []float32{1, 0}},
	}
	err := s.InsertChunks(context.Background(), "res-1", chunks)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("err = %v, want ErrDimensionMismatch", err)
	}
	if q.insertCalls != 0 {
		t.Errorf("insertCalls = %d, want 0 (nothing written)", q.insertCalls)
	}
}

func TestStore_InsertChunks_EmptyBatchIsNoop(t *testing.T) {
	q := &mockQuerier{}
	s := newTestStore(t, q)

	if err := s.InsertChunks(context.Background(), "res-1", nil); err != nil {
		t.Fatalf("InsertChunks: %v", err)
	}
	if q.insertCalls != 0 {
		t.Errorf("insertCalls = %d, want 0", q.insertCalls)
	}
}

func TestStore_Search_DefaultsApplied(t *testing.T) {
	q := &mockQuerier{
		searchRows: []sqlc.SearchEmbeddingsRow{
			{Content: "most similar", Similarity: 0.9},
			{Content: "less similar", Similarity: 0.6},
		},
	}
	s := newTestStore(t, q)

	results, err := s.Search(context.Background(), []float32{1, 0, 0})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if q.lastSearchParams.ResultLimit != defaultSearchLimit {
		t.Errorf("limit = %d, want %d", q.lastSearchParams.ResultLimit, defaultSearchLimit)
	}
	if q.lastSearchParams.SimilarityFloor != defaultSimilarityFloor {
		t.Errorf("floor = %v, want %v", q.lastSearchParams.SimilarityFloor, defaultSimilarityFloor)
	}
	if len(results) != 2 || results[0].Content != "most similar" {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestStore_Search_Options(t *testing.T) {
	q := &mockQuerier{}
	s := newTestStore(t, q)

	_, err := s.Search(context.Background(), []float32{1, 0, 0},
		WithLimit(10), WithSimilarityFloor(0.8))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if q.lastSearchParams.ResultLimit != 10 {
		t.Errorf("limit = %d, want 10", q.lastSearchParams.ResultLimit)
	}
	if q.lastSearchParams.SimilarityFloor != 0.8 {
		t.Errorf("floor = %v, want 0.8", q.lastSearchParams.SimilarityFloor)
	}
}

func TestStore_Search_InvalidOptions(t *testing.T) {
	s := newTestStore(t, &mockQuerier{})

	if _, err := s.Search(context.Background(), []float32{1, 0, 0}, WithLimit(0)); !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("err = %v, want ErrInvalidLimit", err)
	}
	if _, err := s.Search(context.Background(), []float32{1, 0, 0}, WithSimilarityFloor(-0.1)); !errors.Is(err, ErrInvalidFloor) {
		t.Errorf("err = %v, want ErrInvalidFloor", err)
	}
}

func TestStore_Search_WrongQueryDimension(t *testing.T) {
	s := newTestStore(t, &mockQuerier{})

	_, err := s.Search(context.Background(), []float32{1, 0})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("err = %v, want ErrDimensionMismatch", err)
	}
}

func TestStore_Search_NoMatchesIsEmptyNotError(t *testing.T) {
	s := newTestStore(t, &mockQuerier{searchRows: nil})

	results, err := s.Search(context.Background(), []float32{1, 0, 0})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestStore_GetResource_NotFound(t *testing.T) {
	s := newTestStore(t, &mockQuerier{getErr: pgx.ErrNoRows})

	_, err := s.GetResource(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStore_DeleteResource(t *testing.T) {
	q := &mockQuerier{deleteAffected: 1}
	s := newTestStore(t, q)

	if err := s.DeleteResource(context.Background(), "res-1"); err != nil {
		t.Fatalf("DeleteResource: %v", err)
	}
	if q.lastDeletedID != "res-1" {
		t.Errorf("deleted ID = %q", q.lastDeletedID)
	}
}

func TestStore_DeleteResource_NotFound(t *testing.T) {
	s := newTestStore(t, &mockQuerier{deleteAffected: 0})

	err := s.DeleteResource(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
