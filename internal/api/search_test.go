package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragbase/ragbase/internal/sqlc"
)

func TestSearch(t *testing.T) {
	var gotParams sqlc.SearchEmbeddingsParams
	q := &stubQuerier{
		searchFn: func(_ context.Context, arg sqlc.SearchEmbeddingsParams) ([]sqlc.SearchEmbeddingsRow, error) {
			gotParams = arg
			return []sqlc.SearchEmbeddingsRow{
				{Content: "The sky is blue", Similarity: 0.91},
				{Content: "Water boils at 100C", Similarity: 0.55},
			}, nil
		},
	}
	srv := newTestServer(t, q, &stubEmbedder{})

	w := doJSON(t, srv, http.MethodGet, "/api/v1/search?q=sky+color", "")

	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var resp struct {
		Items []searchResultItem `json:"items"`
		Total int                `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "The sky is blue", resp.Items[0].Content)
	assert.InDelta(t, 0.91, resp.Items[0].Similarity, 1e-6)

	// Defaults applied when no limit/floor params are given.
	assert.EqualValues(t, 4, gotParams.ResultLimit)
	assert.InDelta(t, 0.0, gotParams.SimilarityFloor, 1e-9)
}

func TestSearch_MissingQuery(t *testing.T) {
	srv := newTestServer(t, &stubQuerier{}, &stubEmbedder{})

	w := doJSON(t, srv, http.MethodGet, "/api/v1/search", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing_query")
}

func TestSearch_InvalidParams(t *testing.T) {
	srv := newTestServer(t, &stubQuerier{}, &stubEmbedder{})

	tests := []struct {
		name string
		path string
		code string
	}{
		{"zero limit", "/api/v1/search?q=x&limit=0", "invalid_limit"},
		{"huge limit", "/api/v1/search?q=x&limit=101", "invalid_limit"},
		{"negative floor", "/api/v1/search?q=x&floor=-0.5", "invalid_floor"},
		{"floor above one", "/api/v1/search?q=x&floor=1.5", "invalid_floor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, srv, http.MethodGet, tt.path, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.code)
		})
	}
}

func TestSearch_CustomParamsForwarded(t *testing.T) {
	var gotParams sqlc.SearchEmbeddingsParams
	q := &stubQuerier{
		searchFn: func(_ context.Context, arg sqlc.SearchEmbeddingsParams) ([]sqlc.SearchEmbeddingsRow, error) {
			gotParams = arg
			return nil, nil
		},
	}
	srv := newTestServer(t, q, &stubEmbedder{})

	w := doJSON(t, srv, http.MethodGet, "/api/v1/search?q=x&limit=10&floor=0.8", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 10, gotParams.ResultLimit)
	assert.InDelta(t, 0.8, gotParams.SimilarityFloor, 1e-9)
}

func TestSearch_EmbeddingFailureIsError(t *testing.T) {
	srv := newTestServer(t, &stubQuerier{}, &stubEmbedder{err: errors.New("provider down")})

	w := doJSON(t, srv, http.MethodGet, "/api/v1/search?q=anything", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "search_failed")
}

func TestSearch_NoResultsIsEmptyList(t *testing.T) {
	srv := newTestServer(t, &stubQuerier{}, &stubEmbedder{})

	w := doJSON(t, srv, http.MethodGet, "/api/v1/search?q=unrelated", "")

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []searchResultItem `json:"items"`
		Total int                `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
	assert.Zero(t, resp.Total)
}
