package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ragbase/ragbase/internal/knowledge"
)

// maxSearchQueryLength is the maximum allowed search query length in bytes.
const maxSearchQueryLength = 1000

// searchHandler holds dependencies for the search endpoint.
type searchHandler struct {
	retriever *knowledge.Retriever
	logger    *slog.Logger
}

// searchResultItem is the JSON representation of a search hit.
type searchResultItem struct {
	Content    string  `json:"content"`
	Similarity float32 `json:"similarity"`
}

// search handles GET /api/v1/search?q=...&limit=4&floor=0.5.
// Results are ordered most similar first; an empty list means nothing
// stored is relevant enough, not an error.
func (h *searchHandler) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		WriteError(w, http.StatusBadRequest, "missing_query", "query parameter 'q' is required", h.logger)
		return
	}
	if len(query) > maxSearchQueryLength {
		WriteError(w, http.StatusBadRequest, "query_too_long", "query must be 1000 characters or fewer", h.logger)
		return
	}

	var opts []knowledge.SearchOption
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > 100 {
			WriteError(w, http.StatusBadRequest, "invalid_limit", "limit must be between 1 and 100", h.logger)
			return
		}
		opts = append(opts, knowledge.WithLimit(int32(limit)))
	}
	if raw := r.URL.Query().Get("floor"); raw != "" {
		floor, err := strconv.ParseFloat(raw, 64)
		if err != nil || floor < 0 || floor > 1 {
			WriteError(w, http.StatusBadRequest, "invalid_floor", "floor must be within [0, 1]", h.logger)
			return
		}
		opts = append(opts, knowledge.WithSimilarityFloor(floor))
	}

	results, err := h.retriever.FindRelevant(r.Context(), query, opts...)
	if err != nil {
		h.logger.Error("searching knowledge base", "error", err, "query_len", len(query))
		WriteError(w, http.StatusInternalServerError, "search_failed", "failed to search knowledge base", h.logger)
		return
	}

	items := make([]searchResultItem, len(results))
	for i, sr := range results {
		items[i] = searchResultItem{Content: sr.Content, Similarity: sr.Similarity}
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": len(items),
	}, h.logger)
}
