package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ragbase/ragbase/internal/knowledge"
)

const (
	// maxResourceContentBytes caps a single ingested resource body.
	maxResourceContentBytes = 1 << 20 // 1 MiB

	maxListLimit = 500
)

// resourceHandler holds dependencies for the resource endpoints.
type resourceHandler struct {
	store    *knowledge.Store
	ingestor *knowledge.Ingestor
	logger   *slog.Logger
}

type createResourceRequest struct {
	Content string `json:"content"`
}

type createResourceResponse struct {
	ID              string `json:"id"`
	ChunkCount      int    `json:"chunkCount"`
	EmbeddingFailed bool   `json:"embeddingFailed,omitempty"`
	Message         string `json:"message"`
}

// createResource handles POST /api/v1/resources.
func (h *resourceHandler) createResource(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxResourceContentBytes)

	var req createResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteError(w, http.StatusRequestEntityTooLarge, "content_too_large", "resource content exceeds 1 MiB", h.logger)
			return
		}
		WriteError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", h.logger)
		return
	}

	result, err := h.ingestor.Ingest(r.Context(), req.Content)
	if err != nil {
		if errors.Is(err, knowledge.ErrEmptyContent) {
			WriteError(w, http.StatusBadRequest, "empty_content", "content must not be empty", h.logger)
			return
		}
		h.logger.Error("ingesting resource", "error", err)
		WriteError(w, http.StatusInternalServerError, "ingest_failed", "failed to ingest resource", h.logger)
		return
	}

	WriteJSON(w, http.StatusCreated, createResourceResponse{
		ID:              result.ResourceID,
		ChunkCount:      result.ChunkCount,
		EmbeddingFailed: result.EmbeddingFailed,
		Message:         knowledge.MsgResourceCreated,
	}, h.logger)
}

// resourceItem is the JSON representation of a stored resource.
type resourceItem struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toResourceItem(res knowledge.Resource) resourceItem {
	return resourceItem{
		ID:        res.ID,
		Content:   res.Content,
		CreatedAt: res.CreatedAt.Format(time.RFC3339),
		UpdatedAt: res.UpdatedAt.Format(time.RFC3339),
	}
}

// listResources handles GET /api/v1/resources?limit=100.
func (h *resourceHandler) listResources(w http.ResponseWriter, r *http.Request) {
	limit := min(parseIntParam(r, "limit", 100), maxListLimit)

	resources, err := h.store.ListResources(r.Context(), int32(limit))
	if err != nil {
		h.logger.Error("listing resources", "error", err)
		WriteError(w, http.StatusInternalServerError, "list_failed", "failed to list resources", h.logger)
		return
	}

	total, err := h.store.CountResources(r.Context())
	if err != nil {
		h.logger.Error("counting resources", "error", err)
		WriteError(w, http.StatusInternalServerError, "list_failed", "failed to list resources", h.logger)
		return
	}

	items := make([]resourceItem, len(resources))
	for i, res := range resources {
		items[i] = toResourceItem(res)
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
	}, h.logger)
}

// getResource handles GET /api/v1/resources/{id}.
func (h *resourceHandler) getResource(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	res, err := h.store.GetResource(r.Context(), id)
	if err != nil {
		if errors.Is(err, knowledge.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "not_found", "resource not found", h.logger)
			return
		}
		h.logger.Error("getting resource", "error", err, "resource_id", id)
		WriteError(w, http.StatusInternalServerError, "get_failed", "failed to get resource", h.logger)
		return
	}

	chunks, err := h.store.CountChunks(r.Context(), id)
	if err != nil {
		h.logger.Error("counting chunks", "error", err, "resource_id", id)
		WriteError(w, http.StatusInternalServerError, "get_failed", "failed to get resource", h.logger)
		return
	}

	item := toResourceItem(res)
	WriteJSON(w, http.StatusOK, map[string]any{
		"id":         item.ID,
		"content":    item.Content,
		"createdAt":  item.CreatedAt,
		"updatedAt":  item.UpdatedAt,
		"chunkCount": chunks,
	}, h.logger)
}

// deleteResource handles DELETE /api/v1/resources/{id}. Chunks cascade.
func (h *resourceHandler) deleteResource(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.store.DeleteResource(r.Context(), id); err != nil {
		if errors.Is(err, knowledge.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "not_found", "resource not found", h.logger)
			return
		}
		h.logger.Error("deleting resource", "error", err, "resource_id", id)
		WriteError(w, http.StatusInternalServerError, "delete_failed", "failed to delete resource", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseIntParam reads an integer query parameter, falling back to def on
// absence or garbage. Negative values also fall back.
func parseIntParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}
