package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mtlahti/choreboard/internal/store"
	ws "github.com/mtlahti/choreboard/internal/websocket"
)

type ContentHandler struct {
	contents store.Contents
	hub      *ws.Hub
	logger   *slog.Logger
}

func NewContentHandler(contents store.Contents, hub *ws.Hub, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{contents: contents, hub: hub, logger: logger}
}

// List handles GET /api/content
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.contents.GetAll()
	if err != nil {
		h.logger.Error("list content", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list content"})
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Get handles GET /api/content/{key}
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	item, err := h.contents.Get(key)
	if err != nil {
		h.logger.Error("get content", "key", key, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get content"})
		return
	}
	if item == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "content not found"})
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type upsertContentRequest struct {
	Value       string  `json:"value"`
	Description *string `json:"description"`
}

// Upsert handles PUT /api/content/{key}. Admin only; the existing id is kept
// when the key is already present.
func (h *ContentHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(r.PathValue("key"))
	if key == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "key is required"})
		return
	}

	var req upsertContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	item, err := h.contents.Upsert(key, req.Value, req.Description)
	if err != nil {
		h.logger.Error("upsert content", "key", key, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save content"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("content", "updated", key, nil))
	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/content/{key}. Admin only.
func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	removed, err := h.contents.Delete(key)
	if err != nil {
		h.logger.Error("delete content", "key", key, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete content"})
		return
	}
	if !removed {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "content not found"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("content", "deleted", key, nil))
	w.WriteHeader(http.StatusNoContent)
}
