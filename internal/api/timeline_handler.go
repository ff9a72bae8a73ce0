// File path: internal/api/timeline_handler.go
package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/legol-ai/legol/internal/common"
)

type timelineRequest struct {
	SessionID string `json:"session_id,omitempty"`
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	ctx := r.Context()
	var req timelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		logger.Warn("api: timeline decode failed", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}

	store := s.sessions.Get(ctx, req.SessionID)
	if items, ok := store.CachedTimeline(); ok {
		logger.Debug("api: timeline served from cache", "items", len(items))
		writeJSON(w, http.StatusOK, map[string]interface{}{"items": items, "cached": true})
		return
	}

	items, err := s.extractor.Extract(ctx, store.Messages())
	if err != nil {
		// Degrade to an empty timeline; the next call retries extraction.
		logger.Warn("api: timeline extraction failed", "error", err)
		writeJSON(w, http.StatusOK, map[string]interface{}{"items": []interface{}{}, "cached": false})
		return
	}
	store.StoreTimeline(items)
	if err := s.sessions.Save(ctx, req.SessionID); err != nil {
		logger.Warn("api: timeline session persist failed", "error", err)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items, "cached": false})
}
