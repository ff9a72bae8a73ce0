// File path: internal/api/session_handler.go
package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/legol-ai/legol/internal/common"
)

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	store := s.sessions.Get(r.Context(), r.URL.Query().Get("session_id"))
	writeJSON(w, http.StatusOK, store.View())
}

type sessionContextRequest struct {
	SessionID      string `json:"session_id,omitempty"`
	StudentCountry string `json:"student_country,omitempty"`
	Institution    string `json:"institution,omitempty"`
	Topic          string `json:"topic,omitempty"`
}

func (s *Server) handleSessionContext(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	ctx := r.Context()
	var req sessionContextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("api: session context decode failed", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	store := s.sessions.Get(ctx, req.SessionID)
	store.SetContext(req.StudentCountry, req.Institution, req.Topic)
	if err := s.sessions.Save(ctx, req.SessionID); err != nil {
		logger.Warn("api: session context persist failed", "error", err)
	}
	writeJSON(w, http.StatusOK, store.View())
}

type sessionClearRequest struct {
	SessionID string `json:"session_id,omitempty"`
}

func (s *Server) handleSessionClear(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	ctx := r.Context()
	var req sessionClearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		logger.Warn("api: session clear decode failed", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.sessions.Clear(ctx, req.SessionID); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	logger.Info("api: session cleared", "session", req.SessionID)
	writeJSON(w, http.StatusOK, s.sessions.Get(ctx, req.SessionID).View())
}
