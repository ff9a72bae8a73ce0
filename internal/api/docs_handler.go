// File path: internal/api/docs_handler.go
package api

import (
	"net/http"

	"github.com/legol-ai/legol/internal/docs"
)

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"documents": docs.Catalog()})
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	store := s.sessions.Get(r.Context(), r.URL.Query().Get("session_id"))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"document_ids": store.SuggestedIDs(),
		"documents":    store.SuggestedDocuments(),
	})
}

func (s *Server) handleFlowchart(w http.ResponseWriter, r *http.Request) {
	store := s.sessions.Get(r.Context(), r.URL.Query().Get("session_id"))
	writeJSON(w, http.StatusOK, store.Flowchart())
}
