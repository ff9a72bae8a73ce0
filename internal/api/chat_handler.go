// File path: internal/api/chat_handler.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/legol-ai/legol/internal/agent"
	"github.com/legol-ai/legol/internal/common"
	"github.com/legol-ai/legol/internal/docs"
	"github.com/legol-ai/legol/internal/llm"
)

type chatRequest struct {
	Query     string   `json:"query"`
	SessionID string   `json:"session_id,omitempty"`
	Files     []string `json:"files,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	ctx := r.Context()
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("api: chat decode failed", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		logger.Warn("api: chat query missing")
		writeError(w, http.StatusBadRequest, fmt.Errorf("query required"))
		return
	}
	logger.Info("api: chat request received", "query_length", len(query), "files", len(req.Files))

	store := s.sessions.Get(ctx, req.SessionID)
	userTurn := query
	if len(req.Files) > 0 {
		userTurn = fmt.Sprintf("%s\n\n[Attached files: %s]", query, strings.Join(req.Files, ", "))
	}
	store.Append(docs.RoleUser, userTurn)

	transcript := make([]llm.Message, 0, store.MessageCount())
	for _, msg := range store.Messages() {
		transcript = append(transcript, llm.Message{Role: msg.Role, Content: msg.Text})
	}
	view := store.View()
	answer, err := s.agent.Respond(ctx, transcript, agent.SessionContext{
		StudentCountry: view.StudentCountry,
		Institution:    view.Institution,
		Topic:          view.Topic,
	})
	if err != nil {
		logger.Error("api: chat completion failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	store.Append(docs.RoleAssistant, answer)
	if err := s.sessions.Save(ctx, req.SessionID); err != nil {
		logger.Warn("api: chat session persist failed", "error", err)
	}

	providerName := "unknown"
	if s.provider != nil {
		providerName = s.provider.Name()
	}
	logger.Info("api: chat completion succeeded", "provider", providerName)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"answer":            answer,
		"provider":          providerName,
		"suggested_doc_ids": store.SuggestedIDs(),
	})
}
