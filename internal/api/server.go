// File path: internal/api/server.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/legol-ai/legol/internal/agent"
	"github.com/legol-ai/legol/internal/common"
	"github.com/legol-ai/legol/internal/conversation"
	"github.com/legol-ai/legol/internal/llm"
	"github.com/legol-ai/legol/internal/timeline"
)

type Server struct {
	router     chi.Router
	sessions   *conversation.Manager
	provider   llm.Provider
	agent      *agent.Runner
	extractor  *timeline.Extractor
	uploadRoot string
}

// Config controls the server's upload handling.
type Config struct {
	UploadRoot string
}

// DefaultConfig returns the standard configuration used when no overrides
// are provided.
func DefaultConfig() Config {
	return Config{
		UploadRoot: filepath.Join(os.TempDir(), "legol_uploads"),
	}
}

// Merge overlays non-empty configuration fields from the override onto the
// base configuration.
func (c Config) Merge(override Config) Config {
	result := c
	if strings.TrimSpace(override.UploadRoot) != "" {
		result.UploadRoot = strings.TrimSpace(override.UploadRoot)
	}
	return result
}

func NewServer(sessions *conversation.Manager, provider llm.Provider, cfg *Config) (*Server, error) {
	logger := common.Logger()
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	configuration := DefaultConfig()
	if cfg != nil {
		configuration = configuration.Merge(*cfg)
	}
	providerName := "unknown"
	if provider != nil {
		providerName = provider.Name()
	}
	uploadRoot := configuration.UploadRoot
	if err := os.MkdirAll(uploadRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create upload root: %w", err)
	}
	logger.Info("api: building server", "provider", providerName, "upload_root", uploadRoot)
	srv := &Server{
		router:     chi.NewRouter(),
		sessions:   sessions,
		provider:   provider,
		agent:      agent.NewRunner(provider),
		extractor:  timeline.NewExtractor(provider),
		uploadRoot: uploadRoot,
	}
	srv.routes()
	logger.Info("api: server ready")
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	logger.Info("api: configuring routes")
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Post("/v1/chat", s.handleChat)
	s.router.Post("/v1/timeline", s.handleTimeline)
	s.router.Post("/v1/upload", s.handleUpload)
	s.router.Get("/v1/documents", s.handleDocuments)
	s.router.Get("/v1/suggestions", s.handleSuggestions)
	s.router.Get("/v1/flowchart", s.handleFlowchart)
	s.router.Get("/v1/session", s.handleSession)
	s.router.Post("/v1/session/context", s.handleSessionContext)
	s.router.Post("/v1/session/clear", s.handleSessionClear)
	s.router.Get("/v1/logs", s.handleLogs)
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"logs": common.LogEntries()})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
