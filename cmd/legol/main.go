// File path: cmd/legol/main.go
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/legol-ai/legol/internal/api"
	"github.com/legol-ai/legol/internal/common"
	"github.com/legol-ai/legol/internal/conversation"
	"github.com/legol-ai/legol/internal/llm"
	"github.com/legol-ai/legol/internal/session"
)

func main() {
	logger := common.Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn("legol: .env file not loaded", "error", err)
	} else {
		logger.Info("legol: environment loaded from .env")
	}

	addr := flag.String("addr", ":5001", "listen address")
	dbPath := flag.String("db", defaultDBPath(), "path to the session database")
	uploadRoot := flag.String("upload-root", "", "directory for uploaded documents (defaults to a temp dir)")
	flag.Parse()

	logger.Info("legol: startup initiated", "addr", *addr, "db", *dbPath)

	if dir := filepath.Dir(*dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("legol: create data directory failed", "dir", dir, "error", err)
			fmt.Println("data directory error:", err)
			os.Exit(1)
		}
	}
	store, err := session.Open(*dbPath)
	if err != nil {
		logger.Error("legol: session store initialization failed", "error", err)
		fmt.Println("session store error:", err)
		os.Exit(1)
	}
	defer store.Close()

	provider := llm.NewProvider()
	logger.Info("legol: llm provider ready", "provider", provider.Name())

	sessions := conversation.NewManager(store)

	cfg := api.DefaultConfig()
	if trimmed := strings.TrimSpace(*uploadRoot); trimmed != "" {
		cfg.UploadRoot = trimmed
	}
	server, err := api.NewServer(sessions, provider, &cfg)
	if err != nil {
		logger.Error("legol: server construction failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}

	logger.Info("legol: server listening", "addr", *addr, "health", "/healthz")
	fmt.Printf("Serving on %s\n", *addr)
	reachable := *addr
	if strings.HasPrefix(reachable, ":") {
		reachable = "localhost" + reachable
	}
	logger.Info("legol: verify reachability", "suggestion", fmt.Sprintf("curl http://%s/healthz", reachable))
	if err := http.ListenAndServe(*addr, server); err != nil {
		logger.Error("legol: server stopped", "error", err)
		fmt.Println("server stopped:", err)
	}
}

func defaultDBPath() string {
	return filepath.Join("data", "sessions.db")
}
