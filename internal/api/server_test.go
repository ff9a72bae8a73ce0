// File path: internal/api/server_test.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/legol-ai/legol/internal/conversation"
	"github.com/legol-ai/legol/internal/docs"
	"github.com/legol-ai/legol/internal/llm"
	"github.com/legol-ai/legol/internal/llm/providers"
)

type memoryPersistence struct {
	snapshots map[string][]byte
}

func newMemoryPersistence() *memoryPersistence {
	return &memoryPersistence{snapshots: make(map[string][]byte)}
}

func (m *memoryPersistence) SaveSnapshot(ctx context.Context, sessionID string, payload []byte) error {
	m.snapshots[sessionID] = append([]byte(nil), payload...)
	return nil
}

func (m *memoryPersistence) LoadSnapshot(ctx context.Context, sessionID string) ([]byte, bool, error) {
	payload, ok := m.snapshots[sessionID]
	return payload, ok, nil
}

func (m *memoryPersistence) DeleteSnapshot(ctx context.Context, sessionID string) error {
	delete(m.snapshots, sessionID)
	return nil
}

type scriptedProvider struct {
	response string
}

func (s *scriptedProvider) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	return s.response, nil
}

func (s *scriptedProvider) Name() string { return "scripted" }

func newTestServer(t *testing.T, provider llm.Provider) (*Server, *memoryPersistence) {
	t.Helper()
	if provider == nil {
		provider = providers.NewLocalProvider()
	}
	persist := newMemoryPersistence()
	srv, err := NewServer(conversation.NewManager(persist), provider, &Config{UploadRoot: t.TempDir()})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv, persist
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestChatAppendsTurnsAndUpdatesSuggestions(t *testing.T) {
	srv, persist := newTestServer(t, nil)

	body := strings.NewReader(`{"query": "What documents do I need for an F-1 visa interview?"}`)
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/v1/chat", body))
	if resp.Code != http.StatusOK {
		t.Fatalf("chat failed: %d %s", resp.Code, resp.Body.String())
	}

	var payload struct {
		Answer          string   `json:"answer"`
		Provider        string   `json:"provider"`
		SuggestedDocIDs []string `json:"suggested_doc_ids"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode chat response: %v", err)
	}
	if payload.Answer == "" || payload.Provider != "local" {
		t.Fatalf("unexpected chat payload: %+v", payload)
	}
	found := false
	for _, id := range payload.SuggestedDocIDs {
		if id == "ds-160" {
			found = true
		}
	}
	if !found {
		t.Fatalf("visa question should suggest ds-160, got %v", payload.SuggestedDocIDs)
	}

	store := srv.sessions.Get(context.Background(), conversation.DefaultSession)
	messages := store.Messages()
	if len(messages) != 3 {
		t.Fatalf("expected greeting + user + assistant, got %d", len(messages))
	}
	if messages[1].Role != docs.RoleUser || messages[2].Role != docs.RoleAssistant {
		t.Fatalf("unexpected transcript roles: %+v", messages)
	}
	if _, ok := persist.snapshots[conversation.DefaultSession]; !ok {
		t.Fatalf("chat should persist the session snapshot")
	}
}

func TestChatRequiresQuery(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(`{"query": "  "}`)))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank query, got %d", resp.Code)
	}
}

func TestDocumentsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/v1/documents", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("documents failed: %d", resp.Code)
	}
	var payload struct {
		Documents []docs.Document `json:"documents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode documents: %v", err)
	}
	if len(payload.Documents) != len(docs.Catalog()) {
		t.Fatalf("expected full catalog, got %d documents", len(payload.Documents))
	}
}

func TestSuggestionsEndpointDefaults(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/v1/suggestions", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("suggestions failed: %d", resp.Code)
	}
	var payload struct {
		DocumentIDs []string        `json:"document_ids"`
		Documents   []docs.Document `json:"documents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode suggestions: %v", err)
	}
	if len(payload.DocumentIDs) != len(docs.DefaultSuggestedIDs()) {
		t.Fatalf("fresh session should return defaults, got %v", payload.DocumentIDs)
	}
	if len(payload.Documents) != len(payload.DocumentIDs) {
		t.Fatalf("documents and ids should align: %d vs %d", len(payload.Documents), len(payload.DocumentIDs))
	}
}

func TestSuggestionsHonorSessionIDParameter(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	body := strings.NewReader(`{"query": "How do I file my tax returns?", "session_id": "alpha"}`)
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/v1/chat", body))
	if resp.Code != http.StatusOK {
		t.Fatalf("chat failed: %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	srv.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/v1/suggestions?session_id=alpha", nil))
	var alpha struct {
		DocumentIDs []string `json:"document_ids"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&alpha); err != nil {
		t.Fatalf("decode alpha suggestions: %v", err)
	}
	found := false
	for _, id := range alpha.DocumentIDs {
		if id == "tax-returns" {
			found = true
		}
	}
	if !found {
		t.Fatalf("session_id parameter should select the chatted session, got %v", alpha.DocumentIDs)
	}

	resp = httptest.NewRecorder()
	srv.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/v1/suggestions?session_id=beta", nil))
	var beta struct {
		DocumentIDs []string `json:"document_ids"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&beta); err != nil {
		t.Fatalf("decode beta suggestions: %v", err)
	}
	if len(beta.DocumentIDs) != len(docs.DefaultSuggestedIDs()) {
		t.Fatalf("untouched session should stay at defaults, got %v", beta.DocumentIDs)
	}
}

func TestFlowchartEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/v1/flowchart", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("flowchart failed: %d", resp.Code)
	}
	var payload struct {
		Documents   []json.RawMessage `json:"documents"`
		Analyses    []json.RawMessage `json:"analyses"`
		LegalTexts  []json.RawMessage `json:"legal_texts"`
		Connections []json.RawMessage `json:"connections"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode flowchart: %v", err)
	}
	if len(payload.Documents) != len(docs.DefaultSuggestedIDs()) {
		t.Fatalf("flowchart should project the default suggestions, got %d nodes", len(payload.Documents))
	}
}

func TestSessionContextAndClear(t *testing.T) {
	srv, persist := newTestServer(t, nil)

	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/v1/session/context",
		strings.NewReader(`{"student_country": "Brazil", "topic": "work visas"}`)))
	if resp.Code != http.StatusOK {
		t.Fatalf("session context failed: %d", resp.Code)
	}
	var state conversation.State
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode session state: %v", err)
	}
	if state.StudentCountry != "Brazil" || state.Topic != "work visas" {
		t.Fatalf("context not applied: %+v", state)
	}
	if state.Institution != conversation.DefaultInstitution {
		t.Fatalf("unset field should keep default, got %q", state.Institution)
	}

	resp = httptest.NewRecorder()
	srv.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/v1/session/clear", strings.NewReader(`{}`)))
	if resp.Code != http.StatusOK {
		t.Fatalf("session clear failed: %d", resp.Code)
	}
	var cleared conversation.State
	if err := json.NewDecoder(resp.Body).Decode(&cleared); err != nil {
		t.Fatalf("decode cleared state: %v", err)
	}
	if cleared.StudentCountry != conversation.DefaultCountry || len(cleared.Messages) != 1 {
		t.Fatalf("clear should reseed defaults: %+v", cleared)
	}
	if _, ok := persist.snapshots[conversation.DefaultSession]; ok {
		t.Fatalf("clear should drop the persisted snapshot")
	}
}

func TestTimelineExtractionAndCache(t *testing.T) {
	provider := &scriptedProvider{response: `{"items": [{"title": "Pay SEVIS fee", "description": "Before the visa interview.", "related_documents": ["sevis-receipt"]}]}`}
	srv, _ := newTestServer(t, provider)

	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/v1/timeline", strings.NewReader(`{}`)))
	if resp.Code != http.StatusOK {
		t.Fatalf("timeline failed: %d %s", resp.Code, resp.Body.String())
	}
	var first struct {
		Items  []json.RawMessage `json:"items"`
		Cached bool              `json:"cached"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&first); err != nil {
		t.Fatalf("decode timeline: %v", err)
	}
	if first.Cached || len(first.Items) != 1 {
		t.Fatalf("expected fresh extraction with one item: %+v", first)
	}

	resp = httptest.NewRecorder()
	srv.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/v1/timeline", strings.NewReader(`{}`)))
	var second struct {
		Cached bool `json:"cached"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&second); err != nil {
		t.Fatalf("decode cached timeline: %v", err)
	}
	if !second.Cached {
		t.Fatalf("second call with unchanged transcript should hit the cache")
	}
}

func TestTimelineDegradesOnUndecodableResponse(t *testing.T) {
	srv, _ := newTestServer(t, &scriptedProvider{response: "I cannot answer in JSON."})

	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/v1/timeline", strings.NewReader(`{}`)))
	if resp.Code != http.StatusOK {
		t.Fatalf("degraded timeline should still return 200, got %d", resp.Code)
	}
	var payload struct {
		Items  []json.RawMessage `json:"items"`
		Cached bool              `json:"cached"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode degraded timeline: %v", err)
	}
	if len(payload.Items) != 0 || payload.Cached {
		t.Fatalf("expected empty uncached timeline, got %+v", payload)
	}
}

func TestUploadSavesFiles(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("files", "../passport.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("pdf bytes")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("upload failed: %d %s", resp.Code, resp.Body.String())
	}
	var payload struct {
		Files []uploadedFile `json:"files"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if len(payload.Files) != 1 || payload.Files[0].Filename != "passport.pdf" {
		t.Fatalf("path components should be stripped: %+v", payload.Files)
	}
	if _, err := os.Stat(filepath.Join(srv.uploadRoot, "passport.pdf")); err != nil {
		t.Fatalf("uploaded file missing: %v", err)
	}
}

func TestUploadRejectsParentDirectoryName(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("files", "..")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("x")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for parent-directory name, got %d", resp.Code)
	}
}

func TestUploadRequiresFiles(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 when no files attached, got %d", resp.Code)
	}
}
