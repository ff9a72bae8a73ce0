// File path: internal/conversation/manager.go
package conversation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/legol-ai/legol/internal/common"
)

// DefaultSession is used when a request does not name a session.
const DefaultSession = "default"

// Persistence stores conversation snapshots keyed by session id.
type Persistence interface {
	SaveSnapshot(ctx context.Context, sessionID string, payload []byte) error
	LoadSnapshot(ctx context.Context, sessionID string) ([]byte, bool, error)
	DeleteSnapshot(ctx context.Context, sessionID string) error
}

// Manager tracks live conversation stores per session and round-trips them
// through persistence. A nil persistence backend keeps sessions in memory
// only.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Store
	persist  Persistence
}

func NewManager(persist Persistence) *Manager {
	return &Manager{sessions: make(map[string]*Store), persist: persist}
}

// Get returns the live store for a session, loading the persisted snapshot
// on first access. Load failures degrade to a seeded store.
func (m *Manager) Get(ctx context.Context, sessionID string) *Store {
	sessionID = normalizeSession(sessionID)
	m.mu.Lock()
	defer m.mu.Unlock()
	if store, ok := m.sessions[sessionID]; ok {
		return store
	}
	store := NewStore()
	if m.persist != nil {
		payload, found, err := m.persist.LoadSnapshot(ctx, sessionID)
		if err != nil {
			common.Logger().Warn("conversation: snapshot load failed", "session", sessionID, "error", err)
		} else if found {
			store.Restore(payload)
		}
	}
	m.sessions[sessionID] = store
	return store
}

// Save persists the session's current snapshot.
func (m *Manager) Save(ctx context.Context, sessionID string) error {
	if m.persist == nil {
		return nil
	}
	sessionID = normalizeSession(sessionID)
	m.mu.Lock()
	store, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown session %q", sessionID)
	}
	payload, err := store.Snapshot()
	if err != nil {
		return err
	}
	if err := m.persist.SaveSnapshot(ctx, sessionID, payload); err != nil {
		return fmt.Errorf("persist session %q: %w", sessionID, err)
	}
	return nil
}

// Clear reseeds the session and removes its persisted snapshot.
func (m *Manager) Clear(ctx context.Context, sessionID string) error {
	sessionID = normalizeSession(sessionID)
	m.mu.Lock()
	store, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if ok {
		store.Reset()
	}
	if m.persist == nil {
		return nil
	}
	if err := m.persist.DeleteSnapshot(ctx, sessionID); err != nil {
		return fmt.Errorf("clear session %q: %w", sessionID, err)
	}
	return nil
}

func normalizeSession(sessionID string) string {
	if trimmed := strings.TrimSpace(sessionID); trimmed != "" {
		return trimmed
	}
	return DefaultSession
}
