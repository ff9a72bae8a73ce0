// File path: internal/conversation/manager_test.go
package conversation

import (
	"context"
	"fmt"
	"testing"

	"github.com/legol-ai/legol/internal/docs"
)

type memoryPersistence struct {
	snapshots map[string][]byte
	failLoad  bool
}

func newMemoryPersistence() *memoryPersistence {
	return &memoryPersistence{snapshots: make(map[string][]byte)}
}

func (m *memoryPersistence) SaveSnapshot(ctx context.Context, sessionID string, payload []byte) error {
	m.snapshots[sessionID] = append([]byte(nil), payload...)
	return nil
}

func (m *memoryPersistence) LoadSnapshot(ctx context.Context, sessionID string) ([]byte, bool, error) {
	if m.failLoad {
		return nil, false, fmt.Errorf("backend offline")
	}
	payload, ok := m.snapshots[sessionID]
	return payload, ok, nil
}

func (m *memoryPersistence) DeleteSnapshot(ctx context.Context, sessionID string) error {
	delete(m.snapshots, sessionID)
	return nil
}

func TestManagerRoundTrip(t *testing.T) {
	persist := newMemoryPersistence()
	ctx := context.Background()

	first := NewManager(persist)
	store := first.Get(ctx, DefaultSession)
	store.Append(docs.RoleUser, "How do I renew my visa?")
	if err := first.Save(ctx, DefaultSession); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	second := NewManager(persist)
	restored := second.Get(ctx, DefaultSession)
	messages := restored.Messages()
	if len(messages) != 2 {
		t.Fatalf("expected restored transcript of 2, got %d", len(messages))
	}
	if messages[1].Text != "How do I renew my visa?" {
		t.Fatalf("unexpected restored turn: %+v", messages[1])
	}
}

func TestManagerBlankSessionUsesDefault(t *testing.T) {
	manager := NewManager(nil)
	ctx := context.Background()
	if manager.Get(ctx, "") != manager.Get(ctx, DefaultSession) {
		t.Fatalf("blank session id should alias the default session")
	}
}

func TestManagerCorruptSnapshotSeedsDefaults(t *testing.T) {
	persist := newMemoryPersistence()
	persist.snapshots[DefaultSession] = []byte("{corrupt")

	store := NewManager(persist).Get(context.Background(), DefaultSession)
	messages := store.Messages()
	if len(messages) != 1 || messages[0].Text != Greeting {
		t.Fatalf("corrupt snapshot should seed defaults, got %+v", messages)
	}
}

func TestManagerLoadFailureDegradesToSeeded(t *testing.T) {
	persist := newMemoryPersistence()
	persist.failLoad = true

	store := NewManager(persist).Get(context.Background(), DefaultSession)
	if len(store.Messages()) != 1 {
		t.Fatalf("load failure should still yield a usable seeded store")
	}
}

func TestManagerClear(t *testing.T) {
	persist := newMemoryPersistence()
	ctx := context.Background()
	manager := NewManager(persist)

	store := manager.Get(ctx, DefaultSession)
	store.Append(docs.RoleUser, "hello")
	if err := manager.Save(ctx, DefaultSession); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := manager.Clear(ctx, DefaultSession); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := persist.snapshots[DefaultSession]; ok {
		t.Fatalf("clear should remove the persisted snapshot")
	}
	if len(store.Messages()) != 1 {
		t.Fatalf("clear should reseed the live store")
	}
}

func TestManagerSaveUnknownSession(t *testing.T) {
	manager := NewManager(newMemoryPersistence())
	if err := manager.Save(context.Background(), "ghost"); err == nil {
		t.Fatalf("saving a session that was never loaded should fail")
	}
}

func TestManagerWithoutPersistence(t *testing.T) {
	manager := NewManager(nil)
	ctx := context.Background()
	store := manager.Get(ctx, DefaultSession)
	store.Append(docs.RoleUser, "hi")
	if err := manager.Save(ctx, DefaultSession); err != nil {
		t.Fatalf("save without persistence should be a no-op, got %v", err)
	}
	if err := manager.Clear(ctx, DefaultSession); err != nil {
		t.Fatalf("clear without persistence should be a no-op, got %v", err)
	}
}
