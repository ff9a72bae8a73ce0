// File path: internal/conversation/store.go
package conversation

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/legol-ai/legol/internal/common"
	"github.com/legol-ai/legol/internal/docs"
	"github.com/legol-ai/legol/internal/flowchart"
	"github.com/legol-ai/legol/internal/timeline"
)

// Greeting opens every fresh conversation.
const Greeting = "Hello! I'm your LEGOL immigration assistant. I can help answer questions about dual citizenship, work visas, document requirements, and more. How can I assist you today?"

const (
	DefaultCountry     = "Singapore"
	DefaultInstitution = "Carnegie Mellon University"
)

// State is the serializable snapshot of one conversation.
type State struct {
	Messages        []docs.Message `json:"messages"`
	StudentCountry  string         `json:"student_country"`
	Institution     string         `json:"institution"`
	Topic           string         `json:"topic,omitempty"`
	SuggestedDocIDs []string       `json:"suggested_doc_ids"`
}

// Store holds one conversation's state. Suggestions are recomputed on every
// append so reads never observe a transcript and a stale suggestion list
// together. The timeline cache is keyed by message count and dropped whenever
// the transcript grows.
type Store struct {
	mu    sync.RWMutex
	state State

	timelineItems []timeline.Item
	timelineCount int
	timelineValid bool
}

func NewStore() *Store {
	return &Store{state: seededState()}
}

func seededState() State {
	return State{
		Messages:        []docs.Message{{Role: docs.RoleAssistant, Text: Greeting}},
		StudentCountry:  DefaultCountry,
		Institution:     DefaultInstitution,
		SuggestedDocIDs: docs.DefaultSuggestedIDs(),
	}
}

// Append records a turn and synchronously recomputes the suggestion list.
func (s *Store) Append(role, text string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Messages = append(s.state.Messages, docs.Message{Role: role, Text: text})
	s.state.SuggestedDocIDs = docs.Suggest(s.state.Messages)
	s.timelineValid = false
}

// Messages returns a copy of the transcript.
func (s *Store) Messages() []docs.Message {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]docs.Message(nil), s.state.Messages...)
}

func (s *Store) MessageCount() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.Messages)
}

// View returns a copy of the full state for read-only use.
func (s *Store) View() State {
	if s == nil {
		return State{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyStateLocked()
}

func (s *Store) copyStateLocked() State {
	view := s.state
	view.Messages = append([]docs.Message(nil), s.state.Messages...)
	view.SuggestedDocIDs = append([]string(nil), s.state.SuggestedDocIDs...)
	return view
}

// Snapshot serializes the state for persistence.
func (s *Store) Snapshot() ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("store unavailable")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, err := json.Marshal(s.state)
	if err != nil {
		return nil, fmt.Errorf("marshal conversation state: %w", err)
	}
	return payload, nil
}

// Restore replaces the state with a persisted snapshot. An empty or corrupt
// snapshot falls back to the seeded state rather than failing the session.
func (s *Store) Restore(payload []byte) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var restored State
	if len(payload) == 0 || json.Unmarshal(payload, &restored) != nil || len(restored.Messages) == 0 {
		common.Logger().Warn("conversation: unusable snapshot, seeding defaults", "bytes", len(payload))
		s.state = seededState()
		s.timelineValid = false
		return
	}
	if strings.TrimSpace(restored.StudentCountry) == "" {
		restored.StudentCountry = DefaultCountry
	}
	if strings.TrimSpace(restored.Institution) == "" {
		restored.Institution = DefaultInstitution
	}
	restored.SuggestedDocIDs = docs.Suggest(restored.Messages)
	s.state = restored
	s.timelineValid = false
}

// Reset discards the conversation and reseeds defaults.
func (s *Store) Reset() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = seededState()
	s.timelineValid = false
}

// SetContext updates the session facts; blank fields leave the current value
// in place.
func (s *Store) SetContext(country, institution, topic string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if v := strings.TrimSpace(country); v != "" {
		s.state.StudentCountry = v
	}
	if v := strings.TrimSpace(institution); v != "" {
		s.state.Institution = v
	}
	if v := strings.TrimSpace(topic); v != "" {
		s.state.Topic = v
	}
}

func (s *Store) SuggestedIDs() []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.state.SuggestedDocIDs...)
}

func (s *Store) SuggestedDocuments() []docs.Document {
	return docs.Resolve(s.SuggestedIDs())
}

// Flowchart derives the graph from the current suggestions on every call.
func (s *Store) Flowchart() flowchart.Graph {
	return flowchart.Assemble(s.SuggestedDocuments())
}

// CachedTimeline returns the memoized timeline when the transcript has not
// grown since it was stored.
func (s *Store) CachedTimeline() ([]timeline.Item, bool) {
	if s == nil {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.timelineValid || s.timelineCount != len(s.state.Messages) {
		return nil, false
	}
	return append([]timeline.Item(nil), s.timelineItems...), true
}

// StoreTimeline memoizes extracted items against the current message count.
func (s *Store) StoreTimeline(items []timeline.Item) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timelineItems = append([]timeline.Item(nil), items...)
	s.timelineCount = len(s.state.Messages)
	s.timelineValid = true
}
