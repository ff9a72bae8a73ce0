// File path: internal/timeline/extractor.go
package timeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/legol-ai/legol/internal/common"
	"github.com/legol-ai/legol/internal/docs"
	"github.com/legol-ai/legol/internal/llm"
)

// Item is one milestone extracted from the conversation.
type Item struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	RelatedDocuments []string `json:"related_documents,omitempty"`
	DueDate          string   `json:"due_date,omitempty"`
}

const extractionPrompt = "You are an immigration planning assistant. " +
	"Read the conversation and extract the concrete milestones the student should plan for. " +
	"Output JSON ONLY, no prose, in the form " +
	`{"items": [{"title": "...", "description": "...", "related_documents": ["doc-id"], "due_date": "optional"}]}. ` +
	"Use document ids from the official checklist where they apply. " +
	"Return an empty items array when the conversation holds no plannable milestones."

// Extractor turns a transcript into timeline items via the chat provider.
type Extractor struct {
	provider llm.Provider
}

func NewExtractor(provider llm.Provider) *Extractor {
	return &Extractor{provider: provider}
}

// Extract prompts the provider with the transcript and decodes the JSON it
// returns. Provider and decode failures surface as errors; they never leave
// partial results behind.
func (e *Extractor) Extract(ctx context.Context, transcript []docs.Message) ([]Item, error) {
	if e == nil || e.provider == nil {
		return nil, fmt.Errorf("timeline provider unavailable")
	}
	logger := common.Logger()
	messages := []llm.Message{{Role: "system", Content: extractionPrompt}}
	for _, msg := range transcript {
		messages = append(messages, llm.Message{Role: msg.Role, Content: msg.Text})
	}
	messages = append(messages, llm.Message{Role: "user", Content: "Extract the timeline now."})
	answer, err := e.provider.Chat(ctx, messages)
	if err != nil {
		logger.Error("timeline: extraction request failed", "error", err)
		return nil, err
	}
	items, err := DecodeItems(answer)
	if err != nil {
		logger.Warn("timeline: extraction returned undecodable payload", "error", err)
		return nil, err
	}
	logger.Info("timeline: extraction succeeded", "items", len(items))
	return items, nil
}

// DecodeItems parses a provider response into items. Responses wrapped in
// markdown code fences are unwrapped first; both {"items": [...]} envelopes
// and bare arrays are accepted.
func DecodeItems(content string) ([]Item, error) {
	payload := StripFences(content)
	if payload == "" {
		return nil, fmt.Errorf("empty timeline payload")
	}
	var envelope struct {
		Items []Item `json:"items"`
	}
	if err := json.Unmarshal([]byte(payload), &envelope); err == nil {
		if envelope.Items == nil {
			envelope.Items = []Item{}
		}
		return envelope.Items, nil
	}
	var items []Item
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, fmt.Errorf("decode timeline items: %w", err)
	}
	return items, nil
}

// StripFences removes a wrapping markdown code fence from a model response.
func StripFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if idx := strings.Index(trimmed, "```json"); idx >= 0 {
		rest := trimmed[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	if idx := strings.Index(trimmed, "```"); idx >= 0 {
		rest := trimmed[idx+len("```"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	return trimmed
}
