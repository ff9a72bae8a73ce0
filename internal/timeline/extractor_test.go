// File path: internal/timeline/extractor_test.go
package timeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/legol-ai/legol/internal/docs"
	"github.com/legol-ai/legol/internal/llm"
)

type scriptedProvider struct {
	response string
	err      error
	calls    int
}

func (s *scriptedProvider) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *scriptedProvider) Name() string { return "scripted" }

func TestExtractDecodesFencedEnvelope(t *testing.T) {
	provider := &scriptedProvider{response: "```json\n" +
		`{"items": [{"title": "File DS-160", "description": "Submit the online visa application.", "related_documents": ["ds-160"], "due_date": "2026-09-15"}]}` +
		"\n```"}
	extractor := NewExtractor(provider)

	items, err := extractor.Extract(context.Background(), []docs.Message{
		{Role: docs.RoleUser, Text: "When should I file my visa application?"},
	})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	item := items[0]
	if item.Title != "File DS-160" || item.DueDate != "2026-09-15" {
		t.Fatalf("unexpected item: %+v", item)
	}
	if len(item.RelatedDocuments) != 1 || item.RelatedDocuments[0] != "ds-160" {
		t.Fatalf("unexpected related documents: %+v", item.RelatedDocuments)
	}
	if provider.calls != 1 {
		t.Fatalf("expected one provider call, got %d", provider.calls)
	}
}

func TestExtractAcceptsBareArray(t *testing.T) {
	provider := &scriptedProvider{response: `[{"title": "Book biometrics", "description": "Schedule the appointment."}]`}
	items, err := NewExtractor(provider).Extract(context.Background(), nil)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Book biometrics" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestExtractPropagatesProviderError(t *testing.T) {
	provider := &scriptedProvider{err: fmt.Errorf("backend down")}
	if _, err := NewExtractor(provider).Extract(context.Background(), nil); err == nil {
		t.Fatalf("expected provider error to propagate")
	}
}

func TestExtractRejectsProse(t *testing.T) {
	provider := &scriptedProvider{response: "Sorry, I cannot produce a timeline."}
	if _, err := NewExtractor(provider).Extract(context.Background(), nil); err == nil {
		t.Fatalf("expected decode error for prose response")
	}
}

func TestDecodeItemsEmptyEnvelope(t *testing.T) {
	items, err := DecodeItems(`{"items": []}`)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected allocated empty slice, got %+v", items)
	}
}

func TestStripFences(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"items\": []}\n```": `{"items": []}`,
		"```\n[]\n```":                  "[]",
		"  {\"items\": []}  ":           `{"items": []}`,
		"Here you go:\n```json\n[]\n```": "[]",
	}
	for input, want := range cases {
		if got := StripFences(input); got != want {
			t.Fatalf("StripFences(%q) = %q, want %q", input, got, want)
		}
	}
}
