// File path: internal/agent/pipeline.go
package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langgraphgo/graph"

	"github.com/legol-ai/legol/internal/common"
	"github.com/legol-ai/legol/internal/llm"
)

const systemPrompt = "You are LEGOL, an immigration assistant for international students. " +
	"Answer questions about visas, citizenship, and required paperwork clearly and concretely. " +
	"When a question involves documents, name the specific forms and records the student needs. " +
	"Say so plainly when a question needs a licensed immigration attorney instead of general guidance."

// Runner drives the response pipeline: it folds the transcript into a
// message graph, runs the respond node against the configured provider, and
// returns the assistant turn.
type Runner struct {
	provider llm.Provider
}

func NewRunner(provider llm.Provider) *Runner {
	return &Runner{provider: provider}
}

// SessionContext carries per-session facts that shape the system prompt.
type SessionContext struct {
	StudentCountry string
	Institution    string
	Topic          string
}

// Respond produces the assistant reply for the given transcript. The
// transcript must already include the latest user turn.
func (r *Runner) Respond(ctx context.Context, transcript []llm.Message, session SessionContext) (string, error) {
	if r == nil || r.provider == nil {
		return "", fmt.Errorf("agent provider unavailable")
	}
	logger := common.Logger()

	pipeline := graph.NewMessageGraph()
	pipeline.AddNode("respond", func(ctx context.Context, state []llms.MessageContent) ([]llms.MessageContent, error) {
		answer, err := r.provider.Chat(ctx, toProviderMessages(state))
		if err != nil {
			return nil, err
		}
		return append(state, llms.TextParts(llms.ChatMessageTypeAI, answer)), nil
	})
	pipeline.AddEdge("respond", graph.END)
	pipeline.SetEntryPoint("respond")

	runnable, err := pipeline.Compile()
	if err != nil {
		logger.Error("agent: pipeline compile failed", "error", err)
		return "", fmt.Errorf("compile pipeline: %w", err)
	}

	state := []llms.MessageContent{llms.TextParts(llms.ChatMessageTypeSystem, buildSystemPrompt(session))}
	for _, msg := range transcript {
		state = append(state, toGraphMessage(msg))
	}
	result, err := runnable.Invoke(ctx, state)
	if err != nil {
		logger.Error("agent: pipeline invocation failed", "error", err)
		return "", err
	}
	if len(result) == 0 {
		return "", fmt.Errorf("pipeline returned no messages")
	}
	answer := strings.TrimSpace(messageText(result[len(result)-1]))
	if answer == "" {
		return "", fmt.Errorf("pipeline returned an empty reply")
	}
	logger.Debug("agent: pipeline produced reply", "provider", r.provider.Name())
	return answer, nil
}

func buildSystemPrompt(session SessionContext) string {
	parts := []string{systemPrompt}
	if country := strings.TrimSpace(session.StudentCountry); country != "" {
		parts = append(parts, fmt.Sprintf("The student is a citizen of %s.", country))
	}
	if institution := strings.TrimSpace(session.Institution); institution != "" {
		parts = append(parts, fmt.Sprintf("The student is enrolled at %s.", institution))
	}
	if topic := strings.TrimSpace(session.Topic); topic != "" {
		parts = append(parts, fmt.Sprintf("The current topic is %s.", topic))
	}
	return strings.Join(parts, " ")
}

func toGraphMessage(msg llm.Message) llms.MessageContent {
	switch strings.ToLower(strings.TrimSpace(msg.Role)) {
	case "system":
		return llms.TextParts(llms.ChatMessageTypeSystem, msg.Content)
	case "assistant":
		return llms.TextParts(llms.ChatMessageTypeAI, msg.Content)
	default:
		return llms.TextParts(llms.ChatMessageTypeHuman, msg.Content)
	}
}

func toProviderMessages(state []llms.MessageContent) []llm.Message {
	messages := make([]llm.Message, 0, len(state))
	for _, content := range state {
		var role string
		switch content.Role {
		case llms.ChatMessageTypeSystem:
			role = "system"
		case llms.ChatMessageTypeAI:
			role = "assistant"
		default:
			role = "user"
		}
		messages = append(messages, llm.Message{Role: role, Content: messageText(content)})
	}
	return messages
}

func messageText(content llms.MessageContent) string {
	var builder strings.Builder
	for _, part := range content.Parts {
		if text, ok := part.(llms.TextContent); ok {
			builder.WriteString(text.Text)
		}
	}
	return builder.String()
}
