package engine

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/membank/membank-go/core"
)

// chatTopK is how many memories ground a chat answer.
const chatTopK = 3

// chatPreviewLimit caps the content excerpt quoted in a single-match answer.
const chatPreviewLimit = 200

// noMatchesResponse is the exact fallback when retrieval comes back empty.
const noMatchesResponse = "I couldn't find any memories related to your query. Try asking about something else or add more memories to your collection!"

// Responder is an optional language model that rewrites the grounded
// answer for fluency. Its absence or failure never changes Chat's
// success/failure shape, only the wording of the response.
type Responder interface {
	Respond(ctx context.Context, message string, matches []core.SearchMatch) (string, error)
}

// Chat retrieves the memories nearest to message and synthesizes a short
// grounded answer. RelatedMemories always lists every retrieved match in
// retrieval order, whichever response branch is taken.
func (e *Engine) Chat(ctx context.Context, message string) (*core.ChatAnswer, error) {
	results, err := e.retriever.Search(ctx, message, chatTopK)
	if err != nil {
		return nil, fmt.Errorf("chat: %w", err)
	}

	matches := results.Matches
	if len(matches) == 0 {
		return &core.ChatAnswer{
			Response:        noMatchesResponse,
			RelatedMemories: []core.RelatedMemory{},
		}, nil
	}

	response := synthesizeResponse(matches)
	if e.responder != nil {
		enhanced, err := e.responder.Respond(ctx, message, matches)
		if err != nil {
			log.Printf("[CHAT] Responder failed, using template answer: %v", err)
		} else if enhanced != "" {
			response = enhanced
		}
	}

	related := make([]core.RelatedMemory, len(matches))
	for i, match := range matches {
		related[i] = core.RelatedMemory{
			ID:      match.MemoryID,
			Title:   match.Title,
			Content: match.Content,
		}
	}

	return &core.ChatAnswer{
		Response:        response,
		RelatedMemories: related,
	}, nil
}

// synthesizeResponse builds the deterministic template answer.
func synthesizeResponse(matches []core.SearchMatch) string {
	if len(matches) == 1 {
		match := matches[0]
		excerpt := core.Preview(match.Content, chatPreviewLimit)
		ellipsis := ""
		if len(match.Content) > chatPreviewLimit {
			ellipsis = "..."
		}
		return fmt.Sprintf("I found a relevant memory about '%s'. %s%s",
			match.Title, excerpt, ellipsis)
	}

	return fmt.Sprintf("I found %d memories related to your query. The most relevant ones are about '%s' and '%s'. These memories seem to be related to %s.",
		len(matches), matches[0].Title, matches[1].Title,
		strings.Join(tagUnion(matches), ", "))
}

// tagUnion collects the first 3 tags of each match, deduplicated in
// first-seen order.
func tagUnion(matches []core.SearchMatch) []string {
	var union []string
	seen := make(map[string]bool)
	for _, match := range matches {
		tags := match.Tags
		if len(tags) > 3 {
			tags = tags[:3]
		}
		for _, tag := range tags {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			union = append(union, tag)
		}
	}
	return union
}

// AnthropicResponder rewrites grounded answers with a Claude model.
type AnthropicResponder struct {
	client anthropic.Client
	model  string
}

// NewAnthropicResponder creates a responder using the given API key and
// model.
func NewAnthropicResponder(apiKey, model string) *AnthropicResponder {
	return &AnthropicResponder{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

const responderSystemPrompt = `You answer questions using only the user's saved memories provided as context. Be brief and conversational. If the memories do not answer the question, say so.`

// Respond asks the model for a fluent answer grounded in the two most
// relevant memories.
func (r *AnthropicResponder) Respond(ctx context.Context, message string, matches []core.SearchMatch) (string, error) {
	contextMatches := matches
	if len(contextMatches) > 2 {
		contextMatches = contextMatches[:2]
	}

	var sb strings.Builder
	for _, match := range contextMatches {
		fmt.Fprintf(&sb, "Memory: %s\nContent: %s\nTags: %s\n\n",
			match.Title, match.Content, strings.Join(match.Tags, ", "))
	}
	fmt.Fprintf(&sb, "Question: %s", message)

	resp, err := r.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(r.model),
		MaxTokens: 512,
		System: []anthropic.TextBlockParam{
			{Text: responderSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(sb.String())),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude API error: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty model response")
	}
	return text, nil
}
