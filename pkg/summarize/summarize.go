// Package summarize produces a structured natural-language summary of a
// transcript through an external chat-completion service.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	vnerrors "github.com/voicenotes/voicenotes-cli/pkg/errors"
)

// systemPrompt fixes the summary structure and forbids inventing facts the
// transcript does not state.
const systemPrompt = `You are summarizing a verbatim transcript from an audio recording.

First, read the full transcript carefully.

Then produce a concise, structured summary with the sections below.

Use clear language.
Avoid filler.
Do not invent facts.
If something is unclear, note it.

Output format (markdown):

## Summary
- 5-8 bullets capturing the core points

## Decisions
- List explicit decisions made
- If none, write "No explicit decisions recorded"

## Action Items
- Bullet list
- Include owner and due date if stated
- If missing, note "owner not specified" or "no due date stated"

## Open Questions
- Items that were raised but not resolved
- If none, write "No open questions"

## Key Quotes (optional)
- 2-4 short quotes only if they clarify intent or tone

Important rules:
- Base everything strictly on the transcript
- Do not infer beyond what was said
- Preserve intent, not wording`

// Summary is the summarization result. Markdown and Text carry the same
// content.
type Summary struct {
	Markdown string
	Text     string
}

// chatCompleter is the slice of the OpenAI client the summarizer uses.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client summarizes transcripts through the chat-completion API.
type Client struct {
	api chatCompleter
}

// New builds a summarization client. The API key is required; a blank key
// fails before any client is constructed or any network call attempted.
func New(apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY is required for summarization", vnerrors.ErrValidation)
	}
	return &Client{api: openai.NewClient(apiKey)}, nil
}

// Summarize sends the transcript to the named model and returns the
// structured summary. The transcript and model must be non-blank. A
// response whose message content is empty is a valid, empty summary.
func (c *Client) Summarize(ctx context.Context, transcript, model string) (Summary, error) {
	if strings.TrimSpace(transcript) == "" {
		return Summary{}, fmt.Errorf("%w: transcript cannot be empty", vnerrors.ErrValidation)
	}
	if strings.TrimSpace(model) == "" {
		return Summary{}, fmt.Errorf("%w: model cannot be empty", vnerrors.ErrValidation)
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Summarize the following transcript:\n\n" + transcript},
		},
	})
	if err != nil {
		return Summary{}, classify(err)
	}

	if resp.Choices == nil {
		return Summary{}, fmt.Errorf("%w: invalid API response: missing choices", vnerrors.ErrEngine)
	}
	if len(resp.Choices) == 0 {
		return Summary{}, fmt.Errorf("%w: invalid API response: empty choices list", vnerrors.ErrEngine)
	}

	content := resp.Choices[0].Message.Content
	return Summary{Markdown: content, Text: content}, nil
}

// classify maps service failures onto actionable messages. Quota errors
// point at billing; other API errors point at the key and account; the
// rest get a generic summarization-failure wrap. The cause is preserved in
// every case.
func classify(err error) error {
	if vnerrors.IsValidation(err) || vnerrors.IsEngine(err) {
		return err
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("%w: API quota exceeded; check billing and usage at https://platform.openai.com/usage: %w",
				vnerrors.ErrEngine, err)
		}
		return fmt.Errorf("%w: API error: %w; check the API key and account status", vnerrors.ErrEngine, err)
	}
	return fmt.Errorf("%w: failed to generate summary: %w", vnerrors.ErrEngine, err)
}
