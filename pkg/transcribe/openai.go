package transcribe

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	vnerrors "github.com/voicenotes/voicenotes-cli/pkg/errors"
)

// OpenAIEngine transcribes through the OpenAI audio transcription API
// instead of a local model. It requests verbose JSON so segment timestamps
// survive, and returns the client's typed response as-is; Normalize reads
// it through the struct-backed view.
type OpenAIEngine struct {
	client *openai.Client
}

// NewOpenAIEngine builds an engine bound to the given API key.
func NewOpenAIEngine(apiKey string) (*OpenAIEngine, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY is required for the openai engine", vnerrors.ErrValidation)
	}
	return &OpenAIEngine{client: openai.NewClient(apiKey)}, nil
}

// Transcribe sends the audio file to the transcription endpoint. The
// device selector is meaningless for a hosted engine and is ignored.
func (e *OpenAIEngine) Transcribe(ctx context.Context, opts Options) (any, error) {
	resp, err := e.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    opts.Model,
		FilePath: opts.AudioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
		Language: opts.Language,
		Prompt:   opts.Prompt,
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
