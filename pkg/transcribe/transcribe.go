// Package transcribe invokes an external speech-recognition engine and
// normalizes its variably-shaped output into a canonical result.
package transcribe

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/voicenotes/voicenotes-cli/config"
	vnerrors "github.com/voicenotes/voicenotes-cli/pkg/errors"
	"github.com/voicenotes/voicenotes-cli/pkg/transcript"
)

// Options describe a single transcription request.
type Options struct {
	// AudioPath is the audio/video file to transcribe.
	AudioPath string

	// Model is the speech-recognition model name (e.g. "small", "medium").
	Model string

	// Device selects where the model runs.
	Device config.Device

	// Language optionally forces a language code; empty means auto-detect.
	Language string

	// Prompt is an optional initial prompt for the engine.
	Prompt string
}

// Result is the canonical transcription record consumed by every
// downstream stage. It is created once per run and not mutated afterwards.
type Result struct {
	// Text is the full transcript.
	Text string

	// Segments is the ordered sequence of transcript segments.
	Segments []transcript.Segment

	// Language is the detected language, or the requested one when the
	// engine reported none.
	Language string
}

// Engine is the external speech-recognition collaborator. The returned
// value is the engine's raw result: depending on the implementation it may
// be a JSON-decoded map or a typed struct; Normalize handles both.
type Engine interface {
	Transcribe(ctx context.Context, opts Options) (any, error)
}

// Transcribe validates the request, invokes the engine, and normalizes the
// raw result. Preconditions are checked before the engine is touched:
// the audio file must exist, the model name must be non-empty, and the
// device must be a recognized value.
func Transcribe(ctx context.Context, engine Engine, opts Options) (*Result, error) {
	if _, err := os.Stat(opts.AudioPath); err != nil {
		return nil, fmt.Errorf("%w: audio file not found: %s", vnerrors.ErrNotFound, opts.AudioPath)
	}
	if strings.TrimSpace(opts.Model) == "" {
		return nil, fmt.Errorf("%w: model cannot be empty", vnerrors.ErrValidation)
	}
	if !opts.Device.IsValid() {
		return nil, fmt.Errorf("%w: invalid device %q: must be %q or %q",
			vnerrors.ErrValidation, opts.Device, config.DeviceCPU, config.DeviceCUDA)
	}

	raw, err := engine.Transcribe(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: transcription failed: %w", vnerrors.ErrEngine, err)
	}

	return Normalize(raw, opts.Language), nil
}
