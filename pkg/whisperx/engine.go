// Package whisperx wraps the external WhisperX engines behind narrow
// request/response contracts: forced alignment, speaker diarization, and
// word-to-speaker assignment. The adapters in this package validate inputs
// before any engine call and normalize the loosely typed engine results;
// the heavy lifting happens inside the engine itself.
package whisperx

import (
	"context"

	"github.com/voicenotes/voicenotes-cli/config"
	"github.com/voicenotes/voicenotes-cli/pkg/transcript"
)

// AlignRequest asks the engine for more precise timestamps on an existing
// segment sequence. Character-level alignment output is always disabled;
// the pipeline only carries word-level timestamps.
type AlignRequest struct {
	// AudioPath is the audio/video file the segments were transcribed from.
	AudioPath string

	// Segments is the sequence to re-time.
	Segments []transcript.Segment

	// Language is the language code the alignment model is loaded for.
	// Alignment cannot proceed without it.
	Language string

	// Device selects where the alignment model runs.
	Device config.Device
}

// DiarizeRequest asks the engine to identify speaker turns in the audio.
type DiarizeRequest struct {
	// AudioPath is handed to the engine directly; diarization runs against
	// the file, not pre-loaded audio.
	AudioPath string

	// Device selects where the diarization pipeline runs.
	Device config.Device

	// Token is the bearer token the gated diarization model requires.
	Token string

	// MinSpeakers and MaxSpeakers optionally bound the speaker count.
	// Zero means unset; the bounds are passed through unchanged.
	MinSpeakers int
	MaxSpeakers int
}

// Aligner is the external forced-alignment engine.
type Aligner interface {
	Align(ctx context.Context, req AlignRequest) (any, error)
}

// Diarizer is the external diarization engine. The returned value is an
// opaque, engine-specific diarization result, passed back verbatim to the
// speaker assigner.
type Diarizer interface {
	Diarize(ctx context.Context, req DiarizeRequest) (any, error)
}

// SpeakerAssigner is the engine's word-to-speaker assignment function. The
// payload wraps the segments in the shape the engine expects.
type SpeakerAssigner interface {
	AssignWordSpeakers(ctx context.Context, diarization any, payload map[string]any) (any, error)
}
