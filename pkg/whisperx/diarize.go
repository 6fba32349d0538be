package whisperx

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/voicenotes/voicenotes-cli/config"
	vnerrors "github.com/voicenotes/voicenotes-cli/pkg/errors"
	"github.com/voicenotes/voicenotes-cli/pkg/transcript"
)

// diarizationRemediation explains the usual causes of an authentication
// failure against the gated diarization model and how to fix them.
const diarizationRemediation = `This usually means:
- the HUGGINGFACE_TOKEN is invalid, expired, or missing
- the terms of use at https://huggingface.co/pyannote/speaker-diarization-3.1 were never accepted
- the token does not have access to the gated model

To fix:
- get a token from https://huggingface.co/settings/tokens
- accept the model terms at https://huggingface.co/pyannote/speaker-diarization-3.1
- set the HUGGINGFACE_TOKEN environment variable with a valid token`

// Diarize identifies speaker turns in the audio. The returned value is the
// engine's opaque diarization result, to be handed to AssignSpeakers.
// Authentication failures from the engine are translated into an
// actionable remediation message; everything else is wrapped as a generic
// diarization failure.
func Diarize(ctx context.Context, engine Diarizer, req DiarizeRequest) (any, error) {
	if _, err := os.Stat(req.AudioPath); err != nil {
		return nil, fmt.Errorf("%w: audio file not found: %s", vnerrors.ErrNotFound, req.AudioPath)
	}
	if strings.TrimSpace(req.Token) == "" {
		return nil, fmt.Errorf("%w: HUGGINGFACE_TOKEN is required for diarization", vnerrors.ErrValidation)
	}
	if !req.Device.IsValid() {
		return nil, fmt.Errorf("%w: invalid device %q: must be %q or %q",
			vnerrors.ErrValidation, req.Device, config.DeviceCPU, config.DeviceCUDA)
	}
	if req.MinSpeakers < 0 {
		return nil, fmt.Errorf("%w: min speakers must be at least 1", vnerrors.ErrValidation)
	}
	if req.MaxSpeakers < 0 {
		return nil, fmt.Errorf("%w: max speakers must be at least 1", vnerrors.ErrValidation)
	}
	if req.MinSpeakers > 0 && req.MaxSpeakers > 0 && req.MinSpeakers > req.MaxSpeakers {
		return nil, fmt.Errorf("%w: min speakers cannot be greater than max speakers", vnerrors.ErrValidation)
	}

	result, err := engine.Diarize(ctx, req)
	if err != nil {
		if vnerrors.IsValidation(err) || vnerrors.IsNotFound(err) {
			return nil, err
		}
		if vnerrors.IsUnauthorized(err) || looksLikeAuthFailure(err) {
			return nil, fmt.Errorf("%w: diarization authentication failed: %w\n\n%s",
				vnerrors.ErrUnauthorized, err, diarizationRemediation)
		}
		return nil, fmt.Errorf("%w: diarization failed: %w", vnerrors.ErrEngine, err)
	}
	return result, nil
}

// AssignSpeakers projects the diarization result's speaker turns onto the
// segment sequence through the engine's word-to-speaker assignment
// function. An empty segment sequence returns empty without invoking the
// engine.
func AssignSpeakers(ctx context.Context, engine SpeakerAssigner, diarization any, segments []transcript.Segment) ([]transcript.Segment, error) {
	if len(segments) == 0 {
		return []transcript.Segment{}, nil
	}

	raw, err := engine.AssignWordSpeakers(ctx, diarization, map[string]any{"segments": segments})
	if err != nil {
		if vnerrors.IsValidation(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: speaker assignment failed: %w", vnerrors.ErrEngine, err)
	}

	return segmentsFromResult(raw, "speaker assignment")
}

// looksLikeAuthFailure heuristically spots authentication failures in the
// engine's error text.
func looksLikeAuthFailure(err error) bool {
	text := strings.ToLower(err.Error())
	for _, keyword := range []string{"auth", "token", "unauthorized", "forbidden", "gated"} {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
