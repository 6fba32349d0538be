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

// Align requests more precise timestamps for an existing segment sequence
// from the forced-alignment engine. An empty input sequence returns empty
// without invoking the engine. Validation and not-found errors propagate
// unchanged; any other engine failure is wrapped with the original cause
// preserved.
func Align(ctx context.Context, engine Aligner, req AlignRequest) ([]transcript.Segment, error) {
	if _, err := os.Stat(req.AudioPath); err != nil {
		return nil, fmt.Errorf("%w: audio file not found: %s", vnerrors.ErrNotFound, req.AudioPath)
	}
	if strings.TrimSpace(req.Language) == "" {
		return nil, fmt.Errorf("%w: language is required for alignment (pass the detected language)", vnerrors.ErrValidation)
	}
	if !req.Device.IsValid() {
		return nil, fmt.Errorf("%w: invalid device %q: must be %q or %q",
			vnerrors.ErrValidation, req.Device, config.DeviceCPU, config.DeviceCUDA)
	}

	if len(req.Segments) == 0 {
		return []transcript.Segment{}, nil
	}

	raw, err := engine.Align(ctx, req)
	if err != nil {
		if vnerrors.IsValidation(err) || vnerrors.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: alignment failed: %w", vnerrors.ErrEngine, err)
	}

	return segmentsFromResult(raw, "alignment")
}
