package transcript

import (
	"fmt"
	"strings"

	vnerrors "github.com/voicenotes/voicenotes-cli/pkg/errors"
)

// FormatSpeakerTranscript renders a diarized segment sequence into a flat,
// human-readable text block with one "<speaker>: <text>" line per segment.
//
// The input is whatever shape the speaker-assignment stage produced, so it
// is validated dynamically: nil fails, and so does anything that is not a
// sequence (for example a single map passed where a list was expected).
// Entries that are not map-shaped are silently skipped, as are entries
// whose text is empty after trimming. Speaker labels default to
// UnknownSpeaker and are coerced to their string representation whatever
// their original type. An input with nothing left to render yields an
// empty string, not an error.
func FormatSpeakerTranscript(segments any) (string, error) {
	if segments == nil {
		return "", fmt.Errorf("%w: segments cannot be nil", vnerrors.ErrValidation)
	}

	entries, ok := toEntrySlice(segments)
	if !ok {
		return "", fmt.Errorf("%w: expected a list of segments, got %T", vnerrors.ErrValidation, segments)
	}

	var lines []string
	for _, entry := range entries {
		seg, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		text := Text(seg)
		if text == "" {
			continue
		}

		speaker := UnknownSpeaker
		if v, ok := seg[KeySpeaker]; ok {
			speaker = stringify(v)
		}
		lines = append(lines, speaker+": "+text)
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// toEntrySlice accepts the slice shapes a segment sequence shows up in.
func toEntrySlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []Segment:
		entries := make([]any, len(s))
		for i, seg := range s {
			entries[i] = seg
		}
		return entries, true
	}
	return nil, false
}

// stringify renders a speaker label of any type. Whole-number floats come
// from JSON decoding and render without a fractional part.
func stringify(v any) string {
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprint(v)
}
