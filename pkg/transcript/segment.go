// Package transcript defines the canonical transcript data model and the
// speaker transcript formatter.
//
// External engines return loosely typed JSON, so a segment stays map-shaped
// end to end: normalization guarantees the shape once at the boundary and
// every later stage reads the same keys. Word-level sub-segments are carried
// through opaquely and never interpreted.
package transcript

import "strings"

// Well-known segment keys.
const (
	KeyText    = "text"
	KeyStart   = "start"
	KeyEnd     = "end"
	KeySpeaker = "speaker"
	KeyWords   = "words"
)

// UnknownSpeaker is the sentinel label rendered for segments that carry no
// speaker after diarization.
const UnknownSpeaker = "SPEAKER_UNKNOWN"

// Segment is a single timestamped span of transcript text. Insertion order
// of a segment sequence is meaningful and preserved; no invariant is
// enforced on timestamp ordering or overlap.
type Segment = map[string]any

// Text returns the segment's trimmed text. Absent or non-string values are
// treated as empty.
func Text(seg Segment) string {
	v, ok := seg[KeyText]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
