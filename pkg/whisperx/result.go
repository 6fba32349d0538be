package whisperx

import (
	"fmt"

	vnerrors "github.com/voicenotes/voicenotes-cli/pkg/errors"
	"github.com/voicenotes/voicenotes-cli/pkg/transcript"
)

// segmentsFromResult applies the shared result contract for alignment and
// speaker assignment: the engine's response must be a non-empty mapping
// containing a "segments" key. Anything else, including no response at
// all, is an engine failure. The check is a safety net; the wrapped
// engines are not known to violate it in normal operation.
func segmentsFromResult(raw any, stage string) ([]transcript.Segment, error) {
	m, ok := raw.(map[string]any)
	if !ok || len(m) == 0 {
		return nil, fmt.Errorf("%w: %s returned invalid result", vnerrors.ErrEngine, stage)
	}
	v, ok := m["segments"]
	if !ok {
		return nil, fmt.Errorf("%w: %s returned invalid result", vnerrors.ErrEngine, stage)
	}

	switch s := v.(type) {
	case nil:
		return []transcript.Segment{}, nil
	case []transcript.Segment:
		return s, nil
	case []any:
		out := make([]transcript.Segment, 0, len(s))
		for _, entry := range s {
			if seg, ok := entry.(map[string]any); ok {
				out = append(out, seg)
			}
		}
		return out, nil
	}
	return []transcript.Segment{}, nil
}
