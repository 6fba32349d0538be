// Package output writes the pipeline's artifacts: plain-text transcripts
// and pretty-printed JSON segment files.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/voicenotes/voicenotes-cli/pkg/transcript"
)

// DefaultDir returns the default output directory for a given input file:
// the directory the file lives in.
func DefaultDir(audioPath string) string {
	return filepath.Dir(audioPath)
}

// EnsureDir creates the directory (and parents) if necessary.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", path, err)
	}
	return nil
}

// WriteText writes UTF-8 text to path.
func WriteText(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// SaveSegmentsJSON writes the segment sequence as a pretty-printed JSON
// array (2-space indent) with HTML escaping disabled so non-ASCII text
// survives byte-for-byte. A nil sequence is written as an empty array.
// Parsing the file back reproduces the sequence exactly, nested word-level
// sub-segments included.
func SaveSegmentsJSON(segments []transcript.Segment, path string) error {
	if segments == nil {
		segments = []transcript.Segment{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(segments); err != nil {
		return fmt.Errorf("serializing segments to JSON: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing JSON file %s: %w", path, err)
	}
	return nil
}
