package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vnerrors "github.com/voicenotes/voicenotes-cli/pkg/errors"
)

func TestFormatSpeakerTranscript(t *testing.T) {
	segments := []Segment{
		{"text": "Hello world", "speaker": "SPEAKER_00"},
		{"text": "How are you?", "speaker": "SPEAKER_01"},
		{"text": "I'm doing well, thanks!", "speaker": "SPEAKER_00"},
	}

	got, err := FormatSpeakerTranscript(segments)
	require.NoError(t, err)
	assert.Equal(t, "SPEAKER_00: Hello world\nSPEAKER_01: How are you?\nSPEAKER_00: I'm doing well, thanks!", got)
}

func TestFormatSpeakerTranscript_MissingSpeaker(t *testing.T) {
	got, err := FormatSpeakerTranscript([]Segment{{"text": "Who said this?"}})
	require.NoError(t, err)
	assert.Equal(t, "SPEAKER_UNKNOWN: Who said this?", got)
}

func TestFormatSpeakerTranscript_NumericSpeaker(t *testing.T) {
	// Labels arriving through JSON decode as float64.
	got, err := FormatSpeakerTranscript([]any{
		map[string]any{"text": "first", "speaker": float64(0)},
		map[string]any{"text": "second", "speaker": 7},
	})
	require.NoError(t, err)
	assert.Equal(t, "0: first\n7: second", got)
}

func TestFormatSpeakerTranscript_SkipsBlankText(t *testing.T) {
	segments := []Segment{
		{"text": "kept", "speaker": "SPEAKER_00"},
		{"text": "", "speaker": "SPEAKER_01"},
		{"text": "   \t\n", "speaker": "SPEAKER_01"},
		{"speaker": "SPEAKER_01"},
		{"text": nil, "speaker": "SPEAKER_01"},
		{"text": 42, "speaker": "SPEAKER_01"},
	}

	got, err := FormatSpeakerTranscript(segments)
	require.NoError(t, err)
	assert.Equal(t, "SPEAKER_00: kept", got)
}

func TestFormatSpeakerTranscript_SkipsNonMapEntries(t *testing.T) {
	got, err := FormatSpeakerTranscript([]any{
		"not a segment",
		42,
		nil,
		map[string]any{"text": "still here", "speaker": "SPEAKER_02"},
		[]string{"nested"},
	})
	require.NoError(t, err)
	assert.Equal(t, "SPEAKER_02: still here", got)
}

func TestFormatSpeakerTranscript_EmptyInput(t *testing.T) {
	got, err := FormatSpeakerTranscript([]Segment{})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = FormatSpeakerTranscript([]any{"junk", 1})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFormatSpeakerTranscript_NilInput(t *testing.T) {
	_, err := FormatSpeakerTranscript(nil)
	assert.True(t, vnerrors.IsValidation(err))
}

func TestFormatSpeakerTranscript_NotASequence(t *testing.T) {
	// A single segment passed where a sequence was expected.
	_, err := FormatSpeakerTranscript(Segment{"text": "oops"})
	assert.True(t, vnerrors.IsValidation(err))

	_, err = FormatSpeakerTranscript("definitely not segments")
	assert.True(t, vnerrors.IsValidation(err))
}

func TestText(t *testing.T) {
	assert.Equal(t, "hi", Text(Segment{"text": "  hi  "}))
	assert.Empty(t, Text(Segment{"text": 3.5}))
	assert.Empty(t, Text(Segment{}))
}
