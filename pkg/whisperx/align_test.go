package whisperx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicenotes/voicenotes-cli/config"
	vnerrors "github.com/voicenotes/voicenotes-cli/pkg/errors"
	"github.com/voicenotes/voicenotes-cli/pkg/transcript"
)

// fakeAligner records invocations and returns a canned result.
type fakeAligner struct {
	calls  int
	req    AlignRequest
	result any
	err    error
}

func (f *fakeAligner) Align(_ context.Context, req AlignRequest) (any, error) {
	f.calls++
	f.req = req
	return f.result, f.err
}

func tempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meeting.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF"), 0o644))
	return path
}

func segs(texts ...string) []transcript.Segment {
	out := make([]transcript.Segment, 0, len(texts))
	for _, text := range texts {
		out = append(out, transcript.Segment{"text": text})
	}
	return out
}

func TestAlign(t *testing.T) {
	engine := &fakeAligner{result: map[string]any{
		"segments": []any{
			map[string]any{"text": "hello", "start": 0.12, "end": 0.98},
		},
	}}

	got, err := Align(context.Background(), engine, AlignRequest{
		AudioPath: tempAudio(t),
		Segments:  segs("hello"),
		Language:  "en",
		Device:    config.DeviceCPU,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, engine.calls)
	assert.Equal(t, "en", engine.req.Language)
	require.Len(t, got, 1)
	assert.Equal(t, 0.12, got[0]["start"])
}

func TestAlign_EmptySegmentsShortCircuit(t *testing.T) {
	engine := &fakeAligner{}

	got, err := Align(context.Background(), engine, AlignRequest{
		AudioPath: tempAudio(t),
		Segments:  nil,
		Language:  "en",
		Device:    config.DeviceCPU,
	})
	require.NoError(t, err)

	assert.Empty(t, got)
	assert.Zero(t, engine.calls, "engine must not be invoked for empty input")
}

func TestAlign_MissingLanguage(t *testing.T) {
	engine := &fakeAligner{}

	for _, language := range []string{"", "   "} {
		_, err := Align(context.Background(), engine, AlignRequest{
			AudioPath: tempAudio(t),
			Segments:  segs("hello"),
			Language:  language,
			Device:    config.DeviceCPU,
		})
		assert.True(t, vnerrors.IsValidation(err))
		assert.Contains(t, err.Error(), "language is required")
	}
	assert.Zero(t, engine.calls)
}

func TestAlign_MissingAudio(t *testing.T) {
	engine := &fakeAligner{}

	_, err := Align(context.Background(), engine, AlignRequest{
		AudioPath: filepath.Join(t.TempDir(), "gone.wav"),
		Segments:  segs("hello"),
		Language:  "en",
		Device:    config.DeviceCPU,
	})
	assert.True(t, vnerrors.IsNotFound(err))
	assert.Zero(t, engine.calls)
}

func TestAlign_InvalidDevice(t *testing.T) {
	_, err := Align(context.Background(), &fakeAligner{}, AlignRequest{
		AudioPath: tempAudio(t),
		Segments:  segs("hello"),
		Language:  "en",
		Device:    "npu",
	})
	assert.True(t, vnerrors.IsValidation(err))
}

func TestAlign_InvalidResultShapes(t *testing.T) {
	for _, result := range []any{
		nil,
		map[string]any{},
		map[string]any{"language": "en"},
		[]any{map[string]any{"text": "hello"}},
		"segments",
	} {
		engine := &fakeAligner{result: result}
		_, err := Align(context.Background(), engine, AlignRequest{
			AudioPath: tempAudio(t),
			Segments:  segs("hello"),
			Language:  "en",
			Device:    config.DeviceCPU,
		})
		assert.True(t, vnerrors.IsEngine(err), "result %#v should be an engine error", result)
		assert.False(t, vnerrors.IsValidation(err))
	}
}

func TestAlign_EngineFailureWrapped(t *testing.T) {
	engine := &fakeAligner{err: errors.New("alignment model exploded")}

	_, err := Align(context.Background(), engine, AlignRequest{
		AudioPath: tempAudio(t),
		Segments:  segs("hello"),
		Language:  "en",
		Device:    config.DeviceCPU,
	})
	assert.True(t, vnerrors.IsEngine(err))
	assert.Contains(t, err.Error(), "alignment failed")
	assert.Contains(t, err.Error(), "alignment model exploded")
}

func TestAlign_PropagatesTypedEngineErrors(t *testing.T) {
	cause := vnerrors.ErrNotFound
	engine := &fakeAligner{err: cause}

	_, err := Align(context.Background(), engine, AlignRequest{
		AudioPath: tempAudio(t),
		Segments:  segs("hello"),
		Language:  "en",
		Device:    config.DeviceCPU,
	})
	assert.True(t, vnerrors.IsNotFound(err))
	assert.False(t, vnerrors.IsEngine(err))
}
