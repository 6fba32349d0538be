package whisperx

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/voicenotes/voicenotes-cli/pkg/transcribe"
)

//go:embed assets/whisperx_bridge.py
var bridgeScript []byte

// EnvInterpreter overrides the Python interpreter the bridge runs.
const EnvInterpreter = "VOICENOTES_PY"

// Bridge runs the WhisperX engines through an embedded Python helper.
// Each operation is one helper invocation: a JSON request on stdin, a JSON
// result on stdout. The helper process is started with
// QT_QPA_PLATFORM=offscreen so the Qt-adjacent audio libraries work in
// headless environments; that toggle lives here and nowhere else.
//
// Bridge implements transcribe.Engine, Aligner, Diarizer, and
// SpeakerAssigner.
type Bridge struct {
	interpreter string
}

// NewBridge builds a bridge using the interpreter named by VOICENOTES_PY,
// defaulting to python3.
func NewBridge() *Bridge {
	interpreter := strings.TrimSpace(os.Getenv(EnvInterpreter))
	if interpreter == "" {
		interpreter = "python3"
	}
	return &Bridge{interpreter: interpreter}
}

// Transcribe runs the helper's transcribe operation and returns the raw
// engine result for normalization.
func (b *Bridge) Transcribe(ctx context.Context, opts transcribe.Options) (any, error) {
	request := map[string]any{
		"audio_path":     opts.AudioPath,
		"model":          opts.Model,
		"device":         opts.Device.String(),
		"language":       opts.Language,
		"initial_prompt": opts.Prompt,
	}
	var result any
	if err := b.run(ctx, "transcribe", request, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Align runs the helper's align operation. Character-level alignments are
// disabled; only word-level timestamps come back.
func (b *Bridge) Align(ctx context.Context, req AlignRequest) (any, error) {
	request := map[string]any{
		"audio_path":      req.AudioPath,
		"segments":        req.Segments,
		"language":        req.Language,
		"device":          req.Device.String(),
		"char_alignments": false,
	}
	var result any
	if err := b.run(ctx, "align", request, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Diarize runs the helper's diarize operation against the audio file path.
func (b *Bridge) Diarize(ctx context.Context, req DiarizeRequest) (any, error) {
	request := map[string]any{
		"audio_path": req.AudioPath,
		"device":     req.Device.String(),
		"hf_token":   req.Token,
	}
	if req.MinSpeakers > 0 {
		request["min_speakers"] = req.MinSpeakers
	}
	if req.MaxSpeakers > 0 {
		request["max_speakers"] = req.MaxSpeakers
	}
	var result any
	if err := b.run(ctx, "diarize", request, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssignWordSpeakers runs the helper's assign operation.
func (b *Bridge) AssignWordSpeakers(ctx context.Context, diarization any, payload map[string]any) (any, error) {
	request := map[string]any{
		"diarization": diarization,
		"segments":    payload["segments"],
	}
	var result any
	if err := b.run(ctx, "assign", request, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// run executes one helper operation.
func (b *Bridge) run(ctx context.Context, op string, request any, result *any) error {
	scriptPath := filepath.Join(os.TempDir(), "voicenotes_whisperx_bridge.py")
	if err := os.WriteFile(scriptPath, bridgeScript, 0o755); err != nil {
		return fmt.Errorf("write helper script: %w", err)
	}
	defer os.Remove(scriptPath)

	payload, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", op, err)
	}

	cmd := exec.CommandContext(ctx, b.interpreter, scriptPath, op)
	cmd.Env = append(os.Environ(), "QT_QPA_PLATFORM=offscreen")
	cmd.Stdin = bytes.NewReader(payload)

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("whisperx %s: %s", op, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return fmt.Errorf("run whisperx helper: %w", err)
	}

	if err := json.Unmarshal(out, result); err != nil {
		return fmt.Errorf("parse %s result: %w", op, err)
	}
	return nil
}
