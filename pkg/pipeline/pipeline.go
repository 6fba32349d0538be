// Package pipeline sequences the transcription stages and persists their
// artifacts. Execution is fully sequential: transcription, then optional
// alignment, then optional diarization with speaker assignment, then
// optional summarization, each stage blocking until its external call
// returns. Nothing is retried and no timeout is imposed here; cancellation
// rides the context. Runs share nothing but the filesystem.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/voicenotes/voicenotes-cli/config"
	vnerrors "github.com/voicenotes/voicenotes-cli/pkg/errors"
	"github.com/voicenotes/voicenotes-cli/pkg/logging"
	"github.com/voicenotes/voicenotes-cli/pkg/output"
	"github.com/voicenotes/voicenotes-cli/pkg/summarize"
	"github.com/voicenotes/voicenotes-cli/pkg/transcribe"
	"github.com/voicenotes/voicenotes-cli/pkg/transcript"
	"github.com/voicenotes/voicenotes-cli/pkg/whisperx"
)

// Artifact file names, written into the output directory.
const (
	FileTranscript          = "transcript.txt"
	FileSegments            = "segments.json"
	FileAlignedSegments     = "aligned_segments.json"
	FileDiarizedSegments    = "diarized_segments.json"
	FileTranscriptBySpeaker = "transcript_by_speaker.txt"
	FileSummary             = "summary.md"
)

// Engines bundles the external collaborators the pipeline drives.
type Engines struct {
	Transcriber transcribe.Engine
	Aligner     whisperx.Aligner
	Diarizer    whisperx.Diarizer
	Assigner    whisperx.SpeakerAssigner
}

// Summarizer produces a structured summary of the full transcript.
type Summarizer interface {
	Summarize(ctx context.Context, transcript, model string) (summarize.Summary, error)
}

// SummarizerFactory builds a Summarizer for the resolved API key. The
// factory runs only when summarization is requested, so a missing key
// surfaces inside the best-effort summary stage.
type SummarizerFactory func(apiKey string) (Summarizer, error)

// Credentials resolves the secrets the optional stages need.
type Credentials interface {
	HuggingFaceToken() string
	OpenAIAPIKey() string
}

// Options select the stages of one run.
type Options struct {
	AudioPath string
	Model     string
	Device    config.Device
	Language  string
	Prompt    string

	// OutputDir is where artifacts land; empty means next to the input.
	OutputDir string

	Align bool

	Diarize     bool
	MinSpeakers int
	MaxSpeakers int

	Summarize    bool
	SummaryModel string
}

// Pipeline runs the stages in fixed order.
type Pipeline struct {
	engines       Engines
	creds         Credentials
	newSummarizer SummarizerFactory
	log           logging.Logger
}

// New builds a pipeline.
func New(engines Engines, creds Credentials, newSummarizer SummarizerFactory, log logging.Logger) *Pipeline {
	if log == nil {
		log = logging.Nop()
	}
	return &Pipeline{
		engines:       engines,
		creds:         creds,
		newSummarizer: newSummarizer,
		log:           log,
	}
}

// Run executes the pipeline. Transcription always runs; alignment,
// diarization, and summarization run when requested. Every failure aborts
// the run except summarization, which is best-effort: the transcript,
// alignment, and diarization artifacts already represent the main value,
// so a summary failure is downgraded to a warning and Run still succeeds.
func (p *Pipeline) Run(ctx context.Context, opts Options) error {
	if _, err := os.Stat(opts.AudioPath); err != nil {
		return fmt.Errorf("%w: audio file not found: %s", vnerrors.ErrNotFound, opts.AudioPath)
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = output.DefaultDir(opts.AudioPath)
	}
	if err := output.EnsureDir(outDir); err != nil {
		return err
	}

	log := p.log.With(logging.F("run_id", uuid.NewString()))
	log.Info("starting pipeline",
		logging.F("input", opts.AudioPath),
		logging.F("output_dir", outDir),
		logging.F("model", opts.Model),
		logging.F("device", opts.Device.String()))

	res, err := transcribe.Transcribe(ctx, p.engines.Transcriber, transcribe.Options{
		AudioPath: opts.AudioPath,
		Model:     opts.Model,
		Device:    opts.Device,
		Language:  opts.Language,
		Prompt:    opts.Prompt,
	})
	if err != nil {
		return err
	}

	if err := p.writeText(log, filepath.Join(outDir, FileTranscript), res.Text); err != nil {
		return err
	}
	if err := p.writeSegments(log, filepath.Join(outDir, FileSegments), res.Segments); err != nil {
		return err
	}
	if res.Language != "" {
		log.Info("detected language", logging.F("language", res.Language))
	}

	segments := res.Segments

	if opts.Align {
		language := opts.Language
		if language == "" {
			language = res.Language
		}
		if language == "" {
			return fmt.Errorf("%w: alignment needs a language: pass --language or let the engine detect one", vnerrors.ErrValidation)
		}

		segments, err = whisperx.Align(ctx, p.engines.Aligner, whisperx.AlignRequest{
			AudioPath: opts.AudioPath,
			Segments:  segments,
			Language:  language,
			Device:    opts.Device,
		})
		if err != nil {
			return err
		}
		if err := p.writeSegments(log, filepath.Join(outDir, FileAlignedSegments), segments); err != nil {
			return err
		}
	}

	if opts.Diarize {
		diarization, err := whisperx.Diarize(ctx, p.engines.Diarizer, whisperx.DiarizeRequest{
			AudioPath:   opts.AudioPath,
			Device:      opts.Device,
			Token:       p.creds.HuggingFaceToken(),
			MinSpeakers: opts.MinSpeakers,
			MaxSpeakers: opts.MaxSpeakers,
		})
		if err != nil {
			return err
		}

		diarized, err := whisperx.AssignSpeakers(ctx, p.engines.Assigner, diarization, segments)
		if err != nil {
			return err
		}
		if err := p.writeSegments(log, filepath.Join(outDir, FileDiarizedSegments), diarized); err != nil {
			return err
		}

		bySpeaker, err := transcript.FormatSpeakerTranscript(diarized)
		if err != nil {
			return err
		}
		if err := p.writeText(log, filepath.Join(outDir, FileTranscriptBySpeaker), bySpeaker); err != nil {
			return err
		}
	}

	if opts.Summarize {
		if err := p.runSummary(ctx, log, res.Text, opts.SummaryModel, outDir); err != nil {
			log.Warn("summary generation failed", logging.Err(err))
			log.Warn("transcription stages completed successfully; only the summary is missing")
		}
	} else {
		log.Info("skipping summary; run with --summarize to create " + FileSummary)
	}

	return nil
}

// runSummary resolves the API key, summarizes the full transcript, and
// writes summary.md. Every failure path, missing key included, is handed
// back to Run's best-effort handling.
func (p *Pipeline) runSummary(ctx context.Context, log logging.Logger, text, model, outDir string) error {
	summarizer, err := p.newSummarizer(p.creds.OpenAIAPIKey())
	if err != nil {
		return err
	}
	summary, err := summarizer.Summarize(ctx, text, model)
	if err != nil {
		return err
	}
	return p.writeText(log, filepath.Join(outDir, FileSummary), summary.Markdown)
}

func (p *Pipeline) writeText(log logging.Logger, path, text string) error {
	if err := output.WriteText(path, text); err != nil {
		return err
	}
	log.Info("wrote artifact", logging.F("path", path))
	return nil
}

func (p *Pipeline) writeSegments(log logging.Logger, path string, segments []transcript.Segment) error {
	if err := output.SaveSegmentsJSON(segments, path); err != nil {
		return err
	}
	log.Info("wrote artifact", logging.F("path", path))
	return nil
}
