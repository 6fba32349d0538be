// Package cmd provides CLI commands for the voicenotes tool.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/voicenotes/voicenotes-cli/config"
	"github.com/voicenotes/voicenotes-cli/credentials"
	vnerrors "github.com/voicenotes/voicenotes-cli/pkg/errors"
	"github.com/voicenotes/voicenotes-cli/pkg/logging"
	"github.com/voicenotes/voicenotes-cli/pkg/pipeline"
	"github.com/voicenotes/voicenotes-cli/pkg/summarize"
	"github.com/voicenotes/voicenotes-cli/pkg/transcribe"
	"github.com/voicenotes/voicenotes-cli/pkg/whisperx"
)

// Supported transcription engines.
const (
	EngineWhisperX = "whisperx"
	EngineOpenAI   = "openai"
)

// openAIDefaultModel is used when the openai engine is selected and no
// model was named explicitly; the local model names (small, medium, ...)
// mean nothing to the hosted API.
const openAIDefaultModel = "whisper-1"

// TranscribeCommandDeps holds the dependencies for the transcribe command.
type TranscribeCommandDeps struct {
	LoadConfig    func() (*config.CLIConfig, error)
	Credentials   pipeline.Credentials
	NewEngines    func(engine string, creds pipeline.Credentials) (pipeline.Engines, error)
	NewSummarizer pipeline.SummarizerFactory
	Logger        logging.Logger
}

// DefaultTranscribeDeps returns the default dependencies for production use.
func DefaultTranscribeDeps() *TranscribeCommandDeps {
	return &TranscribeCommandDeps{
		LoadConfig:  config.LoadConfig,
		Credentials: credentials.NewStore(),
		NewEngines:  buildEngines,
		NewSummarizer: func(apiKey string) (pipeline.Summarizer, error) {
			client, err := summarize.New(apiKey)
			if err != nil {
				return nil, err
			}
			return client, nil
		},
	}
}

// buildEngines wires the engine set for the requested engine name. The
// WhisperX bridge always backs alignment, diarization, and speaker
// assignment; the openai engine only swaps the transcriber.
func buildEngines(engine string, creds pipeline.Credentials) (pipeline.Engines, error) {
	bridge := whisperx.NewBridge()
	engines := pipeline.Engines{
		Transcriber: bridge,
		Aligner:     bridge,
		Diarizer:    bridge,
		Assigner:    bridge,
	}

	switch engine {
	case EngineWhisperX:
		// Local engine for everything.
	case EngineOpenAI:
		hosted, err := transcribe.NewOpenAIEngine(creds.OpenAIAPIKey())
		if err != nil {
			return pipeline.Engines{}, err
		}
		engines.Transcriber = hosted
	default:
		return pipeline.Engines{}, fmt.Errorf("%w: unknown engine %q: must be %q or %q",
			vnerrors.ErrValidation, engine, EngineWhisperX, EngineOpenAI)
	}
	return engines, nil
}

// NewTranscribeCommand creates the transcribe command.
func NewTranscribeCommand(deps *TranscribeCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultTranscribeDeps()
	}

	var (
		flagEngine       string
		flagModel        string
		flagDevice       string
		flagLanguage     string
		flagPrompt       string
		flagOutputDir    string
		flagAlign        bool
		flagDiarize      bool
		flagMinSpeakers  int
		flagMaxSpeakers  int
		flagSummarize    bool
		flagSummaryModel string
		flagDebug        bool
	)

	cmd := &cobra.Command{
		Use:   "transcribe <audio-file>",
		Short: "Transcribe an audio or video file",
		Long: `Transcribe an audio or video file into text artifacts.

Always written:
  transcript.txt    full transcript text
  segments.json     timestamped segments

Optional stages add:
  --align       aligned_segments.json with word-level timestamps
  --diarize     diarized_segments.json and transcript_by_speaker.txt
                (requires HUGGINGFACE_TOKEN; implies --align semantics
                 on the segments it labels)
  --summarize   summary.md (requires OPENAI_API_KEY; failures here never
                 fail the run)

Artifacts land next to the input file unless --out says otherwise.

Examples:
  # Basic transcription with the local engine
  voicenotes transcribe meeting.mp3

  # Word-level timestamps and speaker labels
  voicenotes transcribe meeting.mp3 --align --diarize

  # Bound the speaker count for better diarization
  voicenotes transcribe standup.wav --diarize --min-speakers 2 --max-speakers 5

  # Full pipeline with a summary
  voicenotes transcribe all-hands.mp4 --align --diarize --summarize

  # Hosted transcription instead of the local model
  voicenotes transcribe memo.m4a --engine openai`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := deps.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			model := flagModel
			if model == "" {
				model = cfg.Model
				if flagEngine == EngineOpenAI {
					model = openAIDefaultModel
				}
			}
			device := cfg.Device
			if flagDevice != "" {
				device = config.Device(flagDevice)
			}
			lang := flagLanguage
			if lang == "" {
				lang = cfg.Language
			}
			if lang != "" {
				if _, err := language.Parse(lang); err != nil {
					return fmt.Errorf("%w: invalid language code %q: %v", vnerrors.ErrValidation, lang, err)
				}
			}
			outputDir := flagOutputDir
			if outputDir == "" {
				outputDir = cfg.OutputDir
			}
			summaryModel := flagSummaryModel
			if summaryModel == "" {
				summaryModel = cfg.SummaryModel
			}

			engines, err := deps.NewEngines(strings.ToLower(flagEngine), deps.Credentials)
			if err != nil {
				return err
			}

			log := deps.Logger
			if log == nil {
				logCfg := logging.DefaultConfig()
				if cfg.Debug || flagDebug {
					logCfg.Level = logging.LevelDebug
				}
				log = logging.NewLogger(logCfg)
			}

			p := pipeline.New(engines, deps.Credentials, deps.NewSummarizer, log)
			return p.Run(cmd.Context(), pipeline.Options{
				AudioPath:    args[0],
				Model:        model,
				Device:       device,
				Language:     lang,
				Prompt:       flagPrompt,
				OutputDir:    outputDir,
				Align:        flagAlign,
				Diarize:      flagDiarize,
				MinSpeakers:  flagMinSpeakers,
				MaxSpeakers:  flagMaxSpeakers,
				Summarize:    flagSummarize,
				SummaryModel: summaryModel,
			})
		},
	}

	cmd.Flags().StringVar(&flagEngine, "engine", EngineWhisperX, "Transcription engine: whisperx, openai")
	cmd.Flags().StringVar(&flagModel, "model", "", "Speech-recognition model (default from config, openai engine defaults to whisper-1)")
	cmd.Flags().StringVar(&flagDevice, "device", "", "Compute device: cpu, cuda (default from config)")
	cmd.Flags().StringVar(&flagLanguage, "language", "", "Language code, e.g. en (default: auto-detect)")
	cmd.Flags().StringVar(&flagPrompt, "prompt", "", "Initial prompt passed to the engine")
	cmd.Flags().StringVarP(&flagOutputDir, "out", "o", "", "Directory for artifacts (default: next to the input file)")
	cmd.Flags().BoolVar(&flagAlign, "align", false, "Refine timestamps with forced alignment")
	cmd.Flags().BoolVar(&flagDiarize, "diarize", false, "Label segments with speakers")
	cmd.Flags().IntVar(&flagMinSpeakers, "min-speakers", 0, "Minimum speaker count hint for diarization")
	cmd.Flags().IntVar(&flagMaxSpeakers, "max-speakers", 0, "Maximum speaker count hint for diarization")
	cmd.Flags().BoolVar(&flagSummarize, "summarize", false, "Generate summary.md from the transcript")
	cmd.Flags().StringVar(&flagSummaryModel, "summary-model", "", "Chat model for the summary (default from config)")
	cmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	return cmd
}
