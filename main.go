// Package main provides the voicenotes CLI entry point.
// voicenotes turns audio and video recordings into transcript artifacts:
// plain text, timestamped segments, speaker-labelled transcripts, and
// summaries.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/voicenotes/voicenotes-cli/cmd"
	"github.com/voicenotes/voicenotes-cli/pkg/buildinfo"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "voicenotes",
	Short: "Voicenotes CLI - turn recordings into transcripts",
	Long: `voicenotes turns audio and video recordings into text artifacts.

A single run transcribes the input and, on request, refines timestamps
with forced alignment, labels segments with speakers, and generates a
structured summary. Artifacts are plain files written next to the input
(or into --out), so they compose with whatever comes after.

Quick start:
  voicenotes transcribe meeting.mp3
  voicenotes transcribe meeting.mp3 --align --diarize --summarize

Credentials:
  voicenotes auth set huggingface    diarization model token
  voicenotes auth set openai         summarization / hosted engine key

Environment variables (HUGGINGFACE_TOKEN, OPENAI_API_KEY) take
precedence over stored credentials. A .env file in the working
directory is loaded automatically.`,
	Version:       buildinfo.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(cmd.NewTranscribeCommand(nil))
	rootCmd.AddCommand(cmd.NewAuthCommand(nil))
	rootCmd.AddCommand(cmd.NewVersionCommand())
}

func main() {
	// A .env in the working directory is a convenience for local use;
	// a missing file is the normal case.
	_ = godotenv.Load()

	// Set up signal handling for graceful shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
