package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/voicenotes/voicenotes-cli/credentials"
)

// AuthCommandDeps holds the dependencies for auth commands.
type AuthCommandDeps struct {
	Store *credentials.Store

	// ReadSecret reads a secret without echoing it. Overridable in tests.
	ReadSecret func() (string, error)
}

// DefaultAuthDeps returns the default dependencies for production use.
func DefaultAuthDeps() *AuthCommandDeps {
	return &AuthCommandDeps{
		Store:      credentials.NewStore(),
		ReadSecret: readSecretFromTerminal,
	}
}

// NewAuthCommand creates the auth command group.
func NewAuthCommand(deps *AuthCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultAuthDeps()
	}

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage service credentials",
		Long: `Manage the credentials the optional pipeline stages need.

Providers:
  huggingface   Diarization model access token (HUGGINGFACE_TOKEN)
  openai        Summarization / hosted transcription key (OPENAI_API_KEY)

Credentials are stored in the system keyring. Environment variables take
precedence over stored values, so CI and one-off overrides keep working.

Examples:
  voicenotes auth set huggingface
  voicenotes auth show
  voicenotes auth clear openai`,
	}

	cmd.AddCommand(newAuthSetCommand(deps))
	cmd.AddCommand(newAuthShowCommand(deps))
	cmd.AddCommand(newAuthClearCommand(deps))

	return cmd
}

// newAuthSetCommand creates the 'auth set' subcommand.
func newAuthSetCommand(deps *AuthCommandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "set <provider>",
		Short: "Store a credential in the system keyring",
		Long: `Store a credential in the system keyring.

The value is prompted for and never echoed.

Examples:
  voicenotes auth set huggingface
  voicenotes auth set openai`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{credentials.ProviderHuggingFace, credentials.ProviderOpenAI},
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := strings.ToLower(args[0])

			fmt.Fprintf(cmd.OutOrStdout(), "Enter %s credential: ", provider)
			value, err := deps.ReadSecret()
			fmt.Fprintln(cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("reading credential: %w", err)
			}

			if err := deps.Store.Set(provider, value); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored %s credential in the system keyring.\n", provider)
			return nil
		},
	}
}

// newAuthShowCommand creates the 'auth show' subcommand.
func newAuthShowCommand(deps *AuthCommandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show where each credential resolves from",
		Long: `Show where each credential currently resolves from.

Values are never printed, only their source: environment, keyring, or
not set.

Examples:
  voicenotes auth show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, provider := range []string{credentials.ProviderHuggingFace, credentials.ProviderOpenAI} {
				fmt.Fprintf(out, "%-13s %s\n", provider+":", deps.Store.Source(provider))
			}
			return nil
		},
	}
}

// newAuthClearCommand creates the 'auth clear' subcommand.
func newAuthClearCommand(deps *AuthCommandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <provider>",
		Short: "Remove a credential from the system keyring",
		Long: `Remove a credential from the system keyring.

Environment variables are not affected.

Examples:
  voicenotes auth clear huggingface`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{credentials.ProviderHuggingFace, credentials.ProviderOpenAI},
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := strings.ToLower(args[0])
			if err := deps.Store.Delete(provider); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s credential.\n", provider)
			return nil
		},
	}
}

// readSecretFromTerminal reads a secret without echo, falling back to a
// plain line read when stdin is not a terminal (pipes, CI).
func readSecretFromTerminal() (string, error) {
	if term.IsTerminal(int(syscall.Stdin)) {
		raw, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
