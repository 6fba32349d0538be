package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voicenotes/voicenotes-cli/pkg/buildinfo"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := buildinfo.Get()
			fmt.Fprintf(cmd.OutOrStdout(), "voicenotes %s\ngo: %s\n", buildinfo.String(), info.GoVersion)
			return nil
		},
	}
}
