package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for vaultcopy
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vaultcopy",
		Short: "Selective Markdown vault copier",
		Long: `Vaultcopy copies a tag-selected subset of a Markdown note vault to a
destination directory.

Files whose tags match the filter become seeds; everything a seed links
to or embeds, directly or transitively, is copied along with it so the
destination stays self-contained.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewCopyCommand())
	cmd.AddCommand(NewPlanCommand())
	cmd.AddCommand(NewIndexCommand())

	return cmd
}
