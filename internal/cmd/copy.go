package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/vaultcopy/internal/config"
	"github.com/harrison/vaultcopy/internal/copier"
	"github.com/harrison/vaultcopy/internal/display"
	"github.com/harrison/vaultcopy/internal/logger"
	"github.com/harrison/vaultcopy/internal/models"
	"github.com/harrison/vaultcopy/internal/vault"
)

// selection bundles the outcome of one graph build.
type selection struct {
	graph    *models.VaultGraph
	report   *models.BuildReport
	manifest []string
}

// NewCopyCommand creates the copy command
func NewCopyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy the selected subset of a vault to a destination",
		Long: `Copy the tag-selected subset of a vault into a destination directory.

Markdown files whose tags match the filter are seeds. Everything a seed
references, directly or transitively, is copied with it. Non-Markdown
files are copied only when something included references them.

Examples:
  # Copy everything tagged "public" plus what it references
  vaultcopy copy --root ~/vault --destination ./out --include-tag public

  # Same, but never seed drafts
  vaultcopy copy --root ~/vault --destination ./out \
    --include-tag public --exclude-tag draft

  # See what would be copied without writing anything
  vaultcopy copy --root ~/vault --include-tag public --dry-run`,
		RunE: copyCommand,
	}

	addSelectionFlags(cmd)
	cmd.Flags().String("destination", "", "Destination directory to copy into")
	cmd.Flags().Bool("dry-run", false, "Print the manifest without copying")

	return cmd
}

// addSelectionFlags registers the flags shared by every command that
// builds a selection.
func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().String("root", "", "Vault root directory (required)")
	cmd.Flags().StringSlice("include-tag", nil, "Tag to seed on (repeatable, comma-separated)")
	cmd.Flags().StringSlice("exclude-tag", nil, "Tag that disqualifies a seed (repeatable, comma-separated)")
	cmd.Flags().StringSlice("exclude-dir", nil, "Directory name to skip during traversal (repeatable)")
	cmd.Flags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")
}

// configFromFlags assembles a Config from the selection flags.
func configFromFlags(cmd *cobra.Command) *config.Config {
	root, _ := cmd.Flags().GetString("root")
	destination, _ := cmd.Flags().GetString("destination")
	includeTags, _ := cmd.Flags().GetStringSlice("include-tag")
	excludeTags, _ := cmd.Flags().GetStringSlice("exclude-tag")
	excludeDirs, _ := cmd.Flags().GetStringSlice("exclude-dir")
	logLevel, _ := cmd.Flags().GetString("log-level")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	return &config.Config{
		Root:        root,
		Destination: destination,
		IncludeTags: config.SplitTagValues(includeTags),
		ExcludeTags: config.SplitTagValues(excludeTags),
		ExcludeDirs: excludeDirs,
		LogLevel:    logLevel,
		DryRun:      dryRun,
	}
}

// buildSelection scans the vault, builds the graph, and computes the
// inclusion manifest for the given configuration.
func buildSelection(cfg *config.Config, log *logger.ConsoleLogger) (*selection, error) {
	files, err := vault.Scan(cfg.Root, vault.ScanOptions{ExcludeDirs: cfg.ExcludeDirs})
	if err != nil {
		return nil, err
	}
	log.Debugf("discovered %d files under %s", len(files), cfg.Root)

	filter := models.NewTagFilter(cfg.IncludeTags, cfg.ExcludeTags)
	builder, err := vault.NewBuilder(cfg.Root, filter, nil)
	if err != nil {
		return nil, err
	}

	graph, report, err := builder.Build(files)
	if err != nil {
		return nil, err
	}

	manifest := vault.Select(graph)
	log.Debugf("selected %d of %d files (%d seeds)", len(manifest), graph.Len(), len(graph.Seeds()))

	return &selection{graph: graph, report: report, manifest: manifest}, nil
}

// displayWarnings renders accumulated build warnings to the command's
// error stream.
func displayWarnings(cmd *cobra.Command, report *models.BuildReport) {
	if len(report.FrontMatter) > 0 {
		display.FrontMatterFailures(report.FrontMatter).Display(cmd.ErrOrStderr())
	}
	if len(report.Unresolved) > 0 {
		display.UnresolvedReferences(report.Unresolved).Display(cmd.ErrOrStderr())
	}
}

// copyCommand implements the copy command logic
func copyCommand(cmd *cobra.Command, args []string) error {
	cfg := configFromFlags(cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	sel, err := buildSelection(cfg, log)
	if err != nil {
		return err
	}
	displayWarnings(cmd, sel.report)

	if cfg.DryRun {
		for _, rel := range sel.manifest {
			fmt.Fprintln(cmd.OutOrStdout(), rel)
		}
		log.Infof("dry run: %d file(s) would be copied", len(sel.manifest))
		return nil
	}

	results, err := copier.New(cfg.Root, cfg.Destination).Copy(sel.manifest)
	if err != nil {
		return err
	}

	var total int64
	for _, result := range results {
		log.Debugf("copied %s (%d bytes, sha256 %s)", result.Path, result.Bytes, result.Checksum)
		total += result.Bytes
	}
	log.Infof("copied %d file(s) (%d bytes) to %s", len(results), total, cfg.Destination)
	return nil
}
