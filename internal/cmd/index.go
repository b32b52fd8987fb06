package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/vaultcopy/internal/index"
	"github.com/harrison/vaultcopy/internal/logger"
	"github.com/harrison/vaultcopy/internal/models"
)

// NewIndexCommand creates the index command
func NewIndexCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Record the vault graph and selection in a SQLite index",
		Long: `Build the selection and snapshot it into a SQLite database: the file
table, the link table, and a run row. Each invocation replaces the
previous snapshot. The database supports backlink and inclusion queries
without rescanning the vault.

Examples:
  vaultcopy index --root ~/vault --db vault.db --include-tag public`,
		RunE: indexCommand,
	}

	addSelectionFlags(cmd)
	cmd.Flags().String("db", "vaultcopy.db", "Path to the SQLite database file")

	return cmd
}

// indexCommand implements the index command logic
func indexCommand(cmd *cobra.Command, args []string) error {
	cfg := configFromFlags(cmd)
	cfg.DryRun = true // indexing never copies, so no destination is needed
	if err := cfg.Validate(); err != nil {
		return err
	}

	dbPath, _ := cmd.Flags().GetString("db")
	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	sel, err := buildSelection(cfg, log)
	if err != nil {
		return err
	}
	displayWarnings(cmd, sel.report)

	db, err := index.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	filter := models.NewTagFilter(cfg.IncludeTags, cfg.ExcludeTags)
	runID, err := db.RecordRun(sel.graph, sel.manifest, filter, cfg.Root)
	if err != nil {
		return err
	}

	log.Infof("indexed %d file(s), %d included", sel.graph.Len(), len(sel.manifest))
	fmt.Fprintln(cmd.OutOrStdout(), runID)
	return nil
}
