package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/vaultcopy/internal/logger"
)

// NewPlanCommand creates the plan command
func NewPlanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the copy manifest without copying",
		Long: `Compute the selection for the given filter and print the manifest,
one vault-relative path per line. Nothing is written.

Examples:
  vaultcopy plan --root ~/vault --include-tag public
  vaultcopy plan --root ~/vault --include-tag public --exclude-tag draft`,
		RunE: planCommand,
	}

	addSelectionFlags(cmd)

	return cmd
}

// planCommand implements the plan command logic
func planCommand(cmd *cobra.Command, args []string) error {
	cfg := configFromFlags(cmd)
	cfg.DryRun = true // plan never writes, so no destination is needed
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	sel, err := buildSelection(cfg, log)
	if err != nil {
		return err
	}
	displayWarnings(cmd, sel.report)

	for _, rel := range sel.manifest {
		fmt.Fprintln(cmd.OutOrStdout(), rel)
	}
	log.Infof("%d file(s) selected", len(sel.manifest))
	return nil
}
