package main

import (
	"fmt"

	"github.com/iwvelando/inflation-estimator/internal/config"
	"github.com/spf13/cobra"
)

// validateCmd checks a configuration file without running an estimate. It
// reports warnings and fails on configuration the other commands would reject.
func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The root already rejected unusable files; a missing file is only
			// an error when asked to validate it.
			if _, err := config.LoadConfiguration(a.configPath); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			warnings := a.conf.ValidateConfiguration()
			for _, warning := range warnings {
				fmt.Fprintf(out, "warning: %s\n", warning)
			}
			fmt.Fprintf(out, "%s is valid (%d tiers, %d warnings)\n", a.configPath, len(a.table.Tiers()), len(warnings))
			return nil
		},
	}
}
