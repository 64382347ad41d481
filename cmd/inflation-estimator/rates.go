package main

import (
	"github.com/iwvelando/inflation-estimator/pkg/output"
	"github.com/spf13/cobra"
)

func ratesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "Show the monthly inflation rate tiers in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return output.WriteRates(cmd.OutOrStdout(), a.outputFormat, a.table, a.display)
		},
	}
}
