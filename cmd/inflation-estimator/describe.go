package main

import (
	"github.com/iwvelando/inflation-estimator/pkg/inflation"
	"github.com/iwvelando/inflation-estimator/pkg/output"
	"github.com/spf13/cobra"
)

func describeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe [year]",
		Short: "Describe a year of notable inflation",
		Long: `Describe prints the historical narrative for a year. Years without a
dedicated narrative get a generic description. Without arguments every
described year is listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				entry := output.DescribeYears(args)[0]
				return output.WriteYear(cmd.OutOrStdout(), a.outputFormat, entry)
			}
			entries := output.DescribeYears(inflation.DescribedYears())
			return output.WriteYears(cmd.OutOrStdout(), a.outputFormat, entries)
		},
	}
}
