package main

import (
	"errors"
	"fmt"

	"github.com/iwvelando/inflation-estimator/internal/estimate"
	"github.com/iwvelando/inflation-estimator/pkg/inflation"
	"github.com/iwvelando/inflation-estimator/pkg/output"
	"github.com/spf13/cobra"
)

func estimateCmd(a *app) *cobra.Command {
	var req estimate.Request

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the inflation-adjusted value of an amount",
		Example: `  inflation-estimator estimate --amount 1000 --start 2023-01-01 --end 2024-01-01
  inflation-estimator estimate --amount 500 --start 2010-06-01 --end 2010-06-02 --output-format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := a.newService(nil).Estimate(cmd.Context(), req)
			if err != nil {
				var verr *inflation.ValidationError
				if errors.As(err, &verr) {
					return fmt.Errorf("%s: %w", verr.Message(), err)
				}
				return err
			}
			return output.Write(cmd.OutOrStdout(), a.outputFormat, report)
		},
	}

	cmd.Flags().StringVar(&req.Amount, "amount", "", "amount of money at the start date")
	cmd.Flags().StringVar(&req.StartDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.EndDate, "end", "", "end date (YYYY-MM-DD)")

	return cmd
}
