package commands

import (
	"github.com/spf13/cobra"

	"github.com/runway-dev/runway/internal/metrics"
	"github.com/runway-dev/runway/internal/report"
)

func newMetricsCommand(g *globalFlags) *cobra.Command {
	var exported string

	cmd := &cobra.Command{
		Use:   "metrics [files...]",
		Short: "Show balance, trailing burn and runway",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, g)
			if err != nil {
				return err
			}
			txns, err := s.transactions(args, exported)
			if err != nil {
				return err
			}
			return report.MetricsSummary(cmd.OutOrStdout(), metrics.Compute(txns, now()))
		},
	}

	cmd.Flags().StringVar(&exported, "transactions", "", "read a transactions CSV written by import --out")

	return cmd
}
