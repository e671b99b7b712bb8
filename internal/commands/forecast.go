package commands

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/runway-dev/runway/internal/forecast"
	"github.com/runway-dev/runway/internal/model"
	"github.com/runway-dev/runway/internal/report"
)

func newForecastCommand(g *globalFlags) *cobra.Command {
	var exported string
	var months int
	var growth, saasCut float64
	var startBalance string
	var out string

	cmd := &cobra.Command{
		Use:   "forecast [files...]",
		Short: "Project monthly cash balance under a scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, g)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if !flags.Changed("months") {
				months = s.cfg.Forecast.HorizonMonths
			}
			if !flags.Changed("growth") {
				growth = s.cfg.Scenario.RevenueGrowthPct
			}
			if !flags.Changed("saas-cut") {
				saasCut = s.cfg.Scenario.SaaSReductionPct
			}
			if months < 1 {
				return fmt.Errorf("--months must be at least 1, got %d", months)
			}
			if saasCut < 0 || saasCut > 100 {
				return fmt.Errorf("--saas-cut must be between 0 and 100, got %g", saasCut)
			}

			opts := forecast.Options{Now: now()}
			if startBalance != "" {
				b, err := decimal.NewFromString(startBalance)
				if err != nil {
					return fmt.Errorf("parsing --start-balance %q: %w", startBalance, err)
				}
				opts.StartBalance = &b
			}

			txns, err := s.transactions(args, exported)
			if err != nil {
				return err
			}

			scenario := model.Scenario{
				RevenueGrowthPct: decimal.NewFromFloat(growth),
				SaaSReductionPct: decimal.NewFromFloat(saasCut),
			}
			engine := &forecast.Engine{SaaSShare: decimal.NewFromFloat(s.cfg.Forecast.SaaSShare)}
			points := engine.Project(txns, months, scenario, opts)

			base := forecast.ComputeBaseline(txns)
			s.log.Debug().
				Str("avg_inflow", base.AvgInflow.StringFixed(2)).
				Str("avg_outflow", base.AvgOutflow.StringFixed(2)).
				Int("baseline_months", len(base.Months)).
				Msg("forecast baseline")

			w := cmd.OutOrStdout()
			if err := report.ForecastTable(w, points); err != nil {
				return err
			}
			if out != "" {
				err := writeFile(out, func(f io.Writer) error {
					return report.WriteForecast(f, points)
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "Wrote %s\n", out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&exported, "transactions", "", "read a transactions CSV written by import --out")
	cmd.Flags().IntVar(&months, "months", forecast.DefaultHorizon, "months to project (default from config)")
	cmd.Flags().Float64Var(&growth, "growth", 0, "monthly revenue growth, percent")
	cmd.Flags().Float64Var(&saasCut, "saas-cut", 0, "SaaS spend reduction, percent")
	cmd.Flags().StringVar(&startBalance, "start-balance", "", "opening balance (default: sum of transactions)")
	cmd.Flags().StringVar(&out, "out", "", "write forecast CSV to this path")

	return cmd
}
