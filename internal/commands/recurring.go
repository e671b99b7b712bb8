package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runway-dev/runway/internal/recurring"
	"github.com/runway-dev/runway/internal/report"
)

func newRecurringCommand(g *globalFlags) *cobra.Command {
	var exported string

	cmd := &cobra.Command{
		Use:   "recurring [files...]",
		Short: "List vendors that charge a steady amount repeatedly",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, g)
			if err != nil {
				return err
			}
			txns, err := s.transactions(args, exported)
			if err != nil {
				return err
			}

			vendors := recurring.Vendors(txns, s.recurrence())
			if len(vendors) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recurring vendors found.")
				return nil
			}
			return report.RecurringTable(cmd.OutOrStdout(), vendors)
		},
	}

	cmd.Flags().StringVar(&exported, "transactions", "", "read a transactions CSV written by import --out")

	return cmd
}
