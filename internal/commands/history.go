package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runway-dev/runway/internal/importlog"
	"github.com/runway-dev/runway/internal/report"
)

func newHistoryCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List archived import batches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, g)
			if err != nil {
				return err
			}
			entries, err := importlog.Read(s.repo)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No imports archived yet.")
				return nil
			}
			return report.HistoryTable(cmd.OutOrStdout(), entries)
		},
	}
}
