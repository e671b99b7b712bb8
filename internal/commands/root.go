package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/runway-dev/runway/internal/buildinfo"
)

// now is the clock used for metrics windows, forecast anchoring and the
// unparsable-date fallback.
var now = time.Now

// globalFlags are shared by every subcommand.
type globalFlags struct {
	repo     string
	config   string
	format   string
	logLevel string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "runway",
		Short:   "Cash burn, runway and forecast from bank exports",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&g.repo, "repo", ".", "project directory")
	pf.StringVar(&g.config, "config", "", "config file (default <repo>/runway.yaml)")
	pf.StringVar(&g.format, "format", "", "input format: csv, tsv, semicolon or chase")
	pf.StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newImportCommand(g))
	rootCmd.AddCommand(newMetricsCommand(g))
	rootCmd.AddCommand(newRecurringCommand(g))
	rootCmd.AddCommand(newForecastCommand(g))
	rootCmd.AddCommand(newHistoryCommand(g))

	return rootCmd
}
