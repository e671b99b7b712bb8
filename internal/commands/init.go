package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/runway-dev/runway/internal/config"
)

func newInitCommand() *cobra.Command {
	var format string
	var dayFirst bool
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new runway project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg := config.Default()
			cfg.Import.Format = format
			cfg.Import.DayFirst = dayFirst
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := runInit(absDir, cfg, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized runway project at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "import-format", "csv", "default input format")
	cmd.Flags().BoolVar(&dayFirst, "day-first", false, "read slash dates as day/month/year")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing runway.yaml")

	return cmd
}

func runInit(dir string, cfg *config.Config, force bool) error {
	dirs := []string{
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Exports carry account data; keep them out of version control by default.
	gitignore := "import/\nexports/\n.env\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}
	return nil
}
