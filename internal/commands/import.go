package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/runway-dev/runway/internal/importer"
	"github.com/runway-dev/runway/internal/importlog"
	"github.com/runway-dev/runway/internal/pipeline"
	"github.com/runway-dev/runway/internal/report"
)

func newImportCommand(g *globalFlags) *cobra.Command {
	var out string
	var archive bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Normalize bank exports into categorized transactions",
		Long: "Reads the given files, or every CSV/TSV in <repo>/import when none are given,\n" +
			"and prints the normalized transactions.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, g)
			if err != nil {
				return err
			}

			paths, scanned, err := s.inputs(args)
			if err != nil {
				return err
			}
			p, err := s.pipeline()
			if err != nil {
				return err
			}
			batch, err := p.Run(s.ctx, paths)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Imported %d transactions from %d file(s): %d skipped, %d recurring\n",
				len(batch.Transactions), len(batch.Files), batch.Skipped, batch.Recurring())
			if !quiet {
				fmt.Fprintln(w)
				if err := report.TransactionsTable(w, batch.Transactions); err != nil {
					return err
				}
			}

			if out != "" {
				err := writeFile(out, func(f io.Writer) error {
					return report.WriteTransactions(f, batch.Transactions)
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "Wrote %s\n", out)
			}

			if archive {
				if len(scanned) == 0 {
					return fmt.Errorf("--archive only applies to files scanned from %s", filepath.Join(s.repo, "import"))
				}
				if err := archiveBatch(s.repo, batch, scanned); err != nil {
					return err
				}
				s.log.Info().Str("batch", batch.ID.String()).Int("files", len(scanned)).Msg("archived import files")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "write transactions CSV to this path")
	cmd.Flags().BoolVar(&archive, "archive", false, "move scanned files to import/processed")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print the summary line only")

	return cmd
}

// archiveBatch records the batch in the import log, then moves its files to
// import/processed.
func archiveBatch(repo string, batch *pipeline.Batch, scanned []importer.FileInfo) error {
	byPath := make(map[string]pipeline.FileResult, len(batch.Files))
	for _, res := range batch.Files {
		byPath[res.Path] = res
	}

	ts := now()
	entries := make([]importlog.Entry, 0, len(scanned))
	for _, f := range scanned {
		res := byPath[f.Path]
		entries = append(entries, importlog.Entry{
			Timestamp: ts,
			BatchID:   batch.ID.String(),
			File:      f.Name,
			Rows:      res.Rows,
			Kept:      res.Kept,
			Skipped:   len(res.Skipped),
		})
	}
	if err := importlog.Append(repo, entries); err != nil {
		return err
	}

	for _, f := range scanned {
		if err := importer.MarkProcessed(repo, f.Name); err != nil {
			return err
		}
	}
	return nil
}
