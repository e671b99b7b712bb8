// Package pipeline turns a set of bank export files into one ordered batch of
// categorized transactions with recurrence flags applied.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/runway-dev/runway/internal/importer"
	"github.com/runway-dev/runway/internal/logger"
	"github.com/runway-dev/runway/internal/model"
	"github.com/runway-dev/runway/internal/normalize"
	"github.com/runway-dev/runway/internal/recurring"
)

// DefaultConcurrency bounds how many files are read at once.
const DefaultConcurrency = 4

// Options configures a Pipeline.
type Options struct {
	Parser      importer.Parser // required
	Normalize   normalize.Options
	Recurrence  recurring.Options
	Concurrency int // <= 0 means DefaultConcurrency
}

// Pipeline reads files, normalizes their rows and flags recurring vendors.
type Pipeline struct {
	parser      importer.Parser
	normalizer  *normalize.Normalizer
	recurrence  recurring.Options
	concurrency int
}

// FileResult records what one input file contributed to a batch.
type FileResult struct {
	Path    string
	Rows    int
	Kept    int
	Skipped []int // row indices within the file
}

// Batch is the output of one run. It replaces any previous batch wholesale.
type Batch struct {
	ID           uuid.UUID
	Files        []FileResult
	RowsRead     int
	Skipped      int
	Transactions []model.Transaction
}

// New creates a Pipeline.
func New(opts Options) (*Pipeline, error) {
	if opts.Parser == nil {
		return nil, fmt.Errorf("pipeline: parser is required")
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Pipeline{
		parser:      opts.Parser,
		normalizer:  normalize.New(opts.Normalize),
		recurrence:  opts.Recurrence,
		concurrency: concurrency,
	}, nil
}

// Run parses paths concurrently, then normalizes their rows in the order the
// paths were given and runs recurrence detection over the whole batch.
func (p *Pipeline) Run(ctx context.Context, paths []string) (*Batch, error) {
	batch := &Batch{ID: uuid.New()}
	log := logger.FromContext(ctx).With().Str("batch", batch.ID.String()).Logger()

	parsed := make([][]normalize.Row, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows, err := importer.ParseFile(p.parser, path)
			if err != nil {
				return err
			}
			parsed[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("reading inputs: %w", err)
	}

	var txns []model.Transaction
	for i, path := range paths {
		kept, skipped := p.normalizer.NormalizeAll(parsed[i])
		res := FileResult{
			Path:    path,
			Rows:    len(parsed[i]),
			Kept:    len(kept),
			Skipped: skipped,
		}
		logSkips(log, path, parsed[i], skipped)
		log.Debug().
			Str("file", filepath.Base(path)).
			Int("rows", res.Rows).
			Int("kept", res.Kept).
			Msg("file normalized")

		batch.Files = append(batch.Files, res)
		batch.RowsRead += res.Rows
		batch.Skipped += len(skipped)
		txns = append(txns, kept...)
	}

	batch.Transactions = recurring.Detect(txns, p.recurrence)

	log.Info().
		Int("files", len(paths)).
		Int("rows", batch.RowsRead).
		Int("kept", len(batch.Transactions)).
		Int("skipped", batch.Skipped).
		Msg("batch assembled")
	return batch, nil
}

func logSkips(log zerolog.Logger, path string, rows []normalize.Row, skipped []int) {
	if log.GetLevel() > zerolog.DebugLevel {
		return
	}
	for _, idx := range skipped {
		log.Debug().
			Str("file", filepath.Base(path)).
			Int("row", idx).
			Interface("values", rows[idx]).
			Msg("row skipped")
	}
}

// Recurring returns the number of transactions flagged as recurring.
func (b *Batch) Recurring() int {
	n := 0
	for _, t := range b.Transactions {
		if t.IsRecurring {
			n++
		}
	}
	return n
}
