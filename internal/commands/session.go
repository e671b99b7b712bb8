package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/runway-dev/runway/internal/config"
	"github.com/runway-dev/runway/internal/importer"
	"github.com/runway-dev/runway/internal/logger"
	"github.com/runway-dev/runway/internal/model"
	"github.com/runway-dev/runway/internal/normalize"
	"github.com/runway-dev/runway/internal/pipeline"
	"github.com/runway-dev/runway/internal/recurring"
	"github.com/runway-dev/runway/internal/report"
)

// session is the resolved state one command runs with.
type session struct {
	repo string
	cfg  *config.Config
	log  zerolog.Logger
	ctx  context.Context
}

func newSession(cmd *cobra.Command, g *globalFlags) (*session, error) {
	repo, err := filepath.Abs(g.repo)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfgPath := filepath.Join(repo, config.FileName)
	if g.config != "" {
		cfgPath = g.config
		if _, err := os.Stat(cfgPath); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	cfg, err := config.LoadFile(cfgPath, repo)
	if err != nil {
		return nil, err
	}

	if g.format != "" {
		cfg.Import.Format = g.format
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.NewConsole(cmd.ErrOrStderr(), cfg.LogLevel())
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return &session{
		repo: repo,
		cfg:  cfg,
		log:  log,
		ctx:  logger.WithContext(ctx, log),
	}, nil
}

func (s *session) recurrence() recurring.Options {
	return recurring.Options{
		MinOccurrences: s.cfg.Recurrence.MinOccurrences,
		MaxVariation:   s.cfg.Recurrence.MaxVariation,
	}
}

func (s *session) pipeline() (*pipeline.Pipeline, error) {
	parser := importer.DefaultRegistry().Get(s.cfg.Import.Format)
	if parser == nil {
		return nil, fmt.Errorf("unknown input format %q", s.cfg.Import.Format)
	}
	return pipeline.New(pipeline.Options{
		Parser: parser,
		Normalize: normalize.Options{
			Now:                 now,
			SkipUnparsableDates: s.cfg.Import.UnparsableDates == config.UnparsableSkip,
			DayFirst:            s.cfg.Import.DayFirst,
		},
		Recurrence: s.recurrence(),
	})
}

// inputs returns args, or every importable file in <repo>/import when args is
// empty. scanned reports the latter.
func (s *session) inputs(args []string) (paths []string, scanned []importer.FileInfo, err error) {
	if len(args) > 0 {
		return args, nil, nil
	}
	files, err := importer.Scan(s.repo)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, errors.New("no input files: pass paths or add files to import/")
	}
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	return paths, files, nil
}

// transactions loads the batch from an exported transactions CSV when
// exported is set, otherwise from the raw input files.
func (s *session) transactions(args []string, exported string) ([]model.Transaction, error) {
	if exported != "" {
		f, err := os.Open(exported)
		if err != nil {
			return nil, fmt.Errorf("opening transactions: %w", err)
		}
		defer f.Close()

		txns, err := report.ReadTransactions(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", exported, err)
		}
		s.log.Debug().Str("file", exported).Int("transactions", len(txns)).Msg("loaded exported transactions")
		return recurring.Detect(txns, s.recurrence()), nil
	}

	paths, _, err := s.inputs(args)
	if err != nil {
		return nil, err
	}
	p, err := s.pipeline()
	if err != nil {
		return nil, err
	}
	batch, err := p.Run(s.ctx, paths)
	if err != nil {
		return nil, err
	}
	return batch.Transactions, nil
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
