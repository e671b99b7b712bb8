package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runway-dev/runway/internal/importer"
	"github.com/runway-dev/runway/internal/logger"
	"github.com/runway-dev/runway/internal/model"
	"github.com/runway-dev/runway/internal/normalize"
	"github.com/runway-dev/runway/internal/recurring"
)

var fixedNow = time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)

func newPipeline(t *testing.T, parser importer.Parser, nopts normalize.Options) *Pipeline {
	t.Helper()
	if nopts.Now == nil {
		nopts.Now = func() time.Time { return fixedNow }
	}
	p, err := New(Options{
		Parser:     parser,
		Normalize:  nopts,
		Recurrence: recurring.DefaultOptions(),
	})
	require.NoError(t, err)
	return p
}

func TestNew_RequiresParser(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestRun_DayFirstStatement(t *testing.T) {
	p := newPipeline(t, importer.NewDelimitedParser("csv", ','), normalize.Options{DayFirst: true})

	batch, err := p.Run(context.Background(), []string{"../../testdata/barclays_statement.csv"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, batch.ID)
	assert.Equal(t, 13, batch.RowsRead)
	assert.Equal(t, 0, batch.Skipped)
	require.Len(t, batch.Transactions, 13)
	require.Len(t, batch.Files, 1)
	assert.Equal(t, 13, batch.Files[0].Kept)

	first := batch.Transactions[0]
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), first.Date)
	assert.True(t, first.Amount.Equal(decimal.NewFromInt(20000)))
	assert.False(t, first.IsRecurring)

	rent := batch.Transactions[3]
	assert.Equal(t, "landlord rent", rent.Vendor)
	assert.Equal(t, model.CategoryRent, rent.Category)
	assert.True(t, rent.Amount.Equal(decimal.NewFromInt(-2000)))
	assert.True(t, rent.IsRecurring)

	// Everything but the opening transfer repeats monthly.
	assert.Equal(t, 12, batch.Recurring())
}

func TestRun_SkipsUnparsableDates(t *testing.T) {
	p := newPipeline(t, importer.NewDelimitedParser("tsv", '\t'), normalize.Options{SkipUnparsableDates: true})

	batch, err := p.Run(context.Background(), []string{"../../testdata/bank_export.tsv"})
	require.NoError(t, err)

	assert.Equal(t, 3, batch.RowsRead)
	assert.Equal(t, 1, batch.Skipped)
	assert.Equal(t, []int{2}, batch.Files[0].Skipped)
	require.Len(t, batch.Transactions, 2)
	assert.Equal(t, model.CategoryTaxes, batch.Transactions[0].Category)
	assert.True(t, batch.Transactions[0].Amount.Equal(decimal.NewFromInt(-1250)))
	assert.Equal(t, model.CategoryMarketing, batch.Transactions[1].Category)
}

func TestRun_UnparsableDateFallsBackToNow(t *testing.T) {
	p := newPipeline(t, importer.NewDelimitedParser("tsv", '\t'), normalize.Options{})

	batch, err := p.Run(context.Background(), []string{"../../testdata/bank_export.tsv"})
	require.NoError(t, err)

	require.Len(t, batch.Transactions, 3)
	assert.Equal(t, fixedNow, batch.Transactions[2].Date)
	assert.Equal(t, model.CategoryUncategorized, batch.Transactions[2].Category)
}

func TestRun_PreservesFileOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 1; i <= 6; i++ {
		path := filepath.Join(dir, fmt.Sprintf("part%d.csv", i))
		body := fmt.Sprintf("Date,Description,Amount\n2025-01-%02d,Coffee %d,-%d\n", i, i, i)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		paths = append(paths, path)
	}

	p, err := New(Options{
		Parser:      importer.NewDelimitedParser("csv", ','),
		Concurrency: 2,
	})
	require.NoError(t, err)

	batch, err := p.Run(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, batch.Transactions, 6)
	for i, txn := range batch.Transactions {
		assert.Equal(t, fmt.Sprintf("Coffee %d", i+1), txn.Description)
		assert.Equal(t, paths[i], batch.Files[i].Path)
	}
}

func TestRun_MissingFile(t *testing.T) {
	p := newPipeline(t, importer.NewDelimitedParser("csv", ','), normalize.Options{})

	_, err := p.Run(context.Background(), []string{filepath.Join(t.TempDir(), "missing.csv")})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_CanceledContext(t *testing.T) {
	p := newPipeline(t, importer.NewDelimitedParser("csv", ','), normalize.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Run(ctx, []string{"../../testdata/barclays_statement.csv"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_LogsBatch(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.NewWithWriter(buf).Level(zerolog.DebugLevel)
	ctx := logger.WithContext(context.Background(), log)

	p := newPipeline(t, importer.NewDelimitedParser("tsv", '\t'), normalize.Options{SkipUnparsableDates: true})
	batch, err := p.Run(ctx, []string{"../../testdata/bank_export.tsv"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, batch.ID.String())
	assert.Contains(t, out, `"message":"row skipped"`)
	assert.Contains(t, out, `"message":"batch assembled"`)
	assert.Contains(t, out, `"skipped":1`)
}
