package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChaseParser_Parse(t *testing.T) {
	data, err := os.ReadFile("../../testdata/chase_checking.csv")
	require.NoError(t, err)

	p := &ChaseParser{}
	rows, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Len(t, rows, 6)

	// First: GITHUB subscription
	assert.Equal(t, "GITHUB *PRO SUBSCRIPTION", rows[0]["Description"])
	assert.Equal(t, "-4.00", rows[0]["Amount"])
	assert.Equal(t, "ACH_DEBIT", rows[0]["Type"])

	// Fourth: ACME income
	assert.Equal(t, "ACME CONSULTING INVOICE 1042", rows[3]["Description"])
	assert.Equal(t, "3500.00", rows[3]["Amount"])
}

func TestChaseParser_RenamesPostingDate(t *testing.T) {
	data, err := os.ReadFile("../../testdata/chase_checking.csv")
	require.NoError(t, err)

	rows, err := (&ChaseParser{}).Parse(strings.NewReader(string(data)))
	require.NoError(t, err)

	last := rows[5]
	assert.Equal(t, "01/22/2025", last["Date"])
	_, ok := last["Posting Date"]
	assert.False(t, ok)
}

func TestChaseParser_EmptyFile(t *testing.T) {
	p := &ChaseParser{}
	rows, err := p.Parse(strings.NewReader("Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\n"))
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestChaseParser_Format(t *testing.T) {
	p := &ChaseParser{}
	assert.Equal(t, "chase", p.Format())
}

func TestDelimitedParser_SkipsPreamble(t *testing.T) {
	data, err := os.ReadFile("../../testdata/barclays_statement.csv")
	require.NoError(t, err)

	p := NewDelimitedParser("csv", ',')
	rows, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	require.Len(t, rows, 13)

	assert.Equal(t, "01/01/2025", rows[0]["Date"])
	assert.Equal(t, "OPENING TRANSFER", rows[0]["Description"])
	assert.Equal(t, "", rows[0]["Debit"])
	assert.Equal(t, "20000.00", rows[0]["Credit"])
}

func TestDelimitedParser_StripsBOM(t *testing.T) {
	p := NewDelimitedParser("csv", ',')
	rows, err := p.Parse(strings.NewReader("\ufeffDate,Description,Amount\n2025-01-01,x,1\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2025-01-01", rows[0]["Date"])
}

func TestDelimitedParser_RaggedRows(t *testing.T) {
	p := NewDelimitedParser("csv", ',')
	input := "Date,Description,Amount\n2025-01-01,short\n2025-01-02,long,3,extra,cells\n,,\n"
	rows, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2, "the all-empty record is dropped")

	assert.Equal(t, "", rows[0]["Amount"])
	assert.Equal(t, "3", rows[1]["Amount"])
	assert.Len(t, rows[1], 3)
}

func TestDelimitedParser_HeaderCells(t *testing.T) {
	p := NewDelimitedParser("csv", ',')
	input := " Date ,,Description,Description,Amount\n2025-01-01,ignored,first,second,5\n"
	rows, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "2025-01-01", rows[0]["Date"])
	assert.Equal(t, "first", rows[0]["Description"], "first duplicate header wins")
	_, ok := rows[0][""]
	assert.False(t, ok, "blank headers are dropped")
}

func TestDelimitedParser_TSV(t *testing.T) {
	data, err := os.ReadFile("../../testdata/bank_export.tsv")
	require.NoError(t, err)

	p := NewDelimitedParser("tsv", '\t')
	rows, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "-1,250.00", rows[0]["Amount"])
	assert.Equal(t, "HMRC VAT", rows[0]["Narrative"])
}

func TestDelimitedParser_Semicolon(t *testing.T) {
	p := NewDelimitedParser("semicolon", ';')
	rows, err := p.Parse(strings.NewReader("Datum;Memo;Amount\nDate;Memo;Amount\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Date", rows[0]["Datum"])
}

func TestDelimitedParser_OnlyPreamble(t *testing.T) {
	p := NewDelimitedParser("csv", ',')
	rows, err := p.Parse(strings.NewReader("just a title\n\n"))
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	p := r.Get("chase")
	require.NotNil(t, p)
	assert.Equal(t, "chase", p.Format())
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	assert.NotNil(t, r.Get("Chase"))
	assert.NotNil(t, r.Get("CHASE"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(NewDelimitedParser("csv", ','))
	assert.Panics(t, func() { r.Register(NewDelimitedParser("CSV", ';')) })
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	for _, format := range []string{"csv", "tsv", "semicolon", "chase"} {
		assert.NotNil(t, r.Get(format), "format %s", format)
	}
}

func TestParseFile(t *testing.T) {
	rows, err := ParseFile(NewDelimitedParser("csv", ','), "../../testdata/chase_checking.csv")
	require.NoError(t, err)
	assert.Len(t, rows, 6)

	_, err = ParseFile(NewDelimitedParser("csv", ','), filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScan_FindsCSVs(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "bank.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "card.TSV"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "other.txt"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "bank.csv", files[0].Name)
	assert.Equal(t, "card.TSV", files[1].Name)
	assert.Equal(t, int64(4), files[0].Size)
}

func TestScan_IgnoresProcessedDir(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	processedDir := filepath.Join(importDir, "processed")
	require.NoError(t, os.MkdirAll(processedDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "new.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(processedDir, "old.csv"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "new.csv", files[0].Name)
}

func TestScan_EmptyDir(t *testing.T) {
	dir := t.TempDir()
	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "bank.csv"), []byte("data"), 0o644))

	err := MarkProcessed(dir, "bank.csv")
	require.NoError(t, err)

	// Source gone.
	_, err = os.Stat(filepath.Join(importDir, "bank.csv"))
	assert.True(t, os.IsNotExist(err))

	// Destination exists.
	_, err = os.Stat(filepath.Join(dir, "import", "processed", "bank.csv"))
	assert.NoError(t, err)
}

func TestMarkProcessed_Missing(t *testing.T) {
	err := MarkProcessed(t.TempDir(), "nope.csv")
	assert.Error(t, err)
}
