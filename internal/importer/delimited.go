package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/runway-dev/runway/internal/normalize"
)

// minHeaderCells is the number of non-empty cells a row needs to be taken as
// the header. Rows before it (titles, account numbers, blank lines) are skipped.
const minHeaderCells = 2

// DelimitedParser reads delimited text with a header row.
type DelimitedParser struct {
	format string
	comma  rune
}

// NewDelimitedParser creates a parser named format splitting on comma.
func NewDelimitedParser(format string, comma rune) *DelimitedParser {
	return &DelimitedParser{format: format, comma: comma}
}

// Format returns the parser name.
func (p *DelimitedParser) Format() string { return p.format }

// Parse detects the header row and returns one Row per non-blank record.
// Short records read missing cells as empty; extra cells are ignored.
func (p *DelimitedParser) Parse(r io.Reader) ([]normalize.Row, error) {
	cr := csv.NewReader(r)
	cr.Comma = p.comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var header []string
	var rows []normalize.Row
	n := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		n++
		if err != nil {
			return nil, fmt.Errorf("reading %s record %d: %w", p.format, n, err)
		}

		if header == nil {
			if n == 1 && len(rec) > 0 {
				rec[0] = strings.TrimPrefix(rec[0], "\ufeff")
			}
			if nonEmpty(rec) >= minHeaderCells {
				header = rec
			}
			continue
		}

		if nonEmpty(rec) == 0 {
			continue
		}
		rows = append(rows, toRow(header, rec))
	}
	return rows, nil
}

func toRow(header, rec []string) normalize.Row {
	row := make(normalize.Row, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, dup := row[h]; dup {
			continue
		}
		var v string
		if i < len(rec) {
			v = strings.TrimSpace(rec[i])
		}
		row[h] = v
	}
	return row
}

func nonEmpty(rec []string) int {
	n := 0
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			n++
		}
	}
	return n
}
