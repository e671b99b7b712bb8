package importer

import (
	"io"

	"github.com/runway-dev/runway/internal/normalize"
)

// ChaseParser reads Chase checking CSV exports, whose date column is
// "Posting Date" rather than one of the generic date headers.
type ChaseParser struct{}

// chaseRenames maps Chase headers onto names the normalizer resolves.
var chaseRenames = map[string]string{
	"Posting Date": "Date",
}

// Format returns the parser name.
func (p *ChaseParser) Format() string { return "chase" }

// Parse reads a Chase CSV and returns header-keyed rows.
func (p *ChaseParser) Parse(r io.Reader) ([]normalize.Row, error) {
	rows, err := NewDelimitedParser("chase", ',').Parse(r)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		for from, to := range chaseRenames {
			if v, ok := row[from]; ok {
				delete(row, from)
				row[to] = v
			}
		}
	}
	return rows, nil
}
