package normalize

import (
	"sort"
	"strings"
)

// Row is one raw CSV record keyed by header text.
type Row map[string]string

// Header synonyms per logical field, in priority order.
var (
	DateHeaders        = []string{"date", "transaction date", "posted date", "value date", "booking date"}
	DescriptionHeaders = []string{"description", "details", "narrative", "merchant", "memo", "reference", "payee"}
	AmountHeaders      = []string{"amount", "value", "amt"}
	DebitHeaders       = []string{"debit", "out", "withdrawal", "debit amount", "debits"}
	CreditHeaders      = []string{"credit", "in", "deposit", "credit amount", "credits"}
)

// columns holds the original header names resolved for a row.
// An empty string means the field has no column.
type columns struct {
	date        string
	description string
	amount      string
	debit       string
	credit      string
}

func (c columns) convertible() bool {
	return c.date != "" && c.description != "" && (c.amount != "" || c.debit != "" || c.credit != "")
}

// resolveColumns maps each logical field to the row's original header.
func resolveColumns(row Row) columns {
	// Sorted so that headers colliding after normalization resolve the same way every time.
	headers := make([]string, 0, len(row))
	for h := range row {
		headers = append(headers, h)
	}
	sort.Strings(headers)

	keys := make(map[string]string, len(headers))
	for _, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		if norm == "" {
			continue
		}
		if _, ok := keys[norm]; !ok {
			keys[norm] = h
		}
	}

	return columns{
		date:        lookup(keys, DateHeaders),
		description: lookup(keys, DescriptionHeaders),
		amount:      lookup(keys, AmountHeaders),
		debit:       lookup(keys, DebitHeaders),
		credit:      lookup(keys, CreditHeaders),
	}
}

func lookup(keys map[string]string, synonyms []string) string {
	for _, s := range synonyms {
		if h, ok := keys[s]; ok {
			return h
		}
	}
	return ""
}
