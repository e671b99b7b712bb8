// Package normalize converts raw bank export rows with arbitrary headers into
// model.Transaction values.
//
// Rows that cannot be converted are skipped rather than reported as errors:
// callers compare input and output lengths to learn how many were dropped.
package normalize

import (
	"time"

	"github.com/runway-dev/runway/internal/categorize"
	"github.com/runway-dev/runway/internal/id"
	"github.com/runway-dev/runway/internal/model"
)

// Options control degraded-input handling.
type Options struct {
	// Now supplies the fallback timestamp for unparsable dates. Defaults to time.Now.
	Now func() time.Time
	// SkipUnparsableDates drops rows whose date cannot be parsed instead of
	// stamping them with Now.
	SkipUnparsableDates bool
	// DayFirst reads ambiguous slash dates such as 05/01/2025 as 5 January.
	DayFirst bool
	// Categorizer overrides the default rule set.
	Categorizer *categorize.Categorizer
}

// Normalizer converts rows to transactions.
type Normalizer struct {
	now         func() time.Time
	skipBadDate bool
	parseDate   func(string, time.Time) (time.Time, bool)
	categorizer *categorize.Categorizer
}

// New creates a Normalizer.
func New(opts Options) *Normalizer {
	n := &Normalizer{
		now:         opts.Now,
		skipBadDate: opts.SkipUnparsableDates,
		parseDate:   ParseDate,
		categorizer: opts.Categorizer,
	}
	if opts.DayFirst {
		n.parseDate = ParseDateDayFirst
	}
	if n.now == nil {
		n.now = time.Now
	}
	if n.categorizer == nil {
		n.categorizer = categorize.New(nil)
	}
	return n
}

// Normalize converts one row. It returns false when the row has no date
// column, no description column, or no amount/debit/credit column.
func (n *Normalizer) Normalize(row Row) (model.Transaction, bool) {
	cols := resolveColumns(row)
	if !cols.convertible() {
		return model.Transaction{}, false
	}

	date, ok := n.parseDate(row[cols.date], n.now())
	if !ok && n.skipBadDate {
		return model.Transaction{}, false
	}

	description := row[cols.description]
	vendor := NormalizeVendor(description)

	base := ParseAmount(value(row, cols.amount))
	amount := InferSign(base, value(row, cols.debit), value(row, cols.credit))

	return model.Transaction{
		ID:          id.Transaction(date, description, amount),
		Date:        date,
		Description: description,
		Vendor:      vendor,
		Amount:      amount,
		Category:    n.categorizer.Categorize(description, vendor, amount),
	}, true
}

// NormalizeAll converts rows in order. It returns the converted transactions
// and the indices of rows that were skipped.
func (n *Normalizer) NormalizeAll(rows []Row) ([]model.Transaction, []int) {
	txns := make([]model.Transaction, 0, len(rows))
	var skipped []int
	for i, row := range rows {
		txn, ok := n.Normalize(row)
		if !ok {
			skipped = append(skipped, i)
			continue
		}
		txns = append(txns, txn)
	}
	return txns, skipped
}

func value(row Row, header string) string {
	if header == "" {
		return ""
	}
	return row[header]
}
