// Package recurring flags vendors that charge a regular amount.
package recurring

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/runway-dev/runway/internal/model"
)

const (
	DefaultMinOccurrences = 3
	DefaultMaxVariation   = 0.2
)

// Options tune detection.
type Options struct {
	MinOccurrences int     // groups smaller than this are never recurring
	MaxVariation   float64 // flagged when std/mean is strictly below this
}

// DefaultOptions returns the standard thresholds.
func DefaultOptions() Options {
	return Options{MinOccurrences: DefaultMinOccurrences, MaxVariation: DefaultMaxVariation}
}

func (o Options) withDefaults() Options {
	if o.MinOccurrences <= 0 {
		o.MinOccurrences = DefaultMinOccurrences
	}
	if o.MaxVariation <= 0 {
		o.MaxVariation = DefaultMaxVariation
	}
	return o
}

// Detect returns a copy of txns, in the same order, with IsRecurring
// recomputed for every transaction. The input is not modified.
func Detect(txns []model.Transaction, opts Options) []model.Transaction {
	opts = opts.withDefaults()

	out := make([]model.Transaction, len(txns))
	copy(out, txns)

	for _, idxs := range groupByVendor(out) {
		recurring := false
		if len(idxs) >= opts.MinOccurrences {
			_, cv := stats(out, idxs)
			recurring = cv < opts.MaxVariation
		}
		for _, i := range idxs {
			out[i].IsRecurring = recurring
		}
	}
	return out
}

// Vendors summarizes the recurring vendor groups in txns, largest mean charge first.
func Vendors(txns []model.Transaction, opts Options) []model.RecurringVendor {
	opts = opts.withDefaults()

	var result []model.RecurringVendor
	for vendor, idxs := range groupByVendor(txns) {
		if len(idxs) < opts.MinOccurrences {
			continue
		}
		mean, cv := stats(txns, idxs)
		if cv >= opts.MaxVariation {
			continue
		}

		sort.SliceStable(idxs, func(a, b int) bool {
			return txns[idxs[a]].Date.Before(txns[idxs[b]].Date)
		})
		first := txns[idxs[0]]
		last := txns[idxs[len(idxs)-1]]

		result = append(result, model.RecurringVendor{
			Vendor:    vendor,
			Category:  last.Category,
			Count:     len(idxs),
			Mean:      mean,
			Variation: cv,
			First:     first.Date,
			Last:      last.Date,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Mean.Equal(result[j].Mean) {
			return result[i].Mean.GreaterThan(result[j].Mean)
		}
		return result[i].Vendor < result[j].Vendor
	})
	return result
}

func groupByVendor(txns []model.Transaction) map[string][]int {
	groups := make(map[string][]int)
	for i, t := range txns {
		groups[t.Vendor] = append(groups[t.Vendor], i)
	}
	return groups
}

// stats returns the mean absolute amount and the coefficient of variation
// (population standard deviation over mean, with a zero mean treated as 1).
func stats(txns []model.Transaction, idxs []int) (decimal.Decimal, float64) {
	sum := decimal.Zero
	for _, i := range idxs {
		sum = sum.Add(txns[i].Amount.Abs())
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(idxs))))

	m := mean.InexactFloat64()
	var variance float64
	for _, i := range idxs {
		d := txns[i].Amount.Abs().InexactFloat64() - m
		variance += d * d
	}
	variance /= float64(len(idxs))

	denom := m
	if denom == 0 {
		denom = 1
	}
	return mean, math.Sqrt(variance) / denom
}
