// Package report renders transactions, metrics, recurring vendors and
// forecasts as CSV files and plain-text tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/runway-dev/runway/internal/importlog"
	"github.com/runway-dev/runway/internal/model"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// TransactionsTable prints one line per transaction.
func TransactionsTable(w io.Writer, txns []model.Transaction) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "DATE\tVENDOR\tAMOUNT\tCATEGORY\tRECURRING")
	for _, t := range txns {
		recurring := ""
		if t.IsRecurring {
			recurring = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			t.Date.Format(dateFormat), t.Vendor, t.Amount.StringFixed(2), t.Category, recurring)
	}
	return tw.Flush()
}

// MetricsSummary prints a metrics snapshot.
func MetricsSummary(w io.Writer, m model.Metrics) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Current balance\t%s\n", m.CurrentBalance.StringFixed(2))
	fmt.Fprintf(tw, "Avg monthly inflow\t%s\n", m.AvgMonthlyInflow.StringFixed(2))
	fmt.Fprintf(tw, "Trailing monthly burn\t%s\n", m.TrailingMonthlyBurn.StringFixed(2))
	fmt.Fprintf(tw, "Net burn\t%s\n", m.NetBurn.StringFixed(2))
	fmt.Fprintf(tw, "Runway (months)\t%s\n", FormatRunway(m.RunwayMonths))
	return tw.Flush()
}

// FormatRunway renders runway months, with "n/a" when there is no net burn.
func FormatRunway(months *decimal.Decimal) string {
	if months == nil {
		return "n/a"
	}
	return months.StringFixed(1)
}

// RecurringTable prints recurring vendor summaries.
func RecurringTable(w io.Writer, vendors []model.RecurringVendor) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "VENDOR\tCATEGORY\tCOUNT\tMEAN\tCV\tFIRST\tLAST")
	for _, v := range vendors {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			v.Vendor, v.Category, v.Count, v.Mean.StringFixed(2),
			strconv.FormatFloat(v.Variation, 'f', 3, 64),
			v.First.Format(dateFormat), v.Last.Format(dateFormat))
	}
	return tw.Flush()
}

// ForecastTable prints projected months.
func ForecastTable(w io.Writer, points []model.ForecastPoint) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "MONTH\tINFLOW\tOUTFLOW\tNET\tBALANCE")
	for _, p := range points {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.Month,
			p.Inflow.StringFixed(2), p.Outflow.StringFixed(2),
			p.Net.StringFixed(2), p.Balance.StringFixed(2))
	}
	return tw.Flush()
}

// HistoryTable prints archived import batches.
func HistoryTable(w io.Writer, entries []importlog.Entry) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "TIME\tBATCH\tFILE\tROWS\tKEPT\tSKIPPED")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n",
			e.Timestamp.Format(time.RFC3339), shortID(e.BatchID), e.File, e.Rows, e.Kept, e.Skipped)
	}
	return tw.Flush()
}

func shortID(batchID string) string {
	if len(batchID) > 8 {
		return batchID[:8]
	}
	return batchID
}
