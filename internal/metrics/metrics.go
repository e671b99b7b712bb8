// Package metrics computes balance, burn and runway from a transaction set.
package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/runway-dev/runway/internal/id"
	"github.com/runway-dev/runway/internal/model"
)

// TrailingWindow is the number of complete months averaged for burn.
const TrailingWindow = 3

// Flows holds the inflow and outflow totals of one month. Outflow is positive.
type Flows struct {
	Inflow  decimal.Decimal
	Outflow decimal.Decimal
}

// GroupByMonth buckets transactions by UTC calendar month.
func GroupByMonth(txns []model.Transaction) map[id.MonthKey][]model.Transaction {
	byMonth := make(map[id.MonthKey][]model.Transaction)
	for _, t := range txns {
		key := id.MonthOf(t.Date)
		byMonth[key] = append(byMonth[key], t)
	}
	return byMonth
}

// MonthFlows totals inflow and absolute outflow.
func MonthFlows(txns []model.Transaction) Flows {
	f := Flows{Inflow: decimal.Zero, Outflow: decimal.Zero}
	for _, t := range txns {
		switch {
		case t.IsInflow():
			f.Inflow = f.Inflow.Add(t.Amount)
		case t.IsOutflow():
			f.Outflow = f.Outflow.Add(t.Amount.Abs())
		}
	}
	return f
}

// TrailingMonths returns the n months immediately before now's month, oldest first.
func TrailingMonths(now time.Time, n int) []id.MonthKey {
	current := id.MonthOf(now)
	months := make([]id.MonthKey, n)
	for i := 0; i < n; i++ {
		months[i] = current.Add(i - n)
	}
	return months
}

// Compute returns the metrics snapshot as of now. Months in the trailing
// window with no transactions count as zero activity.
func Compute(txns []model.Transaction, now time.Time) model.Metrics {
	byMonth := GroupByMonth(txns)

	totalIn := decimal.Zero
	totalOut := decimal.Zero
	for _, key := range TrailingMonths(now, TrailingWindow) {
		f := MonthFlows(byMonth[key])
		totalIn = totalIn.Add(f.Inflow)
		totalOut = totalOut.Add(f.Outflow)
	}

	window := decimal.NewFromInt(TrailingWindow)
	avgIn := totalIn.Div(window)
	avgOut := totalOut.Div(window)

	netBurn := decimal.Max(decimal.Zero, avgOut.Sub(avgIn))
	balance := model.Balance(txns)

	return model.Metrics{
		CurrentBalance:      balance,
		TrailingMonthlyBurn: avgOut,
		AvgMonthlyInflow:    avgIn,
		NetBurn:             netBurn,
		RunwayMonths:        runway(balance, netBurn),
	}
}

func runway(balance, netBurn decimal.Decimal) *decimal.Decimal {
	if !netBurn.IsPositive() {
		return nil
	}
	if !balance.IsPositive() {
		zero := decimal.Zero
		return &zero
	}
	months := balance.Div(netBurn)
	return &months
}
