// Package forecast projects monthly cash balance forward from the recent
// baseline under a scenario.
package forecast

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/runway-dev/runway/internal/id"
	"github.com/runway-dev/runway/internal/metrics"
	"github.com/runway-dev/runway/internal/model"
)

const (
	// DefaultHorizon is the number of months projected when none is given.
	DefaultHorizon = 12
	// BaselineWindow is the number of most recent data months averaged.
	BaselineWindow = 3
)

// DefaultSaaSShare is the assumed fraction of outflow spent on SaaS.
var DefaultSaaSShare = decimal.RequireFromString("0.15")

var hundred = decimal.NewFromInt(100)

// Baseline is the average monthly flow over the most recent months present in the data.
type Baseline struct {
	AvgInflow  decimal.Decimal
	AvgOutflow decimal.Decimal
	Months     []id.MonthKey // months averaged, oldest first
}

// ComputeBaseline averages the last BaselineWindow months that have
// transactions. With fewer months it averages what exists; with none it is zero.
func ComputeBaseline(txns []model.Transaction) Baseline {
	byMonth := metrics.GroupByMonth(txns)

	months := make([]id.MonthKey, 0, len(byMonth))
	for k := range byMonth {
		months = append(months, k)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })
	if len(months) > BaselineWindow {
		months = months[len(months)-BaselineWindow:]
	}

	b := Baseline{AvgInflow: decimal.Zero, AvgOutflow: decimal.Zero, Months: months}
	if len(months) == 0 {
		return b
	}

	for _, k := range months {
		f := metrics.MonthFlows(byMonth[k])
		b.AvgInflow = b.AvgInflow.Add(f.Inflow)
		b.AvgOutflow = b.AvgOutflow.Add(f.Outflow)
	}
	n := decimal.NewFromInt(int64(len(months)))
	b.AvgInflow = b.AvgInflow.Div(n)
	b.AvgOutflow = b.AvgOutflow.Div(n)
	return b
}

// Options configure a single projection.
type Options struct {
	// StartBalance overrides the opening balance (default: sum of all amounts).
	StartBalance *decimal.Decimal
	// Now anchors the projection; the first point is the following month.
	// Defaults to time.Now.
	Now time.Time
}

// Engine projects balances.
type Engine struct {
	// SaaSShare is the fraction of baseline outflow the SaaS reduction applies to.
	SaaSShare decimal.Decimal
}

// NewEngine creates an Engine. A zero share uses DefaultSaaSShare.
func NewEngine(saasShare decimal.Decimal) *Engine {
	if saasShare.IsZero() {
		saasShare = DefaultSaaSShare
	}
	return &Engine{SaaSShare: saasShare}
}

// Outflow applies the SaaS reduction to a baseline outflow. It never goes below zero.
func (e *Engine) Outflow(baseline decimal.Decimal, s model.Scenario) decimal.Decimal {
	reduction := baseline.Mul(s.SaaSReductionPct.Div(hundred)).Mul(e.SaaSShare)
	return decimal.Max(decimal.Zero, baseline.Sub(reduction))
}

// Project returns one point per month for the given horizon. Inflow starts at
// the baseline and compounds by the scenario growth rate from the second
// month on; outflow is constant.
func (e *Engine) Project(txns []model.Transaction, months int, s model.Scenario, opts Options) []model.ForecastPoint {
	if months <= 0 {
		return nil
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	base := ComputeBaseline(txns)
	balance := model.Balance(txns)
	if opts.StartBalance != nil {
		balance = *opts.StartBalance
	}

	start := model.ForecastPoint{
		Month:   id.MonthOf(now).Next(),
		Inflow:  base.AvgInflow,
		Outflow: e.Outflow(base.AvgOutflow, s),
	}
	return e.run(start, balance, months, s)
}

// Extend continues a projection for more months from its last point, so that
// Extend(Project(n), m) equals Project(n+m) for the same scenario.
func (e *Engine) Extend(points []model.ForecastPoint, months int, s model.Scenario) []model.ForecastPoint {
	if len(points) == 0 || months <= 0 {
		return points
	}
	last := points[len(points)-1]
	start := model.ForecastPoint{
		Month:   last.Month.Next(),
		Inflow:  grow(last.Inflow, s),
		Outflow: last.Outflow,
	}
	out := make([]model.ForecastPoint, len(points), len(points)+months)
	copy(out, points)
	return append(out, e.run(start, last.Balance, months, s)...)
}

func (e *Engine) run(start model.ForecastPoint, balance decimal.Decimal, months int, s model.Scenario) []model.ForecastPoint {
	points := make([]model.ForecastPoint, 0, months)
	month := start.Month
	inflow := start.Inflow
	for i := 0; i < months; i++ {
		if i > 0 {
			inflow = grow(inflow, s)
		}
		net := inflow.Sub(start.Outflow)
		balance = balance.Add(net)
		points = append(points, model.ForecastPoint{
			Month:   month,
			Inflow:  inflow,
			Outflow: start.Outflow,
			Net:     net,
			Balance: balance,
		})
		month = month.Next()
	}
	return points
}

func grow(inflow decimal.Decimal, s model.Scenario) decimal.Decimal {
	return inflow.Mul(decimal.NewFromInt(1).Add(s.RevenueGrowthPct.Div(hundred)))
}

// Project uses the default SaaS share.
func Project(txns []model.Transaction, months int, s model.Scenario, opts Options) []model.ForecastPoint {
	return NewEngine(decimal.Zero).Project(txns, months, s, opts)
}
