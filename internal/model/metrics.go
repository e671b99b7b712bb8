package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/runway-dev/runway/internal/id"
)

// Metrics is a burn and runway snapshot.
type Metrics struct {
	CurrentBalance      decimal.Decimal
	TrailingMonthlyBurn decimal.Decimal // avg outflow over the trailing complete months
	AvgMonthlyInflow    decimal.Decimal
	NetBurn             decimal.Decimal  // never negative
	RunwayMonths        *decimal.Decimal // nil = no burn
}

// Scenario holds the forecast knobs, both in percent.
type Scenario struct {
	RevenueGrowthPct decimal.Decimal // 10 => +10% month over month
	SaaSReductionPct decimal.Decimal // 20 => SaaS spend cut by 20%
}

// ForecastPoint is one projected month.
type ForecastPoint struct {
	Month   id.MonthKey
	Inflow  decimal.Decimal
	Outflow decimal.Decimal
	Net     decimal.Decimal
	Balance decimal.Decimal
}

// RecurringVendor summarizes a vendor flagged as recurring.
type RecurringVendor struct {
	Vendor    string
	Category  Category
	Count     int
	Mean      decimal.Decimal // mean absolute amount
	Variation float64         // coefficient of variation
	First     time.Time
	Last      time.Time
}
