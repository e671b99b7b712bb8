package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a normalized bank row.
type Transaction struct {
	ID          string
	Date        time.Time // UTC
	Description string    // original narrative, unmodified
	Vendor      string
	Amount      decimal.Decimal // negative = outflow, positive = inflow
	Category    Category
	IsRecurring bool
}

// IsInflow reports whether the transaction adds money.
func (t Transaction) IsInflow() bool { return t.Amount.IsPositive() }

// IsOutflow reports whether the transaction removes money.
func (t Transaction) IsOutflow() bool { return t.Amount.IsNegative() }

// Balance sums the signed amounts of txns.
func Balance(txns []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(t.Amount)
	}
	return total
}
