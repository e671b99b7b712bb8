package normalize

import (
	"strings"

	"github.com/shopspring/decimal"
)

var amountStripper = strings.NewReplacer(",", "", "£", "", "$", "", "€", "")

// ParseAmount parses a bank amount, ignoring thousands separators and currency
// symbols. Text that is not a number yields zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(amountStripper.Replace(s))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// InferSign resolves the signed amount. A non-empty debit is an outflow, else a
// non-empty credit is an inflow, else amount is used unchanged.
func InferSign(amount decimal.Decimal, debit, credit string) decimal.Decimal {
	if debit != "" {
		return ParseAmount(debit).Abs().Neg()
	}
	if credit != "" {
		return ParseAmount(credit).Abs()
	}
	return amount
}
