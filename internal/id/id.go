package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/shopspring/decimal"
)

// MonthKey is a calendar month formatted "YYYY-MM".
type MonthKey string

var half = decimal.New(5, -1)

// ISOLayout is the timestamp layout used inside transaction IDs.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// FormatMonthKey returns a key like "2025-01".
func FormatMonthKey(year, month int) MonthKey {
	return MonthKey(fmt.Sprintf("%04d-%02d", year, month))
}

// MonthOf returns the UTC month containing t.
func MonthOf(t time.Time) MonthKey {
	t = t.UTC()
	return FormatMonthKey(t.Year(), int(t.Month()))
}

// ParseMonthKey parses "2025-01" into year and month.
func ParseMonthKey(key string) (year, month int, err error) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid month key format: %q", key)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year in month key %q: %w", key, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month in month key %q: %w", key, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month out of range in month key %q", key)
	}

	return year, month, nil
}

// Start returns midnight UTC on the first day of the month.
// An invalid key yields the zero time.
func (k MonthKey) Start() time.Time {
	year, month, err := ParseMonthKey(string(k))
	if err != nil {
		return time.Time{}
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

// Add shifts the key by n months (n may be negative).
func (k MonthKey) Add(n int) MonthKey {
	return MonthOf(k.Start().AddDate(0, n, 0))
}

// Next returns the following month.
func (k MonthKey) Next() MonthKey { return k.Add(1) }

// Prev returns the preceding month.
func (k MonthKey) Prev() MonthKey { return k.Add(-1) }

// Transaction derives a stable transaction ID: "<iso date>-<description hash>-<cents>".
// Rows that share date, description and amount collide. Cents round half up
// toward positive infinity, so -0.125 is -12.
func Transaction(date time.Time, description string, amount decimal.Decimal) string {
	cents := amount.Shift(2).Add(half).Floor()
	return fmt.Sprintf("%s-%d-%s", date.UTC().Format(ISOLayout), HashString(description), cents.String())
}

// HashString is the 32-bit polynomial (x31) hash over UTF-16 code units.
func HashString(s string) uint32 {
	var h uint32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + uint32(c)
	}
	return h
}
