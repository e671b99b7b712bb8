package id

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMonthKey(t *testing.T) {
	tests := []struct {
		year, month int
		want        MonthKey
	}{
		{2025, 1, "2025-01"},
		{2025, 12, "2025-12"},
		{999, 3, "0999-03"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMonthKey(tt.year, tt.month))
	}
}

func TestMonthOf_UsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	// 00:30 on Feb 1 at UTC+2 is still Jan 31 in UTC.
	ts := time.Date(2025, 2, 1, 0, 30, 0, 0, loc)
	assert.Equal(t, MonthKey("2025-01"), MonthOf(ts))
}

func TestParseMonthKey(t *testing.T) {
	year, month, err := ParseMonthKey("2024-11")
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
	assert.Equal(t, 11, month)
}

func TestParseMonthKey_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"2024",
		"xxxx-01",
		"2024-xx",
		"2024-13",
		"2024-00",
	}
	for _, input := range badInputs {
		_, _, err := ParseMonthKey(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}

func TestMonthKeyArithmetic(t *testing.T) {
	tests := []struct {
		key  MonthKey
		n    int
		want MonthKey
	}{
		{"2025-01", 1, "2025-02"},
		{"2025-12", 1, "2026-01"},
		{"2025-01", -1, "2024-12"},
		{"2025-03", -3, "2024-12"},
		{"2025-06", 12, "2026-06"},
		{"2025-06", 0, "2025-06"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.key.Add(tt.n), "%s%+d", tt.key, tt.n)
	}
	assert.Equal(t, MonthKey("2026-01"), MonthKey("2025-12").Next())
	assert.Equal(t, MonthKey("2024-12"), MonthKey("2025-01").Prev())
}

func TestMonthKeyStart(t *testing.T) {
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), MonthKey("2025-03").Start())
	assert.True(t, MonthKey("bogus").Start().IsZero())
}

func TestHashString(t *testing.T) {
	assert.Equal(t, uint32(0), HashString(""))
	assert.Equal(t, uint32(97), HashString("a"))
	assert.Equal(t, uint32(97*31+98), HashString("ab"))
	// Wraps modulo 2^32 instead of overflowing.
	long := "a very long description that certainly overflows thirty two bits"
	assert.Equal(t, HashString(long), HashString(long))
}

func TestTransaction(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	got := Transaction(date, "ab", decimal.RequireFromString("-120.00"))
	assert.Equal(t, "2024-03-01T00:00:00.000Z-3105--12000", got)

	// Amounts round to whole cents.
	got = Transaction(date, "ab", decimal.RequireFromString("10.005"))
	assert.Equal(t, "2024-03-01T00:00:00.000Z-3105-1001", got)

	// Halves round toward positive infinity, negatives included.
	got = Transaction(date, "ab", decimal.RequireFromString("-0.125"))
	assert.Equal(t, "2024-03-01T00:00:00.000Z-3105--12", got)
	got = Transaction(date, "ab", decimal.RequireFromString("-0.126"))
	assert.Equal(t, "2024-03-01T00:00:00.000Z-3105--13", got)
}

func TestTransaction_Deterministic(t *testing.T) {
	date := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	amount := decimal.RequireFromString("42.10")
	a := Transaction(date, "GITHUB", amount)
	b := Transaction(date.In(time.FixedZone("X", 3600)), "GITHUB", amount)
	assert.Equal(t, a, b, "IDs are computed in UTC")
	assert.NotEqual(t, a, Transaction(date, "GITLAB", amount))
}
