package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// generalLayouts are tried in order before the day-first fallback.
// Slash dates read month-first here, the way a general date parser does.
var generalLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"1/2/2006 15:04",
	"01/02/2006 3:04 PM",
	"1/2/2006 3:04 PM",
	"01/02/06",
	"1/2/06",
	"01-02-2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"Mon, 2 Jan 2006",
	"2-Jan-2006",
	"02-Jan-2006",
	"2-Jan-06",
	time.RFC1123,
	time.RFC1123Z,
}

var dmyPattern = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{2,4})`)

// ParseDate resolves raw to a UTC timestamp. It tries general layouts, then a
// D/M/Y or D/M/YY pattern (two-digit years are 20xx). A D/M/Y reading with an
// out-of-range day or month is rejected. When nothing matches it returns now
// and false.
func ParseDate(raw string, now time.Time) (time.Time, bool) {
	return parseDate(raw, now, false)
}

// ParseDateDayFirst is ParseDate for exports known to write day-first slash
// dates: a valid D/M/Y reading wins over the month-first general layouts.
func ParseDateDayFirst(raw string, now time.Time) (time.Time, bool) {
	return parseDate(raw, now, true)
}

func parseDate(raw string, now time.Time, dayFirst bool) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return now.UTC(), false
	}
	if dayFirst {
		if t, ok := parseDayFirst(s); ok && !rolledOver(s, t) {
			return t, true
		}
	}
	for _, layout := range generalLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	if t, ok := parseDayFirst(s); ok && !rolledOver(s, t) {
		return t, true
	}
	return now.UTC(), false
}

// rolledOver reports whether time.Date had to normalize the day or month of s.
func rolledOver(s string, t time.Time) bool {
	m := dmyPattern.FindStringSubmatch(s)
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	return t.Day() != day || int(t.Month()) != month
}

func parseDayFirst(s string) (time.Time, bool) {
	m := dmyPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	yStr := m[3]
	if len(yStr) == 2 {
		yStr = "20" + yStr
	}
	year, _ := strconv.Atoi(yStr)
	// time.Date normalizes out-of-range values; callers check rolledOver.
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}
