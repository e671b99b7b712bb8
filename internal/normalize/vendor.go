package normalize

import (
	"regexp"
	"strings"
)

var (
	whitespace  = regexp.MustCompile(`\s+`)
	boilerplate = regexp.MustCompile(`pos\s+purchase|card\s+payment|online\s+payment`)
	digitRuns   = regexp.MustCompile(`\d{4,}`)
)

// NormalizeVendor lower-cases a description and strips payment boilerplate and
// reference numbers of four or more digits. Whitespace is collapsed again after
// stripping so the result does not depend on where the boilerplate sat.
func NormalizeVendor(description string) string {
	s := strings.ToLower(description)
	s = whitespace.ReplaceAllString(s, " ")
	s = boilerplate.ReplaceAllString(s, "")
	s = digitRuns.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
