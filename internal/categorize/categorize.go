// Package categorize assigns a spending category to a normalized transaction
// using an ordered list of keyword rules. The first matching rule wins.
package categorize

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/runway-dev/runway/internal/model"
)

// Rule maps a keyword pattern to a category.
type Rule struct {
	Name     string
	Category model.Category
	Pattern  *regexp.Regexp // matched against lower-cased "description vendor"
	// InflowOnly restricts the rule to positive amounts.
	InflowOnly bool
}

// Matches reports whether the rule fires for text (already lower-cased) and amount.
func (r Rule) Matches(text string, amount decimal.Decimal) bool {
	if r.InflowOnly && !amount.IsPositive() {
		return false
	}
	return r.Pattern.MatchString(text)
}

var defaultRules = []Rule{
	{Name: "revenue", Category: model.CategoryRevenue, Pattern: regexp.MustCompile(`stripe|shopify|invoice|customer|payment received`), InflowOnly: true},
	{Name: "cloud", Category: model.CategoryCloud, Pattern: regexp.MustCompile(`aws|gcp|azure|digitalocean`)},
	{Name: "saas", Category: model.CategorySaaS, Pattern: regexp.MustCompile(`slack|notion|figma|atlassian|google workspace|microsoft 365|github|linear`)},
	{Name: "rent", Category: model.CategoryRent, Pattern: regexp.MustCompile(`rent|wework|office`)},
	{Name: "taxes", Category: model.CategoryTaxes, Pattern: regexp.MustCompile(`hmrc|irs|tax`)},
	{Name: "marketing", Category: model.CategoryMarketing, Pattern: regexp.MustCompile(`advert|ads|google ads|facebook ads|linkedin ads`)},
	{Name: "travel", Category: model.CategoryTravel, Pattern: regexp.MustCompile(`uber|train|rail|air|hotel|booking`)},
	{Name: "transfer", Category: model.CategoryTransfer, Pattern: regexp.MustCompile(`transfer|internal`)},
}

// DefaultRules returns a copy of the built-in rule list in priority order.
func DefaultRules() []Rule {
	out := make([]Rule, len(defaultRules))
	copy(out, defaultRules)
	return out
}

// Categorizer evaluates rules in order.
type Categorizer struct {
	rules []Rule
}

// New creates a Categorizer over rules. A nil slice means DefaultRules.
func New(rules []Rule) *Categorizer {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Categorizer{rules: rules}
}

// Rules returns the rules in evaluation order.
func (c *Categorizer) Rules() []Rule {
	return c.rules
}

// Categorize returns the category for a transaction.
func (c *Categorizer) Categorize(description, vendor string, amount decimal.Decimal) model.Category {
	cat, _ := c.Match(description, vendor, amount)
	return cat
}

// Match returns the category and the name of the rule that produced it.
// The fallback reports rule name "default".
func (c *Categorizer) Match(description, vendor string, amount decimal.Decimal) (model.Category, string) {
	text := strings.ToLower(description + " " + vendor)
	for _, r := range c.rules {
		if r.Matches(text, amount) {
			return r.Category, r.Name
		}
	}
	if amount.IsNegative() {
		return model.CategoryOther, "default"
	}
	return model.CategoryUncategorized, "default"
}

var std = New(nil)

// Categorize uses the default rules.
func Categorize(description, vendor string, amount decimal.Decimal) model.Category {
	return std.Categorize(description, vendor, amount)
}
