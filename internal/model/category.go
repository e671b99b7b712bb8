package model

import "strings"

// Category classifies a transaction by spending type.
type Category string

const (
	CategoryRevenue       Category = "Revenue"
	CategorySalaries      Category = "Salaries"
	CategoryContractors   Category = "Contractors"
	CategoryRent          Category = "Rent"
	CategorySaaS          Category = "SaaS"
	CategoryCloud         Category = "Cloud"
	CategoryMarketing     Category = "Marketing"
	CategoryTravel        Category = "Travel"
	CategoryOffice        Category = "Office"
	CategoryTaxes         Category = "Taxes"
	CategoryFees          Category = "Fees"
	CategoryTransfer      Category = "Transfer"
	CategoryOther         Category = "Other"
	CategoryUncategorized Category = "Uncategorized"
)

var allCategories = []Category{
	CategoryRevenue,
	CategorySalaries,
	CategoryContractors,
	CategoryRent,
	CategorySaaS,
	CategoryCloud,
	CategoryMarketing,
	CategoryTravel,
	CategoryOffice,
	CategoryTaxes,
	CategoryFees,
	CategoryTransfer,
	CategoryOther,
	CategoryUncategorized,
}

// Categories returns the closed set of categories in declaration order.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// Valid reports whether c belongs to the closed set.
func (c Category) Valid() bool {
	for _, known := range allCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory matches s case-insensitively against the closed set.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, known := range allCategories {
		if strings.EqualFold(s, string(known)) {
			return known, true
		}
	}
	return "", false
}
