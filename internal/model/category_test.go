package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategories(t *testing.T) {
	cats := Categories()
	assert.Len(t, cats, 14)
	assert.Equal(t, CategoryRevenue, cats[0])
	assert.Equal(t, CategoryUncategorized, cats[13])

	// Callers get a copy.
	cats[0] = "Mutated"
	assert.Equal(t, CategoryRevenue, Categories()[0])
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, c.Valid(), "%s should be valid", c)
	}
	assert.False(t, Category("Groceries").Valid())
	assert.False(t, Category("").Valid())
	assert.False(t, Category("saas").Valid(), "Valid is case-sensitive")
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input  string
		want   Category
		wantOK bool
	}{
		{"Revenue", CategoryRevenue, true},
		{"saas", CategorySaaS, true},
		{"  CLOUD ", CategoryCloud, true},
		{"uncategorized", CategoryUncategorized, true},
		{"groceries", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseCategory(tt.input)
		assert.Equal(t, tt.wantOK, ok, "ParseCategory(%q)", tt.input)
		assert.Equal(t, tt.want, got, "ParseCategory(%q)", tt.input)
	}
}
