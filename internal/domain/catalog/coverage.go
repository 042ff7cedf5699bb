package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

// CoverageTable holds the square metres covered by one box, per product category.
// It is the single source of truth for qty -> boxes conversion.
type CoverageTable struct {
	Default    decimal.Decimal
	byCategory map[string]decimal.Decimal
}

// NewCoverageTable builds a table from a default coverage and per-category overrides.
// Category keys are matched case-insensitively.
func NewCoverageTable(def decimal.Decimal, byCategory map[string]decimal.Decimal) (*CoverageTable, error) {
	if !def.IsPositive() {
		return nil, shared.Validation("default coverage must be positive")
	}
	t := &CoverageTable{Default: def, byCategory: make(map[string]decimal.Decimal, len(byCategory))}
	for name, c := range byCategory {
		if !c.IsPositive() {
			return nil, shared.Validation("coverage for %q must be positive", name)
		}
		t.byCategory[normalizeCategory(name)] = c
	}
	return t, nil
}

// CoverageFor returns the coverage configured for category, or the default
func (t *CoverageTable) CoverageFor(category string) decimal.Decimal {
	if c, ok := t.byCategory[normalizeCategory(category)]; ok {
		return c
	}
	return t.Default
}

// Boxes returns ceil(qty / coverage) for the category. Non-positive quantities need no boxes.
func (t *CoverageTable) Boxes(category string, qty decimal.Decimal) decimal.Decimal {
	if !qty.IsPositive() {
		return decimal.Zero
	}
	return qty.Div(t.CoverageFor(category)).Ceil()
}

// Entries returns a copy of the per-category overrides
func (t *CoverageTable) Entries() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(t.byCategory))
	for k, v := range t.byCategory {
		out[k] = v
	}
	return out
}

func normalizeCategory(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
