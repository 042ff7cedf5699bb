package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// withCommon adds the base entity columns to a whitelist
func withCommon(fields ...string) map[string]bool {
	m := map[string]bool{
		"id":         true,
		"created_at": true,
		"updated_at": true,
	}
	for _, f := range fields {
		m[f] = true
	}
	return m
}

var (
	ProductSortFields         = withCommon("name", "product_type", "texture", "size", "quantity", "boxes", "price")
	CategorySortFields        = withCommon("name", "slug")
	CustomerSortFields        = withCommon("name", "email", "phone")
	VendorSortFields          = withCommon("name", "email", "phone")
	LeadSortFields            = withCommon("name", "email", "status")
	ShippingAddressSortFields = withCommon("customer_name")
	ExpenseSortFields         = withCommon("reference", "amount", "date", "payment_mode", "payment_status", "expense_by")
	PrePurchaseSortFields     = withCommon("vendor_name", "amount", "advance", "balance")
	DocumentSortFields        = withCommon("number", "date", "grand_total", "balance", "status")
)
