// Package report holds the read models behind the dashboard.
package report

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Counts are the headline totals on the dashboard
type Counts struct {
	Customers        int64 `json:"customers"`
	Invoices         int64 `json:"invoices"`
	ManualInvoices   int64 `json:"manual_invoices"`
	Products         int64 `json:"products"`
	Quotations       int64 `json:"quotations"`
	ManualQuotations int64 `json:"manual_quotations"`
	Purchases        int64 `json:"purchases"`
	Leads            int64 `json:"leads"`
}

// QuotationSource tags which quotation family a recent entry came from
type QuotationSource string

const (
	SourceAuto   QuotationSource = "auto"
	SourceManual QuotationSource = "manual"
)

// RecentDocument is a compact row in one of the "recent" lists
type RecentDocument struct {
	ID         uuid.UUID       `json:"id"`
	Number     string          `json:"number"`
	Party      string          `json:"party"`
	Status     string          `json:"status"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	Source     QuotationSource `json:"source,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// RecentEntity is a compact row for non-document lists
type RecentEntity struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Recent groups the newest records of each kind
type Recent struct {
	Customers      []RecentEntity   `json:"customers"`
	Products       []RecentEntity   `json:"products"`
	Leads          []RecentEntity   `json:"leads"`
	Invoices       []RecentDocument `json:"invoices"`
	ManualInvoices []RecentDocument `json:"manual_invoices"`
	Quotations     []RecentDocument `json:"quotations"`
	Purchases      []RecentDocument `json:"purchases"`
}

// Summary is the full dashboard payload
type Summary struct {
	Counts      Counts    `json:"counts"`
	Recent      Recent    `json:"recent"`
	GeneratedAt time.Time `json:"generated_at"`
}

// MergeQuotations tags auto and manual quotations, merges them and re-sorts
// newest first. The result keeps every entry of both inputs.
func MergeQuotations(auto, manual []RecentDocument) []RecentDocument {
	out := make([]RecentDocument, 0, len(auto)+len(manual))
	for _, d := range auto {
		d.Source = SourceAuto
		out = append(out, d)
	}
	for _, d := range manual {
		d.Source = SourceManual
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
