package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/inventory"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

// CustomerKind tags which variant a QuotationCustomer holds
type CustomerKind string

const (
	CustomerKindReference CustomerKind = "reference"
	CustomerKindSnapshot  CustomerKind = "snapshot"
)

// CustomerSnapshot is a party typed in by hand on a manual quotation
type CustomerSnapshot struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// QuotationCustomer is either a reference to a stored customer or an inline snapshot
type QuotationCustomer struct {
	Kind       CustomerKind
	CustomerID uuid.UUID
	Snapshot   CustomerSnapshot
}

// CustomerRef builds the reference variant
func CustomerRef(id uuid.UUID) QuotationCustomer {
	return QuotationCustomer{Kind: CustomerKindReference, CustomerID: id}
}

// CustomerInline builds the snapshot variant
func CustomerInline(s CustomerSnapshot) QuotationCustomer {
	return QuotationCustomer{Kind: CustomerKindSnapshot, Snapshot: s}
}

// Validate ensures exactly one variant is populated
func (c QuotationCustomer) Validate() error {
	switch c.Kind {
	case CustomerKindReference:
		if c.CustomerID == uuid.Nil {
			return shared.Validation("customer reference requires a customer id")
		}
		if c.Snapshot != (CustomerSnapshot{}) {
			return shared.Validation("customer reference cannot carry snapshot fields")
		}
	case CustomerKindSnapshot:
		if strings.TrimSpace(c.Snapshot.Name) == "" {
			return shared.Validation("customer snapshot requires a name")
		}
		if c.CustomerID != uuid.Nil {
			return shared.Validation("customer snapshot cannot carry a customer id")
		}
	default:
		return shared.Validation("customer kind must be %q or %q", CustomerKindReference, CustomerKindSnapshot)
	}
	return nil
}

// DisplayName returns the snapshot name, or fallback for references
func (c QuotationCustomer) DisplayName(fallback string) string {
	if c.Kind == CustomerKindSnapshot {
		return c.Snapshot.Name
	}
	return fallback
}

// ManualQuotation is a quotation whose party may be stored or typed in.
// GST is computed per line.
type ManualQuotation struct {
	Document
	Customer     QuotationCustomer
	CustomerName string
	Status       ManualQuotationStatus
}

// ManualQuotationHeader holds the non-item fields of a manual quotation
type ManualQuotationHeader struct {
	Customer     QuotationCustomer
	CustomerName string
	Status       string
	Date         time.Time
	Notes        string
}

func NewManualQuotation(number string, h ManualQuotationHeader, items []LineItem, c Charges) (*ManualQuotation, error) {
	q := &ManualQuotation{Document: newDocument(number, h.Date)}
	if err := q.apply(h, items, c); err != nil {
		return nil, err
	}
	return q, nil
}

func (q *ManualQuotation) Update(h ManualQuotationHeader, items []LineItem, c Charges) error {
	if err := q.apply(h, items, c); err != nil {
		return err
	}
	if !h.Date.IsZero() {
		q.Date = h.Date
	}
	q.Touch()
	return nil
}

func (q *ManualQuotation) SetStatus(s string) error {
	st, err := ParseManualQuotationStatus(s)
	if err != nil {
		return err
	}
	q.Status = st
	q.Touch()
	return nil
}

func (q *ManualQuotation) Kind() inventory.DocumentKind { return inventory.KindManualQuotation }

func (q *ManualQuotation) apply(h ManualQuotationHeader, items []LineItem, c Charges) error {
	if err := h.Customer.Validate(); err != nil {
		return err
	}
	st, err := ParseManualQuotationStatus(h.Status)
	if err != nil {
		return err
	}
	if err := q.setContent(items, TaxModePerLine, c); err != nil {
		return err
	}
	q.Customer = h.Customer
	q.CustomerName = h.Customer.DisplayName(strings.TrimSpace(h.CustomerName))
	q.Status = st
	q.Notes = h.Notes
	return nil
}
