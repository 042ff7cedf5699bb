package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/inventory"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

// Quotation is an auto quotation for a registered customer. A quotation moves
// stock on create regardless of its status.
type Quotation struct {
	Document
	CustomerID   uuid.UUID
	CustomerName string
	Status       QuotationStatus
}

// QuotationHeader holds the non-item fields of a quotation
type QuotationHeader struct {
	CustomerID   uuid.UUID
	CustomerName string
	Status       string
	Date         time.Time
	Notes        string
}

func NewQuotation(number string, h QuotationHeader, items []LineItem, c Charges) (*Quotation, error) {
	q := &Quotation{Document: newDocument(number, h.Date)}
	if err := q.apply(h, items, c); err != nil {
		return nil, err
	}
	return q, nil
}

func (q *Quotation) Update(h QuotationHeader, items []LineItem, c Charges) error {
	if err := q.apply(h, items, c); err != nil {
		return err
	}
	if !h.Date.IsZero() {
		q.Date = h.Date
	}
	q.Touch()
	return nil
}

// SetStatus changes only the status; stock is untouched
func (q *Quotation) SetStatus(s string) error {
	st, err := ParseQuotationStatus(s)
	if err != nil {
		return err
	}
	q.Status = st
	q.Touch()
	return nil
}

func (q *Quotation) Kind() inventory.DocumentKind { return inventory.KindQuotation }

func (q *Quotation) apply(h QuotationHeader, items []LineItem, c Charges) error {
	if h.CustomerID == uuid.Nil {
		return shared.Validation("customer is required")
	}
	st, err := ParseQuotationStatus(h.Status)
	if err != nil {
		return err
	}
	if err := q.setContent(items, TaxModeDocument, c); err != nil {
		return err
	}
	q.CustomerID = h.CustomerID
	q.CustomerName = strings.TrimSpace(h.CustomerName)
	q.Status = st
	q.Notes = h.Notes
	return nil
}
