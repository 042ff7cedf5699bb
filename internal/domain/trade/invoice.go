package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/inventory"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

// ShippingInfo is the ship-to block printed on an invoice
type ShippingInfo struct {
	Name        string `json:"name"`
	AddressLine string `json:"address_line"`
}

// Invoice is an auto invoice raised against a registered customer
type Invoice struct {
	Document
	CustomerID   uuid.UUID
	CustomerName string
	Shipping     ShippingInfo
	Status       PaymentStatus
}

// InvoiceHeader holds the non-item fields of an invoice
type InvoiceHeader struct {
	CustomerID   uuid.UUID
	CustomerName string
	Shipping     ShippingInfo
	Status       string
	Date         time.Time
	Notes        string
}

// NewInvoice builds an invoice; totals use the document tax mode
func NewInvoice(number string, h InvoiceHeader, items []LineItem, c Charges) (*Invoice, error) {
	inv := &Invoice{Document: newDocument(number, h.Date)}
	if err := inv.apply(h, items, c); err != nil {
		return nil, err
	}
	return inv, nil
}

// Update replaces the header, items and charges
func (i *Invoice) Update(h InvoiceHeader, items []LineItem, c Charges) error {
	if err := i.apply(h, items, c); err != nil {
		return err
	}
	if !h.Date.IsZero() {
		i.Date = h.Date
	}
	i.Touch()
	return nil
}

// SetStatus changes only the payment status
func (i *Invoice) SetStatus(s string) error {
	st, err := ParsePaymentStatus(s)
	if err != nil {
		return err
	}
	i.Status = st
	i.Touch()
	return nil
}

// Kind implements the ledger's document kind
func (i *Invoice) Kind() inventory.DocumentKind { return inventory.KindInvoice }

func (i *Invoice) apply(h InvoiceHeader, items []LineItem, c Charges) error {
	if h.CustomerID == uuid.Nil {
		return shared.Validation("customer is required")
	}
	st, err := ParsePaymentStatus(h.Status)
	if err != nil {
		return err
	}
	if err := i.setContent(items, TaxModeDocument, c); err != nil {
		return err
	}
	i.CustomerID = h.CustomerID
	i.CustomerName = strings.TrimSpace(h.CustomerName)
	i.Shipping = h.Shipping
	i.Status = st
	i.Notes = h.Notes
	return nil
}
