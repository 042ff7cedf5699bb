package trade

import (
	"strings"
	"time"

	"github.com/tilesgalleria/backoffice/internal/domain/inventory"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

// ManualInvoice is an invoice for a walk-in party typed in by hand.
// GST is computed per line.
type ManualInvoice struct {
	Document
	CustomerName  string
	BillToAddress string
	ShipToAddress string
	DueDate       *time.Time
	Status        PaymentStatus
}

// ManualInvoiceHeader holds the non-item fields of a manual invoice
type ManualInvoiceHeader struct {
	CustomerName  string
	BillToAddress string
	ShipToAddress string
	DueDate       *time.Time
	Status        string
	Date          time.Time
	Notes         string
}

func NewManualInvoice(number string, h ManualInvoiceHeader, items []LineItem, c Charges) (*ManualInvoice, error) {
	inv := &ManualInvoice{Document: newDocument(number, h.Date)}
	if err := inv.apply(h, items, c); err != nil {
		return nil, err
	}
	return inv, nil
}

func (i *ManualInvoice) Update(h ManualInvoiceHeader, items []LineItem, c Charges) error {
	if err := i.apply(h, items, c); err != nil {
		return err
	}
	if !h.Date.IsZero() {
		i.Date = h.Date
	}
	i.Touch()
	return nil
}

func (i *ManualInvoice) SetStatus(s string) error {
	st, err := ParsePaymentStatus(s)
	if err != nil {
		return err
	}
	i.Status = st
	i.Touch()
	return nil
}

func (i *ManualInvoice) Kind() inventory.DocumentKind { return inventory.KindManualInvoice }

func (i *ManualInvoice) apply(h ManualInvoiceHeader, items []LineItem, c Charges) error {
	name := strings.TrimSpace(h.CustomerName)
	if name == "" {
		return shared.Validation("customer name is required")
	}
	st, err := ParsePaymentStatus(h.Status)
	if err != nil {
		return err
	}
	if err := i.setContent(items, TaxModePerLine, c); err != nil {
		return err
	}
	i.CustomerName = name
	i.BillToAddress = strings.TrimSpace(h.BillToAddress)
	i.ShipToAddress = strings.TrimSpace(h.ShipToAddress)
	i.DueDate = h.DueDate
	i.Status = st
	i.Notes = h.Notes
	return nil
}
