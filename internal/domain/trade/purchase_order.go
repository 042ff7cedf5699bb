package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/inventory"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

// PurchaseOrder records stock bought from a vendor. Its items carry the
// purchase price in UnitPrice and the intended selling price in SellingPrice.
type PurchaseOrder struct {
	Document
	VendorID            uuid.UUID
	VendorName          string
	ProductType         string
	SuppInvoiceSerialNo string
	AttachFile          string
	Status              PurchaseStatus
}

// PurchaseOrderHeader holds the non-item fields of a purchase order
type PurchaseOrderHeader struct {
	VendorID            uuid.UUID
	VendorName          string
	ProductType         string
	SuppInvoiceSerialNo string
	AttachFile          string
	Status              string
	Date                time.Time
	Notes               string
}

func NewPurchaseOrder(number string, h PurchaseOrderHeader, items []LineItem, c Charges) (*PurchaseOrder, error) {
	po := &PurchaseOrder{Document: newDocument(number, h.Date)}
	if err := po.apply(h, items, c); err != nil {
		return nil, err
	}
	return po, nil
}

func (p *PurchaseOrder) Update(h PurchaseOrderHeader, items []LineItem, c Charges) error {
	if err := p.apply(h, items, c); err != nil {
		return err
	}
	if !h.Date.IsZero() {
		p.Date = h.Date
	}
	p.Touch()
	return nil
}

func (p *PurchaseOrder) SetStatus(s string) error {
	st, err := ParsePurchaseStatus(s)
	if err != nil {
		return err
	}
	p.Status = st
	p.Touch()
	return nil
}

func (p *PurchaseOrder) Kind() inventory.DocumentKind { return inventory.KindPurchaseOrder }

func (p *PurchaseOrder) apply(h PurchaseOrderHeader, items []LineItem, c Charges) error {
	if h.VendorID == uuid.Nil {
		return shared.Validation("vendor is required")
	}
	st, err := ParsePurchaseStatus(h.Status)
	if err != nil {
		return err
	}
	if err := p.setContent(items, TaxModeDocument, c); err != nil {
		return err
	}
	p.VendorID = h.VendorID
	p.VendorName = strings.TrimSpace(h.VendorName)
	p.ProductType = strings.TrimSpace(h.ProductType)
	p.SuppInvoiceSerialNo = strings.TrimSpace(h.SuppInvoiceSerialNo)
	p.AttachFile = strings.TrimSpace(h.AttachFile)
	p.Status = st
	p.Notes = h.Notes
	return nil
}
