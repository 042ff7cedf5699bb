package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tilesgalleria/backoffice/internal/domain/trade"
	"gorm.io/datatypes"
)

// Owner types of document_items rows
const (
	OwnerInvoice         = "invoice"
	OwnerManualInvoice   = "manual_invoice"
	OwnerQuotation       = "quotation"
	OwnerManualQuotation = "manual_quotation"
	OwnerPurchaseOrder   = "purchase_order"
)

// DocumentColumns are the columns shared by all order-like document tables.
type DocumentColumns struct {
	BaseModel
	Number         string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Date           time.Time       `gorm:"not null;index"`
	Notes          string          `gorm:"type:text"`
	SubTotal       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Discount       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	AfterDiscount  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TaxRate        decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	GST            decimal.Decimal `gorm:"column:gst;type:decimal(18,2);not null;default:0"`
	ShippingCharge decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	GrandTotal     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Advance        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Balance        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`

	// Lines are written to document_items by the repository, never by GORM directly
	Lines []DocumentItemModel `gorm:"-"`
}

func (c *DocumentColumns) toDocument(items []DocumentItemModel) trade.Document {
	d := trade.Document{
		BaseEntity: c.BaseModel.ToDomain(),
		Number:     c.Number,
		Date:       c.Date,
		Notes:      c.Notes,
		Items:      make([]trade.LineItem, 0, len(items)),
		Totals: trade.Totals{
			SubTotal:       c.SubTotal,
			Discount:       c.Discount,
			AfterDiscount:  c.AfterDiscount,
			TaxRate:        c.TaxRate,
			GST:            c.GST,
			ShippingCharge: c.ShippingCharge,
			GrandTotal:     c.GrandTotal,
			Advance:        c.Advance,
			Balance:        c.Balance,
		},
	}
	for i := range items {
		d.Items = append(d.Items, items[i].ToDomain())
	}
	return d
}

func (c *DocumentColumns) fromDocument(ownerType string, d *trade.Document) {
	c.FromDomainBaseEntity(d.BaseEntity)
	c.Lines = ItemModelsFromDomain(ownerType, d.ID, d.Items)
	c.Number = d.Number
	c.Date = d.Date
	c.Notes = d.Notes
	c.SubTotal = d.Totals.SubTotal
	c.Discount = d.Totals.Discount
	c.AfterDiscount = d.Totals.AfterDiscount
	c.TaxRate = d.Totals.TaxRate
	c.GST = d.Totals.GST
	c.ShippingCharge = d.Totals.ShippingCharge
	c.GrandTotal = d.Totals.GrandTotal
	c.Advance = d.Totals.Advance
	c.Balance = d.Totals.Balance
}

// DocumentItemModel is one line of any order-like document.
// Position keeps the caller's ordering stable across reloads.
type DocumentItemModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerType    string          `gorm:"type:varchar(30);not null;index:idx_document_items_owner"`
	OwnerID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_document_items_owner"`
	Position     int             `gorm:"not null;default:0"`
	ProductID    *uuid.UUID      `gorm:"type:uuid;index"`
	ProductName  string          `gorm:"type:varchar(200)"`
	ProductType  string          `gorm:"type:varchar(100)"`
	Texture      string          `gorm:"type:varchar(100)"`
	Size         string          `gorm:"type:varchar(50)"`
	Image        string          `gorm:"type:varchar(500)"`
	Description  string          `gorm:"type:text"`
	Category     string          `gorm:"type:varchar(100)"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Boxes        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TaxRate      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Total        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (DocumentItemModel) TableName() string {
	return "document_items"
}

// ToDomain converts the row to a domain LineItem
func (m *DocumentItemModel) ToDomain() trade.LineItem {
	return trade.LineItem{
		ID:           m.ID,
		ProductID:    m.ProductID,
		ProductName:  m.ProductName,
		ProductType:  m.ProductType,
		Texture:      m.Texture,
		Size:         m.Size,
		Image:        m.Image,
		Description:  m.Description,
		Category:     m.Category,
		Quantity:     m.Quantity,
		Boxes:        m.Boxes,
		UnitPrice:    m.UnitPrice,
		SellingPrice: m.SellingPrice,
		TaxRate:      m.TaxRate,
		Total:        m.Total,
	}
}

// ItemModelsFromDomain builds the item rows of one document
func ItemModelsFromDomain(ownerType string, ownerID uuid.UUID, items []trade.LineItem) []DocumentItemModel {
	out := make([]DocumentItemModel, 0, len(items))
	for i, it := range items {
		id := it.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		out = append(out, DocumentItemModel{
			ID:           id,
			OwnerType:    ownerType,
			OwnerID:      ownerID,
			Position:     i,
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			ProductType:  it.ProductType,
			Texture:      it.Texture,
			Size:         it.Size,
			Image:        it.Image,
			Description:  it.Description,
			Category:     it.Category,
			Quantity:     it.Quantity,
			Boxes:        it.Boxes,
			UnitPrice:    it.UnitPrice,
			SellingPrice: it.SellingPrice,
			TaxRate:      it.TaxRate,
			Total:        it.Total,
		})
	}
	return out
}

// DocumentModel is implemented by every document table model so one generic
// repository can persist all five kinds.
type DocumentModel[T any] interface {
	TableName() string
	OwnerType() string
	Header() *DocumentColumns
	ToDomain(items []DocumentItemModel) *T
	FromDomain(doc *T)
}

// InvoiceModel is the persistence model for customer invoices
type InvoiceModel struct {
	DocumentColumns
	CustomerID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	CustomerName    string              `gorm:"type:varchar(200)"`
	ShippingName    string              `gorm:"type:varchar(200)"`
	ShippingAddress string              `gorm:"type:text"`
	Status          trade.PaymentStatus `gorm:"type:varchar(20);not null;index"`
}

func (InvoiceModel) TableName() string           { return "invoices" }
func (InvoiceModel) OwnerType() string           { return OwnerInvoice }
func (m *InvoiceModel) Header() *DocumentColumns { return &m.DocumentColumns }

func (m *InvoiceModel) ToDomain(items []DocumentItemModel) *trade.Invoice {
	return &trade.Invoice{
		Document:     m.toDocument(items),
		CustomerID:   m.CustomerID,
		CustomerName: m.CustomerName,
		Shipping:     trade.ShippingInfo{Name: m.ShippingName, AddressLine: m.ShippingAddress},
		Status:       m.Status,
	}
}

func (m *InvoiceModel) FromDomain(i *trade.Invoice) {
	m.fromDocument(OwnerInvoice, &i.Document)
	m.CustomerID = i.CustomerID
	m.CustomerName = i.CustomerName
	m.ShippingName = i.Shipping.Name
	m.ShippingAddress = i.Shipping.AddressLine
	m.Status = i.Status
}

// ManualInvoiceModel is the persistence model for free-form invoices
type ManualInvoiceModel struct {
	DocumentColumns
	CustomerName  string              `gorm:"type:varchar(200);not null"`
	BillToAddress string              `gorm:"type:text"`
	ShipToAddress string              `gorm:"type:text"`
	DueDate       *time.Time          `gorm:"index"`
	Status        trade.PaymentStatus `gorm:"type:varchar(20);not null;index"`
}

func (ManualInvoiceModel) TableName() string           { return "manual_invoices" }
func (ManualInvoiceModel) OwnerType() string           { return OwnerManualInvoice }
func (m *ManualInvoiceModel) Header() *DocumentColumns { return &m.DocumentColumns }

func (m *ManualInvoiceModel) ToDomain(items []DocumentItemModel) *trade.ManualInvoice {
	return &trade.ManualInvoice{
		Document:      m.toDocument(items),
		CustomerName:  m.CustomerName,
		BillToAddress: m.BillToAddress,
		ShipToAddress: m.ShipToAddress,
		DueDate:       m.DueDate,
		Status:        m.Status,
	}
}

func (m *ManualInvoiceModel) FromDomain(i *trade.ManualInvoice) {
	m.fromDocument(OwnerManualInvoice, &i.Document)
	m.CustomerName = i.CustomerName
	m.BillToAddress = i.BillToAddress
	m.ShipToAddress = i.ShipToAddress
	m.DueDate = i.DueDate
	m.Status = i.Status
}

// QuotationModel is the persistence model for quotations tied to a customer
type QuotationModel struct {
	DocumentColumns
	CustomerID   uuid.UUID             `gorm:"type:uuid;not null;index"`
	CustomerName string                `gorm:"type:varchar(200)"`
	Status       trade.QuotationStatus `gorm:"type:varchar(30);not null;index"`
}

func (QuotationModel) TableName() string           { return "quotations" }
func (QuotationModel) OwnerType() string           { return OwnerQuotation }
func (m *QuotationModel) Header() *DocumentColumns { return &m.DocumentColumns }

func (m *QuotationModel) ToDomain(items []DocumentItemModel) *trade.Quotation {
	return &trade.Quotation{
		Document:     m.toDocument(items),
		CustomerID:   m.CustomerID,
		CustomerName: m.CustomerName,
		Status:       m.Status,
	}
}

func (m *QuotationModel) FromDomain(q *trade.Quotation) {
	m.fromDocument(OwnerQuotation, &q.Document)
	m.CustomerID = q.CustomerID
	m.CustomerName = q.CustomerName
	m.Status = q.Status
}

// ManualQuotationModel stores either a customer reference or an inline
// customer snapshot, tagged by CustomerKind.
type ManualQuotationModel struct {
	DocumentColumns
	CustomerKind     trade.CustomerKind          `gorm:"type:varchar(20);not null"`
	CustomerID       *uuid.UUID                  `gorm:"type:uuid;index"`
	CustomerSnapshot datatypes.JSON              `gorm:"type:jsonb"`
	CustomerName     string                      `gorm:"type:varchar(200)"`
	Status           trade.ManualQuotationStatus `gorm:"type:varchar(30);not null;index"`
}

func (ManualQuotationModel) TableName() string           { return "manual_quotations" }
func (ManualQuotationModel) OwnerType() string           { return OwnerManualQuotation }
func (m *ManualQuotationModel) Header() *DocumentColumns { return &m.DocumentColumns }

func (m *ManualQuotationModel) ToDomain(items []DocumentItemModel) *trade.ManualQuotation {
	q := &trade.ManualQuotation{
		Document:     m.toDocument(items),
		CustomerName: m.CustomerName,
		Status:       m.Status,
	}
	q.Customer.Kind = m.CustomerKind
	if m.CustomerID != nil {
		q.Customer.CustomerID = *m.CustomerID
	}
	if len(m.CustomerSnapshot) > 0 {
		// a malformed snapshot degrades to the stored display name
		if err := json.Unmarshal(m.CustomerSnapshot, &q.Customer.Snapshot); err != nil {
			q.Customer.Snapshot = trade.CustomerSnapshot{Name: m.CustomerName}
		}
	}
	return q
}

func (m *ManualQuotationModel) FromDomain(q *trade.ManualQuotation) {
	m.fromDocument(OwnerManualQuotation, &q.Document)
	m.CustomerKind = q.Customer.Kind
	m.CustomerName = q.CustomerName
	m.Status = q.Status
	m.CustomerID = nil
	m.CustomerSnapshot = nil
	switch q.Customer.Kind {
	case trade.CustomerKindReference:
		id := q.Customer.CustomerID
		m.CustomerID = &id
	case trade.CustomerKindSnapshot:
		raw, err := json.Marshal(q.Customer.Snapshot)
		if err == nil {
			m.CustomerSnapshot = datatypes.JSON(raw)
		}
	}
}

// PurchaseOrderModel is the persistence model for vendor purchase orders
type PurchaseOrderModel struct {
	DocumentColumns
	VendorID            uuid.UUID            `gorm:"type:uuid;not null;index"`
	VendorName          string               `gorm:"type:varchar(200)"`
	ProductType         string               `gorm:"type:varchar(100)"`
	SuppInvoiceSerialNo string               `gorm:"type:varchar(100)"`
	AttachFile          string               `gorm:"type:varchar(500)"`
	Status              trade.PurchaseStatus `gorm:"type:varchar(20);not null;index"`
}

func (PurchaseOrderModel) TableName() string           { return "purchase_orders" }
func (PurchaseOrderModel) OwnerType() string           { return OwnerPurchaseOrder }
func (m *PurchaseOrderModel) Header() *DocumentColumns { return &m.DocumentColumns }

func (m *PurchaseOrderModel) ToDomain(items []DocumentItemModel) *trade.PurchaseOrder {
	return &trade.PurchaseOrder{
		Document:            m.toDocument(items),
		VendorID:            m.VendorID,
		VendorName:          m.VendorName,
		ProductType:         m.ProductType,
		SuppInvoiceSerialNo: m.SuppInvoiceSerialNo,
		AttachFile:          m.AttachFile,
		Status:              m.Status,
	}
}

func (m *PurchaseOrderModel) FromDomain(p *trade.PurchaseOrder) {
	m.fromDocument(OwnerPurchaseOrder, &p.Document)
	m.VendorID = p.VendorID
	m.VendorName = p.VendorName
	m.ProductType = p.ProductType
	m.SuppInvoiceSerialNo = p.SuppInvoiceSerialNo
	m.AttachFile = p.AttachFile
	m.Status = p.Status
}

// PrePurchaseModel is the persistence model for vendor pre-purchases
type PrePurchaseModel struct {
	BaseModel
	VendorName  string          `gorm:"type:varchar(200);not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Advance     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Balance     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Description string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PrePurchaseModel) TableName() string {
	return "pre_purchases"
}

func (m *PrePurchaseModel) ToDomain() *trade.PrePurchase {
	return &trade.PrePurchase{
		BaseEntity:  m.BaseModel.ToDomain(),
		VendorName:  m.VendorName,
		Amount:      m.Amount,
		Advance:     m.Advance,
		Balance:     m.Balance,
		Description: m.Description,
	}
}

func (m *PrePurchaseModel) FromDomain(p *trade.PrePurchase) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.VendorName = p.VendorName
	m.Amount = p.Amount
	m.Advance = p.Advance
	m.Balance = p.Balance
	m.Description = p.Description
}
