package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tilesgalleria/backoffice/internal/domain/catalog"
	"github.com/tilesgalleria/backoffice/internal/domain/inventory"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

// LineItem is one line of an order-like document. Product attributes are copied
// at write time and are not re-synced when the product changes later.
type LineItem struct {
	ID           uuid.UUID
	ProductID    *uuid.UUID
	ProductName  string
	ProductType  string
	Texture      string
	Size         string
	Image        string
	Description  string
	Category     string
	Quantity     decimal.Decimal
	Boxes        decimal.Decimal
	UnitPrice    decimal.Decimal // sale price, or purchase price on purchase orders
	SellingPrice decimal.Decimal // purchase orders only
	TaxRate      decimal.Decimal
	Total        decimal.Decimal
}

// ItemInput is the caller-supplied part of a line item
type ItemInput struct {
	ProductID    *uuid.UUID
	Description  string
	Category     string
	Quantity     decimal.Decimal
	Boxes        *decimal.Decimal
	UnitPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	TaxRate      *decimal.Decimal
}

// Validate checks a single item
func (in ItemInput) Validate(pos int) error {
	if in.Quantity.IsNegative() {
		return shared.Validation("item %d: quantity cannot be negative", pos+1)
	}
	if in.UnitPrice.IsNegative() || in.SellingPrice.IsNegative() {
		return shared.Validation("item %d: price cannot be negative", pos+1)
	}
	if in.Boxes != nil && in.Boxes.IsNegative() {
		return shared.Validation("item %d: boxes cannot be negative", pos+1)
	}
	if in.TaxRate != nil && (in.TaxRate.IsNegative() || in.TaxRate.GreaterThan(hundred)) {
		return shared.Validation("item %d: tax rate must be between 0 and 100", pos+1)
	}
	if in.ProductID == nil && strings.TrimSpace(in.Description) == "" {
		return shared.Validation("item %d: a product or a description is required", pos+1)
	}
	return nil
}

// ItemBuilder turns item inputs into line items, copying product attributes
// and deriving boxes from the coverage table when the caller omits them.
type ItemBuilder struct {
	Products       map[uuid.UUID]*catalog.Product
	Coverage       *catalog.CoverageTable
	DefaultTaxRate decimal.Decimal
	DeriveBoxes    bool
}

// Build converts inputs to line items. Unknown product IDs are kept on the item
// so the ledger can report them as skipped.
func (b ItemBuilder) Build(inputs []ItemInput) ([]LineItem, error) {
	items := make([]LineItem, 0, len(inputs))
	for i, in := range inputs {
		if err := in.Validate(i); err != nil {
			return nil, err
		}

		item := LineItem{
			ID:           uuid.New(),
			ProductID:    in.ProductID,
			Description:  strings.TrimSpace(in.Description),
			Category:     strings.TrimSpace(in.Category),
			Quantity:     in.Quantity,
			UnitPrice:    in.UnitPrice,
			SellingPrice: in.SellingPrice,
			TaxRate:      b.DefaultTaxRate,
		}

		if in.ProductID != nil {
			if p, ok := b.Products[*in.ProductID]; ok {
				item.ProductName = p.Name
				item.ProductType = p.ProductType
				item.Texture = p.Texture
				item.Size = p.Size
				item.Image = p.Image
				if item.Category == "" {
					item.Category = p.ProductType
				}
				if in.TaxRate == nil {
					item.TaxRate = p.TaxRate
				}
			}
		}
		if in.TaxRate != nil {
			item.TaxRate = *in.TaxRate
		}

		switch {
		case in.Boxes != nil:
			item.Boxes = *in.Boxes
		case b.DeriveBoxes && b.Coverage != nil:
			item.Boxes = b.Coverage.Boxes(item.Category, item.Quantity)
		}

		item.Total = LineTotal(item.Quantity, item.UnitPrice)
		items = append(items, item)
	}
	return items, nil
}

// Document holds the parts every order-like document shares
type Document struct {
	shared.BaseEntity
	Number string
	Date   time.Time
	Items  []LineItem
	Totals Totals
	Notes  string
}

// StockLines projects the document's items onto the stock ledger
func (d *Document) StockLines() []inventory.StockLine {
	lines := make([]inventory.StockLine, 0, len(d.Items))
	for _, it := range d.Items {
		if it.ProductID == nil {
			continue
		}
		lines = append(lines, inventory.StockLine{
			ProductID: *it.ProductID,
			Quantity:  it.Quantity,
			Boxes:     it.Boxes,
		})
	}
	return lines
}

// ProductIDs returns the distinct product references of the items
func ProductIDs(inputs []ItemInput) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, in := range inputs {
		if in.ProductID == nil {
			continue
		}
		if _, ok := seen[*in.ProductID]; ok {
			continue
		}
		seen[*in.ProductID] = struct{}{}
		ids = append(ids, *in.ProductID)
	}
	return ids
}

// DocumentID implements StockDocument
func (d *Document) DocumentID() uuid.UUID { return d.ID }

// DocumentNumber implements StockDocument
func (d *Document) DocumentNumber() string { return d.Number }

// Renumber replaces the document number
func (d *Document) Renumber(number string) {
	d.Number = strings.TrimSpace(number)
	d.Touch()
}

func (d *Document) setContent(items []LineItem, mode TaxMode, c Charges) error {
	if err := c.Validate(); err != nil {
		return err
	}
	d.Items = items
	d.Totals = ComputeTotals(items, mode, c)
	return nil
}

func newDocument(number string, date time.Time) Document {
	if date.IsZero() {
		date = time.Now()
	}
	return Document{
		BaseEntity: shared.NewBaseEntity(),
		Number:     strings.TrimSpace(number),
		Date:       date,
	}
}

// StockDocument is implemented by every order-like document
type StockDocument interface {
	DocumentID() uuid.UUID
	DocumentNumber() string
	StockLines() []inventory.StockLine
}
