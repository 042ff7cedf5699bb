package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

// DefaultTaxRate is the GST percentage applied when none is given
var DefaultTaxRate = decimal.NewFromInt(10)

// Product represents a sellable item in the catalog along with its stock counters.
// Quantity and Boxes are only ever changed through the stock ledger once the
// product exists; Update leaves them alone.
type Product struct {
	shared.BaseEntity
	Name        string
	ProductType string // category name, e.g. "Tiles"
	Texture     string
	Size        string
	Quantity    decimal.Decimal
	Boxes       decimal.Decimal
	Price       decimal.Decimal
	Image       string
	TaxRate     decimal.Decimal
}

// ProductInput carries the editable product attributes
type ProductInput struct {
	Name        string
	ProductType string
	Texture     string
	Size        string
	Quantity    decimal.Decimal
	Boxes       decimal.Decimal
	Price       decimal.Decimal
	Image       string
	TaxRate     *decimal.Decimal
}

// NewProduct creates a new product
func NewProduct(in ProductInput) (*Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}
	if in.Quantity.IsNegative() {
		return nil, shared.Validation("quantity cannot be negative")
	}
	if in.Boxes.IsNegative() {
		return nil, shared.Validation("boxes cannot be negative")
	}

	p := &Product{
		BaseEntity: shared.NewBaseEntity(),
		Quantity:   in.Quantity,
		Boxes:      in.Boxes,
	}
	p.apply(in)
	return p, nil
}

// Update changes the descriptive attributes and price of the product
func (p *Product) Update(in ProductInput) error {
	if err := validateProductInput(in); err != nil {
		return err
	}
	p.apply(in)
	p.Touch()
	return nil
}

// SetStock overwrites both stock counters. Used by bulk import and manual stock edits.
func (p *Product) SetStock(quantity, boxes decimal.Decimal) error {
	if quantity.IsNegative() || boxes.IsNegative() {
		return shared.Validation("stock cannot be negative")
	}
	p.Quantity = quantity
	p.Boxes = boxes
	p.Touch()
	return nil
}

func (p *Product) apply(in ProductInput) {
	p.Name = strings.TrimSpace(in.Name)
	p.ProductType = strings.TrimSpace(in.ProductType)
	p.Texture = strings.TrimSpace(in.Texture)
	p.Size = strings.TrimSpace(in.Size)
	p.Price = in.Price
	p.Image = in.Image
	if in.TaxRate != nil {
		p.TaxRate = *in.TaxRate
	} else if p.TaxRate.IsZero() {
		p.TaxRate = DefaultTaxRate
	}
}

func validateProductInput(in ProductInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return shared.Validation("product name is required")
	}
	if len(name) > 200 {
		return shared.Validation("product name cannot exceed 200 characters")
	}
	if in.Price.IsNegative() {
		return shared.Validation("price cannot be negative")
	}
	if in.TaxRate != nil && (in.TaxRate.IsNegative() || in.TaxRate.GreaterThan(decimal.NewFromInt(100))) {
		return shared.Validation("tax rate must be between 0 and 100")
	}
	return nil
}
