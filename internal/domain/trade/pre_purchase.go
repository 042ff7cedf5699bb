package trade

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

// PrePurchase is an advance paid to a vendor before goods are ordered.
// It does not touch stock.
type PrePurchase struct {
	shared.BaseEntity
	VendorName  string
	Amount      decimal.Decimal
	Advance     decimal.Decimal
	Balance     decimal.Decimal
	Description string
}

// PrePurchaseInput holds the writable fields of a pre-purchase
type PrePurchaseInput struct {
	VendorName  string
	Amount      decimal.Decimal
	Advance     decimal.Decimal
	Description string
}

func NewPrePurchase(in PrePurchaseInput) (*PrePurchase, error) {
	p := &PrePurchase{BaseEntity: shared.NewBaseEntity()}
	if err := p.apply(in); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *PrePurchase) Update(in PrePurchaseInput) error {
	if err := p.apply(in); err != nil {
		return err
	}
	p.Touch()
	return nil
}

func (p *PrePurchase) apply(in PrePurchaseInput) error {
	name := strings.TrimSpace(in.VendorName)
	if name == "" {
		return shared.Validation("vendor name is required")
	}
	if in.Amount.IsNegative() || in.Advance.IsNegative() {
		return shared.Validation("amount and advance cannot be negative")
	}
	p.VendorName = name
	p.Amount = in.Amount.Round(2)
	p.Advance = in.Advance.Round(2)
	p.Balance = p.Amount.Sub(p.Advance)
	p.Description = strings.TrimSpace(in.Description)
	return nil
}
