package trade

import (
	"github.com/shopspring/decimal"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

// TaxMode selects how GST is derived for a document
type TaxMode string

const (
	// TaxModeDocument applies one rate to the discounted subtotal
	TaxModeDocument TaxMode = "document"
	// TaxModePerLine sums each line's own rate; a zero rate means the price already includes GST
	TaxModePerLine TaxMode = "per_line"
)

var hundred = decimal.NewFromInt(100)

// Charges are the document-level inputs to the totals calculation
type Charges struct {
	Discount       decimal.Decimal
	ShippingCharge decimal.Decimal
	Advance        decimal.Decimal
	TaxRate        decimal.Decimal // only used by TaxModeDocument
}

// Validate rejects negative charges and out-of-range rates
func (c Charges) Validate() error {
	if c.Discount.IsNegative() {
		return shared.Validation("discount cannot be negative")
	}
	if c.ShippingCharge.IsNegative() {
		return shared.Validation("shipping charge cannot be negative")
	}
	if c.Advance.IsNegative() {
		return shared.Validation("advance cannot be negative")
	}
	if c.TaxRate.IsNegative() || c.TaxRate.GreaterThan(hundred) {
		return shared.Validation("tax rate must be between 0 and 100")
	}
	return nil
}

// Totals are the money figures derived from a document's lines and charges
type Totals struct {
	SubTotal       decimal.Decimal `json:"sub_total"`
	Discount       decimal.Decimal `json:"discount"`
	AfterDiscount  decimal.Decimal `json:"after_discount"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
	GST            decimal.Decimal `json:"gst"`
	ShippingCharge decimal.Decimal `json:"shipping_charge"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
	Advance        decimal.Decimal `json:"advance"`
	Balance        decimal.Decimal `json:"balance"`
}

// LineTotal is qty x price rounded to cents
func LineTotal(qty, price decimal.Decimal) decimal.Decimal {
	return qty.Mul(price).Round(2)
}

// ComputeTotals derives every figure from the lines and charges:
//
//	afterDiscount = max(0, subTotal - discount)
//	gst           = round(afterDiscount * rate / 100)            (document mode)
//	gst           = round(sum(line.total * line.rate / 100))     (per-line mode)
//	grandTotal    = afterDiscount + gst + shippingCharge
//	balance       = grandTotal - advance
func ComputeTotals(items []LineItem, mode TaxMode, c Charges) Totals {
	sub := decimal.Zero
	for _, it := range items {
		sub = sub.Add(it.Total)
	}

	after := sub.Sub(c.Discount)
	if after.IsNegative() {
		after = decimal.Zero
	}

	var gst decimal.Decimal
	switch mode {
	case TaxModePerLine:
		sum := decimal.Zero
		for _, it := range items {
			if it.TaxRate.IsPositive() {
				sum = sum.Add(it.Total.Mul(it.TaxRate).Div(hundred))
			}
		}
		gst = sum.Round(0)
	default:
		gst = after.Mul(c.TaxRate).Div(hundred).Round(0)
	}

	grand := after.Add(gst).Add(c.ShippingCharge).Round(2)

	return Totals{
		SubTotal:       sub.Round(2),
		Discount:       c.Discount,
		AfterDiscount:  after.Round(2),
		TaxRate:        c.TaxRate,
		GST:            gst,
		ShippingCharge: c.ShippingCharge,
		GrandTotal:     grand,
		Advance:        c.Advance,
		Balance:        grand.Sub(c.Advance),
	}
}
