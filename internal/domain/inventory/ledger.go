// Package inventory holds the stock-adjustment ledger: the rules that keep a
// product's quantity and boxes counters in step with every order-like document
// that references it.
package inventory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

// DocumentKind identifies the family of order-like document driving an adjustment
type DocumentKind string

const (
	KindInvoice         DocumentKind = "invoice"
	KindManualInvoice   DocumentKind = "manual_invoice"
	KindQuotation       DocumentKind = "quotation"
	KindManualQuotation DocumentKind = "manual_quotation"
	KindPurchaseOrder   DocumentKind = "purchase_order"
)

// AllKinds lists every document kind that touches stock
var AllKinds = []DocumentKind{KindInvoice, KindManualInvoice, KindQuotation, KindManualQuotation, KindPurchaseOrder}

// IsValid reports whether k is a known kind
func (k DocumentKind) IsValid() bool {
	for _, known := range AllKinds {
		if k == known {
			return true
		}
	}
	return false
}

// AdjustsBoxes reports whether the kind moves the boxes counter. Only purchase
// orders carry authoritative box counts; sales documents move quantity only.
func (k DocumentKind) AdjustsBoxes() bool {
	return k == KindPurchaseOrder
}

// Direction is the sign a document applies to stock when it is created
type Direction string

const (
	Increase Direction = "increase"
	Decrease Direction = "decrease"
)

// ParseDirection parses "increase" or "decrease" (case-insensitive)
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Increase:
		return Increase, nil
	case Decrease:
		return Decrease, nil
	}
	return "", shared.Validation("stock direction must be %q or %q, got %q", Increase, Decrease, s)
}

// Sign returns +1 for Increase and -1 for Decrease
func (d Direction) Sign() decimal.Decimal {
	if d == Increase {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(-1)
}

// Policy decides the direction each document kind moves stock
type Policy struct {
	PurchaseDirection Direction
}

// DefaultPolicy makes purchase orders add stock
func DefaultPolicy() Policy {
	return Policy{PurchaseDirection: Increase}
}

// DirectionFor returns the create-time direction for kind
func (p Policy) DirectionFor(kind DocumentKind) Direction {
	if kind == KindPurchaseOrder {
		if p.PurchaseDirection == "" {
			return Increase
		}
		return p.PurchaseDirection
	}
	return Decrease
}

// StockLine is the stock-relevant projection of one document line item
type StockLine struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
	Boxes     decimal.Decimal
}

// Stock is a snapshot of a product's two counters
type Stock struct {
	Quantity decimal.Decimal `json:"quantity"`
	Boxes    decimal.Decimal `json:"boxes"`
}

// Delta is a signed change to one product's counters
type Delta struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
	Boxes     decimal.Decimal
}

// IsZero reports whether the delta changes nothing
func (d Delta) IsZero() bool {
	return d.Quantity.IsZero() && d.Boxes.IsZero()
}

// ApplyFloor adds d to before, clamping each counter at zero
func ApplyFloor(before Stock, d Delta) (after Stock, clamped bool) {
	after.Quantity = before.Quantity.Add(d.Quantity)
	after.Boxes = before.Boxes.Add(d.Boxes)
	if after.Quantity.IsNegative() {
		after.Quantity = decimal.Zero
		clamped = true
	}
	if after.Boxes.IsNegative() {
		after.Boxes = decimal.Zero
		clamped = true
	}
	return after, clamped
}

// NetDeltas folds signed lines into one delta per product, keeping first-seen order.
// Lines with a nil product or non-positive quantity are ignored. Boxes are dropped
// for kinds that do not adjust boxes.
func NetDeltas(kind DocumentKind, sign decimal.Decimal, lines []StockLine) []Delta {
	return mergeDeltas(kind, []signedLines{{sign: sign, lines: lines}})
}

// ReconcileDeltas returns the deltas that turn the effect of oldLines into the
// effect of newLines: rolling back old and applying new, netted per product.
func ReconcileDeltas(kind DocumentKind, dir Direction, oldLines, newLines []StockLine) []Delta {
	sign := dir.Sign()
	return mergeDeltas(kind, []signedLines{
		{sign: sign.Neg(), lines: oldLines},
		{sign: sign, lines: newLines},
	})
}

type signedLines struct {
	sign  decimal.Decimal
	lines []StockLine
}

func mergeDeltas(kind DocumentKind, groups []signedLines) []Delta {
	index := make(map[uuid.UUID]int)
	var out []Delta
	for _, g := range groups {
		for _, l := range g.lines {
			if l.ProductID == uuid.Nil || !l.Quantity.IsPositive() {
				continue
			}
			boxes := decimal.Zero
			if kind.AdjustsBoxes() && l.Boxes.IsPositive() {
				boxes = l.Boxes.Mul(g.sign)
			}
			i, ok := index[l.ProductID]
			if !ok {
				index[l.ProductID] = len(out)
				out = append(out, Delta{ProductID: l.ProductID})
				i = len(out) - 1
			}
			out[i].Quantity = out[i].Quantity.Add(l.Quantity.Mul(g.sign))
			out[i].Boxes = out[i].Boxes.Add(boxes)
		}
	}

	result := out[:0]
	for _, d := range out {
		if !d.IsZero() {
			result = append(result, d)
		}
	}
	return result
}

// StockChange is what the store reports back for one atomic adjustment
type StockChange struct {
	Found   bool
	Before  Stock
	After   Stock
	Clamped bool
}

// StockRepository applies atomic, floor-clamped increments to product counters
type StockRepository interface {
	// Adjust adds the delta to the product's counters in a single atomic statement.
	// A missing product is reported with Found=false and a nil error.
	Adjust(ctx context.Context, d Delta) (StockChange, error)
}

// StockLedger is the single entry point every order-like document uses to move stock
type StockLedger interface {
	// Apply records the effect of a newly created document
	Apply(ctx context.Context, kind DocumentKind, lines []StockLine) (*AdjustmentReport, error)
	// Reverse undoes the effect of a deleted document
	Reverse(ctx context.Context, kind DocumentKind, lines []StockLine) (*AdjustmentReport, error)
	// Reconcile moves stock from the effect of oldLines to the effect of newLines
	Reconcile(ctx context.Context, kind DocumentKind, oldLines, newLines []StockLine) (*AdjustmentReport, error)
}
