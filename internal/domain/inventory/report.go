package inventory

import "github.com/google/uuid"

// Outcome describes what happened to one product during an adjustment
type Outcome string

const (
	OutcomeAdjusted Outcome = "adjusted"
	OutcomeClamped  Outcome = "clamped"
	OutcomeSkipped  Outcome = "skipped"
)

// Adjustment is one product's entry in an AdjustmentReport
type Adjustment struct {
	ProductID uuid.UUID `json:"product_id"`
	Requested Delta     `json:"-"`
	Before    Stock     `json:"before"`
	After     Stock     `json:"after"`
	Outcome   Outcome   `json:"outcome"`
}

// AdjustmentReport lists the per-product result of a ledger operation
type AdjustmentReport struct {
	Kind        DocumentKind `json:"kind"`
	Adjustments []Adjustment `json:"adjustments"`
}

// Skipped returns the products that no longer exist
func (r *AdjustmentReport) Skipped() []uuid.UUID {
	return r.withOutcome(OutcomeSkipped)
}

// Clamped returns the products whose counters hit the zero floor
func (r *AdjustmentReport) Clamped() []uuid.UUID {
	return r.withOutcome(OutcomeClamped)
}

// Len returns the number of products touched or skipped
func (r *AdjustmentReport) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Adjustments)
}

func (r *AdjustmentReport) withOutcome(o Outcome) []uuid.UUID {
	if r == nil {
		return nil
	}
	var ids []uuid.UUID
	for _, a := range r.Adjustments {
		if a.Outcome == o {
			ids = append(ids, a.ProductID)
		}
	}
	return ids
}
