package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPolicy_DirectionFor(t *testing.T) {
	t.Run("sales documents always decrease", func(t *testing.T) {
		p := Policy{PurchaseDirection: Increase}
		for _, k := range []DocumentKind{KindInvoice, KindManualInvoice, KindQuotation, KindManualQuotation} {
			assert.Equal(t, Decrease, p.DirectionFor(k), k)
		}
	})

	t.Run("purchase follows configuration", func(t *testing.T) {
		assert.Equal(t, Increase, Policy{PurchaseDirection: Increase}.DirectionFor(KindPurchaseOrder))
		assert.Equal(t, Decrease, Policy{PurchaseDirection: Decrease}.DirectionFor(KindPurchaseOrder))
		assert.Equal(t, Increase, Policy{}.DirectionFor(KindPurchaseOrder))
	})
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection(" Increase ")
	require.NoError(t, err)
	assert.Equal(t, Increase, d)

	d, err = ParseDirection("decrease")
	require.NoError(t, err)
	assert.Equal(t, Decrease, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}

func TestNetDeltas(t *testing.T) {
	p1, p2 := uuid.New(), uuid.New()

	t.Run("merges lines for the same product", func(t *testing.T) {
		deltas := NetDeltas(KindInvoice, Decrease.Sign(), []StockLine{
			{ProductID: p1, Quantity: dec("2")},
			{ProductID: p2, Quantity: dec("1.5")},
			{ProductID: p1, Quantity: dec("3")},
		})
		require.Len(t, deltas, 2)
		assert.Equal(t, p1, deltas[0].ProductID)
		assert.True(t, deltas[0].Quantity.Equal(dec("-5")))
		assert.True(t, deltas[1].Quantity.Equal(dec("-1.5")))
	})

	t.Run("ignores lines without product or quantity", func(t *testing.T) {
		deltas := NetDeltas(KindQuotation, Decrease.Sign(), []StockLine{
			{ProductID: uuid.Nil, Quantity: dec("2")},
			{ProductID: p1, Quantity: dec("0")},
			{ProductID: p2, Quantity: dec("-1")},
		})
		assert.Empty(t, deltas)
	})

	t.Run("boxes only move for purchase orders", func(t *testing.T) {
		line := []StockLine{{ProductID: p1, Quantity: dec("50"), Boxes: dec("24")}}

		sales := NetDeltas(KindQuotation, Decrease.Sign(), line)
		require.Len(t, sales, 1)
		assert.True(t, sales[0].Boxes.IsZero())

		purchase := NetDeltas(KindPurchaseOrder, Increase.Sign(), line)
		require.Len(t, purchase, 1)
		assert.True(t, purchase[0].Quantity.Equal(dec("50")))
		assert.True(t, purchase[0].Boxes.Equal(dec("24")))
	})
}

func TestReconcileDeltas(t *testing.T) {
	p1, p2, p3 := uuid.New(), uuid.New(), uuid.New()

	t.Run("5 to 8 nets an extra 3", func(t *testing.T) {
		deltas := ReconcileDeltas(KindInvoice, Decrease,
			[]StockLine{{ProductID: p1, Quantity: dec("5")}},
			[]StockLine{{ProductID: p1, Quantity: dec("8")}},
		)
		require.Len(t, deltas, 1)
		assert.True(t, deltas[0].Quantity.Equal(dec("-3")))
	})

	t.Run("unchanged items produce no writes", func(t *testing.T) {
		lines := []StockLine{{ProductID: p1, Quantity: dec("5")}}
		assert.Empty(t, ReconcileDeltas(KindInvoice, Decrease, lines, lines))
	})

	t.Run("removed and added products", func(t *testing.T) {
		deltas := ReconcileDeltas(KindPurchaseOrder, Increase,
			[]StockLine{{ProductID: p1, Quantity: dec("4"), Boxes: dec("2")}, {ProductID: p2, Quantity: dec("1")}},
			[]StockLine{{ProductID: p2, Quantity: dec("1")}, {ProductID: p3, Quantity: dec("6"), Boxes: dec("3")}},
		)
		require.Len(t, deltas, 2)
		assert.Equal(t, p1, deltas[0].ProductID)
		assert.True(t, deltas[0].Quantity.Equal(dec("-4")))
		assert.True(t, deltas[0].Boxes.Equal(dec("-2")))
		assert.Equal(t, p3, deltas[1].ProductID)
		assert.True(t, deltas[1].Quantity.Equal(dec("6")))
		assert.True(t, deltas[1].Boxes.Equal(dec("3")))
	})
}

func TestApplyFloor(t *testing.T) {
	before := Stock{Quantity: dec("3"), Boxes: dec("1")}

	after, clamped := ApplyFloor(before, Delta{Quantity: dec("-2")})
	assert.False(t, clamped)
	assert.True(t, after.Quantity.Equal(dec("1")))

	after, clamped = ApplyFloor(before, Delta{Quantity: dec("-5"), Boxes: dec("-2")})
	assert.True(t, clamped)
	assert.True(t, after.Quantity.IsZero())
	assert.True(t, after.Boxes.IsZero())
}

func TestAdjustmentReport(t *testing.T) {
	p1, p2, p3 := uuid.New(), uuid.New(), uuid.New()
	r := &AdjustmentReport{Kind: KindInvoice, Adjustments: []Adjustment{
		{ProductID: p1, Outcome: OutcomeAdjusted},
		{ProductID: p2, Outcome: OutcomeSkipped},
		{ProductID: p3, Outcome: OutcomeClamped},
	}}

	assert.Equal(t, []uuid.UUID{p2}, r.Skipped())
	assert.Equal(t, []uuid.UUID{p3}, r.Clamped())
	assert.Equal(t, 3, r.Len())

	var empty *AdjustmentReport
	assert.Equal(t, 0, empty.Len())
	assert.Nil(t, empty.Skipped())
}
