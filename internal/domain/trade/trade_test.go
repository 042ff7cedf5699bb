package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tilesgalleria/backoffice/internal/domain/catalog"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

func sampleItems() []LineItem {
	return []LineItem{
		{Quantity: dec("10"), UnitPrice: dec("45.50"), TaxRate: dec("10"), Total: LineTotal(dec("10"), dec("45.50"))},
		{Quantity: dec("2"), UnitPrice: dec("12.25"), TaxRate: dec("0"), Total: LineTotal(dec("2"), dec("12.25"))},
	}
}

func TestComputeTotals(t *testing.T) {
	charges := Charges{Discount: dec("20"), ShippingCharge: dec("15"), Advance: dec("100"), TaxRate: dec("10")}

	t.Run("document tax mode", func(t *testing.T) {
		tot := ComputeTotals(sampleItems(), TaxModeDocument, charges)
		assert.True(t, tot.SubTotal.Equal(dec("479.50")), tot.SubTotal.String())
		assert.True(t, tot.AfterDiscount.Equal(dec("459.50")))
		assert.True(t, tot.GST.Equal(dec("46")), tot.GST.String())
		assert.True(t, tot.GrandTotal.Equal(dec("520.50")), tot.GrandTotal.String())
		assert.True(t, tot.Balance.Equal(dec("420.50")))
	})

	t.Run("per-line tax mode skips inclusive lines", func(t *testing.T) {
		tot := ComputeTotals(sampleItems(), TaxModePerLine, charges)
		// 455.00 * 10% = 45.5, rounded half away from zero
		assert.True(t, tot.GST.Equal(dec("46")), tot.GST.String())
		assert.True(t, tot.GrandTotal.Equal(dec("520.50")))
	})

	t.Run("discount larger than subtotal floors at zero", func(t *testing.T) {
		tot := ComputeTotals(sampleItems(), TaxModeDocument, Charges{Discount: dec("1000"), TaxRate: dec("10")})
		assert.True(t, tot.AfterDiscount.IsZero())
		assert.True(t, tot.GST.IsZero())
		assert.True(t, tot.GrandTotal.IsZero())
	})

	t.Run("no items", func(t *testing.T) {
		tot := ComputeTotals(nil, TaxModeDocument, Charges{ShippingCharge: dec("5")})
		assert.True(t, tot.SubTotal.IsZero())
		assert.True(t, tot.GrandTotal.Equal(dec("5")))
	})
}

func TestCharges_Validate(t *testing.T) {
	assert.NoError(t, Charges{}.Validate())
	assert.ErrorIs(t, Charges{Discount: dec("-1")}.Validate(), shared.ErrValidationFailed)
	assert.ErrorIs(t, Charges{ShippingCharge: dec("-1")}.Validate(), shared.ErrValidationFailed)
	assert.ErrorIs(t, Charges{Advance: dec("-0.01")}.Validate(), shared.ErrValidationFailed)
	assert.ErrorIs(t, Charges{TaxRate: dec("101")}.Validate(), shared.ErrValidationFailed)
}

func TestNumbering(t *testing.T) {
	assert.Equal(t, "INV-0001", FormatNumber(PrefixInvoice, 1))
	assert.Equal(t, "PO-12345", FormatNumber(PrefixPurchaseOrder, 12345))

	n, ok := ParseSequence(PrefixQuotation, "QUO-0042")
	require.True(t, ok)
	assert.Equal(t, 42, n)

	_, ok = ParseSequence(PrefixQuotation, "MQUO-0042")
	assert.False(t, ok)
	_, ok = ParseSequence(PrefixQuotation, "QUO-abc")
	assert.False(t, ok)

	assert.Equal(t, "MINV-0001", NextNumber(PrefixManualInvoice, ""))
	assert.Equal(t, "MINV-0010", NextNumber(PrefixManualInvoice, "MINV-0009"))
	assert.Equal(t, "INV-10000", NextNumber(PrefixInvoice, "INV-9999"))

	t.Run("custom numbers sharing the prefix are ignored", func(t *testing.T) {
		_, ok := ParseSequence(PrefixInvoice, "INV-2024-07")
		assert.False(t, ok)
		_, ok = ParseSequence(PrefixInvoice, "INV-+7")
		assert.False(t, ok)

		last := HighestNumber(PrefixInvoice, []string{"INV-0002", "INV-2024-07", "INV-0010", "INV-A1", "MINV-0500"})
		assert.Equal(t, "INV-0010", last)
		assert.Equal(t, "INV-0011", NextNumber(PrefixInvoice, last))
		assert.Empty(t, HighestNumber(PrefixInvoice, []string{"INV-2024-07"}))
	})
}

func TestItemBuilder(t *testing.T) {
	product, err := catalog.NewProduct(catalog.ProductInput{
		Name: "Carrara Matt", ProductType: "Tiles", Texture: "Matt", Size: "600x600",
		Quantity: dec("100"), Price: dec("45"), TaxRate: ptr(dec("10")),
	})
	require.NoError(t, err)
	coverage, err := catalog.NewCoverageTable(dec("1.44"), map[string]decimal.Decimal{"tiles": dec("1.44")})
	require.NoError(t, err)

	b := ItemBuilder{
		Products:       map[uuid.UUID]*catalog.Product{product.ID: product},
		Coverage:       coverage,
		DefaultTaxRate: dec("10"),
		DeriveBoxes:    true,
	}

	t.Run("copies product attributes and derives boxes", func(t *testing.T) {
		items, err := b.Build([]ItemInput{{ProductID: &product.ID, Quantity: dec("10"), UnitPrice: dec("45")}})
		require.NoError(t, err)
		require.Len(t, items, 1)
		it := items[0]
		assert.Equal(t, "Carrara Matt", it.ProductName)
		assert.Equal(t, "Tiles", it.Category)
		assert.True(t, it.Boxes.Equal(dec("7")), it.Boxes.String())
		assert.True(t, it.Total.Equal(dec("450")))
	})

	t.Run("explicit boxes win", func(t *testing.T) {
		items, err := b.Build([]ItemInput{{ProductID: &product.ID, Quantity: dec("10"), Boxes: ptr(dec("3")), UnitPrice: dec("1")}})
		require.NoError(t, err)
		assert.True(t, items[0].Boxes.Equal(dec("3")))
	})

	t.Run("unknown product is kept for the ledger", func(t *testing.T) {
		missing := uuid.New()
		items, err := b.Build([]ItemInput{{ProductID: &missing, Quantity: dec("1"), UnitPrice: dec("1")}})
		require.NoError(t, err)
		assert.Equal(t, &missing, items[0].ProductID)
		assert.Empty(t, items[0].ProductName)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := b.Build([]ItemInput{{ProductID: &product.ID, Quantity: dec("-1")}})
		assert.ErrorIs(t, err, shared.ErrValidationFailed)

		_, err = b.Build([]ItemInput{{Quantity: dec("1")}})
		assert.ErrorIs(t, err, shared.ErrValidationFailed)
	})
}

func TestDocument_StockLines(t *testing.T) {
	p := uuid.New()
	doc := Document{Items: []LineItem{
		{ProductID: &p, Quantity: dec("2"), Boxes: dec("1")},
		{Description: "Delivery", Quantity: dec("1")},
	}}
	lines := doc.StockLines()
	require.Len(t, lines, 1)
	assert.Equal(t, p, lines[0].ProductID)
}

func TestInvoice(t *testing.T) {
	t.Run("requires customer", func(t *testing.T) {
		_, err := NewInvoice("INV-0001", InvoiceHeader{}, nil, Charges{})
		assert.ErrorIs(t, err, shared.ErrValidationFailed)
	})

	t.Run("defaults to unpaid and recomputes totals", func(t *testing.T) {
		inv, err := NewInvoice("INV-0001", InvoiceHeader{CustomerID: uuid.New()}, sampleItems(), Charges{TaxRate: dec("10")})
		require.NoError(t, err)
		assert.Equal(t, PaymentStatusUnpaid, inv.Status)
		assert.True(t, inv.Totals.SubTotal.Equal(dec("479.50")))
		assert.False(t, inv.Date.IsZero())

		require.NoError(t, inv.SetStatus("PAID"))
		assert.Equal(t, PaymentStatusPaid, inv.Status)
		assert.Error(t, inv.SetStatus("refunded"))
	})
}

func TestQuotationStatus(t *testing.T) {
	s, err := ParseQuotationStatus("")
	require.NoError(t, err)
	assert.Equal(t, QuotationStatusDraft, s)

	s, err = ParseQuotationStatus("edited_delivery_note")
	require.NoError(t, err)
	assert.Equal(t, QuotationStatusEditedDeliveryNote, s)

	_, err = ParseManualQuotationStatus("expired")
	assert.ErrorIs(t, err, shared.ErrValidationFailed)
}

func TestQuotationCustomer(t *testing.T) {
	id := uuid.New()
	assert.NoError(t, CustomerRef(id).Validate())
	assert.NoError(t, CustomerInline(CustomerSnapshot{Name: "Walk-in"}).Validate())

	assert.Error(t, CustomerRef(uuid.Nil).Validate())
	assert.Error(t, CustomerInline(CustomerSnapshot{}).Validate())
	assert.Error(t, QuotationCustomer{Kind: CustomerKindReference, CustomerID: id, Snapshot: CustomerSnapshot{Name: "x"}}.Validate())
	assert.Error(t, QuotationCustomer{}.Validate())

	q, err := NewManualQuotation("MQUO-0001", ManualQuotationHeader{
		Customer: CustomerInline(CustomerSnapshot{Name: "Walk-in", Phone: "0400"}),
	}, sampleItems(), Charges{})
	require.NoError(t, err)
	assert.Equal(t, "Walk-in", q.CustomerName)
	assert.True(t, q.Totals.GST.Equal(dec("46")))
}

func TestPurchaseOrder(t *testing.T) {
	_, err := NewPurchaseOrder("PO-0001", PurchaseOrderHeader{}, nil, Charges{})
	assert.ErrorIs(t, err, shared.ErrValidationFailed)

	po, err := NewPurchaseOrder("PO-0001", PurchaseOrderHeader{VendorID: uuid.New()}, sampleItems(), Charges{Advance: dec("100"), TaxRate: dec("10")})
	require.NoError(t, err)
	assert.Equal(t, PurchaseStatusDraft, po.Status)
	assert.True(t, po.Totals.Balance.Equal(po.Totals.GrandTotal.Sub(dec("100"))))
}

func TestPrePurchase(t *testing.T) {
	p, err := NewPrePurchase(PrePurchaseInput{VendorName: "Acme", Amount: dec("1000"), Advance: dec("250")})
	require.NoError(t, err)
	assert.True(t, p.Balance.Equal(dec("750")))

	require.NoError(t, p.Update(PrePurchaseInput{VendorName: "Acme", Amount: dec("1000"), Advance: dec("1000")}))
	assert.True(t, p.Balance.IsZero())

	_, err = NewPrePurchase(PrePurchaseInput{Amount: dec("1")})
	assert.ErrorIs(t, err, shared.ErrValidationFailed)
}
