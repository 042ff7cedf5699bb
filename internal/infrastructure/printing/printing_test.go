package printing

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tilesgalleria/backoffice/internal/domain/trade"
	"go.uber.org/zap"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleItems() []trade.LineItem {
	return []trade.LineItem{
		{ProductName: "Carrara Matt", Texture: "matt", Size: "600x600", Quantity: dec("12.5"), Boxes: dec("9"), UnitPrice: dec("1200"), Total: dec("15000")},
		{Description: "Tile adhesive <20kg>", Quantity: dec("2"), UnitPrice: dec("35.5"), Total: dec("71")},
	}
}

func sampleInvoice() *trade.Invoice {
	items := sampleItems()
	return &trade.Invoice{
		Document: trade.Document{
			Number: "INV-1042",
			Date:   time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
			Items:  items,
			Totals: trade.ComputeTotals(items, trade.TaxModeDocument, trade.Charges{
				Discount: dec("71"), Advance: dec("500"), TaxRate: dec("10"),
			}),
			Notes: "Deliver after 2pm",
		},
		CustomerID:   uuid.New(),
		CustomerName: "Harbour Renovations",
		Shipping:     trade.ShippingInfo{Name: "Site office", AddressLine: "4 Quay St"},
		Status:       trade.PaymentStatusUnpaid,
	}
}

func newTemplates(t *testing.T) *Templates {
	t.Helper()
	tpl, err := NewTemplates(Company{Name: "Tiles Galleria", ABN: "12 345 678 901"})
	require.NoError(t, err)
	return tpl
}

func TestTemplates_Invoice(t *testing.T) {
	html, err := newTemplates(t).HTML("invoice", sampleInvoice())
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "<title>Tax Invoice INV-1042</title>")
	assert.Contains(t, out, "Tiles Galleria")
	assert.Contains(t, out, "ABN 12 345 678 901")
	assert.Contains(t, out, "Harbour Renovations")
	assert.Contains(t, out, "09 Mar 2026")
	assert.Contains(t, out, "15,000.00")
	assert.Contains(t, out, "Balance due")
	assert.Contains(t, out, "Tile adhesive &lt;20kg&gt;", "content is escaped")
	assert.Contains(t, out, "Deliver after 2pm")
}

func TestTemplates_EveryDocumentKind(t *testing.T) {
	tpl := newTemplates(t)
	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	doc := trade.Document{Number: "X-1", Date: due, Items: sampleItems()}

	docs := map[string]any{
		"manual_invoice": &trade.ManualInvoice{Document: doc, CustomerName: "Walk-in", DueDate: &due, Status: trade.PaymentStatusPaid},
		"quotation":      &trade.Quotation{Document: doc, CustomerName: "Harbour", Status: trade.QuotationStatusSent},
		"manual_quotation": &trade.ManualQuotation{
			Document:     doc,
			Customer:     trade.CustomerInline(trade.CustomerSnapshot{Name: "Ad hoc", Email: "a@b.co"}),
			CustomerName: "Ad hoc",
			Status:       trade.ManualQuotationStatusDraft,
		},
		"purchase_order": &trade.PurchaseOrder{Document: doc, VendorName: "Stone Imports", SuppInvoiceSerialNo: "SI-9", Status: trade.PurchaseStatusDraft},
	}
	for name, d := range docs {
		html, err := tpl.HTML(name, d)
		require.NoError(t, err, name)
		assert.Contains(t, string(html), "X-1", name)
	}

	_, err := tpl.HTML("delivery_docket", doc)
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "02 Jan 2026", formatDate(d))
	assert.Equal(t, "02 Jan 2026", formatDate(&d))
	assert.Empty(t, formatDate((*time.Time)(nil)))
	assert.Empty(t, formatDate(time.Time{}))
}

func TestChromeRenderer(t *testing.T) {
	path, err := exec.LookPath("chromium")
	if err != nil {
		path, err = exec.LookPath("google-chrome")
	}
	if err != nil {
		t.Skip("no headless browser available")
	}

	r := NewChromeRenderer(ChromeConfig{ExecPath: path, NoSandbox: true}, newTemplates(t), zap.NewNop())
	defer r.Close()

	pdf, err := r.RenderPDF(context.Background(), "invoice", sampleInvoice())
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))

	require.NoError(t, r.Close())
	_, err = r.RenderPDF(context.Background(), "invoice", sampleInvoice())
	assert.ErrorIs(t, err, ErrRendererClosed)
}
