// Package trade implements the order-like document services: invoices,
// manual invoices, quotations, manual quotations, purchase orders and
// pre-purchases.
package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appinventory "github.com/tilesgalleria/backoffice/internal/application/inventory"
	"github.com/tilesgalleria/backoffice/internal/domain/catalog"
	"github.com/tilesgalleria/backoffice/internal/domain/inventory"
	"github.com/tilesgalleria/backoffice/internal/domain/partner"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"github.com/tilesgalleria/backoffice/internal/domain/trade"
	"go.uber.org/zap"
)

// Settings are the document defaults taken from configuration
type Settings struct {
	// DefaultTaxRate is used by document-mode totals when the request omits a rate
	DefaultTaxRate decimal.Decimal
	Coverage       *catalog.CoverageTable
}

// Renderer turns a named template and its data into a PDF
type Renderer interface {
	RenderPDF(ctx context.Context, template string, data any) ([]byte, error)
}

// Deps wires the document services
type Deps struct {
	Scope            TransactionScope
	Ledger           *appinventory.LedgerService
	Invoices         trade.InvoiceRepository
	ManualInvoices   trade.ManualInvoiceRepository
	Quotations       trade.QuotationRepository
	ManualQuotations trade.ManualQuotationRepository
	PurchaseOrders   trade.PurchaseOrderRepository
	Products         catalog.ProductRepository
	Customers        partner.CustomerRepository
	Vendors          partner.VendorRepository
	Events           shared.EventPublisher
	Renderer         Renderer
	Logger           *zap.Logger
	Settings         Settings
}

func (d Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

func (d Deps) taxRate(requested *decimal.Decimal) decimal.Decimal {
	if requested != nil {
		return *requested
	}
	if d.Settings.DefaultTaxRate.IsZero() {
		return catalog.DefaultTaxRate
	}
	return d.Settings.DefaultTaxRate
}

// buildItems loads the referenced products once and turns the requests into
// line items with product attributes copied in
func (d Deps) buildItems(ctx context.Context, reqs []ItemRequest, deriveBoxes bool) ([]trade.LineItem, error) {
	inputs := make([]trade.ItemInput, len(reqs))
	for i, r := range reqs {
		inputs[i] = r.toInput()
	}

	products := make(map[uuid.UUID]*catalog.Product)
	if ids := trade.ProductIDs(inputs); len(ids) > 0 {
		found, err := d.Products.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range found {
			products[found[i].ID] = &found[i]
		}
	}

	b := trade.ItemBuilder{
		Products:       products,
		Coverage:       d.Settings.Coverage,
		DefaultTaxRate: d.taxRate(nil),
		DeriveBoxes:    deriveBoxes,
	}
	return b.Build(inputs)
}

func (d Deps) customerName(ctx context.Context, id uuid.UUID, given string) (string, error) {
	c, err := d.Customers.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if given != "" {
		return given, nil
	}
	return c.Name, nil
}

func (d Deps) vendorName(ctx context.Context, id uuid.UUID) (string, error) {
	v, err := d.Vendors.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return v.Name, nil
}

func (d Deps) render(ctx context.Context, template string, data any) ([]byte, error) {
	if d.Renderer == nil {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "PDF rendering is disabled")
	}
	return d.Renderer.RenderPDF(ctx, template, data)
}

func newLifecycle[T any, P interface {
	*T
	document
}](d Deps, kind inventory.DocumentKind, resource string, reader trade.DocumentRepository[T], repoOf func(TransactionalRepositories) trade.DocumentRepository[T]) lifecycle[T, P] {
	events := d.Events
	if events == nil {
		events = shared.NoopPublisher{}
	}
	return lifecycle[T, P]{
		kind:     kind,
		resource: resource,
		scope:    d.Scope,
		reader:   reader,
		repoOf:   repoOf,
		ledger:   d.Ledger,
		events:   events,
		logger:   d.logger(),
	}
}
