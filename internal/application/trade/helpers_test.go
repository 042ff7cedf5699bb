package trade

import (
	"context"
	"sync"

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

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// memDocs is an in-memory DocumentRepository
type memDocs[T any] struct {
	mu    sync.Mutex
	docs  map[uuid.UUID]T
	idOf  func(*T) uuid.UUID
	numOf func(*T) string
}

func newMemDocs[T any](idOf func(*T) uuid.UUID, numOf func(*T) string) *memDocs[T] {
	return &memDocs[T]{docs: make(map[uuid.UUID]T), idOf: idOf, numOf: numOf}
}

func (m *memDocs[T]) FindByID(_ context.Context, id uuid.UUID) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &d, nil
}

func (m *memDocs[T]) FindForUpdate(ctx context.Context, id uuid.UUID) (*T, error) {
	return m.FindByID(ctx, id)
}

func (m *memDocs[T]) FindAll(_ context.Context, _ shared.Filter) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]T, 0, len(m.docs))
	for _, d := range m.docs {
		out = append(out, d)
	}
	return out, nil
}

func (m *memDocs[T]) Count(_ context.Context, _ shared.Filter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.docs)), nil
}

func (m *memDocs[T]) FindRecent(ctx context.Context, limit int) ([]T, error) {
	all, _ := m.FindAll(ctx, shared.Filter{})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *memDocs[T]) ExistsByNumber(_ context.Context, number string, excludeID *uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, d := range m.docs {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if m.numOf(&d) == number {
			return true, nil
		}
	}
	return false, nil
}

func (m *memDocs[T]) LastNumber(_ context.Context, prefix string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	nums := make([]string, 0, len(m.docs))
	for _, d := range m.docs {
		nums = append(nums, m.numOf(&d))
	}
	return trade.HighestNumber(prefix, nums), nil
}

// Save rejects a number already held by another document, like the unique index
func (m *memDocs[T]) Save(_ context.Context, doc *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, d := range m.docs {
		if id != m.idOf(doc) && m.numOf(&d) == m.numOf(doc) {
			return shared.ErrAlreadyExists
		}
	}
	m.docs[m.idOf(doc)] = *doc
	return nil
}

func (m *memDocs[T]) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.docs, id)
	return nil
}

type productStub struct {
	catalog.ProductRepository
	products map[uuid.UUID]catalog.Product
}

func (p *productStub) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, id := range ids {
		if prod, ok := p.products[id]; ok {
			out = append(out, prod)
		}
	}
	return out, nil
}

type customerStub struct {
	partner.CustomerRepository
	customers map[uuid.UUID]partner.Customer
}

func (c *customerStub) FindByID(_ context.Context, id uuid.UUID) (*partner.Customer, error) {
	cust, ok := c.customers[id]
	if !ok {
		return nil, shared.NotFound("customer")
	}
	return &cust, nil
}

type vendorStub struct {
	partner.VendorRepository
	vendors map[uuid.UUID]partner.Vendor
}

func (v *vendorStub) FindByID(_ context.Context, id uuid.UUID) (*partner.Vendor, error) {
	vend, ok := v.vendors[id]
	if !ok {
		return nil, shared.NotFound("vendor")
	}
	return &vend, nil
}

type fixture struct {
	deps     Deps
	stock    *appinventory.MemoryStock
	scope    *NoOpTransactionScope
	product  catalog.Product
	customer partner.Customer
	vendor   partner.Vendor
}

func newFixture(policy inventory.Policy) *fixture {
	product, _ := catalog.NewProduct(catalog.ProductInput{
		Name: "Carrara Matt", ProductType: "Tiles", Size: "600x600",
		Quantity: dec("423.36"), Boxes: dec("10"), Price: dec("45"),
	})
	customer, _ := partner.NewCustomer(partner.CustomerInput{Name: "Ana Builder", Email: "ana@example.com"})
	vendor, _ := partner.NewVendor(partner.VendorInput{Name: "Acme Tiles"})

	stock := appinventory.NewMemoryStock()
	stock.Set(product.ID, inventory.Stock{Quantity: product.Quantity, Boxes: product.Boxes})

	scope := &NoOpTransactionScope{
		InvoiceRepo: newMemDocs(func(d *trade.Invoice) uuid.UUID { return d.ID },
			func(d *trade.Invoice) string { return d.Number }),
		ManualInvoiceRepo: newMemDocs(func(d *trade.ManualInvoice) uuid.UUID { return d.ID },
			func(d *trade.ManualInvoice) string { return d.Number }),
		QuotationRepo: newMemDocs(func(d *trade.Quotation) uuid.UUID { return d.ID },
			func(d *trade.Quotation) string { return d.Number }),
		ManualQuotationRepo: newMemDocs(func(d *trade.ManualQuotation) uuid.UUID { return d.ID },
			func(d *trade.ManualQuotation) string { return d.Number }),
		PurchaseOrderRepo: newMemDocs(func(d *trade.PurchaseOrder) uuid.UUID { return d.ID },
			func(d *trade.PurchaseOrder) string { return d.Number }),
		StockRepo: stock,
	}

	coverage, _ := catalog.NewCoverageTable(dec("1.44"), map[string]decimal.Decimal{"tiles": dec("2.16")})

	return &fixture{
		deps: Deps{
			Scope:            scope,
			Ledger:           appinventory.NewLedgerService(policy, zap.NewNop(), nil),
			Invoices:         scope.InvoiceRepo,
			ManualInvoices:   scope.ManualInvoiceRepo,
			Quotations:       scope.QuotationRepo,
			ManualQuotations: scope.ManualQuotationRepo,
			PurchaseOrders:   scope.PurchaseOrderRepo,
			Products:         &productStub{products: map[uuid.UUID]catalog.Product{product.ID: *product}},
			Customers:        &customerStub{customers: map[uuid.UUID]partner.Customer{customer.ID: *customer}},
			Vendors:          &vendorStub{vendors: map[uuid.UUID]partner.Vendor{vendor.ID: *vendor}},
			Logger:           zap.NewNop(),
			Settings:         Settings{DefaultTaxRate: dec("10"), Coverage: coverage},
		},
		stock:    stock,
		scope:    scope,
		product:  *product,
		customer: *customer,
		vendor:   *vendor,
	}
}

func (f *fixture) quantity() decimal.Decimal {
	s, _ := f.stock.Get(f.product.ID)
	return s.Quantity
}

func (f *fixture) boxes() decimal.Decimal {
	s, _ := f.stock.Get(f.product.ID)
	return s.Boxes
}

func (f *fixture) item(qty string) ItemRequest {
	id := f.product.ID
	return ItemRequest{ProductID: &id, Quantity: dec(qty), Price: dec("45")}
}
