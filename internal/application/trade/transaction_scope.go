package trade

import (
	"context"

	"github.com/tilesgalleria/backoffice/internal/domain/inventory"
	"github.com/tilesgalleria/backoffice/internal/domain/trade"
)

// TransactionScope runs document persistence and stock adjustment atomically.
// If fn returns an error every write made through repos is rolled back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories bound to one transaction
type TransactionalRepositories interface {
	Invoices() trade.InvoiceRepository
	ManualInvoices() trade.ManualInvoiceRepository
	Quotations() trade.QuotationRepository
	ManualQuotations() trade.ManualQuotationRepository
	PurchaseOrders() trade.PurchaseOrderRepository
	// Stock applies atomic increments to product counters
	Stock() inventory.StockRepository
}

// NoOpTransactionScope runs fn directly against fixed repositories.
// It is used by tests and by callers that do not need atomicity.
type NoOpTransactionScope struct {
	InvoiceRepo         trade.InvoiceRepository
	ManualInvoiceRepo   trade.ManualInvoiceRepository
	QuotationRepo       trade.QuotationRepository
	ManualQuotationRepo trade.ManualQuotationRepository
	PurchaseOrderRepo   trade.PurchaseOrderRepository
	StockRepo           inventory.StockRepository
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) Invoices() trade.InvoiceRepository { return s.InvoiceRepo }
func (s *NoOpTransactionScope) ManualInvoices() trade.ManualInvoiceRepository {
	return s.ManualInvoiceRepo
}
func (s *NoOpTransactionScope) Quotations() trade.QuotationRepository { return s.QuotationRepo }
func (s *NoOpTransactionScope) ManualQuotations() trade.ManualQuotationRepository {
	return s.ManualQuotationRepo
}
func (s *NoOpTransactionScope) PurchaseOrders() trade.PurchaseOrderRepository {
	return s.PurchaseOrderRepo
}
func (s *NoOpTransactionScope) Stock() inventory.StockRepository { return s.StockRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
