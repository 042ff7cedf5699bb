package persistence

import (
	"context"

	apptrade "github.com/tilesgalleria/backoffice/internal/application/trade"
	"github.com/tilesgalleria/backoffice/internal/domain/inventory"
	"github.com/tilesgalleria/backoffice/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// Document writes and stock adjustments made inside Execute commit or roll
// back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txRepositories{tx: tx})
	})
}

// txRepositories builds repositories bound to one transaction
type txRepositories struct {
	tx *gorm.DB
}

func (r *txRepositories) Invoices() trade.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

func (r *txRepositories) ManualInvoices() trade.ManualInvoiceRepository {
	return NewGormManualInvoiceRepository(r.tx)
}

func (r *txRepositories) Quotations() trade.QuotationRepository {
	return NewGormQuotationRepository(r.tx)
}

func (r *txRepositories) ManualQuotations() trade.ManualQuotationRepository {
	return NewGormManualQuotationRepository(r.tx)
}

func (r *txRepositories) PurchaseOrders() trade.PurchaseOrderRepository {
	return NewGormPurchaseOrderRepository(r.tx)
}

func (r *txRepositories) Stock() inventory.StockRepository {
	return NewGormStockRepository(r.tx)
}

var _ apptrade.TransactionScope = (*GormTransactionScope)(nil)
