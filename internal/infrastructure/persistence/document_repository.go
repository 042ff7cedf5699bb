package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"github.com/tilesgalleria/backoffice/internal/domain/trade"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// documentModel constrains PM to be the pointer type of a document table model
type documentModel[T any, M any] interface {
	*M
	models.DocumentModel[T]
}

// GormDocumentRepository persists one kind of order-like document. The header
// lives in the kind's own table and the lines in document_items.
type GormDocumentRepository[T any, M any, PM documentModel[T, M]] struct {
	db         *gorm.DB
	resource   string
	searchCols []string
	filterCols []string
}

func newDocumentRepository[T any, M any, PM documentModel[T, M]](db *gorm.DB, resource string, searchCols, filterCols []string) *GormDocumentRepository[T, M, PM] {
	return &GormDocumentRepository[T, M, PM]{
		db:         db,
		resource:   resource,
		searchCols: searchCols,
		filterCols: filterCols,
	}
}

// NewGormInvoiceRepository creates the invoice repository
func NewGormInvoiceRepository(db *gorm.DB) *GormDocumentRepository[trade.Invoice, models.InvoiceModel, *models.InvoiceModel] {
	return newDocumentRepository[trade.Invoice, models.InvoiceModel](db, "invoice",
		[]string{"number", "customer_name", "shipping_name"}, []string{"status", "customer_id"})
}

// NewGormManualInvoiceRepository creates the manual invoice repository
func NewGormManualInvoiceRepository(db *gorm.DB) *GormDocumentRepository[trade.ManualInvoice, models.ManualInvoiceModel, *models.ManualInvoiceModel] {
	return newDocumentRepository[trade.ManualInvoice, models.ManualInvoiceModel](db, "manual_invoice",
		[]string{"number", "customer_name"}, []string{"status"})
}

// NewGormQuotationRepository creates the quotation repository
func NewGormQuotationRepository(db *gorm.DB) *GormDocumentRepository[trade.Quotation, models.QuotationModel, *models.QuotationModel] {
	return newDocumentRepository[trade.Quotation, models.QuotationModel](db, "quotation",
		[]string{"number", "customer_name"}, []string{"status", "customer_id"})
}

// NewGormManualQuotationRepository creates the manual quotation repository
func NewGormManualQuotationRepository(db *gorm.DB) *GormDocumentRepository[trade.ManualQuotation, models.ManualQuotationModel, *models.ManualQuotationModel] {
	return newDocumentRepository[trade.ManualQuotation, models.ManualQuotationModel](db, "manual_quotation",
		[]string{"number", "customer_name"}, []string{"status", "customer_id"})
}

// NewGormPurchaseOrderRepository creates the purchase order repository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormDocumentRepository[trade.PurchaseOrder, models.PurchaseOrderModel, *models.PurchaseOrderModel] {
	return newDocumentRepository[trade.PurchaseOrder, models.PurchaseOrderModel](db, "purchase_order",
		[]string{"number", "vendor_name", "supp_invoice_serial_no"}, []string{"status", "vendor_id", "product_type"})
}

func (r *GormDocumentRepository[T, M, PM]) model() PM {
	return PM(new(M))
}

// FindByID loads a document and its items
func (r *GormDocumentRepository[T, M, PM]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	return r.find(ctx, id, false)
}

// FindForUpdate loads a document with its header row locked. SQLite has no
// row locks and already serializes writers, so the clause is postgres only.
func (r *GormDocumentRepository[T, M, PM]) FindForUpdate(ctx context.Context, id uuid.UUID) (*T, error) {
	return r.find(ctx, id, true)
}

func (r *GormDocumentRepository[T, M, PM]) find(ctx context.Context, id uuid.UUID, lock bool) (*T, error) {
	db := r.db.WithContext(ctx)
	m := r.model()
	read := db
	if lock && db.Dialector.Name() == "postgres" {
		read = read.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}
	if err := read.First(m, "id = ?", id).Error; err != nil {
		return nil, translate("find", r.resource, err)
	}
	items, err := r.loadItems(db, m.OwnerType(), []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	return m.ToDomain(items[id]), nil
}

// FindAll returns a page of documents with their items
func (r *GormDocumentRepository[T, M, PM]) FindAll(ctx context.Context, filter shared.Filter) ([]T, error) {
	db := r.db.WithContext(ctx)
	var rows []M
	query := paginate(r.applyFilter(db.Model(r.model()), filter), filter, DocumentSortFields)
	if err := query.Find(&rows).Error; err != nil {
		return nil, translate("list", r.resource, err)
	}
	return r.hydrate(db, rows)
}

// Count counts documents matching the filter
func (r *GormDocumentRepository[T, M, PM]) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(r.model()), filter).Count(&count).Error; err != nil {
		return 0, translate("count", r.resource, err)
	}
	return count, nil
}

// FindRecent returns the newest documents first
func (r *GormDocumentRepository[T, M, PM]) FindRecent(ctx context.Context, limit int) ([]T, error) {
	db := r.db.WithContext(ctx)
	var rows []M
	if err := db.Model(r.model()).Order("created_at DESC").Limit(recentLimit(limit)).Find(&rows).Error; err != nil {
		return nil, translate("list", r.resource, err)
	}
	return r.hydrate(db, rows)
}

// ExistsByNumber reports whether another document already carries number
func (r *GormDocumentRepository[T, M, PM]) ExistsByNumber(ctx context.Context, number string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(r.model()).Where("number = ?", number)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, translate("find", r.resource, err)
	}
	return count > 0, nil
}

// LastNumber returns the highest PREFIX-NNNN number. LIKE only narrows the
// candidates; custom numbers such as INV-2024-07 are dropped by HighestNumber.
func (r *GormDocumentRepository[T, M, PM]) LastNumber(ctx context.Context, prefix string) (string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).Model(r.model()).
		Where("number LIKE ?", escapeLike(prefix)+"-%").
		Pluck("number", &numbers).Error
	if err != nil {
		return "", translate("find", r.resource, err)
	}
	return trade.HighestNumber(prefix, numbers), nil
}

// Save writes the header and replaces the item rows in one transaction.
// When called inside a TransactionScope the outer transaction is reused.
func (r *GormDocumentRepository[T, M, PM]) Save(ctx context.Context, doc *T) error {
	m := r.model()
	m.FromDomain(doc)
	h := m.Header()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(m).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_type = ? AND owner_id = ?", m.OwnerType(), h.ID).
			Delete(&models.DocumentItemModel{}).Error; err != nil {
			return err
		}
		if len(h.Lines) == 0 {
			return nil
		}
		return tx.Create(&h.Lines).Error
	})
	return translate("save", r.resource, err)
}

// Delete removes a document and its items
func (r *GormDocumentRepository[T, M, PM]) Delete(ctx context.Context, id uuid.UUID) error {
	m := r.model()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_type = ? AND owner_id = ?", m.OwnerType(), id).
			Delete(&models.DocumentItemModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(m, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errNoRows
		}
		return nil
	})
	if errors.Is(err, errNoRows) {
		return shared.NotFound(r.resource)
	}
	return translate("delete", r.resource, err)
}

var errNoRows = errors.New("no rows affected")

func (r *GormDocumentRepository[T, M, PM]) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = search(query, filter.Search, r.searchCols...)
	return equals(query, filter.Filters, r.filterCols...)
}

func (r *GormDocumentRepository[T, M, PM]) hydrate(db *gorm.DB, rows []M) ([]T, error) {
	out := make([]T, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}
	ids := make([]uuid.UUID, len(rows))
	for i := range rows {
		ids[i] = PM(&rows[i]).Header().ID
	}
	items, err := r.loadItems(db, r.model().OwnerType(), ids)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		pm := PM(&rows[i])
		out = append(out, *pm.ToDomain(items[pm.Header().ID]))
	}
	return out, nil
}

func (r *GormDocumentRepository[T, M, PM]) loadItems(db *gorm.DB, ownerType string, ids []uuid.UUID) (map[uuid.UUID][]models.DocumentItemModel, error) {
	var rows []models.DocumentItemModel
	err := db.Where("owner_type = ? AND owner_id IN ?", ownerType, ids).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translate("find", r.resource+" items", err)
	}
	byOwner := make(map[uuid.UUID][]models.DocumentItemModel, len(ids))
	for _, it := range rows {
		byOwner[it.OwnerID] = append(byOwner[it.OwnerID], it)
	}
	return byOwner, nil
}

var (
	_ trade.InvoiceRepository         = NewGormInvoiceRepository(nil)
	_ trade.ManualInvoiceRepository   = NewGormManualInvoiceRepository(nil)
	_ trade.QuotationRepository       = NewGormQuotationRepository(nil)
	_ trade.ManualQuotationRepository = NewGormManualQuotationRepository(nil)
	_ trade.PurchaseOrderRepository   = NewGormPurchaseOrderRepository(nil)
)
