package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

// DocumentRepository persists one kind of order-like document together with its items
type DocumentRepository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	// FindForUpdate loads a document and holds its row lock until the
	// surrounding transaction ends, so concurrent mutations of one document
	// reconcile stock against the items the previous writer stored
	FindForUpdate(ctx context.Context, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]T, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	FindRecent(ctx context.Context, limit int) ([]T, error)
	ExistsByNumber(ctx context.Context, number string, excludeID *uuid.UUID) (bool, error)
	// LastNumber returns the highest number carrying prefix, or "" when none exists
	LastNumber(ctx context.Context, prefix string) (string, error)
	Save(ctx context.Context, doc *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type InvoiceRepository = DocumentRepository[Invoice]
type ManualInvoiceRepository = DocumentRepository[ManualInvoice]
type QuotationRepository = DocumentRepository[Quotation]
type ManualQuotationRepository = DocumentRepository[ManualQuotation]
type PurchaseOrderRepository = DocumentRepository[PurchaseOrder]

// PrePurchaseRepository persists pre-purchases
type PrePurchaseRepository interface {
	shared.Repository[PrePurchase]
}
