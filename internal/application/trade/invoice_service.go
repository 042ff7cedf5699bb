package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/inventory"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"github.com/tilesgalleria/backoffice/internal/domain/trade"
)

// InvoiceRequest creates or replaces an auto invoice
type InvoiceRequest struct {
	InvoiceNo       string             `json:"invoice_no" binding:"max=50"`
	CustomerID      uuid.UUID          `json:"customer_id" binding:"required"`
	CustomerName    string             `json:"customer_name" binding:"max=200"`
	ShippingAddress trade.ShippingInfo `json:"shipping_address"`
	Status          string             `json:"status"`
	Date            *time.Time         `json:"date"`
	Notes           string             `json:"notes"`
	Items           []ItemRequest      `json:"items" binding:"dive"`
	ChargesRequest
}

// InvoiceResponse is an auto invoice as returned by the API
type InvoiceResponse struct {
	DocumentResponse
	CustomerID      uuid.UUID          `json:"customer_id"`
	CustomerName    string             `json:"customer_name"`
	ShippingAddress trade.ShippingInfo `json:"shipping_address"`
	Status          string             `json:"status"`
}

// ToInvoiceResponse converts the aggregate
func ToInvoiceResponse(inv *trade.Invoice) InvoiceResponse {
	return InvoiceResponse{
		DocumentResponse: toDocumentResponse(&inv.Document),
		CustomerID:       inv.CustomerID,
		CustomerName:     inv.CustomerName,
		ShippingAddress:  inv.Shipping,
		Status:           string(inv.Status),
	}
}

// InvoiceService handles auto invoices
type InvoiceService struct {
	deps Deps
	lc   lifecycle[trade.Invoice, *trade.Invoice]
}

// NewInvoiceService creates an InvoiceService
func NewInvoiceService(d Deps) *InvoiceService {
	return &InvoiceService{
		deps: d,
		lc: newLifecycle[trade.Invoice, *trade.Invoice](d, inventory.KindInvoice, "invoice", d.Invoices,
			func(r TransactionalRepositories) trade.InvoiceRepository { return r.Invoices() }),
	}
}

func (s *InvoiceService) header(ctx context.Context, req InvoiceRequest) (trade.InvoiceHeader, error) {
	name, err := s.deps.customerName(ctx, req.CustomerID, trimmed(req.CustomerName))
	if err != nil {
		return trade.InvoiceHeader{}, err
	}
	return trade.InvoiceHeader{
		CustomerID:   req.CustomerID,
		CustomerName: name,
		Shipping:     req.ShippingAddress,
		Status:       req.Status,
		Date:         dateOrZero(req.Date),
		Notes:        req.Notes,
	}, nil
}

// Create creates an invoice and deducts its items from stock
func (s *InvoiceService) Create(ctx context.Context, req InvoiceRequest) (*InvoiceResponse, error) {
	h, err := s.header(ctx, req)
	if err != nil {
		return nil, err
	}
	items, err := s.deps.buildItems(ctx, req.Items, false)
	if err != nil {
		return nil, err
	}
	charges := req.toCharges(s.deps.taxRate(nil))

	inv, report, err := s.lc.create(ctx, trimmed(req.InvoiceNo), func(number string) (*trade.Invoice, error) {
		return trade.NewInvoice(number, h, items, charges)
	})
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(inv)
	resp.Stock = ToStockReport(report)
	return &resp, nil
}

// Update replaces an invoice and reconciles stock against its previous items
func (s *InvoiceService) Update(ctx context.Context, id uuid.UUID, req InvoiceRequest) (*InvoiceResponse, error) {
	h, err := s.header(ctx, req)
	if err != nil {
		return nil, err
	}
	items, err := s.deps.buildItems(ctx, req.Items, false)
	if err != nil {
		return nil, err
	}
	charges := req.toCharges(s.deps.taxRate(nil))

	inv, report, err := s.lc.update(ctx, id, trimmed(req.InvoiceNo), func(inv *trade.Invoice) error {
		return inv.Update(h, items, charges)
	})
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(inv)
	resp.Stock = ToStockReport(report)
	return &resp, nil
}

// Delete removes an invoice and returns its items to stock
func (s *InvoiceService) Delete(ctx context.Context, id uuid.UUID) (*StockReport, error) {
	report, err := s.lc.remove(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToStockReport(report), nil
}

// UpdateStatus marks an invoice paid or unpaid
func (s *InvoiceService) UpdateStatus(ctx context.Context, id uuid.UUID, req StatusRequest) (*InvoiceResponse, error) {
	inv, err := s.lc.setStatus(ctx, id, req.Status)
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// GetByID returns one invoice
func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.lc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// List returns a page of invoices
func (s *InvoiceService) List(ctx context.Context, filter shared.Filter) ([]InvoiceResponse, int64, error) {
	docs, total, err := s.lc.list(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return mapList(docs, ToInvoiceResponse), total, nil
}

// PDF renders an invoice
func (s *InvoiceService) PDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	inv, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.deps.render(ctx, "invoice", inv)
}
