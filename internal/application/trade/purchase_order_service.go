package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/inventory"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"github.com/tilesgalleria/backoffice/internal/domain/trade"
)

// PurchaseOrderRequest creates or replaces a purchase order. Item price is the
// purchase price; selling_price is recorded for reference.
type PurchaseOrderRequest struct {
	PurchaseNo          string        `json:"purchase_no" binding:"max=50"`
	VendorID            uuid.UUID     `json:"vendor_id" binding:"required"`
	ProductType         string        `json:"product_type" binding:"max=100"`
	SuppInvoiceSerialNo string        `json:"supp_invoice_serial_no" binding:"max=100"`
	AttachFile          string        `json:"attach_file"`
	Status              string        `json:"status"`
	Date                *time.Time    `json:"date"`
	Notes               string        `json:"notes"`
	Items               []ItemRequest `json:"items" binding:"dive"`
	ChargesRequest
}

// PurchaseOrderResponse is a purchase order as returned by the API
type PurchaseOrderResponse struct {
	DocumentResponse
	VendorID            uuid.UUID `json:"vendor_id"`
	VendorName          string    `json:"vendor_name"`
	ProductType         string    `json:"product_type,omitempty"`
	SuppInvoiceSerialNo string    `json:"supp_invoice_serial_no,omitempty"`
	AttachFile          string    `json:"attach_file,omitempty"`
	Status              string    `json:"status"`
}

func ToPurchaseOrderResponse(po *trade.PurchaseOrder) PurchaseOrderResponse {
	return PurchaseOrderResponse{
		DocumentResponse:    toDocumentResponse(&po.Document),
		VendorID:            po.VendorID,
		VendorName:          po.VendorName,
		ProductType:         po.ProductType,
		SuppInvoiceSerialNo: po.SuppInvoiceSerialNo,
		AttachFile:          po.AttachFile,
		Status:              string(po.Status),
	}
}

// PurchaseOrderService handles purchase orders. They move both quantity and
// boxes, in the direction the stock policy configures.
type PurchaseOrderService struct {
	deps Deps
	lc   lifecycle[trade.PurchaseOrder, *trade.PurchaseOrder]
}

func NewPurchaseOrderService(d Deps) *PurchaseOrderService {
	return &PurchaseOrderService{
		deps: d,
		lc: newLifecycle[trade.PurchaseOrder, *trade.PurchaseOrder](d, inventory.KindPurchaseOrder, "purchase_order", d.PurchaseOrders,
			func(r TransactionalRepositories) trade.PurchaseOrderRepository { return r.PurchaseOrders() }),
	}
}

func (s *PurchaseOrderService) prepare(ctx context.Context, req PurchaseOrderRequest) (trade.PurchaseOrderHeader, []trade.LineItem, trade.Charges, error) {
	vendor, err := s.deps.vendorName(ctx, req.VendorID)
	if err != nil {
		return trade.PurchaseOrderHeader{}, nil, trade.Charges{}, err
	}
	h := trade.PurchaseOrderHeader{
		VendorID:            req.VendorID,
		VendorName:          vendor,
		ProductType:         req.ProductType,
		SuppInvoiceSerialNo: req.SuppInvoiceSerialNo,
		AttachFile:          req.AttachFile,
		Status:              req.Status,
		Date:                dateOrZero(req.Date),
		Notes:               req.Notes,
	}
	items, err := s.deps.buildItems(ctx, req.Items, true)
	if err != nil {
		return h, nil, trade.Charges{}, err
	}
	return h, items, req.toCharges(s.deps.taxRate(nil)), nil
}

func (s *PurchaseOrderService) Create(ctx context.Context, req PurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	h, items, charges, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	po, report, err := s.lc.create(ctx, trimmed(req.PurchaseNo), func(number string) (*trade.PurchaseOrder, error) {
		return trade.NewPurchaseOrder(number, h, items, charges)
	})
	if err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(po)
	resp.Stock = ToStockReport(report)
	return &resp, nil
}

func (s *PurchaseOrderService) Update(ctx context.Context, id uuid.UUID, req PurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	h, items, charges, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	po, report, err := s.lc.update(ctx, id, trimmed(req.PurchaseNo), func(po *trade.PurchaseOrder) error {
		return po.Update(h, items, charges)
	})
	if err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(po)
	resp.Stock = ToStockReport(report)
	return &resp, nil
}

func (s *PurchaseOrderService) Delete(ctx context.Context, id uuid.UUID) (*StockReport, error) {
	report, err := s.lc.remove(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToStockReport(report), nil
}

func (s *PurchaseOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, req StatusRequest) (*PurchaseOrderResponse, error) {
	po, err := s.lc.setStatus(ctx, id, req.Status)
	if err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(po)
	return &resp, nil
}

func (s *PurchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	po, err := s.lc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(po)
	return &resp, nil
}

func (s *PurchaseOrderService) List(ctx context.Context, filter shared.Filter) ([]PurchaseOrderResponse, int64, error) {
	docs, total, err := s.lc.list(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return mapList(docs, ToPurchaseOrderResponse), total, nil
}

func (s *PurchaseOrderService) PDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	po, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.deps.render(ctx, "purchase_order", po)
}
