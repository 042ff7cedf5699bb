package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/inventory"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"github.com/tilesgalleria/backoffice/internal/domain/trade"
)

// ManualInvoiceRequest creates or replaces a manual invoice
type ManualInvoiceRequest struct {
	InvoiceNo     string        `json:"invoice_no" binding:"max=50"`
	CustomerName  string        `json:"customer_name" binding:"required,max=200"`
	BillToAddress string        `json:"bill_to_address"`
	ShipToAddress string        `json:"ship_to_address"`
	DueDate       *time.Time    `json:"due_date"`
	Status        string        `json:"status"`
	Date          *time.Time    `json:"date"`
	Notes         string        `json:"notes"`
	Items         []ItemRequest `json:"items" binding:"dive"`
	ChargesRequest
}

// ManualInvoiceResponse is a manual invoice as returned by the API
type ManualInvoiceResponse struct {
	DocumentResponse
	CustomerName  string     `json:"customer_name"`
	BillToAddress string     `json:"bill_to_address,omitempty"`
	ShipToAddress string     `json:"ship_to_address,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	Status        string     `json:"status"`
}

func ToManualInvoiceResponse(inv *trade.ManualInvoice) ManualInvoiceResponse {
	return ManualInvoiceResponse{
		DocumentResponse: toDocumentResponse(&inv.Document),
		CustomerName:     inv.CustomerName,
		BillToAddress:    inv.BillToAddress,
		ShipToAddress:    inv.ShipToAddress,
		DueDate:          inv.DueDate,
		Status:           string(inv.Status),
	}
}

// ManualInvoiceService handles manual invoices
type ManualInvoiceService struct {
	deps Deps
	lc   lifecycle[trade.ManualInvoice, *trade.ManualInvoice]
}

func NewManualInvoiceService(d Deps) *ManualInvoiceService {
	return &ManualInvoiceService{
		deps: d,
		lc: newLifecycle[trade.ManualInvoice, *trade.ManualInvoice](d, inventory.KindManualInvoice, "manual_invoice", d.ManualInvoices,
			func(r TransactionalRepositories) trade.ManualInvoiceRepository { return r.ManualInvoices() }),
	}
}

func (s *ManualInvoiceService) prepare(ctx context.Context, req ManualInvoiceRequest) (trade.ManualInvoiceHeader, []trade.LineItem, trade.Charges, error) {
	h := trade.ManualInvoiceHeader{
		CustomerName:  req.CustomerName,
		BillToAddress: req.BillToAddress,
		ShipToAddress: req.ShipToAddress,
		DueDate:       req.DueDate,
		Status:        req.Status,
		Date:          dateOrZero(req.Date),
		Notes:         req.Notes,
	}
	items, err := s.deps.buildItems(ctx, req.Items, false)
	if err != nil {
		return h, nil, trade.Charges{}, err
	}
	return h, items, req.toCharges(s.deps.taxRate(nil)), nil
}

func (s *ManualInvoiceService) Create(ctx context.Context, req ManualInvoiceRequest) (*ManualInvoiceResponse, error) {
	h, items, charges, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	inv, report, err := s.lc.create(ctx, trimmed(req.InvoiceNo), func(number string) (*trade.ManualInvoice, error) {
		return trade.NewManualInvoice(number, h, items, charges)
	})
	if err != nil {
		return nil, err
	}
	resp := ToManualInvoiceResponse(inv)
	resp.Stock = ToStockReport(report)
	return &resp, nil
}

func (s *ManualInvoiceService) Update(ctx context.Context, id uuid.UUID, req ManualInvoiceRequest) (*ManualInvoiceResponse, error) {
	h, items, charges, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	inv, report, err := s.lc.update(ctx, id, trimmed(req.InvoiceNo), func(inv *trade.ManualInvoice) error {
		return inv.Update(h, items, charges)
	})
	if err != nil {
		return nil, err
	}
	resp := ToManualInvoiceResponse(inv)
	resp.Stock = ToStockReport(report)
	return &resp, nil
}

func (s *ManualInvoiceService) Delete(ctx context.Context, id uuid.UUID) (*StockReport, error) {
	report, err := s.lc.remove(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToStockReport(report), nil
}

func (s *ManualInvoiceService) UpdateStatus(ctx context.Context, id uuid.UUID, req StatusRequest) (*ManualInvoiceResponse, error) {
	inv, err := s.lc.setStatus(ctx, id, req.Status)
	if err != nil {
		return nil, err
	}
	resp := ToManualInvoiceResponse(inv)
	return &resp, nil
}

func (s *ManualInvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*ManualInvoiceResponse, error) {
	inv, err := s.lc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToManualInvoiceResponse(inv)
	return &resp, nil
}

func (s *ManualInvoiceService) List(ctx context.Context, filter shared.Filter) ([]ManualInvoiceResponse, int64, error) {
	docs, total, err := s.lc.list(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return mapList(docs, ToManualInvoiceResponse), total, nil
}

func (s *ManualInvoiceService) PDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	inv, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.deps.render(ctx, "manual_invoice", inv)
}
