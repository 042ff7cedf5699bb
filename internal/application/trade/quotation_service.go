package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/inventory"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"github.com/tilesgalleria/backoffice/internal/domain/trade"
)

// QuotationRequest creates or replaces an auto quotation
type QuotationRequest struct {
	QuoNo        string        `json:"quo_no" binding:"max=50"`
	CustomerID   uuid.UUID     `json:"customer_id" binding:"required"`
	CustomerName string        `json:"customer_name" binding:"max=200"`
	Status       string        `json:"status"`
	Date         *time.Time    `json:"date"`
	Notes        string        `json:"notes"`
	Items        []ItemRequest `json:"items" binding:"dive"`
	ChargesRequest
}

// QuotationResponse is an auto quotation as returned by the API
type QuotationResponse struct {
	DocumentResponse
	CustomerID   uuid.UUID `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Status       string    `json:"status"`
}

func ToQuotationResponse(q *trade.Quotation) QuotationResponse {
	return QuotationResponse{
		DocumentResponse: toDocumentResponse(&q.Document),
		CustomerID:       q.CustomerID,
		CustomerName:     q.CustomerName,
		Status:           string(q.Status),
	}
}

// QuotationService handles auto quotations. A quotation deducts stock when it
// is created, whatever its status.
type QuotationService struct {
	deps Deps
	lc   lifecycle[trade.Quotation, *trade.Quotation]
}

func NewQuotationService(d Deps) *QuotationService {
	return &QuotationService{
		deps: d,
		lc: newLifecycle[trade.Quotation, *trade.Quotation](d, inventory.KindQuotation, "quotation", d.Quotations,
			func(r TransactionalRepositories) trade.QuotationRepository { return r.Quotations() }),
	}
}

func (s *QuotationService) prepare(ctx context.Context, req QuotationRequest) (trade.QuotationHeader, []trade.LineItem, trade.Charges, error) {
	name, err := s.deps.customerName(ctx, req.CustomerID, trimmed(req.CustomerName))
	if err != nil {
		return trade.QuotationHeader{}, nil, trade.Charges{}, err
	}
	h := trade.QuotationHeader{
		CustomerID:   req.CustomerID,
		CustomerName: name,
		Status:       req.Status,
		Date:         dateOrZero(req.Date),
		Notes:        req.Notes,
	}
	items, err := s.deps.buildItems(ctx, req.Items, true)
	if err != nil {
		return h, nil, trade.Charges{}, err
	}
	return h, items, req.toCharges(s.deps.taxRate(nil)), nil
}

func (s *QuotationService) Create(ctx context.Context, req QuotationRequest) (*QuotationResponse, error) {
	h, items, charges, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	q, report, err := s.lc.create(ctx, trimmed(req.QuoNo), func(number string) (*trade.Quotation, error) {
		return trade.NewQuotation(number, h, items, charges)
	})
	if err != nil {
		return nil, err
	}
	resp := ToQuotationResponse(q)
	resp.Stock = ToStockReport(report)
	return &resp, nil
}

func (s *QuotationService) Update(ctx context.Context, id uuid.UUID, req QuotationRequest) (*QuotationResponse, error) {
	h, items, charges, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	q, report, err := s.lc.update(ctx, id, trimmed(req.QuoNo), func(q *trade.Quotation) error {
		return q.Update(h, items, charges)
	})
	if err != nil {
		return nil, err
	}
	resp := ToQuotationResponse(q)
	resp.Stock = ToStockReport(report)
	return &resp, nil
}

func (s *QuotationService) Delete(ctx context.Context, id uuid.UUID) (*StockReport, error) {
	report, err := s.lc.remove(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToStockReport(report), nil
}

// UpdateStatus moves the quotation through its lifecycle without touching stock
func (s *QuotationService) UpdateStatus(ctx context.Context, id uuid.UUID, req StatusRequest) (*QuotationResponse, error) {
	q, err := s.lc.setStatus(ctx, id, req.Status)
	if err != nil {
		return nil, err
	}
	resp := ToQuotationResponse(q)
	return &resp, nil
}

func (s *QuotationService) GetByID(ctx context.Context, id uuid.UUID) (*QuotationResponse, error) {
	q, err := s.lc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToQuotationResponse(q)
	return &resp, nil
}

func (s *QuotationService) List(ctx context.Context, filter shared.Filter) ([]QuotationResponse, int64, error) {
	docs, total, err := s.lc.list(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return mapList(docs, ToQuotationResponse), total, nil
}

func (s *QuotationService) PDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	q, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.deps.render(ctx, "quotation", q)
}
