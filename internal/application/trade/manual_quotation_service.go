package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/inventory"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"github.com/tilesgalleria/backoffice/internal/domain/trade"
)

// QuotationCustomerRequest is the tagged customer of a manual quotation.
// Kind "reference" needs customer_id; kind "snapshot" needs name.
type QuotationCustomerRequest struct {
	Kind       string     `json:"kind" binding:"required,oneof=reference snapshot"`
	CustomerID *uuid.UUID `json:"customer_id"`
	Name       string     `json:"name" binding:"max=200"`
	Email      string     `json:"email" binding:"omitempty,email"`
	Phone      string     `json:"phone"`
	Address    string     `json:"address"`
}

func (r QuotationCustomerRequest) toDomain() trade.QuotationCustomer {
	c := trade.QuotationCustomer{Kind: trade.CustomerKind(r.Kind)}
	if r.CustomerID != nil {
		c.CustomerID = *r.CustomerID
	}
	c.Snapshot = trade.CustomerSnapshot{
		Name:    trimmed(r.Name),
		Email:   trimmed(r.Email),
		Phone:   trimmed(r.Phone),
		Address: trimmed(r.Address),
	}
	return c
}

// ManualQuotationRequest creates or replaces a manual quotation
type ManualQuotationRequest struct {
	QuoNo    string                   `json:"quo_no" binding:"max=50"`
	Customer QuotationCustomerRequest `json:"customer"`
	Status   string                   `json:"status"`
	Date     *time.Time               `json:"date"`
	Notes    string                   `json:"notes"`
	Items    []ItemRequest            `json:"items" binding:"dive"`
	ChargesRequest
}

// QuotationCustomerResponse renders the tagged customer
type QuotationCustomerResponse struct {
	Kind       string                  `json:"kind"`
	CustomerID *uuid.UUID              `json:"customer_id,omitempty"`
	Snapshot   *trade.CustomerSnapshot `json:"snapshot,omitempty"`
}

// ManualQuotationResponse is a manual quotation as returned by the API
type ManualQuotationResponse struct {
	DocumentResponse
	Customer     QuotationCustomerResponse `json:"customer"`
	CustomerName string                    `json:"customer_name"`
	Status       string                    `json:"status"`
}

func ToManualQuotationResponse(q *trade.ManualQuotation) ManualQuotationResponse {
	c := QuotationCustomerResponse{Kind: string(q.Customer.Kind)}
	if q.Customer.Kind == trade.CustomerKindReference {
		id := q.Customer.CustomerID
		c.CustomerID = &id
	} else {
		snap := q.Customer.Snapshot
		c.Snapshot = &snap
	}
	return ManualQuotationResponse{
		DocumentResponse: toDocumentResponse(&q.Document),
		Customer:         c,
		CustomerName:     q.CustomerName,
		Status:           string(q.Status),
	}
}

// ManualQuotationService handles manual quotations
type ManualQuotationService struct {
	deps Deps
	lc   lifecycle[trade.ManualQuotation, *trade.ManualQuotation]
}

func NewManualQuotationService(d Deps) *ManualQuotationService {
	return &ManualQuotationService{
		deps: d,
		lc: newLifecycle[trade.ManualQuotation, *trade.ManualQuotation](d, inventory.KindManualQuotation, "manual_quotation", d.ManualQuotations,
			func(r TransactionalRepositories) trade.ManualQuotationRepository { return r.ManualQuotations() }),
	}
}

func (s *ManualQuotationService) prepare(ctx context.Context, req ManualQuotationRequest) (trade.ManualQuotationHeader, []trade.LineItem, trade.Charges, error) {
	customer := req.Customer.toDomain()
	if err := customer.Validate(); err != nil {
		return trade.ManualQuotationHeader{}, nil, trade.Charges{}, err
	}
	var name string
	if customer.Kind == trade.CustomerKindReference {
		var err error
		if name, err = s.deps.customerName(ctx, customer.CustomerID, ""); err != nil {
			return trade.ManualQuotationHeader{}, nil, trade.Charges{}, err
		}
	}
	h := trade.ManualQuotationHeader{
		Customer:     customer,
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

func (s *ManualQuotationService) Create(ctx context.Context, req ManualQuotationRequest) (*ManualQuotationResponse, error) {
	h, items, charges, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	q, report, err := s.lc.create(ctx, trimmed(req.QuoNo), func(number string) (*trade.ManualQuotation, error) {
		return trade.NewManualQuotation(number, h, items, charges)
	})
	if err != nil {
		return nil, err
	}
	resp := ToManualQuotationResponse(q)
	resp.Stock = ToStockReport(report)
	return &resp, nil
}

func (s *ManualQuotationService) Update(ctx context.Context, id uuid.UUID, req ManualQuotationRequest) (*ManualQuotationResponse, error) {
	h, items, charges, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	q, report, err := s.lc.update(ctx, id, trimmed(req.QuoNo), func(q *trade.ManualQuotation) error {
		return q.Update(h, items, charges)
	})
	if err != nil {
		return nil, err
	}
	resp := ToManualQuotationResponse(q)
	resp.Stock = ToStockReport(report)
	return &resp, nil
}

func (s *ManualQuotationService) Delete(ctx context.Context, id uuid.UUID) (*StockReport, error) {
	report, err := s.lc.remove(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToStockReport(report), nil
}

func (s *ManualQuotationService) UpdateStatus(ctx context.Context, id uuid.UUID, req StatusRequest) (*ManualQuotationResponse, error) {
	q, err := s.lc.setStatus(ctx, id, req.Status)
	if err != nil {
		return nil, err
	}
	resp := ToManualQuotationResponse(q)
	return &resp, nil
}

func (s *ManualQuotationService) GetByID(ctx context.Context, id uuid.UUID) (*ManualQuotationResponse, error) {
	q, err := s.lc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToManualQuotationResponse(q)
	return &resp, nil
}

func (s *ManualQuotationService) List(ctx context.Context, filter shared.Filter) ([]ManualQuotationResponse, int64, error) {
	docs, total, err := s.lc.list(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return mapList(docs, ToManualQuotationResponse), total, nil
}

func (s *ManualQuotationService) PDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	q, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.deps.render(ctx, "manual_quotation", q)
}
