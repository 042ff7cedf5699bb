package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"github.com/tilesgalleria/backoffice/internal/domain/trade"
	"go.uber.org/zap"
)

// ResourcePrePurchase names pre-purchases on EntityChangedEvent
const ResourcePrePurchase = "pre_purchase"

// PrePurchaseRequest creates or replaces a pre-purchase
type PrePurchaseRequest struct {
	VendorName  string          `json:"vendor_name" binding:"required,max=200"`
	Amount      decimal.Decimal `json:"amount"`
	Advance     decimal.Decimal `json:"advance"`
	Description string          `json:"description"`
}

// PrePurchaseResponse is a pre-purchase as returned by the API
type PrePurchaseResponse struct {
	ID          uuid.UUID       `json:"id"`
	VendorName  string          `json:"vendor_name"`
	Amount      decimal.Decimal `json:"amount"`
	Advance     decimal.Decimal `json:"advance"`
	Balance     decimal.Decimal `json:"balance"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func ToPrePurchaseResponse(p *trade.PrePurchase) PrePurchaseResponse {
	return PrePurchaseResponse{
		ID:          p.ID,
		VendorName:  p.VendorName,
		Amount:      p.Amount,
		Advance:     p.Advance,
		Balance:     p.Balance,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r PrePurchaseRequest) toInput() trade.PrePurchaseInput {
	return trade.PrePurchaseInput{
		VendorName:  r.VendorName,
		Amount:      r.Amount,
		Advance:     r.Advance,
		Description: r.Description,
	}
}

// PrePurchaseService handles vendor advances. Pre-purchases never touch stock.
type PrePurchaseService struct {
	repo   trade.PrePurchaseRepository
	events shared.EventPublisher
	logger *zap.Logger
}

func NewPrePurchaseService(repo trade.PrePurchaseRepository, events shared.EventPublisher, logger *zap.Logger) *PrePurchaseService {
	if events == nil {
		events = shared.NoopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrePurchaseService{repo: repo, events: events, logger: logger}
}

func (s *PrePurchaseService) publish(ctx context.Context, id uuid.UUID, action string) {
	if err := s.events.Publish(ctx, shared.NewEntityChangedEvent(ResourcePrePurchase, id, action)); err != nil {
		s.logger.Warn("failed to publish change event",
			zap.String("resource", ResourcePrePurchase),
			zap.String("id", id.String()),
			zap.Error(err))
	}
}

func (s *PrePurchaseService) Create(ctx context.Context, req PrePurchaseRequest) (*PrePurchaseResponse, error) {
	p, err := trade.NewPrePurchase(req.toInput())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	s.publish(ctx, p.ID, shared.ActionCreated)
	resp := ToPrePurchaseResponse(p)
	return &resp, nil
}

func (s *PrePurchaseService) Update(ctx context.Context, id uuid.UUID, req PrePurchaseRequest) (*PrePurchaseResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Update(req.toInput()); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	s.publish(ctx, p.ID, shared.ActionUpdated)
	resp := ToPrePurchaseResponse(p)
	return &resp, nil
}

func (s *PrePurchaseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, id, shared.ActionDeleted)
	return nil
}

func (s *PrePurchaseService) GetByID(ctx context.Context, id uuid.UUID) (*PrePurchaseResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPrePurchaseResponse(p)
	return &resp, nil
}

func (s *PrePurchaseService) List(ctx context.Context, filter shared.Filter) ([]PrePurchaseResponse, int64, error) {
	filter = filter.Normalize()
	items, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return mapList(items, ToPrePurchaseResponse), total, nil
}
