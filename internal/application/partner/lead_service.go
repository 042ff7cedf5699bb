package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/partner"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// LeadService handles lead operations
type LeadService struct {
	leadRepo partner.LeadRepository
	notifier
}

func NewLeadService(leadRepo partner.LeadRepository, events shared.EventPublisher, logger *zap.Logger) *LeadService {
	return &LeadService{leadRepo: leadRepo, notifier: newNotifier(events, logger)}
}

func (s *LeadService) Create(ctx context.Context, req LeadRequest) (*LeadResponse, error) {
	lead, err := partner.NewLead(req.toInput())
	if err != nil {
		return nil, err
	}
	if err := s.leadRepo.Save(ctx, lead); err != nil {
		return nil, err
	}
	s.publish(ctx, ResourceLead, lead.ID, shared.ActionCreated)
	resp := ToLeadResponse(lead)
	return &resp, nil
}

func (s *LeadService) Update(ctx context.Context, id uuid.UUID, req LeadRequest) (*LeadResponse, error) {
	lead, err := s.leadRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := lead.Update(req.toInput()); err != nil {
		return nil, err
	}
	if err := s.leadRepo.Save(ctx, lead); err != nil {
		return nil, err
	}
	s.publish(ctx, ResourceLead, lead.ID, shared.ActionUpdated)
	resp := ToLeadResponse(lead)
	return &resp, nil
}

func (s *LeadService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.leadRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.leadRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, ResourceLead, id, shared.ActionDeleted)
	return nil
}

func (s *LeadService) GetByID(ctx context.Context, id uuid.UUID) (*LeadResponse, error) {
	lead, err := s.leadRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToLeadResponse(lead)
	return &resp, nil
}

// List supports a "status" filter on top of search
func (s *LeadService) List(ctx context.Context, filter shared.Filter) ([]LeadResponse, int64, error) {
	filter = filter.Normalize()
	if raw, ok := filter.Filters["status"].(string); ok && raw != "" {
		status, err := partner.ParseLeadStatus(raw)
		if err != nil {
			return nil, 0, err
		}
		filter.Filters["status"] = string(status)
	}
	leads, err := s.leadRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.leadRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return mapList(leads, ToLeadResponse), total, nil
}
