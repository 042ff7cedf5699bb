package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/partner"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// VendorService handles vendor operations
type VendorService struct {
	vendorRepo partner.VendorRepository
	notifier
}

func NewVendorService(vendorRepo partner.VendorRepository, events shared.EventPublisher, logger *zap.Logger) *VendorService {
	return &VendorService{vendorRepo: vendorRepo, notifier: newNotifier(events, logger)}
}

func (s *VendorService) Create(ctx context.Context, req VendorRequest) (*VendorResponse, error) {
	vendor, err := partner.NewVendor(req.toInput())
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, vendor.Email, nil); err != nil {
		return nil, err
	}
	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}
	s.publish(ctx, ResourceVendor, vendor.ID, shared.ActionCreated)
	resp := ToVendorResponse(vendor)
	return &resp, nil
}

func (s *VendorService) Update(ctx context.Context, id uuid.UUID, req VendorRequest) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := vendor.Update(req.toInput()); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, vendor.Email, &id); err != nil {
		return nil, err
	}
	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}
	s.publish(ctx, ResourceVendor, vendor.ID, shared.ActionUpdated)
	resp := ToVendorResponse(vendor)
	return &resp, nil
}

func (s *VendorService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.vendorRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.vendorRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, ResourceVendor, id, shared.ActionDeleted)
	return nil
}

func (s *VendorService) GetByID(ctx context.Context, id uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToVendorResponse(vendor)
	return &resp, nil
}

func (s *VendorService) List(ctx context.Context, filter shared.Filter) ([]VendorResponse, int64, error) {
	filter = filter.Normalize()
	vendors, err := s.vendorRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.vendorRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return mapList(vendors, ToVendorResponse), total, nil
}

// Vendors without an email skip the uniqueness check
func (s *VendorService) ensureEmailFree(ctx context.Context, email string, excludeID *uuid.UUID) error {
	if email == "" {
		return nil
	}
	exists, err := s.vendorRepo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, "Vendor with this email already exists")
	}
	return nil
}
