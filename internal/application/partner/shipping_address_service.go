package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/partner"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// ShippingAddressService handles shipping addresses. The customer must exist
// and its name is copied onto the address.
type ShippingAddressService struct {
	addressRepo  partner.ShippingAddressRepository
	customerRepo partner.CustomerRepository
	notifier
}

func NewShippingAddressService(
	addressRepo partner.ShippingAddressRepository,
	customerRepo partner.CustomerRepository,
	events shared.EventPublisher,
	logger *zap.Logger,
) *ShippingAddressService {
	return &ShippingAddressService{
		addressRepo:  addressRepo,
		customerRepo: customerRepo,
		notifier:     newNotifier(events, logger),
	}
}

func (s *ShippingAddressService) Create(ctx context.Context, req ShippingAddressRequest) (*ShippingAddressResponse, error) {
	in, err := s.input(ctx, req)
	if err != nil {
		return nil, err
	}
	addr, err := partner.NewShippingAddress(in)
	if err != nil {
		return nil, err
	}
	if err := s.addressRepo.Save(ctx, addr); err != nil {
		return nil, err
	}
	s.publish(ctx, ResourceShippingAddress, addr.ID, shared.ActionCreated)
	resp := ToShippingAddressResponse(addr)
	return &resp, nil
}

func (s *ShippingAddressService) Update(ctx context.Context, id uuid.UUID, req ShippingAddressRequest) (*ShippingAddressResponse, error) {
	addr, err := s.addressRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in, err := s.input(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := addr.Update(in); err != nil {
		return nil, err
	}
	if err := s.addressRepo.Save(ctx, addr); err != nil {
		return nil, err
	}
	s.publish(ctx, ResourceShippingAddress, addr.ID, shared.ActionUpdated)
	resp := ToShippingAddressResponse(addr)
	return &resp, nil
}

func (s *ShippingAddressService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.addressRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.addressRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, ResourceShippingAddress, id, shared.ActionDeleted)
	return nil
}

func (s *ShippingAddressService) GetByID(ctx context.Context, id uuid.UUID) (*ShippingAddressResponse, error) {
	addr, err := s.addressRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToShippingAddressResponse(addr)
	return &resp, nil
}

func (s *ShippingAddressService) List(ctx context.Context, filter shared.Filter) ([]ShippingAddressResponse, int64, error) {
	filter = filter.Normalize()
	addrs, err := s.addressRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.addressRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return mapList(addrs, ToShippingAddressResponse), total, nil
}

func (s *ShippingAddressService) input(ctx context.Context, req ShippingAddressRequest) (partner.ShippingAddressInput, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return partner.ShippingAddressInput{}, err
	}
	return partner.ShippingAddressInput{
		CustomerID:      customer.ID,
		CustomerName:    customer.Name,
		ShippingAddress: req.ShippingAddress,
	}, nil
}
