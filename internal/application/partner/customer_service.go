// Package partner holds the customer, vendor, lead and shipping address services.
package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/partner"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// Resource names carried on EntityChangedEvent
const (
	ResourceCustomer        = "customer"
	ResourceVendor          = "vendor"
	ResourceLead            = "lead"
	ResourceShippingAddress = "shipping_address"
)

type notifier struct {
	events shared.EventPublisher
	logger *zap.Logger
}

func newNotifier(events shared.EventPublisher, logger *zap.Logger) notifier {
	if events == nil {
		events = shared.NoopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return notifier{events: events, logger: logger}
}

func (n notifier) publish(ctx context.Context, resource string, id uuid.UUID, action string) {
	if err := n.events.Publish(ctx, shared.NewEntityChangedEvent(resource, id, action)); err != nil {
		n.logger.Warn("failed to publish entity event",
			zap.String("resource", resource),
			zap.String("id", id.String()),
			zap.Error(err))
	}
}

// CustomerService handles customer operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	notifier
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, events shared.EventPublisher, logger *zap.Logger) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, notifier: newNotifier(events, logger)}
}

// Create creates a customer; the email must not belong to another customer
func (s *CustomerService) Create(ctx context.Context, req CustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(req.toInput())
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, customer.Email, nil); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	s.publish(ctx, ResourceCustomer, customer.ID, shared.ActionCreated)

	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// Update rewrites the contact fields of a customer
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req CustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := customer.Update(req.toInput()); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, customer.Email, &id); err != nil {
		return nil, err
	}
	return s.save(ctx, customer)
}

// Delete removes a customer along with its saved addresses
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, ResourceCustomer, id, shared.ActionDeleted)
	return nil
}

func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

func (s *CustomerService) List(ctx context.Context, filter shared.Filter) ([]CustomerResponse, int64, error) {
	filter = filter.Normalize()
	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customerRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return mapList(customers, ToCustomerResponse), total, nil
}

// AddAddress saves another address for the customer
func (s *CustomerService) AddAddress(ctx context.Context, id uuid.UUID, req AddressRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := customer.AddAddress(req.Address); err != nil {
		return nil, err
	}
	return s.save(ctx, customer)
}

func (s *CustomerService) UpdateAddress(ctx context.Context, id, addressID uuid.UUID, req AddressRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := customer.UpdateAddress(addressID, req.Address); err != nil {
		return nil, err
	}
	return s.save(ctx, customer)
}

func (s *CustomerService) RemoveAddress(ctx context.Context, id, addressID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := customer.RemoveAddress(addressID); err != nil {
		return nil, err
	}
	return s.save(ctx, customer)
}

func (s *CustomerService) save(ctx context.Context, customer *partner.Customer) (*CustomerResponse, error) {
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	s.publish(ctx, ResourceCustomer, customer.ID, shared.ActionUpdated)
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

func (s *CustomerService) ensureEmailFree(ctx context.Context, email string, excludeID *uuid.UUID) error {
	exists, err := s.customerRepo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, "Customer with this email already exists")
	}
	return nil
}
