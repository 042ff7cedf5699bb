package partner

import (
	"strings"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

// ShippingAddress is a delivery address kept for a customer
type ShippingAddress struct {
	shared.BaseEntity
	CustomerID      uuid.UUID
	CustomerName    string
	ShippingAddress string
}

// ShippingAddressInput carries the writable shipping address fields
type ShippingAddressInput struct {
	CustomerID      uuid.UUID
	CustomerName    string
	ShippingAddress string
}

func NewShippingAddress(in ShippingAddressInput) (*ShippingAddress, error) {
	s := &ShippingAddress{BaseEntity: shared.NewBaseEntity()}
	if err := s.apply(in); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ShippingAddress) Update(in ShippingAddressInput) error {
	if err := s.apply(in); err != nil {
		return err
	}
	s.Touch()
	return nil
}

func (s *ShippingAddress) apply(in ShippingAddressInput) error {
	if in.CustomerID == uuid.Nil {
		return shared.Validation("customer is required")
	}
	addr := strings.TrimSpace(in.ShippingAddress)
	if addr == "" {
		return shared.Validation("shipping address is required")
	}
	s.CustomerID = in.CustomerID
	s.CustomerName = strings.TrimSpace(in.CustomerName)
	s.ShippingAddress = addr
	return nil
}
