package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

// CustomerRepository persists customers together with their addresses
type CustomerRepository interface {
	shared.Repository[Customer]
	FindRecent(ctx context.Context, limit int) ([]Customer, error)
	ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)
}

// VendorRepository persists vendors
type VendorRepository interface {
	shared.Repository[Vendor]
	ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)
}

// LeadRepository persists leads
type LeadRepository interface {
	shared.Repository[Lead]
	FindRecent(ctx context.Context, limit int) ([]Lead, error)
}

// ShippingAddressRepository persists shipping addresses
type ShippingAddressRepository interface {
	shared.Repository[ShippingAddress]
}
