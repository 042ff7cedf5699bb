package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/partner"
)

// CustomerRequest creates or updates a customer. Addresses are only read on create.
type CustomerRequest struct {
	Name      string   `json:"name" binding:"required,max=200"`
	Email     string   `json:"email" binding:"required,email"`
	Phone     string   `json:"phone" binding:"max=50"`
	ABNNo     string   `json:"abn_no" binding:"max=50"`
	Addresses []string `json:"addresses"`
}

func (r CustomerRequest) toInput() partner.CustomerInput {
	return partner.CustomerInput{
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		ABNNo:     r.ABNNo,
		Addresses: r.Addresses,
	}
}

// AddressRequest adds or rewrites one customer address
type AddressRequest struct {
	Address string `json:"address" binding:"required"`
}

// AddressResponse represents a saved customer address
type AddressResponse struct {
	ID        uuid.UUID `json:"id"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
	ABNNo     string            `json:"abn_no"`
	Addresses []AddressResponse `json:"addresses"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func toAddressResponse(a *partner.Address) AddressResponse {
	return AddressResponse{ID: a.ID, Address: a.Address, CreatedAt: a.CreatedAt}
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		ABNNo:     c.ABNNo,
		Addresses: mapList(c.Addresses, toAddressResponse),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// VendorRequest creates or updates a vendor
type VendorRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"max=50"`
	ABNNo   string `json:"abn_no" binding:"max=50"`
	Address string `json:"address"`
}

func (r VendorRequest) toInput() partner.VendorInput {
	return partner.VendorInput{Name: r.Name, Email: r.Email, Phone: r.Phone, ABNNo: r.ABNNo, Address: r.Address}
}

// VendorResponse represents a vendor in API responses
type VendorResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone"`
	ABNNo     string    `json:"abn_no"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToVendorResponse(v *partner.Vendor) VendorResponse {
	return VendorResponse{
		ID:        v.ID,
		Name:      v.Name,
		Email:     v.Email,
		Phone:     v.Phone,
		ABNNo:     v.ABNNo,
		Address:   v.Address,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// LeadRequest creates or updates a lead
type LeadRequest struct {
	Name       string `json:"name" binding:"required,max=200"`
	Email      string `json:"email" binding:"omitempty,email"`
	Phone      string `json:"phone" binding:"max=50"`
	AltPhone   string `json:"alt_phone" binding:"max=50"`
	Address    string `json:"address"`
	Notes      string `json:"notes"`
	Attachment string `json:"attachment"`
	Status     string `json:"status"`
}

func (r LeadRequest) toInput() partner.LeadInput {
	return partner.LeadInput{
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		AltPhone:   r.AltPhone,
		Address:    r.Address,
		Notes:      r.Notes,
		Attachment: r.Attachment,
		Status:     r.Status,
	}
}

// LeadResponse represents a lead in API responses
type LeadResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone"`
	AltPhone   string    `json:"alt_phone,omitempty"`
	Address    string    `json:"address"`
	Notes      string    `json:"notes,omitempty"`
	Attachment string    `json:"attachment,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ToLeadResponse(l *partner.Lead) LeadResponse {
	return LeadResponse{
		ID:         l.ID,
		Name:       l.Name,
		Email:      l.Email,
		Phone:      l.Phone,
		AltPhone:   l.AltPhone,
		Address:    l.Address,
		Notes:      l.Notes,
		Attachment: l.Attachment,
		Status:     string(l.Status),
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

// ShippingAddressRequest creates or updates a shipping address
type ShippingAddressRequest struct {
	CustomerID      uuid.UUID `json:"customer_id" binding:"required"`
	ShippingAddress string    `json:"shipping_address" binding:"required"`
}

// ShippingAddressResponse represents a shipping address in API responses
type ShippingAddressResponse struct {
	ID              uuid.UUID `json:"id"`
	CustomerID      uuid.UUID `json:"customer_id"`
	CustomerName    string    `json:"customer_name"`
	ShippingAddress string    `json:"shipping_address"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func ToShippingAddressResponse(s *partner.ShippingAddress) ShippingAddressResponse {
	return ShippingAddressResponse{
		ID:              s.ID,
		CustomerID:      s.CustomerID,
		CustomerName:    s.CustomerName,
		ShippingAddress: s.ShippingAddress,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func mapList[T, R any](items []T, fn func(*T) R) []R {
	out := make([]R, len(items))
	for i := range items {
		out[i] = fn(&items[i])
	}
	return out
}
