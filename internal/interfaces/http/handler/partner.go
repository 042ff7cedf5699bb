package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/tilesgalleria/backoffice/internal/application/partner"
)

// Resource handlers with no endpoints beyond CRUD
type (
	VendorHandler          = ResourceHandler[partnerapp.VendorRequest, partnerapp.VendorResponse]
	LeadHandler            = ResourceHandler[partnerapp.LeadRequest, partnerapp.LeadResponse]
	ShippingAddressHandler = ResourceHandler[partnerapp.ShippingAddressRequest, partnerapp.ShippingAddressResponse]
)

// NewVendorHandler creates a VendorHandler
func NewVendorHandler(svc *partnerapp.VendorService) *VendorHandler {
	return NewResourceHandler[partnerapp.VendorRequest, partnerapp.VendorResponse](svc)
}

// NewLeadHandler creates a LeadHandler
func NewLeadHandler(svc *partnerapp.LeadService) *LeadHandler {
	return NewResourceHandler[partnerapp.LeadRequest, partnerapp.LeadResponse](svc)
}

// NewShippingAddressHandler creates a ShippingAddressHandler
func NewShippingAddressHandler(svc *partnerapp.ShippingAddressService) *ShippingAddressHandler {
	return NewResourceHandler[partnerapp.ShippingAddressRequest, partnerapp.ShippingAddressResponse](svc)
}

// CustomerHandler handles customer CRUD and the customer's address book
type CustomerHandler struct {
	*ResourceHandler[partnerapp.CustomerRequest, partnerapp.CustomerResponse]
	customers *partnerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customers *partnerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		ResourceHandler: NewResourceHandler[partnerapp.CustomerRequest, partnerapp.CustomerResponse](customers),
		customers:       customers,
	}
}

// AddAddress godoc
// @ID           addCustomerAddress
// @Summary      Add a customer address
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Param        request body partnerapp.AddressRequest true "Address"
// @Success      201 {object} APIResponse[partnerapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers/{id}/addresses [post]
func (h *CustomerHandler) AddAddress(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req partnerapp.AddressRequest
	if !h.bindJSON(c, &req) {
		return
	}
	customer, err := h.customers.AddAddress(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// UpdateAddress godoc
// @ID           updateCustomerAddress
// @Summary      Update a customer address
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id        path string true "Customer ID" format(uuid)
// @Param        addressId path string true "Address ID" format(uuid)
// @Param        request body partnerapp.AddressRequest true "Address"
// @Success      200 {object} APIResponse[partnerapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers/{id}/addresses/{addressId} [put]
func (h *CustomerHandler) UpdateAddress(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	addressID, ok := h.parseID(c, "addressId")
	if !ok {
		return
	}
	var req partnerapp.AddressRequest
	if !h.bindJSON(c, &req) {
		return
	}
	customer, err := h.customers.UpdateAddress(c.Request.Context(), id, addressID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// RemoveAddress godoc
// @ID           removeCustomerAddress
// @Summary      Remove a customer address
// @Tags         customers
// @Produce      json
// @Param        id        path string true "Customer ID" format(uuid)
// @Param        addressId path string true "Address ID" format(uuid)
// @Success      200 {object} APIResponse[partnerapp.CustomerResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers/{id}/addresses/{addressId} [delete]
func (h *CustomerHandler) RemoveAddress(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	addressID, ok := h.parseID(c, "addressId")
	if !ok {
		return
	}
	customer, err := h.customers.RemoveAddress(c.Request.Context(), id, addressID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}
