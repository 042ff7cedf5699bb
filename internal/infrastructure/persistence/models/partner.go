package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/partner"
)

// CustomerModel is the persistence model for customers
type CustomerModel struct {
	BaseModel
	Name      string                 `gorm:"type:varchar(200);not null;index"`
	Email     string                 `gorm:"type:varchar(200);index"`
	Phone     string                 `gorm:"type:varchar(50)"`
	ABNNo     string                 `gorm:"column:abn_no;type:varchar(50)"`
	Addresses []CustomerAddressModel `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// CustomerAddressModel is one saved address of a customer
type CustomerAddressModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Address    string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CustomerAddressModel) TableName() string {
	return "customer_addresses"
}

// ToDomain converts the model and its loaded addresses to a domain Customer
func (m *CustomerModel) ToDomain() *partner.Customer {
	c := &partner.Customer{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		ABNNo:      m.ABNNo,
		Addresses:  make([]partner.Address, 0, len(m.Addresses)),
	}
	for _, a := range m.Addresses {
		c.Addresses = append(c.Addresses, partner.Address{ID: a.ID, Address: a.Address, CreatedAt: a.CreatedAt})
	}
	return c
}

// FromDomain populates the model from a domain Customer, addresses included
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Email = c.Email
	m.Phone = c.Phone
	m.ABNNo = c.ABNNo
	m.Addresses = make([]CustomerAddressModel, 0, len(c.Addresses))
	for _, a := range c.Addresses {
		m.Addresses = append(m.Addresses, CustomerAddressModel{
			ID:         a.ID,
			CustomerID: c.ID,
			Address:    a.Address,
			CreatedAt:  a.CreatedAt,
		})
	}
}

// VendorModel is the persistence model for vendors
type VendorModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(200);not null;index"`
	Email   string `gorm:"type:varchar(200);index"`
	Phone   string `gorm:"type:varchar(50)"`
	ABNNo   string `gorm:"column:abn_no;type:varchar(50)"`
	Address string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (VendorModel) TableName() string {
	return "vendors"
}

func (m *VendorModel) ToDomain() *partner.Vendor {
	return &partner.Vendor{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		ABNNo:      m.ABNNo,
		Address:    m.Address,
	}
}

func (m *VendorModel) FromDomain(v *partner.Vendor) {
	m.FromDomainBaseEntity(v.BaseEntity)
	m.Name = v.Name
	m.Email = v.Email
	m.Phone = v.Phone
	m.ABNNo = v.ABNNo
	m.Address = v.Address
}

// LeadModel is the persistence model for sales leads
type LeadModel struct {
	BaseModel
	Name       string             `gorm:"type:varchar(200);not null;index"`
	Email      string             `gorm:"type:varchar(200)"`
	Phone      string             `gorm:"type:varchar(50)"`
	AltPhone   string             `gorm:"type:varchar(50)"`
	Address    string             `gorm:"type:text"`
	Notes      string             `gorm:"type:text"`
	Attachment string             `gorm:"type:varchar(500)"`
	Status     partner.LeadStatus `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (LeadModel) TableName() string {
	return "leads"
}

func (m *LeadModel) ToDomain() *partner.Lead {
	return &partner.Lead{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		AltPhone:   m.AltPhone,
		Address:    m.Address,
		Notes:      m.Notes,
		Attachment: m.Attachment,
		Status:     m.Status,
	}
}

func (m *LeadModel) FromDomain(l *partner.Lead) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.Name = l.Name
	m.Email = l.Email
	m.Phone = l.Phone
	m.AltPhone = l.AltPhone
	m.Address = l.Address
	m.Notes = l.Notes
	m.Attachment = l.Attachment
	m.Status = l.Status
}

// ShippingAddressModel is a named delivery address tied to a customer
type ShippingAddressModel struct {
	BaseModel
	CustomerID      uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerName    string    `gorm:"type:varchar(200)"`
	ShippingAddress string    `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (ShippingAddressModel) TableName() string {
	return "shipping_addresses"
}

func (m *ShippingAddressModel) ToDomain() *partner.ShippingAddress {
	return &partner.ShippingAddress{
		BaseEntity:      m.BaseModel.ToDomain(),
		CustomerID:      m.CustomerID,
		CustomerName:    m.CustomerName,
		ShippingAddress: m.ShippingAddress,
	}
}

func (m *ShippingAddressModel) FromDomain(s *partner.ShippingAddress) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.CustomerID = s.CustomerID
	m.CustomerName = s.CustomerName
	m.ShippingAddress = s.ShippingAddress
}
