package partner

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

// Address is one saved address of a customer
type Address struct {
	ID        uuid.UUID
	Address   string
	CreatedAt time.Time
}

// Customer is a registered customer with any number of saved addresses
type Customer struct {
	shared.BaseEntity
	Name      string
	Email     string
	Phone     string
	ABNNo     string
	Addresses []Address
}

// CustomerInput carries the writable customer fields
type CustomerInput struct {
	Name      string
	Email     string
	Phone     string
	ABNNo     string
	Addresses []string
}

// NewCustomer creates a customer; name and email are required
func NewCustomer(in CustomerInput) (*Customer, error) {
	c := &Customer{BaseEntity: shared.NewBaseEntity()}
	if err := c.apply(in); err != nil {
		return nil, err
	}
	for _, a := range in.Addresses {
		if _, err := c.AddAddress(a); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Update replaces the contact fields. Addresses are managed separately.
func (c *Customer) Update(in CustomerInput) error {
	if err := c.apply(in); err != nil {
		return err
	}
	c.Touch()
	return nil
}

// AddAddress appends a new saved address
func (c *Customer) AddAddress(address string) (*Address, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, shared.Validation("address is required")
	}
	c.Addresses = append(c.Addresses, Address{ID: uuid.New(), Address: address, CreatedAt: time.Now()})
	c.Touch()
	return &c.Addresses[len(c.Addresses)-1], nil
}

// UpdateAddress rewrites a saved address
func (c *Customer) UpdateAddress(id uuid.UUID, address string) (*Address, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, shared.Validation("address is required")
	}
	for i := range c.Addresses {
		if c.Addresses[i].ID == id {
			c.Addresses[i].Address = address
			c.Touch()
			return &c.Addresses[i], nil
		}
	}
	return nil, shared.NotFound("address")
}

// RemoveAddress deletes a saved address
func (c *Customer) RemoveAddress(id uuid.UUID) error {
	for i := range c.Addresses {
		if c.Addresses[i].ID == id {
			c.Addresses = append(c.Addresses[:i], c.Addresses[i+1:]...)
			c.Touch()
			return nil
		}
	}
	return shared.NotFound("address")
}

func (c *Customer) apply(in CustomerInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return shared.Validation("customer name is required")
	}
	if len(name) > 200 {
		return shared.Validation("customer name cannot exceed 200 characters")
	}
	email, err := normalizeEmail(in.Email, true)
	if err != nil {
		return err
	}
	c.Name = name
	c.Email = email
	c.Phone = strings.TrimSpace(in.Phone)
	c.ABNNo = strings.TrimSpace(in.ABNNo)
	return nil
}

func normalizeEmail(email string, required bool) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		if required {
			return "", shared.Validation("email is required")
		}
		return "", nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", shared.Validation("invalid email %q", email)
	}
	return email, nil
}
