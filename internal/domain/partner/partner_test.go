package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

func TestNewCustomer(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		c, err := NewCustomer(CustomerInput{Name: "Ana", Email: "Ana@Example.com", Addresses: []string{"1 Main St"}})
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", c.Email)
		require.Len(t, c.Addresses, 1)
		assert.NotEqual(t, uuid.Nil, c.Addresses[0].ID)
	})

	t.Run("name and email are required", func(t *testing.T) {
		_, err := NewCustomer(CustomerInput{Email: "a@b.co"})
		assert.ErrorIs(t, err, shared.ErrValidationFailed)
		_, err = NewCustomer(CustomerInput{Name: "Ana"})
		assert.ErrorIs(t, err, shared.ErrValidationFailed)
		_, err = NewCustomer(CustomerInput{Name: "Ana", Email: "nope"})
		assert.ErrorIs(t, err, shared.ErrValidationFailed)
	})
}

func TestCustomer_Addresses(t *testing.T) {
	c, err := NewCustomer(CustomerInput{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)

	a, err := c.AddAddress("1 Main St")
	require.NoError(t, err)
	id := a.ID

	_, err = c.AddAddress("  ")
	assert.ErrorIs(t, err, shared.ErrValidationFailed)

	updated, err := c.UpdateAddress(id, "2 Side St")
	require.NoError(t, err)
	assert.Equal(t, "2 Side St", updated.Address)

	_, err = c.UpdateAddress(uuid.New(), "x")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, c.RemoveAddress(id))
	assert.Empty(t, c.Addresses)
	assert.ErrorIs(t, c.RemoveAddress(id), shared.ErrNotFound)
}

func TestVendor(t *testing.T) {
	v, err := NewVendor(VendorInput{Name: "Acme Tiles"})
	require.NoError(t, err)
	assert.Empty(t, v.Email)

	_, err = NewVendor(VendorInput{})
	assert.ErrorIs(t, err, shared.ErrValidationFailed)
}

func TestLead(t *testing.T) {
	l, err := NewLead(LeadInput{Name: "Sam"})
	require.NoError(t, err)
	assert.Equal(t, LeadStatusNew, l.Status)

	require.NoError(t, l.Update(LeadInput{Name: "Sam", Status: "Hot Lead"}))
	assert.Equal(t, LeadStatusHot, l.Status)

	assert.Error(t, l.Update(LeadInput{Name: "Sam", Status: "cold"}))
}

func TestShippingAddress(t *testing.T) {
	_, err := NewShippingAddress(ShippingAddressInput{ShippingAddress: "x"})
	assert.ErrorIs(t, err, shared.ErrValidationFailed)

	_, err = NewShippingAddress(ShippingAddressInput{CustomerID: uuid.New()})
	assert.ErrorIs(t, err, shared.ErrValidationFailed)

	s, err := NewShippingAddress(ShippingAddressInput{CustomerID: uuid.New(), ShippingAddress: " 9 Dock Rd "})
	require.NoError(t, err)
	assert.Equal(t, "9 Dock Rd", s.ShippingAddress)
}
