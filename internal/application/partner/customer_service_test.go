package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tilesgalleria/backoffice/internal/domain/partner"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindRecent(ctx context.Context, limit int) ([]partner.Customer, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, c *partner.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func newCustomer(t *testing.T) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer(partner.CustomerInput{Name: "Ana Builder", Email: "ana@example.com", Addresses: []string{"1 Main St"}})
	require.NoError(t, err)
	return c
}

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates with addresses", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		events := &recordingPublisher{}
		svc := NewCustomerService(repo, events, nil)

		repo.On("ExistsByEmail", ctx, "ana@example.com", (*uuid.UUID)(nil)).Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

		resp, err := svc.Create(ctx, CustomerRequest{Name: "Ana", Email: " ANA@example.com ", Addresses: []string{"1 Main St", "2 High St"}})
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", resp.Email)
		assert.Len(t, resp.Addresses, 2)
		require.Len(t, events.events, 1)
		assert.Equal(t, ResourceCustomer, events.events[0].AggregateType())
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewCustomerService(repo, nil, nil)
		repo.On("ExistsByEmail", ctx, "ana@example.com", (*uuid.UUID)(nil)).Return(true, nil)

		_, err := svc.Create(ctx, CustomerRequest{Name: "Ana", Email: "ana@example.com"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := NewCustomerService(new(MockCustomerRepository), nil, nil).Create(ctx, CustomerRequest{Name: "Ana", Email: "nope"})
		assert.ErrorIs(t, err, shared.ErrValidationFailed)
	})
}

func TestCustomerService_UpdateExcludesSelf(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCustomerRepository)
	svc := NewCustomerService(repo, nil, nil)
	c := newCustomer(t)

	repo.On("FindByID", ctx, c.ID).Return(c, nil)
	repo.On("ExistsByEmail", ctx, "ana@example.com", &c.ID).Return(false, nil)
	repo.On("Save", ctx, c).Return(nil)

	resp, err := svc.Update(ctx, c.ID, CustomerRequest{Name: "Ana B", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ana B", resp.Name)
	assert.Len(t, resp.Addresses, 1)
}

func TestCustomerService_Addresses(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCustomerRepository)
	svc := NewCustomerService(repo, nil, nil)
	c := newCustomer(t)
	first := c.Addresses[0].ID

	repo.On("FindByID", ctx, c.ID).Return(c, nil)
	repo.On("Save", ctx, c).Return(nil)

	resp, err := svc.AddAddress(ctx, c.ID, AddressRequest{Address: "9 Beach Rd"})
	require.NoError(t, err)
	assert.Len(t, resp.Addresses, 2)

	resp, err = svc.UpdateAddress(ctx, c.ID, first, AddressRequest{Address: "1 Main Street"})
	require.NoError(t, err)
	assert.Equal(t, "1 Main Street", resp.Addresses[0].Address)

	resp, err = svc.RemoveAddress(ctx, c.ID, first)
	require.NoError(t, err)
	require.Len(t, resp.Addresses, 1)
	assert.Equal(t, "9 Beach Rd", resp.Addresses[0].Address)

	_, err = svc.RemoveAddress(ctx, c.ID, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCustomerService_DeleteNotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCustomerRepository)
	id := uuid.New()
	repo.On("FindByID", ctx, id).Return(nil, shared.NotFound("customer"))

	err := NewCustomerService(repo, nil, nil).Delete(ctx, id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
