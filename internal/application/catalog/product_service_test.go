package catalog

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tilesgalleria/backoffice/internal/domain/catalog"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/spreadsheet"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindRecent(ctx context.Context, limit int) ([]catalog.Product, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveBatch(ctx context.Context, products []*catalog.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
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

func newProduct(t *testing.T, name string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(catalog.ProductInput{
		Name:        name,
		ProductType: "Tiles",
		Quantity:    decimal.NewFromInt(10),
		Boxes:       decimal.NewFromInt(4),
		Price:       decimal.RequireFromString("45.5"),
	})
	require.NoError(t, err)
	return p
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	events := &recordingPublisher{}
	svc := NewProductService(repo, events, nil)

	repo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

	resp, err := svc.Create(ctx, ProductRequest{
		Name:        "E-11",
		ProductType: "Tiles",
		Quantity:    decimal.RequireFromString("423.36"),
		Price:       decimal.NewFromInt(45),
	})
	require.NoError(t, err)
	assert.Equal(t, "E-11", resp.Name)
	assert.True(t, resp.TaxRate.Equal(catalog.DefaultTaxRate))
	require.Len(t, events.events, 1)
	assert.Equal(t, "product", events.events[0].AggregateType())
	repo.AssertExpectations(t)
}

func TestProductService_CreateValidation(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo, nil, nil)

	_, err := svc.Create(context.Background(), ProductRequest{Name: "", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, shared.ErrValidationFailed)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_UpdateKeepsStock(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := NewProductService(repo, nil, nil)
	existing := newProduct(t, "Carrara")

	repo.On("FindByID", ctx, existing.ID).Return(existing, nil)
	repo.On("Save", ctx, existing).Return(nil)

	resp, err := svc.Update(ctx, existing.ID, ProductRequest{Name: "Carrara Matt", Quantity: decimal.NewFromInt(999), Price: decimal.NewFromInt(50)})
	require.NoError(t, err)
	assert.Equal(t, "Carrara Matt", resp.Name)
	assert.True(t, resp.Quantity.Equal(decimal.NewFromInt(10)))
}

func TestProductService_DeleteNotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := NewProductService(repo, nil, nil)
	id := uuid.New()

	repo.On("FindByID", ctx, id).Return(nil, shared.NotFound("product"))

	err := svc.Delete(ctx, id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestProductService_SetStock(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := NewProductService(repo, nil, nil)
	existing := newProduct(t, "Slate")

	repo.On("FindByID", ctx, existing.ID).Return(existing, nil)
	repo.On("Save", ctx, existing).Return(nil)

	resp, err := svc.SetStock(ctx, existing.ID, StockRequest{Quantity: decimal.NewFromInt(3), Boxes: decimal.NewFromInt(1)})
	require.NoError(t, err)
	assert.True(t, resp.Quantity.Equal(decimal.NewFromInt(3)))

	_, err = svc.SetStock(ctx, existing.ID, StockRequest{Quantity: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, shared.ErrValidationFailed)
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := NewProductService(repo, nil, nil)

	filter := shared.Filter{Search: "carr", PageSize: 500}
	normalized := filter.Normalize()
	repo.On("FindAll", ctx, normalized).Return([]catalog.Product{*newProduct(t, "Carrara")}, nil)
	repo.On("Count", ctx, normalized).Return(int64(1), nil)

	items, total, err := svc.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Carrara", items[0].Name)
}

func TestProductService_ImportCSV(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := NewProductService(repo, nil, nil)

	var saved []*catalog.Product
	repo.On("SaveBatch", ctx, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).([]*catalog.Product)
	}).Return(nil)

	file := strings.Join([]string{
		"product name,SIZE,Texture,Area of Usage,Quantity,Price,Boxes,Tax Rate,Image",
		"Carrara,600x600,Gloss,wall tiles,100,45.50,70,10%,carrara.jpg",
		",600x600,Matt,floor,10,20,,,",
		"Basalt,300x300,Matt,FLOOR,abc,30,,,",
		"Slate,300x600,Rough,outdoor,,,,,",
		"Travertine,,,,,60,,,",
	}, "\n")

	res, err := svc.Import(ctx, "products.csv", strings.NewReader(file))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 3, res.Failed)
	require.Len(t, res.Errors, 3)
	assert.Equal(t, 3, res.Errors[0].Row)
	assert.Equal(t, "Product Name", res.Errors[0].Column)
	assert.Equal(t, "Quantity", res.Errors[1].Column)
	assert.Equal(t, "Price", res.Errors[2].Column)

	require.Len(t, saved, 2)
	assert.Equal(t, "Wall Tiles", saved[0].ProductType)
	assert.True(t, saved[0].TaxRate.Equal(decimal.NewFromInt(10)))
	assert.True(t, saved[0].Boxes.Equal(decimal.NewFromInt(70)))
	assert.True(t, saved[1].Price.Equal(decimal.NewFromInt(60)))
	assert.True(t, saved[1].TaxRate.Equal(catalog.DefaultTaxRate))
}

func TestProductService_ImportRejectsFile(t *testing.T) {
	svc := NewProductService(new(MockProductRepository), nil, nil)

	_, err := svc.Import(context.Background(), "products.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.Import(context.Background(), "products.csv", strings.NewReader("Size,Price\n1,2\n"))
	assert.ErrorIs(t, err, shared.ErrValidationFailed)
}

func TestProductService_ImportXLSX(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := NewProductService(repo, nil, nil)
	repo.On("SaveBatch", ctx, mock.Anything).Return(nil)

	var buf bytes.Buffer
	require.NoError(t, spreadsheet.WriteXLSX(&buf, "Sheet1",
		[]string{"Product Name", "Price", "Area of Usage"},
		[][]string{{"Onyx", "99", "bathroom"}}))

	res, err := svc.Import(ctx, "products.xlsx", &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Empty(t, res.Errors)
}

func TestProductService_ImportSaveFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := NewProductService(repo, nil, nil)
	repo.On("SaveBatch", ctx, mock.Anything).Return(errors.New("db down"))

	_, err := svc.Import(ctx, "p.csv", strings.NewReader("Product Name,Price\nA,1\n"))
	assert.Error(t, err)
}

func TestProductService_ExportCSV(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := NewProductService(repo, nil, nil)

	repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool { return f.Page == 1 })).
		Return([]catalog.Product{*newProduct(t, "Carrara")}, nil)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(ctx, &buf, spreadsheet.FormatCSV))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "name,productType,texture,size,quantity,price,boxes,taxRate,image", lines[0])
	assert.Equal(t, "Carrara,Tiles,,,10,45.50,4,10,", lines[1])
}
