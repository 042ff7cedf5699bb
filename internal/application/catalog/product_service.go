// Package catalog holds the product, category and coverage services.
package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/catalog"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

const resourceProduct = "product"

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	events      shared.EventPublisher
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, events shared.EventPublisher, logger *zap.Logger) *ProductService {
	if events == nil {
		events = shared.NoopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{productRepo: productRepo, events: events, logger: logger}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req ProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.toInput())
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publish(ctx, product.ID, shared.ActionCreated)

	resp := ToProductResponse(product)
	return &resp, nil
}

// Update replaces the descriptive attributes of a product; stock is left untouched
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req ProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.Update(req.toInput()); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publish(ctx, product.ID, shared.ActionUpdated)

	resp := ToProductResponse(product)
	return &resp, nil
}

// SetStock overwrites the stock counters of a product
func (s *ProductService) SetStock(ctx context.Context, id uuid.UUID, req StockRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.SetStock(req.Quantity, req.Boxes); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.logger.Info("product stock overwritten",
		zap.String("product_id", id.String()),
		zap.String("quantity", req.Quantity.String()),
		zap.String("boxes", req.Boxes.String()))
	s.publish(ctx, product.ID, shared.ActionUpdated)

	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete removes a product. Documents keep their copied product attributes.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, id, shared.ActionDeleted)
	return nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List retrieves a page of products. Search matches name, type, texture and size.
func (s *ProductService) List(ctx context.Context, filter shared.Filter) ([]ProductResponse, int64, error) {
	filter = filter.Normalize()
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return mapList(products, ToProductResponse), total, nil
}

func (s *ProductService) publish(ctx context.Context, id uuid.UUID, action string) {
	if err := s.events.Publish(ctx, shared.NewEntityChangedEvent(resourceProduct, id, action)); err != nil {
		s.logger.Warn("failed to publish product event", zap.String("product_id", id.String()), zap.Error(err))
	}
}
