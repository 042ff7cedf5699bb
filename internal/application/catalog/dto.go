package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tilesgalleria/backoffice/internal/domain/catalog"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/spreadsheet"
)

// ProductRequest creates or replaces a product. Quantity and Boxes only
// seed the counters on create; afterwards stock moves through documents.
type ProductRequest struct {
	Name        string           `json:"name" binding:"required,max=200"`
	ProductType string           `json:"product_type" binding:"max=100"`
	Texture     string           `json:"texture" binding:"max=100"`
	Size        string           `json:"size" binding:"max=100"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Boxes       decimal.Decimal  `json:"boxes"`
	Price       decimal.Decimal  `json:"price"`
	Image       string           `json:"image"`
	TaxRate     *decimal.Decimal `json:"tax_rate"`
}

func (r ProductRequest) toInput() catalog.ProductInput {
	return catalog.ProductInput{
		Name:        r.Name,
		ProductType: r.ProductType,
		Texture:     r.Texture,
		Size:        r.Size,
		Quantity:    r.Quantity,
		Boxes:       r.Boxes,
		Price:       r.Price,
		Image:       r.Image,
		TaxRate:     r.TaxRate,
	}
}

// StockRequest overwrites a product's stock counters
type StockRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	Boxes    decimal.Decimal `json:"boxes"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	ProductType string          `json:"product_type"`
	Texture     string          `json:"texture"`
	Size        string          `json:"size"`
	Quantity    decimal.Decimal `json:"quantity"`
	Boxes       decimal.Decimal `json:"boxes"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		ProductType: p.ProductType,
		Texture:     p.Texture,
		Size:        p.Size,
		Quantity:    p.Quantity,
		Boxes:       p.Boxes,
		Price:       p.Price,
		Image:       p.Image,
		TaxRate:     p.TaxRate,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// CategoryRequest creates a category
type CategoryRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Image string `json:"image"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		Image:     c.Image,
		CreatedAt: c.CreatedAt,
	}
}

// ImportResult summarises a bulk product import
type ImportResult struct {
	Imported int                    `json:"imported"`
	Failed   int                    `json:"failed"`
	Errors   []spreadsheet.RowError `json:"errors"`
}

// CoverageResponse exposes the coverage table
type CoverageResponse struct {
	Default    decimal.Decimal            `json:"default"`
	ByCategory map[string]decimal.Decimal `json:"by_category"`
}

// BoxesResponse is the result of a qty to boxes conversion
type BoxesResponse struct {
	Category string          `json:"category"`
	Quantity decimal.Decimal `json:"quantity"`
	Coverage decimal.Decimal `json:"coverage"`
	Boxes    decimal.Decimal `json:"boxes"`
}

func mapList[T, R any](items []T, fn func(*T) R) []R {
	out := make([]R, len(items))
	for i := range items {
		out[i] = fn(&items[i])
	}
	return out
}
