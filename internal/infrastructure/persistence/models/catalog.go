package models

import (
	"github.com/shopspring/decimal"
	"github.com/tilesgalleria/backoffice/internal/domain/catalog"
)

// ProductModel is the persistence model for the Product domain entity.
// quantity and boxes are only written by the stock repository once the row exists.
type ProductModel struct {
	BaseModel
	Name        string          `gorm:"type:varchar(200);not null;index"`
	ProductType string          `gorm:"type:varchar(100);index"`
	Texture     string          `gorm:"type:varchar(100)"`
	Size        string          `gorm:"type:varchar(50)"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Boxes       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Image       string          `gorm:"type:varchar(500)"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(5,2);not null;default:10"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		ProductType: m.ProductType,
		Texture:     m.Texture,
		Size:        m.Size,
		Quantity:    m.Quantity,
		Boxes:       m.Boxes,
		Price:       m.Price,
		Image:       m.Image,
		TaxRate:     m.TaxRate,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.ProductType = p.ProductType
	m.Texture = p.Texture
	m.Size = p.Size
	m.Quantity = p.Quantity
	m.Boxes = p.Boxes
	m.Price = p.Price
	m.Image = p.Image
	m.TaxRate = p.TaxRate
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// CategoryModel is the persistence model for product categories
type CategoryModel struct {
	BaseModel
	Name  string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Slug  string `gorm:"type:varchar(120);not null;index"`
	Image string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Slug:       m.Slug,
		Image:      m.Image,
	}
}

// FromDomain populates the persistence model from a domain Category entity.
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Slug = c.Slug
	m.Image = c.Image
}
