package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tilesgalleria/backoffice/internal/domain/inventory"
	"github.com/tilesgalleria/backoffice/internal/domain/trade"
)

// ItemRequest is one line item in a create or update request
type ItemRequest struct {
	ProductID    *uuid.UUID       `json:"product_id"`
	Description  string           `json:"description" binding:"max=500"`
	Category     string           `json:"category" binding:"max=100"`
	Quantity     decimal.Decimal  `json:"quantity"`
	Boxes        *decimal.Decimal `json:"boxes"`
	Price        decimal.Decimal  `json:"price"`
	SellingPrice decimal.Decimal  `json:"selling_price"`
	TaxRate      *decimal.Decimal `json:"tax_rate"`
}

func (r ItemRequest) toInput() trade.ItemInput {
	return trade.ItemInput{
		ProductID:    r.ProductID,
		Description:  r.Description,
		Category:     r.Category,
		Quantity:     r.Quantity,
		Boxes:        r.Boxes,
		UnitPrice:    r.Price,
		SellingPrice: r.SellingPrice,
		TaxRate:      r.TaxRate,
	}
}

// ChargesRequest holds the document-level money inputs. Client-side totals
// are never accepted; the server recomputes them.
type ChargesRequest struct {
	Discount       decimal.Decimal  `json:"discount"`
	ShippingCharge decimal.Decimal  `json:"shipping_charge"`
	Advance        decimal.Decimal  `json:"advance"`
	TaxRate        *decimal.Decimal `json:"tax_rate"`
}

func (c ChargesRequest) toCharges(defaultRate decimal.Decimal) trade.Charges {
	rate := defaultRate
	if c.TaxRate != nil {
		rate = *c.TaxRate
	}
	return trade.Charges{
		Discount:       c.Discount,
		ShippingCharge: c.ShippingCharge,
		Advance:        c.Advance,
		TaxRate:        rate,
	}
}

// StatusRequest changes only a document's status
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func dateOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// ItemResponse is a line item as returned by the API
type ItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    *uuid.UUID      `json:"product_id,omitempty"`
	ProductName  string          `json:"product_name,omitempty"`
	ProductType  string          `json:"product_type,omitempty"`
	Texture      string          `json:"texture,omitempty"`
	Size         string          `json:"size,omitempty"`
	Image        string          `json:"image,omitempty"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	Boxes        decimal.Decimal `json:"boxes"`
	Price        decimal.Decimal `json:"price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	Total        decimal.Decimal `json:"total"`
}

// StockReport summarises what a mutation did to stock
type StockReport struct {
	Adjusted int         `json:"adjusted"`
	Clamped  []uuid.UUID `json:"clamped,omitempty"`
	Skipped  []uuid.UUID `json:"skipped,omitempty"`
}

// ToStockReport converts a ledger report; nil stays nil
func ToStockReport(r *inventory.AdjustmentReport) *StockReport {
	if r == nil {
		return nil
	}
	return &StockReport{Adjusted: r.Len(), Clamped: r.Clamped(), Skipped: r.Skipped()}
}

// DocumentResponse carries the fields every document response shares
type DocumentResponse struct {
	ID        uuid.UUID      `json:"id"`
	Number    string         `json:"number"`
	Date      time.Time      `json:"date"`
	Items     []ItemResponse `json:"items"`
	Totals    trade.Totals   `json:"totals"`
	Notes     string         `json:"notes,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Stock     *StockReport   `json:"stock,omitempty"`
}

func toDocumentResponse(d *trade.Document) DocumentResponse {
	items := make([]ItemResponse, len(d.Items))
	for i, it := range d.Items {
		items[i] = ItemResponse{
			ID:           it.ID,
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			ProductType:  it.ProductType,
			Texture:      it.Texture,
			Size:         it.Size,
			Image:        it.Image,
			Description:  it.Description,
			Category:     it.Category,
			Quantity:     it.Quantity,
			Boxes:        it.Boxes,
			Price:        it.UnitPrice,
			SellingPrice: it.SellingPrice,
			TaxRate:      it.TaxRate,
			Total:        it.Total,
		}
	}
	return DocumentResponse{
		ID:        d.ID,
		Number:    d.Number,
		Date:      d.Date,
		Items:     items,
		Totals:    d.Totals,
		Notes:     d.Notes,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func mapList[T any, R any](docs []T, conv func(*T) R) []R {
	out := make([]R, len(docs))
	for i := range docs {
		out[i] = conv(&docs[i])
	}
	return out
}

func trimmed(s string) string { return strings.TrimSpace(s) }
