package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tilesgalleria/backoffice/internal/domain/inventory"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// floorExpr adds a delta to a counter, flooring at zero and rounding to cents
const floorExpr = "CASE WHEN %[1]s + ? < 0 THEN 0 ELSE ROUND(%[1]s + ?, 2) END"

// GormStockRepository applies stock deltas with a single UPDATE per product.
// On postgres the row is locked first so Before and After are exact.
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

type stockRow struct {
	Quantity decimal.Decimal
	Boxes    decimal.Decimal
}

// Adjust implements inventory.StockRepository
func (r *GormStockRepository) Adjust(ctx context.Context, d inventory.Delta) (inventory.StockChange, error) {
	db := r.db.WithContext(ctx)

	read := db.Model(&models.ProductModel{}).Select("quantity", "boxes").Where("id = ?", d.ProductID)
	if db.Dialector.Name() == "postgres" {
		read = read.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}
	var row stockRow
	if err := read.Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return inventory.StockChange{}, nil
		}
		return inventory.StockChange{}, shared.WrapDomainError(shared.CodeStockAdjustmentFailed, "failed to read stock", err)
	}

	before := inventory.Stock{Quantity: row.Quantity, Boxes: row.Boxes}
	if d.IsZero() {
		return inventory.StockChange{Found: true, Before: before, After: before}, nil
	}

	result := db.Model(&models.ProductModel{}).
		Where("id = ?", d.ProductID).
		UpdateColumns(map[string]any{
			"quantity":   gorm.Expr(fmt.Sprintf(floorExpr, "quantity"), d.Quantity, d.Quantity),
			"boxes":      gorm.Expr(fmt.Sprintf(floorExpr, "boxes"), d.Boxes, d.Boxes),
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		return inventory.StockChange{}, shared.WrapDomainError(shared.CodeStockAdjustmentFailed, "failed to adjust stock", result.Error)
	}
	if result.RowsAffected == 0 {
		// deleted between the read and the write
		return inventory.StockChange{}, nil
	}

	after, clamped := inventory.ApplyFloor(before, d)
	after.Quantity = after.Quantity.Round(2)
	after.Boxes = after.Boxes.Round(2)
	return inventory.StockChange{Found: true, Before: before, After: after, Clamped: clamped}, nil
}

var _ inventory.StockRepository = (*GormStockRepository)(nil)
