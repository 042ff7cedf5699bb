package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"github.com/tilesgalleria/backoffice/internal/domain/trade"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const resourcePrePurchase = "pre_purchase"

// GormPrePurchaseRepository implements PrePurchaseRepository using GORM
type GormPrePurchaseRepository struct {
	db *gorm.DB
}

// NewGormPrePurchaseRepository creates a new GormPrePurchaseRepository
func NewGormPrePurchaseRepository(db *gorm.DB) *GormPrePurchaseRepository {
	return &GormPrePurchaseRepository{db: db}
}

func (r *GormPrePurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PrePurchase, error) {
	var model models.PrePurchaseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate("find", resourcePrePurchase, err)
	}
	return model.ToDomain(), nil
}

func (r *GormPrePurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.PrePurchase, error) {
	var rows []models.PrePurchaseModel
	query := paginate(search(r.db.WithContext(ctx).Model(&models.PrePurchaseModel{}), filter.Search, "vendor_name", "description"), filter, PrePurchaseSortFields)
	if err := query.Find(&rows).Error; err != nil {
		return nil, translate("list", resourcePrePurchase, err)
	}
	out := make([]trade.PrePurchase, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, nil
}

func (r *GormPrePurchaseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := search(r.db.WithContext(ctx).Model(&models.PrePurchaseModel{}), filter.Search, "vendor_name", "description").Count(&count).Error
	if err != nil {
		return 0, translate("count", resourcePrePurchase, err)
	}
	return count, nil
}

func (r *GormPrePurchaseRepository) Save(ctx context.Context, p *trade.PrePurchase) error {
	var model models.PrePurchaseModel
	model.FromDomain(p)
	return translate("save", resourcePrePurchase, r.db.WithContext(ctx).Save(&model).Error)
}

func (r *GormPrePurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PrePurchaseModel{}, "id = ?", id)
	if result.Error != nil {
		return translate("delete", resourcePrePurchase, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NotFound(resourcePrePurchase)
	}
	return nil
}

var _ trade.PrePurchaseRepository = (*GormPrePurchaseRepository)(nil)
