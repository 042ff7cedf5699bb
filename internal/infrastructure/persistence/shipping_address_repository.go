package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/partner"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const resourceShippingAddress = "shipping_address"

// GormShippingAddressRepository implements ShippingAddressRepository using GORM
type GormShippingAddressRepository struct {
	db *gorm.DB
}

// NewGormShippingAddressRepository creates a new GormShippingAddressRepository
func NewGormShippingAddressRepository(db *gorm.DB) *GormShippingAddressRepository {
	return &GormShippingAddressRepository{db: db}
}

func (r *GormShippingAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.ShippingAddress, error) {
	var model models.ShippingAddressModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate("find", resourceShippingAddress, err)
	}
	return model.ToDomain(), nil
}

func (r *GormShippingAddressRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.ShippingAddress, error) {
	var rows []models.ShippingAddressModel
	query := paginate(r.applyFilter(r.db.WithContext(ctx).Model(&models.ShippingAddressModel{}), filter), filter, ShippingAddressSortFields)
	if err := query.Find(&rows).Error; err != nil {
		return nil, translate("list", resourceShippingAddress, err)
	}
	out := make([]partner.ShippingAddress, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, nil
}

func (r *GormShippingAddressRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.ShippingAddressModel{}), filter).Count(&count).Error; err != nil {
		return 0, translate("count", resourceShippingAddress, err)
	}
	return count, nil
}

func (r *GormShippingAddressRepository) Save(ctx context.Context, addr *partner.ShippingAddress) error {
	var model models.ShippingAddressModel
	model.FromDomain(addr)
	return translate("save", resourceShippingAddress, r.db.WithContext(ctx).Save(&model).Error)
}

func (r *GormShippingAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ShippingAddressModel{}, "id = ?", id)
	if result.Error != nil {
		return translate("delete", resourceShippingAddress, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NotFound(resourceShippingAddress)
	}
	return nil
}

func (r *GormShippingAddressRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = search(query, filter.Search, "customer_name", "shipping_address")
	return equals(query, filter.Filters, "customer_id")
}

var _ partner.ShippingAddressRepository = (*GormShippingAddressRepository)(nil)
