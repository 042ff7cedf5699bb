package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/partner"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const resourceVendor = "vendor"

// GormVendorRepository implements VendorRepository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

func (r *GormVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Vendor, error) {
	var model models.VendorModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate("find", resourceVendor, err)
	}
	return model.ToDomain(), nil
}

func (r *GormVendorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Vendor, error) {
	var rows []models.VendorModel
	query := paginate(r.applyFilter(r.db.WithContext(ctx).Model(&models.VendorModel{}), filter), filter, VendorSortFields)
	if err := query.Find(&rows).Error; err != nil {
		return nil, translate("list", resourceVendor, err)
	}
	out := make([]partner.Vendor, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, nil
}

func (r *GormVendorRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.VendorModel{}), filter).Count(&count).Error; err != nil {
		return 0, translate("count", resourceVendor, err)
	}
	return count, nil
}

func (r *GormVendorRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	return existsByEmail(r.db.WithContext(ctx).Model(&models.VendorModel{}), email, excludeID, resourceVendor)
}

func (r *GormVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	var model models.VendorModel
	model.FromDomain(vendor)
	return translate("save", resourceVendor, r.db.WithContext(ctx).Save(&model).Error)
}

func (r *GormVendorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.VendorModel{}, "id = ?", id)
	if result.Error != nil {
		return translate("delete", resourceVendor, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NotFound(resourceVendor)
	}
	return nil
}

func (r *GormVendorRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	return search(query, filter.Search, "name", "email", "phone")
}

var _ partner.VendorRepository = (*GormVendorRepository)(nil)
