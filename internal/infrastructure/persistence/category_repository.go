package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/catalog"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const resourceCategory = "category"

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	var rows []models.CategoryModel
	query := paginate(search(r.db.WithContext(ctx).Model(&models.CategoryModel{}), filter.Search, "name"), filter, CategorySortFields)
	if err := query.Find(&rows).Error; err != nil {
		return nil, translate("list", resourceCategory, err)
	}
	out := make([]catalog.Category, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, nil
}

func (r *GormCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := search(r.db.WithContext(ctx).Model(&models.CategoryModel{}), filter.Search, "name").Count(&count).Error
	if err != nil {
		return 0, translate("count", resourceCategory, err)
	}
	return count, nil
}

// ExistsByName matches case-insensitively
func (r *GormCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CategoryModel{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Count(&count).Error
	if err != nil {
		return false, translate("find", resourceCategory, err)
	}
	return count > 0, nil
}

func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	var model models.CategoryModel
	model.FromDomain(category)
	return translate("save", resourceCategory, r.db.WithContext(ctx).Save(&model).Error)
}

func (r *GormCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CategoryModel{}, "id = ?", id)
	if result.Error != nil {
		return translate("delete", resourceCategory, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NotFound(resourceCategory)
	}
	return nil
}

var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
