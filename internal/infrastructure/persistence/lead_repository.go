package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/partner"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const resourceLead = "lead"

// GormLeadRepository implements LeadRepository using GORM
type GormLeadRepository struct {
	db *gorm.DB
}

// NewGormLeadRepository creates a new GormLeadRepository
func NewGormLeadRepository(db *gorm.DB) *GormLeadRepository {
	return &GormLeadRepository{db: db}
}

func (r *GormLeadRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Lead, error) {
	var model models.LeadModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate("find", resourceLead, err)
	}
	return model.ToDomain(), nil
}

func (r *GormLeadRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Lead, error) {
	var rows []models.LeadModel
	query := paginate(r.applyFilter(r.db.WithContext(ctx).Model(&models.LeadModel{}), filter), filter, LeadSortFields)
	if err := query.Find(&rows).Error; err != nil {
		return nil, translate("list", resourceLead, err)
	}
	return toLeads(rows), nil
}

func (r *GormLeadRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.LeadModel{}), filter).Count(&count).Error; err != nil {
		return 0, translate("count", resourceLead, err)
	}
	return count, nil
}

func (r *GormLeadRepository) FindRecent(ctx context.Context, limit int) ([]partner.Lead, error) {
	var rows []models.LeadModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(recentLimit(limit)).Find(&rows).Error; err != nil {
		return nil, translate("list", resourceLead, err)
	}
	return toLeads(rows), nil
}

func (r *GormLeadRepository) Save(ctx context.Context, lead *partner.Lead) error {
	var model models.LeadModel
	model.FromDomain(lead)
	return translate("save", resourceLead, r.db.WithContext(ctx).Save(&model).Error)
}

func (r *GormLeadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.LeadModel{}, "id = ?", id)
	if result.Error != nil {
		return translate("delete", resourceLead, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NotFound(resourceLead)
	}
	return nil
}

func (r *GormLeadRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = search(query, filter.Search, "name", "email", "phone")
	return equals(query, filter.Filters, "status")
}

func toLeads(rows []models.LeadModel) []partner.Lead {
	out := make([]partner.Lead, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out
}

var _ partner.LeadRepository = (*GormLeadRepository)(nil)
