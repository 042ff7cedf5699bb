package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/finance"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const resourceExpense = "expense"

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate("find", resourceExpense, err)
	}
	return model.ToDomain(), nil
}

func (r *GormExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Expense, error) {
	var rows []models.ExpenseModel
	query := paginate(r.applyFilter(r.db.WithContext(ctx).Model(&models.ExpenseModel{}), filter), filter, ExpenseSortFields)
	if err := query.Find(&rows).Error; err != nil {
		return nil, translate("list", resourceExpense, err)
	}
	out := make([]finance.Expense, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, nil
}

func (r *GormExpenseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.ExpenseModel{}), filter).Count(&count).Error; err != nil {
		return 0, translate("count", resourceExpense, err)
	}
	return count, nil
}

func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	var model models.ExpenseModel
	model.FromDomain(expense)
	return translate("save", resourceExpense, r.db.WithContext(ctx).Save(&model).Error)
}

func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return translate("delete", resourceExpense, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NotFound(resourceExpense)
	}
	return nil
}

func (r *GormExpenseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = search(query, filter.Search, "reference", "expense_by", "description")
	return equals(query, filter.Filters, "payment_status", "payment_mode")
}

var _ finance.ExpenseRepository = (*GormExpenseRepository)(nil)
