package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/identity"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const resourceUser = "user"

// GormUserRepository implements UserRepository using GORM.
// Usernames and emails are stored lowercased, so lookups compare directly.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByLogin matches the username or the email
func (r *GormUserRepository) FindByLogin(ctx context.Context, login string) (*identity.User, error) {
	login = strings.ToLower(strings.TrimSpace(login))
	return r.first(ctx, "username = ? OR email = ?", login, login)
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	return r.first(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *GormUserRepository) ExistsByUsername(ctx context.Context, username string, excludeID *uuid.UUID) (bool, error) {
	return r.exists(ctx, "username", username, excludeID)
}

func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	return r.exists(ctx, "email", email, excludeID)
}

func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	var model models.UserModel
	model.FromDomain(user)
	return translate("save", resourceUser, r.db.WithContext(ctx).Save(&model).Error)
}

func (r *GormUserRepository) first(ctx context.Context, query string, args ...any) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where(query, args...).First(&model).Error; err != nil {
		return nil, translate("find", resourceUser, err)
	}
	return model.ToDomain(), nil
}

func (r *GormUserRepository) exists(ctx context.Context, column, value string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where(column+" = ?", strings.ToLower(strings.TrimSpace(value)))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, translate("find", resourceUser, err)
	}
	return count > 0, nil
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
