package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/partner"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const resourceCustomer = "customer"

// GormCustomerRepository implements CustomerRepository using GORM.
// Addresses are stored in customer_addresses and always loaded with the customer.
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) withAddresses(db *gorm.DB) *gorm.DB {
	return db.Preload("Addresses", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	})
}

// FindByID finds a customer by ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	var model models.CustomerModel
	if err := r.withAddresses(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate("find", resourceCustomer, err)
	}
	return model.ToDomain(), nil
}

// FindAll finds all customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	var rows []models.CustomerModel
	query := paginate(r.applyFilter(r.withAddresses(r.db.WithContext(ctx)).Model(&models.CustomerModel{}), filter), filter, CustomerSortFields)
	if err := query.Find(&rows).Error; err != nil {
		return nil, translate("list", resourceCustomer, err)
	}
	return toCustomers(rows), nil
}

// Count counts customers matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.CustomerModel{}), filter).Count(&count).Error; err != nil {
		return 0, translate("count", resourceCustomer, err)
	}
	return count, nil
}

// FindRecent returns the newest customers first
func (r *GormCustomerRepository) FindRecent(ctx context.Context, limit int) ([]partner.Customer, error) {
	var rows []models.CustomerModel
	err := r.withAddresses(r.db.WithContext(ctx)).Order("created_at DESC").Limit(recentLimit(limit)).Find(&rows).Error
	if err != nil {
		return nil, translate("list", resourceCustomer, err)
	}
	return toCustomers(rows), nil
}

// ExistsByEmail checks for another customer with the same email, ignoring case
func (r *GormCustomerRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	return existsByEmail(r.db.WithContext(ctx).Model(&models.CustomerModel{}), email, excludeID, resourceCustomer)
}

// Save writes the customer and replaces its address rows in one transaction
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	var model models.CustomerModel
	model.FromDomain(customer)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&model).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", model.ID).Delete(&models.CustomerAddressModel{}).Error; err != nil {
			return err
		}
		if len(model.Addresses) == 0 {
			return nil
		}
		return tx.Create(&model.Addresses).Error
	})
	return translate("save", resourceCustomer, err)
}

// Delete removes a customer and its addresses
func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", id).Delete(&models.CustomerAddressModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.CustomerModel{}, "id = ?", id)
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return translate("delete", resourceCustomer, err)
	}
	if affected == 0 {
		return shared.NotFound(resourceCustomer)
	}
	return nil
}

func (r *GormCustomerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	return search(query, filter.Search, "name", "email", "phone")
}

func toCustomers(rows []models.CustomerModel) []partner.Customer {
	out := make([]partner.Customer, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out
}

// existsByEmail is shared by every table with an email column
func existsByEmail(query *gorm.DB, email string, excludeID *uuid.UUID, resource string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, nil
	}
	query = query.Where("LOWER(email) = ?", email)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, translate("find", resource, err)
	}
	return count > 0, nil
}

var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)
