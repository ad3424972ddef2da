package repository

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"catalog-service/internal/models"
)

// CustomerRepository defines methods for customers and their branding.
type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	FindCustomerByID(ctx context.Context, id string) (*models.Customer, error)
	UpdateBranding(ctx context.Context, id string, branding models.Branding) error
}

// CustomerRepositoryImpl implements CustomerRepository with GORM.
type CustomerRepositoryImpl struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepositoryImpl {
	return &CustomerRepositoryImpl{db: db}
}

func (r *CustomerRepositoryImpl) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *CustomerRepositoryImpl) FindCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	var c models.Customer
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateBranding replaces the branding document. Returns
// gorm.ErrRecordNotFound for an unknown customer.
func (r *CustomerRepositoryImpl) UpdateBranding(ctx context.Context, id string, branding models.Branding) error {
	res := r.db.WithContext(ctx).Model(&models.Customer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"branding":   datatypes.NewJSONType(branding),
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
