package services

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

type CustomerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

// CreateCustomer registers a customer. Ids are stored lowercase.
func (s *CustomerService) CreateCustomer(ctx context.Context, id, name string) (*models.Customer, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	name = strings.TrimSpace(name)
	if id == "" || name == "" {
		return nil, invalidInput("id and name are required")
	}
	existing, err := s.repo.FindCustomerByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "find customer")
	}
	if existing != nil {
		return nil, errors.Wrapf(ErrConflict, "customer %s already exists", id)
	}
	c := &models.Customer{ID: id, Name: name, Branding: datatypes.NewJSONType(models.Branding{})}
	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		return nil, errors.Wrap(err, "create customer")
	}
	return c, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	c, err := s.repo.FindCustomerByID(ctx, strings.ToLower(strings.TrimSpace(id)))
	if err != nil {
		return nil, errors.Wrap(err, "find customer")
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

// UpdateBranding replaces the customer's branding.
func (s *CustomerService) UpdateBranding(ctx context.Context, id string, branding models.Branding) (*models.Customer, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if err := s.repo.UpdateBranding(ctx, id, branding); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "update branding")
	}
	return s.GetCustomer(ctx, id)
}
