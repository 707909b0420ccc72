package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qwertymuzaffar/retail-backoffice/pkg/db/models"
	pkgerrors "github.com/qwertymuzaffar/retail-backoffice/pkg/errors"
)

// Service exposes customer read operations.
type Service interface {
	GetCustomer(ctx context.Context, customerID uuid.UUID) (*CustomerDTO, error)
	LookupByEmail(ctx context.Context, email string) (*CustomerDTO, error)
	CustomerOrders(ctx context.Context, customerID uuid.UUID) ([]models.OrderDetails, error)
}

type orderLister interface {
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.OrderDetails, error)
}

type service struct {
	repo   *Repository
	orders orderLister
}

// NewService constructs a customer service instance.
func NewService(repo *Repository, orders orderLister) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order lister required")
	}
	return &service{repo: repo, orders: orders}, nil
}

func (s *service) GetCustomer(ctx context.Context, customerID uuid.UUID) (*CustomerDTO, error) {
	record, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	return NewCustomerDTO(record), nil
}

func (s *service) LookupByEmail(ctx context.Context, email string) (*CustomerDTO, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	record, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup customer")
	}
	return NewCustomerDTO(record), nil
}

// CustomerOrders returns the order headers of a known customer.
func (s *service) CustomerOrders(ctx context.Context, customerID uuid.UUID) ([]models.OrderDetails, error) {
	if _, err := s.repo.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}

	rows, err := s.orders.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customer orders")
	}
	return rows, nil
}
