package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qwertymuzaffar/retail-backoffice/pkg/db/models"
	pkgerrors "github.com/qwertymuzaffar/retail-backoffice/pkg/errors"
)

// Service exposes store management operations.
type Service interface {
	CreateStore(ctx context.Context, input CreateStoreInput) (*StoreDTO, error)
	ValidateStore(ctx context.Context, storeID uuid.UUID) (*StoreValidationDTO, error)
	ListStores(ctx context.Context) ([]StoreDTO, error)
	SearchStores(ctx context.Context, name string) ([]StoreDTO, error)
}

// CreateStoreInput holds the validated payload to create a store.
type CreateStoreInput struct {
	Name    string
	Address string
}

type service struct {
	repo *Repository
}

// NewService constructs a store service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateStore(ctx context.Context, input CreateStoreInput) (*StoreDTO, error) {
	created, err := s.repo.Create(ctx, &models.Store{
		Name:    input.Name,
		Address: input.Address,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create store")
	}
	return NewStoreDTO(created), nil
}

// ValidateStore reports existence without treating a missing store as an
// error; callers use it as a pre-check before placing orders.
func (s *service) ValidateStore(ctx context.Context, storeID uuid.UUID) (*StoreValidationDTO, error) {
	if _, err := s.repo.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &StoreValidationDTO{StoreID: storeID, Exists: false}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	return &StoreValidationDTO{StoreID: storeID, Exists: true}, nil
}

func (s *service) ListStores(ctx context.Context) ([]StoreDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}
	return NewStoreDTOs(rows), nil
}

func (s *service) SearchStores(ctx context.Context, name string) ([]StoreDTO, error) {
	rows, err := s.repo.SearchByName(ctx, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search stores")
	}
	return NewStoreDTOs(rows), nil
}
