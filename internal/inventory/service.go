package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	productpkg "github.com/qwertymuzaffar/retail-backoffice/internal/products"
	"github.com/qwertymuzaffar/retail-backoffice/pkg/db"
	"github.com/qwertymuzaffar/retail-backoffice/pkg/db/models"
	pkgerrors "github.com/qwertymuzaffar/retail-backoffice/pkg/errors"
)

// FilterAll is the path value that disables a filter dimension. Existing
// clients send the literal string, so it stays.
const FilterAll = "null"

// Service exposes per-store inventory operations.
type Service interface {
	Upsert(ctx context.Context, input UpsertInput) (*productpkg.ProductDTO, error)
	CreateInventory(ctx context.Context, input CreateInput) (*InventoryItemDTO, error)
	ProductsByStore(ctx context.Context, storeID uuid.UUID) ([]productpkg.ProductDTO, error)
	FilterProducts(ctx context.Context, storeID uuid.UUID, category, name string) ([]productpkg.ProductDTO, error)
	SearchProducts(ctx context.Context, storeID uuid.UUID, name string) ([]productpkg.ProductDTO, error)
	RemoveProduct(ctx context.Context, productID uuid.UUID) error
	ValidateStock(ctx context.Context, productID, storeID uuid.UUID, quantity int) (*StockValidationDTO, error)
}

// UpsertInput carries the combined product overwrite plus an optional stock
// level update for one store.
type UpsertInput struct {
	ProductID uuid.UUID
	Name      string
	Category  string
	Price     decimal.Decimal
	SKU       string
	Inventory *StockInput
}

// StockInput pins a stock level to a store.
type StockInput struct {
	StoreID    uuid.UUID
	StockLevel int
}

// CreateInput creates the first stock row for a (product, store) pair.
type CreateInput struct {
	ProductID  uuid.UUID
	StoreID    uuid.UUID
	StockLevel int
}

type productStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Save(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Product, error)
	FindByStoreAndNameLike(ctx context.Context, storeID uuid.UUID, name string) ([]models.Product, error)
	FindByStoreAndCategory(ctx context.Context, storeID uuid.UUID, category string) ([]models.Product, error)
	FindByStoreNameAndCategory(ctx context.Context, storeID uuid.UUID, name, category string) ([]models.Product, error)
	WithTx(tx *gorm.DB) *productpkg.Repository
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo        *Repository
	productRepo productStore
	dbClient    txRunner
}

// NewService constructs an inventory service instance.
func NewService(repo *Repository, productRepo productStore, dbClient txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if productRepo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, productRepo: productRepo, dbClient: dbClient}, nil
}

// Upsert overwrites the catalog row and, when a stock payload is present,
// the stock level of the existing (product, store) row. The catalog
// overwrite stands on its own: a missing stock row is reported after the
// product write, never undone.
func (s *service) Upsert(ctx context.Context, input UpsertInput) (*productpkg.ProductDTO, error) {
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Inventory != nil && input.Inventory.StockLevel < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock level cannot be negative")
	}

	existing, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	existing.Name = input.Name
	existing.Category = input.Category
	existing.Price = input.Price
	existing.SKU = input.SKU

	saved, err := s.productRepo.Save(ctx, existing)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_products_sku") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "sku already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "overwrite product")
	}

	if input.Inventory == nil {
		return productpkg.NewProductDTO(saved), nil
	}

	item, err := s.repo.FindByProductAndStore(ctx, input.ProductID, input.Inventory.StoreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no inventory row for product at store")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory")
	}

	item.StockLevel = input.Inventory.StockLevel
	if _, err := s.repo.Save(ctx, item); err != nil {
		if db.IsUniqueViolation(err, "uq_inventory_product_store") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "inventory row already exists for product and store")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save inventory")
	}

	return productpkg.NewProductDTO(saved), nil
}

// CreateInventory inserts the stock row for a pair that has none yet.
func (s *service) CreateInventory(ctx context.Context, input CreateInput) (*InventoryItemDTO, error) {
	if input.StockLevel < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock level cannot be negative")
	}

	if _, err := s.repo.FindByProductAndStore(ctx, input.ProductID, input.StoreID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "inventory row already exists for product and store")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check inventory")
	}

	created, err := s.repo.Create(ctx, &models.InventoryItem{
		ProductID:  input.ProductID,
		StoreID:    input.StoreID,
		StockLevel: input.StockLevel,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "uq_inventory_product_store") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "inventory row already exists for product and store")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create inventory")
	}
	return NewInventoryItemDTO(created), nil
}

func (s *service) ProductsByStore(ctx context.Context, storeID uuid.UUID) ([]productpkg.ProductDTO, error) {
	rows, err := s.productRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list store products")
	}
	return productpkg.NewProductDTOs(rows), nil
}

// FilterProducts narrows the store catalog by category and name fragment.
// The literal path value "null" disables that dimension.
func (s *service) FilterProducts(ctx context.Context, storeID uuid.UUID, category, name string) ([]productpkg.ProductDTO, error) {
	var (
		rows []models.Product
		err  error
	)
	switch {
	case category == FilterAll && name == FilterAll:
		rows, err = s.productRepo.ListByStore(ctx, storeID)
	case category == FilterAll:
		rows, err = s.productRepo.FindByStoreAndNameLike(ctx, storeID, name)
	case name == FilterAll:
		rows, err = s.productRepo.FindByStoreAndCategory(ctx, storeID, category)
	default:
		rows, err = s.productRepo.FindByStoreNameAndCategory(ctx, storeID, name, category)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "filter store products")
	}
	return productpkg.NewProductDTOs(rows), nil
}

func (s *service) SearchProducts(ctx context.Context, storeID uuid.UUID, name string) ([]productpkg.ProductDTO, error) {
	rows, err := s.productRepo.FindByStoreAndNameLike(ctx, storeID, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search store products")
	}
	return productpkg.NewProductDTOs(rows), nil
}

// RemoveProduct deletes the catalog row plus its stock rows in one
// transaction. A missing product is reported, not silently acknowledged.
func (s *service) RemoveProduct(ctx context.Context, productID uuid.UUID) error {
	txErr := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txProducts := s.productRepo.WithTx(tx)
		txInventory := s.repo.WithTx(tx)

		if err := txInventory.DeleteByProduct(ctx, productID); err != nil {
			return err
		}
		affected, err := txProducts.Delete(ctx, productID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil
	})
	if txErr != nil {
		if typed := pkgerrors.As(txErr); typed != nil {
			return typed
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, txErr, "remove product")
	}
	return nil
}

// ValidateStock reports whether the store can fulfil the requested quantity.
// A missing stock row is a definite NotFound, never a crash.
func (s *service) ValidateStock(ctx context.Context, productID, storeID uuid.UUID, quantity int) (*StockValidationDTO, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	item, err := s.repo.FindByProductAndStore(ctx, productID, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no inventory row for product at store")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory")
	}

	return &StockValidationDTO{
		ProductID:  productID,
		StoreID:    storeID,
		Requested:  quantity,
		Available:  item.StockLevel,
		Sufficient: item.StockLevel >= quantity,
	}, nil
}
