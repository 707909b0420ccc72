package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	customerpkg "github.com/qwertymuzaffar/retail-backoffice/internal/customers"
	inventorypkg "github.com/qwertymuzaffar/retail-backoffice/internal/inventory"
	productpkg "github.com/qwertymuzaffar/retail-backoffice/internal/products"
	storepkg "github.com/qwertymuzaffar/retail-backoffice/internal/stores"
	"github.com/qwertymuzaffar/retail-backoffice/pkg/db/models"
	pkgerrors "github.com/qwertymuzaffar/retail-backoffice/pkg/errors"
)

// Service exposes order placement and reads.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*OrderDTO, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error)
}

// PlaceOrderInput is the validated order placement payload. TotalPrice comes
// from the caller and is stored as-is.
type PlaceOrderInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	StoreID       uuid.UUID
	TotalPrice    decimal.Decimal
	Lines         []OrderLineInput
}

// OrderLineInput is one requested purchase line.
type OrderLineInput struct {
	ProductID uuid.UUID
	Quantity  int
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo          *Repository
	customerRepo  *customerpkg.Repository
	storeRepo     *storepkg.Repository
	productRepo   *productpkg.Repository
	inventoryRepo *inventorypkg.Repository
	dbClient      txRunner
}

// NewService constructs an order service instance.
func NewService(
	repo *Repository,
	customerRepo *customerpkg.Repository,
	storeRepo *storepkg.Repository,
	productRepo *productpkg.Repository,
	inventoryRepo *inventorypkg.Repository,
	dbClient txRunner,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if customerRepo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	if storeRepo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if productRepo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if inventoryRepo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		repo:          repo,
		customerRepo:  customerRepo,
		storeRepo:     storeRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		dbClient:      dbClient,
	}, nil
}

// PlaceOrder resolves the customer by email (creating one when absent),
// writes the header, and for each line decrements stock with a conditional
// update and snapshots the product price. Everything runs inside one
// transaction; any failure leaves no rows behind.
func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*OrderDTO, error) {
	if err := validatePlaceOrder(input); err != nil {
		return nil, err
	}

	var placed *models.OrderDetails
	txErr := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txOrders := s.repo.WithTx(tx)
		txCustomers := s.customerRepo.WithTx(tx)
		txStores := s.storeRepo.WithTx(tx)
		txProducts := s.productRepo.WithTx(tx)
		txInventory := s.inventoryRepo.WithTx(tx)

		buyer, err := txCustomers.FindByEmail(ctx, input.CustomerEmail)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			buyer, err = txCustomers.Create(ctx, &models.Customer{
				Name:  input.CustomerName,
				Email: input.CustomerEmail,
				Phone: input.CustomerPhone,
			})
			if err != nil {
				return err
			}
		}

		if _, err := txStores.FindByID(ctx, input.StoreID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
			}
			return err
		}

		header, err := txOrders.CreateHeader(ctx, &models.OrderDetails{
			CustomerID: buyer.ID,
			StoreID:    input.StoreID,
			TotalPrice: input.TotalPrice,
		})
		if err != nil {
			return err
		}

		for _, line := range input.Lines {
			item, err := txProducts.FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
						WithDetails(map[string]any{"product_id": line.ProductID})
				}
				return err
			}

			decremented, err := txInventory.DecrementStock(ctx, line.ProductID, input.StoreID, line.Quantity)
			if err != nil {
				return err
			}
			if !decremented {
				return classifyDecrementFailure(ctx, txInventory, line, input.StoreID)
			}

			created, err := txOrders.CreateItem(ctx, &models.OrderItem{
				OrderID:   header.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     item.Price,
			})
			if err != nil {
				return err
			}
			header.Items = append(header.Items, *created)
		}

		placed = header
		return nil
	})
	if txErr != nil {
		if typed := pkgerrors.As(txErr); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, txErr, "place order")
	}

	return NewOrderDTO(placed), nil
}

// classifyDecrementFailure disambiguates a zero-row conditional update into
// a missing inventory row versus insufficient stock.
func classifyDecrementFailure(ctx context.Context, txInventory *inventorypkg.Repository, line OrderLineInput, storeID uuid.UUID) error {
	current, err := txInventory.FindByProductAndStore(ctx, line.ProductID, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "no inventory row for product at store").
				WithDetails(map[string]any{"product_id": line.ProductID, "store_id": storeID})
		}
		return err
	}
	return pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock").
		WithDetails(map[string]any{
			"product_id": line.ProductID,
			"store_id":   storeID,
			"requested":  line.Quantity,
			"available":  current.StockLevel,
		})
}

func validatePlaceOrder(input PlaceOrderInput) error {
	if len(input.Lines) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "purchase list cannot be empty")
	}
	for _, line := range input.Lines {
		if line.ProductID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "product id is required for every line")
		}
		if line.Quantity < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}
	}
	if input.StoreID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}
	if strings.TrimSpace(input.CustomerName) == "" ||
		strings.TrimSpace(input.CustomerEmail) == "" ||
		strings.TrimSpace(input.CustomerPhone) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name, email and phone are required")
	}
	if input.TotalPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "total price cannot be negative")
	}
	return nil
}

func (s *service) GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error) {
	header, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return NewOrderDTO(header), nil
}
