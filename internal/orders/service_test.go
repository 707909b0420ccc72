package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	customerpkg "github.com/qwertymuzaffar/retail-backoffice/internal/customers"
	inventorypkg "github.com/qwertymuzaffar/retail-backoffice/internal/inventory"
	productpkg "github.com/qwertymuzaffar/retail-backoffice/internal/products"
	storepkg "github.com/qwertymuzaffar/retail-backoffice/internal/stores"
	"github.com/qwertymuzaffar/retail-backoffice/pkg/db/models"
	pkgerrors "github.com/qwertymuzaffar/retail-backoffice/pkg/errors"
)

type testTxRunner struct {
	db *gorm.DB
}

func (r testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:orders_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.Store{},
		&models.Product{},
		&models.InventoryItem{},
		&models.Customer{},
		&models.OrderDetails{},
		&models.OrderItem{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(
		NewRepository(db),
		customerpkg.NewRepository(db),
		storepkg.NewRepository(db),
		productpkg.NewRepository(db),
		inventorypkg.NewRepository(db),
		testTxRunner{db: db},
	)
	require.NoError(t, err)
	return svc
}

func seedStore(t *testing.T, db *gorm.DB) models.Store {
	t.Helper()
	record := models.Store{ID: uuid.New(), Name: "Main Street", Address: "1 Main St"}
	require.NoError(t, db.Create(&record).Error)
	return record
}

func seedProduct(t *testing.T, db *gorm.DB, sku, price string) models.Product {
	t.Helper()
	record := models.Product{
		ID:       uuid.New(),
		Name:     "Widget " + sku,
		Category: "widgets",
		Price:    decimal.RequireFromString(price),
		SKU:      sku,
	}
	require.NoError(t, db.Create(&record).Error)
	return record
}

func seedInventory(t *testing.T, db *gorm.DB, productID, storeID uuid.UUID, stock int) models.InventoryItem {
	t.Helper()
	record := models.InventoryItem{
		ID:         uuid.New(),
		ProductID:  productID,
		StoreID:    storeID,
		StockLevel: stock,
	}
	require.NoError(t, db.Create(&record).Error)
	return record
}

func basePlaceOrderInput(storeID uuid.UUID, lines ...OrderLineInput) PlaceOrderInput {
	return PlaceOrderInput{
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		CustomerPhone: "555-0100",
		StoreID:       storeID,
		TotalPrice:    decimal.RequireFromString("42.50"),
		Lines:         lines,
	}
}

func TestPlaceOrderSuccess(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	shop := seedStore(t, db)
	widget := seedProduct(t, db, "W-1", "10.00")
	gadget := seedProduct(t, db, "G-1", "5.25")
	seedInventory(t, db, widget.ID, shop.ID, 10)
	seedInventory(t, db, gadget.ID, shop.ID, 4)

	placed, err := svc.PlaceOrder(ctx, basePlaceOrderInput(shop.ID,
		OrderLineInput{ProductID: widget.ID, Quantity: 3},
		OrderLineInput{ProductID: gadget.ID, Quantity: 4},
	))
	require.NoError(t, err)
	require.Len(t, placed.Items, 2)
	require.True(t, placed.TotalPrice.Equal(decimal.RequireFromString("42.50")))

	var widgetStock, gadgetStock models.InventoryItem
	require.NoError(t, db.First(&widgetStock, "product_id = ?", widget.ID).Error)
	require.NoError(t, db.First(&gadgetStock, "product_id = ?", gadget.ID).Error)
	require.Equal(t, 7, widgetStock.StockLevel)
	require.Equal(t, 0, gadgetStock.StockLevel)

	var items []models.OrderItem
	require.NoError(t, db.Where("order_id = ?", placed.ID).Find(&items).Error)
	require.Len(t, items, 2)
	for _, item := range items {
		if item.ProductID == widget.ID {
			require.True(t, item.Price.Equal(widget.Price))
		}
	}
}

func TestPlaceOrderEmptyPurchaseList(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)

	shop := seedStore(t, db)
	_, err := svc.PlaceOrder(context.Background(), basePlaceOrderInput(shop.ID))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())

	var customerCount, headerCount, itemCount int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&customerCount).Error)
	require.NoError(t, db.Model(&models.OrderDetails{}).Count(&headerCount).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	require.Zero(t, customerCount)
	require.Zero(t, headerCount)
	require.Zero(t, itemCount)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)

	shop := seedStore(t, db)
	widget := seedProduct(t, db, "W-2", "10.00")
	seedInventory(t, db, widget.ID, shop.ID, 5)

	_, err := svc.PlaceOrder(context.Background(), basePlaceOrderInput(shop.ID,
		OrderLineInput{ProductID: widget.ID, Quantity: 6},
	))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())

	var stock models.InventoryItem
	require.NoError(t, db.First(&stock, "product_id = ?", widget.ID).Error)
	require.Equal(t, 5, stock.StockLevel)

	var headerCount int64
	require.NoError(t, db.Model(&models.OrderDetails{}).Count(&headerCount).Error)
	require.Zero(t, headerCount)
}

func TestPlaceOrderRollsBackEarlierLines(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)

	shop := seedStore(t, db)
	widget := seedProduct(t, db, "W-3", "10.00")
	gadget := seedProduct(t, db, "G-3", "3.00")
	seedInventory(t, db, widget.ID, shop.ID, 10)
	seedInventory(t, db, gadget.ID, shop.ID, 1)

	_, err := svc.PlaceOrder(context.Background(), basePlaceOrderInput(shop.ID,
		OrderLineInput{ProductID: widget.ID, Quantity: 2},
		OrderLineInput{ProductID: gadget.ID, Quantity: 2},
	))
	require.Error(t, err)

	var widgetStock models.InventoryItem
	require.NoError(t, db.First(&widgetStock, "product_id = ?", widget.ID).Error)
	require.Equal(t, 10, widgetStock.StockLevel, "first line decrement must roll back")

	var itemCount int64
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	require.Zero(t, itemCount)
}

func TestPlaceOrderStoreMissing(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)

	widget := seedProduct(t, db, "W-4", "10.00")

	_, err := svc.PlaceOrder(context.Background(), basePlaceOrderInput(uuid.New(),
		OrderLineInput{ProductID: widget.ID, Quantity: 1},
	))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestPlaceOrderMissingInventoryRow(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)

	shop := seedStore(t, db)
	widget := seedProduct(t, db, "W-5", "10.00")

	_, err := svc.PlaceOrder(context.Background(), basePlaceOrderInput(shop.ID,
		OrderLineInput{ProductID: widget.ID, Quantity: 1},
	))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestPlaceOrderReusesCustomerByEmail(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	shop := seedStore(t, db)
	widget := seedProduct(t, db, "W-6", "10.00")
	seedInventory(t, db, widget.ID, shop.ID, 10)

	first, err := svc.PlaceOrder(ctx, basePlaceOrderInput(shop.ID,
		OrderLineInput{ProductID: widget.ID, Quantity: 1},
	))
	require.NoError(t, err)

	second, err := svc.PlaceOrder(ctx, basePlaceOrderInput(shop.ID,
		OrderLineInput{ProductID: widget.ID, Quantity: 2},
	))
	require.NoError(t, err)

	require.Equal(t, first.CustomerID, second.CustomerID)

	var customerCount int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&customerCount).Error)
	require.EqualValues(t, 1, customerCount)
}

func TestGetOrderWithItems(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	shop := seedStore(t, db)
	widget := seedProduct(t, db, "W-7", "10.00")
	seedInventory(t, db, widget.ID, shop.ID, 10)

	placed, err := svc.PlaceOrder(ctx, basePlaceOrderInput(shop.ID,
		OrderLineInput{ProductID: widget.ID, Quantity: 2},
	))
	require.NoError(t, err)

	loaded, err := svc.GetOrder(ctx, placed.ID)
	require.NoError(t, err)
	require.Equal(t, placed.ID, loaded.ID)
	require.Len(t, loaded.Items, 1)
	require.Equal(t, 2, loaded.Items[0].Quantity)
}

func TestGetOrderNotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)

	_, err := svc.GetOrder(context.Background(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
