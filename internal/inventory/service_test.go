package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	productpkg "github.com/qwertymuzaffar/retail-backoffice/internal/products"
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
	dsn := "file:inventory_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(&models.Store{}, &models.Product{}, &models.InventoryItem{})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db), productpkg.NewRepository(db), testTxRunner{db: db})
	require.NoError(t, err)
	return svc
}

func seedStore(t *testing.T, db *gorm.DB, name string) models.Store {
	t.Helper()
	record := models.Store{ID: uuid.New(), Name: name, Address: "1 Main St"}
	require.NoError(t, db.Create(&record).Error)
	return record
}

func seedProduct(t *testing.T, db *gorm.DB, name, category, sku string) models.Product {
	t.Helper()
	record := models.Product{
		ID:       uuid.New(),
		Name:     name,
		Category: category,
		Price:    decimal.RequireFromString("9.99"),
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

func TestNewServiceRequiresDependencies(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	runner := testTxRunner{db: db}

	_, err := NewService(nil, productpkg.NewRepository(db), runner)
	require.Error(t, err)
	_, err = NewService(NewRepository(db), nil, runner)
	require.Error(t, err)
	_, err = NewService(NewRepository(db), productpkg.NewRepository(db), nil)
	require.Error(t, err)
}

func TestCreateInventoryDuplicatePair(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	shop := seedStore(t, db, "Main Street")
	widget := seedProduct(t, db, "Widget", "widgets", "W-1")
	existing := seedInventory(t, db, widget.ID, shop.ID, 7)

	_, err := svc.CreateInventory(ctx, CreateInput{
		ProductID:  widget.ID,
		StoreID:    shop.ID,
		StockLevel: 3,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())

	var row models.InventoryItem
	require.NoError(t, db.First(&row, "id = ?", existing.ID).Error)
	require.Equal(t, 7, row.StockLevel, "existing row must stay untouched")

	var count int64
	require.NoError(t, db.Model(&models.InventoryItem{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestCreateInventorySuccess(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)

	shop := seedStore(t, db, "Main Street")
	widget := seedProduct(t, db, "Widget", "widgets", "W-1")

	created, err := svc.CreateInventory(context.Background(), CreateInput{
		ProductID:  widget.ID,
		StoreID:    shop.ID,
		StockLevel: 12,
	})
	require.NoError(t, err)
	require.Equal(t, 12, created.StockLevel)
	require.NotEqual(t, uuid.Nil, created.ID)
}

func TestUpsertProductMissing(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)

	_, err := svc.Upsert(context.Background(), UpsertInput{
		ProductID: uuid.New(),
		Name:      "Ghost",
		Category:  "widgets",
		Price:     decimal.RequireFromString("1.00"),
		SKU:       "G-1",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestUpsertMissingInventoryRowKeepsProductWrite(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)

	shop := seedStore(t, db, "Main Street")
	widget := seedProduct(t, db, "Widget", "widgets", "W-1")

	_, err := svc.Upsert(context.Background(), UpsertInput{
		ProductID: widget.ID,
		Name:      "Widget v2",
		Category:  "widgets",
		Price:     decimal.RequireFromString("19.99"),
		SKU:       "W-1",
		Inventory: &StockInput{StoreID: shop.ID, StockLevel: 5},
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", widget.ID).Error)
	require.Equal(t, "Widget v2", reloaded.Name, "catalog overwrite stands on its own")

	var count int64
	require.NoError(t, db.Model(&models.InventoryItem{}).Count(&count).Error)
	require.Zero(t, count, "no stock row is invented")
}

func TestUpsertUpdatesProductAndStock(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)

	shop := seedStore(t, db, "Main Street")
	widget := seedProduct(t, db, "Widget", "widgets", "W-1")
	seedInventory(t, db, widget.ID, shop.ID, 2)

	updated, err := svc.Upsert(context.Background(), UpsertInput{
		ProductID: widget.ID,
		Name:      "Widget v2",
		Category:  "gadgets",
		Price:     decimal.RequireFromString("19.99"),
		SKU:       "W-1",
		Inventory: &StockInput{StoreID: shop.ID, StockLevel: 8},
	})
	require.NoError(t, err)
	require.Equal(t, "Widget v2", updated.Name)
	require.Equal(t, "gadgets", updated.Category)

	var row models.InventoryItem
	require.NoError(t, db.First(&row, "product_id = ? AND store_id = ?", widget.ID, shop.ID).Error)
	require.Equal(t, 8, row.StockLevel)
}

func TestFilterProductsSentinels(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	shop := seedStore(t, db, "Main Street")
	other := seedStore(t, db, "Elsewhere")

	hammer := seedProduct(t, db, "Claw Hammer", "tools", "T-1")
	wrench := seedProduct(t, db, "Pipe Wrench", "tools", "T-2")
	mug := seedProduct(t, db, "Coffee Mug", "kitchen", "K-1")
	remote := seedProduct(t, db, "Remote Hammer", "toys", "Y-1")

	seedInventory(t, db, hammer.ID, shop.ID, 1)
	seedInventory(t, db, wrench.ID, shop.ID, 1)
	seedInventory(t, db, mug.ID, shop.ID, 1)
	seedInventory(t, db, remote.ID, other.ID, 1)

	all, err := svc.FilterProducts(ctx, shop.ID, FilterAll, FilterAll)
	require.NoError(t, err)
	require.Len(t, all, 3)

	byName, err := svc.FilterProducts(ctx, shop.ID, FilterAll, "hammer")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	require.Equal(t, hammer.ID, byName[0].ID)

	byCategory, err := svc.FilterProducts(ctx, shop.ID, "tools", FilterAll)
	require.NoError(t, err)
	require.Len(t, byCategory, 2)

	both, err := svc.FilterProducts(ctx, shop.ID, "tools", "wrench")
	require.NoError(t, err)
	require.Len(t, both, 1)
	require.Equal(t, wrench.ID, both[0].ID)
}

func TestSearchProductsScopedToStore(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)

	shop := seedStore(t, db, "Main Street")
	other := seedStore(t, db, "Elsewhere")

	local := seedProduct(t, db, "Garden Hose", "garden", "G-1")
	remote := seedProduct(t, db, "Garden Gnome", "garden", "G-2")
	seedInventory(t, db, local.ID, shop.ID, 1)
	seedInventory(t, db, remote.ID, other.ID, 1)

	found, err := svc.SearchProducts(context.Background(), shop.ID, "garden")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, local.ID, found[0].ID)
}

func TestRemoveProductDeletesInventory(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)

	shop := seedStore(t, db, "Main Street")
	widget := seedProduct(t, db, "Widget", "widgets", "W-1")
	seedInventory(t, db, widget.ID, shop.ID, 4)

	require.NoError(t, svc.RemoveProduct(context.Background(), widget.ID))

	var productCount, inventoryCount int64
	require.NoError(t, db.Model(&models.Product{}).Count(&productCount).Error)
	require.NoError(t, db.Model(&models.InventoryItem{}).Count(&inventoryCount).Error)
	require.Zero(t, productCount)
	require.Zero(t, inventoryCount)
}

func TestRemoveProductMissing(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)

	err := svc.RemoveProduct(context.Background(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestValidateStock(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	shop := seedStore(t, db, "Main Street")
	widget := seedProduct(t, db, "Widget", "widgets", "W-1")
	seedInventory(t, db, widget.ID, shop.ID, 5)

	sufficient, err := svc.ValidateStock(ctx, widget.ID, shop.ID, 5)
	require.NoError(t, err)
	require.True(t, sufficient.Sufficient)
	require.Equal(t, 5, sufficient.Available)

	insufficient, err := svc.ValidateStock(ctx, widget.ID, shop.ID, 6)
	require.NoError(t, err)
	require.False(t, insufficient.Sufficient)
	require.Equal(t, 6, insufficient.Requested)
}

func TestValidateStockMissingRow(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)

	shop := seedStore(t, db, "Main Street")
	widget := seedProduct(t, db, "Widget", "widgets", "W-1")

	_, err := svc.ValidateStock(context.Background(), widget.ID, shop.ID, 1)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestValidateStockRejectsZeroQuantity(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)

	_, err := svc.ValidateStock(context.Background(), uuid.New(), uuid.New(), 0)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDecrementStock(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	shop := seedStore(t, db, "Main Street")
	widget := seedProduct(t, db, "Widget", "widgets", "W-1")
	seedInventory(t, db, widget.ID, shop.ID, 5)

	ok, err := repo.DecrementStock(ctx, widget.ID, shop.ID, 3)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.DecrementStock(ctx, widget.ID, shop.ID, 3)
	require.NoError(t, err)
	require.False(t, ok, "only 2 left, decrement of 3 must not apply")

	var row models.InventoryItem
	require.NoError(t, db.First(&row, "product_id = ?", widget.ID).Error)
	require.Equal(t, 2, row.StockLevel)
}
