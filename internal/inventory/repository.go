package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qwertymuzaffar/retail-backoffice/pkg/db/models"
)

// Repository wires together inventory persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new inventory row, generating the id when absent.
func (r *Repository) Create(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Save overwrites the inventory row.
func (r *Repository) Save(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindByProductAndStore loads the row for the (product, store) pair.
func (r *Repository) FindByProductAndStore(ctx context.Context, productID, storeID uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.WithContext(ctx).
		First(&item, "product_id = ? AND store_id = ?", productID, storeID).
		Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteByProduct removes every inventory row of the product.
func (r *Repository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&models.InventoryItem{}).
		Error
}

// DecrementStock atomically subtracts quantity from the (product, store) row
// when enough stock remains. It reports whether a row was updated; a false
// return means the row is missing or the stock is insufficient.
func (r *Repository) DecrementStock(ctx context.Context, productID, storeID uuid.UUID, quantity int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("product_id = ? AND store_id = ? AND stock_level >= ?", productID, storeID, quantity).
		Update("stock_level", gorm.Expr("stock_level - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
