package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem tracks the stock level of one product at one store.
// A (product, store) pair has at most one row.
type InventoryItem struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:uq_inventory_product_store"`
	StoreID    uuid.UUID `gorm:"column:store_id;type:uuid;not null;uniqueIndex:uq_inventory_product_store"`
	StockLevel int       `gorm:"column:stock_level;not null;default:0;check:stock_level >= 0"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
