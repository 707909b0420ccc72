package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/qwertymuzaffar/retail-backoffice/pkg/db/models"
)

// InventoryItemDTO exposes one per-store stock row.
type InventoryItemDTO struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	StoreID    uuid.UUID `json:"store_id"`
	StockLevel int       `json:"stock_level"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewInventoryItemDTO builds a DTO from the persisted model.
func NewInventoryItemDTO(item *models.InventoryItem) *InventoryItemDTO {
	return &InventoryItemDTO{
		ID:         item.ID,
		ProductID:  item.ProductID,
		StoreID:    item.StoreID,
		StockLevel: item.StockLevel,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}

// StockValidationDTO reports whether a requested quantity can be fulfilled.
type StockValidationDTO struct {
	ProductID  uuid.UUID `json:"product_id"`
	StoreID    uuid.UUID `json:"store_id"`
	Requested  int       `json:"requested"`
	Available  int       `json:"available"`
	Sufficient bool      `json:"sufficient"`
}
