package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/qwertymuzaffar/retail-backoffice/pkg/db/models"
)

// OrderDTO is the order payload returned to clients.
type OrderDTO struct {
	ID         uuid.UUID       `json:"id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	StoreID    uuid.UUID       `json:"store_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	OrderDate  time.Time       `json:"order_date"`
	Items      []OrderItemDTO  `json:"items,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// OrderItemDTO is one purchased line with its price snapshot.
type OrderItemDTO struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// NewOrderDTO builds a DTO from the persisted header and its items.
func NewOrderDTO(header *models.OrderDetails) *OrderDTO {
	dto := &OrderDTO{
		ID:         header.ID,
		CustomerID: header.CustomerID,
		StoreID:    header.StoreID,
		TotalPrice: header.TotalPrice,
		OrderDate:  header.OrderDate,
		CreatedAt:  header.CreatedAt,
	}
	for i := range header.Items {
		item := &header.Items[i]
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return dto
}

// NewOrderDTOs maps order headers into response DTOs.
func NewOrderDTOs(rows []models.OrderDetails) []OrderDTO {
	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewOrderDTO(&rows[i]))
	}
	return out
}
