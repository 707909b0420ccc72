package customer

import (
	"time"

	"github.com/google/uuid"

	"github.com/qwertymuzaffar/retail-backoffice/pkg/db/models"
)

// CustomerDTO is the customer payload returned to clients.
type CustomerDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCustomerDTO builds a DTO from the persisted model.
func NewCustomerDTO(record *models.Customer) *CustomerDTO {
	return &CustomerDTO{
		ID:        record.ID,
		Name:      record.Name,
		Email:     record.Email,
		Phone:     record.Phone,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}
