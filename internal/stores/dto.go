package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/qwertymuzaffar/retail-backoffice/pkg/db/models"
)

// StoreDTO is the store payload returned to clients.
type StoreDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewStoreDTO builds a DTO from the persisted model.
func NewStoreDTO(record *models.Store) *StoreDTO {
	return &StoreDTO{
		ID:        record.ID,
		Name:      record.Name,
		Address:   record.Address,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

// NewStoreDTOs maps a model slice into response DTOs.
func NewStoreDTOs(rows []models.Store) []StoreDTO {
	out := make([]StoreDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewStoreDTO(&rows[i]))
	}
	return out
}

// StoreValidationDTO reports whether a store id resolves to a row.
type StoreValidationDTO struct {
	StoreID uuid.UUID `json:"store_id"`
	Exists  bool      `json:"exists"`
}
