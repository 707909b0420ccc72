package store

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qwertymuzaffar/retail-backoffice/pkg/db/models"
)

// Repository wires together store persistence helpers.
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

// Create inserts a new store row, generating the id when absent.
func (r *Repository) Create(ctx context.Context, record *models.Store) (*models.Store, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// FindByID loads the store.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var record models.Store
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns every store ordered by creation time.
func (r *Repository) List(ctx context.Context) ([]models.Store, error) {
	var rows []models.Store
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

// SearchByName returns stores whose name contains the fragment,
// case-insensitively.
func (r *Repository) SearchByName(ctx context.Context, name string) ([]models.Store, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(name)) + "%"
	var rows []models.Store
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", pattern).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}
