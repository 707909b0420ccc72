package customer

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qwertymuzaffar/retail-backoffice/pkg/db/models"
)

// Repository wires together customer persistence helpers.
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

// Create inserts a new customer row, generating the id when absent.
func (r *Repository) Create(ctx context.Context, record *models.Customer) (*models.Customer, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// FindByID loads the customer.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var record models.Customer
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByEmail loads the first customer carrying the email. Email is a lookup
// key, not a uniqueness guarantee, so the oldest row wins.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var record models.Customer
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at ASC").
		First(&record).
		Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}
