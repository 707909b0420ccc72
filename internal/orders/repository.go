package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qwertymuzaffar/retail-backoffice/pkg/db/models"
)

// Repository wires together order persistence helpers.
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

// CreateHeader inserts the order header, stamping the order date once.
func (r *Repository) CreateHeader(ctx context.Context, header *models.OrderDetails) (*models.OrderDetails, error) {
	if header.ID == uuid.Nil {
		header.ID = uuid.New()
	}
	if header.OrderDate.IsZero() {
		header.OrderDate = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(header).Error; err != nil {
		return nil, err
	}
	return header, nil
}

// CreateItem inserts one order line.
func (r *Repository) CreateItem(ctx context.Context, item *models.OrderItem) (*models.OrderItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindByID loads the order header with its line items.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.OrderDetails, error) {
	var header models.OrderDetails
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&header, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &header, nil
}

// ListByCustomer returns the customer's order headers, newest first.
func (r *Repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.OrderDetails, error) {
	var rows []models.OrderDetails
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("order_date DESC").
		Find(&rows).
		Error
	return rows, err
}
