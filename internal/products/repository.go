package product

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/qwertymuzaffar/retail-backoffice/pkg/db/models"
)

// ListFilter narrows the catalog listing. Zero values disable a dimension.
type ListFilter struct {
	SKU       string
	Category  string
	NameQuery string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
}

// Repository wires together product persistence helpers.
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

// Create inserts a new product row, generating the id when absent.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Save overwrites the product row.
func (r *Repository) Save(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindBySKU loads the product carrying the given SKU.
func (r *Repository) FindBySKU(ctx context.Context, sku string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes a product by id and reports how many rows went away.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	return res.RowsAffected, res.Error
}

// List returns catalog rows matching the filter.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{})
	if filter.SKU != "" {
		q = q.Where("sku = ?", filter.SKU)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.NameQuery != "" {
		q = q.Where("LOWER(name) LIKE ?", containsPattern(filter.NameQuery))
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", filter.MaxPrice)
	}

	var rows []models.Product
	err := q.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

// ListByStore returns the products stocked at the given store.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Product, error) {
	var rows []models.Product
	err := r.storeScoped(ctx, storeID).Find(&rows).Error
	return rows, err
}

// FindByStoreAndNameLike returns in-store products whose name contains the
// given fragment, case-insensitively.
func (r *Repository) FindByStoreAndNameLike(ctx context.Context, storeID uuid.UUID, name string) ([]models.Product, error) {
	var rows []models.Product
	err := r.storeScoped(ctx, storeID).
		Where("LOWER(products.name) LIKE ?", containsPattern(name)).
		Find(&rows).Error
	return rows, err
}

// FindByStoreAndCategory returns in-store products with an exact category.
func (r *Repository) FindByStoreAndCategory(ctx context.Context, storeID uuid.UUID, category string) ([]models.Product, error) {
	var rows []models.Product
	err := r.storeScoped(ctx, storeID).
		Where("products.category = ?", category).
		Find(&rows).Error
	return rows, err
}

// FindByStoreNameAndCategory conjoins the name fragment and category filters.
func (r *Repository) FindByStoreNameAndCategory(ctx context.Context, storeID uuid.UUID, name, category string) ([]models.Product, error) {
	var rows []models.Product
	err := r.storeScoped(ctx, storeID).
		Where("LOWER(products.name) LIKE ?", containsPattern(name)).
		Where("products.category = ?", category).
		Find(&rows).Error
	return rows, err
}

func (r *Repository) storeScoped(ctx context.Context, storeID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Joins("JOIN inventory_items ON inventory_items.product_id = products.id").
		Where("inventory_items.store_id = ?", storeID)
}

func containsPattern(fragment string) string {
	return "%" + strings.ToLower(strings.TrimSpace(fragment)) + "%"
}
