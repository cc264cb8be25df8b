package product

import (
	"context"
	"strings"

	"github.com/jcastellanos/pos-backend/pkg/db"
	"github.com/jcastellanos/pos-backend/pkg/db/models"
	pkgerrors "github.com/jcastellanos/pos-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// NameUniqueIndex is the storage-level guard for case-insensitive name
// uniqueness.
const NameUniqueIndex = "idx_products_name_lower"

// Repository maps the product entity onto the relational store.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindAll returns every product in store-default order.
func (r *Repository) FindAll(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).Find(&rows).Error
	return rows, err
}

// FindByID loads a single product, passing through gorm.ErrRecordNotFound.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByNameIgnoreCase loads the product whose name matches exactly, ignoring
// case.
func (r *Repository) FindByNameIgnoreCase(ctx context.Context, name string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "LOWER(name) = LOWER(?)", name).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// SearchByName returns products whose name contains the given fragment,
// ignoring case.
func (r *Repository) SearchByName(ctx context.Context, namePart string) ([]models.Product, error) {
	pattern := "%" + strings.ToLower(namePart) + "%"
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", pattern).
		Find(&rows).
		Error
	return rows, err
}

// FindByPriceBetween returns products priced within [min, max] inclusive.
func (r *Repository) FindByPriceBetween(ctx context.Context, min, max decimal.Decimal) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("price BETWEEN ? AND ?", min, max).
		Find(&rows).
		Error
	return rows, err
}

// FindByPriceGreaterThan returns products priced strictly above the given
// value.
func (r *Repository) FindByPriceGreaterThan(ctx context.Context, price decimal.Decimal) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("price > ?", price).
		Find(&rows).
		Error
	return rows, err
}

// FindByStockLessThan returns products whose stock is strictly below the
// threshold.
func (r *Repository) FindByStockLessThan(ctx context.Context, threshold int) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("stock_quantity < ?", threshold).
		Find(&rows).
		Error
	return rows, err
}

// FindAvailable returns products with stock strictly greater than zero.
func (r *Repository) FindAvailable(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("stock_quantity > 0").
		Find(&rows).
		Error
	return rows, err
}

// ExistsByNameIgnoreCase reports whether any product carries the name under
// case-insensitive comparison.
func (r *Repository) ExistsByNameIgnoreCase(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).
		Error
	return count > 0, err
}

// ExistsByID reports whether a product with the given identifier exists.
func (r *Repository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Count(&count).
		Error
	return count > 0, err
}

// Create inserts a new product row. Unique index violations surface as a
// conflict error.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		if db.IsUniqueViolation(err, NameUniqueIndex) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product name already exists")
		}
		return nil, err
	}
	return product, nil
}

// Update saves an existing product row. Unique index violations surface as a
// conflict error.
func (r *Repository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		if db.IsUniqueViolation(err, NameUniqueIndex) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product name already exists")
		}
		return nil, err
	}
	return product, nil
}

// DeleteByID removes a product permanently.
func (r *Repository) DeleteByID(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}
