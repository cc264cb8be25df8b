package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jcastellanos/pos-backend/pkg/db/models"
	pkgerrors "github.com/jcastellanos/pos-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultLowStockThreshold applies when a low-stock query does not name one.
const DefaultLowStockThreshold = 10

// Service exposes the product management operations.
type Service interface {
	Create(ctx context.Context, input ProductInput) (*ProductDTO, error)
	GetAll(ctx context.Context) ([]ProductDTO, error)
	GetByID(ctx context.Context, id int64) (*ProductDTO, error)
	GetByName(ctx context.Context, name string) (*ProductDTO, error)
	Update(ctx context.Context, id int64, input ProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, namePart string) ([]ProductDTO, error)
	GetByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]ProductDTO, error)
	GetAbovePrice(ctx context.Context, price decimal.Decimal) ([]ProductDTO, error)
	GetLowStock(ctx context.Context, threshold int) ([]ProductDTO, error)
	GetAvailable(ctx context.Context) ([]ProductDTO, error)
	UpdateStockQuantity(ctx context.Context, id int64, quantity int) (*ProductDTO, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// ProductInput holds the validated payload to create or fully update a
// product.
type ProductInput struct {
	Name          string
	Description   *string
	Price         decimal.Decimal
	StockQuantity int
}

// service implements the product service. It holds no per-request state and
// is safe for concurrent use.
type service struct {
	repo *Repository
}

// NewService constructs a product service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

// Create persists a new product after checking for a case-insensitive name
// collision. The unique index on LOWER(name) remains the authoritative guard
// under concurrent writers.
func (s *service) Create(ctx context.Context, input ProductInput) (*ProductDTO, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByNameIgnoreCase(ctx, input.Name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check product name")
	}
	if taken {
		return nil, duplicateNameError(input.Name)
	}

	created, err := s.repo.Create(ctx, &models.Product{
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}
	return NewProductDTO(created), nil
}

// GetAll returns a full snapshot of the catalog.
func (s *service) GetAll(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	return NewProductDTOs(rows), nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*ProductDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError(id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return NewProductDTO(row), nil
}

func (s *service) GetByName(ctx context.Context, name string) (*ProductDTO, error) {
	row, err := s.repo.FindByNameIgnoreCase(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product not found with name: %s", name))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product by name")
	}
	return NewProductDTO(row), nil
}

// Update overwrites name, description, price, and stock quantity. The
// identifier and created timestamp are preserved; the updated timestamp
// refreshes. Renaming onto another product's name (case-insensitively) is a
// conflict; a case-only rename of the product's own name is allowed.
func (s *service) Update(ctx context.Context, id int64, input ProductInput) (*ProductDTO, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError(id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}

	newName := strings.TrimSpace(input.Name)
	if !strings.EqualFold(row.Name, newName) {
		taken, err := s.repo.ExistsByNameIgnoreCase(ctx, newName)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check product name")
		}
		if taken {
			return nil, duplicateNameError(newName)
		}
	}

	row.Name = newName
	row.Description = input.Description
	row.Price = input.Price
	row.StockQuantity = input.StockQuantity

	updated, err := s.repo.Update(ctx, row)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}
	return NewProductDTO(updated), nil
}

// Delete removes the product permanently.
func (s *service) Delete(ctx context.Context, id int64) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check product")
	}
	if !exists {
		return notFoundError(id)
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	return nil
}

// Search matches product names by case-insensitive substring. No ranking.
func (s *service) Search(ctx context.Context, namePart string) ([]ProductDTO, error) {
	rows, err := s.repo.SearchByName(ctx, namePart)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: search products")
	}
	return NewProductDTOs(rows), nil
}

// GetByPriceRange returns products priced within the inclusive bounds. A
// min greater than max is not rejected; the store returns an empty result.
func (s *service) GetByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]ProductDTO, error) {
	rows, err := s.repo.FindByPriceBetween(ctx, min, max)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: filter by price range")
	}
	return NewProductDTOs(rows), nil
}

func (s *service) GetAbovePrice(ctx context.Context, price decimal.Decimal) ([]ProductDTO, error) {
	rows, err := s.repo.FindByPriceGreaterThan(ctx, price)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: filter by price")
	}
	return NewProductDTOs(rows), nil
}

// GetLowStock returns products with stock strictly below the threshold.
func (s *service) GetLowStock(ctx context.Context, threshold int) ([]ProductDTO, error) {
	rows, err := s.repo.FindByStockLessThan(ctx, threshold)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: filter by stock")
	}
	return NewProductDTOs(rows), nil
}

// GetAvailable returns products with stock strictly greater than zero.
func (s *service) GetAvailable(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.FindAvailable(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: filter available")
	}
	return NewProductDTOs(rows), nil
}

// UpdateStockQuantity overwrites the stock quantity only; other fields stay
// untouched and the updated timestamp refreshes.
func (s *service) UpdateStockQuantity(ctx context.Context, id int64, quantity int) (*ProductDTO, error) {
	if quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock quantity cannot be negative")
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError(id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}

	row.StockQuantity = quantity
	updated, err := s.repo.Update(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update stock quantity")
	}
	return NewProductDTO(updated), nil
}

// Exists is a boolean existence probe.
func (s *service) Exists(ctx context.Context, id int64) (bool, error) {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check product")
	}
	return exists, nil
}

func validateInput(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.StockQuantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock quantity cannot be negative")
	}
	return nil
}

func duplicateNameError(name string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("product with name '%s' already exists", strings.TrimSpace(name)))
}

func notFoundError(id int64) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product not found with id: %d", id))
}
