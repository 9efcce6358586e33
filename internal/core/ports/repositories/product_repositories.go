package repositories

import (
	"context"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
)

// ProductReader defines read operations for catalog data
type ProductReader interface {
	// FindProductByID retrieves a product by its unique identifier.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// FindProductByCode retrieves a product by its external code.
	FindProductByCode(ctx context.Context, code string) (*domain.Product, error)

	// ListProducts returns products ordered by name, optionally only active ones.
	ListProducts(ctx context.Context, activeOnly bool) ([]domain.Product, error)
}

// ProductWriter defines write operations for catalog data
type ProductWriter interface {
	// SaveProduct persists a new product. Returns apperrors.ErrDuplicate on a code clash.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct overwrites name, code, thresholds, active flag and audit fields.
	UpdateProduct(ctx context.Context, product domain.Product) error
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
