package services

import (
	"context"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	"github.com/SscSPs/inventory_ledger/internal/dto"
)

// ProductReaderSvc defines read operations for the catalog
type ProductReaderSvc interface {
	// GetProductByID retrieves a product by its ID.
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts returns products ordered by name.
	ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error)
}

// ProductWriterSvc defines write operations for the catalog. All of them are admin-only.
type ProductWriterSvc interface {
	// CreateProduct validates and persists a new product.
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, actor domain.ActingUser) (*domain.Product, error)

	// UpdateProduct applies a partial update, including the active flag when set.
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, actor domain.ActingUser) (*domain.Product, error)

	// DeactivateProduct sets active=false. Idempotent.
	DeactivateProduct(ctx context.Context, productID string, actor domain.ActingUser) (*domain.Product, error)

	// ReactivateProduct sets active=true. Idempotent.
	ReactivateProduct(ctx context.Context, productID string, actor domain.ActingUser) (*domain.Product, error)
}

// ProductSvcFacade combines all product-related service interfaces
type ProductSvcFacade interface {
	ProductReaderSvc
	ProductWriterSvc
}
