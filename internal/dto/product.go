package dto

import (
	"time"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
)

// CreateProductRequest defines the data needed to create a catalog product.
type CreateProductRequest struct {
	Name           string  `json:"name" binding:"required,max=200" validate:"required,max=200"`
	Code           *string `json:"code" binding:"omitempty,max=64" validate:"omitempty,max=64"` // Optional, unique when present
	MaintainingQty int64   `json:"maintainingQty" binding:"min=0" validate:"min=0"`
	CriticalQty    int64   `json:"criticalQty" binding:"min=0" validate:"min=0"`
}

// UpdateProductRequest defines the fields allowed for a partial product update.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateProductRequest struct {
	Name           *string `json:"name" validate:"omitempty,max=200"`
	Code           *string `json:"code" validate:"omitempty,max=64"`
	MaintainingQty *int64  `json:"maintainingQty" validate:"omitempty,min=0"`
	CriticalQty    *int64  `json:"criticalQty" validate:"omitempty,min=0"`
	Active         *bool   `json:"active"` // true reactivates, false deactivates
}

// ListProductsParams holds query parameters for listing products.
type ListProductsParams struct {
	ActiveOnly bool   `form:"activeOnly"`
	Query      string `form:"q"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID      string    `json:"productID"`
	Name           string    `json:"name"`
	Code           *string   `json:"code,omitempty"`
	MaintainingQty int64     `json:"maintainingQty"`
	CriticalQty    int64     `json:"criticalQty"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
	LastUpdatedAt  time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy  string    `json:"lastUpdatedBy"`
}

// ProductDetailResponse is a product together with its current stock snapshot.
type ProductDetailResponse struct {
	ProductResponse
	Stock StockSnapshotResponse `json:"stock"`
}

// ToProductResponse converts a domain.Product to ProductResponse DTO
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:      p.ProductID,
		Name:           p.Name,
		Code:           p.Code,
		MaintainingQty: p.MaintainingQty,
		CriticalQty:    p.CriticalQty,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		CreatedBy:      p.CreatedBy,
		LastUpdatedAt:  p.LastUpdatedAt,
		LastUpdatedBy:  p.LastUpdatedBy,
	}
}

// ToListProductsResponse converts a slice of products.
func ToListProductsResponse(products []domain.Product) []ProductResponse {
	resp := make([]ProductResponse, len(products))
	for i := range products {
		resp[i] = ToProductResponse(&products[i])
	}
	return resp
}
