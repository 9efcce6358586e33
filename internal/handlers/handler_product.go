package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/inventory_ledger/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger/internal/dto"
	"github.com/SscSPs/inventory_ledger/internal/middleware"
)

// productHandler handles HTTP requests for the catalog.
type productHandler struct {
	productService portssvc.ProductSvcFacade
	stockService   portssvc.StockQuerySvc
}

// RegisterProductRoutes registers catalog routes. Writes are admin-only.
func RegisterProductRoutes(rg *gin.RouterGroup, productService portssvc.ProductSvcFacade, stockService portssvc.StockQuerySvc) {
	h := &productHandler{productService: productService, stockService: stockService}

	rg.GET("/products", h.listProducts)
	product := rg.Group("/product")
	{
		product.GET("/:id", h.getProduct)
		product.POST("", middleware.RequireAdmin(), h.createProduct)
		product.PATCH("/:id", middleware.RequireAdmin(), h.updateProduct)
		product.DELETE("/:id", middleware.RequireAdmin(), h.deactivateProduct)
	}
}

// listProducts godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param activeOnly query bool false "Only active products"
// @Param q query string false "Case-insensitive substring of name or code"
// @Success 200 {array} dto.ProductResponse
// @Failure 500 {object} map[string]string "Failed to list products"
// @Security BearerAuth
// @Router /products [get]
func (h *productHandler) listProducts(c *gin.Context) {
	var params dto.ListProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}

	products, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list products")
		return
	}
	c.JSON(http.StatusOK, dto.ToListProductsResponse(products))
}

// getProduct godoc
// @Summary Get a product with its current stock
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} dto.ProductDetailResponse
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Failed to retrieve product"
// @Security BearerAuth
// @Router /product/{id} [get]
func (h *productHandler) getProduct(c *gin.Context) {
	productID := c.Param("id")

	product, err := h.productService.GetProductByID(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err, "Failed to retrieve product")
		return
	}
	snapshot, err := h.stockService.GetProductSnapshot(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err, "Failed to retrieve product")
		return
	}

	c.JSON(http.StatusOK, dto.ProductDetailResponse{
		ProductResponse: dto.ToProductResponse(product),
		Stock:           dto.ToStockSnapshotResponse(*snapshot),
	})
}

// createProduct godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Param product body dto.CreateProductRequest true "Product details"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 409 {object} map[string]string "Product code already used"
// @Security BearerAuth
// @Router /product [post]
func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	user, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req, user)
	if err != nil {
		respondError(c, err, "Failed to create product")
		return
	}

	logger.Info("Product created successfully", slog.String("product_id", product.ProductID))
	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

// updateProduct godoc
// @Summary Update a product
// @Description Partial update. {"active": true} reactivates, {"active": false} deactivates.
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body dto.UpdateProductRequest true "Fields to update"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 409 {object} map[string]string "Product code already used"
// @Security BearerAuth
// @Router /product/{id} [patch]
func (h *productHandler) updateProduct(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), req, user)
	if err != nil {
		respondError(c, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// deactivateProduct godoc
// @Summary Deactivate a product
// @Description Soft delete: the product stops accepting new transactions. History is kept.
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /product/{id} [delete]
func (h *productHandler) deactivateProduct(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}

	product, err := h.productService.DeactivateProduct(c.Request.Context(), c.Param("id"), user)
	if err != nil {
		respondError(c, err, "Failed to deactivate product")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}
