package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/SscSPs/inventory_ledger/cmd/docs"
	portssvc "github.com/SscSPs/inventory_ledger/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger/internal/middleware"
	"github.com/SscSPs/inventory_ledger/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// apiMiddleware runs on /api/v1 before authentication (e.g. rate limiting).
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	apiMiddleware ...gin.HandlerFunc,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, services, apiMiddleware)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	apiMiddleware []gin.HandlerFunc,
) {
	chain := append(append([]gin.HandlerFunc{}, apiMiddleware...), middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	v1 := r.Group("/api/v1", chain...)

	RegisterStockRoutes(v1, services.Stock, services.Ledger)
	RegisterTransactionRoutes(v1, services.Ledger, services.Stock)
	RegisterProductRoutes(v1, services.Product, services.Stock)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
