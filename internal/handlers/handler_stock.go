package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/inventory_ledger/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger/internal/dto"
	"github.com/SscSPs/inventory_ledger/internal/middleware"
)

// stockHandler serves the read-only stock views.
type stockHandler struct {
	stockService  portssvc.StockQuerySvc
	ledgerService portssvc.LedgerReaderSvc
}

// RegisterStockRoutes registers the overview and date routes.
func RegisterStockRoutes(rg *gin.RouterGroup, stockService portssvc.StockQuerySvc, ledgerService portssvc.LedgerReaderSvc) {
	h := &stockHandler{stockService: stockService, ledgerService: ledgerService}

	rg.GET("/stock-overview", h.getStockOverview)
	rg.GET("/dates-with-transactions", h.listDatesWithTransactions)
	rg.GET("/date-groups", h.listDateGroups)
}

// getStockOverview godoc
// @Summary Stock overview
// @Description Current stock and status for every active product and every product with history
// @Tags stock
// @Produce json
// @Param q query string false "Case-insensitive substring of name or code"
// @Success 200 {array} dto.StockSnapshotResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute stock overview"
// @Security BearerAuth
// @Router /stock-overview [get]
func (h *stockHandler) getStockOverview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.StockOverviewParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}

	snapshots, err := h.stockService.GetStockOverview(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to compute stock overview")
		return
	}

	logger.Debug("Stock overview computed", slog.Int("count", len(snapshots)))
	c.JSON(http.StatusOK, dto.ToStockSnapshotResponses(snapshots))
}

// listDatesWithTransactions godoc
// @Summary Ledger dates
// @Description Dates that have transactions, most recent first. Today is always included.
// @Tags stock
// @Produce json
// @Success 200 {object} dto.ListDatesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list dates"
// @Security BearerAuth
// @Router /dates-with-transactions [get]
func (h *stockHandler) listDatesWithTransactions(c *gin.Context) {
	dates, err := h.ledgerService.ListDatesWithTransactions(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list dates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDatesResponse(dates))
}

// listDateGroups godoc
// @Summary Date groups
// @Description Ledger dates with transaction counts and the caller's capabilities on each
// @Tags stock
// @Produce json
// @Success 200 {array} dto.DateGroupResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list date groups"
// @Security BearerAuth
// @Router /date-groups [get]
func (h *stockHandler) listDateGroups(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}

	groups, err := h.stockService.GetDateGroups(c.Request.Context(), user)
	if err != nil {
		respondError(c, err, "Failed to list date groups")
		return
	}
	c.JSON(http.StatusOK, dto.ToDateGroupResponses(groups))
}
