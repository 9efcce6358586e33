package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/inventory_ledger/internal/apperrors"
	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/inventory_ledger/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger/internal/dto"
	"github.com/SscSPs/inventory_ledger/internal/middleware"
)

// transactionHandler handles HTTP requests for ledger entries.
type transactionHandler struct {
	ledgerService portssvc.LedgerWriterSvc
	stockService  portssvc.StockQuerySvc
}

// RegisterTransactionRoutes registers ledger read and write routes.
func RegisterTransactionRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerWriterSvc, stockService portssvc.StockQuerySvc) {
	h := &transactionHandler{ledgerService: ledgerService, stockService: stockService}

	rg.GET("/transactions", h.listTransactions)
	txn := rg.Group("/transaction")
	{
		txn.POST("", h.recordTransaction)
		txn.PATCH("/:id", h.updateTransaction)
		txn.DELETE("/:id", h.deleteTransaction)
	}
}

// listTransactions godoc
// @Summary List transactions with running totals
// @Description Exactly one of date or productId is required. Product history supports ordering and cursor paging.
// @Tags transactions
// @Produce json
// @Param date query string false "Calendar date (YYYY-MM-DD)"
// @Param productId query string false "Product ID"
// @Param order query string false "asc or desc (product history only)" Enums(asc, desc)
// @Param limit query int false "Page size (product history only)"
// @Param nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListRunningEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}

	switch {
	case params.Date != "" && params.ProductID != "":
		respondError(c, fmt.Errorf("%w: use either date or productId, not both", apperrors.ErrValidation), "Invalid query parameters")
	case params.Date != "":
		date, err := domain.ParseDate(params.Date)
		if err != nil {
			respondError(c, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error()), "Invalid date")
			return
		}
		entries, err := h.stockService.GetTransactionsForDate(c.Request.Context(), date)
		if err != nil {
			respondError(c, err, "Failed to list transactions")
			return
		}
		logger.Debug("Listed transactions for date", slog.String("date", date.String()), slog.Int("count", len(entries)))
		c.JSON(http.StatusOK, dto.ListRunningEntriesResponse{Entries: dto.ToRunningEntryResponses(entries)})
	case params.ProductID != "":
		history := dto.ProductHistoryParams{
			Descending: params.Order == "desc",
			Limit:      params.Limit,
			NextToken:  params.NextToken,
		}
		entries, next, err := h.stockService.GetTransactionsForProduct(c.Request.Context(), params.ProductID, history)
		if err != nil {
			respondError(c, err, "Failed to list transactions")
			return
		}
		c.JSON(http.StatusOK, dto.ListRunningEntriesResponse{Entries: dto.ToRunningEntryResponses(entries), NextToken: next})
	default:
		respondError(c, fmt.Errorf("%w: date or productId is required", apperrors.ErrValidation), "Invalid query parameters")
	}
}

// recordTransaction godoc
// @Summary Record a stock movement
// @Description Appends a transaction. Date defaults to today; non-admins may only write today.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Movement details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Validation error or inactive product"
// @Failure 403 {object} map[string]string "Access window forbids this date"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 503 {object} map[string]string "Product is busy, retry"
// @Security BearerAuth
// @Router /transaction [post]
func (h *transactionHandler) recordTransaction(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	txn, err := h.ledgerService.RecordTransaction(c.Request.Context(), req, user)
	if err != nil {
		respondError(c, err, "Failed to record transaction")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Changes quantities, reference or remarks. Gated on the transaction's own date.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 403 {object} map[string]string "Access window forbids this date"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 503 {object} map[string]string "Product is busy, retry"
// @Security BearerAuth
// @Router /transaction/{id} [patch]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	txn, err := h.ledgerService.UpdateTransaction(c.Request.Context(), c.Param("id"), req, user)
	if err != nil {
		respondError(c, err, "Failed to update transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Hard-deletes the entry; later running totals change accordingly.
// @Tags transactions
// @Param id path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Access window forbids this date"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 503 {object} map[string]string "Product is busy, retry"
// @Security BearerAuth
// @Router /transaction/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}

	if err := h.ledgerService.DeleteTransaction(c.Request.Context(), c.Param("id"), user); err != nil {
		respondError(c, err, "Failed to delete transaction")
		return
	}
	c.Status(http.StatusNoContent)
}
