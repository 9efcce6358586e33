package dto

import (
	"time"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
)

// CreateTransactionRequest defines the data needed to record a stock movement.
// Date defaults to today when omitted.
type CreateTransactionRequest struct {
	ProductID   string       `json:"productId" binding:"required" validate:"required"`
	Date        *domain.Date `json:"date"`
	QtyIn       int64        `json:"qtyIn" binding:"min=0" validate:"min=0"`
	QtyOut      int64        `json:"qtyOut" binding:"min=0" validate:"min=0"`
	ReferenceNo string       `json:"referenceNo" binding:"max=100" validate:"max=100"`
	Remarks     string       `json:"remarks" binding:"max=1000" validate:"max=1000"`
}

// UpdateTransactionRequest defines the mutable fields of a ledger entry.
type UpdateTransactionRequest struct {
	QtyIn       *int64  `json:"qtyIn" validate:"omitempty,min=0"`
	QtyOut      *int64  `json:"qtyOut" validate:"omitempty,min=0"`
	ReferenceNo *string `json:"referenceNo" validate:"omitempty,max=100"`
	Remarks     *string `json:"remarks" validate:"omitempty,max=1000"`
}

// ListTransactionsParams holds query parameters for the transactions endpoint.
// Exactly one of Date or ProductID selects the listing.
type ListTransactionsParams struct {
	Date      string  `form:"date"`
	ProductID string  `form:"productId"`
	Order     string  `form:"order" binding:"omitempty,oneof=asc desc"`
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken *string `form:"nextToken"`
}

// ProductHistoryParams controls ordering and paging of a product's history.
type ProductHistoryParams struct {
	Descending bool
	Limit      int
	NextToken  *string
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID string    `json:"transactionID"`
	ProductID     string    `json:"productID"`
	Date          string    `json:"date"`
	QtyIn         int64     `json:"qtyIn"`
	QtyOut        int64     `json:"qtyOut"`
	ReferenceNo   string    `json:"referenceNo,omitempty"`
	Remarks       string    `json:"remarks,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// RunningEntryResponse is a ledger entry with the balance after it.
type RunningEntryResponse struct {
	TransactionResponse
	ProductName  string `json:"productName"`
	ProductCode  string `json:"productCode,omitempty"`
	RunningTotal int64  `json:"runningTotal"`
	Status       string `json:"status"`
}

// ListRunningEntriesResponse is a page of running entries.
type ListRunningEntriesResponse struct {
	Entries   []RunningEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		ProductID:     txn.ProductID,
		Date:          txn.Date.String(),
		QtyIn:         txn.QtyIn,
		QtyOut:        txn.QtyOut,
		ReferenceNo:   txn.ReferenceNo,
		Remarks:       txn.Remarks,
		CreatedAt:     txn.CreatedAt,
		CreatedBy:     txn.CreatedBy,
		LastUpdatedAt: txn.LastUpdatedAt,
		LastUpdatedBy: txn.LastUpdatedBy,
	}
}

// ToRunningEntryResponses converts running entries to their DTO form.
func ToRunningEntryResponses(entries []domain.RunningEntry) []RunningEntryResponse {
	resp := make([]RunningEntryResponse, len(entries))
	for i := range entries {
		e := &entries[i]
		resp[i] = RunningEntryResponse{
			TransactionResponse: ToTransactionResponse(&e.Transaction),
			ProductName:         e.ProductName,
			ProductCode:         e.ProductCode,
			RunningTotal:        e.RunningTotal,
			Status:              string(e.Status),
		}
	}
	return resp
}
