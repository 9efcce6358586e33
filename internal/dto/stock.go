package dto

import "github.com/SscSPs/inventory_ledger/internal/core/domain"

// StockOverviewParams holds the optional name/code filter for the overview.
type StockOverviewParams struct {
	Query string `form:"q"`
}

// StockSnapshotResponse defines the data returned for a product's stock.
type StockSnapshotResponse struct {
	ProductID    string `json:"productID"`
	ProductName  string `json:"productName"`
	Code         string `json:"code,omitempty"`
	IsActive     bool   `json:"isActive"`
	CurrentStock int64  `json:"currentStock"`
	TotalIn      int64  `json:"totalIn"`
	TotalOut     int64  `json:"totalOut"`
	Status       string `json:"status"`
}

// DateGroupResponse is a date bucket with the caller's capabilities on it.
type DateGroupResponse struct {
	Date             string `json:"date"`
	IsToday          bool   `json:"isToday"`
	TransactionCount int    `json:"transactionCount"`
	CanWrite         bool   `json:"canWrite"`
	CanToggle        bool   `json:"canToggle"`
}

// ListDatesResponse lists ledger dates, most recent first.
type ListDatesResponse struct {
	Dates []string `json:"dates"`
}

// ToStockSnapshotResponse converts a snapshot to its DTO form.
func ToStockSnapshotResponse(s domain.StockSnapshot) StockSnapshotResponse {
	return StockSnapshotResponse{
		ProductID:    s.ProductID,
		ProductName:  s.ProductName,
		Code:         s.Code,
		IsActive:     s.IsActive,
		CurrentStock: s.CurrentStock,
		TotalIn:      s.TotalIn,
		TotalOut:     s.TotalOut,
		Status:       string(s.Status),
	}
}

// ToStockSnapshotResponses converts a slice of snapshots.
func ToStockSnapshotResponses(snaps []domain.StockSnapshot) []StockSnapshotResponse {
	resp := make([]StockSnapshotResponse, len(snaps))
	for i, s := range snaps {
		resp[i] = ToStockSnapshotResponse(s)
	}
	return resp
}

// ToDateGroupResponses converts date groups to their DTO form.
func ToDateGroupResponses(groups []domain.DateGroup) []DateGroupResponse {
	resp := make([]DateGroupResponse, len(groups))
	for i, g := range groups {
		resp[i] = DateGroupResponse{
			Date:             g.Date.String(),
			IsToday:          g.IsToday,
			TransactionCount: g.TransactionCount,
			CanWrite:         g.CanWrite,
			CanToggle:        g.CanToggle,
		}
	}
	return resp
}

// ToListDatesResponse converts dates to their wire form.
func ToListDatesResponse(dates []domain.Date) ListDatesResponse {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.String()
	}
	return ListDatesResponse{Dates: out}
}
