package services

import (
	"context"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	"github.com/SscSPs/inventory_ledger/internal/dto"
)

// StockQuerySvc is the read-side façade joining catalog, ledger and stock computation.
type StockQuerySvc interface {
	// GetStockOverview returns a snapshot for every active product and every product with history.
	GetStockOverview(ctx context.Context, params dto.StockOverviewParams) ([]domain.StockSnapshot, error)

	// GetProductSnapshot returns one product's current snapshot.
	GetProductSnapshot(ctx context.Context, productID string) (*domain.StockSnapshot, error)

	// GetTransactionsForDate returns a date's entries with running totals computed over full history.
	GetTransactionsForDate(ctx context.Context, date domain.Date) ([]domain.RunningEntry, error)

	// GetTransactionsForProduct returns a product's history with running totals, paged.
	GetTransactionsForProduct(ctx context.Context, productID string, params dto.ProductHistoryParams) ([]domain.RunningEntry, *string, error)

	// GetDateGroups returns the date buckets with the actor's capabilities on each.
	GetDateGroups(ctx context.Context, actor domain.ActingUser) ([]domain.DateGroup, error)
}
