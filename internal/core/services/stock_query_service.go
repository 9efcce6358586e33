package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/SscSPs/inventory_ledger/internal/apperrors"
	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/inventory_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/inventory_ledger/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger/internal/dto"
	"github.com/SscSPs/inventory_ledger/internal/utils/inventory"
	"github.com/SscSPs/inventory_ledger/internal/utils/pagination"
)

// stockQueryService joins catalog and ledger reads with the computation engine.
// It never takes the per-product write lock.
type stockQueryService struct {
	BaseService
	productRepo portsrepo.ProductReader
	txnRepo     portsrepo.TransactionReader
}

// NewStockQueryService creates the read-side façade.
func NewStockQueryService(productRepo portsrepo.ProductReader, txnRepo portsrepo.TransactionReader, options ...ServiceOption) portssvc.StockQuerySvc {
	return &stockQueryService{
		BaseService: newBaseService(options...),
		productRepo: productRepo,
		txnRepo:     txnRepo,
	}
}

var _ portssvc.StockQuerySvc = (*stockQueryService)(nil)

func (s *stockQueryService) GetStockOverview(ctx context.Context, params dto.StockOverviewParams) ([]domain.StockSnapshot, error) {
	products, err := s.productRepo.ListProducts(ctx, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to list products for overview")
		return nil, err
	}
	histories, err := s.txnRepo.ListTransactionsByProductIDs(ctx, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger for overview")
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(params.Query))
	selected := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !p.IsActive && len(histories[p.ProductID]) == 0 {
			continue
		}
		if !matchesQuery(p, query) {
			continue
		}
		selected = append(selected, p)
	}
	sortProductsByName(selected)

	snapshots := make([]domain.StockSnapshot, 0, len(selected))
	for _, p := range selected {
		snapshots = append(snapshots, inventory.ComputeSnapshot(p, histories[p.ProductID]))
	}
	return snapshots, nil
}

func (s *stockQueryService) GetProductSnapshot(ctx context.Context, productID string) (*domain.StockSnapshot, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	txns, err := s.txnRepo.ListTransactionsByProduct(ctx, productID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load product history", slog.String("product_id", productID))
		return nil, err
	}
	snapshot := inventory.ComputeSnapshot(*product, txns)
	return &snapshot, nil
}

func (s *stockQueryService) GetTransactionsForDate(ctx context.Context, date domain.Date) ([]domain.RunningEntry, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	dayTxns, err := s.txnRepo.ListTransactionsByDate(ctx, date)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions for date", slog.String("date", date.String()))
		return nil, err
	}
	if len(dayTxns) == 0 {
		return []domain.RunningEntry{}, nil
	}

	productIDs := make([]string, 0)
	seen := make(map[string]struct{})
	for _, t := range dayTxns {
		if _, ok := seen[t.ProductID]; !ok {
			seen[t.ProductID] = struct{}{}
			productIDs = append(productIDs, t.ProductID)
		}
	}

	// Running totals need the full history, not just the day.
	histories, err := s.txnRepo.ListTransactionsByProductIDs(ctx, productIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to load histories for date", slog.String("date", date.String()))
		return nil, err
	}

	products := make([]domain.Product, 0, len(productIDs))
	for _, id := range productIDs {
		p, err := s.productRepo.FindProductByID(ctx, id)
		if err != nil {
			s.LogError(ctx, err, "Ledger references unknown product", slog.String("product_id", id))
			return nil, err
		}
		products = append(products, *p)
	}
	sortProductsByName(products)

	entries := make([]domain.RunningEntry, 0, len(dayTxns))
	for _, p := range products {
		for _, e := range inventory.ComputeRunningEntries(p, histories[p.ProductID]) {
			if e.Date.Equal(date) {
				entries = append(entries, e)
			}
		}
	}
	return entries, nil
}

func (s *stockQueryService) GetTransactionsForProduct(ctx context.Context, productID string, params dto.ProductHistoryParams) ([]domain.RunningEntry, *string, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	txns, err := s.txnRepo.ListTransactionsByProduct(ctx, productID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load product history", slog.String("product_id", productID))
		return nil, nil, err
	}

	entries := inventory.ComputeRunningEntries(*product, txns)
	if params.Descending {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}

	if params.NextToken != nil && *params.NextToken != "" {
		cursor, err := pagination.DecodeLedgerToken(*params.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		start := sort.Search(len(entries), func(i int) bool {
			if params.Descending {
				return domain.LedgerLess(entries[i].Transaction, cursorTransaction(cursor))
			}
			return pagination.CursorLess(cursor, entries[i].Transaction)
		})
		entries = entries[start:]
	}

	var nextToken *string
	if params.Limit > 0 && len(entries) > params.Limit {
		entries = entries[:params.Limit]
		token := pagination.EncodeLedgerToken(domain.CursorOf(entries[len(entries)-1].Transaction))
		nextToken = &token
	}
	return entries, nextToken, nil
}

func (s *stockQueryService) GetDateGroups(ctx context.Context, actor domain.ActingUser) ([]domain.DateGroup, error) {
	counts, err := s.txnRepo.ListTransactionDates(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transaction dates")
		return nil, err
	}

	today := s.Today()
	byDate := make(map[string]int, len(counts))
	for _, c := range counts {
		byDate[c.Date.String()] = c.Count
	}

	dates := datesWithToday(counts, today)
	groups := make([]domain.DateGroup, 0, len(dates))
	for _, d := range dates {
		groups = append(groups, domain.DateGroup{
			Date:             d,
			IsToday:          d.Equal(today),
			TransactionCount: byDate[d.String()],
			Capabilities:     domain.CapabilitiesFor(actor.Role, d, today),
		})
	}
	return groups, nil
}

func cursorTransaction(c domain.LedgerCursor) domain.Transaction {
	return domain.Transaction{
		TransactionID: c.TransactionID,
		Date:          c.Date,
		AuditFields:   domain.AuditFields{CreatedAt: c.CreatedAt},
	}
}
