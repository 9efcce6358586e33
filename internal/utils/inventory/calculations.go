package inventory

import (
	"sort"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
)

// DeriveStatus classifies a balance against the product's current thresholds.
// The critical check runs first so a misordered configuration still reports critical.
func DeriveStatus(stock int64, product domain.Product) domain.StockStatus {
	switch {
	case stock <= product.CriticalQty:
		return domain.StatusCritical
	case stock <= product.MaintainingQty:
		return domain.StatusWarning
	default:
		return domain.StatusOK
	}
}

// SortLedger returns a copy of transactions in ledger order. The input is not modified.
func SortLedger(transactions []domain.Transaction) []domain.Transaction {
	ordered := make([]domain.Transaction, len(transactions))
	copy(ordered, transactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return domain.LedgerLess(ordered[i], ordered[j])
	})
	return ordered
}

// ComputeSnapshot folds the product's transactions into its current stock state.
// Transactions belonging to other products are ignored.
func ComputeSnapshot(product domain.Product, transactions []domain.Transaction) domain.StockSnapshot {
	snap := domain.StockSnapshot{
		ProductID:   product.ProductID,
		ProductName: product.Name,
		Code:        product.CodeValue(),
		IsActive:    product.IsActive,
	}
	for _, txn := range transactions {
		if txn.ProductID != product.ProductID {
			continue
		}
		snap.TotalIn += txn.QtyIn
		snap.TotalOut += txn.QtyOut
	}
	snap.CurrentStock = snap.TotalIn - snap.TotalOut
	snap.Status = DeriveStatus(snap.CurrentStock, product)
	return snap
}

// ComputeRunningEntries applies the product's transactions in ledger order and
// attaches the balance and status after each step.
func ComputeRunningEntries(product domain.Product, transactions []domain.Transaction) []domain.RunningEntry {
	ordered := SortLedger(transactions)
	entries := make([]domain.RunningEntry, 0, len(ordered))
	var balance int64
	for _, txn := range ordered {
		if txn.ProductID != product.ProductID {
			continue
		}
		balance += txn.Delta()
		entries = append(entries, domain.RunningEntry{
			Transaction:  txn,
			ProductName:  product.Name,
			ProductCode:  product.CodeValue(),
			RunningTotal: balance,
			Status:       DeriveStatus(balance, product),
		})
	}
	return entries
}

