package repositories

import (
	"context"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
)

// LedgerTx is the write scope handed out by TransactionWriter.WithProductLock.
// Every call made through it sees the scope's own uncommitted changes; nothing
// becomes visible to readers until the scope commits.
type LedgerTx interface {
	// LockedProduct returns the product whose lock the scope holds.
	LockedProduct(ctx context.Context) (*domain.Product, error)

	// ListTransactionsByProduct returns the locked product's transactions, in ledger order.
	ListTransactionsByProduct(ctx context.Context) ([]domain.Transaction, error)

	// InsertTransaction stages a new transaction for the locked product.
	InsertTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction stages an update of a transaction of the locked product.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction stages a hard delete of a transaction of the locked product.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	ProductRepo     ProductRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
}
