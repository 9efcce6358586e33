package repositories

import (
	"context"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
)

// DateCount is the number of ledger entries recorded on a date.
type DateCount struct {
	Date  domain.Date
	Count int
}

// TransactionReader defines read operations for ledger data.
// Reads never block on writers and never observe a partially applied write.
type TransactionReader interface {
	// FindTransactionByID retrieves a single ledger entry.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByProduct returns a product's entries in ledger order.
	ListTransactionsByProduct(ctx context.Context, productID string) ([]domain.Transaction, error)

	// ListTransactionsByProductIDs returns entries grouped by product, each group in ledger order.
	// A nil productIDs slice means every product.
	ListTransactionsByProductIDs(ctx context.Context, productIDs []string) (map[string][]domain.Transaction, error)

	// ListTransactionsByDate returns all entries of one calendar date in ledger order.
	ListTransactionsByDate(ctx context.Context, date domain.Date) ([]domain.Transaction, error)

	// ListTransactionDates returns every date that has entries, most recent first.
	ListTransactionDates(ctx context.Context) ([]DateCount, error)
}

// TransactionWriter defines write operations for ledger data
type TransactionWriter interface {
	// WithProductLock runs fn while holding the exclusive write lock of productID.
	// Staged changes are committed atomically when fn returns nil and discarded otherwise.
	// Returns apperrors.ErrNotFound if the product does not exist and apperrors.ErrBusy
	// if the lock could not be obtained before ctx expired.
	WithProductLock(ctx context.Context, productID string, fn func(ctx context.Context, tx LedgerTx) error) error
}

// TransactionRepositoryFacade combines all ledger repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
