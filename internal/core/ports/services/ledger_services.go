package services

import (
	"context"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	"github.com/SscSPs/inventory_ledger/internal/dto"
)

// LedgerReaderSvc defines read operations on raw ledger entries
type LedgerReaderSvc interface {
	// ListByProduct returns a product's entries in ledger order.
	ListByProduct(ctx context.Context, productID string) ([]domain.Transaction, error)

	// ListByDate returns the entries of one calendar date.
	ListByDate(ctx context.Context, date domain.Date) ([]domain.Transaction, error)

	// ListDatesWithTransactions returns ledger dates, most recent first. Today is always present.
	ListDatesWithTransactions(ctx context.Context) ([]domain.Date, error)
}

// LedgerWriterSvc defines the write path of the ledger. Every method enforces the access window.
type LedgerWriterSvc interface {
	// RecordTransaction appends a new movement.
	RecordTransaction(ctx context.Context, req dto.CreateTransactionRequest, actor domain.ActingUser) (*domain.Transaction, error)

	// UpdateTransaction changes quantities/reference/remarks; gated on the stored date.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, actor domain.ActingUser) (*domain.Transaction, error)

	// DeleteTransaction hard-removes an entry; gated on the stored date.
	DeleteTransaction(ctx context.Context, transactionID string, actor domain.ActingUser) error
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
