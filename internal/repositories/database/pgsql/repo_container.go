package pgsql

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/inventory_ledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the Postgres repositories. lockTimeout bounds
// the wait for a product row lock.
func NewRepositoryProvider(dbPool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ProductRepo:     newPgxProductRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool, lockTimeout),
	}
}
