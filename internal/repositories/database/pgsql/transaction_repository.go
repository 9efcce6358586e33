package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/inventory_ledger/internal/apperrors"
	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/inventory_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/inventory_ledger/internal/models"
	"github.com/SscSPs/inventory_ledger/internal/utils/mapping"
)

const transactionColumns = `transaction_id, product_id, txn_date, qty_in, qty_out, reference_no, remarks,
	created_at, created_by, last_updated_at, last_updated_by`

// ledgerOrder must match domain.LedgerLess.
const ledgerOrder = `ORDER BY txn_date, created_at, transaction_id`

// querier is satisfied by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type PgxTransactionRepository struct {
	BaseRepository
	lockTimeout time.Duration
}

// newPgxTransactionRepository creates a new repository for ledger data.
func newPgxTransactionRepository(pool DBPool, lockTimeout time.Duration) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		lockTimeout:    lockTimeout,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row rowScanner) (domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.ProductID,
		&m.TxnDate,
		&m.QtyIn,
		&m.QtyOut,
		&m.ReferenceNo,
		&m.Remarks,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Transaction{}, err
	}
	return mapping.ToDomainTransaction(m), nil
}

func queryTransactions(ctx context.Context, q querier, what string, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions "+what, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row "+what, err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows "+what, err)
	}
	return txns, nil
}

// FindTransactionByID retrieves a single ledger entry.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM stock_transactions WHERE transaction_id = $1;`
	t, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		return nil, mapPgError(err, "transaction "+transactionID)
	}
	return &t, nil
}

// ListTransactionsByProduct returns a product's entries in ledger order.
func (r *PgxTransactionRepository) ListTransactionsByProduct(ctx context.Context, productID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM stock_transactions WHERE product_id = $1 ` + ledgerOrder + `;`
	return queryTransactions(ctx, r.Pool, "for product "+productID, query, productID)
}

// ListTransactionsByProductIDs returns entries grouped by product. nil means all products.
func (r *PgxTransactionRepository) ListTransactionsByProductIDs(ctx context.Context, productIDs []string) (map[string][]domain.Transaction, error) {
	var (
		txns []domain.Transaction
		err  error
	)
	if productIDs == nil {
		query := `SELECT ` + transactionColumns + ` FROM stock_transactions ` + ledgerOrder + `;`
		txns, err = queryTransactions(ctx, r.Pool, "for all products", query)
	} else {
		query := `SELECT ` + transactionColumns + ` FROM stock_transactions WHERE product_id = ANY($1) ` + ledgerOrder + `;`
		txns, err = queryTransactions(ctx, r.Pool, "for products", query, productIDs)
	}
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]domain.Transaction)
	for _, t := range txns {
		grouped[t.ProductID] = append(grouped[t.ProductID], t)
	}
	return grouped, nil
}

// ListTransactionsByDate returns all entries of one date in ledger order.
func (r *PgxTransactionRepository) ListTransactionsByDate(ctx context.Context, date domain.Date) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM stock_transactions WHERE txn_date = $1 ` + ledgerOrder + `;`
	return queryTransactions(ctx, r.Pool, "for date "+date.String(), query, date.Time())
}

// ListTransactionDates returns every date with entries, most recent first.
func (r *PgxTransactionRepository) ListTransactionDates(ctx context.Context) ([]portsrepo.DateCount, error) {
	query := `SELECT txn_date, COUNT(*) FROM stock_transactions GROUP BY txn_date ORDER BY txn_date DESC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transaction dates", err)
	}
	defer rows.Close()

	dates := []portsrepo.DateCount{}
	for rows.Next() {
		var (
			day   time.Time
			count int
		)
		if err := rows.Scan(&day, &count); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction date row", err)
		}
		dates = append(dates, portsrepo.DateCount{Date: domain.DateOf(day, time.UTC), Count: count})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction date rows", err)
	}
	return dates, nil
}

// WithProductLock opens a database transaction, locks the product row with
// SELECT ... FOR UPDATE under a bounded lock_timeout and runs fn inside it.
func (r *PgxTransactionRepository) WithProductLock(ctx context.Context, productID string, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Will be ignored if transaction is committed successfully
	defer r.Rollback(ctx, tx)

	if r.lockTimeout > 0 {
		if _, err := tx.Exec(ctx, lockTimeoutStatement(r.lockTimeout)); err != nil {
			return apperrors.NewAppError(500, "failed to set lock timeout", err)
		}
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1 FOR UPDATE;`
	product, err := scanProduct(tx.QueryRow(ctx, query, productID))
	if err != nil {
		return mapPgError(err, "lock product "+productID)
	}

	scope := &pgLedgerTx{tx: tx, product: product}
	if err := fn(ctx, scope); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// lockTimeoutStatement scopes lock_timeout to the current transaction.
// SET does not accept bind parameters; the value is an integer we format ourselves.
// Sub-millisecond timeouts round up so they never mean "wait forever" (0).
func lockTimeoutStatement(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 1 {
		ms = 1
	}
	return fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", ms)
}

// pgLedgerTx is the write scope of one locked product.
type pgLedgerTx struct {
	tx      pgx.Tx
	product domain.Product
}

var _ portsrepo.LedgerTx = (*pgLedgerTx)(nil)

func (t *pgLedgerTx) LockedProduct(_ context.Context) (*domain.Product, error) {
	p := t.product
	return &p, nil
}

func (t *pgLedgerTx) ListTransactionsByProduct(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM stock_transactions WHERE product_id = $1 ` + ledgerOrder + `;`
	return queryTransactions(ctx, t.tx, "for locked product "+t.product.ProductID, query, t.product.ProductID)
}

func (t *pgLedgerTx) InsertTransaction(ctx context.Context, txn domain.Transaction) error {
	if txn.ProductID != t.product.ProductID {
		return fmt.Errorf("%w: transaction belongs to product %s, scope holds %s", apperrors.ErrValidation, txn.ProductID, t.product.ProductID)
	}
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO stock_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := t.tx.Exec(ctx, query,
		m.TransactionID,
		m.ProductID,
		m.TxnDate,
		m.QtyIn,
		m.QtyOut,
		m.ReferenceNo,
		m.Remarks,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapPgError(err, "failed to insert transaction "+m.TransactionID)
}

// UpdateTransaction changes the mutable columns only; product, date and creation stamp stay.
func (t *pgLedgerTx) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE stock_transactions
		SET qty_in = $3, qty_out = $4, reference_no = $5, remarks = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE transaction_id = $1 AND product_id = $2;
	`
	tag, err := t.tx.Exec(ctx, query,
		m.TransactionID,
		t.product.ProductID,
		m.QtyIn,
		m.QtyOut,
		m.ReferenceNo,
		m.Remarks,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to update transaction "+m.TransactionID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, m.TransactionID)
	}
	return nil
}

func (t *pgLedgerTx) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM stock_transactions WHERE transaction_id = $1 AND product_id = $2;`, transactionID, t.product.ProductID)
	if err != nil {
		return mapPgError(err, "failed to delete transaction "+transactionID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return nil
}
