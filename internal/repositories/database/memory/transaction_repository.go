package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/inventory_ledger/internal/apperrors"
	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/inventory_ledger/internal/core/ports/repositories"
)

func (s *Store) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	st := s.load()
	productID, ok := st.owners[transactionID]
	if ok {
		for _, t := range st.ledgers[productID] {
			if t.TransactionID == transactionID {
				return &t, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
}

func (s *Store) ListTransactionsByProduct(_ context.Context, productID string) ([]domain.Transaction, error) {
	return cloneTransactions(s.load().ledgers[productID]), nil
}

func (s *Store) ListTransactionsByProductIDs(_ context.Context, productIDs []string) (map[string][]domain.Transaction, error) {
	st := s.load()
	out := make(map[string][]domain.Transaction)
	if productIDs == nil {
		for id, txns := range st.ledgers {
			if len(txns) > 0 {
				out[id] = cloneTransactions(txns)
			}
		}
		return out, nil
	}
	for _, id := range productIDs {
		if txns := st.ledgers[id]; len(txns) > 0 {
			out[id] = cloneTransactions(txns)
		}
	}
	return out, nil
}

func (s *Store) ListTransactionsByDate(_ context.Context, date domain.Date) ([]domain.Transaction, error) {
	st := s.load()
	var out []domain.Transaction
	for _, txns := range st.ledgers {
		for _, t := range txns {
			if t.Date.Equal(date) {
				out = append(out, t)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return domain.LedgerLess(out[i], out[j]) })
	if out == nil {
		out = []domain.Transaction{}
	}
	return out, nil
}

func (s *Store) ListTransactionDates(_ context.Context) ([]portsrepo.DateCount, error) {
	st := s.load()
	counts := make(map[string]*portsrepo.DateCount)
	for _, txns := range st.ledgers {
		for _, t := range txns {
			key := t.Date.String()
			c, ok := counts[key]
			if !ok {
				c = &portsrepo.DateCount{Date: t.Date}
				counts[key] = c
			}
			c.Count++
		}
	}
	out := make([]portsrepo.DateCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *Store) WithProductLock(ctx context.Context, productID string, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	if _, ok := s.load().products[productID]; !ok {
		return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, productID)
	}

	release, err := s.acquire(ctx, productID)
	if err != nil {
		return err
	}
	defer release()

	tx := &ledgerTx{
		store:     s,
		productID: productID,
		working:   s.load().ledgers[productID],
		inserted:  map[string]struct{}{},
		deleted:   map[string]struct{}{},
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	return tx.commit()
}

// ledgerTx stages changes to one product's ledger. working is replaced on
// every change so the published slice is never aliased.
type ledgerTx struct {
	store     *Store
	productID string
	working   []domain.Transaction
	inserted  map[string]struct{}
	deleted   map[string]struct{}
}

var _ portsrepo.LedgerTx = (*ledgerTx)(nil)

func (t *ledgerTx) LockedProduct(_ context.Context) (*domain.Product, error) {
	p, ok := t.store.load().products[t.productID]
	if !ok {
		return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, t.productID)
	}
	return &p, nil
}

func (t *ledgerTx) ListTransactionsByProduct(_ context.Context) ([]domain.Transaction, error) {
	return cloneTransactions(t.working), nil
}

func (t *ledgerTx) InsertTransaction(_ context.Context, txn domain.Transaction) error {
	if txn.ProductID != t.productID {
		return fmt.Errorf("%w: transaction belongs to product %s, scope holds %s", apperrors.ErrValidation, txn.ProductID, t.productID)
	}
	if _, exists := t.store.load().owners[txn.TransactionID]; exists {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, txn.TransactionID)
	}
	t.working = insertSorted(t.working, txn)
	t.inserted[txn.TransactionID] = struct{}{}
	delete(t.deleted, txn.TransactionID)
	return nil
}

func (t *ledgerTx) UpdateTransaction(_ context.Context, txn domain.Transaction) error {
	idx := t.indexOf(txn.TransactionID)
	if idx < 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, txn.TransactionID)
	}
	old := t.working[idx]
	// product, date and creation stamp are immutable so ledger position is unchanged
	txn.ProductID = old.ProductID
	txn.Date = old.Date
	txn.CreatedAt = old.CreatedAt
	txn.CreatedBy = old.CreatedBy

	next := cloneTransactions(t.working)
	next[idx] = txn
	t.working = next
	return nil
}

func (t *ledgerTx) DeleteTransaction(_ context.Context, transactionID string) error {
	idx := t.indexOf(transactionID)
	if idx < 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	next := make([]domain.Transaction, 0, len(t.working)-1)
	next = append(next, t.working[:idx]...)
	next = append(next, t.working[idx+1:]...)
	t.working = next
	if _, ok := t.inserted[transactionID]; ok {
		delete(t.inserted, transactionID)
	} else {
		t.deleted[transactionID] = struct{}{}
	}
	return nil
}

func (t *ledgerTx) indexOf(transactionID string) int {
	for i, txn := range t.working {
		if txn.TransactionID == transactionID {
			return i
		}
	}
	return -1
}

func (t *ledgerTx) commit() error {
	return t.store.update(func(next *state) error {
		if _, ok := next.products[t.productID]; !ok {
			return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, t.productID)
		}
		next.ledgers[t.productID] = t.working
		for id := range t.inserted {
			next.owners[id] = t.productID
		}
		for id := range t.deleted {
			delete(next.owners, id)
		}
		return nil
	})
}
