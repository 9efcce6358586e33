// Package memory is an in-process repository used for development and tests.
//
// Committed state is an immutable snapshot swapped atomically, so readers never
// block and never see a half-applied write. Ledger writes for one product are
// serialized by a per-product semaphore.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/SscSPs/inventory_ledger/internal/apperrors"
	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/inventory_ledger/internal/core/ports/repositories"
)

const defaultLockTimeout = 3 * time.Second

// state is never mutated after it is published.
type state struct {
	products map[string]domain.Product
	codes    map[string]string             // code -> productID
	ledgers  map[string][]domain.Transaction // productID -> entries in ledger order
	owners   map[string]string             // transactionID -> productID
}

func emptyState() *state {
	return &state{
		products: map[string]domain.Product{},
		codes:    map[string]string{},
		ledgers:  map[string][]domain.Transaction{},
		owners:   map[string]string{},
	}
}

// clone copies the top-level maps. Ledger slices are shared and must be
// replaced, not modified, by the caller.
func (s *state) clone() *state {
	next := &state{
		products: make(map[string]domain.Product, len(s.products)+1),
		codes:    make(map[string]string, len(s.codes)+1),
		ledgers:  make(map[string][]domain.Transaction, len(s.ledgers)+1),
		owners:   make(map[string]string, len(s.owners)+1),
	}
	for k, v := range s.products {
		next.products[k] = v
	}
	for k, v := range s.codes {
		next.codes[k] = v
	}
	for k, v := range s.ledgers {
		next.ledgers[k] = v
	}
	for k, v := range s.owners {
		next.owners[k] = v
	}
	return next
}

// Store implements both the product and the transaction repository ports.
type Store struct {
	current     atomic.Pointer[state]
	lockTimeout time.Duration

	mu    sync.Mutex
	locks map[string]*semaphore.Weighted
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLockTimeout bounds the wait for a product's write scope.
func WithLockTimeout(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.lockTimeout = d
		}
	}
}

// NewStore creates an empty store.
func NewStore(options ...StoreOption) *Store {
	s := &Store{
		lockTimeout: defaultLockTimeout,
		locks:       make(map[string]*semaphore.Weighted),
	}
	for _, option := range options {
		option(s)
	}
	s.current.Store(emptyState())
	return s
}

// NewRepositoryProvider returns a provider backed by a fresh Store.
func NewRepositoryProvider(options ...StoreOption) portsrepo.RepositoryProvider {
	store := NewStore(options...)
	return portsrepo.RepositoryProvider{
		ProductRepo:     store,
		TransactionRepo: store,
	}
}

var (
	_ portsrepo.ProductRepositoryFacade     = (*Store)(nil)
	_ portsrepo.TransactionRepositoryFacade = (*Store)(nil)
)

func (s *Store) load() *state {
	return s.current.Load()
}

// update applies fn to a private copy of the latest state and publishes it.
// fn may run more than once if another writer publishes first.
func (s *Store) update(fn func(next *state) error) error {
	for {
		prev := s.load()
		next := prev.clone()
		if err := fn(next); err != nil {
			return err
		}
		if s.current.CompareAndSwap(prev, next) {
			return nil
		}
	}
}

func (s *Store) productLock(productID string) *semaphore.Weighted {
	s.mu.Lock()
	defer s.mu.Unlock()
	sem, ok := s.locks[productID]
	if !ok {
		sem = semaphore.NewWeighted(1)
		s.locks[productID] = sem
	}
	return sem
}

func (s *Store) acquire(ctx context.Context, productID string) (func(), error) {
	waitCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	sem := s.productLock(productID)
	if err := sem.Acquire(waitCtx, 1); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrBusy, productID)
		}
		return nil, err
	}
	return func() { sem.Release(1) }, nil
}

// insertSorted returns a new slice with txn placed in ledger order.
func insertSorted(txns []domain.Transaction, txn domain.Transaction) []domain.Transaction {
	i := sort.Search(len(txns), func(i int) bool {
		return domain.LedgerLess(txn, txns[i])
	})
	out := make([]domain.Transaction, 0, len(txns)+1)
	out = append(out, txns[:i]...)
	out = append(out, txn)
	out = append(out, txns[i:]...)
	return out
}

func cloneTransactions(txns []domain.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(txns))
	copy(out, txns)
	return out
}
