package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/inventory_ledger/internal/apperrors"
	"golang.org/x/sync/semaphore"
)

// productLocker hands out one exclusive slot per product ID.
// Different products never contend. A slot is dropped once nobody holds or awaits it.
type productLocker struct {
	mu    sync.Mutex
	slots map[string]*lockSlot
}

type lockSlot struct {
	sem  *semaphore.Weighted
	refs int // holders plus waiters, guarded by productLocker.mu
}

func newProductLocker() *productLocker {
	return &productLocker{slots: make(map[string]*lockSlot)}
}

func (l *productLocker) ref(productID string) *lockSlot {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot, ok := l.slots[productID]
	if !ok {
		slot = &lockSlot{sem: semaphore.NewWeighted(1)}
		l.slots[productID] = slot
	}
	slot.refs++
	return slot
}

func (l *productLocker) unref(productID string, slot *lockSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, productID)
	}
}

// size reports how many slots are live.
func (l *productLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}

// Acquire waits at most timeout for productID's slot. On timeout it returns
// ErrBusy; if ctx itself is done the context error is returned.
func (l *productLocker) Acquire(ctx context.Context, productID string, timeout time.Duration) (func(), error) {
	slot := l.ref(productID)

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := slot.sem.Acquire(waitCtx, 1); err != nil {
		l.unref(productID, slot)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: product %s is locked by another write", apperrors.ErrBusy, productID)
		}
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			slot.sem.Release(1)
			l.unref(productID, slot)
		})
	}, nil
}
