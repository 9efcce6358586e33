package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/inventory_ledger/internal/apperrors"
	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/inventory_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/inventory_ledger/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger/internal/dto"
)

// ledgerService owns the write path of stock movements.
// Every write runs inside a per-product exclusion scope.
type ledgerService struct {
	BaseService
	productRepo portsrepo.ProductReader
	txnRepo     portsrepo.TransactionRepositoryFacade
	locker      *productLocker
}

// NewLedgerService creates a new ledger service with the provided options
func NewLedgerService(productRepo portsrepo.ProductReader, txnRepo portsrepo.TransactionRepositoryFacade, options ...ServiceOption) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService: newBaseService(options...),
		productRepo: productRepo,
		txnRepo:     txnRepo,
		locker:      newProductLocker(),
	}
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) ListByProduct(ctx context.Context, productID string) ([]domain.Transaction, error) {
	if _, err := s.productRepo.FindProductByID(ctx, productID); err != nil {
		return nil, err
	}
	txns, err := s.txnRepo.ListTransactionsByProduct(ctx, productID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions by product", slog.String("product_id", productID))
		return nil, err
	}
	return txns, nil
}

func (s *ledgerService) ListByDate(ctx context.Context, date domain.Date) ([]domain.Transaction, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	txns, err := s.txnRepo.ListTransactionsByDate(ctx, date)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions by date", slog.String("date", date.String()))
		return nil, err
	}
	return txns, nil
}

func (s *ledgerService) ListDatesWithTransactions(ctx context.Context) ([]domain.Date, error) {
	counts, err := s.txnRepo.ListTransactionDates(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transaction dates")
		return nil, err
	}
	return datesWithToday(counts, s.Today()), nil
}

func (s *ledgerService) RecordTransaction(ctx context.Context, req dto.CreateTransactionRequest, actor domain.ActingUser) (*domain.Transaction, error) {
	if err := s.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := validateQuantities(req.QtyIn, req.QtyOut); err != nil {
		return nil, err
	}

	today := s.Today()
	date := today
	if req.Date != nil && !req.Date.IsZero() {
		date = *req.Date
	}
	if err := s.checkWindow(ctx, actor, date, today); err != nil {
		return nil, err
	}
	// Unknown products never reach the locker.
	if _, err := s.productRepo.FindProductByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	var created domain.Transaction
	err := s.withProductLock(ctx, req.ProductID, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		product, err := tx.LockedProduct(ctx)
		if err != nil {
			return err
		}
		if !product.IsActive {
			return fmt.Errorf("%w: product %s is inactive", apperrors.ErrValidation, product.ProductID)
		}

		now := s.Now()
		created = domain.Transaction{
			TransactionID: uuid.NewString(),
			ProductID:     product.ProductID,
			Date:          date,
			QtyIn:         req.QtyIn,
			QtyOut:        req.QtyOut,
			ReferenceNo:   req.ReferenceNo,
			Remarks:       req.Remarks,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actor.UserID,
			},
		}
		return tx.InsertTransaction(ctx, created)
	})
	if err != nil {
		s.logWriteFailure(ctx, err, "Failed to record transaction", slog.String("product_id", req.ProductID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", created.TransactionID),
		slog.String("product_id", created.ProductID),
		slog.String("date", created.Date.String()))
	s.metrics.LedgerWrite(string(domain.AuditActionCreate))
	s.emit(ctx, domain.AuditActionCreate, domain.AuditEntityTransaction, created.TransactionID, actor, nil, created)
	return &created, nil
}

func (s *ledgerService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, actor domain.ActingUser) (*domain.Transaction, error) {
	if err := s.ValidateStruct(req); err != nil {
		return nil, err
	}

	stored, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.checkWindow(ctx, actor, stored.Date, s.Today()); err != nil {
		return nil, err
	}

	var before, after domain.Transaction
	err = s.withProductLock(ctx, stored.ProductID, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		current, err := findInLocked(ctx, tx, transactionID)
		if err != nil {
			return err
		}
		before = current
		after = current
		if req.QtyIn != nil {
			after.QtyIn = *req.QtyIn
		}
		if req.QtyOut != nil {
			after.QtyOut = *req.QtyOut
		}
		if req.ReferenceNo != nil {
			after.ReferenceNo = *req.ReferenceNo
		}
		if req.Remarks != nil {
			after.Remarks = *req.Remarks
		}
		if err := validateQuantities(after.QtyIn, after.QtyOut); err != nil {
			return err
		}
		after.LastUpdatedAt = s.Now()
		after.LastUpdatedBy = actor.UserID
		return tx.UpdateTransaction(ctx, after)
	})
	if err != nil {
		s.logWriteFailure(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction updated", slog.String("transaction_id", transactionID), slog.String("product_id", after.ProductID))
	s.metrics.LedgerWrite(string(domain.AuditActionUpdate))
	s.emit(ctx, domain.AuditActionUpdate, domain.AuditEntityTransaction, transactionID, actor, before, after)
	return &after, nil
}

func (s *ledgerService) DeleteTransaction(ctx context.Context, transactionID string, actor domain.ActingUser) error {
	stored, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if err := s.checkWindow(ctx, actor, stored.Date, s.Today()); err != nil {
		return err
	}

	var removed domain.Transaction
	err = s.withProductLock(ctx, stored.ProductID, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		current, err := findInLocked(ctx, tx, transactionID)
		if err != nil {
			return err
		}
		removed = current
		return tx.DeleteTransaction(ctx, transactionID)
	})
	if err != nil {
		s.logWriteFailure(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return err
	}

	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID), slog.String("product_id", removed.ProductID))
	s.metrics.LedgerWrite(string(domain.AuditActionDelete))
	s.emit(ctx, domain.AuditActionDelete, domain.AuditEntityTransaction, transactionID, actor, removed, nil)
	return nil
}

// withProductLock serializes the read-modify-write cycle for one product.
func (s *ledgerService) withProductLock(ctx context.Context, productID string, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	start := time.Now()
	release, err := s.locker.Acquire(ctx, productID, s.lockTimeout)
	s.metrics.LockWait(time.Since(start))
	if err != nil {
		if errors.Is(err, apperrors.ErrBusy) {
			s.metrics.LockBusy()
		}
		return err
	}
	defer release()

	err = s.txnRepo.WithProductLock(ctx, productID, fn)
	if errors.Is(err, apperrors.ErrBusy) {
		s.metrics.LockBusy()
	}
	return err
}

// checkWindow applies the access window to a write on date.
func (s *ledgerService) checkWindow(ctx context.Context, actor domain.ActingUser, date, today domain.Date) error {
	if domain.CanWrite(actor.Role, date, today) {
		return nil
	}
	s.GetLogger(ctx).Warn("Write outside access window",
		slog.String("user_id", actor.UserID),
		slog.String("role", string(actor.Role)),
		slog.String("date", date.String()),
		slog.String("today", today.String()))
	return fmt.Errorf("%w: role %s cannot write to %s", apperrors.ErrForbidden, actor.Role, date.String())
}

// logWriteFailure logs unexpected failures; caller errors are only logged at debug.
func (s *ledgerService) logWriteFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrForbidden), errors.Is(err, apperrors.ErrBusy):
		s.LogDebug(ctx, msg, append(keyvals, slog.String("error", err.Error()))...)
	default:
		s.LogError(ctx, err, msg, keyvals...)
	}
}

func findInLocked(ctx context.Context, tx portsrepo.LedgerTx, transactionID string) (domain.Transaction, error) {
	txns, err := tx.ListTransactionsByProduct(ctx)
	if err != nil {
		return domain.Transaction{}, err
	}
	for _, t := range txns {
		if t.TransactionID == transactionID {
			return t, nil
		}
	}
	return domain.Transaction{}, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
}

func validateQuantities(qtyIn, qtyOut int64) error {
	if qtyIn < 0 || qtyOut < 0 {
		return fmt.Errorf("%w: quantities must not be negative", apperrors.ErrValidation)
	}
	if qtyIn == 0 && qtyOut == 0 {
		return fmt.Errorf("%w: at least one of qtyIn or qtyOut must be positive", apperrors.ErrValidation)
	}
	return nil
}

// datesWithToday returns the dates in counts plus today, most recent first.
func datesWithToday(counts []portsrepo.DateCount, today domain.Date) []domain.Date {
	dates := make([]domain.Date, 0, len(counts)+1)
	hasToday := false
	for _, c := range counts {
		if c.Date.Equal(today) {
			hasToday = true
		}
		dates = append(dates, c.Date)
	}
	if !hasToday {
		dates = append(dates, today)
	}
	sort.SliceStable(dates, func(i, j int) bool { return dates[i].After(dates[j]) })
	return dates
}
