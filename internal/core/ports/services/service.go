package services

import (
	"context"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Product ProductSvcFacade
	Ledger  LedgerSvcFacade
	Stock   StockQuerySvc
}

// AuditEmitter publishes audit events to an external collaborator.
// Emit must not block the caller and must never fail the triggering operation.
type AuditEmitter interface {
	Emit(ctx context.Context, event domain.AuditEvent)
}
