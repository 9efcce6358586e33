package services

import (
	portsrepo "github.com/SscSPs/inventory_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/inventory_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The same options (clock, timezone, metrics, audit, lock timeout) apply to every service.
func NewServiceContainer(repos portsrepo.RepositoryProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Product: NewProductService(repos.ProductRepo, options...),
		Ledger:  NewLedgerService(repos.ProductRepo, repos.TransactionRepo, options...),
		Stock:   NewStockQueryService(repos.ProductRepo, repos.TransactionRepo, options...),
	}
}
