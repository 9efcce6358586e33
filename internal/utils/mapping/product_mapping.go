package mapping

import (
	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	"github.com/SscSPs/inventory_ledger/internal/models"
)

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:      d.ProductID,
		Name:           d.Name,
		Code:           d.Code,
		MaintainingQty: d.MaintainingQty,
		CriticalQty:    d.CriticalQty,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:      m.ProductID,
		Name:           m.Name,
		Code:           m.Code,
		MaintainingQty: m.MaintainingQty,
		CriticalQty:    m.CriticalQty,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
