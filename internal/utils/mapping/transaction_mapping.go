package mapping

import (
	"time"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	"github.com/SscSPs/inventory_ledger/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		ProductID:     d.ProductID,
		TxnDate:       d.Date.Time(),
		QtyIn:         d.QtyIn,
		QtyOut:        d.QtyOut,
		ReferenceNo:   d.ReferenceNo,
		Remarks:       d.Remarks,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
// DATE columns come back as UTC midnight.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		ProductID:     m.ProductID,
		Date:          domain.DateOf(m.TxnDate, time.UTC),
		QtyIn:         m.QtyIn,
		QtyOut:        m.QtyOut,
		ReferenceNo:   m.ReferenceNo,
		Remarks:       m.Remarks,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
