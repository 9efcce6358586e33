package models

import "time"

// Transaction is the stock_transactions table row. Running totals are never stored.
type Transaction struct {
	TransactionID string    `db:"transaction_id"`
	ProductID     string    `db:"product_id"`
	TxnDate       time.Time `db:"txn_date"` // DATE column
	QtyIn         int64     `db:"qty_in"`
	QtyOut        int64     `db:"qty_out"`
	ReferenceNo   string    `db:"reference_no"`
	Remarks       string    `db:"remarks"`
	AuditFields
}
