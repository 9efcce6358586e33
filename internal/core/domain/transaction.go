package domain

import "time"

// Transaction is a single dated stock movement against one product.
type Transaction struct {
	TransactionID string `json:"transactionID"` // Primary Key (UUID)
	ProductID     string `json:"productID"`     // FK -> products.product_id, immutable
	Date          Date   `json:"date"`          // Calendar day governing the access window
	QtyIn         int64  `json:"qtyIn"`
	QtyOut        int64  `json:"qtyOut"`
	ReferenceNo   string `json:"referenceNo"` // Optional external reference
	Remarks       string `json:"remarks"`     // Optional note
	AuditFields
}

// Delta is the signed effect of the transaction on stock.
func (t Transaction) Delta() int64 {
	return t.QtyIn - t.QtyOut
}

// LedgerLess orders transactions by (date, createdAt, id). The id tie-break keeps
// replay deterministic when two entries share a timestamp.
func LedgerLess(a, b Transaction) bool {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c < 0
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.TransactionID < b.TransactionID
}

// LedgerCursor is a position in ledger order, used for paging product history.
type LedgerCursor struct {
	Date          Date
	CreatedAt     time.Time
	TransactionID string
}

// CursorOf returns the ledger position of t.
func CursorOf(t Transaction) LedgerCursor {
	return LedgerCursor{Date: t.Date, CreatedAt: t.CreatedAt, TransactionID: t.TransactionID}
}

// RunningEntry is a transaction together with the product balance immediately
// after it is applied in ledger order.
type RunningEntry struct {
	Transaction
	ProductName  string      `json:"productName"`
	ProductCode  string      `json:"productCode,omitempty"`
	RunningTotal int64       `json:"runningTotal"`
	Status       StockStatus `json:"status"`
}
