package domain

// StockStatus classifies a balance against a product's thresholds.
type StockStatus string

const (
	StatusOK       StockStatus = "ok"
	StatusWarning  StockStatus = "warning"
	StatusCritical StockStatus = "critical"
)

// Severity orders statuses ok < warning < critical.
func (s StockStatus) Severity() int {
	switch s {
	case StatusCritical:
		return 2
	case StatusWarning:
		return 1
	default:
		return 0
	}
}

// StockSnapshot is the derived, non-persisted stock state of one product.
type StockSnapshot struct {
	ProductID    string      `json:"productID"`
	ProductName  string      `json:"productName"`
	Code         string      `json:"code,omitempty"`
	IsActive     bool        `json:"isActive"`
	CurrentStock int64       `json:"currentStock"`
	TotalIn      int64       `json:"totalIn"`
	TotalOut     int64       `json:"totalOut"`
	Status       StockStatus `json:"status"`
}

// DateGroup is one calendar date bucket of the ledger as seen by a given role.
type DateGroup struct {
	Date             Date `json:"date"`
	IsToday          bool `json:"isToday"`
	TransactionCount int  `json:"transactionCount"`
	Capabilities
}
