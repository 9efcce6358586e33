package domain

// Product is a catalog entry whose stock is tracked by the ledger.
type Product struct {
	ProductID      string  `json:"productID"`      // Primary Key (UUID)
	Name           string  `json:"name"`           // Display name, non-empty
	Code           *string `json:"code,omitempty"` // Optional external/QC code, unique when present
	MaintainingQty int64   `json:"maintainingQty"` // Stock at or below this is a warning
	CriticalQty    int64   `json:"criticalQty"`    // Stock at or below this is critical
	IsActive       bool    `json:"isActive"`       // Inactive products reject new transactions
	AuditFields
}

// CodeValue returns the code or an empty string.
func (p Product) CodeValue() string {
	if p.Code == nil {
		return ""
	}
	return *p.Code
}

// ThresholdsOrdered reports whether criticalQty <= maintainingQty.
func (p Product) ThresholdsOrdered() bool {
	return p.CriticalQty <= p.MaintainingQty
}
