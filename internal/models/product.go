package models

// Product is the products table row.
type Product struct {
	ProductID      string  `db:"product_id"`
	Name           string  `db:"name"`
	Code           *string `db:"code"` // Nullable, unique when present
	MaintainingQty int64   `db:"maintaining_qty"`
	CriticalQty    int64   `db:"critical_qty"`
	IsActive       bool    `db:"is_active"`
	AuditFields
}
