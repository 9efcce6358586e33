package models

import "time"

// AuditLog is the audit_log table row. Before and after are JSON documents.
type AuditLog struct {
	AuditID    string    `db:"audit_id"`
	Action     string    `db:"action"`
	EntityType string    `db:"entity_type"`
	EntityID   string    `db:"entity_id"`
	UserID     string    `db:"user_id"`
	Role       string    `db:"role"`
	BeforeData []byte    `db:"before_data"`
	AfterData  []byte    `db:"after_data"`
	OccurredAt time.Time `db:"occurred_at"`
}
