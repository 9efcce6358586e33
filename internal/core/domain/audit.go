package domain

import "time"

// AuditAction names the change recorded by an AuditEvent.
type AuditAction string

const (
	AuditActionCreate     AuditAction = "create"
	AuditActionUpdate     AuditAction = "update"
	AuditActionDelete     AuditAction = "delete"
	AuditActionDeactivate AuditAction = "deactivate"
	AuditActionReactivate AuditAction = "reactivate"
)

// AuditEntityType is the kind of entity an AuditEvent refers to.
type AuditEntityType string

const (
	AuditEntityProduct     AuditEntityType = "product"
	AuditEntityTransaction AuditEntityType = "transaction"
)

// AuditEvent is emitted for every create/update/delete on products and transactions.
type AuditEvent struct {
	Action     AuditAction     `json:"action"`
	EntityType AuditEntityType `json:"entityType"`
	EntityID   string          `json:"entityId"`
	ActingUser ActingUser      `json:"actingUser"`
	OldValue   any             `json:"oldValue,omitempty"`
	NewValue   any             `json:"newValue,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}
