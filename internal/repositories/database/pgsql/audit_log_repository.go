package pgsql

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/inventory_ledger/internal/apperrors"
	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	"github.com/SscSPs/inventory_ledger/internal/models"
)

// PgxAuditLogRepository persists audit events to the audit_log table.
// It satisfies audit.Sink.
type PgxAuditLogRepository struct {
	BaseRepository
}

// NewPgxAuditLogRepository creates the audit log writer.
func NewPgxAuditLogRepository(pool *pgxpool.Pool) *PgxAuditLogRepository {
	return &PgxAuditLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

func (r *PgxAuditLogRepository) Name() string { return "postgres" }

func (r *PgxAuditLogRepository) Write(ctx context.Context, event domain.AuditEvent) error {
	before, err := jsonOrNil(event.OldValue)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode audit before-data", err)
	}
	after, err := jsonOrNil(event.NewValue)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode audit after-data", err)
	}

	m := models.AuditLog{
		AuditID:    uuid.NewString(),
		Action:     string(event.Action),
		EntityType: string(event.EntityType),
		EntityID:   event.EntityID,
		UserID:     event.ActingUser.UserID,
		Role:       string(event.ActingUser.Role),
		BeforeData: before,
		AfterData:  after,
		OccurredAt: event.Timestamp,
	}
	query := `
		INSERT INTO audit_log (audit_id, action, entity_type, entity_id, user_id, role, before_data, after_data, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.AuditID,
		m.Action,
		m.EntityType,
		m.EntityID,
		m.UserID,
		m.Role,
		m.BeforeData,
		m.AfterData,
		m.OccurredAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit log", err)
	}
	return nil
}

// jsonOrNil returns nil for an absent value so the column stores SQL NULL.
func jsonOrNil(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
