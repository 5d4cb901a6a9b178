// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/sendgate/internal/ports/secondary"
)

// AuditLogRepository implements secondary.AuditLogRepository with SQLite.
type AuditLogRepository struct {
	db *sql.DB
}

// NewAuditLogRepository creates a new SQLite audit log repository.
func NewAuditLogRepository(db *sql.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Create appends an audit entry.
func (r *AuditLogRepository) Create(ctx context.Context, entry *secondary.AuditLogRecord) error {
	var actorID sql.NullString
	if entry.ActorID != "" {
		actorID = sql.NullString{String: entry.ActorID, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO audit_log (actor_id, entity_type, entity_id, action, detail) VALUES (?, ?, ?, ?, ?)",
		actorID, entry.EntityType, entry.EntityID, entry.Action, entry.Detail,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit entry: %w", err)
	}

	entry.ID, _ = result.LastInsertId()
	return nil
}

// ListByEntity retrieves entries for one entity, newest first.
func (r *AuditLogRepository) ListByEntity(ctx context.Context, entityType, entityID string) ([]*secondary.AuditLogRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, actor_id, entity_type, entity_id, action, detail, created_at FROM audit_log WHERE entity_type = ? AND entity_id = ? ORDER BY id DESC",
		entityType, entityID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.AuditLogRecord
	for rows.Next() {
		var (
			actorID   sql.NullString
			detail    sql.NullString
			createdAt time.Time
		)
		record := &secondary.AuditLogRecord{}
		err := rows.Scan(&record.ID, &actorID, &record.EntityType, &record.EntityID, &record.Action, &detail, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		record.ActorID = actorID.String
		record.Detail = detail.String
		record.CreatedAt = createdAt.Format(time.RFC3339)
		entries = append(entries, record)
	}

	return entries, rows.Err()
}

// Ensure AuditLogRepository implements the interface
var _ secondary.AuditLogRepository = (*AuditLogRepository)(nil)
