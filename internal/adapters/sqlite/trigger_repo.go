// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/sendgate/internal/core/trigger"
	"github.com/example/sendgate/internal/models"
	"github.com/example/sendgate/internal/ports/secondary"
)

// TriggerRepository implements secondary.TriggerRepository with SQLite.
type TriggerRepository struct {
	db *sql.DB
}

// NewTriggerRepository creates a new SQLite trigger repository.
func NewTriggerRepository(db *sql.DB) *TriggerRepository {
	return &TriggerRepository{db: db}
}

// rowQuerier is satisfied by both *sql.DB and *sql.Tx.
type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const triggerColumns = `id, creator_id, content_type, trigger_type, adjustment_multiplier, confidence, reason, expires_at, detected_at, first_detected_at, detection_count, is_active, metrics_json`

// SaveBatch atomically persists one detection batch. The existing-row read,
// merge resolution, overwrite analysis, and upsert all happen inside a
// single exclusive write transaction; any row failure rolls back the whole
// batch so partial persistence can never occur.
//
// The transaction takes the database write lock at BEGIN only when the
// handle was opened with the _txlock=immediate DSN option, as db.GetDB
// does. On a handle without it the transaction is deferred and concurrent
// batches serialize at the first write instead.
func (r *TriggerRepository) SaveBatch(ctx context.Context, creatorID string, detections []models.TriggerDetection, now time.Time) (*secondary.TriggerBatchResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin trigger batch: %w", err)
	}
	defer tx.Rollback()

	result := &secondary.TriggerBatchResult{
		CreatedIDs: []string{},
		UpdatedIDs: []string{},
	}

	for _, d := range detections {
		existing, err := scanTrigger(queryByNaturalKey(ctx, tx, creatorID, d.ContentType, d.TriggerType))
		if err != nil {
			return nil, fmt.Errorf("failed to read trigger %s: %w", d.NaturalKey(), err)
		}

		if existing != nil {
			if warning := trigger.AnalyzeOverwrite(*existing, d); warning != nil {
				result.OverwriteWarnings = append(result.OverwriteWarnings, *warning)
			}
		}

		resolved := trigger.Resolve(existing, d, now)
		if existing == nil {
			resolved.ID = uuid.NewString()
			resolved.CreatorID = creatorID
		}

		var metricsJSON sql.NullString
		if resolved.Metrics != nil {
			data, err := json.Marshal(resolved.Metrics)
			if err != nil {
				return nil, fmt.Errorf("failed to encode metrics for %s: %w", d.NaturalKey(), err)
			}
			metricsJSON = sql.NullString{String: string(data), Valid: true}
		}

		var expiresAt sql.NullString
		if resolved.ExpiresAt != "" {
			expiresAt = sql.NullString{String: resolved.ExpiresAt, Valid: true}
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO volume_triggers (id, creator_id, content_type, trigger_type, adjustment_multiplier, confidence, reason, expires_at, detected_at, first_detected_at, detection_count, is_active, metrics_json)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(creator_id, content_type, trigger_type) DO UPDATE SET
				adjustment_multiplier = excluded.adjustment_multiplier,
				confidence = excluded.confidence,
				reason = excluded.reason,
				expires_at = excluded.expires_at,
				detected_at = excluded.detected_at,
				detection_count = excluded.detection_count,
				is_active = excluded.is_active,
				metrics_json = excluded.metrics_json,
				updated_at = CURRENT_TIMESTAMP`,
			resolved.ID,
			resolved.CreatorID,
			resolved.ContentType,
			string(resolved.TriggerType),
			resolved.AdjustmentMultiplier,
			string(resolved.Confidence),
			resolved.Reason,
			expiresAt,
			resolved.DetectedAt,
			resolved.FirstDetectedAt,
			resolved.DetectionCount,
			resolved.IsActive,
			metricsJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert trigger %s: %w", d.NaturalKey(), err)
		}

		if existing == nil {
			result.CreatedIDs = append(result.CreatedIDs, resolved.ID)
		} else {
			result.UpdatedIDs = append(result.UpdatedIDs, resolved.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit trigger batch: %w", err)
	}

	return result, nil
}

// GetByNaturalKey retrieves the row for (creator, content type, trigger type),
// active or not. Returns nil without error when absent.
func (r *TriggerRepository) GetByNaturalKey(ctx context.Context, creatorID, contentType string, triggerType models.TriggerType) (*models.VolumeTrigger, error) {
	record, err := scanTrigger(queryByNaturalKey(ctx, r.db, creatorID, contentType, triggerType))
	if err != nil {
		return nil, fmt.Errorf("failed to get trigger: %w", err)
	}
	return record, nil
}

// ListByCreator retrieves a creator's trigger rows, newest detection first.
func (r *TriggerRepository) ListByCreator(ctx context.Context, creatorID string, activeOnly bool) ([]*models.VolumeTrigger, error) {
	query := `SELECT ` + triggerColumns + ` FROM volume_triggers WHERE creator_id = ?`
	if activeOnly {
		query += " AND is_active = 1"
	}
	query += " ORDER BY detected_at DESC, content_type, trigger_type"

	rows, err := r.db.QueryContext(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list triggers: %w", err)
	}
	defer rows.Close()

	var triggers []*models.VolumeTrigger
	for rows.Next() {
		record, err := scanTriggerRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trigger: %w", err)
		}
		triggers = append(triggers, record)
	}

	return triggers, rows.Err()
}

func queryByNaturalKey(ctx context.Context, q rowQuerier, creatorID, contentType string, triggerType models.TriggerType) *sql.Row {
	return q.QueryRowContext(ctx,
		`SELECT `+triggerColumns+` FROM volume_triggers WHERE creator_id = ? AND content_type = ? AND trigger_type = ?`,
		creatorID, contentType, string(triggerType),
	)
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanFields(s scanner) (*models.VolumeTrigger, error) {
	var (
		record      models.VolumeTrigger
		reason      sql.NullString
		expiresAt   sql.NullString
		metricsJSON sql.NullString
	)

	err := s.Scan(
		&record.ID,
		&record.CreatorID,
		&record.ContentType,
		&record.TriggerType,
		&record.AdjustmentMultiplier,
		&record.Confidence,
		&reason,
		&expiresAt,
		&record.DetectedAt,
		&record.FirstDetectedAt,
		&record.DetectionCount,
		&record.IsActive,
		&metricsJSON,
	)
	if err != nil {
		return nil, err
	}

	record.Reason = reason.String
	record.ExpiresAt = expiresAt.String
	if metricsJSON.Valid {
		if err := json.Unmarshal([]byte(metricsJSON.String), &record.Metrics); err != nil {
			return nil, fmt.Errorf("corrupt metrics payload on trigger %s: %w", record.ID, err)
		}
	}

	return &record, nil
}

func scanTrigger(row *sql.Row) (*models.VolumeTrigger, error) {
	record, err := scanFields(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return record, err
}

func scanTriggerRow(rows *sql.Rows) (*models.VolumeTrigger, error) {
	return scanFields(rows)
}

// Ensure TriggerRepository implements the interface
var _ secondary.TriggerRepository = (*TriggerRepository)(nil)
