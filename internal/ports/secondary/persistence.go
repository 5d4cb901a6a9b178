// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"time"

	"github.com/example/sendgate/internal/models"
)

// TriggerRepository defines the secondary port for volume-trigger persistence.
type TriggerRepository interface {
	// SaveBatch atomically persists a structurally valid detection batch for
	// one creator. The whole batch runs inside a single exclusive write
	// transaction: each detection is resolved field-by-field against any
	// existing row for its natural key and upserted; any row failure rolls
	// the entire batch back. Overwrite warnings are collected against the
	// row state read inside the transaction.
	SaveBatch(ctx context.Context, creatorID string, detections []models.TriggerDetection, now time.Time) (*TriggerBatchResult, error)

	// GetByNaturalKey retrieves the row for (creator, content type, trigger
	// type), active or not. Returns nil without error when absent.
	GetByNaturalKey(ctx context.Context, creatorID, contentType string, triggerType models.TriggerType) (*models.VolumeTrigger, error)

	// ListByCreator retrieves a creator's trigger rows, optionally only
	// active ones, newest detection first.
	ListByCreator(ctx context.Context, creatorID string, activeOnly bool) ([]*models.VolumeTrigger, error)
}

// TriggerBatchResult reports what one atomic batch commit did.
type TriggerBatchResult struct {
	CreatedIDs        []string // row IDs inserted by this batch
	UpdatedIDs        []string // row IDs merged in place by this batch
	OverwriteWarnings []models.OverwriteWarning
}

// CreatorRepository defines the secondary port for the creators registry.
type CreatorRepository interface {
	// Create registers a creator.
	Create(ctx context.Context, creator *CreatorRecord) error

	// GetByID retrieves a creator by ID.
	GetByID(ctx context.Context, id string) (*CreatorRecord, error)

	// List retrieves all registered creators.
	List(ctx context.Context) ([]*CreatorRecord, error)

	// Exists checks whether a creator is registered.
	Exists(ctx context.Context, id string) (bool, error)
}

// CreatorRecord represents a creator as stored in persistence.
type CreatorRecord struct {
	ID          string
	DisplayName string
	PageType    string // free|paid
	CreatedAt   string
}

// AuditLogRepository defines the secondary port for the audit trail.
type AuditLogRepository interface {
	// Create appends an audit entry.
	Create(ctx context.Context, entry *AuditLogRecord) error

	// ListByEntity retrieves entries for one entity, newest first.
	ListByEntity(ctx context.Context, entityType, entityID string) ([]*AuditLogRecord, error)
}

// AuditLogRecord represents one audit trail entry.
type AuditLogRecord struct {
	ID         int64
	ActorID    string
	EntityType string // "certificate" or "trigger_batch"
	EntityID   string
	Action     string
	Detail     string
	CreatedAt  string
}
