package primary

import (
	"context"
	"time"

	"github.com/example/sendgate/internal/models"
)

// TriggerService defines the primary port for volume-trigger persistence.
type TriggerService interface {
	// SaveTriggers validates and atomically persists a detection batch for
	// one creator. Structural failures reject the whole batch with a
	// *TriggerError (nothing persisted); storage failures roll back fully,
	// so callers may safely retry the entire batch.
	SaveTriggers(ctx context.Context, req SaveTriggersRequest) (*SaveTriggersResponse, error)

	// ListTriggers retrieves a creator's trigger rows.
	ListTriggers(ctx context.Context, creatorID string, activeOnly bool) ([]*models.VolumeTrigger, error)
}

// CreatorService defines the primary port for the creators registry.
type CreatorService interface {
	// AddCreator registers a creator.
	AddCreator(ctx context.Context, req AddCreatorRequest) error

	// ListCreators retrieves all registered creators.
	ListCreators(ctx context.Context) ([]Creator, error)
}

// SaveTriggersRequest carries one detection batch.
type SaveTriggersRequest struct {
	CreatorID  string
	Detections []models.TriggerDetection
}

// SaveMetadata describes a completed persistence pass.
type SaveMetadata struct {
	PersistedAt  time.Time `json:"persisted_at"`
	ExecutionMs  int64     `json:"execution_ms"`
	TriggersHash string    `json:"triggers_hash"`
}

// SaveTriggersResponse reports a fully committed batch.
type SaveTriggersResponse struct {
	Success           bool                      `json:"success"`
	TriggersSaved     int                       `json:"triggers_saved"`
	CreatedIDs        []string                  `json:"created_ids"`
	UpdatedIDs        []string                  `json:"updated_ids"`
	Warnings          []string                  `json:"warnings"`
	OverwriteWarnings []models.OverwriteWarning `json:"overwrite_warnings"`
	Metadata          SaveMetadata              `json:"metadata"`
}

// AddCreatorRequest contains parameters for registering a creator.
type AddCreatorRequest struct {
	ID          string
	DisplayName string
	PageType    models.PageType
}

// Creator is a registry entry.
type Creator struct {
	ID          string
	DisplayName string
	PageType    models.PageType
	CreatedAt   string
}

// TriggerError is a trigger-path failure with a stable error code
// (VALIDATION_ERROR, CREATOR_NOT_FOUND, DATABASE_ERROR).
type TriggerError struct {
	Code string
	Err  error
}

func (e *TriggerError) Error() string {
	return e.Code + ": " + e.Err.Error()
}

func (e *TriggerError) Unwrap() error {
	return e.Err
}
