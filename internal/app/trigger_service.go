package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/example/sendgate/internal/core/trigger"
	"github.com/example/sendgate/internal/models"
	"github.com/example/sendgate/internal/ports/primary"
	"github.com/example/sendgate/internal/ports/secondary"
)

// TriggerServiceImpl implements the TriggerService interface.
type TriggerServiceImpl struct {
	triggerRepo secondary.TriggerRepository
	creatorRepo secondary.CreatorRepository
	logWriter   secondary.LogWriter
	now         func() time.Time
}

// NewTriggerService creates a new TriggerService with injected dependencies.
// logWriter may be nil; now defaults to time.Now.
func NewTriggerService(triggerRepo secondary.TriggerRepository, creatorRepo secondary.CreatorRepository, logWriter secondary.LogWriter, now func() time.Time) *TriggerServiceImpl {
	if now == nil {
		now = time.Now
	}
	return &TriggerServiceImpl{
		triggerRepo: triggerRepo,
		creatorRepo: creatorRepo,
		logWriter:   logWriter,
		now:         now,
	}
}

// SaveTriggers validates the batch up front, then persists it atomically.
// Any structural problem rejects the whole batch before a single write.
func (s *TriggerServiceImpl) SaveTriggers(ctx context.Context, req primary.SaveTriggersRequest) (*primary.SaveTriggersResponse, error) {
	started := s.now()

	if req.CreatorID == "" {
		return nil, &primary.TriggerError{Code: models.CodeValidationError, Err: fmt.Errorf("creator_id is required")}
	}

	exists, err := s.creatorRepo.Exists(ctx, req.CreatorID)
	if err != nil {
		return nil, &primary.TriggerError{Code: models.CodeDatabaseError, Err: err}
	}
	if !exists {
		return nil, &primary.TriggerError{Code: models.CodeCreatorNotFound, Err: fmt.Errorf("creator %s not found", req.CreatorID)}
	}

	warnings, err := trigger.ValidateBatch(req.Detections)
	if err != nil {
		return nil, &primary.TriggerError{Code: models.CodeValidationError, Err: err}
	}
	if trigger.OversizedBatch(len(req.Detections)) {
		warnings = append(warnings, fmt.Sprintf("batch of %d detections exceeds the expected size of %d, verify the detection run", len(req.Detections), trigger.OversizedBatchThreshold))
	}

	persistedAt := s.now().UTC()
	result, err := s.triggerRepo.SaveBatch(ctx, req.CreatorID, req.Detections, persistedAt)
	if err != nil {
		return nil, &primary.TriggerError{Code: models.CodeDatabaseError, Err: err}
	}

	if s.logWriter != nil {
		detail := fmt.Sprintf("%d detections, %d created, %d updated, %d overwrite warnings",
			len(req.Detections), len(result.CreatedIDs), len(result.UpdatedIDs), len(result.OverwriteWarnings))
		_ = s.logWriter.LogAction(ctx, "trigger", req.CreatorID, "saved", detail)
	}

	// Warning lists serialize as [] on a clean save, never null.
	if warnings == nil {
		warnings = []string{}
	}
	overwriteWarnings := result.OverwriteWarnings
	if overwriteWarnings == nil {
		overwriteWarnings = []models.OverwriteWarning{}
	}

	return &primary.SaveTriggersResponse{
		Success:           true,
		TriggersSaved:     len(req.Detections),
		CreatedIDs:        result.CreatedIDs,
		UpdatedIDs:        result.UpdatedIDs,
		Warnings:          warnings,
		OverwriteWarnings: overwriteWarnings,
		Metadata: primary.SaveMetadata{
			PersistedAt:  persistedAt,
			ExecutionMs:  s.now().Sub(started).Milliseconds(),
			TriggersHash: hashDetections(req.Detections),
		},
	}, nil
}

// ListTriggers retrieves a creator's trigger rows.
func (s *TriggerServiceImpl) ListTriggers(ctx context.Context, creatorID string, activeOnly bool) ([]*models.VolumeTrigger, error) {
	exists, err := s.creatorRepo.Exists(ctx, creatorID)
	if err != nil {
		return nil, &primary.TriggerError{Code: models.CodeDatabaseError, Err: err}
	}
	if !exists {
		return nil, &primary.TriggerError{Code: models.CodeCreatorNotFound, Err: fmt.Errorf("creator %s not found", creatorID)}
	}

	triggers, err := s.triggerRepo.ListByCreator(ctx, creatorID, activeOnly)
	if err != nil {
		return nil, &primary.TriggerError{Code: models.CodeDatabaseError, Err: err}
	}
	return triggers, nil
}

// hashDetections fingerprints a batch independent of detection order, so a
// retried batch hashes the same.
func hashDetections(detections []models.TriggerDetection) string {
	sorted := make([]models.TriggerDetection, len(detections))
	copy(sorted, detections)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].NaturalKey() < sorted[j].NaturalKey()
	})

	data, err := json.Marshal(sorted)
	if err != nil {
		// Detections are plain data; marshal cannot fail on them.
		panic(err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Ensure TriggerServiceImpl implements the interface
var _ primary.TriggerService = (*TriggerServiceImpl)(nil)
