package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/sendgate/internal/app"
	"github.com/example/sendgate/internal/models"
	"github.com/example/sendgate/internal/ports/primary"
)

func fixedClock() func() time.Time {
	return func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
}

func detection(contentType string) models.TriggerDetection {
	return models.TriggerDetection{
		ContentType:          contentType,
		TriggerType:          models.TriggerHighPerformer,
		AdjustmentMultiplier: 1.2,
		Confidence:           models.ConfidenceHigh,
		Reason:               "top decile conversion",
	}
}

func TestSaveTriggers_PersistsValidBatch(t *testing.T) {
	repo := newFakeTriggerRepo()
	svc := app.NewTriggerService(repo, newFakeCreatorRepo("creator-001"), nil, fixedClock())

	resp, err := svc.SaveTriggers(context.Background(), primary.SaveTriggersRequest{
		CreatorID:  "creator-001",
		Detections: []models.TriggerDetection{detection("lingerie"), detection("shower")},
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.TriggersSaved)
	assert.Len(t, resp.CreatedIDs, 2)
	assert.Empty(t, resp.UpdatedIDs)
	assert.NotEmpty(t, resp.Metadata.TriggersHash)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), resp.Metadata.PersistedAt)
}

func TestSaveTriggers_CleanSaveSerializesEmptyWarningLists(t *testing.T) {
	svc := app.NewTriggerService(newFakeTriggerRepo(), newFakeCreatorRepo("creator-001"), nil, fixedClock())

	resp, err := svc.SaveTriggers(context.Background(), primary.SaveTriggersRequest{
		CreatorID:  "creator-001",
		Detections: []models.TriggerDetection{detection("lingerie")},
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Warnings)
	require.NotNil(t, resp.OverwriteWarnings)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"warnings":[]`)
	assert.Contains(t, string(data), `"overwrite_warnings":[]`)
}

func TestSaveTriggers_UnknownCreator(t *testing.T) {
	repo := newFakeTriggerRepo()
	svc := app.NewTriggerService(repo, newFakeCreatorRepo(), nil, fixedClock())

	_, err := svc.SaveTriggers(context.Background(), primary.SaveTriggersRequest{
		CreatorID:  "creator-999",
		Detections: []models.TriggerDetection{detection("lingerie")},
	})
	require.Error(t, err)

	var triggerErr *primary.TriggerError
	require.ErrorAs(t, err, &triggerErr)
	assert.Equal(t, models.CodeCreatorNotFound, triggerErr.Code)
	assert.Zero(t, repo.saveCalls, "nothing may reach the repository")
}

func TestSaveTriggers_StructurallyInvalidBatchRejectedBeforeWrite(t *testing.T) {
	repo := newFakeTriggerRepo()
	svc := app.NewTriggerService(repo, newFakeCreatorRepo("creator-001"), nil, fixedClock())

	bad := detection("lingerie")
	bad.TriggerType = "SOMETHING_ELSE"

	_, err := svc.SaveTriggers(context.Background(), primary.SaveTriggersRequest{
		CreatorID:  "creator-001",
		Detections: []models.TriggerDetection{detection("shower"), bad},
	})
	require.Error(t, err)

	var triggerErr *primary.TriggerError
	require.ErrorAs(t, err, &triggerErr)
	assert.Equal(t, models.CodeValidationError, triggerErr.Code)
	assert.Zero(t, repo.saveCalls, "invalid batch must not reach the repository")
}

func TestSaveTriggers_RepositoryFailureSurfacesAsDatabaseError(t *testing.T) {
	repo := newFakeTriggerRepo()
	repo.saveErr = errors.New("disk full")
	svc := app.NewTriggerService(repo, newFakeCreatorRepo("creator-001"), nil, fixedClock())

	_, err := svc.SaveTriggers(context.Background(), primary.SaveTriggersRequest{
		CreatorID:  "creator-001",
		Detections: []models.TriggerDetection{detection("lingerie")},
	})
	require.Error(t, err)

	var triggerErr *primary.TriggerError
	require.ErrorAs(t, err, &triggerErr)
	assert.Equal(t, models.CodeDatabaseError, triggerErr.Code)
}

func TestSaveTriggers_OversizedBatchWarnsButPersists(t *testing.T) {
	repo := newFakeTriggerRepo()
	svc := app.NewTriggerService(repo, newFakeCreatorRepo("creator-001"), nil, fixedClock())

	var detections []models.TriggerDetection
	for i := 0; i < 21; i++ {
		detections = append(detections, detection(fmt.Sprintf("content-%02d", i)))
	}

	resp, err := svc.SaveTriggers(context.Background(), primary.SaveTriggersRequest{
		CreatorID:  "creator-001",
		Detections: detections,
	})
	require.NoError(t, err)

	assert.Equal(t, 21, resp.TriggersSaved)
	require.NotEmpty(t, resp.Warnings)
	assert.Contains(t, resp.Warnings[len(resp.Warnings)-1], "exceeds the expected size")
}

func TestSaveTriggers_ReportsOverwriteWarnings(t *testing.T) {
	repo := newFakeTriggerRepo()
	svc := app.NewTriggerService(repo, newFakeCreatorRepo("creator-001"), nil, fixedClock())
	ctx := context.Background()

	first, err := svc.SaveTriggers(ctx, primary.SaveTriggersRequest{
		CreatorID:  "creator-001",
		Detections: []models.TriggerDetection{detection("lingerie")},
	})
	require.NoError(t, err)
	assert.Empty(t, first.OverwriteWarnings)

	flipped := detection("lingerie")
	flipped.AdjustmentMultiplier = 0.85

	second, err := svc.SaveTriggers(ctx, primary.SaveTriggersRequest{
		CreatorID:  "creator-001",
		Detections: []models.TriggerDetection{flipped},
	})
	require.NoError(t, err)

	assert.Len(t, second.UpdatedIDs, 1)
	require.Len(t, second.OverwriteWarnings, 1)
	assert.True(t, second.OverwriteWarnings[0].DirectionFlip)
}

func TestSaveTriggers_HashIsOrderIndependent(t *testing.T) {
	svc := app.NewTriggerService(newFakeTriggerRepo(), newFakeCreatorRepo("creator-001"), nil, fixedClock())
	ctx := context.Background()

	a, err := svc.SaveTriggers(ctx, primary.SaveTriggersRequest{
		CreatorID:  "creator-001",
		Detections: []models.TriggerDetection{detection("lingerie"), detection("shower")},
	})
	require.NoError(t, err)

	b, err := svc.SaveTriggers(ctx, primary.SaveTriggersRequest{
		CreatorID:  "creator-001",
		Detections: []models.TriggerDetection{detection("shower"), detection("lingerie")},
	})
	require.NoError(t, err)

	assert.Equal(t, a.Metadata.TriggersHash, b.Metadata.TriggersHash)
}

func TestSaveTriggers_WritesAuditEntry(t *testing.T) {
	logWriter := &fakeLogWriter{}
	svc := app.NewTriggerService(newFakeTriggerRepo(), newFakeCreatorRepo("creator-001"), logWriter, fixedClock())

	_, err := svc.SaveTriggers(context.Background(), primary.SaveTriggersRequest{
		CreatorID:  "creator-001",
		Detections: []models.TriggerDetection{detection("lingerie")},
	})
	require.NoError(t, err)

	require.Len(t, logWriter.actions, 1)
	assert.Equal(t, "trigger:creator-001:saved", logWriter.actions[0])
}

func TestListTriggers(t *testing.T) {
	repo := newFakeTriggerRepo()
	svc := app.NewTriggerService(repo, newFakeCreatorRepo("creator-001"), nil, fixedClock())
	ctx := context.Background()

	_, err := svc.SaveTriggers(ctx, primary.SaveTriggersRequest{
		CreatorID:  "creator-001",
		Detections: []models.TriggerDetection{detection("lingerie"), detection("shower")},
	})
	require.NoError(t, err)

	triggers, err := svc.ListTriggers(ctx, "creator-001", false)
	require.NoError(t, err)
	assert.Len(t, triggers, 2)

	_, err = svc.ListTriggers(ctx, "creator-999", false)
	var triggerErr *primary.TriggerError
	require.ErrorAs(t, err, &triggerErr)
	assert.Equal(t, models.CodeCreatorNotFound, triggerErr.Code)
}
