package app_test

import (
	"context"
	"fmt"
	"time"

	"github.com/example/sendgate/internal/core/trigger"
	"github.com/example/sendgate/internal/models"
	"github.com/example/sendgate/internal/ports/secondary"
)

// fakeTriggerRepo is an in-memory TriggerRepository keyed by natural key.
type fakeTriggerRepo struct {
	rows      map[string]*models.VolumeTrigger
	saveErr   error
	saveCalls int
}

func newFakeTriggerRepo() *fakeTriggerRepo {
	return &fakeTriggerRepo{rows: make(map[string]*models.VolumeTrigger)}
}

func (r *fakeTriggerRepo) key(creatorID, contentType string, triggerType models.TriggerType) string {
	return creatorID + "/" + contentType + "/" + string(triggerType)
}

func (r *fakeTriggerRepo) SaveBatch(ctx context.Context, creatorID string, detections []models.TriggerDetection, now time.Time) (*secondary.TriggerBatchResult, error) {
	r.saveCalls++
	if r.saveErr != nil {
		return nil, r.saveErr
	}

	result := &secondary.TriggerBatchResult{}
	for i, d := range detections {
		key := r.key(creatorID, d.ContentType, d.TriggerType)
		existing := r.rows[key]
		if existing != nil {
			if w := trigger.AnalyzeOverwrite(*existing, d); w != nil {
				result.OverwriteWarnings = append(result.OverwriteWarnings, *w)
			}
		}
		merged := trigger.Resolve(existing, d, now)
		if existing == nil {
			merged.ID = fmt.Sprintf("row-%d", i)
			merged.CreatorID = creatorID
			result.CreatedIDs = append(result.CreatedIDs, merged.ID)
		} else {
			result.UpdatedIDs = append(result.UpdatedIDs, merged.ID)
		}
		r.rows[key] = &merged
	}
	return result, nil
}

func (r *fakeTriggerRepo) GetByNaturalKey(ctx context.Context, creatorID, contentType string, triggerType models.TriggerType) (*models.VolumeTrigger, error) {
	return r.rows[r.key(creatorID, contentType, triggerType)], nil
}

func (r *fakeTriggerRepo) ListByCreator(ctx context.Context, creatorID string, activeOnly bool) ([]*models.VolumeTrigger, error) {
	var out []*models.VolumeTrigger
	for _, row := range r.rows {
		if row.CreatorID != creatorID {
			continue
		}
		if activeOnly && !row.IsActive {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

// fakeCreatorRepo is an in-memory CreatorRepository.
type fakeCreatorRepo struct {
	creators map[string]*secondary.CreatorRecord
}

func newFakeCreatorRepo(ids ...string) *fakeCreatorRepo {
	repo := &fakeCreatorRepo{creators: make(map[string]*secondary.CreatorRecord)}
	for _, id := range ids {
		repo.creators[id] = &secondary.CreatorRecord{ID: id, DisplayName: id, PageType: "paid"}
	}
	return repo
}

func (r *fakeCreatorRepo) Create(ctx context.Context, creator *secondary.CreatorRecord) error {
	if _, ok := r.creators[creator.ID]; ok {
		return fmt.Errorf("creator %s already exists", creator.ID)
	}
	r.creators[creator.ID] = creator
	return nil
}

func (r *fakeCreatorRepo) GetByID(ctx context.Context, id string) (*secondary.CreatorRecord, error) {
	creator, ok := r.creators[id]
	if !ok {
		return nil, fmt.Errorf("creator %s not found", id)
	}
	return creator, nil
}

func (r *fakeCreatorRepo) List(ctx context.Context) ([]*secondary.CreatorRecord, error) {
	var out []*secondary.CreatorRecord
	for _, c := range r.creators {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCreatorRepo) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := r.creators[id]
	return ok, nil
}

// fakeLogWriter records audit calls.
type fakeLogWriter struct {
	actions []string
}

func (w *fakeLogWriter) LogAction(ctx context.Context, entityType, entityID, action, detail string) error {
	w.actions = append(w.actions, entityType+":"+entityID+":"+action)
	return nil
}
