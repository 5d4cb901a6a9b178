package app

import (
	"context"
	"fmt"

	"github.com/example/sendgate/internal/models"
	"github.com/example/sendgate/internal/ports/primary"
	"github.com/example/sendgate/internal/ports/secondary"
)

// CreatorServiceImpl implements the CreatorService interface.
type CreatorServiceImpl struct {
	creatorRepo secondary.CreatorRepository
	logWriter   secondary.LogWriter
}

// NewCreatorService creates a new CreatorService with injected dependencies.
func NewCreatorService(creatorRepo secondary.CreatorRepository, logWriter secondary.LogWriter) *CreatorServiceImpl {
	return &CreatorServiceImpl{
		creatorRepo: creatorRepo,
		logWriter:   logWriter,
	}
}

// AddCreator registers a creator.
func (s *CreatorServiceImpl) AddCreator(ctx context.Context, req primary.AddCreatorRequest) error {
	if req.ID == "" {
		return fmt.Errorf("creator ID is required")
	}
	if req.PageType != models.PageTypeFree && req.PageType != models.PageTypePaid {
		return fmt.Errorf("page type must be %s or %s", models.PageTypeFree, models.PageTypePaid)
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = req.ID
	}

	err := s.creatorRepo.Create(ctx, &secondary.CreatorRecord{
		ID:          req.ID,
		DisplayName: displayName,
		PageType:    string(req.PageType),
	})
	if err != nil {
		return err
	}

	if s.logWriter != nil {
		_ = s.logWriter.LogAction(ctx, "creator", req.ID, "registered", string(req.PageType))
	}
	return nil
}

// ListCreators retrieves all registered creators.
func (s *CreatorServiceImpl) ListCreators(ctx context.Context) ([]primary.Creator, error) {
	records, err := s.creatorRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	creators := make([]primary.Creator, 0, len(records))
	for _, r := range records {
		creators = append(creators, primary.Creator{
			ID:          r.ID,
			DisplayName: r.DisplayName,
			PageType:    models.PageType(r.PageType),
			CreatedAt:   r.CreatedAt,
		})
	}
	return creators, nil
}

// Ensure CreatorServiceImpl implements the interface
var _ primary.CreatorService = (*CreatorServiceImpl)(nil)
