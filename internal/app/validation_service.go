package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/sendgate/internal/core/certificate"
	"github.com/example/sendgate/internal/core/gates"
	"github.com/example/sendgate/internal/core/score"
	"github.com/example/sendgate/internal/models"
	"github.com/example/sendgate/internal/ports/primary"
	"github.com/example/sendgate/internal/ports/secondary"
)

// ValidationServiceImpl implements the ValidationService interface.
type ValidationServiceImpl struct {
	evaluator *gates.Evaluator
	scorer    *score.Scorer
	builder   *certificate.Builder
	logWriter secondary.LogWriter
}

// NewValidationService creates a new ValidationService with injected dependencies.
// logWriter may be nil when audit logging is not wired (pure in-process use).
func NewValidationService(evaluator *gates.Evaluator, scorer *score.Scorer, builder *certificate.Builder, logWriter secondary.LogWriter) *ValidationServiceImpl {
	return &ValidationServiceImpl{
		evaluator: evaluator,
		scorer:    scorer,
		builder:   builder,
		logWriter: logWriter,
	}
}

// ValidateSchedule runs the hard gates, scores soft issues, and stamps a
// certificate. Violations are data on the response; an error means the pass
// could not run at all.
func (s *ValidationServiceImpl) ValidateSchedule(ctx context.Context, req primary.ValidateScheduleRequest) (*primary.ValidateScheduleResponse, error) {
	if err := checkSnapshots(req); err != nil {
		return nil, err
	}

	vaultTypes := req.Vault[req.Schedule.CreatorID]
	rankings := req.Rankings[req.Schedule.CreatorID]

	gateResult := s.evaluator.Evaluate(gates.Input{
		Schedule:   req.Schedule,
		VaultTypes: vaultTypes,
		Rankings:   rankings,
	})

	softIssues := s.scorer.DetectSoftIssues(req.Schedule)
	// The outcome carries the detected issues plus any LOW_QUALITY_SCORE
	// entry the scorer adds for a sub-threshold rejection.
	outcome := s.scorer.Score(gateResult.Violations, softIssues)

	var allViolations []models.Violation
	allViolations = append(allViolations, gateResult.Violations...)
	allViolations = append(allViolations, outcome.SoftIssues...)

	cert := s.builder.Build(certificate.BuildInput{
		Schedule:              req.Schedule,
		VaultTypes:            vaultTypes,
		AvoidTypes:            avoidTypes(rankings),
		QualityScore:          outcome.Score,
		Status:                outcome.Status,
		Violations:            allViolations,
		UpstreamProofVerified: true,
	})

	if s.logWriter != nil {
		detail := fmt.Sprintf("status %s, score %d, %d hard violations, %d soft issues",
			outcome.Status, outcome.Score, len(gateResult.Violations), len(outcome.SoftIssues))
		entityID := req.Schedule.CreatorID + "/" + req.Schedule.WeekStart
		// Audit failures must not fail the validation itself.
		_ = s.logWriter.LogAction(ctx, "schedule", entityID, "validated", detail)
	}

	return &primary.ValidateScheduleResponse{
		Certificate:    cert,
		HardViolations: gateResult.Violations,
		SoftIssues:     outcome.SoftIssues,
		Diversity: primary.DiversityBreakdown{
			UniqueSendTypes:  gateResult.Diversity.UniqueSendTypes,
			UniqueRevenue:    gateResult.Diversity.UniqueRevenue,
			UniqueEngagement: gateResult.Diversity.UniqueEngagement,
			UniqueRetention:  gateResult.Diversity.UniqueRetention,
		},
		Recommendations: outcome.Recommendations,
	}, nil
}

// checkSnapshots rejects passes that cannot attest what they validated
// against. A creator absent from a snapshot is indistinguishable from a
// collaborator failure, so it fails closed.
func checkSnapshots(req primary.ValidateScheduleRequest) error {
	if req.Schedule.CreatorID == "" {
		return fmt.Errorf("schedule has no creator_id")
	}
	if req.Schedule.WeekStart == "" {
		return fmt.Errorf("schedule has no week_start")
	}
	if _, err := time.Parse("2006-01-02", req.Schedule.WeekStart); err != nil {
		return fmt.Errorf("invalid week_start %q: %w", req.Schedule.WeekStart, err)
	}
	if len(req.Schedule.Items) == 0 {
		return fmt.Errorf("schedule has no items")
	}
	if req.Vault == nil {
		return fmt.Errorf("vault snapshot is missing")
	}
	if req.Rankings == nil {
		return fmt.Errorf("ranking snapshot is missing")
	}
	if _, ok := req.Vault[req.Schedule.CreatorID]; !ok {
		return fmt.Errorf("vault snapshot has no entry for creator %s", req.Schedule.CreatorID)
	}
	if _, ok := req.Rankings[req.Schedule.CreatorID]; !ok {
		return fmt.Errorf("ranking snapshot has no entry for creator %s", req.Schedule.CreatorID)
	}
	return nil
}

func avoidTypes(rankings map[string]models.Tier) []string {
	var avoid []string
	for contentType, tier := range rankings {
		if tier == models.TierAvoid {
			avoid = append(avoid, contentType)
		}
	}
	return avoid
}

// Ensure ValidationServiceImpl implements the interface
var _ primary.ValidationService = (*ValidationServiceImpl)(nil)
