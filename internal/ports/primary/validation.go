// Package primary defines the primary ports (driving interfaces) for the application.
package primary

import (
	"context"

	"github.com/example/sendgate/internal/models"
)

// ValidationService defines the primary port for schedule validation.
type ValidationService interface {
	// ValidateSchedule runs the full hard-gate set, soft-issue scoring, and
	// certificate build for one schedule. Rule violations come back as
	// structured entries on the response, never as an error; errors are
	// reserved for structural failures (missing snapshots, bad input).
	ValidateSchedule(ctx context.Context, req ValidateScheduleRequest) (*ValidateScheduleResponse, error)
}

// ValidateScheduleRequest carries a schedule and the pre-fetched read-only
// business-data snapshots to validate it against.
type ValidateScheduleRequest struct {
	Schedule models.Schedule
	Vault    models.VaultMatrix
	Rankings models.ContentTypeRanking
}

// DiversityBreakdown reports the distinct send-type counts the diversity
// gate evaluated.
type DiversityBreakdown struct {
	UniqueSendTypes  int `json:"unique_send_types"`
	UniqueRevenue    int `json:"unique_revenue"`
	UniqueEngagement int `json:"unique_engagement"`
	UniqueRetention  int `json:"unique_retention"`
}

// ValidateScheduleResponse is the full validation outcome. The certificate
// is present for every completed pass, including rejections.
type ValidateScheduleResponse struct {
	Certificate     *models.ValidationCertificate `json:"certificate"`
	HardViolations  []models.Violation            `json:"hard_violations,omitempty"`
	SoftIssues      []models.Violation            `json:"soft_issues,omitempty"`
	Diversity       DiversityBreakdown            `json:"diversity"`
	Recommendations []string                      `json:"recommendations,omitempty"`
}
