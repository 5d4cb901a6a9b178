// Package score computes the 0-100 quality score and validation status for
// a schedule. Hard-gate violations are handled upstream and force rejection
// regardless of the numeric score; this package only deducts points for
// soft issues (timing collisions, price anomalies, caption-quality flags).
package score

import (
	"fmt"

	"github.com/example/sendgate/internal/models"
	"github.com/example/sendgate/internal/taxonomy"
)

// CodeCaptionFlag marks a caption-quality flag raised by the generator.
// Soft-only: it deducts points but never rejects on its own.
const CodeCaptionFlag = "CAPTION_QUALITY_FLAG"

// Status thresholds applied when no hard gate fired.
const (
	ThresholdApproved  = 85 // >= 85: APPROVED
	ThresholdRecommend = 75 // 75-84: APPROVED with recommendations
	ThresholdReview    = 60 // 60-74: NEEDS_REVIEW; below: REJECTED
)

// Plausible price band for revenue sends. Prices outside it are soft
// anomalies, not hard violations.
const (
	MinRevenuePrice = 3.0
	MaxRevenuePrice = 150.0
)

// Weights is the documented point-deduction table for soft issues. The
// source material treats these as configurable, so they are loaded from
// config rather than hardcoded at call sites.
type Weights struct {
	TimeConflict int `yaml:"time_conflict"`
	PriceOutlier int `yaml:"price_outlier"`
	CaptionFlag  int `yaml:"caption_flag"`
}

// DefaultWeights returns the standard deduction table.
func DefaultWeights() Weights {
	return Weights{
		TimeConflict: 8,
		PriceOutlier: 5,
		CaptionFlag:  3,
	}
}

// Outcome is the scorer's aggregate result.
type Outcome struct {
	Score           int
	Status          models.ValidationStatus
	SoftIssues      []models.Violation
	Recommendations []string
}

// Scorer detects soft issues and aggregates them with gate results into a
// score and status. Pure and side-effect-free.
type Scorer struct {
	tax     *taxonomy.Cache
	weights Weights
}

// NewScorer creates a scorer with the given taxonomy cache and weight table.
func NewScorer(tax *taxonomy.Cache, weights Weights) *Scorer {
	return &Scorer{tax: tax, weights: weights}
}

// DetectSoftIssues finds timing collisions, price outliers, and
// caption-quality flags in a schedule.
func (s *Scorer) DetectSoftIssues(schedule models.Schedule) []models.Violation {
	var issues []models.Violation

	// Timing collisions: two sends in the same date+time slot. Each item
	// beyond the first in a slot counts once.
	slots := make(map[string]int)
	for i, item := range schedule.Items {
		slot := item.ScheduledDate + " " + item.ScheduledTime
		if slots[slot] > 0 {
			issues = append(issues, models.Violation{
				Code:        models.CodeTimeConflict,
				Message:     fmt.Sprintf("send %q collides with another send at %s", item.SendTypeKey, slot),
				SendTypeKey: item.SendTypeKey,
				ItemIndex:   i,
			})
		}
		slots[slot]++
	}

	// Price outliers on revenue sends.
	for i, item := range schedule.Items {
		category, ok := s.tax.Category(item.SendTypeKey)
		if !ok {
			category = item.Category
		}
		if category != models.CategoryRevenue {
			continue
		}
		if item.Price < MinRevenuePrice || item.Price > MaxRevenuePrice {
			issues = append(issues, models.Violation{
				Code:        models.CodePriceOutlier,
				Message:     fmt.Sprintf("price %.2f for %q is outside the plausible band [%.0f, %.0f]", item.Price, item.SendTypeKey, MinRevenuePrice, MaxRevenuePrice),
				SendTypeKey: item.SendTypeKey,
				ItemIndex:   i,
			})
		}
	}

	// Caption-quality flags set by the generator.
	for i, item := range schedule.Items {
		for _, flag := range item.CaptionFlags {
			issues = append(issues, models.Violation{
				Code:        CodeCaptionFlag,
				Message:     fmt.Sprintf("caption flagged %q on send %q", flag, item.SendTypeKey),
				SendTypeKey: item.SendTypeKey,
				ItemIndex:   i,
			})
		}
	}

	return issues
}

// Score aggregates hard-gate violations and soft issues into an outcome.
// The numeric score reflects soft issues only; any hard-gate violation
// forces REJECTED status no matter the number. Adding an issue can only
// lower the score, never raise it.
func (s *Scorer) Score(hardViolations, softIssues []models.Violation) Outcome {
	total := 100
	for _, issue := range softIssues {
		total -= s.deduction(issue.Code)
	}
	if total < 0 {
		total = 0
	}

	outcome := Outcome{Score: total, SoftIssues: softIssues}

	if len(hardViolations) > 0 {
		outcome.Status = models.StatusRejected
		return outcome
	}

	switch {
	case total >= ThresholdApproved:
		outcome.Status = models.StatusApproved
	case total >= ThresholdRecommend:
		outcome.Status = models.StatusApproved
		outcome.Recommendations = recommendations(softIssues)
	case total >= ThresholdReview:
		outcome.Status = models.StatusNeedsReview
	default:
		outcome.Status = models.StatusRejected
		// A sub-threshold rejection must be distinguishable by code from a
		// hard-gate rejection, so it surfaces as its own violation entry.
		outcome.SoftIssues = append(outcome.SoftIssues, models.Violation{
			Code:      models.CodeLowQualityScore,
			Message:   fmt.Sprintf("quality score %d is below the minimum of %d", total, ThresholdReview),
			ItemIndex: -1,
		})
	}

	return outcome
}

func (s *Scorer) deduction(code string) int {
	switch code {
	case models.CodeTimeConflict:
		return s.weights.TimeConflict
	case models.CodePriceOutlier:
		return s.weights.PriceOutlier
	case CodeCaptionFlag:
		return s.weights.CaptionFlag
	}
	return 0
}

// recommendations turns soft issues into operator-facing suggestions for
// the 75-84 band, where the schedule is approved but improvable.
func recommendations(softIssues []models.Violation) []string {
	counts := make(map[string]int)
	for _, issue := range softIssues {
		counts[issue.Code]++
	}

	var recs []string
	if n := counts[models.CodeTimeConflict]; n > 0 {
		recs = append(recs, fmt.Sprintf("respace %d colliding send(s) into free time slots", n))
	}
	if n := counts[models.CodePriceOutlier]; n > 0 {
		recs = append(recs, fmt.Sprintf("review pricing on %d send(s) outside the plausible band", n))
	}
	if n := counts[CodeCaptionFlag]; n > 0 {
		recs = append(recs, fmt.Sprintf("regenerate %d flagged caption(s)", n))
	}
	return recs
}
