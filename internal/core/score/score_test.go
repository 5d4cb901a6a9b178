package score_test

import (
	"testing"

	"github.com/example/sendgate/internal/core/score"
	"github.com/example/sendgate/internal/models"
	"github.com/example/sendgate/internal/taxonomy"
)

func newScorer() *score.Scorer {
	return score.NewScorer(taxonomy.NewCache(), score.DefaultWeights())
}

func TestScore_CleanScheduleApproved(t *testing.T) {
	outcome := newScorer().Score(nil, nil)

	if outcome.Score != 100 {
		t.Errorf("expected score 100, got %d", outcome.Score)
	}
	if outcome.Status != models.StatusApproved {
		t.Errorf("expected APPROVED, got %s", outcome.Status)
	}
	if len(outcome.Recommendations) != 0 {
		t.Errorf("expected no recommendations, got %v", outcome.Recommendations)
	}
}

func TestScore_HardViolationForcesRejection(t *testing.T) {
	hard := []models.Violation{{Code: models.CodeVaultViolation}}
	outcome := newScorer().Score(hard, nil)

	if outcome.Status != models.StatusRejected {
		t.Errorf("expected REJECTED despite perfect score, got %s", outcome.Status)
	}
	if outcome.Score != 100 {
		t.Errorf("expected numeric score untouched by hard gate, got %d", outcome.Score)
	}
}

func TestScore_Thresholds(t *testing.T) {
	timeConflict := models.Violation{Code: models.CodeTimeConflict} // -8 each

	tests := []struct {
		name       string
		conflicts  int
		wantScore  int
		wantStatus models.ValidationStatus
		wantRecs   bool
	}{
		{"one conflict stays approved", 1, 92, models.StatusApproved, false},
		{"three conflicts approved with recommendations", 3, 76, models.StatusApproved, true},
		{"four conflicts needs review", 4, 68, models.StatusNeedsReview, false},
		{"six conflicts rejected", 6, 52, models.StatusRejected, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var soft []models.Violation
			for i := 0; i < tt.conflicts; i++ {
				soft = append(soft, timeConflict)
			}

			outcome := newScorer().Score(nil, soft)
			if outcome.Score != tt.wantScore {
				t.Errorf("expected score %d, got %d", tt.wantScore, outcome.Score)
			}
			if outcome.Status != tt.wantStatus {
				t.Errorf("expected status %s, got %s", tt.wantStatus, outcome.Status)
			}
			if tt.wantRecs && len(outcome.Recommendations) == 0 {
				t.Error("expected recommendations in the 75-84 band")
			}
		})
	}
}

func TestScore_LowScoreRejectionCarriesCode(t *testing.T) {
	var soft []models.Violation
	for i := 0; i < 6; i++ {
		soft = append(soft, models.Violation{Code: models.CodeTimeConflict})
	}

	outcome := newScorer().Score(nil, soft)
	if outcome.Score != 52 {
		t.Errorf("expected score 52, got %d", outcome.Score)
	}
	if outcome.Status != models.StatusRejected {
		t.Fatalf("expected REJECTED, got %s", outcome.Status)
	}

	lowScore := 0
	for _, issue := range outcome.SoftIssues {
		if issue.Code == models.CodeLowQualityScore {
			lowScore++
		}
	}
	if lowScore != 1 {
		t.Errorf("expected exactly one LOW_QUALITY_SCORE entry, got %d (%+v)", lowScore, outcome.SoftIssues)
	}
}

func TestScore_NeedsReviewCarriesNoLowScoreCode(t *testing.T) {
	var soft []models.Violation
	for i := 0; i < 4; i++ {
		soft = append(soft, models.Violation{Code: models.CodeTimeConflict})
	}

	outcome := newScorer().Score(nil, soft)
	if outcome.Status != models.StatusNeedsReview {
		t.Fatalf("expected NEEDS_REVIEW, got %s", outcome.Status)
	}
	for _, issue := range outcome.SoftIssues {
		if issue.Code == models.CodeLowQualityScore {
			t.Errorf("LOW_QUALITY_SCORE must only mark sub-%d rejections", score.ThresholdReview)
		}
	}
}

func TestScore_Monotonic(t *testing.T) {
	scorer := newScorer()
	soft := []models.Violation{}
	prev := scorer.Score(nil, soft).Score

	add := []models.Violation{
		{Code: models.CodeTimeConflict},
		{Code: models.CodePriceOutlier},
		{Code: score.CodeCaptionFlag},
		{Code: models.CodeTimeConflict},
	}
	for _, v := range add {
		soft = append(soft, v)
		got := scorer.Score(nil, soft).Score
		if got > prev {
			t.Fatalf("score increased from %d to %d after adding %s", prev, got, v.Code)
		}
		prev = got
	}
}

func TestScore_ClampedAtZero(t *testing.T) {
	var soft []models.Violation
	for i := 0; i < 20; i++ {
		soft = append(soft, models.Violation{Code: models.CodeTimeConflict})
	}
	outcome := newScorer().Score(nil, soft)
	if outcome.Score != 0 {
		t.Errorf("expected score clamped to 0, got %d", outcome.Score)
	}
	if outcome.Status != models.StatusRejected {
		t.Errorf("expected REJECTED, got %s", outcome.Status)
	}
}

func TestDetectSoftIssues_TimeConflicts(t *testing.T) {
	schedule := models.Schedule{Items: []models.ScheduleItem{
		{SendTypeKey: "poll", ScheduledDate: "2026-03-02", ScheduledTime: "10:00"},
		{SendTypeKey: "quiz_game", ScheduledDate: "2026-03-02", ScheduledTime: "10:00"},
		{SendTypeKey: "dm_blast", ScheduledDate: "2026-03-02", ScheduledTime: "11:00"},
	}}

	issues := newScorer().DetectSoftIssues(schedule)
	conflicts := 0
	for _, issue := range issues {
		if issue.Code == models.CodeTimeConflict {
			conflicts++
		}
	}
	if conflicts != 1 {
		t.Errorf("expected 1 time conflict, got %d (%+v)", conflicts, issues)
	}
}

func TestDetectSoftIssues_PriceOutliers(t *testing.T) {
	schedule := models.Schedule{Items: []models.ScheduleItem{
		{SendTypeKey: "ppv_video", ScheduledDate: "2026-03-02", ScheduledTime: "10:00", Price: 1, FlyerRequired: true},
		{SendTypeKey: "bundle_offer", ScheduledDate: "2026-03-03", ScheduledTime: "10:00", Price: 400, FlyerRequired: true},
		{SendTypeKey: "flash_sale", ScheduledDate: "2026-03-04", ScheduledTime: "10:00", Price: 20, FlyerRequired: true},
		{SendTypeKey: "poll", ScheduledDate: "2026-03-05", ScheduledTime: "10:00", Price: 0}, // engagement, no band
	}}

	issues := newScorer().DetectSoftIssues(schedule)
	outliers := 0
	for _, issue := range issues {
		if issue.Code == models.CodePriceOutlier {
			outliers++
		}
	}
	if outliers != 2 {
		t.Errorf("expected 2 price outliers, got %d (%+v)", outliers, issues)
	}
}

func TestDetectSoftIssues_CaptionFlags(t *testing.T) {
	schedule := models.Schedule{Items: []models.ScheduleItem{
		{SendTypeKey: "poll", ScheduledDate: "2026-03-02", ScheduledTime: "10:00", CaptionFlags: []string{"too_generic", "repeated_phrase"}},
	}}

	issues := newScorer().DetectSoftIssues(schedule)
	flags := 0
	for _, issue := range issues {
		if issue.Code == score.CodeCaptionFlag {
			flags++
		}
	}
	if flags != 2 {
		t.Errorf("expected 2 caption flags, got %d", flags)
	}
}
