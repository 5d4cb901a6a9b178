package models

import "time"

// TriggerType identifies the performance signal family that produced a
// volume trigger.
type TriggerType string

// Trigger type constants. Anything else is a structural validation error.
const (
	TriggerHighPerformer TriggerType = "HIGH_PERFORMER"
	TriggerLowPerformer  TriggerType = "LOW_PERFORMER"
	TriggerTrendRising   TriggerType = "TREND_RISING"
	TriggerTrendFalling  TriggerType = "TREND_FALLING"
)

// ValidTriggerType reports whether t is a known trigger type.
func ValidTriggerType(t TriggerType) bool {
	switch t {
	case TriggerHighPerformer, TriggerLowPerformer, TriggerTrendRising, TriggerTrendFalling:
		return true
	}
	return false
}

// Confidence is the ordinal trust level of a detection: low < moderate < high.
type Confidence string

// Confidence constants.
const (
	ConfidenceLow      Confidence = "low"
	ConfidenceModerate Confidence = "moderate"
	ConfidenceHigh     Confidence = "high"
)

// Rank returns the ordinal position of the confidence level, or -1 for an
// unknown value.
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceLow:
		return 0
	case ConfidenceModerate:
		return 1
	case ConfidenceHigh:
		return 2
	}
	return -1
}

// MaxConfidence returns the higher of two confidence levels on the ordinal
// scale. Used by the merge engine: confidence ratchets up, never down.
func MaxConfidence(a, b Confidence) Confidence {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// TriggerDetection is a raw detection record submitted by the
// performance-analysis collaborator. Schema-validated before any merge.
type TriggerDetection struct {
	ContentType          string             `json:"content_type"`
	TriggerType          TriggerType        `json:"trigger_type"`
	AdjustmentMultiplier float64            `json:"adjustment_multiplier"`
	Confidence           Confidence         `json:"confidence"`
	Reason               string             `json:"reason"`
	ExpiresAt            string             `json:"expires_at,omitempty"` // RFC3339, optional
	Metrics              map[string]float64 `json:"metrics,omitempty"`
}

// NaturalKey returns the (content_type, trigger_type) part of the natural
// key; the creator ID completes it at persistence time.
func (d TriggerDetection) NaturalKey() string {
	return d.ContentType + "/" + string(d.TriggerType)
}

// VolumeTrigger is one durable trigger row. Exactly one row exists per
// natural key (creator_id, content_type, trigger_type); re-detections
// mutate the row in place. FirstDetectedAt never changes after creation and
// DetectionCount only increases.
type VolumeTrigger struct {
	ID                   string             `json:"id"`
	CreatorID            string             `json:"creator_id"`
	ContentType          string             `json:"content_type"`
	TriggerType          TriggerType        `json:"trigger_type"`
	AdjustmentMultiplier float64            `json:"adjustment_multiplier"`
	Confidence           Confidence         `json:"confidence"`
	Reason               string             `json:"reason"`
	ExpiresAt            string             `json:"expires_at,omitempty"`
	DetectedAt           time.Time          `json:"detected_at"`
	FirstDetectedAt      time.Time          `json:"first_detected_at"`
	DetectionCount       int                `json:"detection_count"`
	IsActive             bool               `json:"is_active"`
	Metrics              map[string]float64 `json:"metrics,omitempty"`
}

// OverwriteWarning is an advisory flag raised when a merge overwrites an
// existing row in a way an operator may want to review. Never blocks a save.
type OverwriteWarning struct {
	ContentType        string      `json:"content_type"`
	TriggerType        TriggerType `json:"trigger_type"`
	PreviousMultiplier float64     `json:"previous_multiplier"`
	NewMultiplier      float64     `json:"new_multiplier"`
	DeltaPercent       float64     `json:"delta_percent"`
	DirectionFlip      bool        `json:"direction_flip"`
	LargeDelta         bool        `json:"large_delta"`
	Message            string      `json:"message"`
}

// Error codes surfaced by the trigger engine.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeCreatorNotFound = "CREATOR_NOT_FOUND"
	CodeDatabaseError   = "DATABASE_ERROR"
)
