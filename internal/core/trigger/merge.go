package trigger

import (
	"time"

	"github.com/example/sendgate/internal/models"
)

// Resolve computes the field-by-field merge of an incoming detection
// against the existing stored row for the same natural key. This is
// deliberately not last-write-wins: downstream consumers read confidence
// and first_detected_at for trust-weighting and trigger-age calculations.
//
//	adjustment_multiplier  replaced by incoming
//	confidence             max(existing, incoming), never downgraded
//	reason/expires/metrics replaced by incoming
//	detected_at            now
//	first_detected_at      preserved; now only when no prior row exists
//	detection_count        existing + 1, or 1 if new
//	is_active              forced true (reactivates a deactivated row)
//
// existing is nil on first detection. ID and CreatorID are carried from the
// existing row; the store fills them for new rows.
func Resolve(existing *models.VolumeTrigger, incoming models.TriggerDetection, now time.Time) models.VolumeTrigger {
	resolved := models.VolumeTrigger{
		ContentType:          incoming.ContentType,
		TriggerType:          incoming.TriggerType,
		AdjustmentMultiplier: incoming.AdjustmentMultiplier,
		Confidence:           incoming.Confidence,
		Reason:               incoming.Reason,
		ExpiresAt:            incoming.ExpiresAt,
		DetectedAt:           now,
		FirstDetectedAt:      now,
		DetectionCount:       1,
		IsActive:             true,
		Metrics:              copyMetrics(incoming.Metrics),
	}

	if existing != nil {
		resolved.ID = existing.ID
		resolved.CreatorID = existing.CreatorID
		resolved.Confidence = models.MaxConfidence(existing.Confidence, incoming.Confidence)
		resolved.FirstDetectedAt = existing.FirstDetectedAt
		resolved.DetectionCount = existing.DetectionCount + 1
	}

	return resolved
}

func copyMetrics(metrics map[string]float64) map[string]float64 {
	if metrics == nil {
		return nil
	}
	out := make(map[string]float64, len(metrics))
	for k, v := range metrics {
		out[k] = v
	}
	return out
}
