// Package trigger contains the pure trigger-path logic: structural batch
// validation, field-by-field merge resolution, and advisory overwrite
// analysis. Persistence lives in the sqlite adapter.
package trigger

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/sendgate/internal/models"
)

// Plausible multiplier band. Values outside it are warnings, not errors.
const (
	MinPlausibleMultiplier = 0.5
	MaxPlausibleMultiplier = 2.0
)

// OversizedBatchThreshold is the batch size above which an advisory
// oversized-batch warning is raised.
const OversizedBatchThreshold = 20

// BatchValidationError reports structural problems in a detection batch.
// Validation is all-or-nothing: one bad record rejects the whole batch,
// because a malformed batch usually means an upstream detection bug and
// partial persistence would hide it.
type BatchValidationError struct {
	Problems []string
}

func (e *BatchValidationError) Error() string {
	return fmt.Sprintf("trigger batch failed validation: %s", strings.Join(e.Problems, "; "))
}

// ValidateBatch runs structural validation over a raw detection batch.
// Returns non-blocking range warnings and, if any record is structurally
// invalid, a *BatchValidationError covering every problem found.
func ValidateBatch(detections []models.TriggerDetection) ([]string, error) {
	if len(detections) == 0 {
		return nil, &BatchValidationError{Problems: []string{"batch is empty"}}
	}

	var problems []string
	var warnings []string
	seen := make(map[string]int)

	for i, d := range detections {
		prefix := fmt.Sprintf("record %d", i)

		if d.ContentType == "" {
			problems = append(problems, prefix+": content_type is required")
		}
		if d.TriggerType == "" {
			problems = append(problems, prefix+": trigger_type is required")
		} else if !models.ValidTriggerType(d.TriggerType) {
			problems = append(problems, fmt.Sprintf("%s: unknown trigger_type %q", prefix, d.TriggerType))
		}
		if d.Confidence.Rank() < 0 {
			problems = append(problems, fmt.Sprintf("%s: confidence must be low, moderate, or high (got %q)", prefix, d.Confidence))
		}
		if d.AdjustmentMultiplier <= 0 {
			problems = append(problems, fmt.Sprintf("%s: adjustment_multiplier must be positive (got %g)", prefix, d.AdjustmentMultiplier))
		}
		if d.ExpiresAt != "" {
			if _, err := time.Parse(time.RFC3339, d.ExpiresAt); err != nil {
				problems = append(problems, fmt.Sprintf("%s: expires_at is not RFC3339: %v", prefix, err))
			}
		}

		if key := d.NaturalKey(); d.ContentType != "" && d.TriggerType != "" {
			if prev, dup := seen[key]; dup {
				problems = append(problems, fmt.Sprintf("%s: duplicates natural key of record %d (%s)", prefix, prev, key))
			} else {
				seen[key] = i
			}
		}

		if d.AdjustmentMultiplier > 0 &&
			(d.AdjustmentMultiplier < MinPlausibleMultiplier || d.AdjustmentMultiplier > MaxPlausibleMultiplier) {
			warnings = append(warnings, fmt.Sprintf(
				"%s: multiplier %.2f is outside the plausible band [%.1f, %.1f]",
				prefix, d.AdjustmentMultiplier, MinPlausibleMultiplier, MaxPlausibleMultiplier))
		}
	}

	if len(problems) > 0 {
		return nil, &BatchValidationError{Problems: problems}
	}
	return warnings, nil
}

// OversizedBatch reports whether a batch exceeds the advisory size limit.
func OversizedBatch(n int) bool {
	return n > OversizedBatchThreshold
}
