package trigger

import (
	"fmt"
	"math"

	"github.com/example/sendgate/internal/models"
)

// LargeDeltaPercent is the relative-change threshold above which an
// overwrite is flagged for operator review.
const LargeDeltaPercent = 50.0

// AnalyzeOverwrite inspects a merge of incoming over existing and returns
// an advisory warning when the overwrite looks risky: a direction flip
// (the sign of multiplier-1.0 changes, boost vs reduce) or a large relative
// delta. Returns nil when the overwrite is unremarkable. Never blocks.
func AnalyzeOverwrite(existing models.VolumeTrigger, incoming models.TriggerDetection) *models.OverwriteWarning {
	prev := existing.AdjustmentMultiplier
	next := incoming.AdjustmentMultiplier

	flip := direction(prev) != 0 && direction(next) != 0 && direction(prev) != direction(next)

	var deltaPercent float64
	if prev != 0 {
		deltaPercent = (next - prev) / prev * 100
	}
	large := math.Abs(deltaPercent) > LargeDeltaPercent

	if !flip && !large {
		return nil
	}

	msg := fmt.Sprintf("multiplier for %s/%s changes from %.2f to %.2f (%+.1f%%)",
		existing.ContentType, existing.TriggerType, prev, next, deltaPercent)
	if flip {
		msg += "; direction flips between boost and reduce"
	}

	return &models.OverwriteWarning{
		ContentType:        existing.ContentType,
		TriggerType:        existing.TriggerType,
		PreviousMultiplier: prev,
		NewMultiplier:      next,
		DeltaPercent:       deltaPercent,
		DirectionFlip:      flip,
		LargeDelta:         large,
		Message:            msg,
	}
}

// direction classifies a multiplier as boost (+1), reduce (-1), or neutral (0).
func direction(multiplier float64) int {
	switch {
	case multiplier > 1.0:
		return 1
	case multiplier < 1.0:
		return -1
	}
	return 0
}
