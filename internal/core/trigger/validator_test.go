package trigger_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/example/sendgate/internal/core/trigger"
	"github.com/example/sendgate/internal/models"
)

func validDetection() models.TriggerDetection {
	return models.TriggerDetection{
		ContentType:          "lingerie",
		TriggerType:          models.TriggerHighPerformer,
		AdjustmentMultiplier: 1.2,
		Confidence:           models.ConfidenceHigh,
		Reason:               "top decile conversion over 3 weeks",
	}
}

func TestValidateBatch_ValidBatch(t *testing.T) {
	warnings, err := trigger.ValidateBatch([]models.TriggerDetection{validDetection()})
	if err != nil {
		t.Fatalf("expected valid batch, got %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestValidateBatch_EmptyBatchRejected(t *testing.T) {
	_, err := trigger.ValidateBatch(nil)
	if err == nil {
		t.Fatal("expected empty batch to be rejected")
	}
}

func TestValidateBatch_OneBadRecordRejectsAll(t *testing.T) {
	good := validDetection()
	bad := validDetection()
	bad.ContentType = "shower"
	bad.TriggerType = "NOT_A_TRIGGER"

	_, err := trigger.ValidateBatch([]models.TriggerDetection{good, bad})
	if err == nil {
		t.Fatal("expected batch rejection")
	}

	var batchErr *trigger.BatchValidationError
	if !errors.As(err, &batchErr) {
		t.Fatalf("expected BatchValidationError, got %T", err)
	}
	if len(batchErr.Problems) != 1 {
		t.Errorf("expected 1 problem, got %v", batchErr.Problems)
	}
	if !strings.Contains(batchErr.Problems[0], "NOT_A_TRIGGER") {
		t.Errorf("problem should name the bad trigger type: %v", batchErr.Problems)
	}
}

func TestValidateBatch_StructuralChecks(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.TriggerDetection)
		want   string
	}{
		{"missing content type", func(d *models.TriggerDetection) { d.ContentType = "" }, "content_type"},
		{"missing trigger type", func(d *models.TriggerDetection) { d.TriggerType = "" }, "trigger_type"},
		{"bad confidence", func(d *models.TriggerDetection) { d.Confidence = "certain" }, "confidence"},
		{"zero multiplier", func(d *models.TriggerDetection) { d.AdjustmentMultiplier = 0 }, "adjustment_multiplier"},
		{"negative multiplier", func(d *models.TriggerDetection) { d.AdjustmentMultiplier = -1.5 }, "adjustment_multiplier"},
		{"bad expiry", func(d *models.TriggerDetection) { d.ExpiresAt = "next tuesday" }, "expires_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDetection()
			tt.mutate(&d)

			_, err := trigger.ValidateBatch([]models.TriggerDetection{d})
			if err == nil {
				t.Fatal("expected rejection")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error should mention %q: %v", tt.want, err)
			}
		})
	}
}

func TestValidateBatch_DuplicateNaturalKeyRejected(t *testing.T) {
	a := validDetection()
	b := validDetection()
	b.AdjustmentMultiplier = 0.9

	_, err := trigger.ValidateBatch([]models.TriggerDetection{a, b})
	if err == nil {
		t.Fatal("expected duplicate natural key to be rejected")
	}
}

func TestValidateBatch_RangeWarningIsNonBlocking(t *testing.T) {
	d := validDetection()
	d.AdjustmentMultiplier = 2.5

	warnings, err := trigger.ValidateBatch([]models.TriggerDetection{d})
	if err != nil {
		t.Fatalf("range issue must not reject the batch: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "plausible band") {
		t.Errorf("unexpected warning text: %s", warnings[0])
	}
}

func TestOversizedBatch(t *testing.T) {
	if trigger.OversizedBatch(20) {
		t.Error("20 records is not oversized")
	}
	if !trigger.OversizedBatch(21) {
		t.Error("21 records is oversized")
	}
}
