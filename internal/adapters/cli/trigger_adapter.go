package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/sendgate/internal/models"
	"github.com/example/sendgate/internal/ports/primary"
)

// TriggerAdapter is a thin adapter that translates CLI operations to
// TriggerService calls.
type TriggerAdapter struct {
	service primary.TriggerService
	out     io.Writer
}

// NewTriggerAdapter creates a new TriggerAdapter with the given service.
func NewTriggerAdapter(service primary.TriggerService, out io.Writer) *TriggerAdapter {
	return &TriggerAdapter{
		service: service,
		out:     out,
	}
}

// Save persists a detection batch and renders the commit report.
func (a *TriggerAdapter) Save(ctx context.Context, req primary.SaveTriggersRequest, jsonOutput bool) (*primary.SaveTriggersResponse, error) {
	resp, err := a.service.SaveTriggers(ctx, req)
	if err != nil {
		return nil, err
	}

	if jsonOutput {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode response: %w", err)
		}
		fmt.Fprintln(a.out, string(data))
		return resp, nil
	}

	fmt.Fprintf(a.out, "%s Saved %d triggers for %s (%d created, %d updated) in %dms\n",
		color.GreenString("✓"), resp.TriggersSaved, req.CreatorID,
		len(resp.CreatedIDs), len(resp.UpdatedIDs), resp.Metadata.ExecutionMs)

	for _, w := range resp.Warnings {
		fmt.Fprintf(a.out, "%s %s\n", color.YellowString("warning:"), w)
	}
	for _, w := range resp.OverwriteWarnings {
		fmt.Fprintf(a.out, "%s %s\n", color.YellowString("overwrite:"), w.Message)
	}

	fmt.Fprintf(a.out, "batch hash: %s\n", resp.Metadata.TriggersHash)
	return resp, nil
}

// List renders a creator's trigger rows.
func (a *TriggerAdapter) List(ctx context.Context, creatorID string, activeOnly, jsonOutput bool) ([]*models.VolumeTrigger, error) {
	triggers, err := a.service.ListTriggers(ctx, creatorID, activeOnly)
	if err != nil {
		return nil, err
	}

	if jsonOutput {
		data, err := json.MarshalIndent(triggers, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode triggers: %w", err)
		}
		fmt.Fprintln(a.out, string(data))
		return triggers, nil
	}

	if len(triggers) == 0 {
		fmt.Fprintln(a.out, "No triggers found.")
		return triggers, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "CONTENT TYPE\tTRIGGER\tMULTIPLIER\tCONFIDENCE\tDETECTIONS\tACTIVE\tLAST DETECTED")
	fmt.Fprintln(w, "------------\t-------\t----------\t----------\t----------\t------\t-------------")
	for _, t := range triggers {
		active := "no"
		if t.IsActive {
			active = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%d\t%s\t%s\n",
			t.ContentType, t.TriggerType, t.AdjustmentMultiplier, t.Confidence,
			t.DetectionCount, active, t.DetectedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()

	return triggers, nil
}
