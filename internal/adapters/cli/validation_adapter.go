// Package cli contains presentation adapters that translate CLI operations
// into primary-port calls and render the results.
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

// ValidationAdapter is a thin adapter that translates CLI operations to
// ValidationService calls. It depends only on the service interface,
// enabling easy testing with mocks.
type ValidationAdapter struct {
	service primary.ValidationService
	out     io.Writer
}

// NewValidationAdapter creates a new ValidationAdapter with the given service.
func NewValidationAdapter(service primary.ValidationService, out io.Writer) *ValidationAdapter {
	return &ValidationAdapter{
		service: service,
		out:     out,
	}
}

// Validate runs a full validation pass and renders the outcome. With
// jsonOutput the raw response is emitted instead, for machine consumers.
func (a *ValidationAdapter) Validate(ctx context.Context, req primary.ValidateScheduleRequest, jsonOutput bool) (*primary.ValidateScheduleResponse, error) {
	resp, err := a.service.ValidateSchedule(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to validate schedule: %w", err)
	}

	if jsonOutput {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode response: %w", err)
		}
		fmt.Fprintln(a.out, string(data))
		return resp, nil
	}

	a.renderStatus(resp)
	a.renderViolations("Hard violations", resp.HardViolations)
	a.renderViolations("Soft issues", resp.SoftIssues)
	a.renderDiversity(resp.Diversity)
	a.renderRecommendations(resp.Recommendations)
	a.renderCertificate(resp.Certificate)

	return resp, nil
}

func (a *ValidationAdapter) renderStatus(resp *primary.ValidateScheduleResponse) {
	cert := resp.Certificate
	var label string
	switch cert.ValidationStatus {
	case models.StatusApproved:
		label = color.GreenString("APPROVED")
	case models.StatusNeedsReview:
		label = color.YellowString("NEEDS_REVIEW")
	default:
		label = color.RedString("REJECTED")
	}
	fmt.Fprintf(a.out, "\nStatus: %s (quality score %d/100)\n", label, cert.QualityScore)
	fmt.Fprintf(a.out, "Items validated: %d\n\n", cert.ItemsValidated)
}

func (a *ValidationAdapter) renderViolations(heading string, violations []models.Violation) {
	if len(violations) == 0 {
		return
	}
	fmt.Fprintf(a.out, "%s (%d):\n", heading, len(violations))
	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	for _, v := range violations {
		fmt.Fprintf(w, "  %s\t%s\n", v.Code, v.Message)
	}
	w.Flush()
	fmt.Fprintln(a.out)
}

func (a *ValidationAdapter) renderDiversity(d primary.DiversityBreakdown) {
	fmt.Fprintf(a.out, "Diversity: %d send types (%d revenue, %d engagement, %d retention)\n\n",
		d.UniqueSendTypes, d.UniqueRevenue, d.UniqueEngagement, d.UniqueRetention)
}

func (a *ValidationAdapter) renderRecommendations(recommendations []string) {
	if len(recommendations) == 0 {
		return
	}
	fmt.Fprintln(a.out, "Recommendations:")
	for _, r := range recommendations {
		fmt.Fprintf(a.out, "  - %s\n", r)
	}
	fmt.Fprintln(a.out)
}

func (a *ValidationAdapter) renderCertificate(cert *models.ValidationCertificate) {
	fmt.Fprintf(a.out, "Certificate %s\n", cert.CertificateSignature)
	fmt.Fprintf(a.out, "  schedule_hash: %s\n", cert.ScheduleHash)
	fmt.Fprintf(a.out, "  vault_hash:    %s\n", cert.VaultTypesHash)
	fmt.Fprintf(a.out, "  avoid_hash:    %s\n", cert.AvoidTypesHash)
	fmt.Fprintf(a.out, "  issued:        %s\n", cert.ValidationTimestamp.Format("2006-01-02 15:04:05 UTC"))
}
