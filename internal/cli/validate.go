package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/sendgate/internal/models"
	"github.com/example/sendgate/internal/ports/primary"
	"github.com/example/sendgate/internal/wire"
)

// ValidateCmd returns the validate command
func ValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [schedule.json]",
		Short: "Validate a weekly schedule and issue a certificate",
		Long: `Validate a weekly schedule against the hard gates and quality scoring,
and issue a tamper-evident validation certificate.

The schedule file holds one week for one creator. The vault and ranking
files are read-only business-data snapshots; the creator must have an
entry in both or validation fails closed.

Examples:
  sendgate validate schedule.json --vault vault.json --rankings rankings.json
  sendgate validate schedule.json --vault vault.json --rankings rankings.json --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vaultPath, _ := cmd.Flags().GetString("vault")
			rankingsPath, _ := cmd.Flags().GetString("rankings")
			jsonOutput, _ := cmd.Flags().GetBool("json")

			var schedule models.Schedule
			if err := readJSONFile(args[0], &schedule); err != nil {
				return fmt.Errorf("failed to read schedule: %w", err)
			}

			var vault models.VaultMatrix
			if err := readJSONFile(vaultPath, &vault); err != nil {
				return fmt.Errorf("failed to read vault snapshot: %w", err)
			}

			var rankings models.ContentTypeRanking
			if err := readJSONFile(rankingsPath, &rankings); err != nil {
				return fmt.Errorf("failed to read ranking snapshot: %w", err)
			}

			resp, err := wire.ValidationAdapter().Validate(actorContext(cmd), primary.ValidateScheduleRequest{
				Schedule: schedule,
				Vault:    vault,
				Rankings: rankings,
			}, jsonOutput)
			if err != nil {
				return err
			}

			if resp.Certificate.ValidationStatus == models.StatusRejected {
				// Non-zero exit so pipelines cannot miss a rejection.
				os.Exit(2)
			}
			return nil
		},
	}

	cmd.Flags().String("vault", "", "Path to the vault snapshot JSON (required)")
	cmd.Flags().String("rankings", "", "Path to the content-type ranking snapshot JSON (required)")
	cmd.Flags().Bool("json", false, "Emit the full response as JSON")
	addActorFlag(cmd)
	cmd.MarkFlagRequired("vault")
	cmd.MarkFlagRequired("rankings")

	return cmd
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
