package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/sendgate/internal/models"
	"github.com/example/sendgate/internal/ports/primary"
	"github.com/example/sendgate/internal/wire"
)

// TriggerCmd returns the trigger command
func TriggerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trigger",
		Short: "Manage volume triggers",
		Long:  `Save detected volume triggers and inspect a creator's trigger rows.`,
	}

	cmd.AddCommand(triggerSaveCmd())
	cmd.AddCommand(triggerListCmd())

	return cmd
}

func triggerSaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save [detections.json]",
		Short: "Save a detection batch for a creator",
		Long: `Save a batch of volume-trigger detections atomically.

The batch is validated as a whole before any write: one bad record
rejects the entire batch and nothing is persisted. Re-detections of an
existing (content type, trigger type) pair merge into the existing row
instead of creating history.

Examples:
  sendgate trigger save detections.json --creator creator-001
  sendgate trigger save detections.json --creator creator-001 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			creatorID, _ := cmd.Flags().GetString("creator")
			jsonOutput, _ := cmd.Flags().GetBool("json")

			var detections []models.TriggerDetection
			if err := readJSONFile(args[0], &detections); err != nil {
				return fmt.Errorf("failed to read detections: %w", err)
			}

			_, err := wire.TriggerAdapter().Save(actorContext(cmd), primary.SaveTriggersRequest{
				CreatorID:  creatorID,
				Detections: detections,
			}, jsonOutput)
			return err
		},
	}

	cmd.Flags().String("creator", "", "Creator the batch belongs to (required)")
	cmd.Flags().Bool("json", false, "Emit the full response as JSON")
	addActorFlag(cmd)
	cmd.MarkFlagRequired("creator")

	return cmd
}

func triggerListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a creator's trigger rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			creatorID, _ := cmd.Flags().GetString("creator")
			activeOnly, _ := cmd.Flags().GetBool("active")
			jsonOutput, _ := cmd.Flags().GetBool("json")

			_, err := wire.TriggerAdapter().List(actorContext(cmd), creatorID, activeOnly, jsonOutput)
			return err
		},
	}

	cmd.Flags().String("creator", "", "Creator to list triggers for (required)")
	cmd.Flags().Bool("active", false, "Only show active triggers")
	cmd.Flags().Bool("json", false, "Emit the rows as JSON")
	addActorFlag(cmd)
	cmd.MarkFlagRequired("creator")

	return cmd
}
