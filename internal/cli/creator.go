package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/sendgate/internal/models"
	"github.com/example/sendgate/internal/ports/primary"
	"github.com/example/sendgate/internal/wire"
)

// CreatorCmd returns the creator command
func CreatorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "creator",
		Short: "Manage the creators registry",
	}

	cmd.AddCommand(creatorAddCmd())
	cmd.AddCommand(creatorListCmd())

	return cmd
}

func creatorAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [id]",
		Short: "Register a creator",
		Long: `Register a creator in the local registry.

Trigger batches are only accepted for registered creators.

Examples:
  sendgate creator add creator-001 --page-type paid
  sendgate creator add creator-002 --page-type free --name "Bea"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			pageType, _ := cmd.Flags().GetString("page-type")

			return wire.CreatorAdapter().Add(actorContext(cmd), primary.AddCreatorRequest{
				ID:          args[0],
				DisplayName: name,
				PageType:    models.PageType(pageType),
			})
		},
	}

	cmd.Flags().String("name", "", "Display name (defaults to the ID)")
	cmd.Flags().String("page-type", "", "Page type: free or paid (required)")
	addActorFlag(cmd)
	cmd.MarkFlagRequired("page-type")

	return cmd
}

func creatorListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered creators",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.CreatorAdapter().List(cmd.Context())
			return err
		},
	}
}
