package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/sendgate/internal/ctxutil"
	"github.com/example/sendgate/internal/wire"
)

// actorContext builds the request context for a command. The --actor flag
// wins over the configured default actor.
func actorContext(cmd *cobra.Command) context.Context {
	actor, _ := cmd.Flags().GetString("actor")
	if actor == "" {
		actor = wire.Config().DefaultActor
	}
	if actor == "" {
		return context.Background()
	}
	return ctxutil.WithActorID(context.Background(), actor)
}

func addActorFlag(cmd *cobra.Command) {
	cmd.Flags().String("actor", "", "Actor recorded in the audit log")
}
