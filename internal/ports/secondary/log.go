package secondary

import "context"

// LogWriter defines the interface for writing audit log entries.
// Implementations extract the actor from context.
type LogWriter interface {
	// LogAction records an action taken on an entity.
	LogAction(ctx context.Context, entityType, entityID, action, detail string) error
}
