// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"

	"github.com/example/sendgate/internal/ctxutil"
	"github.com/example/sendgate/internal/ports/secondary"
)

// LogWriterAdapter implements secondary.LogWriter using AuditLogRepository.
type LogWriterAdapter struct {
	logRepo secondary.AuditLogRepository
}

// NewLogWriterAdapter creates a new LogWriterAdapter.
func NewLogWriterAdapter(logRepo secondary.AuditLogRepository) *LogWriterAdapter {
	return &LogWriterAdapter{logRepo: logRepo}
}

// LogAction records an action taken on an entity. The actor comes from the
// request context; audit failures are reported to the caller, which treats
// them as non-fatal.
func (w *LogWriterAdapter) LogAction(ctx context.Context, entityType, entityID, action, detail string) error {
	record := &secondary.AuditLogRecord{
		ActorID:    ctxutil.ActorFromContext(ctx),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Detail:     detail,
	}

	return w.logRepo.Create(ctx, record)
}

// Ensure LogWriterAdapter implements the interface
var _ secondary.LogWriter = (*LogWriterAdapter)(nil)
