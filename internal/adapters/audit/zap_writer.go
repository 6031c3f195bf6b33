// Package audit writes audit log entries for jio mutations.
package audit

import (
	"context"

	"go.uber.org/zap"

	"github.com/example/jiobot/internal/ctxutil"
	"github.com/example/jiobot/internal/ports/secondary"
)

// ZapLogWriter implements secondary.LogWriter on a zap logger.
// Entries go to a named "audit" logger so they can be filtered downstream.
type ZapLogWriter struct {
	logger *zap.Logger
}

// NewZapLogWriter creates a new ZapLogWriter.
func NewZapLogWriter(logger *zap.Logger) *ZapLogWriter {
	return &ZapLogWriter{logger: logger.Named("audit")}
}

// LogCreate logs a create operation for an entity.
func (w *ZapLogWriter) LogCreate(ctx context.Context, entityType, entityID string) error {
	w.write(ctx, "create", entityType, entityID)
	return nil
}

// LogUpdate logs an update operation for an entity field.
func (w *ZapLogWriter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	w.write(ctx, "update", entityType, entityID,
		zap.String("field", fieldName),
		zap.String("old", oldValue),
		zap.String("new", newValue),
	)
	return nil
}

// LogDelete logs a delete operation for an entity.
func (w *ZapLogWriter) LogDelete(ctx context.Context, entityType, entityID string) error {
	w.write(ctx, "delete", entityType, entityID)
	return nil
}

func (w *ZapLogWriter) write(ctx context.Context, action, entityType, entityID string, extra ...zap.Field) {
	fields := []zap.Field{
		zap.String("action", action),
		zap.String("entity_type", entityType),
		zap.String("entity_id", entityID),
	}
	// Operations outside an update (CLI, tests) have no actor.
	if actor, ok := ctxutil.ActorFromContext(ctx); ok {
		fields = append(fields, zap.Int64("actor_id", actor.ID), zap.String("actor_name", actor.Name))
	}
	w.logger.Info("audit", append(fields, extra...)...)
}

var _ secondary.LogWriter = (*ZapLogWriter)(nil)
