package audit

import (
	"context"
	"errors"

	"github.com/example/jiobot/internal/ports/secondary"
)

// MultiWriter fans each entry out to every writer. All writers are called
// even if one fails; their errors are joined.
type MultiWriter struct {
	writers []secondary.LogWriter
}

// NewMultiWriter creates a MultiWriter. Nil writers are skipped.
func NewMultiWriter(writers ...secondary.LogWriter) *MultiWriter {
	m := &MultiWriter{}
	for _, w := range writers {
		if w != nil {
			m.writers = append(m.writers, w)
		}
	}
	return m
}

// LogCreate logs a create operation for an entity.
func (m *MultiWriter) LogCreate(ctx context.Context, entityType, entityID string) error {
	var errs []error
	for _, w := range m.writers {
		errs = append(errs, w.LogCreate(ctx, entityType, entityID))
	}
	return errors.Join(errs...)
}

// LogUpdate logs an update operation for an entity field.
func (m *MultiWriter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	var errs []error
	for _, w := range m.writers {
		errs = append(errs, w.LogUpdate(ctx, entityType, entityID, fieldName, oldValue, newValue))
	}
	return errors.Join(errs...)
}

// LogDelete logs a delete operation for an entity.
func (m *MultiWriter) LogDelete(ctx context.Context, entityType, entityID string) error {
	var errs []error
	for _, w := range m.writers {
		errs = append(errs, w.LogDelete(ctx, entityType, entityID))
	}
	return errors.Join(errs...)
}

var _ secondary.LogWriter = (*MultiWriter)(nil)
