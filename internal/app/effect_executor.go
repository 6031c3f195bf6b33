// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/jiobot/internal/core/effects"
	"github.com/example/jiobot/internal/core/jio"
	"github.com/example/jiobot/internal/ports/secondary"
)

// EffectExecutor interprets and executes effects produced by the core planners.
// Handlers that talk to users directly use the gateway themselves.
type EffectExecutor interface {
	// Execute runs effects in order and stops at the first failure.
	Execute(ctx context.Context, effs []effects.Effect) error
	// ExecuteAll runs every effect and returns one error slot per effect.
	ExecuteAll(ctx context.Context, effs []effects.Effect) []error
	// Send executes a send effect and returns the new message ID.
	Send(ctx context.Context, eff effects.SendEffect) (int, error)
}

// DefaultEffectExecutor implements EffectExecutor against the messaging gateway
// and the jio repository.
type DefaultEffectExecutor struct {
	gateway secondary.Gateway
	jioRepo secondary.JioRepository
	logger  *zap.Logger
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
func NewEffectExecutor(gateway secondary.Gateway, jioRepo secondary.JioRepository, logger *zap.Logger) *DefaultEffectExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultEffectExecutor{
		gateway: gateway,
		jioRepo: jioRepo,
		logger:  logger.Named("effects"),
	}
}

// Execute processes a slice of effects, executing each in sequence.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	for _, eff := range effs {
		if err := e.executeOne(ctx, eff); err != nil {
			return fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return nil
}

// ExecuteAll processes every effect regardless of earlier failures.
func (e *DefaultEffectExecutor) ExecuteAll(ctx context.Context, effs []effects.Effect) []error {
	errs := make([]error, len(effs))
	for i, eff := range effs {
		if err := e.executeOne(ctx, eff); err != nil {
			errs[i] = fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return errs
}

// Send sends a view as a new chat message.
func (e *DefaultEffectExecutor) Send(ctx context.Context, eff effects.SendEffect) (int, error) {
	return e.gateway.Send(ctx, eff.ChatID, viewToMessage(eff.View))
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect) error {
	switch typed := eff.(type) {
	case effects.EditEffect:
		return e.executeEdit(ctx, typed)
	case effects.SendEffect:
		_, err := e.Send(ctx, typed)
		return err
	case effects.RecordSurfaceEffect:
		_, err := e.jioRepo.AddSurface(ctx, typed.JioID, surfaceToRecord(typed.Surface))
		return err
	case effects.LogEffect:
		e.executeLog(typed)
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

func (e *DefaultEffectExecutor) executeEdit(ctx context.Context, eff effects.EditEffect) error {
	msg := viewToMessage(eff.View)
	switch eff.Surface.Kind {
	case jio.SurfaceInline:
		return e.gateway.EditInlineMessage(ctx, eff.Surface.InlineMessageID, msg)
	case jio.SurfaceChat:
		ref := secondary.MessageRef{ChatID: eff.Surface.ChatID, MessageID: eff.Surface.MessageID}
		return e.gateway.EditChatMessage(ctx, ref, msg)
	default:
		return fmt.Errorf("unknown surface kind: %s", eff.Surface.Kind)
	}
}

func (e *DefaultEffectExecutor) executeLog(eff effects.LogEffect) {
	fields := make([]zap.Field, 0, len(eff.Fields))
	for k, v := range eff.Fields {
		fields = append(fields, zap.Any(k, v))
	}
	switch eff.Level {
	case "debug":
		e.logger.Debug(eff.Message, fields...)
	case "warn":
		e.logger.Warn(eff.Message, fields...)
	case "error":
		e.logger.Error(eff.Message, fields...)
	default:
		e.logger.Info(eff.Message, fields...)
	}
}

// viewToMessage turns a rendered card into a gateway message with its single action button.
func viewToMessage(v jio.View) secondary.OutgoingMessage {
	return secondary.OutgoingMessage{
		Text:    v.Body,
		Buttons: []secondary.Button{{Text: v.Action.Text, Data: v.Action.Data}},
	}
}

var _ EffectExecutor = (*DefaultEffectExecutor)(nil)
