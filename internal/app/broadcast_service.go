package app

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/example/jiobot/internal/core/broadcast"
	"github.com/example/jiobot/internal/core/effects"
	"github.com/example/jiobot/internal/core/jio"
	"github.com/example/jiobot/internal/ports/primary"
	"github.com/example/jiobot/internal/ports/secondary"
)

var tracer = otel.Tracer("github.com/example/jiobot/internal/app")

// BroadcastServiceImpl implements the BroadcastService interface.
type BroadcastServiceImpl struct {
	jioRepo  secondary.JioRepository
	executor EffectExecutor
	logger   *zap.Logger
}

// NewBroadcastService creates a new BroadcastService with injected dependencies.
func NewBroadcastService(jioRepo secondary.JioRepository, executor EffectExecutor, logger *zap.Logger) *BroadcastServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BroadcastServiceImpl{
		jioRepo:  jioRepo,
		executor: executor,
		logger:   logger.Named("broadcast"),
	}
}

// Publish places a jio's card on a surface and records the surface.
func (s *BroadcastServiceImpl) Publish(ctx context.Context, jioID int64, target jio.Surface) (jio.Surface, error) {
	ctx, span := tracer.Start(ctx, "broadcast.publish")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("jio.id", jioID),
		attribute.String("surface.kind", string(target.Kind)),
	)

	// 1. Fetch state
	record, exists, err := s.lookup(ctx, jioID)
	if err != nil {
		return jio.Surface{}, err
	}
	input := broadcast.PublishPlanInput{JioExists: exists, Target: target}
	if exists {
		input.Summary = recordToJio(record).Summary()
	}

	// 2. Plan
	plan := broadcast.GeneratePublishPlan(input)
	if !exists {
		return jio.Surface{}, fmt.Errorf("jio %d: %w", jioID, jio.ErrNotFound)
	}
	if plan.Empty() {
		return jio.Surface{}, fmt.Errorf("publish %s: %w", target.Key(), jio.ErrInvalidSurface)
	}

	// 3. Execute
	if plan.Send != nil {
		messageID, err := s.executor.Send(ctx, *plan.Send)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "send failed")
			return jio.Surface{}, fmt.Errorf("failed to send card: %w", err)
		}
		sent := jio.ChatSurface(plan.Send.ChatID, messageID)
		record := effects.RecordSurfaceEffect{JioID: jioID, Surface: sent}
		if err := s.executor.Execute(ctx, []effects.Effect{record}); err != nil {
			return sent, translateNotFound(jioID, err)
		}
		s.logger.Debug("card sent",
			zap.Int64("jio_id", jioID),
			zap.Stringer("surface", sent))
		return sent, nil
	}

	if err := s.executor.Execute(ctx, []effects.Effect{*plan.Record, *plan.Edit}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "publish failed")
		return target, translateNotFound(jioID, err)
	}
	s.logger.Debug("card published",
		zap.Int64("jio_id", jioID),
		zap.Stringer("surface", target))
	return target, nil
}

// Resync pushes the current card to every recorded surface of a jio.
// Failures are logged and collected; they never stop the remaining edits.
func (s *BroadcastServiceImpl) Resync(ctx context.Context, jioID int64) (*primary.ResyncResult, error) {
	ctx, span := tracer.Start(ctx, "broadcast.resync")
	defer span.End()
	span.SetAttributes(attribute.Int64("jio.id", jioID))

	result := &primary.ResyncResult{JioID: jioID}

	record, exists, err := s.lookup(ctx, jioID)
	if err != nil {
		return nil, err
	}

	input := broadcast.ResyncPlanInput{JioExists: exists, Summary: jio.Summary{ID: jioID}}
	if exists {
		j := recordToJio(record)
		input.Summary = j.Summary()
		input.Surfaces = j.Surfaces
	}
	plan := broadcast.GenerateResyncPlan(input)

	logs := make([]effects.Effect, len(plan.Logs))
	for i, l := range plan.Logs {
		logs[i] = l
	}
	if err := s.executor.Execute(ctx, logs); err != nil {
		return nil, err
	}

	effs := make([]effects.Effect, len(plan.Edits))
	for i, edit := range plan.Edits {
		effs[i] = edit
	}
	errs := s.executor.ExecuteAll(ctx, effs)

	for i, edit := range plan.Edits {
		outcome := primary.SurfaceOutcome{Surface: edit.Surface, Err: errs[i]}
		if outcome.Err != nil {
			s.logger.Warn("failed to update surface",
				zap.Int64("jio_id", jioID),
				zap.Stringer("surface", edit.Surface),
				zap.Error(outcome.Err))
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	span.SetAttributes(
		attribute.Int("surfaces.attempted", result.Attempted()),
		attribute.Int("surfaces.failed", result.Failed()),
	)
	if result.Failed() > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%d of %d surfaces failed", result.Failed(), result.Attempted()))
	}
	return result, nil
}

func (s *BroadcastServiceImpl) lookup(ctx context.Context, jioID int64) (*secondary.JioRecord, bool, error) {
	record, err := s.jioRepo.GetByID(ctx, jioID)
	if errors.Is(err, secondary.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get jio: %w", err)
	}
	return record, true, nil
}

// Ensure BroadcastServiceImpl implements the interface
var _ primary.BroadcastService = (*BroadcastServiceImpl)(nil)
