// Package chatbot turns inbound chat events into jio operations.
//
// The dispatcher is platform-neutral: transport adapters translate their
// updates into Event values and call Dispatch one event at a time. Commands
// are routed before pending-input markers are considered, so a command never
// consumes a marker unless it starts a new flow.
package chatbot

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/example/jiobot/internal/ctxutil"
	"github.com/example/jiobot/internal/ports/primary"
	"github.com/example/jiobot/internal/ports/secondary"
)

var tracer = otel.Tracer("github.com/example/jiobot/internal/adapters/chatbot")

// Dispatcher routes events to the jio, conversation and broadcast services and
// answers through the gateway.
type Dispatcher struct {
	jios          primary.JioService
	conversations primary.ConversationService
	broadcast     primary.BroadcastService
	gateway       secondary.Gateway
	logger        *zap.Logger
	now           func() time.Time
}

// NewDispatcher creates a Dispatcher with injected dependencies.
func NewDispatcher(
	jios primary.JioService,
	conversations primary.ConversationService,
	broadcast primary.BroadcastService,
	gateway secondary.Gateway,
	logger *zap.Logger,
) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		jios:          jios,
		conversations: conversations,
		broadcast:     broadcast,
		gateway:       gateway,
		logger:        logger.Named("dispatch"),
		now:           time.Now,
	}
}

// Dispatch handles one event. Handler errors and panics are logged and turned
// into a best-effort notification for the user; the returned error is only
// informational.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) (err error) {
	from := ev.Sender()
	ctx = ctxutil.WithActor(ctx, ctxutil.Actor{ID: from.ID, Name: from.Name})

	ctx, span := tracer.Start(ctx, "chatbot."+ev.EventType(), trace.WithSpanKind(trace.SpanKindConsumer))
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", from.ID))

	logger := d.logger.With(
		zap.String("event", ev.EventType()),
		zap.Int64("user_id", from.ID),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic handling %s: %v", ev.EventType(), r)
			logger.Error("handler panicked", zap.Any("panic", r), zap.Stack("stack"))
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			d.notifyFailure(ctx, ev, logger)
		}
	}()

	switch e := ev.(type) {
	case CommandEvent:
		span.SetAttributes(attribute.String("command", e.Command))
		err = d.handleCommand(ctx, e)
	case TextEvent:
		err = d.handleText(ctx, e)
	case CallbackEvent:
		err = d.handleCallback(ctx, e)
	case InlineQueryEvent:
		err = d.handleInlineQuery(ctx, e)
	case ChosenInlineEvent:
		err = d.handleChosenInline(ctx, e)
	default:
		logger.Debug("ignoring unsupported event", zap.String("type", fmt.Sprintf("%T", ev)))
		return nil
	}

	if err != nil {
		logger.Error("failed to handle event", zap.Error(err))
	}
	return err
}

// notifyFailure tells the user something went wrong. Failures here are only logged.
func (d *Dispatcher) notifyFailure(ctx context.Context, ev Event, logger *zap.Logger) {
	var notifyErr error
	switch e := ev.(type) {
	case CommandEvent:
		notifyErr = d.gateway.Reply(ctx, e.Message, text(somethingBrokeMsg))
	case TextEvent:
		notifyErr = d.gateway.Reply(ctx, e.Message, text(somethingBrokeMsg))
	case CallbackEvent:
		notifyErr = d.gateway.AnswerCallback(ctx, e.CallbackID, errorText)
	case InlineQueryEvent:
		notifyErr = d.gateway.AnswerInlineQuery(ctx, e.QueryID, nil)
	}
	if notifyErr != nil {
		logger.Warn("failed to notify user of failure", zap.Error(notifyErr))
	}
}

// reply sends an HTML reply and logs, rather than returns, gateway failures.
func (d *Dispatcher) reply(ctx context.Context, to secondary.MessageRef, msg secondary.OutgoingMessage) {
	if err := d.gateway.Reply(ctx, to, msg); err != nil {
		d.logger.Warn("failed to reply",
			zap.Int64("chat_id", to.ChatID),
			zap.Int("message_id", to.MessageID),
			zap.Error(err))
	}
}

func (d *Dispatcher) answer(ctx context.Context, callbackID, msg string) {
	if err := d.gateway.AnswerCallback(ctx, callbackID, msg); err != nil {
		d.logger.Warn("failed to answer callback", zap.String("callback_id", callbackID), zap.Error(err))
	}
}
