package chatbot

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/jiobot/internal/core/action"
	"github.com/example/jiobot/internal/core/conversation"
	"github.com/example/jiobot/internal/core/jio"
	"github.com/example/jiobot/internal/ports/primary"
)

func (d *Dispatcher) handleCallback(ctx context.Context, e CallbackEvent) error {
	act, err := action.Parse(e.Data)
	if err != nil {
		d.logger.Warn("malformed callback data", zap.String("data", e.Data), zap.Error(err))
		d.answer(ctx, e.CallbackID, errorText)
		return nil
	}

	switch act.Kind {
	case action.KindSelect:
		return d.onSelect(ctx, e, act.JioID)
	case action.KindClose:
		return d.onClose(ctx, e, act.JioID)
	case action.KindAdd:
		return d.onAddOrder(ctx, e, act.JioID)
	case action.KindShare:
		return d.onShare(ctx, e, act.JioID)
	default:
		return fmt.Errorf("unhandled action %s", act.Kind)
	}
}

// onSelect starts the add-item flow for the jio picked from the /add_item keyboard.
func (d *Dispatcher) onSelect(ctx context.Context, e CallbackEvent, jioID int64) error {
	target, ok, err := d.findJio(ctx, e, jioID)
	if err != nil || !ok {
		return err
	}

	if err := d.conversations.Begin(ctx, e.From.ID, conversation.AwaitItem(jioID)); err != nil {
		return err
	}
	d.answer(ctx, e.CallbackID, "Selected: "+target.Name)

	if _, err := d.gateway.Send(ctx, e.From.ID, text(askItemText(target.Name))); err != nil {
		d.logger.Warn("failed to prompt for item", zap.Int64("jio_id", jioID), zap.Error(err))
	}
	return nil
}

// onClose closes a jio picked from the /close_jio keyboard and rewrites the keyboard message.
func (d *Dispatcher) onClose(ctx context.Context, e CallbackEvent, jioID int64) error {
	closed, err := d.jios.CloseJio(ctx, primary.CloseJioRequest{JioID: jioID, RequestingUserID: e.From.ID})
	switch {
	case errors.Is(err, jio.ErrNotFound):
		d.answer(ctx, e.CallbackID, jioNotFoundText)
		return nil
	case errors.Is(err, jio.ErrNotCreator):
		d.answer(ctx, e.CallbackID, notCreatorText)
		return nil
	case err != nil:
		return err
	}

	d.logger.Info("jio closed", zap.Int64("jio_id", jioID))
	d.answer(ctx, e.CallbackID, "✅ Closed: "+closed.Name)

	notice := text(closedNoticeText(closed.Name))
	var editErr error
	switch {
	case e.InlineMessageID != "":
		editErr = d.gateway.EditInlineMessage(ctx, e.InlineMessageID, notice)
	case e.Message != nil:
		editErr = d.gateway.EditChatMessage(ctx, *e.Message, notice)
	}
	if editErr != nil {
		d.logger.Warn("failed to show closed notice", zap.Int64("jio_id", jioID), zap.Error(editErr))
	}
	return nil
}

// onAddOrder handles the button on a published card. Any user in any chat may
// press it: the card is tracked for updates and the presser is asked, in a
// private chat, for the item.
func (d *Dispatcher) onAddOrder(ctx context.Context, e CallbackEvent, jioID int64) error {
	target, ok, err := d.findJio(ctx, e, jioID)
	if err != nil || !ok {
		return err
	}

	if surface, ok := callbackSurface(e); ok {
		if err := d.jios.RecordSurface(ctx, jioID, surface); err != nil {
			d.logger.Warn("failed to record surface",
				zap.Int64("jio_id", jioID),
				zap.Stringer("surface", surface),
				zap.Error(err))
		}
	}

	if err := d.conversations.Begin(ctx, e.From.ID, conversation.AwaitItem(jioID)); err != nil {
		return err
	}

	if _, err := d.gateway.Send(ctx, e.From.ID, text(addOrderDMText(target.Name))); err != nil {
		d.logger.Warn("could not message user privately",
			zap.Int64("jio_id", jioID),
			zap.Error(err))
		d.answer(ctx, e.CallbackID, startChatFirst)
		return nil
	}
	d.answer(ctx, e.CallbackID, fmt.Sprintf("Check your private chat with me to add an order to '%s'.", target.Name))
	return nil
}

// onShare posts the picked jio's card into the chat holding the /share_jio keyboard.
func (d *Dispatcher) onShare(ctx context.Context, e CallbackEvent, jioID int64) error {
	target, ok, err := d.findJio(ctx, e, jioID)
	if err != nil || !ok {
		return err
	}
	if e.Message == nil {
		d.answer(ctx, e.CallbackID, errorText)
		return nil
	}

	if !d.publishToChat(ctx, jioID, e.Message.ChatID) {
		d.answer(ctx, e.CallbackID, errorText)
		return nil
	}
	d.answer(ctx, e.CallbackID, "📤 Posted: "+target.Name)
	return nil
}

// findJio loads a jio, answering the callback with "not found" when it is gone.
func (d *Dispatcher) findJio(ctx context.Context, e CallbackEvent, jioID int64) (*primary.Jio, bool, error) {
	target, err := d.jios.GetJio(ctx, jioID)
	if errors.Is(err, jio.ErrNotFound) {
		d.answer(ctx, e.CallbackID, jioNotFoundText)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return target, true, nil
}

// callbackSurface returns the message the pressed button lives on.
func callbackSurface(e CallbackEvent) (jio.Surface, bool) {
	switch {
	case e.InlineMessageID != "":
		return jio.InlineSurface(e.InlineMessageID), true
	case e.Message != nil:
		return jio.ChatSurface(e.Message.ChatID, e.Message.MessageID), true
	default:
		return jio.Surface{}, false
	}
}
