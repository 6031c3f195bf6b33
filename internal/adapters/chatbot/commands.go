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
	"github.com/example/jiobot/internal/ports/secondary"
)

// fallbackUsername is shown in instructions when getMe fails.
const fallbackUsername = "your_bot_username"

func (d *Dispatcher) handleCommand(ctx context.Context, e CommandEvent) error {
	switch e.Command {
	case "start":
		return d.cmdStart(ctx, e)
	case "add_item":
		return d.cmdAddItem(ctx, e)
	case "view_jio":
		return d.cmdViewJio(ctx, e)
	case "share_jio":
		return d.cmdShareJio(ctx, e)
	case "list_jios":
		return d.cmdListJios(ctx, e)
	case "close_jio":
		return d.cmdCloseJio(ctx, e)
	case "debug":
		return d.cmdDebug(ctx, e)
	case "test_inline":
		return d.cmdTestInline(ctx, e)
	case "bot_info":
		return d.cmdBotInfo(ctx, e)
	case "help":
		d.reply(ctx, e.Message, text(helpText))
		return nil
	default:
		d.logger.Debug("ignoring unknown command", zap.String("command", e.Command))
		return nil
	}
}

func (d *Dispatcher) cmdStart(ctx context.Context, e CommandEvent) error {
	if err := d.conversations.Begin(ctx, e.From.ID, conversation.AwaitName()); err != nil {
		return err
	}
	d.reply(ctx, e.Message, text(welcomeText))
	return nil
}

func (d *Dispatcher) cmdAddItem(ctx context.Context, e CommandEvent) error {
	owned, err := d.ownedJios(ctx, e.From.ID)
	if err != nil {
		return err
	}

	switch len(owned) {
	case 0:
		d.reply(ctx, e.Message, text(noJiosText))
	case 1:
		target := owned[0]
		if err := d.conversations.Begin(ctx, e.From.ID, conversation.AwaitItem(target.ID)); err != nil {
			return err
		}
		d.reply(ctx, e.Message, text(askItemText(target.Name)))
	default:
		d.reply(ctx, e.Message, choiceKeyboard(chooseAddText, owned, "", action.Select))
	}
	return nil
}

func (d *Dispatcher) cmdViewJio(ctx context.Context, e CommandEvent) error {
	owned, err := d.ownedJios(ctx, e.From.ID)
	if err != nil {
		return err
	}
	if len(owned) == 0 {
		d.reply(ctx, e.Message, text(noJiosText))
		return nil
	}
	d.reply(ctx, e.Message, text(viewJiosText(owned)))
	return nil
}

// cmdShareJio explains inline sharing and posts a live card into the current chat.
func (d *Dispatcher) cmdShareJio(ctx context.Context, e CommandEvent) error {
	owned, err := d.ownedJios(ctx, e.From.ID)
	if err != nil {
		return err
	}
	if len(owned) == 0 {
		d.reply(ctx, e.Message, text(noJiosText))
		return nil
	}

	d.reply(ctx, e.Message, text(shareText(d.botUsername(ctx), owned)))

	if len(owned) > 1 {
		d.reply(ctx, e.Message, choiceKeyboard(chooseShareText, owned, "", action.Share))
		return nil
	}
	d.publishToChat(ctx, owned[0].ID, e.Message.ChatID)
	return nil
}

func (d *Dispatcher) cmdListJios(ctx context.Context, e CommandEvent) error {
	all, err := d.jios.ListJios(ctx, primary.JioFilters{})
	if err != nil {
		return err
	}
	if len(all) == 0 {
		d.reply(ctx, e.Message, text(noJiosAvailableText))
		return nil
	}
	d.reply(ctx, e.Message, text(listJiosText(all)))
	return nil
}

func (d *Dispatcher) cmdCloseJio(ctx context.Context, e CommandEvent) error {
	owned, err := d.ownedJios(ctx, e.From.ID)
	if err != nil {
		return err
	}

	switch len(owned) {
	case 0:
		d.reply(ctx, e.Message, text(noJiosToCloseText))
		return nil
	case 1:
	default:
		d.reply(ctx, e.Message, choiceKeyboard(chooseCloseText, owned, "Close: ", action.Close))
		return nil
	}

	closed, err := d.jios.CloseJio(ctx, primary.CloseJioRequest{JioID: owned[0].ID, RequestingUserID: e.From.ID})
	switch {
	case errors.Is(err, jio.ErrNotFound):
		d.reply(ctx, e.Message, text(jioNotFoundText))
	case errors.Is(err, jio.ErrNotCreator):
		d.reply(ctx, e.Message, text(notCreatorText))
	case err != nil:
		return err
	default:
		d.logger.Info("jio closed", zap.Int64("jio_id", closed.ID))
		d.reply(ctx, e.Message, text(closedText(closed.Name)))
	}
	return nil
}

func (d *Dispatcher) cmdDebug(ctx context.Context, e CommandEvent) error {
	all, err := d.jios.ListJios(ctx, primary.JioFilters{})
	if err != nil {
		return err
	}
	if len(all) == 0 {
		d.reply(ctx, e.Message, text("❌ No supper jios available."))
		return nil
	}
	d.reply(ctx, e.Message, text(debugText(all)))
	return nil
}

func (d *Dispatcher) cmdTestInline(ctx context.Context, e CommandEvent) error {
	all, err := d.jios.ListJios(ctx, primary.JioFilters{})
	if err != nil {
		return err
	}
	if len(all) == 0 {
		d.reply(ctx, e.Message, text(noJiosToTestText))
		return nil
	}
	d.reply(ctx, e.Message, text(testInlineText(d.botUsername(ctx), all)))
	return nil
}

func (d *Dispatcher) cmdBotInfo(ctx context.Context, e CommandEvent) error {
	info, err := d.gateway.BotInfo(ctx)
	if err != nil {
		d.logger.Warn("failed to get bot info", zap.Error(err))
		d.reply(ctx, e.Message, text("❌ Error getting bot information: "+esc(err.Error())))
		return nil
	}

	all, err := d.jios.ListJios(ctx, primary.JioFilters{})
	if err != nil {
		return err
	}
	pending, err := d.conversations.PendingCount(ctx)
	if err != nil {
		return err
	}

	d.reply(ctx, e.Message, text(botInfoText(info, len(all), pending)))
	return nil
}

// Helpers

func (d *Dispatcher) ownedJios(ctx context.Context, userID int64) ([]*primary.Jio, error) {
	owned, err := d.jios.ListJios(ctx, primary.JioFilters{CreatorID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list jios for user %d: %w", userID, err)
	}
	return owned, nil
}

func (d *Dispatcher) botUsername(ctx context.Context) string {
	info, err := d.gateway.BotInfo(ctx)
	if err != nil || info.Username == "" {
		if err != nil {
			d.logger.Warn("failed to get bot info", zap.Error(err))
		}
		return fallbackUsername
	}
	return info.Username
}

// publishToChat sends a live card for a jio into a chat. Failures are logged.
func (d *Dispatcher) publishToChat(ctx context.Context, jioID, chatID int64) bool {
	surface, err := d.broadcast.Publish(ctx, jioID, jio.ChatSurface(chatID, 0))
	if err != nil {
		d.logger.Warn("failed to publish card",
			zap.Int64("jio_id", jioID),
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return false
	}
	d.logger.Info("card published", zap.Int64("jio_id", jioID), zap.Stringer("surface", surface))
	return true
}

// choiceKeyboard lists jios as one button each, labelled with an optional prefix.
func choiceKeyboard(prompt string, jios []*primary.Jio, labelPrefix string, act func(int64) action.Action) secondary.OutgoingMessage {
	msg := secondary.OutgoingMessage{Text: prompt}
	for _, j := range jios {
		msg.Buttons = append(msg.Buttons, secondary.Button{
			Text: labelPrefix + j.Name,
			Data: act(j.ID).Encode(),
		})
	}
	return msg
}
