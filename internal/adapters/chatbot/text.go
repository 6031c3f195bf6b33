package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/example/jiobot/internal/core/conversation"
	"github.com/example/jiobot/internal/core/jio"
	"github.com/example/jiobot/internal/ports/primary"
)

// handleText consumes the sender's marker and interprets the text accordingly.
// The marker is gone afterwards whether or not the text was usable.
func (d *Dispatcher) handleText(ctx context.Context, e TextEvent) error {
	marker, ok, err := d.conversations.Consume(ctx, e.From.ID)
	if err != nil {
		return err
	}
	if !ok {
		d.logger.Debug("ignoring text without pending input", zap.Int64("user_id", e.From.ID))
		return nil
	}

	switch marker.Kind {
	case conversation.AwaitingName:
		return d.createFromText(ctx, e)
	case conversation.AwaitingItem:
		return d.addItemFromText(ctx, e, marker.JioID)
	default:
		return fmt.Errorf("unhandled marker %s", marker)
	}
}

func (d *Dispatcher) createFromText(ctx context.Context, e TextEvent) error {
	resp, err := d.jios.CreateJio(ctx, primary.CreateJioRequest{
		Name:        e.Text,
		CreatorID:   e.From.ID,
		CreatorName: e.From.Name,
		CreatedAt:   d.now(),
	})
	if errors.Is(err, jio.ErrEmptyName) {
		d.reply(ctx, e.Message, text(invalidNameText))
		return nil
	}
	if err != nil {
		return err
	}

	d.logger.Info("jio created",
		zap.Int64("jio_id", resp.JioID),
		zap.String("name", resp.Jio.Name))
	d.reply(ctx, e.Message, text(createdText(resp.Jio.Name)))
	return nil
}

func (d *Dispatcher) addItemFromText(ctx context.Context, e TextEvent, jioID int64) error {
	updated, err := d.jios.AddItem(ctx, primary.AddItemRequest{
		JioID:           jioID,
		ContributorName: e.From.Name,
		Text:            e.Text,
		AddedAt:         d.now(),
	})
	switch {
	case errors.Is(err, jio.ErrEmptyItem):
		d.reply(ctx, e.Message, text(invalidItemText))
		return nil
	case errors.Is(err, jio.ErrNotFound):
		d.reply(ctx, e.Message, text(jioNotFoundText))
		return nil
	case err != nil:
		return err
	}

	result, err := d.broadcast.Resync(ctx, jioID)
	if err != nil {
		// The item is stored; stale cards are not worth failing the reply over.
		d.logger.Warn("resync failed", zap.Int64("jio_id", jioID), zap.Error(err))
	}

	d.reply(ctx, e.Message, text(itemAddedText(updated, strings.TrimSpace(e.Text), result)))
	return nil
}
