package chatbot

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/example/jiobot/internal/core/action"
	"github.com/example/jiobot/internal/core/jio"
	"github.com/example/jiobot/internal/ports/primary"
	"github.com/example/jiobot/internal/ports/secondary"
)

// maxInlineResults is the Bot API cap on results per inline answer.
const maxInlineResults = 50

// handleInlineQuery offers every jio whose name contains the query, as a card
// that can be sent into the current chat.
func (d *Dispatcher) handleInlineQuery(ctx context.Context, e InlineQueryEvent) error {
	all, err := d.jios.ListJios(ctx, primary.JioFilters{})
	if err != nil {
		d.logger.Error("failed to list jios for inline query", zap.Error(err))
		return d.answerInline(ctx, e.QueryID, nil)
	}

	query := strings.ToLower(strings.TrimSpace(e.Query))
	var cards []secondary.InlineCard
	for _, j := range all {
		if query != "" && !strings.Contains(strings.ToLower(j.Name), query) {
			continue
		}
		view := jio.Render(j.Summary())
		cards = append(cards, secondary.InlineCard{
			ID:          action.ResultID(j.ID),
			Title:       view.Title,
			Description: view.Description,
			Message: secondary.OutgoingMessage{
				Text:    view.Body,
				Buttons: []secondary.Button{{Text: view.Action.Text, Data: view.Action.Data}},
			},
		})
		if len(cards) == maxInlineResults {
			break
		}
	}

	d.logger.Debug("answering inline query",
		zap.String("query", e.Query),
		zap.Int("results", len(cards)))
	return d.answerInline(ctx, e.QueryID, cards)
}

func (d *Dispatcher) answerInline(ctx context.Context, queryID string, cards []secondary.InlineCard) error {
	if err := d.gateway.AnswerInlineQuery(ctx, queryID, cards); err != nil {
		d.logger.Warn("failed to answer inline query", zap.String("query_id", queryID), zap.Error(err))
	}
	return nil
}

// handleChosenInline starts tracking a card the moment it is sent through inline mode.
func (d *Dispatcher) handleChosenInline(ctx context.Context, e ChosenInlineEvent) error {
	jioID, err := action.ParseResultID(e.ResultID)
	if err != nil {
		d.logger.Warn("unknown inline result", zap.String("result_id", e.ResultID))
		return nil
	}
	if e.InlineMessageID == "" {
		d.logger.Debug("chosen inline result without message id", zap.Int64("jio_id", jioID))
		return nil
	}

	surface, err := d.broadcast.Publish(ctx, jioID, jio.InlineSurface(e.InlineMessageID))
	if err != nil {
		d.logger.Warn("failed to publish inline card",
			zap.Int64("jio_id", jioID),
			zap.Error(err))
		return nil
	}
	d.logger.Info("inline card published", zap.Int64("jio_id", jioID), zap.Stringer("surface", surface))
	return nil
}
