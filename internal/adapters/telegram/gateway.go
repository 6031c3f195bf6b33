// Package telegram adapts the Telegram Bot API to the jiobot ports: an outbound
// Gateway, translation of inbound updates into chatbot events, the webhook
// endpoint and the single-goroutine update runner.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/example/jiobot/internal/ports/secondary"
)

// Gateway implements secondary.Gateway with the Bot API. All text is sent with
// parse mode HTML.
type Gateway struct {
	bot    *tgbotapi.BotAPI
	logger *zap.Logger
}

// NewGateway creates a new Gateway.
func NewGateway(bot *tgbotapi.BotAPI, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{bot: bot, logger: logger.Named("telegram")}
}

// Reply sends msg into the referenced chat as a reply to the referenced message.
func (g *Gateway) Reply(ctx context.Context, to secondary.MessageRef, msg secondary.OutgoingMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cfg := newMessage(to.ChatID, msg)
	cfg.ReplyToMessageID = to.MessageID
	cfg.AllowSendingWithoutReply = true
	if _, err := g.bot.Send(cfg); err != nil {
		return fmt.Errorf("failed to reply in chat %d: %w", to.ChatID, err)
	}
	return nil
}

// Send sends msg into a chat and returns the new message ID.
func (g *Gateway) Send(ctx context.Context, chatID int64, msg secondary.OutgoingMessage) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	sent, err := g.bot.Send(newMessage(chatID, msg))
	if err != nil {
		return 0, fmt.Errorf("failed to send to chat %d: %w", chatID, err)
	}
	return sent.MessageID, nil
}

// EditChatMessage replaces the text and buttons of a chat message.
func (g *Gateway) EditChatMessage(ctx context.Context, ref secondary.MessageRef, msg secondary.OutgoingMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cfg := tgbotapi.NewEditMessageText(ref.ChatID, ref.MessageID, msg.Text)
	cfg.ParseMode = tgbotapi.ModeHTML
	cfg.ReplyMarkup = keyboard(msg.Buttons)
	return g.edit(cfg, fmt.Sprintf("chat %d message %d", ref.ChatID, ref.MessageID))
}

// EditInlineMessage replaces the text and buttons of an inline-published message.
func (g *Gateway) EditInlineMessage(ctx context.Context, inlineMessageID string, msg secondary.OutgoingMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cfg := tgbotapi.EditMessageTextConfig{
		BaseEdit: tgbotapi.BaseEdit{
			InlineMessageID: inlineMessageID,
			ReplyMarkup:     keyboard(msg.Buttons),
		},
		Text:      msg.Text,
		ParseMode: tgbotapi.ModeHTML,
	}
	return g.edit(cfg, "inline message "+inlineMessageID)
}

// AnswerCallback acknowledges a button press.
func (g *Gateway) AnswerCallback(ctx context.Context, callbackID, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := g.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		return fmt.Errorf("failed to answer callback %s: %w", callbackID, err)
	}
	return nil
}

// AnswerInlineQuery answers an inline query with article results.
// Results are personal and never cached, since jios change constantly.
func (g *Gateway) AnswerInlineQuery(ctx context.Context, queryID string, cards []secondary.InlineCard) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	results := make([]interface{}, 0, len(cards))
	for _, c := range cards {
		article := tgbotapi.NewInlineQueryResultArticleHTML(c.ID, c.Title, c.Message.Text)
		article.Description = c.Description
		article.ReplyMarkup = keyboard(c.Message.Buttons)
		results = append(results, article)
	}

	cfg := tgbotapi.InlineConfig{
		InlineQueryID: queryID,
		Results:       results,
		CacheTime:     0,
		IsPersonal:    true,
	}
	if _, err := g.bot.Request(cfg); err != nil {
		return fmt.Errorf("failed to answer inline query %s: %w", queryID, err)
	}
	return nil
}

// BotInfo calls getMe.
func (g *Gateway) BotInfo(ctx context.Context) (*secondary.BotInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	me, err := g.bot.GetMe()
	if err != nil {
		return nil, fmt.Errorf("failed to get bot info: %w", err)
	}
	return &secondary.BotInfo{
		ID:                      me.ID,
		FirstName:               me.FirstName,
		Username:                me.UserName,
		CanJoinGroups:           me.CanJoinGroups,
		CanReadAllGroupMessages: me.CanReadAllGroupMessages,
		SupportsInlineQueries:   me.SupportsInlineQueries,
	}, nil
}

// edit performs an edit. An edit that would not change anything counts as success.
func (g *Gateway) edit(cfg tgbotapi.EditMessageTextConfig, target string) error {
	_, err := g.bot.Request(cfg)
	if err == nil {
		return nil
	}
	if isNotModified(err) {
		g.logger.Debug("edit skipped, message unchanged", zap.String("target", target))
		return nil
	}
	return fmt.Errorf("failed to edit %s: %w", target, err)
}

func isNotModified(err error) bool {
	var apiErr *tgbotapi.Error
	return errors.As(err, &apiErr) && strings.Contains(apiErr.Message, "message is not modified")
}

func newMessage(chatID int64, msg secondary.OutgoingMessage) tgbotapi.MessageConfig {
	cfg := tgbotapi.NewMessage(chatID, msg.Text)
	cfg.ParseMode = tgbotapi.ModeHTML
	if kb := keyboard(msg.Buttons); kb != nil {
		cfg.ReplyMarkup = *kb
	}
	return cfg
}

// keyboard lays out one button per row. Nil means no keyboard.
func keyboard(buttons []secondary.Button) *tgbotapi.InlineKeyboardMarkup {
	if len(buttons) == 0 {
		return nil
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, b := range buttons {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data)))
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

var _ secondary.Gateway = (*Gateway)(nil)
