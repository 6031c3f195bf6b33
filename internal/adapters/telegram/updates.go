package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/jiobot/internal/adapters/chatbot"
	"github.com/example/jiobot/internal/ports/secondary"
)

// ToEvent translates an update into a chatbot event. ok is false for updates
// the bot does not act on (edited messages, channel posts, commands addressed
// to another bot, ...).
func ToEvent(u tgbotapi.Update, botUsername string) (chatbot.Event, bool) {
	switch {
	case u.Message != nil:
		return messageEvent(u.Message, botUsername)
	case u.CallbackQuery != nil:
		return callbackEvent(u.CallbackQuery)
	case u.InlineQuery != nil && u.InlineQuery.From != nil:
		return chatbot.InlineQueryEvent{
			From:    toUser(u.InlineQuery.From),
			QueryID: u.InlineQuery.ID,
			Query:   u.InlineQuery.Query,
		}, true
	case u.ChosenInlineResult != nil && u.ChosenInlineResult.From != nil:
		return chatbot.ChosenInlineEvent{
			From:            toUser(u.ChosenInlineResult.From),
			ResultID:        u.ChosenInlineResult.ResultID,
			InlineMessageID: u.ChosenInlineResult.InlineMessageID,
		}, true
	default:
		return nil, false
	}
}

func messageEvent(m *tgbotapi.Message, botUsername string) (chatbot.Event, bool) {
	if m.From == nil || m.Chat == nil {
		return nil, false
	}
	ref := secondary.MessageRef{ChatID: m.Chat.ID, MessageID: m.MessageID}

	if m.IsCommand() {
		if !addressedToUs(m.CommandWithAt(), botUsername) {
			return nil, false
		}
		return chatbot.CommandEvent{
			From:    toUser(m.From),
			Message: ref,
			Command: m.Command(),
		}, true
	}

	if m.Text == "" {
		return nil, false
	}
	return chatbot.TextEvent{From: toUser(m.From), Message: ref, Text: m.Text}, true
}

func callbackEvent(q *tgbotapi.CallbackQuery) (chatbot.Event, bool) {
	if q.From == nil {
		return nil, false
	}
	ev := chatbot.CallbackEvent{
		From:            toUser(q.From),
		CallbackID:      q.ID,
		Data:            q.Data,
		InlineMessageID: q.InlineMessageID,
	}
	if q.Message != nil && q.Message.Chat != nil {
		ev.Message = &secondary.MessageRef{ChatID: q.Message.Chat.ID, MessageID: q.Message.MessageID}
	}
	return ev, true
}

// addressedToUs reports whether "cmd" or "cmd@name" targets this bot.
func addressedToUs(commandWithAt, botUsername string) bool {
	_, target, found := strings.Cut(commandWithAt, "@")
	if !found || botUsername == "" {
		return true
	}
	return strings.EqualFold(target, botUsername)
}

func toUser(u *tgbotapi.User) chatbot.User {
	return chatbot.User{ID: u.ID, Name: u.FirstName}
}
