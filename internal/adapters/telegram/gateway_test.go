package telegram_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/jiobot/internal/adapters/telegram"
	"github.com/example/jiobot/internal/ports/secondary"
)

type wireKeyboard struct {
	InlineKeyboard [][]struct {
		Text         string `json:"text"`
		CallbackData string `json:"callback_data"`
	} `json:"inline_keyboard"`
}

func TestGateway_SendUsesHTMLAndKeyboard(t *testing.T) {
	api, bot := newFakeBotAPI(t)
	gw := telegram.NewGateway(bot, nil)

	id, err := gw.Send(context.Background(), -1001, secondary.OutgoingMessage{
		Text:    "🍽️ <b>Supper</b>",
		Buttons: []secondary.Button{{Text: "➕ Add Order", Data: "add_order_1"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	call := api.last(t, "sendMessage")
	assert.Equal(t, "-1001", call.Form.Get("chat_id"))
	assert.Equal(t, "HTML", call.Form.Get("parse_mode"))
	assert.Equal(t, "🍽️ <b>Supper</b>", call.Form.Get("text"))

	var kb wireKeyboard
	decodeField(t, call.Form, "reply_markup", &kb)
	require.Len(t, kb.InlineKeyboard, 1)
	assert.Equal(t, "add_order_1", kb.InlineKeyboard[0][0].CallbackData)
}

func TestGateway_ReplyTargetsMessage(t *testing.T) {
	api, bot := newFakeBotAPI(t)
	gw := telegram.NewGateway(bot, nil)

	err := gw.Reply(context.Background(), secondary.MessageRef{ChatID: 7, MessageID: 3}, secondary.OutgoingMessage{Text: "hi"})
	require.NoError(t, err)

	call := api.last(t, "sendMessage")
	assert.Equal(t, "3", call.Form.Get("reply_to_message_id"))
	assert.Empty(t, call.Form.Get("reply_markup"))
}

func TestGateway_EditInline(t *testing.T) {
	api, bot := newFakeBotAPI(t)
	gw := telegram.NewGateway(bot, nil)

	err := gw.EditInlineMessage(context.Background(), "AAQ-1", secondary.OutgoingMessage{
		Text:    "card",
		Buttons: []secondary.Button{{Text: "➕ Add Order", Data: "add_order_1"}},
	})
	require.NoError(t, err)

	call := api.last(t, "editMessageText")
	assert.Equal(t, "AAQ-1", call.Form.Get("inline_message_id"))
	assert.Empty(t, call.Form.Get("chat_id"))
	assert.Equal(t, "HTML", call.Form.Get("parse_mode"))
}

func TestGateway_EditNotModifiedIsSuccess(t *testing.T) {
	api, bot := newFakeBotAPI(t)
	gw := telegram.NewGateway(bot, nil)
	api.respond("editMessageText", `{"ok":false,"error_code":400,"description":"Bad Request: message is not modified"}`)

	err := gw.EditChatMessage(context.Background(), secondary.MessageRef{ChatID: 1, MessageID: 2}, secondary.OutgoingMessage{Text: "same"})
	assert.NoError(t, err)
}

func TestGateway_EditFailure(t *testing.T) {
	api, bot := newFakeBotAPI(t)
	gw := telegram.NewGateway(bot, nil)
	api.respond("editMessageText", `{"ok":false,"error_code":400,"description":"Bad Request: message to edit not found"}`)

	err := gw.EditInlineMessage(context.Background(), "gone", secondary.OutgoingMessage{Text: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "message to edit not found")
}

func TestGateway_AnswerInlineQuery(t *testing.T) {
	api, bot := newFakeBotAPI(t)
	gw := telegram.NewGateway(bot, nil)

	err := gw.AnswerInlineQuery(context.Background(), "q1", []secondary.InlineCard{{
		ID:          "jio_1",
		Title:       "🍽️ Supper",
		Description: "Created by Alice • 0 items • 1 participants",
		Message: secondary.OutgoingMessage{
			Text:    "body",
			Buttons: []secondary.Button{{Text: "➕ Add Order", Data: "add_order_1"}},
		},
	}})
	require.NoError(t, err)

	call := api.last(t, "answerInlineQuery")
	assert.Equal(t, "q1", call.Form.Get("inline_query_id"))

	var results []struct {
		Type        string       `json:"type"`
		ID          string       `json:"id"`
		Title       string       `json:"title"`
		Description string       `json:"description"`
		ReplyMarkup wireKeyboard `json:"reply_markup"`
		Content     struct {
			Text      string `json:"message_text"`
			ParseMode string `json:"parse_mode"`
		} `json:"input_message_content"`
	}
	decodeField(t, call.Form, "results", &results)
	require.Len(t, results, 1)
	assert.Equal(t, "article", results[0].Type)
	assert.Equal(t, "jio_1", results[0].ID)
	assert.Equal(t, "Created by Alice • 0 items • 1 participants", results[0].Description)
	assert.Equal(t, "HTML", results[0].Content.ParseMode)
	assert.Equal(t, "add_order_1", results[0].ReplyMarkup.InlineKeyboard[0][0].CallbackData)
}

func TestGateway_AnswerInlineQueryEmpty(t *testing.T) {
	api, bot := newFakeBotAPI(t)
	gw := telegram.NewGateway(bot, nil)

	require.NoError(t, gw.AnswerInlineQuery(context.Background(), "q1", nil))
	assert.Equal(t, "[]", api.last(t, "answerInlineQuery").Form.Get("results"))
}

func TestGateway_BotInfo(t *testing.T) {
	_, bot := newFakeBotAPI(t)
	gw := telegram.NewGateway(bot, nil)

	info, err := gw.BotInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "supperjio_bot", info.Username)
	assert.True(t, info.SupportsInlineQueries)
	assert.False(t, info.CanReadAllGroupMessages)
}

func TestGateway_CancelledContext(t *testing.T) {
	_, bot := newFakeBotAPI(t)
	gw := telegram.NewGateway(bot, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := gw.Send(ctx, 1, secondary.OutgoingMessage{Text: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}
