package secondary

import "context"

// Gateway defines the secondary port for the messaging platform.
// Message text is HTML. Every method may fail when the platform rejects the
// call (message deleted, placement expired, user never started the bot).
type Gateway interface {
	// Reply sends msg into the chat of the referenced message, replying to it.
	Reply(ctx context.Context, to MessageRef, msg OutgoingMessage) error

	// Send sends msg into a chat and returns the new message ID.
	Send(ctx context.Context, chatID int64, msg OutgoingMessage) (int, error)

	// EditChatMessage replaces the text and buttons of a chat message.
	EditChatMessage(ctx context.Context, ref MessageRef, msg OutgoingMessage) error

	// EditInlineMessage replaces the text and buttons of an inline-published message.
	EditInlineMessage(ctx context.Context, inlineMessageID string, msg OutgoingMessage) error

	// AnswerCallback acknowledges a button press, optionally showing text.
	AnswerCallback(ctx context.Context, callbackID, text string) error

	// AnswerInlineQuery answers an inline query with result cards.
	AnswerInlineQuery(ctx context.Context, queryID string, cards []InlineCard) error

	// BotInfo returns the bot's own identity and capabilities.
	BotInfo(ctx context.Context) (*BotInfo, error)
}

// MessageRef addresses a message in a chat.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// OutgoingMessage is HTML text with optional buttons, one button per row.
type OutgoingMessage struct {
	Text    string
	Buttons []Button
}

// Button is an inline keyboard button carrying callback data.
type Button struct {
	Text string
	Data string
}

// InlineCard is one inline query result.
type InlineCard struct {
	ID          string
	Title       string
	Description string
	Message     OutgoingMessage
}

// BotInfo describes the bot account.
type BotInfo struct {
	ID                      int64
	FirstName               string
	Username                string
	CanJoinGroups           bool
	CanReadAllGroupMessages bool
	SupportsInlineQueries   bool
}
