package chatbot

import "github.com/example/jiobot/internal/ports/secondary"

// User identifies who triggered an event. Name is the platform display name.
type User struct {
	ID   int64
	Name string
}

// Event is one inbound update, already translated out of the platform's wire format.
type Event interface {
	// EventType returns a short identifier used in logs and span names.
	EventType() string
	// Sender returns the user the event came from.
	Sender() User
}

// CommandEvent is a slash command such as /start.
type CommandEvent struct {
	From    User
	Message secondary.MessageRef
	Command string // without the leading slash or @botname suffix
}

func (e CommandEvent) EventType() string { return "command" }
func (e CommandEvent) Sender() User      { return e.From }

// TextEvent is a free-text message that is not a command.
type TextEvent struct {
	From    User
	Message secondary.MessageRef
	Text    string
}

func (e TextEvent) EventType() string { return "text" }
func (e TextEvent) Sender() User      { return e.From }

// CallbackEvent is an inline keyboard button press.
// Exactly one of InlineMessageID and Message addresses the message carrying the button.
type CallbackEvent struct {
	From            User
	CallbackID      string
	Data            string
	InlineMessageID string
	Message         *secondary.MessageRef
}

func (e CallbackEvent) EventType() string { return "callback" }
func (e CallbackEvent) Sender() User      { return e.From }

// InlineQueryEvent is typed "@bot query" text in any chat.
type InlineQueryEvent struct {
	From    User
	QueryID string
	Query   string
}

func (e InlineQueryEvent) EventType() string { return "inline_query" }
func (e InlineQueryEvent) Sender() User      { return e.From }

// ChosenInlineEvent reports which inline result a user sent into a chat.
type ChosenInlineEvent struct {
	From            User
	ResultID        string
	InlineMessageID string // empty unless the result carried a keyboard
}

func (e ChosenInlineEvent) EventType() string { return "chosen_inline" }
func (e ChosenInlineEvent) Sender() User      { return e.From }
