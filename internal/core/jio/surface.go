package jio

import "fmt"

// SurfaceKind distinguishes inline placements from regular chat messages.
type SurfaceKind string

const (
	SurfaceInline SurfaceKind = "inline"
	SurfaceChat   SurfaceKind = "chat"
)

// Surface is one placement of a jio's summary card.
type Surface struct {
	Kind            SurfaceKind
	InlineMessageID string // SurfaceInline only
	ChatID          int64  // SurfaceChat only
	MessageID       int    // SurfaceChat only; zero until the card has been sent
}

// InlineSurface returns a surface for an inline-published message.
func InlineSurface(inlineMessageID string) Surface {
	return Surface{Kind: SurfaceInline, InlineMessageID: inlineMessageID}
}

// ChatSurface returns a surface for a message in a chat.
func ChatSurface(chatID int64, messageID int) Surface {
	return Surface{Kind: SurfaceChat, ChatID: chatID, MessageID: messageID}
}

// Key is the identity used to deduplicate surfaces.
func (s Surface) Key() string {
	switch s.Kind {
	case SurfaceInline:
		return "inline:" + s.InlineMessageID
	case SurfaceChat:
		return fmt.Sprintf("chat:%d:%d", s.ChatID, s.MessageID)
	default:
		return "unknown"
	}
}

// Valid reports whether the surface addresses an existing message.
func (s Surface) Valid() bool {
	switch s.Kind {
	case SurfaceInline:
		return s.InlineMessageID != ""
	case SurfaceChat:
		return s.ChatID != 0 && s.MessageID != 0
	default:
		return false
	}
}

func (s Surface) String() string { return s.Key() }
