package chatbot_test

import (
	"context"
	"errors"
	"sync"

	"github.com/example/jiobot/internal/ports/secondary"
)

type sentMessage struct {
	ChatID  int64
	ReplyTo int
	Msg     secondary.OutgoingMessage
}

type chatEdit struct {
	Ref secondary.MessageRef
	Msg secondary.OutgoingMessage
}

type inlineEdit struct {
	InlineMessageID string
	Msg             secondary.OutgoingMessage
}

// fakeGateway records every outbound call.
type fakeGateway struct {
	mu            sync.Mutex
	replies       []sentMessage
	sends         []sentMessage
	chatEdits     []chatEdit
	inlineEdits   []inlineEdit
	answers       map[string]string
	inlineAnswers map[string][]secondary.InlineCard
	nextMessageID int

	blockedUsers map[int64]bool  // Send fails for these chats
	brokenInline map[string]bool // EditInlineMessage fails for these IDs
	info         *secondary.BotInfo
}

var (
	errBlocked   = errors.New("Forbidden: bot can't initiate conversation with a user")
	errNoMessage = errors.New("Bad Request: message to edit not found")
)

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		answers:       make(map[string]string),
		inlineAnswers: make(map[string][]secondary.InlineCard),
		nextMessageID: 500,
		blockedUsers:  make(map[int64]bool),
		brokenInline:  make(map[string]bool),
		info: &secondary.BotInfo{
			ID:                    99,
			FirstName:             "Jio Bot",
			Username:              "supperjio_bot",
			CanJoinGroups:         true,
			SupportsInlineQueries: true,
		},
	}
}

func (g *fakeGateway) Reply(ctx context.Context, to secondary.MessageRef, msg secondary.OutgoingMessage) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.replies = append(g.replies, sentMessage{ChatID: to.ChatID, ReplyTo: to.MessageID, Msg: msg})
	return nil
}

func (g *fakeGateway) Send(ctx context.Context, chatID int64, msg secondary.OutgoingMessage) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.blockedUsers[chatID] {
		return 0, errBlocked
	}
	g.nextMessageID++
	g.sends = append(g.sends, sentMessage{ChatID: chatID, Msg: msg})
	return g.nextMessageID, nil
}

func (g *fakeGateway) EditChatMessage(ctx context.Context, ref secondary.MessageRef, msg secondary.OutgoingMessage) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.chatEdits = append(g.chatEdits, chatEdit{Ref: ref, Msg: msg})
	return nil
}

func (g *fakeGateway) EditInlineMessage(ctx context.Context, inlineMessageID string, msg secondary.OutgoingMessage) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inlineEdits = append(g.inlineEdits, inlineEdit{InlineMessageID: inlineMessageID, Msg: msg})
	if g.brokenInline[inlineMessageID] {
		return errNoMessage
	}
	return nil
}

func (g *fakeGateway) AnswerCallback(ctx context.Context, callbackID, text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.answers[callbackID] = text
	return nil
}

func (g *fakeGateway) AnswerInlineQuery(ctx context.Context, queryID string, cards []secondary.InlineCard) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inlineAnswers[queryID] = cards
	return nil
}

func (g *fakeGateway) BotInfo(ctx context.Context) (*secondary.BotInfo, error) {
	return g.info, nil
}

func (g *fakeGateway) lastReply() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.replies) == 0 {
		return ""
	}
	return g.replies[len(g.replies)-1].Msg.Text
}

var _ secondary.Gateway = (*fakeGateway)(nil)
