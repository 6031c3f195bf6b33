package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/jiobot/internal/ports/secondary"
)

// Ensure mocks implement the interfaces
var (
	_ secondary.JioRepository    = (*mockJioRepository)(nil)
	_ secondary.MarkerRepository = (*mockMarkerRepository)(nil)
	_ secondary.Gateway          = (*mockGateway)(nil)
)

// mockJioRepository implements secondary.JioRepository for testing.
type mockJioRepository struct {
	jios      map[int64]*secondary.JioRecord
	nextID    int64
	getErr    error
	createErr error
	appendErr error
}

func newMockJioRepository() *mockJioRepository {
	return &mockJioRepository{jios: make(map[int64]*secondary.JioRecord)}
}

func (m *mockJioRepository) GetNextID(ctx context.Context) (int64, error) {
	m.nextID++
	return m.nextID, nil
}

func (m *mockJioRepository) Create(ctx context.Context, jio *secondary.JioRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	copied := *jio
	m.jios[jio.ID] = &copied
	return nil
}

func (m *mockJioRepository) GetByID(ctx context.Context, id int64) (*secondary.JioRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	j, ok := m.jios[id]
	if !ok {
		return nil, fmt.Errorf("jio %d: %w", id, secondary.ErrNotFound)
	}
	copied := *j
	copied.Items = append([]secondary.ItemRecord(nil), j.Items...)
	copied.Participants = append([]string(nil), j.Participants...)
	copied.Surfaces = append([]secondary.SurfaceRecord(nil), j.Surfaces...)
	return &copied, nil
}

func (m *mockJioRepository) List(ctx context.Context, filters secondary.JioFilters) ([]*secondary.JioRecord, error) {
	var out []*secondary.JioRecord
	for id := int64(1); id <= m.nextID; id++ {
		j, ok := m.jios[id]
		if !ok {
			continue
		}
		if filters.CreatorID != 0 && j.CreatorID != filters.CreatorID {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

func (m *mockJioRepository) AppendItem(ctx context.Context, jioID int64, item *secondary.ItemRecord) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	j, ok := m.jios[jioID]
	if !ok {
		return fmt.Errorf("jio %d: %w", jioID, secondary.ErrNotFound)
	}
	j.Items = append(j.Items, *item)
	for _, p := range j.Participants {
		if p == item.ContributorName {
			return nil
		}
	}
	j.Participants = append(j.Participants, item.ContributorName)
	return nil
}

func (m *mockJioRepository) AddSurface(ctx context.Context, jioID int64, surface *secondary.SurfaceRecord) (bool, error) {
	j, ok := m.jios[jioID]
	if !ok {
		return false, fmt.Errorf("jio %d: %w", jioID, secondary.ErrNotFound)
	}
	for _, s := range j.Surfaces {
		if s == *surface {
			return false, nil
		}
	}
	j.Surfaces = append(j.Surfaces, *surface)
	return true, nil
}

func (m *mockJioRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.jios[id]; !ok {
		return fmt.Errorf("jio %d: %w", id, secondary.ErrNotFound)
	}
	delete(m.jios, id)
	return nil
}

// mockMarkerRepository implements secondary.MarkerRepository for testing.
type mockMarkerRepository struct {
	markers map[int64]secondary.MarkerRecord
}

func newMockMarkerRepository() *mockMarkerRepository {
	return &mockMarkerRepository{markers: make(map[int64]secondary.MarkerRecord)}
}

func (m *mockMarkerRepository) Put(ctx context.Context, userID int64, marker secondary.MarkerRecord) error {
	m.markers[userID] = marker
	return nil
}

func (m *mockMarkerRepository) Take(ctx context.Context, userID int64) (secondary.MarkerRecord, bool, error) {
	marker, ok := m.markers[userID]
	delete(m.markers, userID)
	return marker, ok, nil
}

func (m *mockMarkerRepository) Count(ctx context.Context) (int, error) {
	return len(m.markers), nil
}

// mockGateway implements secondary.Gateway for testing.
// Every call is recorded; failures can be injected per inline message ID.
type mockGateway struct {
	inlineEdits []string
	chatEdits   []secondary.MessageRef
	sends       []int64
	lastMessage secondary.OutgoingMessage
	nextMsgID   int
	failInline  map[string]bool
	sendErr     error
}

func newMockGateway() *mockGateway {
	return &mockGateway{failInline: make(map[string]bool), nextMsgID: 100}
}

var errGatewayRejected = errors.New("message to edit not found")

func (m *mockGateway) Reply(ctx context.Context, to secondary.MessageRef, msg secondary.OutgoingMessage) error {
	m.lastMessage = msg
	return nil
}

func (m *mockGateway) Send(ctx context.Context, chatID int64, msg secondary.OutgoingMessage) (int, error) {
	if m.sendErr != nil {
		return 0, m.sendErr
	}
	m.sends = append(m.sends, chatID)
	m.lastMessage = msg
	m.nextMsgID++
	return m.nextMsgID, nil
}

func (m *mockGateway) EditChatMessage(ctx context.Context, ref secondary.MessageRef, msg secondary.OutgoingMessage) error {
	m.chatEdits = append(m.chatEdits, ref)
	m.lastMessage = msg
	return nil
}

func (m *mockGateway) EditInlineMessage(ctx context.Context, inlineMessageID string, msg secondary.OutgoingMessage) error {
	m.inlineEdits = append(m.inlineEdits, inlineMessageID)
	if m.failInline[inlineMessageID] {
		return errGatewayRejected
	}
	m.lastMessage = msg
	return nil
}

func (m *mockGateway) AnswerCallback(ctx context.Context, callbackID, text string) error {
	return nil
}

func (m *mockGateway) AnswerInlineQuery(ctx context.Context, queryID string, cards []secondary.InlineCard) error {
	return nil
}

func (m *mockGateway) BotInfo(ctx context.Context) (*secondary.BotInfo, error) {
	return &secondary.BotInfo{ID: 1, Username: "jio_bot"}, nil
}
