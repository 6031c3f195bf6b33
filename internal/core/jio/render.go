package jio

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/example/jiobot/internal/core/action"
)

// AddOrderLabel is the text of the button attached to every summary card.
const AddOrderLabel = "➕ Add Order"

// Item is one food item in a jio.
type Item struct {
	ContributorName string
	Text            string
	AddedAt         time.Time
}

// Summary is the data a summary card is rendered from.
// All values are pre-fetched by the caller; rendering does no I/O.
type Summary struct {
	ID           int64
	Name         string
	CreatorName  string
	Participants []string
	Items        []Item
}

// Button is an action control attached to a rendered message.
type Button struct {
	Text string
	Data string
}

// View is a rendered summary card. Body is HTML (Telegram parse mode HTML).
type View struct {
	Title       string
	Description string
	Body        string
	Action      Button
}

// Render builds the summary card for a jio.
func Render(s Summary) View {
	var b strings.Builder
	fmt.Fprintf(&b, "🍽️ <b>%s</b>\n", html.EscapeString(s.Name))
	fmt.Fprintf(&b, "👤 Created by: %s\n", html.EscapeString(s.CreatorName))
	fmt.Fprintf(&b, "👥 Participants: %d\n", len(s.Participants))
	fmt.Fprintf(&b, "🍕 Items: %d\n\n", len(s.Items))

	if len(s.Items) == 0 {
		b.WriteString("📝 No orders yet. Be the first to order!\n")
	} else {
		b.WriteString("📝 <b>Current Orders:</b>\n")
		for _, it := range s.Items {
			fmt.Fprintf(&b, "• %s: %s\n", html.EscapeString(it.ContributorName), html.EscapeString(it.Text))
		}
	}

	return View{
		Title: "🍽️ " + s.Name,
		Description: fmt.Sprintf("Created by %s • %d items • %d participants",
			s.CreatorName, len(s.Items), len(s.Participants)),
		Body:   b.String(),
		Action: Button{Text: AddOrderLabel, Data: action.Add(s.ID).Encode()},
	}
}

// AddParticipant appends name to participants when it is not already present.
// Insertion order is display order, so the slice is never re-sorted.
func AddParticipant(participants []string, name string) ([]string, bool) {
	for _, p := range participants {
		if p == name {
			return participants, false
		}
	}
	return append(participants, name), true
}
