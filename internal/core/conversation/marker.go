// Package conversation describes what a user's next free-text message means.
// This is part of the Functional Core - no I/O, only values.
package conversation

import "fmt"

// Kind is the kind of input a user is expected to send next.
type Kind int

const (
	// AwaitingName means the next text names a new jio.
	AwaitingName Kind = iota + 1
	// AwaitingItem means the next text is an item for Marker.JioID.
	AwaitingItem
)

func (k Kind) String() string {
	switch k {
	case AwaitingName:
		return "awaiting_name"
	case AwaitingItem:
		return "awaiting_item"
	default:
		return "unknown"
	}
}

// Marker is a pending-input marker. At most one exists per user.
type Marker struct {
	Kind  Kind
	JioID int64 // AwaitingItem only
}

// AwaitName returns the marker set by /start.
func AwaitName() Marker { return Marker{Kind: AwaitingName} }

// AwaitItem returns the marker set when a user picks a jio to add to.
func AwaitItem(jioID int64) Marker { return Marker{Kind: AwaitingItem, JioID: jioID} }

func (m Marker) String() string {
	if m.Kind == AwaitingItem {
		return fmt.Sprintf("%s(%d)", m.Kind, m.JioID)
	}
	return m.Kind.String()
}
