package primary

import (
	"context"

	"github.com/example/jiobot/internal/core/conversation"
)

// ConversationService defines the primary port for per-user pending-input state.
type ConversationService interface {
	// Begin sets the user's marker, silently replacing any previous one.
	Begin(ctx context.Context, userID int64, marker conversation.Marker) error

	// Consume removes and returns the user's marker. ok is false when none was pending.
	Consume(ctx context.Context, userID int64) (marker conversation.Marker, ok bool, err error)

	// PendingCount returns how many users have a pending marker.
	PendingCount(ctx context.Context) (int, error)
}
