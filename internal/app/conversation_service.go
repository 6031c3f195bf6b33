package app

import (
	"context"
	"fmt"

	"github.com/example/jiobot/internal/core/conversation"
	"github.com/example/jiobot/internal/ports/primary"
	"github.com/example/jiobot/internal/ports/secondary"
)

// ConversationServiceImpl implements the ConversationService interface.
type ConversationServiceImpl struct {
	markerRepo secondary.MarkerRepository
}

// NewConversationService creates a new ConversationService with injected dependencies.
func NewConversationService(markerRepo secondary.MarkerRepository) *ConversationServiceImpl {
	return &ConversationServiceImpl{markerRepo: markerRepo}
}

// Begin sets the user's pending-input marker, replacing any previous one.
func (s *ConversationServiceImpl) Begin(ctx context.Context, userID int64, marker conversation.Marker) error {
	record := secondary.MarkerRecord{Kind: marker.Kind.String(), JioID: marker.JioID}
	if err := s.markerRepo.Put(ctx, userID, record); err != nil {
		return fmt.Errorf("failed to set marker: %w", err)
	}
	return nil
}

// Consume removes and returns the user's marker.
func (s *ConversationServiceImpl) Consume(ctx context.Context, userID int64) (conversation.Marker, bool, error) {
	record, ok, err := s.markerRepo.Take(ctx, userID)
	if err != nil {
		return conversation.Marker{}, false, fmt.Errorf("failed to take marker: %w", err)
	}
	if !ok {
		return conversation.Marker{}, false, nil
	}

	switch record.Kind {
	case conversation.AwaitingName.String():
		return conversation.AwaitName(), true, nil
	case conversation.AwaitingItem.String():
		return conversation.AwaitItem(record.JioID), true, nil
	default:
		// The marker is gone either way; an unknown kind means nothing is pending.
		return conversation.Marker{}, false, fmt.Errorf("unknown marker kind %q", record.Kind)
	}
}

// PendingCount returns how many users have a pending marker.
func (s *ConversationServiceImpl) PendingCount(ctx context.Context) (int, error) {
	return s.markerRepo.Count(ctx)
}

// Ensure ConversationServiceImpl implements the interface
var _ primary.ConversationService = (*ConversationServiceImpl)(nil)
