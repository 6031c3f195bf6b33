// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned (wrapped) by repositories when a record does not exist.
var ErrNotFound = errors.New("record not found")

// JioRepository defines the secondary port for jio storage.
// Implementations keep state for the lifetime of the process only.
type JioRepository interface {
	// GetNextID returns the next jio ID. IDs are never reused, even after Delete.
	GetNextID(ctx context.Context) (int64, error)

	// Create stores a new jio. The record's ID must come from GetNextID.
	Create(ctx context.Context, jio *JioRecord) error

	// GetByID retrieves a jio with its items, participants and surfaces.
	GetByID(ctx context.Context, id int64) (*JioRecord, error)

	// List retrieves jios matching the filters in creation order.
	List(ctx context.Context, filters JioFilters) ([]*JioRecord, error)

	// AppendItem appends an item and adds its contributor to the participants
	// when not already present.
	AppendItem(ctx context.Context, jioID int64, item *ItemRecord) error

	// AddSurface attaches a surface unless one with the same identity exists.
	// Reports whether the surface was newly added.
	AddSurface(ctx context.Context, jioID int64, surface *SurfaceRecord) (bool, error)

	// Delete removes a jio and everything attached to it.
	Delete(ctx context.Context, id int64) error
}

// JioRecord represents a jio as held by the repository.
type JioRecord struct {
	ID           int64
	Name         string
	CreatorID    int64
	CreatorName  string
	CreatedAt    time.Time
	Items        []ItemRecord
	Participants []string // first-seen order
	Surfaces     []SurfaceRecord
}

// ItemRecord represents one food item.
type ItemRecord struct {
	ContributorName string
	Text            string
	AddedAt         time.Time
}

// SurfaceRecord represents a message showing a jio's summary card.
type SurfaceRecord struct {
	Kind            string // "inline" or "chat"
	InlineMessageID string
	ChatID          int64
	MessageID       int
}

// JioFilters contains filter options for listing jios.
type JioFilters struct {
	CreatorID int64 // zero means any creator
}

// MarkerRepository defines the secondary port for pending-input markers.
type MarkerRepository interface {
	// Put stores the marker for a user, replacing any existing one.
	Put(ctx context.Context, userID int64, marker MarkerRecord) error

	// Take removes and returns the user's marker. ok is false when none was set.
	Take(ctx context.Context, userID int64) (marker MarkerRecord, ok bool, err error)

	// Count returns the number of users with a pending marker.
	Count(ctx context.Context) (int, error)
}

// MarkerRecord represents a pending-input marker as stored.
type MarkerRecord struct {
	Kind  string // "awaiting_name" or "awaiting_item"
	JioID int64
}
