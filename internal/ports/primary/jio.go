package primary

import (
	"context"
	"time"

	"github.com/example/jiobot/internal/core/jio"
)

// JioService defines the primary port for jio (group order) operations.
type JioService interface {
	// CreateJio creates a new jio. Fails with jio.ErrEmptyName on blank names.
	CreateJio(ctx context.Context, req CreateJioRequest) (*CreateJioResponse, error)

	// GetJio retrieves a jio by ID. Fails with jio.ErrNotFound.
	GetJio(ctx context.Context, jioID int64) (*Jio, error)

	// ListJios lists jios in creation order.
	ListJios(ctx context.Context, filters JioFilters) ([]*Jio, error)

	// AddItem appends an item and returns the updated jio.
	// Fails with jio.ErrNotFound or jio.ErrEmptyItem.
	AddItem(ctx context.Context, req AddItemRequest) (*Jio, error)

	// CloseJio permanently removes a jio and returns it as it was.
	// Fails with jio.ErrNotFound or jio.ErrNotCreator.
	CloseJio(ctx context.Context, req CloseJioRequest) (*Jio, error)

	// RecordSurface attaches a surface to a jio. Recording the same surface twice is a no-op.
	RecordSurface(ctx context.Context, jioID int64, surface jio.Surface) error
}

// CreateJioRequest contains parameters for creating a jio.
type CreateJioRequest struct {
	Name        string
	CreatorID   int64
	CreatorName string
	CreatedAt   time.Time
}

// CreateJioResponse contains the result of creating a jio.
type CreateJioResponse struct {
	JioID int64
	Jio   *Jio
}

// AddItemRequest contains parameters for adding an item.
type AddItemRequest struct {
	JioID           int64
	ContributorName string
	Text            string
	AddedAt         time.Time
}

// CloseJioRequest contains parameters for closing a jio.
type CloseJioRequest struct {
	JioID            int64
	RequestingUserID int64
}

// JioFilters contains filter options for listing jios.
type JioFilters struct {
	CreatorID int64 // zero lists every jio
}

// Jio represents a jio at the port boundary.
type Jio struct {
	ID           int64
	Name         string
	CreatorID    int64
	CreatorName  string
	CreatedAt    time.Time
	Items        []jio.Item
	Participants []string
	Surfaces     []jio.Surface
}

// Summary returns the render input for this jio.
func (j *Jio) Summary() jio.Summary {
	return jio.Summary{
		ID:           j.ID,
		Name:         j.Name,
		CreatorName:  j.CreatorName,
		Participants: j.Participants,
		Items:        j.Items,
	}
}
