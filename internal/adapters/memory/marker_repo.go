package memory

import (
	"context"
	"sync"

	"github.com/example/jiobot/internal/ports/secondary"
)

// MarkerRepository implements secondary.MarkerRepository with a map keyed by user ID.
type MarkerRepository struct {
	mu      sync.Mutex
	markers map[int64]secondary.MarkerRecord
}

// NewMarkerRepository creates a new in-memory marker repository.
func NewMarkerRepository() *MarkerRepository {
	return &MarkerRepository{markers: make(map[int64]secondary.MarkerRecord)}
}

// Put stores the marker for a user, replacing any existing one.
func (r *MarkerRepository) Put(ctx context.Context, userID int64, marker secondary.MarkerRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markers[userID] = marker
	return nil
}

// Take removes and returns the user's marker.
func (r *MarkerRepository) Take(ctx context.Context, userID int64) (secondary.MarkerRecord, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	marker, ok := r.markers[userID]
	if ok {
		delete(r.markers, userID)
	}
	return marker, ok, nil
}

// Count returns the number of users with a pending marker.
func (r *MarkerRepository) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.markers), nil
}

var _ secondary.MarkerRepository = (*MarkerRepository)(nil)
