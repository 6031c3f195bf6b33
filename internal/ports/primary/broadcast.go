package primary

import (
	"context"

	"github.com/example/jiobot/internal/core/jio"
)

// BroadcastService defines the primary port for summary card synchronization.
type BroadcastService interface {
	// Publish places a jio's card on a surface and records it.
	// A chat surface without a message ID is sent as a new message; the returned
	// surface carries the new message ID. Fails with jio.ErrNotFound.
	Publish(ctx context.Context, jioID int64, surface jio.Surface) (jio.Surface, error)

	// Resync pushes the current card to every recorded surface of a jio.
	// A missing jio yields an empty result, not an error. Per-surface failures
	// are reported in the result and never returned as an error.
	Resync(ctx context.Context, jioID int64) (*ResyncResult, error)
}

// ResyncResult reports what a resync attempted.
type ResyncResult struct {
	JioID    int64
	Outcomes []SurfaceOutcome
}

// SurfaceOutcome is the result of updating one surface.
type SurfaceOutcome struct {
	Surface jio.Surface
	Err     error
}

// Attempted returns the number of surfaces an update was attempted on.
func (r *ResyncResult) Attempted() int { return len(r.Outcomes) }

// Failed returns the number of surfaces that could not be updated.
func (r *ResyncResult) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}
