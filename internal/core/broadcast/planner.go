// Package broadcast contains the pure planning logic for keeping every
// summary card of a jio consistent with the jio's current state.
// Planners take pre-fetched input and return effects; the app layer executes them.
package broadcast

import (
	"github.com/example/jiobot/internal/core/effects"
	"github.com/example/jiobot/internal/core/jio"
)

// ResyncPlanInput contains the inputs needed to plan a resync.
type ResyncPlanInput struct {
	JioExists bool
	Summary   jio.Summary
	Surfaces  []jio.Surface
}

// ResyncPlan is one edit per recorded surface, all carrying the same view,
// plus log entries describing anything skipped.
type ResyncPlan struct {
	JioID int64
	View  jio.View
	Edits []effects.EditEffect
	Logs  []effects.LogEffect
}

// Empty reports whether executing the plan would do nothing.
func (p ResyncPlan) Empty() bool { return len(p.Edits) == 0 }

// GenerateResyncPlan plans the in-place updates for every surface of a jio.
// A jio that no longer exists produces a plan with no edits rather than an error.
func GenerateResyncPlan(input ResyncPlanInput) ResyncPlan {
	plan := ResyncPlan{JioID: input.Summary.ID}
	if !input.JioExists {
		plan.Logs = append(plan.Logs, effects.LogEffect{
			Level:   "debug",
			Message: "resync skipped, jio gone",
			Fields:  map[string]any{"jio_id": input.Summary.ID},
		})
		return plan
	}

	plan.View = jio.Render(input.Summary)
	seen := make(map[string]bool, len(input.Surfaces))
	for _, s := range input.Surfaces {
		if !s.Valid() {
			plan.Logs = append(plan.Logs, effects.LogEffect{
				Level:   "warn",
				Message: "skipping invalid surface",
				Fields:  map[string]any{"jio_id": input.Summary.ID, "surface": s.Key()},
			})
			continue
		}
		if seen[s.Key()] {
			continue
		}
		seen[s.Key()] = true
		plan.Edits = append(plan.Edits, effects.EditEffect{Surface: s, View: plan.View})
	}
	return plan
}

// PublishPlanInput contains the inputs needed to plan a publish.
type PublishPlanInput struct {
	JioExists bool
	Summary   jio.Summary
	Target    jio.Surface
}

// PublishPlan describes the initial placement of a card on one surface.
// Exactly one of Send and Edit is set for a publishable target.
type PublishPlan struct {
	JioID  int64
	View   jio.View
	Send   *effects.SendEffect
	Edit   *effects.EditEffect
	Record *effects.RecordSurfaceEffect // nil when Send is set; the surface is only known after sending
}

// Empty reports whether executing the plan would do nothing.
func (p PublishPlan) Empty() bool { return p.Send == nil && p.Edit == nil }

// GeneratePublishPlan plans the first placement of a jio's card.
// Rules:
// - A chat target without a message ID gets a fresh card sent into the chat
// - An inline placement, or an existing chat message, is recorded and edited to the current view
// - A missing jio plans nothing
func GeneratePublishPlan(input PublishPlanInput) PublishPlan {
	plan := PublishPlan{JioID: input.Summary.ID}
	if !input.JioExists {
		return plan
	}
	plan.View = jio.Render(input.Summary)

	t := input.Target
	if t.Kind == jio.SurfaceChat && t.MessageID == 0 && t.ChatID != 0 {
		plan.Send = &effects.SendEffect{ChatID: t.ChatID, View: plan.View}
		return plan
	}
	if !t.Valid() {
		return PublishPlan{JioID: input.Summary.ID}
	}

	plan.Record = &effects.RecordSurfaceEffect{JioID: input.Summary.ID, Surface: t}
	plan.Edit = &effects.EditEffect{Surface: t, View: plan.View}
	return plan
}
