// Package effects defines effect types as data structures representing I/O operations.
// This is the foundation of the Functional Core / Imperative Shell pattern.
// Effects are pure data - they describe what should happen, not how.
package effects

import "github.com/example/jiobot/internal/core/jio"

// Effect is the base interface for all effects.
// Effects represent I/O operations as data that can be interpreted by the shell.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// EditEffect replaces the content of an existing surface with a rendered view.
type EditEffect struct {
	Surface jio.Surface
	View    jio.View
}

func (e EditEffect) EffectType() string { return "edit" }

// SendEffect sends a rendered view as a new message into a chat.
type SendEffect struct {
	ChatID int64
	View   jio.View
}

func (e SendEffect) EffectType() string { return "send" }

// RecordSurfaceEffect attaches a surface to a jio.
type RecordSurfaceEffect struct {
	JioID   int64
	Surface jio.Surface
}

func (e RecordSurfaceEffect) EffectType() string { return "record_surface" }

// LogEffect records something a planner decided, such as a skipped surface.
// Level is one of "debug", "info", "warn" or "error".
type LogEffect struct {
	Level   string
	Message string
	Fields  map[string]any
}

func (e LogEffect) EffectType() string { return "log" }
