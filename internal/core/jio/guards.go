// Package jio contains the pure business logic for jio (group order) operations.
// Guards are pure functions that evaluate preconditions without side effects.
package jio

import (
	"fmt"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
	Cause   error // sentinel from errors.go, set when not allowed
}

// GuardError is returned by GuardResult.Error. It prints the reason and
// unwraps to the sentinel cause.
type GuardError struct {
	Reason string
	Cause  error
}

func (e *GuardError) Error() string { return e.Reason }

func (e *GuardError) Unwrap() error { return e.Cause }

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return &GuardError{Reason: r.Reason, Cause: r.Cause}
}

// CreateJioContext provides context for jio creation guards.
type CreateJioContext struct {
	Name string
}

// AddItemContext provides context for item guards.
type AddItemContext struct {
	JioID     int64
	JioExists bool
	ItemText  string
}

// CloseJioContext provides context for close guards.
type CloseJioContext struct {
	JioID            int64
	JioExists        bool
	CreatorID        int64
	RequestingUserID int64
}

// RecordSurfaceContext provides context for surface recording guards.
type RecordSurfaceContext struct {
	JioID     int64
	JioExists bool
	Surface   Surface
}

// CanCreateJio evaluates whether a jio can be created.
// Rules:
// - Name must contain something other than whitespace
func CanCreateJio(ctx CreateJioContext) GuardResult {
	if strings.TrimSpace(ctx.Name) == "" {
		return GuardResult{Reason: "jio name must not be empty", Cause: ErrEmptyName}
	}
	return GuardResult{Allowed: true}
}

// CanAddItem evaluates whether an item can be added to a jio.
// Rules:
// - Jio must exist
// - Item text must contain something other than whitespace
func CanAddItem(ctx AddItemContext) GuardResult {
	if !ctx.JioExists {
		return GuardResult{Reason: fmt.Sprintf("jio %d not found", ctx.JioID), Cause: ErrNotFound}
	}
	if strings.TrimSpace(ctx.ItemText) == "" {
		return GuardResult{Reason: "item text must not be empty", Cause: ErrEmptyItem}
	}
	return GuardResult{Allowed: true}
}

// CanCloseJio evaluates whether a user may close a jio.
// Rules:
// - Jio must exist (checked first, so a missing jio never reports "unauthorized")
// - Requesting user must be the creator
func CanCloseJio(ctx CloseJioContext) GuardResult {
	if !ctx.JioExists {
		return GuardResult{Reason: fmt.Sprintf("jio %d not found", ctx.JioID), Cause: ErrNotFound}
	}
	if ctx.RequestingUserID != ctx.CreatorID {
		return GuardResult{
			Reason: fmt.Sprintf("only the creator can close jio %d", ctx.JioID),
			Cause:  ErrNotCreator,
		}
	}
	return GuardResult{Allowed: true}
}

// CanRecordSurface evaluates whether a surface can be attached to a jio.
// Rules:
// - Jio must exist
// - Surface must identify a placement
func CanRecordSurface(ctx RecordSurfaceContext) GuardResult {
	if !ctx.JioExists {
		return GuardResult{Reason: fmt.Sprintf("jio %d not found", ctx.JioID), Cause: ErrNotFound}
	}
	if !ctx.Surface.Valid() {
		return GuardResult{
			Reason: fmt.Sprintf("surface %s does not identify a message", ctx.Surface.Key()),
			Cause:  ErrInvalidSurface,
		}
	}
	return GuardResult{Allowed: true}
}
