package jio

import "errors"

// Domain errors. Callers match them with errors.Is.
var (
	// ErrNotFound means the jio does not exist (never created, or already closed).
	ErrNotFound = errors.New("jio not found")
	// ErrEmptyName means a jio name was empty or whitespace only.
	ErrEmptyName = errors.New("jio name is empty")
	// ErrEmptyItem means an item text was empty or whitespace only.
	ErrEmptyItem = errors.New("item text is empty")
	// ErrNotCreator means someone other than the creator tried a creator-only action.
	ErrNotCreator = errors.New("only the creator can do this")
	// ErrInvalidSurface means a surface does not address any message.
	ErrInvalidSurface = errors.New("surface does not identify a message")
)
