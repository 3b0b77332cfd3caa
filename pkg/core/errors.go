package core

import "errors"

// Common errors.
var (
	ErrNotFound   = errors.New("note not found")
	ErrInvalidID  = errors.New("invalid note id")
	ErrEmptyQuery = errors.New("search query is empty")
	// ErrAborted is returned when the user abandons an interactive prompt.
	ErrAborted = errors.New("aborted by user")
)
