package service

import (
	"errors"
	"fmt"
)

var (
	// ErrRecipeNotFound is returned when an id does not match any record in the store
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrSessionNotFound is returned for unknown or expired sessions
	ErrSessionNotFound = errors.New("session not found")
)

// ValidationError is returned when user input is rejected before any state change
type ValidationError struct {
	Field   string
	Message string
	// Fields holds per-field messages when more than one field failed.
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RemoteCallError wraps a failure of the completion call itself
type RemoteCallError struct {
	Err error
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("completion request failed: %v", e.Err)
}

func (e *RemoteCallError) Unwrap() error { return e.Err }

// ParseError is returned when the completion text is not a usable recipe
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse recipe: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
