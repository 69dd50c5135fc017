// Package errors defines the error taxonomy for the studytrack core:
// conflicts (an active session already exists), missing resources,
// clock skew during duration computation, and invalid input. Callers
// distinguish kinds with the re-exported Is/As helpers.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// Re-export standard library functions so callers only need this package.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
)

// Sentinel errors for the four failure kinds.
var (
	// ErrActiveSessionExists indicates the user already has a running session.
	ErrActiveSessionExists = New("an active study session already exists")
	// ErrSessionNotFound indicates no open session matches the id for the user.
	ErrSessionNotFound = New("study session not found")
	// ErrTaskNotFound indicates the referenced task does not exist for the user.
	ErrTaskNotFound = New("task not found")
	// ErrNegativeDuration indicates the server clock produced end < start.
	ErrNegativeDuration = New("computed session duration is negative")
	// ErrInvalidInput indicates a malformed request, e.g. a missing task reference.
	ErrInvalidInput = New("invalid input")
)

// ConflictError reports a state conflict, such as starting a second
// session while one is still active.
type ConflictError struct {
	Resource string
	Detail   string
}

// NewConflictError creates a ConflictError
func NewConflictError(resource, detail string) *ConflictError {
	return &ConflictError{Resource: resource, Detail: detail}
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Detail)
	}
	return fmt.Sprintf("%s conflict", e.Resource)
}

// Unwrap maps session conflicts onto their sentinel
func (e *ConflictError) Unwrap() error {
	return ErrActiveSessionExists
}

// NotFoundError reports a missing resource.
type NotFoundError struct {
	Resource string // "session" or "task"
	ID       string
}

// NewNotFoundError creates a NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Unwrap maps the error onto the matching sentinel
func (e *NotFoundError) Unwrap() error {
	if e.Resource == "task" {
		return ErrTaskNotFound
	}
	return ErrSessionNotFound
}

// ClockError reports a negative computed duration. It is surfaced
// rather than clamped because it means a timestamp is skewed or corrupt.
type ClockError struct {
	Start time.Time
	End   time.Time
}

// NewClockError creates a ClockError
func NewClockError(start, end time.Time) *ClockError {
	return &ClockError{Start: start, End: end}
}

// Error implements the error interface
func (e *ClockError) Error() string {
	return fmt.Sprintf("session end %s precedes start %s",
		e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339))
}

// Unwrap maps the error onto its sentinel
func (e *ClockError) Unwrap() error {
	return ErrNegativeDuration
}

// ValidationError reports malformed input.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError creates a ValidationError
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap maps the error onto its sentinel
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// IsConflict reports whether err is an active-session conflict
func IsConflict(err error) bool {
	return Is(err, ErrActiveSessionExists)
}

// IsNotFound reports whether err is a missing session or task
func IsNotFound(err error) bool {
	return Is(err, ErrSessionNotFound) || Is(err, ErrTaskNotFound)
}
