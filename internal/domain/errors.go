package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services. Controllers map these to HTTP
// status codes; services wrap them with context via fmt.Errorf("%w").
var (
	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden is returned when an authenticated user lacks permission
	// for the requested operation.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthorized is returned when no valid session is present.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrConflict is returned on duplicate unique keys (invite link id,
	// custom link path, taken email) and on event version mismatches.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput is returned when the request is invalid
	// (e.g. a disallowed upload content type).
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstream is returned when an external provider call fails in a
	// flow where the failure must be surfaced to the user.
	ErrUpstream = errors.New("upstream provider failure")
)

// Sentinel errors for specific resources inside the event aggregate.
// Each wraps a base sentinel so errors.Is keeps working at the edge.
var (
	ErrTodoNotFound    = fmt.Errorf("todo does not exist: %w", ErrNotFound)
	ErrInviteeNotFound = fmt.Errorf("invitee not found: %w", ErrNotFound)
	ErrNotInvited      = fmt.Errorf("not invited to this event: %w", ErrForbidden)
)
