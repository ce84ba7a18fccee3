package models

import "errors"

// Domain errors surfaced by the store and the event engine. The HTTP adapter
// maps these to status codes; everything unmapped is treated as a storage
// failure.
var (
	// ErrNotFound is returned when the target entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrNameConflict is returned when a uniqueness or length constraint is
	// violated on insert.
	ErrNameConflict = errors.New("name already exists or exceeds length limit")

	// ErrNameError is returned when a referenced entity (user, group or
	// permission) does not exist in a relational operation, or the
	// association is already in the requested state.
	ErrNameError = errors.New("referenced entity does not exist")

	// ErrInvalidCredentials is returned when a password does not verify.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized is returned when a session is absent, expired, revoked,
	// on hold, or lacks the required permission.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidState is returned when an event is no longer pending.
	ErrInvalidState = errors.New("event is not pending")

	// ErrInvalidPayload is returned when an event payload is structurally
	// invalid for its type.
	ErrInvalidPayload = errors.New("invalid event payload")
)
