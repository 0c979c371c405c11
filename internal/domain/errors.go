package domain

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyResolved is returned when resolving a report that has
	// already left PENDING. Resolution is terminal and happens exactly once.
	ErrAlreadyResolved = errors.New("report already resolved")

	// ErrAlreadyBanned is returned when banning a user who is banned.
	ErrAlreadyBanned = errors.New("user already banned")

	// ErrNotBanned is returned when unbanning a user who is not banned.
	ErrNotBanned = errors.New("user not banned")

	// ErrValidation is returned for semantically invalid input.
	ErrValidation = errors.New("validation failed")

	// ErrUnsupportedEntityKind is returned when an operation names an
	// entity kind outside the registry's closed set.
	ErrUnsupportedEntityKind = errors.New("unsupported entity kind")

	// ErrAccessDenied is returned when the caller lacks the rights for the
	// operation.
	ErrAccessDenied = errors.New("access denied")
)
