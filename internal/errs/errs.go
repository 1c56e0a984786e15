// Package errs centralizes domain error values so services can return them
// and handlers can translate them to HTTP statuses in one place.
package errs

import "errors"

var (
	// ErrTicketNotFound is returned when the referenced ticket does not exist.
	// Existence is always checked before ownership, so a missing ticket is
	// reported as not-found to every caller, owner or not.
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrNotOwner is returned when the ticket exists but belongs to another user.
	ErrNotOwner = errors.New("not authorized")

	// ErrInvalidInput is returned when a required field is missing or a value
	// is outside its allowed set (for example an unknown ticket status).
	ErrInvalidInput = errors.New("invalid input")

	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned on registration with an already used email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on login with a wrong email or password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
