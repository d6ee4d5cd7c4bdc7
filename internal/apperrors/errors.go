// Package apperrors defines the error kinds shared by the repositories,
// services and HTTP handlers. Lower layers wrap these sentinels with %w so
// callers can branch with errors.Is.
package apperrors

import "errors"

var (
	// ErrNotFound reports that the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateUser reports a registration for a username that is already taken.
	ErrDuplicateUser = errors.New("username already exists")
	// ErrInvalidCredentials covers both an unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnauthenticated reports a protected action attempted without a session.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrUnauthorized reports an action on a recipe owned by another user.
	ErrUnauthorized = errors.New("not allowed to modify this resource")
	// ErrMalformedIdentifier reports an id that does not parse to the store's id format.
	ErrMalformedIdentifier = errors.New("malformed identifier")
	// ErrDataStoreUnavailable reports a connectivity failure talking to the database.
	ErrDataStoreUnavailable = errors.New("data store unavailable")
)
