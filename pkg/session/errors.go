package session

import "errors"

// Session errors.
var (
	// ErrNotFound is returned when no session is established.
	ErrNotFound = errors.New("session: not found")

	// ErrExpired is returned when the stored session has passed its expiry.
	ErrExpired = errors.New("session: expired")

	// ErrInvalidSession is returned when Set receives a session without a user.
	ErrInvalidSession = errors.New("session: missing user")
)
